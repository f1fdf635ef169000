// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sebo83910/litex-axi-converter/internal/config"
	"github.com/sebo83910/litex-axi-converter/internal/issue"
	"github.com/sebo83910/litex-axi-converter/internal/packager"
	"github.com/sebo83910/litex-axi-converter/internal/params"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

const (
	flagAddressWidth = "address-width"
	flagInputWidth   = "input-width"
	flagOutputWidth  = "output-width"
	flagUserWidth    = "user-width"
	flagReverse      = "reverse"
)

type (
	// rootOptions are the persistent flags shared by every command.
	rootOptions struct {
		verbose    bool
		configPath string
	}

	// buildOptions are the build parameter flags. Unchanged flags fall back
	// to the configured defaults.
	buildOptions struct {
		addressWidth int
		inputWidth   int
		outputWidth  int
		userWidth    int
		reverse      bool
	}

	// stageOptions are the pipeline mode switches.
	stageOptions struct {
		build   bool
		iface   bool
		pkg     bool
		project bool
	}
)

// newRootCommand creates the axiconv command tree around app.
func newRootCommand(app *App) *cobra.Command {
	root := &rootOptions{}
	build := &buildOptions{}
	stages := &stageOptions{}

	rootCmd := &cobra.Command{
		Use:   "axiconv",
		Short: "Package the AXI width converter as a Vivado IP core",
		Long: TitleStyle.Render("axiconv") + MutedStyle.Render(" - AXI width converter IP packager") + `

axiconv elaborates the converter for one set of widths, packages it as a
Vivado IP core and optionally builds a demo project around it. Each stage
is selected with a switch; selected stages always run in dependency order.

` + MutedStyle.Render("Examples:") + `
  axiconv --build --package                     Elaborate and package 128b to 64b
  axiconv --input-width 256 --package           Package an already elaborated 256b variant
  axiconv --interface --package --project       Full pipeline with the demo project
  axiconv script --output-width 32              Print the packaging script only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStages(cmd, app, root, build, stages)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&root.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/axiconv/config.cue)")

	build.register(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&stages.build, "build", false, "elaborate the core")
	rootCmd.Flags().BoolVar(&stages.iface, "interface", false, "declare the custom bus definitions")
	rootCmd.Flags().BoolVar(&stages.pkg, "package", false, "package the core")
	rootCmd.Flags().BoolVar(&stages.project, "project", false, "create a project including the core")

	rootCmd.AddCommand(newScriptCommand(app, root))
	rootCmd.AddCommand(newConfigCommand(app, root))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	// fang overrides rootCmd.Version, so pass it as an option.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitFailure)
	}
}

func (o *buildOptions) register(fs *pflag.FlagSet) {
	fs.IntVar(&o.addressWidth, flagAddressWidth, params.DefaultAddressWidth, "AXI-Lite address width")
	fs.IntVar(&o.inputWidth, flagInputWidth, params.DefaultInputWidth, "AXI input data width")
	fs.IntVar(&o.outputWidth, flagOutputWidth, params.DefaultOutputWidth, "AXI output data width")
	fs.IntVar(&o.userWidth, flagUserWidth, params.DefaultUserWidth, "AXI user width")
	fs.BoolVar(&o.reverse, flagReverse, false, "reverse converter ordering")
}

// rawArgs returns the flags the user actually set.
func (o *buildOptions) rawArgs(fs *pflag.FlagSet) params.RawArgs {
	var raw params.RawArgs
	if fs.Changed(flagAddressWidth) {
		raw.AddressWidth = params.Int(o.addressWidth)
	}
	if fs.Changed(flagInputWidth) {
		raw.InputWidth = params.Int(o.inputWidth)
	}
	if fs.Changed(flagOutputWidth) {
		raw.OutputWidth = params.Int(o.outputWidth)
	}
	if fs.Changed(flagUserWidth) {
		raw.UserWidth = params.Int(o.userWidth)
	}
	if fs.Changed(flagReverse) {
		raw.Reverse = params.Bool(o.reverse)
	}
	return raw
}

// requested returns the selected stages in flag declaration order.
func (o *stageOptions) requested() []packager.Stage {
	var stages []packager.Stage
	if o.build {
		stages = append(stages, packager.StageBuild)
	}
	if o.iface {
		stages = append(stages, packager.StageInterface)
	}
	if o.pkg {
		stages = append(stages, packager.StagePackage)
	}
	if o.project {
		stages = append(stages, packager.StageProject)
	}
	return stages
}

// session is the per-invocation state every handler starts from.
type session struct {
	cfg     *config.Config
	path    string
	verbose bool
}

// loadSession loads the configuration and merges the verbose setting.
// Failures are reported to stderr.
func loadSession(cmd *cobra.Command, app *App, root *rootOptions) (*session, error) {
	loaded, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: root.configPath})
	if err != nil {
		return nil, reportError(app.stderr, err, root.verbose, config.ColorSchemeAuto)
	}
	return &session{
		cfg:     loaded.Config,
		path:    loaded.Path,
		verbose: root.verbose || loaded.Config.UI.Verbose,
	}, nil
}

func runStages(cmd *cobra.Command, app *App, root *rootOptions, build *buildOptions, stages *stageOptions) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	s, err := loadSession(cmd, app, root)
	if err != nil {
		return err
	}
	scheme := s.cfg.UI.ColorScheme

	cfg, err := params.Resolve(build.rawArgs(cmd.Flags()), s.cfg.Defaults.Params())
	if err != nil {
		return reportError(app.stderr, err, s.verbose, scheme)
	}

	requested := stages.requested()
	if len(requested) == 0 {
		fmt.Fprintf(app.stderr, "%s %s: select at least one of --build, --interface, --package, --project\n",
			WarningStyle.Render("Warning:"), packager.ErrNoOperationRequested)
		if s.verbose {
			if rendered, rerr := issue.Get(issue.NoOperationRequestedId).Render(scheme.GlamourStyle()); rerr == nil {
				fmt.Fprint(app.stderr, rendered)
			}
		}
		return nil
	}

	tool, err := app.toolRuntime(s.cfg)
	if err != nil {
		return reportError(app.stderr, err, s.verbose, scheme)
	}

	logger := newLogger(app.stderr, s.verbose)
	if s.path != "" {
		logger.Debug("loaded configuration", "file", s.path)
	}
	o := app.newOrchestrator(s.cfg, tool, logger)

	report, err := o.Run(cmd.Context(), cfg, requested...)
	if err != nil {
		return reportError(app.stderr, err, s.verbose, scheme)
	}

	for _, stage := range report.Stages {
		fmt.Fprintln(app.stdout, done(stage.String()))
	}
	if report.Package != nil {
		fmt.Fprintf(app.stdout, "%s %s\n", MutedStyle.Render("package:"), PathStyle.Render(report.Package.PackageDir))
	}
	return nil
}
