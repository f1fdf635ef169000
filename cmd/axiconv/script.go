// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sebo83910/litex-axi-converter/internal/params"
)

// newScriptCommand creates `axiconv script`, which prints the packaging
// script of one build without touching the filesystem or running a tool.
func newScriptCommand(app *App, root *rootOptions) *cobra.Command {
	build := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the packaging script without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, err := loadSession(cmd, app, root)
			if err != nil {
				return err
			}

			cfg, err := params.Resolve(build.rawArgs(cmd.Flags()), s.cfg.Defaults.Params())
			if err != nil {
				return reportError(app.stderr, err, s.verbose, s.cfg.UI.ColorScheme)
			}

			// The dry run never invokes the tool, so no runtime is resolved.
			o := app.newOrchestrator(s.cfg, nil, newLogger(app.stderr, s.verbose))
			script, err := o.PackagingScript(cfg)
			if err != nil {
				return reportError(app.stderr, err, s.verbose, s.cfg.UI.ColorScheme)
			}
			fmt.Fprint(app.stdout, script.Render())
			return nil
		},
	}
	build.register(cmd.Flags())
	return cmd
}
