// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sebo83910/litex-axi-converter/internal/config"
)

// newConfigCommand creates the `axiconv config` command tree.
func newConfigCommand(app *App, root *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage axiconv configuration",
		Long: `Manage axiconv configuration.

Configuration is read from, in order:
  - the file given with --config
  - Linux: ~/.config/axiconv/config.cue
    macOS: ~/Library/Application Support/axiconv/config.cue
    Windows: %AppData%\axiconv\config.cue
  - config.cue in the working directory

AXICONV_* environment variables override file values, e.g.
AXICONV_VIVADO_BINARY=/opt/Xilinx/Vivado/2023.2/bin/vivado.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			s, err := loadSession(cmd, app, root)
			if err != nil {
				return err
			}
			source := MutedStyle.Render("(using defaults)")
			if s.path != "" {
				source = s.path
			}
			fmt.Fprintf(app.stderr, "%s: %s\n\n", PathStyle.Render("Config file"), source)
			fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			written, err := config.CreateDefaultConfig(path, force)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintln(app.stdout, done("Configuration at "+written))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	})

	return cfgCmd
}
