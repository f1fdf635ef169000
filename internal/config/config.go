// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"

	"github.com/sebo83910/litex-axi-converter/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "axiconv"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. AXICONV_VIVADO_BINARY.
	EnvPrefix = "AXICONV"

	// maxConfigFileSize bounds the config file read into memory.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the axiconv configuration directory: %AppData% on Windows,
// ~/Library/Application Support on macOS, $XDG_CONFIG_HOME (default ~/.config)
// elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// loadWithOptions performs option-driven config loading. It returns the
// config and the path of the file it was read from ("" for defaults only).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		// An explicit --config path is used exclusively.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'axiconv config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}
		for _, candidate := range []string{
			filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
			ConfigFileName + "." + ConfigFileExt,
		} {
			if fileExists(candidate) {
				resolvedPath = candidate
				break
			}
		}
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'axiconv config show' to see the effective configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Packaging.AuxiliaryFiles == nil {
		cfg.Packaging.AuxiliaryFiles = []string{}
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check AXICONV_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// newViper returns a Viper instance seeded with every default and wired to
// AXICONV_* environment overrides. Every key needs a default for
// AutomaticEnv to reach it through Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("vivado.binary", defaults.Vivado.Binary)
	v.SetDefault("vivado.mode", defaults.Vivado.Mode)
	v.SetDefault("vivado.part", defaults.Vivado.Part)
	v.SetDefault("vivado.runtime", defaults.Vivado.Runtime)
	v.SetDefault("vivado.container_engine", defaults.Vivado.ContainerEngine)
	v.SetDefault("vivado.image", defaults.Vivado.Image)
	v.SetDefault("vendor.name", defaults.Vendor.Name)
	v.SetDefault("vendor.display_name", defaults.Vendor.DisplayName)
	v.SetDefault("vendor.url", defaults.Vendor.URL)
	v.SetDefault("vendor.library", defaults.Vendor.Library)
	v.SetDefault("vendor.taxonomy", defaults.Vendor.Taxonomy)
	v.SetDefault("core.name", defaults.Core.Name)
	v.SetDefault("core.version", defaults.Core.Version)
	v.SetDefault("core.revision", defaults.Core.Revision)
	v.SetDefault("core.display_name", defaults.Core.DisplayName)
	v.SetDefault("core.description", defaults.Core.Description)
	v.SetDefault("defaults.address_width", defaults.Defaults.AddressWidth)
	v.SetDefault("defaults.input_width", defaults.Defaults.InputWidth)
	v.SetDefault("defaults.output_width", defaults.Defaults.OutputWidth)
	v.SetDefault("defaults.user_width", defaults.Defaults.UserWidth)
	v.SetDefault("defaults.reverse", defaults.Defaults.Reverse)
	v.SetDefault("elaborate.command", defaults.Elaborate.Command)
	v.SetDefault("elaborate.build_dir", defaults.Elaborate.BuildDir)
	v.SetDefault("packaging.auxiliary_files", defaults.Packaging.AuxiliaryFiles)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d exceeds limit of %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Fields are optional, so only the schema's constraints must hold.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// formatCUEError flattens a CUE error list into "<file>: <path>: <message>" lines.
func formatCUEError(err error, filePath string) error {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(list))
	for _, e := range list {
		path := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		if path != "" {
			lines = append(lines, path+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file at path, or in the config
// directory when path is empty. An existing file is kept unless force is set.
// It returns the path written.
func CreateDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		cfgDir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	}

	if !force && fileExists(path) {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// axiconv configuration file\n\n")

	sb.WriteString("vivado: {\n")
	fmt.Fprintf(&sb, "\tbinary:           %q\n", cfg.Vivado.Binary)
	fmt.Fprintf(&sb, "\tmode:             %q\n", cfg.Vivado.Mode)
	fmt.Fprintf(&sb, "\tpart:             %q\n", cfg.Vivado.Part)
	fmt.Fprintf(&sb, "\truntime:          %q\n", cfg.Vivado.Runtime)
	fmt.Fprintf(&sb, "\tcontainer_engine: %q\n", cfg.Vivado.ContainerEngine)
	fmt.Fprintf(&sb, "\timage:            %q\n", cfg.Vivado.Image)
	sb.WriteString("}\n")

	sb.WriteString("\nvendor: {\n")
	fmt.Fprintf(&sb, "\tname:         %q\n", cfg.Vendor.Name)
	fmt.Fprintf(&sb, "\tdisplay_name: %q\n", cfg.Vendor.DisplayName)
	fmt.Fprintf(&sb, "\turl:          %q\n", cfg.Vendor.URL)
	fmt.Fprintf(&sb, "\tlibrary:      %q\n", cfg.Vendor.Library)
	fmt.Fprintf(&sb, "\ttaxonomy:     %q\n", cfg.Vendor.Taxonomy)
	sb.WriteString("}\n")

	sb.WriteString("\ncore: {\n")
	fmt.Fprintf(&sb, "\tname:         %q\n", cfg.Core.Name)
	fmt.Fprintf(&sb, "\tversion:      %q\n", cfg.Core.Version)
	fmt.Fprintf(&sb, "\trevision:     %d\n", cfg.Core.Revision)
	fmt.Fprintf(&sb, "\tdisplay_name: %q\n", cfg.Core.DisplayName)
	fmt.Fprintf(&sb, "\tdescription:  %q\n", cfg.Core.Description)
	sb.WriteString("}\n")

	sb.WriteString("\ndefaults: {\n")
	fmt.Fprintf(&sb, "\taddress_width: %d\n", cfg.Defaults.AddressWidth)
	fmt.Fprintf(&sb, "\tinput_width:   %d\n", cfg.Defaults.InputWidth)
	fmt.Fprintf(&sb, "\toutput_width:  %d\n", cfg.Defaults.OutputWidth)
	fmt.Fprintf(&sb, "\tuser_width:    %d\n", cfg.Defaults.UserWidth)
	fmt.Fprintf(&sb, "\treverse:       %v\n", cfg.Defaults.Reverse)
	sb.WriteString("}\n")

	sb.WriteString("\nelaborate: {\n")
	fmt.Fprintf(&sb, "\tcommand:   %q\n", cfg.Elaborate.Command)
	fmt.Fprintf(&sb, "\tbuild_dir: %q\n", cfg.Elaborate.BuildDir)
	sb.WriteString("}\n")

	sb.WriteString("\npackaging: {\n")
	if len(cfg.Packaging.AuxiliaryFiles) == 0 {
		sb.WriteString("\t// e.g. [\"ila/ila.xci\"]\n")
		sb.WriteString("\tauxiliary_files: []\n")
	} else {
		sb.WriteString("\tauxiliary_files: [\n")
		for _, f := range cfg.Packaging.AuxiliaryFiles {
			fmt.Fprintf(&sb, "\t\t%q,\n", f)
		}
		sb.WriteString("\t]\n")
	}
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\noutput_dir: %q\n", cfg.OutputDir)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}
