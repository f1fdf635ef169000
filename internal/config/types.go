// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sebo83910/litex-axi-converter/internal/params"
)

const (
	// ContainerEnginePodman uses Podman as the container runtime.
	ContainerEnginePodman ContainerEngine = "podman"
	// ContainerEngineDocker uses Docker as the container runtime.
	ContainerEngineDocker ContainerEngine = "docker"

	// RuntimeNative runs the host installation of the tool.
	RuntimeNative RuntimeMode = "native"
	// RuntimeContainer runs the tool inside a container image.
	RuntimeContainer RuntimeMode = "container"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidConfigRuntimeMode is returned when a config RuntimeMode value is not recognized.
	ErrInvalidConfigRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container runtime to use.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// RuntimeMode selects how the vendor tool is run.
	RuntimeMode string

	// InvalidConfigRuntimeModeError is returned when a config RuntimeMode value is not recognized.
	InvalidConfigRuntimeModeError struct {
		Value RuntimeMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It collects field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Vivado    VivadoConfig    `json:"vivado" mapstructure:"vivado"`
		Vendor    VendorConfig    `json:"vendor" mapstructure:"vendor"`
		Core      CoreConfig      `json:"core" mapstructure:"core"`
		Defaults  DefaultsConfig  `json:"defaults" mapstructure:"defaults"`
		Elaborate ElaborateConfig `json:"elaborate" mapstructure:"elaborate"`
		Packaging PackageConfig   `json:"packaging" mapstructure:"packaging"`
		// OutputDir holds the package, interface and project directories.
		OutputDir string   `json:"output_dir" mapstructure:"output_dir"`
		UI        UIConfig `json:"ui" mapstructure:"ui"`
	}

	// VivadoConfig selects and locates the packaging tool.
	VivadoConfig struct {
		Binary string `json:"binary" mapstructure:"binary"`
		// Mode is passed as -mode; "batch" exits when the script ends.
		Mode string `json:"mode" mapstructure:"mode"`
		// Part is the FPGA part of the demo project.
		Part            string          `json:"part" mapstructure:"part"`
		Runtime         RuntimeMode     `json:"runtime" mapstructure:"runtime"`
		ContainerEngine ContainerEngine `json:"container_engine" mapstructure:"container_engine"`
		Image           string          `json:"image" mapstructure:"image"`
	}

	// VendorConfig identifies the IP vendor.
	VendorConfig struct {
		Name        string `json:"name" mapstructure:"name"`
		DisplayName string `json:"display_name" mapstructure:"display_name"`
		URL         string `json:"url" mapstructure:"url"`
		Library     string `json:"library" mapstructure:"library"`
		Taxonomy    string `json:"taxonomy" mapstructure:"taxonomy"`
	}

	// CoreConfig identifies the packaged core.
	CoreConfig struct {
		// Name prefixes the build name: <name>_<in>b_to_<out>b.
		Name        string `json:"name" mapstructure:"name"`
		Version     string `json:"version" mapstructure:"version"`
		Revision    int    `json:"revision" mapstructure:"revision"`
		DisplayName string `json:"display_name" mapstructure:"display_name"`
		Description string `json:"description" mapstructure:"description"`
	}

	// DefaultsConfig holds the build parameters used when no flag is given.
	DefaultsConfig struct {
		AddressWidth int  `json:"address_width" mapstructure:"address_width"`
		InputWidth   int  `json:"input_width" mapstructure:"input_width"`
		OutputWidth  int  `json:"output_width" mapstructure:"output_width"`
		UserWidth    int  `json:"user_width" mapstructure:"user_width"`
		Reverse      bool `json:"reverse" mapstructure:"reverse"`
	}

	// ElaborateConfig configures the external elaboration step.
	ElaborateConfig struct {
		// Command is a shell command producing <build_dir>/<build>.v and .xdc.
		Command  string `json:"command" mapstructure:"command"`
		BuildDir string `json:"build_dir" mapstructure:"build_dir"`
	}

	// PackageConfig configures the packaging step.
	PackageConfig struct {
		// AuxiliaryFiles are registered with the core after netlist and constraints.
		AuxiliaryFiles []string `json:"auxiliary_files" mapstructure:"auxiliary_files"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	d := params.StandardDefaults()
	return &Config{
		Vivado: VivadoConfig{
			Binary:          "vivado",
			Mode:            "batch",
			Part:            "xc7z010iclg225-1L",
			Runtime:         RuntimeNative,
			ContainerEngine: ContainerEnginePodman,
			Image:           "",
		},
		Vendor: VendorConfig{
			Name:        "enjoy-digital.com",
			DisplayName: "Enjoy-Digital",
			URL:         "http://enjoy-digital.fr",
			Library:     "user",
			Taxonomy:    "/UserIP",
		},
		Core: CoreConfig{
			Name:        "axi_converter",
			Version:     "1.3",
			Revision:    1,
			DisplayName: "AXI Converter",
			Description: "AXI-Stream data width converter",
		},
		Defaults: DefaultsConfig{
			AddressWidth: d.AddressWidth,
			InputWidth:   d.InputWidth,
			OutputWidth:  d.OutputWidth,
			UserWidth:    d.UserWidth,
			Reverse:      d.Reverse,
		},
		Elaborate: ElaborateConfig{
			Command:  "",
			BuildDir: "build",
		},
		Packaging: PackageConfig{AuxiliaryFiles: []string{}},
		OutputDir: ".",
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Params converts the defaults section to resolver defaults.
func (d DefaultsConfig) Params() params.Defaults {
	return params.Defaults{
		AddressWidth: d.AddressWidth,
		InputWidth:   d.InputWidth,
		OutputWidth:  d.OutputWidth,
		UserWidth:    d.UserWidth,
		Reverse:      d.Reverse,
	}
}

// IsValid returns whether the Config has valid enumerated fields.
// Values coming from the file are already checked by the CUE schema;
// this also covers environment overrides.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Vivado.Runtime.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Vivado.ContainerEngine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Vivado.Runtime == RuntimeContainer && strings.TrimSpace(c.Vivado.Image) == "" {
		errs = append(errs, errors.New("vivado.image is required with the container runtime"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and every field error for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: podman, docker)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// String returns the string representation of the ContainerEngine.
func (ce ContainerEngine) String() string { return string(ce) }

// IsValid returns whether the ContainerEngine is one of the defined engine types,
// and a list of validation errors if it is not.
func (ce ContainerEngine) IsValid() (bool, []error) {
	switch ce {
	case ContainerEnginePodman, ContainerEngineDocker:
		return true, nil
	default:
		return false, []error{&InvalidContainerEngineError{Value: ce}}
	}
}

// Error implements the error interface for InvalidConfigRuntimeModeError.
func (e *InvalidConfigRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: native, container)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidConfigRuntimeModeError) Unwrap() error { return ErrInvalidConfigRuntimeMode }

// String returns the string representation of the config RuntimeMode.
func (m RuntimeMode) String() string { return string(m) }

// IsValid returns whether the RuntimeMode is one of the defined runtime modes,
// and a list of validation errors if it is not.
func (m RuntimeMode) IsValid() (bool, []error) {
	switch m {
	case RuntimeNative, RuntimeContainer:
		return true, nil
	default:
		return false, []error{&InvalidConfigRuntimeModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// GlamourStyle maps the color scheme to a glamour standard style.
func (cs ColorScheme) GlamourStyle() string {
	switch cs {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
