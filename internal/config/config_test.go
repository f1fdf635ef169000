// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sebo83910/litex-axi-converter/internal/issue"
	"github.com/sebo83910/litex-axi-converter/internal/params"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Path != "" {
		t.Errorf("Path = %q, want empty", loaded.Path)
	}
	if !reflect.DeepEqual(loaded.Config, DefaultConfig()) {
		t.Errorf("Load() = %+v, want defaults %+v", loaded.Config, DefaultConfig())
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `core: version: "2.0"
defaults: {input_width: 256, user_width: 4}
`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	cfg := loaded.Config
	if cfg.Core.Version != "2.0" {
		t.Errorf("Core.Version = %q, want 2.0", cfg.Core.Version)
	}
	if cfg.Defaults.InputWidth != 256 || cfg.Defaults.UserWidth != 4 {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	// Untouched keys keep their defaults.
	if cfg.Defaults.OutputWidth != params.DefaultOutputWidth || cfg.Core.Name != "axi_converter" {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown field", "colour: \"red\"\n", "colour"},
		{"wrong type", "defaults: input_width: \"wide\"\n", "defaults.input_width"},
		{"negative width", "defaults: user_width: -1\n", "defaults.user_width"},
		{"bad runtime", "vivado: runtime: \"remote\"\n", "vivado.runtime"},
		{"taxonomy without slash", "vendor: taxonomy: \"UserIP\"\n", "vendor.taxonomy"},
		{"syntax error", "vivado: {\n", "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tt.content)
			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("Load() succeeded, want schema error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error type = %T, want *issue.ActionableError", err)
			}
			if ae.Issue != issue.ConfigLoadFailedId {
				t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("Load() error = %v, want not found", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AXICONV_VIVADO_BINARY", "/opt/Xilinx/bin/vivado")
	t.Setenv("AXICONV_DEFAULTS_REVERSE", "true")

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Config.Vivado.Binary != "/opt/Xilinx/bin/vivado" {
		t.Errorf("Vivado.Binary = %q", loaded.Config.Vivado.Binary)
	}
	if !loaded.Config.Defaults.Reverse {
		t.Error("Defaults.Reverse = false, want true")
	}
}

func TestLoad_EnvInvalidEnum(t *testing.T) {
	t.Setenv("AXICONV_VIVADO_RUNTIME", "remote")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, ErrInvalidConfigRuntimeMode) {
		t.Errorf("Load() error = %v, want ErrInvalidConfigRuntimeMode in chain", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Packaging.AuxiliaryFiles = []string{"ila/ila.xci"}
	want.Vivado.Runtime = RuntimeContainer
	want.Vivado.Image = "registry.local/vivado:2023.2"

	path := writeConfig(t, GenerateCUE(want))
	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Config, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded.Config, want)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.cue")
	got, err := CreateDefaultConfig(path, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}

	if err := os.WriteFile(path, []byte("// mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(path, false); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(path); string(data) != "// mine\n" {
		t.Error("existing file overwritten without force")
	}

	if _, err := CreateDefaultConfig(path, true); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(path); string(data) != GenerateCUE(DefaultConfig()) {
		t.Error("force did not rewrite the file")
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"bad engine", func(c *Config) { c.Vivado.ContainerEngine = "lxc" }, ErrInvalidContainerEngine},
		{"bad color scheme", func(c *Config) { c.UI.ColorScheme = "neon" }, ErrInvalidColorScheme},
		{"container without image", func(c *Config) { c.Vivado.Runtime = RuntimeContainer }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			valid, errs := cfg.IsValid()
			if tt.wantErr == nil {
				if !valid {
					t.Errorf("IsValid() = false, %v", errs)
				}
				return
			}
			if valid || len(errs) != 1 || !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("IsValid() = %v, %v; want %v", valid, errs, tt.wantErr)
			}
		})
	}
}

func TestDefaultsConfig_Params(t *testing.T) {
	t.Parallel()

	if got := DefaultConfig().Defaults.Params(); got != params.StandardDefaults() {
		t.Errorf("Params() = %+v, want %+v", got, params.StandardDefaults())
	}
}
