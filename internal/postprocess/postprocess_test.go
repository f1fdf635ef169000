// SPDX-License-Identifier: MPL-2.0

package postprocess

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebo83910/litex-axi-converter/internal/params"
	"github.com/sebo83910/litex-axi-converter/internal/params/paramstest"
)

const netlist = `module axi_converter_128b_to_64b(
	input wire axis_clk,
	input wire axis_rst
);

reg [1:0] state = 2'd0;

function f(
	input a
);
endfunction
endmodule
`

func TestInjectParameters(t *testing.T) {
	t.Parallel()

	cfg := paramstest.Resolve(t, params.RawArgs{Reverse: params.Bool(true)})
	got, err := InjectParametersString(netlist, cfg)
	if err != nil {
		t.Fatalf("InjectParameters() error: %v", err)
	}

	lines := strings.Split(got, "\n")
	marker := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == PortListEnd {
			marker = i
			break
		}
	}
	if marker < 0 {
		t.Fatal("marker line missing from output")
	}

	want := []string{
		"parameter address_width = 64;",
		"parameter input_width = 128;",
		"parameter output_width = 64;",
		"parameter user_width = 0;",
		"parameter reverse = 1;",
	}
	for i, w := range want {
		if lines[marker+1+i] != w {
			t.Errorf("line %d = %q, want %q", marker+1+i, lines[marker+1+i], w)
		}
		if n := strings.Count(got, w); n != 1 {
			t.Errorf("%q appears %d times, want 1", w, n)
		}
	}
	if n := strings.Count(got, "parameter "); n != len(want) {
		t.Errorf("parameter lines = %d, want %d", n, len(want))
	}

	// Everything else is untouched.
	stripped := got
	for _, w := range want {
		stripped = strings.Replace(stripped, w+"\n", "", 1)
	}
	if stripped != netlist {
		t.Errorf("non-parameter content changed:\n%s", stripped)
	}
}

func TestInjectParameters_PreservesCRLF(t *testing.T) {
	t.Parallel()

	in := "module m(\r\n\tinput a\r\n);\r\nendmodule\r\n"
	got, err := InjectParametersString(in, paramstest.Default(t))
	if err != nil {
		t.Fatalf("InjectParameters() error: %v", err)
	}
	if !strings.HasPrefix(got, "module m(\r\n\tinput a\r\n);\r\nparameter address_width = 64;\r\n") {
		t.Errorf("output = %q", got)
	}
	if strings.Contains(strings.ReplaceAll(got, "\r\n", ""), "\n") {
		t.Errorf("output mixes line endings: %q", got)
	}
}

func TestInjectParameters_MarkerOnLastLine(t *testing.T) {
	t.Parallel()

	got, err := InjectParametersString("module m(\n);", paramstest.Default(t))
	if err != nil {
		t.Fatalf("InjectParameters() error: %v", err)
	}
	if !strings.HasPrefix(got, "module m(\n);\nparameter address_width = 64;\n") {
		t.Errorf("output = %q", got)
	}
}

func TestInjectParameters_MissingMarker(t *testing.T) {
	t.Parallel()

	_, err := InjectParametersString("module m;\nendmodule\n", paramstest.Default(t))
	if !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("error = %v, want ErrMissingMarker", err)
	}
}

func TestTruncateConstraints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no marker", "no marker here\nmore text", ""},
		{"marker", "junk\n-- design constraints --\nkeep me", "-- design constraints --\nkeep me"},
		{"first marker wins", "a\n# design constraints\nb\n# design constraints\n", "# design constraints\nb\n# design constraints\n"},
		{"case sensitive", "# Design Constraints\nx\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateConstraintsString(tt.in); got != tt.want {
				t.Errorf("TruncateConstraints(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	netlistPath := filepath.Join(dir, "core.v")
	xdcPath := filepath.Join(dir, "core.xdc")
	if err := os.WriteFile(netlistPath, []byte(netlist), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdcPath, []byte("# vendor\n# design constraints\nset_false_path\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := InjectParametersFile(netlistPath, netlistPath, paramstest.Default(t)); err != nil {
		t.Fatalf("InjectParametersFile() error: %v", err)
	}
	data, err := os.ReadFile(netlistPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "parameter ") != 5 {
		t.Errorf("netlist has %d parameters, want 5", strings.Count(string(data), "parameter "))
	}

	found, err := TruncateConstraintsFile(xdcPath, xdcPath)
	if err != nil || !found {
		t.Fatalf("TruncateConstraintsFile() = %v, %v", found, err)
	}
	data, err = os.ReadFile(xdcPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# design constraints\nset_false_path\n" {
		t.Errorf("constraints = %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("directory has %d entries, temporary files left behind", len(entries))
	}
}

func TestInjectParametersFile_MissingMarkerKeepsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "core.v")
	if err := os.WriteFile(path, []byte("module m;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := InjectParametersFile(path, path, paramstest.Default(t))
	var mme *MissingMarkerError
	if !errors.As(err, &mme) || mme.File != path {
		t.Fatalf("error = %v, want MissingMarkerError for %s", err, path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "module m;\n" {
		t.Errorf("file modified on error: %q", data)
	}
}

func TestFiles_SeparateDestination(t *testing.T) {
	t.Parallel()

	srcDir, dstDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "core.v")
	if err := os.WriteFile(src, []byte(netlist), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dstDir, "core.v")
	if err := InjectParametersFile(src, dst, paramstest.Default(t)); err != nil {
		t.Fatalf("InjectParametersFile() error: %v", err)
	}
	if data, _ := os.ReadFile(src); string(data) != netlist {
		t.Error("source netlist modified")
	}
	if data, _ := os.ReadFile(dst); strings.Count(string(data), "parameter ") != 5 {
		t.Errorf("destination netlist = %q", data)
	}

	bad := filepath.Join(srcDir, "bad.v")
	if err := os.WriteFile(bad, []byte("module m;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	badDst := filepath.Join(dstDir, "bad.v")
	if err := InjectParametersFile(bad, badDst, paramstest.Default(t)); !errors.Is(err, ErrMissingMarker) {
		t.Fatalf("error = %v, want ErrMissingMarker", err)
	}
	if _, err := os.Stat(badDst); !errors.Is(err, os.ErrNotExist) {
		t.Error("destination written although the marker is missing")
	}
}
