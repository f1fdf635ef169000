// SPDX-License-Identifier: MPL-2.0

package postprocess

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sebo83910/litex-axi-converter/internal/params"
)

const (
	// PortListEnd is the trimmed content of the line closing a Verilog
	// module port list.
	PortListEnd = ");"
	// ConstraintsMarker opens the user section of a generated constraints file.
	ConstraintsMarker = "design constraints"
)

// ErrMissingMarker is the sentinel error wrapped by MissingMarkerError.
var ErrMissingMarker = errors.New("marker not found")

// MissingMarkerError reports a netlist with no end-of-port-list line.
type MissingMarkerError struct {
	Marker string
	// File is set by callers that know the artifact path.
	File string
}

// Error implements the error interface.
func (e *MissingMarkerError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: no %q line", e.File, e.Marker)
	}
	return fmt.Sprintf("no %q line", e.Marker)
}

// Unwrap returns ErrMissingMarker for errors.Is() compatibility.
func (e *MissingMarkerError) Unwrap() error { return ErrMissingMarker }

// ParameterLine renders one Verilog parameter declaration.
func ParameterLine(g params.Generic) string {
	return fmt.Sprintf("parameter %s = %s;", g.Name, g.Value)
}

// InjectParameters copies the netlist from r to w, inserting one parameter
// declaration per configuration field right after the first end-of-port-list
// line. Later lines matching the marker are copied unchanged.
func InjectParameters(r io.Reader, w io.Writer, cfg params.BuildConfiguration) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	injected := false

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read netlist: %w", err)
		}
		if line == "" && err != nil {
			break
		}

		if _, werr := bw.WriteString(line); werr != nil {
			return fmt.Errorf("write netlist: %w", werr)
		}

		if !injected && strings.TrimSpace(line) == PortListEnd {
			eol := lineEnding(line)
			if eol == "" {
				// marker on the last line without terminator
				eol = "\n"
				if _, werr := bw.WriteString(eol); werr != nil {
					return fmt.Errorf("write netlist: %w", werr)
				}
			}
			for _, g := range cfg.Generics() {
				if _, werr := bw.WriteString(ParameterLine(g) + eol); werr != nil {
					return fmt.Errorf("write netlist: %w", werr)
				}
			}
			injected = true
		}

		if err != nil {
			break
		}
	}

	if !injected {
		return &MissingMarkerError{Marker: PortListEnd}
	}
	return bw.Flush()
}

// TruncateConstraints copies r to w starting at the first line containing
// the design constraints marker. Without a marker nothing is written and
// found is false.
func TruncateConstraints(r io.Reader, w io.Writer) (found bool, err error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		line, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return found, fmt.Errorf("read constraints: %w", rerr)
		}

		if !found && strings.Contains(line, ConstraintsMarker) {
			found = true
		}
		if found && line != "" {
			if _, werr := bw.WriteString(line); werr != nil {
				return found, fmt.Errorf("write constraints: %w", werr)
			}
		}

		if rerr != nil {
			break
		}
	}

	return found, bw.Flush()
}

// InjectParametersString is InjectParameters over strings.
func InjectParametersString(netlist string, cfg params.BuildConfiguration) (string, error) {
	var b strings.Builder
	if err := InjectParameters(strings.NewReader(netlist), &b, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

// TruncateConstraintsString is TruncateConstraints over strings.
func TruncateConstraintsString(constraints string) string {
	var b strings.Builder
	// strings.Reader and strings.Builder never fail
	_, _ = TruncateConstraints(strings.NewReader(constraints), &b)
	return b.String()
}

func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}
