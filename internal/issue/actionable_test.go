// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "package core"},
			expected: "failed to package core",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load configuration", Resource: "./config.cue"},
			expected: "failed to load configuration: ./config.cue",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "resolve parameters", Cause: errors.New("input_width must be positive")},
			expected: "failed to resolve parameters: input_width must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("exit status 1")
	err := NewErrorContext().
		WithOperation("run vivado").
		WithResource("packager.tcl").
		WithSuggestion("Read vivado.log").
		WithSuggestion("Run it by hand").
		WithSuggestion("Check the license").
		Wrap(fmt.Errorf("tool failed: %w", root)).
		Build()

	short := err.Format(false)
	if !strings.HasPrefix(short, "failed to run vivado: packager.tcl: tool failed: exit status 1") {
		t.Errorf("Format(false) = %q", short)
	}
	if strings.Count(short, "  • ") != 3 {
		t.Errorf("Format(false) suggestions = %d, want 3", strings.Count(short, "  • "))
	}
	if strings.Contains(short, "Error chain:") {
		t.Error("non-verbose format includes error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:\n  1. tool failed: exit status 1\n  2. exit status 1") {
		t.Errorf("Format(true) = %q", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}

	cause := errors.New("boom")
	err := NewErrorContext().WithOperation("package core").WithIssue(ExternalToolFailedId).Wrap(cause).BuildError()

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T", err)
	}
	if ae.Issue != ExternalToolFailedId || ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v", ae)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(cause) = false")
	}
}

func TestActionableError_Guide(t *testing.T) {
	t.Parallel()

	linked := NewErrorContext().WithOperation("find vivado").WithIssue(ToolNotFoundId).Build()
	out, ok := linked.Guide("notty")
	if !ok || !strings.Contains(out, "Vivado not found") {
		t.Errorf("Guide() = %q, %v", out, ok)
	}

	unlinked := NewErrorContext().WithOperation("run axiconv").Build()
	if _, ok := unlinked.Guide("notty"); ok {
		t.Error("Guide() without an issue reported a guide")
	}
}

func TestErrorContext_BuildCopiesSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("package core").WithSuggestion("first")
	first := ctx.Build()
	ctx.WithSuggestion("second")

	if len(first.Suggestions) != 1 {
		t.Errorf("Suggestions = %v, later builder calls leaked into a built error", first.Suggestions)
	}
}
