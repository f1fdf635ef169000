// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"

	"github.com/sebo83910/litex-axi-converter/internal/runtime"
)

var (
	// ErrExternalToolFailure is the sentinel error wrapped by ExternalToolFailureError.
	ErrExternalToolFailure = errors.New("external tool failed")

	// ErrMissingArtifact is the sentinel error wrapped by MissingArtifactError.
	ErrMissingArtifact = errors.New("missing artifact")

	// ErrNoOperationRequested is returned when no stage was requested.
	ErrNoOperationRequested = errors.New("no operation requested")
)

type (
	// ExternalToolFailureError reports a tool that could not run or exited non-zero.
	// The output directory is left in place for inspection.
	ExternalToolFailureError struct {
		Stage  Stage
		Tool   string
		Script string
		// ExitCode is the tool's exit status, propagated verbatim.
		ExitCode runtime.ExitCode
		// Cause is set when the tool could not be started at all.
		Cause error
	}

	// MissingArtifactError reports an input file a stage requires but cannot find.
	MissingArtifactError struct {
		Stage Stage
		Path  string
		// Reason optionally explains where the file should have come from.
		Reason string
	}
)

// Error implements the error interface.
func (e *ExternalToolFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s stage: %s: %v", e.Stage, e.Tool, e.Cause)
	}
	return fmt.Sprintf("%s stage: %s exited with status %d running %s", e.Stage, e.Tool, e.ExitCode, e.Script)
}

// Unwrap returns ErrExternalToolFailure and the cause, if any.
func (e *ExternalToolFailureError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrExternalToolFailure, e.Cause}
	}
	return []error{ErrExternalToolFailure}
}

// Error implements the error interface.
func (e *MissingArtifactError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s stage: missing %s (%s)", e.Stage, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s stage: missing %s", e.Stage, e.Path)
}

// Unwrap returns ErrMissingArtifact for errors.Is() compatibility.
func (e *MissingArtifactError) Unwrap() error { return ErrMissingArtifact }
