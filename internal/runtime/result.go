// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a tool exit status, 0 through 255. Zero is success.
	ExitCode int

	// InvalidExitCodeError reports a status outside 0-255, as produced by
	// a process killed by a signal.
	InvalidExitCodeError struct {
		Value ExitCode
	}

	// Result is the outcome of one invocation.
	Result struct {
		// ExitCode is the tool's exit status.
		ExitCode ExitCode
		// Error is set when the tool could not be run at all.
		Error error
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d out of range 0-255", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is() compatibility.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate rejects codes no process can exit with.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports a zero status.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the tool ran and exited 0.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// resultFromError maps an exec error to a Result. A process that ran and
// exited non-zero is not an error; failing to start it is.
func resultFromError(err error) *Result {
	if err == nil {
		return NewSuccessResult()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := ExitCode(exitErr.ExitCode())
		if verr := code.Validate(); verr != nil {
			// killed by a signal
			return NewErrorResult(1, err)
		}
		return NewExitCodeResult(code)
	}
	return NewErrorResult(1, err)
}
