// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// DefaultToolArgs run the vendor tool non-interactively on a script.
var DefaultToolArgs = []string{"-mode", "batch", "-source"}

// NativeRuntime runs a tool binary installed on the host:
// <Binary> <Args...> <script>, in the invocation directory.
type NativeRuntime struct {
	Binary string
	// Args precede the script path. Nil means DefaultToolArgs.
	Args []string

	lookPath func(string) (string, error)
}

// NewNativeRuntime creates a native runtime for binary.
func NewNativeRuntime(binary string) *NativeRuntime {
	return &NativeRuntime{Binary: binary}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string {
	return string(KindNative)
}

// Available reports whether the binary is on PATH.
func (r *NativeRuntime) Available() bool {
	_, err := r.look()
	return err == nil
}

// CommandLine returns the argv Run executes.
func (r *NativeRuntime) CommandLine(inv Invocation) []string {
	args := r.Args
	if args == nil {
		args = DefaultToolArgs
	}
	argv := append([]string{r.Binary}, args...)
	return append(argv, inv.Script)
}

// Run executes the tool and waits for it.
func (r *NativeRuntime) Run(ctx context.Context, inv Invocation) *Result {
	path, err := r.look()
	if err != nil {
		return NewErrorResult(1, &RuntimeNotAvailableError{Runtime: r.Name(), Tool: r.Binary})
	}

	argv := r.CommandLine(inv)
	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = append(os.Environ(), inv.Env...)
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	res := resultFromError(cmd.Run())
	if res.Error != nil {
		res.Error = fmt.Errorf("failed to execute %s: %w", r.Binary, res.Error)
	}
	return res
}

func (r *NativeRuntime) look() (string, error) {
	if r.lookPath != nil {
		return r.lookPath(r.Binary)
	}
	return exec.LookPath(r.Binary)
}
