// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime interprets POSIX shell with the embedded mvdan/sh
// interpreter, so shell commands from configuration behave the same on
// every host. External commands still resolve through PATH.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a virtual shell runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string {
	return string(KindVirtual)
}

// Available always returns true: the interpreter is built in.
func (r *VirtualRuntime) Available() bool {
	return true
}

// Run interprets inv.Inline, or the script file when Inline is empty.
func (r *VirtualRuntime) Run(ctx context.Context, inv Invocation) *Result {
	prog, err := r.parse(inv)
	if err != nil {
		return NewErrorResult(1, err)
	}

	dir := inv.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return NewErrorResult(1, fmt.Errorf("determine working directory: %w", err))
		}
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(append(os.Environ(), inv.Env...)...)),
		interp.StdIO(nil, writerOrDiscard(inv.Stdout), writerOrDiscard(inv.Stderr)),
	)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create interpreter: %w", err))
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("script execution failed: %w", err))
	}
	return NewSuccessResult()
}

func (r *VirtualRuntime) parse(inv Invocation) (*syntax.File, error) {
	src, name := inv.Inline, "inline"
	if src == "" {
		path := inv.Script
		if !filepath.IsAbs(path) {
			path = filepath.Join(inv.Dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		src, name = string(data), inv.Script
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return prog, nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
