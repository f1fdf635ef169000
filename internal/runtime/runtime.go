// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Runtime kinds selectable from configuration.
const (
	KindNative    Kind = "native"
	KindContainer Kind = "container"
	KindVirtual   Kind = "virtual"
)

var (
	// ErrRuntimeNotAvailable is the sentinel error wrapped by RuntimeNotAvailableError.
	ErrRuntimeNotAvailable = errors.New("runtime not available")

	// ErrUnknownRuntime is returned for runtime kinds no registry entry matches.
	ErrUnknownRuntime = errors.New("unknown runtime")
)

type (
	// Kind identifies a runtime implementation.
	Kind string

	// Invocation describes one tool run.
	Invocation struct {
		// Dir is the host working directory. Script paths are relative to it.
		Dir string
		// Root is the directory tree the scripts may reach into, Dir or one
		// of its parents. Empty means Dir. Only isolating runtimes use it.
		Root string
		// Script is the script file handed to the tool.
		Script string
		// Inline is program text for runtimes that interpret it themselves.
		// When set, Script is ignored by those runtimes.
		Inline string
		// Env entries in KEY=VALUE form, added to the inherited environment.
		Env    []string
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runtime runs an invocation to completion.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Available reports whether the runtime can run on this system.
		Available() bool
		// Run blocks until the tool exits.
		Run(ctx context.Context, inv Invocation) *Result
	}

	// CommandLiner is implemented by runtimes that can show the command they run.
	CommandLiner interface {
		CommandLine(inv Invocation) []string
	}

	// RuntimeNotAvailableError reports a runtime whose tool cannot be found.
	//
	//nolint:revive // RuntimeNotAvailableError reads better at call sites than NotAvailableError
	RuntimeNotAvailableError struct {
		Runtime string
		Tool    string
	}

	// Registry maps runtime kinds to implementations.
	Registry struct {
		runtimes map[Kind]Runtime
	}
)

// Error implements the error interface.
func (e *RuntimeNotAvailableError) Error() string {
	return fmt.Sprintf("runtime '%s' is not available: %s not found", e.Runtime, e.Tool)
}

// Unwrap returns ErrRuntimeNotAvailable for errors.Is() compatibility.
func (e *RuntimeNotAvailableError) Unwrap() error { return ErrRuntimeNotAvailable }

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{runtimes: make(map[Kind]Runtime)}
}

// Register adds a runtime under the given kind.
func (r *Registry) Register(kind Kind, rt Runtime) {
	r.runtimes[kind] = rt
}

// Get returns the runtime registered for kind.
func (r *Registry) Get(kind Kind) (Runtime, error) {
	rt, ok := r.runtimes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuntime, kind)
	}
	return rt, nil
}

// FormatCommandLine renders argv as a single shell-quoted line for logs
// and diagnostics. Words that cannot be quoted are shown as-is.
func FormatCommandLine(argv []string) string {
	words := make([]string, len(argv))
	for i, a := range argv {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = a
		}
		words[i] = q
	}
	return strings.Join(words, " ")
}
