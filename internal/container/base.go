// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"os/exec"
)

type (
	// ExecCommandFunc creates the exec.Cmd for an engine invocation.
	// Tests replace it to avoid running a real engine.
	ExecCommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

	// VolumeFormatFunc renders a volume mount for the -v flag.
	VolumeFormatFunc func(VolumeMount) string

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine holds the behavior shared by the Docker and Podman CLIs.
	BaseCLIEngine struct {
		name            string
		binaryPath      string
		execCommand     ExecCommandFunc
		volumeFormatter VolumeFormatFunc
		extraRunArgs    []string
	}
)

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) { e.name = name }
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) { e.execCommand = fn }
}

// WithVolumeFormatter sets a custom volume formatter.
func WithVolumeFormatter(fn VolumeFormatFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) { e.volumeFormatter = fn }
}

// WithExtraRunArgs adds flags placed right after "run --rm".
func WithExtraRunArgs(args ...string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) { e.extraRunArgs = append(e.extraRunArgs, args...) }
}

// NewBaseCLIEngine creates a base engine for the binary at binaryPath.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		binaryPath:      binaryPath,
		execCommand:     exec.CommandContext,
		volumeFormatter: VolumeMount.String,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine name.
func (e *BaseCLIEngine) Name() string { return e.name }

// BinaryPath returns the path to the engine binary, empty when not found.
func (e *BaseCLIEngine) BinaryPath() string { return e.binaryPath }

// Available reports whether the engine binary exists and answers "version".
func (e *BaseCLIEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	return e.execCommand(context.Background(), e.binaryPath, "version").Run() == nil
}

// RunArgs constructs arguments for a container run command.
//
// Generated command: <binary> run [options] <image> [command...]
func (e *BaseCLIEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}
	if opts.Remove {
		args = append(args, "--rm")
	}
	args = append(args, e.extraRunArgs...)
	for _, v := range opts.Volumes {
		args = append(args, "-v", e.volumeFormatter(v))
	}
	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}
	for _, kv := range opts.Env {
		args = append(args, "-e", kv)
	}
	args = append(args, opts.Image)
	return append(args, opts.Command...)
}

// Run runs a command in a container and returns the result.
// A non-zero exit code is captured in RunResult.ExitCode, not returned as error.
// An engine that dies without an exit status yields code 1 and RunResult.Error.
func (e *BaseCLIEngine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if e.binaryPath == "" {
		return nil, &EngineNotAvailableError{Engine: e.name, Reason: "binary not found in PATH"}
	}

	cmd := e.execCommand(ctx, e.binaryPath, e.RunArgs(opts)...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	result := &RunResult{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// ExitCode is -1 when the engine was killed by a signal.
			result.ExitCode = 1
			result.Error = err
		}
	}
	return result, nil
}
