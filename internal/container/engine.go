// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// EngineTypePodman selects the Podman CLI.
	EngineTypePodman EngineType = "podman"
	// EngineTypeDocker selects the Docker CLI.
	EngineTypeDocker EngineType = "docker"
)

var (
	// ErrEngineNotAvailable is the sentinel error wrapped by EngineNotAvailableError.
	ErrEngineNotAvailable = errors.New("container engine not available")

	// ErrInvalidVolumeMount is the sentinel error wrapped by InvalidVolumeMountError.
	ErrInvalidVolumeMount = errors.New("invalid volume mount")
)

type (
	// EngineType identifies the container engine type.
	EngineType string

	// Engine runs commands in throwaway containers.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available checks if the engine is usable on this system.
		Available() bool
		// Run runs a command in a new container and waits for it to exit.
		Run(ctx context.Context, opts RunOptions) (*RunResult, error)
	}

	// VolumeMount binds a host directory into the container.
	VolumeMount struct {
		Host      string
		Container string
		ReadOnly  bool
	}

	// RunOptions contains options for running a container.
	RunOptions struct {
		Image   string
		Command []string
		// WorkDir is the working directory inside the container.
		WorkDir string
		// Env entries in KEY=VALUE form, passed in order.
		Env     []string
		Volumes []VolumeMount
		// Remove automatically removes the container after exit.
		Remove bool
		Stdout io.Writer
		Stderr io.Writer
	}

	// RunResult contains the result of running a container.
	RunResult struct {
		// ExitCode is the exit status of the command, or of the engine when
		// the container could not start.
		ExitCode int
		// Error is set only for infrastructure failures (binary missing, etc.).
		Error error
	}

	// EngineNotAvailableError is returned when no requested engine is usable.
	EngineNotAvailableError struct {
		Engine string
		Reason string
	}

	// InvalidVolumeMountError reports a volume mount with an empty side.
	InvalidVolumeMountError struct {
		Mount VolumeMount
	}
)

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrEngineNotAvailable for errors.Is() compatibility.
func (e *EngineNotAvailableError) Unwrap() error { return ErrEngineNotAvailable }

// Error implements the error interface.
func (e *InvalidVolumeMountError) Error() string {
	return fmt.Sprintf("invalid volume mount %q: host and container paths are required", e.Mount.String())
}

// Unwrap returns ErrInvalidVolumeMount for errors.Is() compatibility.
func (e *InvalidVolumeMountError) Unwrap() error { return ErrInvalidVolumeMount }

// String returns the mount in "host:container[:ro]" format.
func (v VolumeMount) String() string {
	s := v.Host + ":" + v.Container
	if v.ReadOnly {
		s += ":ro"
	}
	return s
}

// Validate checks that both paths are set.
func (v VolumeMount) Validate() error {
	if strings.TrimSpace(v.Host) == "" || strings.TrimSpace(v.Container) == "" {
		return &InvalidVolumeMountError{Mount: v}
	}
	return nil
}

// Validate checks the options before anything is executed.
func (o RunOptions) Validate() error {
	var errs []error
	if strings.TrimSpace(o.Image) == "" {
		errs = append(errs, errors.New("image is required"))
	}
	for _, v := range o.Volumes {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewEngine returns the preferred engine, falling back to the other one.
func NewEngine(preferred EngineType) (Engine, error) {
	var first, second Engine
	switch preferred {
	case EngineTypePodman:
		first, second = NewPodmanEngine(), NewDockerEngine()
	case EngineTypeDocker:
		first, second = NewDockerEngine(), NewPodmanEngine()
	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferred)
	}

	if first.Available() {
		return first, nil
	}
	if second.Available() {
		return second, nil
	}
	return nil, &EngineNotAvailableError{
		Engine: string(preferred),
		Reason: fmt.Sprintf("%s is not installed or not accessible, and %s fallback is also not available", first.Name(), second.Name()),
	}
}
