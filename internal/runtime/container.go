// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/sebo83910/litex-axi-converter/internal/container"
)

// ContainerWorkDir is where the invocation root is mounted.
const ContainerWorkDir = "/work"

// ContainerRuntime runs the tool inside an image through a container engine.
// The invocation root is mounted read-write at ContainerWorkDir.
type ContainerRuntime struct {
	Engine container.Engine
	Image  string
	Binary string
	// Args precede the script path. Nil means DefaultToolArgs.
	Args []string
}

// NewContainerRuntime creates a container runtime.
func NewContainerRuntime(engine container.Engine, image, binary string) *ContainerRuntime {
	return &ContainerRuntime{Engine: engine, Image: image, Binary: binary}
}

// Name returns the runtime name.
func (r *ContainerRuntime) Name() string {
	return string(KindContainer)
}

// Available reports whether the engine is usable.
func (r *ContainerRuntime) Available() bool {
	return r.Engine != nil && r.Engine.Available()
}

// CommandLine returns the argv run inside the container.
func (r *ContainerRuntime) CommandLine(inv Invocation) []string {
	args := r.Args
	if args == nil {
		args = DefaultToolArgs
	}
	argv := append([]string{r.Binary}, args...)
	return append(argv, inv.Script)
}

// Run starts a throwaway container and waits for the tool to exit.
// inv.Root is mounted at ContainerWorkDir and the tool runs in the
// matching subdirectory of inv.Dir, so relative paths out of Dir resolve.
func (r *ContainerRuntime) Run(ctx context.Context, inv Invocation) *Result {
	if r.Engine == nil {
		return NewErrorResult(1, &RuntimeNotAvailableError{Runtime: r.Name(), Tool: "container engine"})
	}

	root, workDir, err := containerPaths(inv)
	if err != nil {
		return NewErrorResult(1, err)
	}

	res, err := r.Engine.Run(ctx, container.RunOptions{
		Image:   r.Image,
		Command: r.CommandLine(inv),
		WorkDir: workDir,
		Env:     inv.Env,
		Volumes: []container.VolumeMount{{Host: root, Container: ContainerWorkDir}},
		Remove:  true,
		Stdout:  inv.Stdout,
		Stderr:  inv.Stderr,
	})
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("%s run: %w", r.Engine.Name(), err))
	}

	code := ExitCode(res.ExitCode)
	if verr := code.Validate(); verr != nil {
		return NewErrorResult(1, fmt.Errorf("%s run: %w", r.Engine.Name(), verr))
	}
	if res.Error != nil {
		return NewErrorResult(code, fmt.Errorf("%s run: %w", r.Engine.Name(), res.Error))
	}
	return NewExitCodeResult(code)
}

// containerPaths returns the absolute host directory to mount and the
// container working directory matching inv.Dir.
func containerPaths(inv Invocation) (root, workDir string, err error) {
	dir, err := filepath.Abs(inv.Dir)
	if err != nil {
		return "", "", fmt.Errorf("resolve working directory: %w", err)
	}
	if inv.Root == "" {
		return dir, ContainerWorkDir, nil
	}

	root, err = filepath.Abs(inv.Root)
	if err != nil {
		return "", "", fmt.Errorf("resolve mount root: %w", err)
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("working directory %s is outside mount root %s", dir, root)
	}
	return root, path.Join(ContainerWorkDir, filepath.ToSlash(rel)), nil
}
