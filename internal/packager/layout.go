// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File and directory names of the pipeline outputs.
const (
	ScriptName          = "packager.tcl"
	InterfaceScriptName = "interface.tcl"
	ProjectScriptName   = "project.tcl"
	ManifestName        = "manifest.toml"

	InterfaceDirName = "interfaces"
	packageDirPrefix = "package_"
	projectDirPrefix = "project_"

	netlistExt     = ".v"
	constraintsExt = ".xdc"
)

// Layout places pipeline outputs on disk.
type Layout struct {
	// Root holds package_<build>, project_<build> and interfaces.
	Root string
	// BuildDir holds the elaboration outputs <build>.v and <build>.xdc.
	BuildDir string
}

// PackageDir returns the package directory of a build.
func (l Layout) PackageDir(build string) string {
	return filepath.Join(l.Root, packageDirPrefix+build)
}

// ProjectDir returns the demo project directory of a build.
func (l Layout) ProjectDir(build string) string {
	return filepath.Join(l.Root, projectDirPrefix+build)
}

// InterfaceDir returns the directory holding custom bus definitions.
func (l Layout) InterfaceDir() string {
	return filepath.Join(l.Root, InterfaceDirName)
}

// Netlist returns the elaborated netlist path of a build.
func (l Layout) Netlist(build string) string {
	return filepath.Join(l.BuildDir, build+netlistExt)
}

// Constraints returns the elaborated constraints path of a build.
func (l Layout) Constraints(build string) string {
	return filepath.Join(l.BuildDir, build+constraintsExt)
}

// MountRoot returns the deepest directory containing Root and every
// extra path. Scripts run under it reach all outputs and the given files
// through relative paths.
func (l Layout) MountRoot(extra ...string) (string, error) {
	root, err := filepath.Abs(l.Root)
	if err != nil {
		return "", err
	}
	for _, p := range extra {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		root = commonDir(root, filepath.Dir(abs))
	}
	return root, nil
}

// commonDir returns the deepest common ancestor of two absolute paths.
func commonDir(a, b string) string {
	for {
		rel, err := filepath.Rel(a, b)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return a
		}
		parent := filepath.Dir(a)
		if parent == a {
			return a
		}
		a = parent
	}
}

// relSlash returns target relative to base, with forward slashes for TCL.
func relSlash(base, target string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// recreateDir removes dir and everything below it, then creates it empty.
func recreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// newStagingDir creates an empty hidden directory under root for the
// future contents of dir.
func newStagingDir(root, dir string) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", root, err)
	}
	staging, err := os.MkdirTemp(root, "."+filepath.Base(dir)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	if err := os.Chmod(staging, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return staging, nil
}

// replaceDir discards dir and renames staging to it.
func replaceDir(staging, dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dir, err)
	}
	if err := os.Rename(staging, dir); err != nil {
		return fmt.Errorf("failed to move package into %s: %w", dir, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
