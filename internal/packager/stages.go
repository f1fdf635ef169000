// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sebo83910/litex-axi-converter/internal/dag"
	"github.com/sebo83910/litex-axi-converter/internal/params"
	"github.com/sebo83910/litex-axi-converter/internal/runtime"
	"github.com/sebo83910/litex-axi-converter/internal/script"
)

// Pipeline stages, one per CLI mode switch.
const (
	StageBuild     Stage = "build"
	StageInterface Stage = "interface"
	StagePackage   Stage = "package"
	StageProject   Stage = "project"
)

// EnvPrefix prefixes the variables passed to the elaboration command.
const EnvPrefix = "AXICONV_"

// ErrInvalidStage is the sentinel error wrapped by InvalidStageError.
var ErrInvalidStage = errors.New("invalid stage")

type (
	// Stage is one step of the packaging pipeline.
	Stage string

	// InvalidStageError is returned when a Stage value is not recognized.
	InvalidStageError struct {
		Value Stage
	}

	// Report lists what a pipeline run did.
	Report struct {
		// Stages are the stages run, in execution order.
		Stages []Stage
		// Package is set when the package stage ran.
		Package *PackageResult
	}
)

// Error implements the error interface.
func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid stage %q (valid: build, interface, package, project)", e.Value)
}

// Unwrap returns ErrInvalidStage for errors.Is() compatibility.
func (e *InvalidStageError) Unwrap() error { return ErrInvalidStage }

// String returns the stage name.
func (s Stage) String() string { return string(s) }

// Validate returns an *InvalidStageError for unknown stages.
func (s Stage) Validate() error {
	switch s {
	case StageBuild, StageInterface, StagePackage, StageProject:
		return nil
	default:
		return &InvalidStageError{Value: s}
	}
}

// stageGraph encodes build -> package, interface -> package, package -> project.
func stageGraph() *dag.Graph[Stage] {
	g := dag.New[Stage]()
	for _, s := range []Stage{StageBuild, StageInterface, StagePackage, StageProject} {
		g.AddNode(s)
	}
	g.AddEdge(StageBuild, StagePackage)
	g.AddEdge(StageInterface, StagePackage)
	g.AddEdge(StagePackage, StageProject)
	return g
}

// Plan returns the requested stages in dependency order. Stages that were
// not requested are not added. Duplicates collapse.
func Plan(requested []Stage) ([]Stage, error) {
	if len(requested) == 0 {
		return nil, ErrNoOperationRequested
	}
	want := make(map[Stage]bool, len(requested))
	for _, s := range requested {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		want[s] = true
	}
	return stageGraph().Order(func(s Stage) bool { return want[s] })
}

// Run executes the requested stages in dependency order and stops at the
// first failure. Stages already run are listed in the report either way.
func (o *Orchestrator) Run(ctx context.Context, cfg params.BuildConfiguration, requested ...Stage) (*Report, error) {
	plan, err := Plan(requested)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, stage := range plan {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		o.logger.Info("stage started", "stage", stage, "build", o.BuildName(cfg))
		report.Stages = append(report.Stages, stage)

		switch stage {
		case StageBuild:
			err = o.Elaborate(ctx, cfg)
		case StageInterface:
			err = o.Interfaces(ctx, cfg)
		case StagePackage:
			report.Package, err = o.Package(ctx, cfg)
		case StageProject:
			err = o.Project(ctx, cfg)
		}
		if err != nil {
			o.logger.Error("stage failed", "stage", stage, "err", err)
			return report, err
		}
		o.logger.Info("stage finished", "stage", stage)
	}
	return report, nil
}

// ElaborationEnv returns the environment handed to the elaboration command.
func ElaborationEnv(build, buildDir string, cfg params.BuildConfiguration) []string {
	env := []string{
		EnvPrefix + "BUILD_NAME=" + build,
		EnvPrefix + "BUILD_DIR=" + buildDir,
	}
	for _, g := range cfg.Generics() {
		env = append(env, EnvPrefix+strings.ToUpper(g.Name)+"="+g.Value)
	}
	return env
}

// Elaborate runs the configured elaboration command, then checks that it
// produced the netlist and constraints of the build.
func (o *Orchestrator) Elaborate(ctx context.Context, cfg params.BuildConfiguration) error {
	build := o.BuildName(cfg)
	netlist, constraints := o.layout.Netlist(build), o.layout.Constraints(build)

	if strings.TrimSpace(o.elaborate) == "" {
		return &MissingArtifactError{Stage: StageBuild, Path: netlist, Reason: "no elaboration command configured"}
	}
	if err := os.MkdirAll(o.layout.BuildDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", o.layout.BuildDir, err)
	}

	o.logger.Debug("running elaboration", "runtime", o.shell.Name(), "command", o.elaborate)
	res := o.shell.Run(ctx, runtime.Invocation{
		Inline: o.elaborate,
		Env:    ElaborationEnv(build, o.layout.BuildDir, cfg),
		Stdout: o.stdout,
		Stderr: o.stderr,
	})
	if !res.Success() {
		return &ExternalToolFailureError{
			Stage:    StageBuild,
			Tool:     o.shell.Name(),
			Script:   o.elaborate,
			ExitCode: res.ExitCode,
			Cause:    res.Error,
		}
	}

	for _, p := range []string{netlist, constraints} {
		if !fileExists(p) {
			return &MissingArtifactError{Stage: StageBuild, Path: p, Reason: "the elaboration command did not produce it"}
		}
	}
	return nil
}

// Interfaces recreates the interface repository and runs the script
// declaring the custom bus definitions of the catalog.
func (o *Orchestrator) Interfaces(ctx context.Context, cfg params.BuildConfiguration) error {
	cat := o.catalog(cfg)
	if len(cat.Definitions) == 0 {
		o.logger.Info("no custom bus definitions, nothing to declare")
		return nil
	}

	dir := o.layout.InterfaceDir()
	if err := recreateDir(dir); err != nil {
		return err
	}

	s := script.EmitBusDefinitions(cat.Definitions, ".")
	path := filepath.Join(dir, InterfaceScriptName)
	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	o.logger.Debug("wrote script", "file", path, "definitions", len(cat.Definitions))

	_, err := o.runTool(ctx, StageInterface, dir, InterfaceScriptName)
	return err
}

// Project recreates the demo project directory and runs the script building
// a block design around the packaged core. The package manifest must exist.
func (o *Orchestrator) Project(ctx context.Context, cfg params.BuildConfiguration) error {
	build := o.BuildName(cfg)
	pkgDir := o.layout.PackageDir(build)

	manifest, err := ReadManifest(filepath.Join(pkgDir, ManifestName))
	if err != nil {
		return err
	}

	dir := o.layout.ProjectDir(build)
	var repoPaths []string
	for _, repo := range []string{pkgDir, o.layout.InterfaceDir()} {
		rel, err := relSlash(dir, repo)
		if err != nil {
			return fmt.Errorf("failed to locate %s: %w", repo, err)
		}
		repoPaths = append(repoPaths, rel)
	}

	if err := recreateDir(dir); err != nil {
		return err
	}

	s := script.EmitProject(script.ProjectInput{
		BuildName: build,
		Part:      o.part,
		Core:      manifest.VLNV(),
		Catalog:   o.catalog(cfg),
		RepoPaths: repoPaths,
	})
	path := filepath.Join(dir, ProjectScriptName)
	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	o.logger.Debug("wrote script", "file", path, "core", manifest.VLNV())

	_, err = o.runTool(ctx, StageProject, dir, ProjectScriptName)
	return err
}
