// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sebo83910/litex-axi-converter/internal/catalog"
	"github.com/sebo83910/litex-axi-converter/internal/params"
	"github.com/sebo83910/litex-axi-converter/internal/postprocess"
	"github.com/sebo83910/litex-axi-converter/internal/runtime"
	"github.com/sebo83910/litex-axi-converter/internal/script"
)

type (
	// CatalogFunc builds the interface catalog for one build configuration.
	CatalogFunc func(params.BuildConfiguration) catalog.Catalog

	// Option configures an Orchestrator.
	Option func(*Orchestrator)

	// Orchestrator runs the packaging pipeline. It holds no per-run state.
	Orchestrator struct {
		tool      runtime.Runtime
		shell     runtime.Runtime
		layout    Layout
		catalog   CatalogFunc
		coreName  string
		version   catalog.VersionMetadata
		elaborate string
		auxiliary []string
		part      string
		logger    *log.Logger
		stdout    io.Writer
		stderr    io.Writer
	}

	// PackageResult is the outcome of one package run.
	PackageResult struct {
		BuildName    string
		PackageDir   string
		ScriptPath   string
		ManifestPath string
		// ExitCode is the vendor tool's exit status.
		ExitCode runtime.ExitCode
		// Diagnostic describes the failure; empty on success.
		Diagnostic string
	}
)

// WithShell sets the runtime interpreting the elaboration command.
func WithShell(shell runtime.Runtime) Option {
	return func(o *Orchestrator) { o.shell = shell }
}

// WithLayout sets where inputs are read and outputs written.
func WithLayout(l Layout) Option {
	return func(o *Orchestrator) { o.layout = l }
}

// WithCatalog replaces the AXI converter catalog.
func WithCatalog(fn CatalogFunc) Option {
	return func(o *Orchestrator) { o.catalog = fn }
}

// WithCore sets the build name prefix and the version metadata template.
// IPName is filled in per build.
func WithCore(name string, meta catalog.VersionMetadata) Option {
	return func(o *Orchestrator) {
		o.coreName = name
		o.version = meta
	}
}

// WithElaborateCommand sets the shell command of the build stage.
func WithElaborateCommand(cmd string) Option {
	return func(o *Orchestrator) { o.elaborate = cmd }
}

// WithAuxiliaryFiles sets extra files registered with the core.
func WithAuxiliaryFiles(files ...string) Option {
	return func(o *Orchestrator) { o.auxiliary = append([]string{}, files...) }
}

// WithPart sets the FPGA part of the demo project.
func WithPart(part string) Option {
	return func(o *Orchestrator) { o.part = part }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithOutput sets where tool output goes.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *Orchestrator) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// New creates an Orchestrator invoking the vendor tool through tool.
func New(tool runtime.Runtime, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		tool:     tool,
		shell:    runtime.NewVirtualRuntime(),
		layout:   Layout{Root: ".", BuildDir: "build"},
		catalog:  catalog.AXIConverter,
		coreName: "axi_converter",
		version: catalog.VersionMetadata{
			Version:  "1.0",
			Revision: 1,
			Vendor:   "user",
			Library:  "user",
			Taxonomy: "/UserIP",
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BuildName returns the build name of cfg, e.g. "axi_converter_128b_to_64b".
func (o *Orchestrator) BuildName(cfg params.BuildConfiguration) string {
	return cfg.BuildName(o.coreName)
}

// Metadata returns the version metadata stamped on the core of cfg.
func (o *Orchestrator) Metadata(cfg params.BuildConfiguration) catalog.VersionMetadata {
	meta := o.version
	meta.IPName = o.BuildName(cfg)
	return meta
}

// Success reports whether the package run and the tool both succeeded.
func (r *PackageResult) Success() bool {
	return r.ExitCode.IsSuccess() && r.Diagnostic == ""
}

// PackagingScript emits the packaging script of cfg without touching the filesystem.
func (o *Orchestrator) PackagingScript(cfg params.BuildConfiguration) (*script.Script, error) {
	in, err := o.packageInput(cfg)
	if err != nil {
		return nil, err
	}
	return script.Emit(in)
}

func (o *Orchestrator) packageInput(cfg params.BuildConfiguration) (script.PackageInput, error) {
	build := o.BuildName(cfg)
	pkgDir := o.layout.PackageDir(build)

	cat := o.catalog(cfg)
	if err := cat.Validate(); err != nil {
		return script.PackageInput{}, err
	}

	artifacts := catalog.PackageArtifactSet{
		Netlist:     build + netlistExt,
		Constraints: build + constraintsExt,
	}
	for _, aux := range o.auxiliary {
		rel, err := relSlash(pkgDir, aux)
		if err != nil {
			return script.PackageInput{}, fmt.Errorf("failed to locate %s: %w", aux, err)
		}
		artifacts.Auxiliary = append(artifacts.Auxiliary, rel)
	}

	var repoPaths []string
	if len(cat.Definitions) > 0 {
		rel, err := relSlash(pkgDir, o.layout.InterfaceDir())
		if err != nil {
			return script.PackageInput{}, fmt.Errorf("failed to locate interface repository: %w", err)
		}
		repoPaths = append(repoPaths, rel)
	}

	return script.PackageInput{
		Catalog:   cat,
		Version:   o.Metadata(cfg),
		Config:    cfg,
		Artifacts: artifacts,
		BuildName: build,
		RepoPaths: repoPaths,
	}, nil
}

// Package replaces the package directory of cfg with the post-processed
// artifacts, the packaging script and the manifest, then runs the vendor
// tool on the script.
//
// The previous package is only replaced once every output is complete.
// A tool failure returns both the result and an *ExternalToolFailureError.
func (o *Orchestrator) Package(ctx context.Context, cfg params.BuildConfiguration) (*PackageResult, error) {
	build := o.BuildName(cfg)
	pkgDir := o.layout.PackageDir(build)
	logger := o.logger.With("stage", StagePackage, "build", build)

	netlist, constraints := o.layout.Netlist(build), o.layout.Constraints(build)
	for _, p := range append([]string{netlist, constraints}, o.auxiliary...) {
		if !fileExists(p) {
			return nil, &MissingArtifactError{Stage: StagePackage, Path: p, Reason: "run the build stage first"}
		}
	}

	in, err := o.packageInput(cfg)
	if err != nil {
		return nil, err
	}
	s, err := script.Emit(in)
	if err != nil {
		return nil, err
	}

	// Outputs are staged next to the package directory and swapped in
	// only once complete, so a failed rewrite keeps the previous package.
	staging, err := newStagingDir(o.layout.Root, pkgDir)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(staging)

	if err := postprocess.InjectParametersFile(netlist, filepath.Join(staging, in.Artifacts.Netlist), cfg); err != nil {
		return nil, err
	}
	found, err := postprocess.TruncateConstraintsFile(constraints, filepath.Join(staging, in.Artifacts.Constraints))
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Debug("no design constraints marker, constraints emptied", "file", constraints)
	}

	if err := os.WriteFile(filepath.Join(staging, ScriptName), []byte(s.Render()), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write script: %w", err)
	}
	if err := WriteManifest(filepath.Join(staging, ManifestName), NewManifest(in.Version, cfg, in.Artifacts.Files())); err != nil {
		return nil, err
	}

	if err := replaceDir(staging, pkgDir); err != nil {
		return nil, err
	}
	logger.Debug("wrote package", "dir", pkgDir, "statements", len(s.Statements()))

	res := &PackageResult{
		BuildName:    build,
		PackageDir:   pkgDir,
		ScriptPath:   filepath.Join(pkgDir, ScriptName),
		ManifestPath: filepath.Join(pkgDir, ManifestName),
	}

	code, err := o.runTool(ctx, StagePackage, pkgDir, ScriptName)
	res.ExitCode = code
	if err != nil {
		res.Diagnostic = err.Error()
		return res, err
	}
	return res, nil
}

// runTool runs the vendor tool on dir/scriptName. No retries.
func (o *Orchestrator) runTool(ctx context.Context, stage Stage, dir, scriptName string) (runtime.ExitCode, error) {
	root, err := o.layout.MountRoot(o.auxiliary...)
	if err != nil {
		return 1, fmt.Errorf("failed to resolve output root: %w", err)
	}
	inv := runtime.Invocation{
		Dir:    dir,
		Root:   root,
		Script: scriptName,
		Stdout: o.stdout,
		Stderr: o.stderr,
	}
	logger := o.logger.With("stage", stage)
	if cl, ok := o.tool.(runtime.CommandLiner); ok {
		logger.Info("running tool", "command", runtime.FormatCommandLine(cl.CommandLine(inv)), "dir", dir)
	}

	res := o.tool.Run(ctx, inv)
	if res.Success() {
		return 0, nil
	}
	return res.ExitCode, &ExternalToolFailureError{
		Stage:    stage,
		Tool:     o.tool.Name(),
		Script:   filepath.Join(dir, scriptName),
		ExitCode: res.ExitCode,
		Cause:    res.Error,
	}
}
