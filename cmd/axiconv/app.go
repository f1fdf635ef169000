// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/sebo83910/litex-axi-converter/internal/catalog"
	"github.com/sebo83910/litex-axi-converter/internal/config"
	"github.com/sebo83910/litex-axi-converter/internal/container"
	"github.com/sebo83910/litex-axi-converter/internal/issue"
	"github.com/sebo83910/litex-axi-converter/internal/packager"
	"github.com/sebo83910/litex-axi-converter/internal/runtime"
)

type (
	// EngineFactory finds a container engine, preferring the given type.
	EngineFactory func(preferred container.EngineType) (container.Engine, error)

	// App wires CLI services and shared dependencies. Cobra handlers receive
	// an App and never reach for package-level state.
	App struct {
		Config    config.Provider
		Tool      runtime.Runtime
		NewEngine EngineFactory
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Tool replaces the configured vendor tool runtime.
		Tool      runtime.Runtime
		NewEngine EngineFactory
		Stdout    io.Writer
		Stderr    io.Writer
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		Tool:      deps.Tool,
		NewEngine: deps.NewEngine,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.NewEngine == nil {
		app.NewEngine = container.NewEngine
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// newLogger returns the CLI logger writing to w. Debug is enabled by verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// toolRuntime returns the runtime running the vendor tool as configured.
// The container engine is only looked up when the container runtime is selected.
func (a *App) toolRuntime(cfg *config.Config) (runtime.Runtime, error) {
	if a.Tool != nil {
		return a.Tool, nil
	}

	args := []string{"-mode", cfg.Vivado.Mode, "-source"}
	registry := runtime.NewRegistry()

	native := runtime.NewNativeRuntime(cfg.Vivado.Binary)
	native.Args = args
	registry.Register(runtime.KindNative, native)

	if cfg.Vivado.Runtime == config.RuntimeContainer {
		engine, err := a.NewEngine(container.EngineType(cfg.Vivado.ContainerEngine))
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("find container engine").
				WithResource(cfg.Vivado.ContainerEngine.String()).
				WithSuggestion("Install podman or docker").
				WithSuggestion("Set vivado.runtime to \"native\" to use a host installation").
				WithIssue(issue.ContainerEngineNotFoundId).
				Wrap(err).
				BuildError()
		}
		ct := runtime.NewContainerRuntime(engine, cfg.Vivado.Image, cfg.Vivado.Binary)
		ct.Args = args
		registry.Register(runtime.KindContainer, ct)
	}

	return registry.Get(runtime.Kind(cfg.Vivado.Runtime))
}

// newOrchestrator builds the pipeline from the configuration.
func (a *App) newOrchestrator(cfg *config.Config, tool runtime.Runtime, logger *log.Logger) *packager.Orchestrator {
	return packager.New(tool,
		packager.WithLayout(packager.Layout{Root: cfg.OutputDir, BuildDir: cfg.Elaborate.BuildDir}),
		packager.WithCore(cfg.Core.Name, catalog.VersionMetadata{
			Version:           cfg.Core.Version,
			Revision:          cfg.Core.Revision,
			DisplayName:       cfg.Core.DisplayName,
			Description:       cfg.Core.Description,
			Vendor:            cfg.Vendor.Name,
			VendorDisplayName: cfg.Vendor.DisplayName,
			VendorURL:         cfg.Vendor.URL,
			Library:           cfg.Vendor.Library,
			Taxonomy:          cfg.Vendor.Taxonomy,
		}),
		packager.WithElaborateCommand(cfg.Elaborate.Command),
		packager.WithAuxiliaryFiles(cfg.Packaging.AuxiliaryFiles...),
		packager.WithPart(cfg.Vivado.Part),
		packager.WithLogger(logger),
		packager.WithOutput(a.stdout, a.stderr),
	)
}
