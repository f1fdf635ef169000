// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sebo83910/litex-axi-converter/internal/catalog"
	"github.com/sebo83910/litex-axi-converter/internal/config"
	"github.com/sebo83910/litex-axi-converter/internal/issue"
	"github.com/sebo83910/litex-axi-converter/internal/packager"
	"github.com/sebo83910/litex-axi-converter/internal/params"
	"github.com/sebo83910/litex-axi-converter/internal/postprocess"
	"github.com/sebo83910/litex-axi-converter/internal/runtime"
	"github.com/sebo83910/litex-axi-converter/internal/script"
)

// classifyError maps a pipeline error to an actionable error and the
// process exit code. Tool exit statuses are propagated verbatim.
func classifyError(err error) (*issue.ActionableError, int) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae, exitFailure
	}

	var (
		paramErr    *params.InvalidParameterError
		danglingErr *script.DanglingReferenceError
		markerErr   *postprocess.MissingMarkerError
		missingErr  *packager.MissingArtifactError
		toolErr     *packager.ExternalToolFailureError
		catalogErr  *catalog.InvalidCatalogError
	)
	ctx := issue.NewErrorContext().Wrap(err)
	code := exitFailure

	switch {
	case errors.As(err, &paramErr):
		ctx.WithOperation("resolve build parameters").
			WithSuggestion("Stream widths must be positive multiples of 8").
			WithSuggestion("Check the defaults section of the configuration").
			WithIssue(issue.InvalidParameterId)
		code = exitInvalidUsage
	case errors.As(err, &danglingErr):
		ctx.WithOperation("emit the packaging script").
			WithResource(danglingErr.From).
			WithSuggestion("Declare the referenced " + danglingErr.Kind + " in the interface catalog").
			WithIssue(issue.DanglingReferenceId)
	case errors.As(err, &catalogErr):
		ctx.WithOperation("validate the interface catalog").
			WithSuggestion("Fix the catalog entries listed above").
			WithIssue(issue.InvalidCatalogId)
	case errors.As(err, &markerErr):
		ctx.WithOperation("inject parameters into the netlist").
			WithResource(markerErr.File).
			WithSuggestion("Re-run elaboration with --build to regenerate the netlist").
			WithIssue(issue.MissingMarkerId)
	case errors.As(err, &missingErr):
		ctx.WithOperation("run the " + missingErr.Stage.String() + " stage").
			WithResource(missingErr.Path).
			WithIssue(issue.MissingArtifactId)
		switch missingErr.Stage {
		case packager.StageBuild:
			ctx.WithSuggestion("Set elaborate.command in the configuration")
		case packager.StagePackage:
			ctx.WithSuggestion("Run with --build first, or check elaborate.build_dir")
		case packager.StageProject:
			ctx.WithSuggestion("Run with --package first")
		}
	case errors.As(err, &toolErr):
		ctx.WithOperation("run the " + toolErr.Stage.String() + " stage").WithResource(toolErr.Script)
		if errors.Is(err, runtime.ErrRuntimeNotAvailable) {
			ctx.WithSuggestion("Install Vivado or set vivado.binary to its full path").
				WithIssue(issue.ToolNotFoundId)
		} else if toolErr.Stage == packager.StageBuild {
			ctx.WithSuggestion("Run elaborate.command by hand to see its output").
				WithIssue(issue.ExternalToolFailedId)
		} else {
			ctx.WithSuggestion("Inspect the script and vivado.log in " + filepath.Dir(toolErr.Script)).
				WithIssue(issue.ExternalToolFailedId)
		}
		if toolErr.ExitCode != 0 && toolErr.ExitCode.Validate() == nil {
			code = int(toolErr.ExitCode)
		}
	default:
		ctx.WithOperation("run axiconv")
	}

	return ctx.Build(), code
}

// reportError prints err and, in verbose mode, the matching issue guide.
// It returns the ExitError the handler should return.
func reportError(w io.Writer, err error, verbose bool, scheme config.ColorScheme) error {
	ae, code := classifyError(err)
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), ae.Format(verbose))

	if verbose {
		if guide, ok := ae.Guide(scheme.GlamourStyle()); ok {
			fmt.Fprint(w, guide)
		}
	}
	return &ExitError{Code: code}
}
