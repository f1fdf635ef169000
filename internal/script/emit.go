// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/sebo83910/litex-axi-converter/internal/catalog"
	"github.com/sebo83910/litex-axi-converter/internal/params"
)

// Reference kinds reported by DanglingReferenceError.
const (
	RefBus       = "bus"
	RefParameter = "parameter"
)

// ErrDanglingReference is the sentinel error wrapped by DanglingReferenceError.
var ErrDanglingReference = errors.New("dangling reference")

type (
	// PackageInput is everything the packaging script depends on.
	PackageInput struct {
		Catalog   catalog.Catalog
		Version   catalog.VersionMetadata
		Config    params.BuildConfiguration
		Artifacts catalog.PackageArtifactSet
		// BuildName names the packager project and the top module.
		BuildName string
		// RepoPaths are IP repositories holding custom bus definitions.
		RepoPaths []string
	}

	// DanglingReferenceError reports a statement referring to a name the
	// catalog does not declare.
	DanglingReferenceError struct {
		// From is the referring entity, e.g. the clock signal.
		From string
		Ref  string
		Kind string
	}
)

// Error implements the error interface.
func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s references undeclared %s %q", e.From, e.Kind, e.Ref)
}

// Unwrap returns ErrDanglingReference for errors.Is() compatibility.
func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }

// Emit produces the packaging script. References are checked before any
// statement is built: on error the returned script is nil.
func Emit(in PackageInput) (*Script, error) {
	if err := checkReferences(in); err != nil {
		return nil, err
	}

	b := NewBuilder()
	for _, p := range Procedures() {
		b.Add(p)
	}

	b.Add(
		NewCommand(PhaseProject, "create_project", "-force", "-name", Quote(in.BuildName+"_packager")),
	)
	if len(in.RepoPaths) > 0 {
		b.Add(
			NewCommand(PhaseProject, "set_property", "ip_repo_paths", Subst(append([]string{"list"}, quoteAll(in.RepoPaths)...)...), Subst("current_project")),
			NewCommand(PhaseProject, "update_ip_catalog"),
		)
	}

	for _, f := range in.Artifacts.Files() {
		b.Add(NewCommand(PhaseFiles, "add_files", "-norecurse", Quote(f)))
	}
	b.Add(
		NewCommand(PhaseFiles, "set_property", "top", Quote(in.BuildName), Subst("current_fileset")),
		NewCommand(PhaseFiles, "ipx::package_project", "-root_dir", ".",
			"-vendor", Quote(in.Version.Vendor),
			"-library", Quote(in.Version.Library),
			"-taxonomy", Quote(in.Version.Taxonomy),
			"-force"),
	)

	for _, bus := range in.Catalog.Buses {
		b.Add(BusDeclaration{Bus: bus})
	}
	for _, clk := range in.Catalog.Clocks {
		b.Add(ClockBinding{Binding: clk})
	}
	for _, irq := range in.Catalog.Interrupts {
		b.Add(InterruptDeclaration{Interrupt: irq})
	}
	b.Add(guiStatements(in.Catalog.GUI)...)
	b.Add(VersionStamp{Meta: in.Version})

	b.Add(
		NewCommand(PhaseChecksum, "ipx::create_xgui_files", CurrentCore),
		NewCommand(PhaseChecksum, "ipx::update_checksums", CurrentCore),
		NewCommand(PhaseSave, "ipx::save_core", CurrentCore),
		NewCommand(PhaseArchive, "ipx::archive_core", Quote("./"+in.Version.ArchiveName()), CurrentCore),
	)

	return b.Build(), nil
}

// checkReferences fails on the first clock binding naming an undeclared bus,
// then on the first GUI member naming an unknown parameter.
func checkReferences(in PackageInput) error {
	for _, clk := range in.Catalog.Clocks {
		for _, name := range clk.Buses {
			if _, ok := in.Catalog.Bus(name); !ok {
				return &DanglingReferenceError{From: clk.Clock, Ref: name, Kind: RefBus}
			}
		}
	}

	known := make([]string, 0, 5)
	for _, g := range in.Config.Generics() {
		known = append(known, g.Name)
	}
	for _, group := range in.Catalog.GUI {
		for _, m := range group.Members {
			if !slices.Contains(known, m.Param) {
				return &DanglingReferenceError{From: group.DisplayName, Ref: m.Param, Kind: RefParameter}
			}
		}
	}
	return nil
}

// guiStatements lays out groups in ascending order, and members within a
// group in ascending order. Ties keep declaration order.
func guiStatements(groups []catalog.GuiGroup) []Statement {
	ordered := slices.Clone(groups)
	slices.SortStableFunc(ordered, func(a, b catalog.GuiGroup) int { return a.Order - b.Order })

	var stmts []Statement
	for pos, g := range ordered {
		stmts = append(stmts, GuiGroupDeclaration{Group: g.DisplayName, Position: pos})

		members := slices.Clone(g.Members)
		slices.SortStableFunc(members, func(a, b catalog.GuiMember) int { return a.Order - b.Order })
		for mpos, m := range members {
			stmts = append(stmts, GuiPlacement{Group: g.DisplayName, Param: m.Param, Position: mpos})
		}
	}
	return stmts
}

func quoteAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Quote(w)
	}
	return out
}
