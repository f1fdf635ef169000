// SPDX-License-Identifier: MPL-2.0

package script

import (
	"github.com/sebo83910/litex-axi-converter/internal/catalog"
)

// ProjectInput describes the demonstration project instantiating a packaged core.
type ProjectInput struct {
	BuildName string
	Part      string
	Core      catalog.VLNV
	Catalog   catalog.Catalog
	// RepoPaths are the IP repositories to search, relative to the project directory.
	RepoPaths []string
}

// EmitProject produces the script creating a block design around one
// instance of the core, with every interface and signal made external.
func EmitProject(in ProjectInput) *Script {
	cell := in.BuildName + "_0"
	b := NewBuilder()

	b.Add(
		NewCommand(PhaseProject, "create_project", Quote(in.BuildName), ".", "-part", Quote(in.Part), "-force"),
		NewCommand(PhaseProject, "set_property", "ip_repo_paths", Subst(append([]string{"list"}, quoteAll(in.RepoPaths)...)...), Subst("current_fileset")),
		NewCommand(PhaseProject, "update_ip_catalog"),
		NewCommand(PhaseProject, "create_bd_design", Quote(in.BuildName)),
		NewCommand(PhaseProject, "create_bd_cell", "-type", "ip", "-vlnv", in.Core.String(), Quote(cell)),
	)

	for _, bus := range in.Catalog.Buses {
		b.Add(NewCommand(PhaseBuses, "make_bd_intf_pins_external", Subst("get_bd_intf_pins", Quote(cell+"/"+bus.Name))))
	}

	var pins []string
	seen := make(map[string]bool)
	addPin := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			pins = append(pins, name)
		}
	}
	for _, clk := range in.Catalog.Clocks {
		addPin(clk.Clock)
		addPin(clk.Reset)
	}
	for _, irq := range in.Catalog.Interrupts {
		addPin(irq.Signal)
	}
	for _, p := range pins {
		b.Add(NewCommand(PhaseClocks, "make_bd_pins_external", Subst("get_bd_pins", Quote(cell+"/"+p))))
	}

	b.Add(
		NewCommand(PhaseChecksum, "validate_bd_design"),
		NewCommand(PhaseChecksum, "regenerate_bd_layout"),
		NewCommand(PhaseSave, "save_bd_design"),
	)
	return b.Build()
}
