// SPDX-License-Identifier: MPL-2.0

package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sebo83910/litex-axi-converter/internal/catalog"
)

// Packaging phases, in mandatory emission order.
const (
	PhaseProcedures Phase = iota + 1
	PhaseProject
	PhaseFiles
	PhaseBuses
	PhaseClocks
	PhaseInterrupts
	PhaseGUI
	PhaseVersion
	PhaseChecksum
	PhaseSave
	PhaseArchive
)

// Statement kinds.
const (
	KindProcDef Kind = iota + 1
	KindCommand
	KindBusDeclaration
	KindClockBinding
	KindInterrupt
	KindGuiGroup
	KindGuiPlacement
	KindVersionStamp
	KindDefinition
)

type (
	// Phase is the ordering slot a statement belongs to.
	Phase int

	// Kind identifies the statement type without a type switch.
	Kind int

	// Statement is one typed command of a generated script.
	Statement interface {
		Phase() Phase
		Kind() Kind
		// Subject names what the statement declares or acts on.
		Subject() string
		// References lists names the statement requires to be declared earlier.
		References() []string
		// Lines renders the statement as TCL source lines.
		Lines() []string
	}

	// ProcDef defines a TCL procedure.
	ProcDef struct {
		Name string
		Args []string
		Body []string
	}

	// Command is a single untyped command line. Words are rendered verbatim.
	Command struct {
		phase   Phase
		subject string
		words   []string
	}

	// BusDeclaration declares a bus interface and its port maps.
	BusDeclaration struct {
		Bus catalog.BusInterfaceSpec
	}

	// ClockBinding associates a clock, and optionally a reset, with buses.
	ClockBinding struct {
		Binding catalog.ClockDomainBinding
	}

	// InterruptDeclaration declares an interrupt interface.
	InterruptDeclaration struct {
		Interrupt catalog.InterruptSpec
	}

	// GuiGroupDeclaration creates a GUI group at its position.
	GuiGroupDeclaration struct {
		Group    string
		Position int
	}

	// GuiPlacement moves a parameter widget into a group and locks the parameter.
	GuiPlacement struct {
		Group    string
		Param    string
		Position int
	}

	// VersionStamp sets identity and display metadata on the current core.
	VersionStamp struct {
		Meta catalog.VersionMetadata
	}

	// DefinitionDeclaration creates the abstraction and bus definitions of a custom bus.
	DefinitionDeclaration struct {
		Definition catalog.BusDefinition
		Dir        string
	}
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseProcedures:
		return "procedures"
	case PhaseProject:
		return "project"
	case PhaseFiles:
		return "files"
	case PhaseBuses:
		return "buses"
	case PhaseClocks:
		return "clocks"
	case PhaseInterrupts:
		return "interrupts"
	case PhaseGUI:
		return "gui"
	case PhaseVersion:
		return "version"
	case PhaseChecksum:
		return "checksum"
	case PhaseSave:
		return "save"
	case PhaseArchive:
		return "archive"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// NewCommand builds a command statement. The first word is the subject.
func NewCommand(phase Phase, words ...string) Command {
	subject := ""
	if len(words) > 0 {
		subject = words[0]
	}
	return Command{phase: phase, subject: subject, words: words}
}

func (ProcDef) Phase() Phase { return PhaseProcedures }
func (ProcDef) Kind() Kind { return KindProcDef }
func (p ProcDef) Subject() string { return p.Name }
func (ProcDef) References() []string { return nil }
func (Command) Kind() Kind { return KindCommand }
func (c Command) Phase() Phase { return c.phase }
func (c Command) Subject() string { return c.subject }
func (Command) References() []string { return nil }
func (c Command) Lines() []string { return []string{strings.Join(c.words, " ")} }
func (BusDeclaration) Phase() Phase { return PhaseBuses }
func (BusDeclaration) Kind() Kind { return KindBusDeclaration }
func (b BusDeclaration) Subject() string { return b.Bus.Name }
func (BusDeclaration) References() []string { return nil }

// Lines renders the procedure definition with an indented body.
func (p ProcDef) Lines() []string {
	lines := make([]string, 0, len(p.Body)+2)
	lines = append(lines, fmt.Sprintf("proc %s %s {", p.Name, List(p.Args...)))
	for _, l := range p.Body {
		lines = append(lines, "    "+l)
	}
	return append(lines, "}")
}

// Lines renders the bus declaration followed by one port map per port.
func (b BusDeclaration) Lines() []string {
	lines := make([]string, 0, len(b.Bus.Ports)+1)
	lines = append(lines, strings.Join([]string{
		procDeclareBus, Quote(b.Bus.Name), string(b.Bus.Mode),
		b.Bus.Protocol.Bus.String(), b.Bus.Protocol.Abstraction.String(),
	}, " "))
	for _, p := range b.Bus.Ports {
		lines = append(lines, strings.Join([]string{
			procAddPortMap, Quote(b.Bus.Name), Quote(strings.ToUpper(p.Logical)), Quote(p.Physical),
		}, " "))
	}
	return lines
}

func (ClockBinding) Phase() Phase { return PhaseClocks }
func (ClockBinding) Kind() Kind { return KindClockBinding }
func (c ClockBinding) Subject() string { return c.Binding.Clock }

// References returns the bus names the binding associates.
func (c ClockBinding) References() []string { return c.Binding.Buses }

// Lines renders the clock association and, when a reset is present, the
// reset association. A binding without reset declares no reset interface.
func (c ClockBinding) Lines() []string {
	lines := []string{strings.Join([]string{procBindClock, Quote(c.Binding.Clock), List(c.Binding.Buses...)}, " ")}
	if c.Binding.HasReset() {
		lines = append(lines, strings.Join([]string{
			procBindReset, Quote(c.Binding.Clock), Quote(c.Binding.Reset), string(c.Binding.ResetPolarity()),
		}, " "))
	}
	return lines
}

func (InterruptDeclaration) Phase() Phase { return PhaseInterrupts }
func (InterruptDeclaration) Kind() Kind { return KindInterrupt }
func (i InterruptDeclaration) Subject() string { return i.Interrupt.Signal }
func (InterruptDeclaration) References() []string { return nil }
func (i InterruptDeclaration) Lines() []string {
	return []string{procDeclareInterrupt + " " + Quote(i.Interrupt.Signal)}
}

func (GuiGroupDeclaration) Phase() Phase { return PhaseGUI }
func (GuiGroupDeclaration) Kind() Kind { return KindGuiGroup }
func (g GuiGroupDeclaration) Subject() string { return g.Group }
func (GuiGroupDeclaration) References() []string { return nil }
func (g GuiGroupDeclaration) Lines() []string {
	return []string{strings.Join([]string{procAddGuiGroup, Quote(g.Group), strconv.Itoa(g.Position)}, " ")}
}

func (GuiPlacement) Phase() Phase { return PhaseGUI }
func (GuiPlacement) Kind() Kind { return KindGuiPlacement }
func (g GuiPlacement) Subject() string { return g.Param }

// References returns the group the widget is moved into.
func (g GuiPlacement) References() []string { return []string{g.Group} }
func (g GuiPlacement) Lines() []string {
	return []string{strings.Join([]string{procPlaceParam, Quote(g.Group), Quote(g.Param), strconv.Itoa(g.Position)}, " ")}
}

func (VersionStamp) Phase() Phase { return PhaseVersion }
func (VersionStamp) Kind() Kind { return KindVersionStamp }
func (v VersionStamp) Subject() string { return v.Meta.IPName }
func (VersionStamp) References() []string { return nil }

// Lines renders a single set_property -dict over the current core.
func (v VersionStamp) Lines() []string {
	m := v.Meta
	pairs := []string{
		"name", Quote(m.IPName),
		"version", Quote(m.Version),
		"core_revision", strconv.Itoa(m.Revision),
		"display_name", Quote(m.DisplayName),
		"description", Quote(m.Description),
		"vendor", Quote(m.Vendor),
		"vendor_display_name", Quote(m.VendorDisplayName),
		"company_url", Quote(m.VendorURL),
		"library", Quote(m.Library),
		"taxonomy", Quote(m.Taxonomy),
	}
	return []string{fmt.Sprintf("set_property -dict %s %s", Subst(append([]string{"list"}, pairs...)...), CurrentCore)}
}

func (DefinitionDeclaration) Phase() Phase { return PhaseBuses }
func (DefinitionDeclaration) Kind() Kind { return KindDefinition }
func (DefinitionDeclaration) References() []string { return nil }
func (d DefinitionDeclaration) Subject() string {
	return d.Definition.Protocol.Bus.Name
}

// Lines creates both definitions, then one abstraction port per logical port.
// Direction and width are declared for both bus sides.
func (d DefinitionDeclaration) Lines() []string {
	bus := d.Definition.Protocol.Bus
	abs := d.Definition.Protocol.Abstraction
	absVar, busVar := "$abs_"+bus.Name, "$bus_"+bus.Name

	lines := []string{
		fmt.Sprintf("set abs_%s %s", bus.Name, Subst("ipx::create_abstraction_definition", abs.Vendor, abs.Library, abs.Name, abs.Version)),
		fmt.Sprintf("set bus_%s %s", bus.Name, Subst("ipx::create_bus_definition", bus.Vendor, bus.Library, bus.Name, bus.Version)),
		fmt.Sprintf("set_property xml_file_name %s %s", Quote(d.Dir+"/"+abs.Name+".xml"), absVar),
		fmt.Sprintf("set_property xml_file_name %s %s", Quote(d.Dir+"/"+bus.Name+".xml"), busVar),
		fmt.Sprintf("set_property bus_type_vlnv %s %s", bus.String(), absVar),
		"ipx::save_abstraction_definition " + absVar,
		"ipx::save_bus_definition " + busVar,
	}

	for _, p := range d.Definition.Ports {
		port := Subst("ipx::get_bus_abstraction_ports", Quote(p.Logical), "-of_objects", absVar)
		width := strconv.Itoa(p.Width)
		lines = append(lines,
			fmt.Sprintf("ipx::add_bus_abstraction_port %s %s", Quote(p.Logical), absVar),
			fmt.Sprintf("set_property -dict %s %s", Subst("list",
				"master_presence", "required",
				"master_direction", string(p.SlaveDirection.Opposite()),
				"master_width", width,
				"slave_presence", "required",
				"slave_direction", string(p.SlaveDirection),
				"slave_width", width,
			), port),
		)
	}

	return append(lines,
		"ipx::save_abstraction_definition "+absVar,
		"ipx::save_bus_definition "+busVar,
	)
}
