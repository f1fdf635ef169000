// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ModeMaster declares a bus interface driven by the core.
	ModeMaster InterfaceMode = "master"
	// ModeSlave declares a bus interface the core responds on.
	ModeSlave InterfaceMode = "slave"

	// PortIn is a core input.
	PortIn PortDirection = "in"
	// PortOut is a core output.
	PortOut PortDirection = "out"

	// ActiveHigh marks a reset asserted at logic 1.
	ActiveHigh ResetPolarity = "ACTIVE_HIGH"
	// ActiveLow marks a reset asserted at logic 0.
	ActiveLow ResetPolarity = "ACTIVE_LOW"

	// activeLowSuffix is the naming convention for active-low resets
	// (e.g. "aresetn"). Matched case-insensitively.
	activeLowSuffix = "n"
)

var (
	// ErrInvalidCatalog is the sentinel error wrapped by InvalidCatalogError.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ProtocolAXILite is the AXI4-Lite memory-mapped protocol.
	ProtocolAXILite = Protocol{
		Bus:         VLNV{Vendor: "xilinx.com", Library: "interface", Name: "aximm", Version: "1.0"},
		Abstraction: VLNV{Vendor: "xilinx.com", Library: "interface", Name: "aximm_rtl", Version: "1.0"},
	}
	// ProtocolAXIStream is the AXI4-Stream protocol.
	ProtocolAXIStream = Protocol{
		Bus:         VLNV{Vendor: "xilinx.com", Library: "interface", Name: "axis", Version: "1.0"},
		Abstraction: VLNV{Vendor: "xilinx.com", Library: "interface", Name: "axis_rtl", Version: "1.0"},
	}
	// SignalClock is the abstraction of a single-signal clock interface.
	SignalClock = VLNV{Vendor: "xilinx.com", Library: "signal", Name: "clock_rtl", Version: "1.0"}
	// SignalReset is the abstraction of a single-signal reset interface.
	SignalReset = VLNV{Vendor: "xilinx.com", Library: "signal", Name: "reset_rtl", Version: "1.0"}
	// SignalInterrupt is the abstraction of a single-signal interrupt interface.
	SignalInterrupt = VLNV{Vendor: "xilinx.com", Library: "signal", Name: "interrupt_rtl", Version: "1.0"}
)

type (
	// InterfaceMode is the role of the core on a bus.
	InterfaceMode string

	// PortDirection is the direction of a physical port seen from the core.
	PortDirection string

	// ResetPolarity is the assertion level of a reset signal.
	ResetPolarity string

	// VLNV is a vendor:library:name:version identifier.
	VLNV struct {
		Vendor  string
		Library string
		Name    string
		Version string
	}

	// Protocol pairs a bus definition with its RTL abstraction definition.
	Protocol struct {
		Bus         VLNV
		Abstraction VLNV
	}

	// PortMap binds one physical core port to a logical bus port.
	PortMap struct {
		Physical  string
		Logical   string
		Width     int
		Direction PortDirection
	}

	// BusInterfaceSpec declares one bus interface of the core.
	BusInterfaceSpec struct {
		Name     string
		Mode     InterfaceMode
		Protocol Protocol
		Ports    []PortMap
	}

	// ClockDomainBinding binds a clock and an optional reset to one or more
	// bus interfaces, referenced by name.
	ClockDomainBinding struct {
		// Label is a human-readable domain name ("AXI Stream").
		Label string
		Clock string
		// Buses lists the associated bus interface names, in order, without duplicates.
		Buses []string
		// Reset is empty when the domain has no reset.
		Reset string
	}

	// InterruptSpec declares an interrupt output.
	InterruptSpec struct {
		Signal string
	}

	// GuiMember places one parameter inside a GUI group.
	GuiMember struct {
		Param string
		Order int
	}

	// GuiGroup is a named, ordered group of parameter widgets.
	GuiGroup struct {
		DisplayName string
		Order       int
		Members     []GuiMember
	}

	// VersionMetadata stamps identity and archival metadata onto a package.
	VersionMetadata struct {
		IPName            string
		Version           string
		Revision          int
		DisplayName       string
		Description       string
		Vendor            string
		VendorDisplayName string
		VendorURL         string
		Library           string
		Taxonomy          string
	}

	// PackageArtifactSet references the files elaboration produced.
	PackageArtifactSet struct {
		Netlist     string
		Constraints string
		Auxiliary   []string
	}

	// AbstractionPort is one logical port of a custom bus definition.
	// Direction is seen from the slave side of the bus.
	AbstractionPort struct {
		Logical        string
		Width          int
		SlaveDirection PortDirection
	}

	// BusDefinition describes a custom (non-vendor) bus protocol.
	BusDefinition struct {
		Protocol Protocol
		Ports    []AbstractionPort
	}

	// Catalog aggregates every interface record of one core.
	Catalog struct {
		Buses       []BusInterfaceSpec
		Clocks      []ClockDomainBinding
		Interrupts  []InterruptSpec
		GUI         []GuiGroup
		Definitions []BusDefinition
	}

	// InvalidCatalogError collects structural problems found by Validate.
	InvalidCatalogError struct {
		Problems []string
	}
)

// String renders the VLNV in colon form, e.g. "xilinx.com:interface:axis:1.0".
func (v VLNV) String() string {
	return strings.Join([]string{v.Vendor, v.Library, v.Name, v.Version}, ":")
}

// IsZero reports whether no field is set.
func (v VLNV) IsZero() bool { return v == VLNV{} }

// Opposite returns the other direction.
func (d PortDirection) Opposite() PortDirection {
	if d == PortIn {
		return PortOut
	}
	return PortIn
}

// ResetPolarity derives the reset assertion level from the signal name:
// names ending in "n" (any case) are active-low, everything else active-high.
// It returns "" when the binding has no reset.
func (c ClockDomainBinding) ResetPolarity() ResetPolarity {
	return PolarityOf(c.Reset)
}

// HasReset reports whether the binding carries a reset signal.
func (c ClockDomainBinding) HasReset() bool { return c.Reset != "" }

// PolarityOf applies the reset naming convention to a signal name.
func PolarityOf(reset string) ResetPolarity {
	if reset == "" {
		return ""
	}
	if strings.HasSuffix(strings.ToLower(reset), activeLowSuffix) {
		return ActiveLow
	}
	return ActiveHigh
}

// VLNV returns the identifier of the packaged core.
func (m VersionMetadata) VLNV() VLNV {
	return VLNV{Vendor: m.Vendor, Library: m.Library, Name: m.IPName, Version: m.Version}
}

// ArchiveName returns the file name of the archived package,
// e.g. "enjoy-digital.com_user_axi_converter_128b_to_64b_1_3.zip".
func (m VersionMetadata) ArchiveName() string {
	clean := strings.NewReplacer(":", "_", ".", "_")
	return fmt.Sprintf("%s_%s_%s_%s.zip", m.Vendor, m.Library, m.IPName, clean.Replace(m.Version))
}

// Files returns every artifact path in registration order:
// netlist, constraints, then auxiliary files. Empty paths are skipped.
func (a PackageArtifactSet) Files() []string {
	files := make([]string, 0, 2+len(a.Auxiliary))
	for _, f := range append([]string{a.Netlist, a.Constraints}, a.Auxiliary...) {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// Bus returns the bus interface with the given name.
func (c *Catalog) Bus(name string) (BusInterfaceSpec, bool) {
	for _, b := range c.Buses {
		if b.Name == name {
			return b, true
		}
	}
	return BusInterfaceSpec{}, false
}

// Error implements the error interface.
func (e *InvalidCatalogError) Error() string {
	return fmt.Sprintf("invalid catalog: %s", strings.Join(e.Problems, "; "))
}

// Unwrap returns ErrInvalidCatalog for errors.Is() compatibility.
func (e *InvalidCatalogError) Unwrap() error { return ErrInvalidCatalog }
