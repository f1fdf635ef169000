// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"github.com/sebo83910/litex-axi-converter/internal/params"
)

const (
	// BusAXILite is the control interface name.
	BusAXILite = "axilite_in"
	// BusStreamIn is the input stream interface name.
	BusStreamIn = "axis_in"
	// BusStreamOut is the output stream interface name.
	BusStreamOut = "axis_out"
	// BusWishbone is the custom bus interface name.
	BusWishbone = "wishbone_in"

	// Clock and reset signal names of the two domains.
	StreamClock = "axis_clk"
	StreamReset = "axis_rst"
	LiteClock   = "axilite_clk"
	LiteReset   = "axilite_rst"

	// InterruptSignal is the event manager interrupt output.
	InterruptSignal = "irq"

	axiLiteDataWidth  = 32
	wishboneDataWidth = 16
	wishboneAdrWidth  = 30
)

// ProtocolWishbone is the custom Wishbone-like bus shipped with the core.
var ProtocolWishbone = Protocol{
	Bus:         VLNV{Vendor: "enjoy-digital.com", Library: "interface", Name: "wishbone", Version: "1.0"},
	Abstraction: VLNV{Vendor: "enjoy-digital.com", Library: "interface", Name: "wishbone_rtl", Version: "1.0"},
}

// AXIConverter returns the interface catalog of the AXI width converter
// for one build configuration.
func AXIConverter(cfg params.BuildConfiguration) Catalog {
	return Catalog{
		Buses: []BusInterfaceSpec{
			axiLite(BusAXILite, cfg.AddressWidth()),
			axiStream(BusStreamIn, ModeSlave, cfg.InputWidth(), cfg.InputKeepWidth(), cfg.UserWidth()),
			axiStream(BusStreamOut, ModeMaster, cfg.OutputWidth(), cfg.OutputKeepWidth(), cfg.UserWidth()),
			wishboneSlave(BusWishbone),
		},
		Clocks: []ClockDomainBinding{
			{Label: "Wishbone", Clock: LiteClock, Reset: LiteReset, Buses: []string{BusWishbone}},
			{Label: "AXI Stream", Clock: StreamClock, Reset: StreamReset, Buses: []string{BusStreamIn, BusStreamOut}},
			{Label: "AXI Lite", Clock: LiteClock, Reset: LiteReset, Buses: []string{BusAXILite}},
		},
		Interrupts: []InterruptSpec{{Signal: InterruptSignal}},
		GUI: []GuiGroup{
			{DisplayName: "AXI Lite", Order: 0, Members: []GuiMember{
				{Param: params.ParamAddressWidth, Order: 0},
			}},
			{DisplayName: "AXI Stream", Order: 1, Members: []GuiMember{
				{Param: params.ParamInputWidth, Order: 0},
				{Param: params.ParamOutputWidth, Order: 1},
				{Param: params.ParamUserWidth, Order: 2},
			}},
			{DisplayName: "Misc", Order: 2, Members: []GuiMember{
				{Param: params.ParamReverse, Order: 0},
			}},
		},
		Definitions: []BusDefinition{WishboneDefinition()},
	}
}

// WishboneDefinition declares the logical ports of the custom bus.
func WishboneDefinition() BusDefinition {
	return BusDefinition{
		Protocol: ProtocolWishbone,
		Ports: []AbstractionPort{
			{Logical: "wishbone_adr", Width: wishboneAdrWidth, SlaveDirection: PortIn},
			{Logical: "wishbone_dat_w", Width: wishboneDataWidth, SlaveDirection: PortIn},
			{Logical: "wishbone_dat_r", Width: wishboneDataWidth, SlaveDirection: PortOut},
			{Logical: "wishbone_sel", Width: wishboneDataWidth / params.ByteWidth, SlaveDirection: PortIn},
			{Logical: "wishbone_cyc", Width: 1, SlaveDirection: PortIn},
			{Logical: "wishbone_stb", Width: 1, SlaveDirection: PortIn},
			{Logical: "wishbone_ack", Width: 1, SlaveDirection: PortOut},
			{Logical: "wishbone_we", Width: 1, SlaveDirection: PortIn},
			{Logical: "wishbone_cti", Width: 3, SlaveDirection: PortIn},
			{Logical: "wishbone_bte", Width: 2, SlaveDirection: PortIn},
			{Logical: "wishbone_err", Width: 1, SlaveDirection: PortOut},
		},
	}
}

// signal is one logical signal of a bus as seen by its slave.
type signal struct {
	suffix  string
	logical string
	width   int
	dir     PortDirection
}

func busSpec(name string, mode InterfaceMode, proto Protocol, signals []signal) BusInterfaceSpec {
	ports := make([]PortMap, 0, len(signals))
	for _, s := range signals {
		if s.width == 0 {
			continue
		}
		dir := s.dir
		if mode == ModeMaster {
			dir = dir.Opposite()
		}
		ports = append(ports, PortMap{
			Physical:  name + "_" + s.suffix,
			Logical:   s.logical,
			Width:     s.width,
			Direction: dir,
		})
	}
	return BusInterfaceSpec{Name: name, Mode: mode, Protocol: proto, Ports: ports}
}

func axiLite(name string, addressWidth int) BusInterfaceSpec {
	strb := axiLiteDataWidth / params.ByteWidth
	return busSpec(name, ModeSlave, ProtocolAXILite, []signal{
		{"awvalid", "AWVALID", 1, PortIn},
		{"awready", "AWREADY", 1, PortOut},
		{"awaddr", "AWADDR", addressWidth, PortIn},
		{"wvalid", "WVALID", 1, PortIn},
		{"wready", "WREADY", 1, PortOut},
		{"wdata", "WDATA", axiLiteDataWidth, PortIn},
		{"wstrb", "WSTRB", strb, PortIn},
		{"bvalid", "BVALID", 1, PortOut},
		{"bready", "BREADY", 1, PortIn},
		{"bresp", "BRESP", 2, PortOut},
		{"arvalid", "ARVALID", 1, PortIn},
		{"arready", "ARREADY", 1, PortOut},
		{"araddr", "ARADDR", addressWidth, PortIn},
		{"rvalid", "RVALID", 1, PortOut},
		{"rready", "RREADY", 1, PortIn},
		{"rdata", "RDATA", axiLiteDataWidth, PortOut},
		{"rresp", "RRESP", 2, PortOut},
	})
}

// axiStream names its ports <bus>_t<signal>, the way LiteX pads an
// AXIStreamInterface. TUSER is omitted when userWidth is zero.
func axiStream(name string, mode InterfaceMode, dataWidth, keepWidth, userWidth int) BusInterfaceSpec {
	return busSpec(name, mode, ProtocolAXIStream, []signal{
		{"tvalid", "TVALID", 1, PortIn},
		{"tready", "TREADY", 1, PortOut},
		{"tlast", "TLAST", 1, PortIn},
		{"tdata", "TDATA", dataWidth, PortIn},
		{"tkeep", "TKEEP", keepWidth, PortIn},
		{"tuser", "TUSER", userWidth, PortIn},
	})
}

func wishboneSlave(name string) BusInterfaceSpec {
	def := WishboneDefinition()
	signals := make([]signal, 0, len(def.Ports))
	for _, p := range def.Ports {
		// wishbone_adr -> wishbone_in_adr
		suffix := p.Logical[len("wishbone_"):]
		signals = append(signals, signal{suffix, p.Logical, p.Width, p.SlaveDirection})
	}
	return busSpec(name, ModeSlave, ProtocolWishbone, signals)
}
