// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/sebo83910/litex-axi-converter/internal/params"
	"github.com/sebo83910/litex-axi-converter/internal/params/paramstest"
)

func TestPolarityOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reset string
		want  ResetPolarity
	}{
		{"axis_rst", ActiveHigh},
		{"aresetn", ActiveLow},
		{"ARESETN", ActiveLow},
		{"rst_N", ActiveLow},
		{"reset", ActiveHigh},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.reset, func(t *testing.T) {
			t.Parallel()
			if got := PolarityOf(tt.reset); got != tt.want {
				t.Errorf("PolarityOf(%q) = %q, want %q", tt.reset, got, tt.want)
			}
			cd := ClockDomainBinding{Clock: "clk", Reset: tt.reset}
			if got := cd.ResetPolarity(); got != tt.want {
				t.Errorf("ResetPolarity() = %q, want %q", got, tt.want)
			}
			if cd.HasReset() != (tt.reset != "") {
				t.Errorf("HasReset() = %v for %q", cd.HasReset(), tt.reset)
			}
		})
	}
}

func TestVLNVString(t *testing.T) {
	t.Parallel()

	if got := ProtocolAXIStream.Bus.String(); got != "xilinx.com:interface:axis:1.0" {
		t.Errorf("String() = %q", got)
	}
	if !(VLNV{}).IsZero() {
		t.Error("zero VLNV should report IsZero")
	}
}

func TestVersionMetadataArchiveName(t *testing.T) {
	t.Parallel()

	m := VersionMetadata{IPName: "axi_converter_128b_to_64b", Version: "1.3", Vendor: "enjoy-digital.com", Library: "user"}
	if got := m.ArchiveName(); got != "enjoy-digital.com_user_axi_converter_128b_to_64b_1_3.zip" {
		t.Errorf("ArchiveName() = %q", got)
	}
	if got := m.VLNV().String(); got != "enjoy-digital.com:user:axi_converter_128b_to_64b:1.3" {
		t.Errorf("VLNV() = %q", got)
	}
}

func TestArtifactFiles(t *testing.T) {
	t.Parallel()

	a := PackageArtifactSet{Netlist: "core.v", Constraints: "", Auxiliary: []string{"ila.xci"}}
	got := a.Files()
	if strings.Join(got, ",") != "core.v,ila.xci" {
		t.Errorf("Files() = %v", got)
	}
}

func TestAXIConverterCatalog(t *testing.T) {
	t.Parallel()

	cfg := paramstest.Resolve(t, params.RawArgs{InputWidth: params.Int(128), OutputWidth: params.Int(64)})
	c := AXIConverter(cfg)

	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	in, ok := c.Bus(BusStreamIn)
	if !ok {
		t.Fatalf("bus %q missing", BusStreamIn)
	}
	if in.Mode != ModeSlave {
		t.Errorf("axis_in mode = %q, want slave", in.Mode)
	}

	widths := map[string]int{}
	dirs := map[string]PortDirection{}
	for _, p := range in.Ports {
		widths[p.Logical] = p.Width
		dirs[p.Logical] = p.Direction
	}
	if widths["TDATA"] != 128 || widths["TKEEP"] != 16 {
		t.Errorf("axis_in TDATA/TKEEP = %d/%d, want 128/16", widths["TDATA"], widths["TKEEP"])
	}
	if _, hasUser := widths["TUSER"]; hasUser {
		t.Error("TUSER must be omitted when user_width is 0")
	}
	if dirs["TREADY"] != PortOut {
		t.Errorf("slave TREADY direction = %q, want out", dirs["TREADY"])
	}

	out, _ := c.Bus(BusStreamOut)
	for _, p := range out.Ports {
		if p.Logical == "TREADY" && p.Direction != PortIn {
			t.Errorf("master TREADY direction = %q, want in", p.Direction)
		}
		if p.Logical == "TDATA" && p.Width != 64 {
			t.Errorf("axis_out TDATA width = %d, want 64", p.Width)
		}
	}

	wb, _ := c.Bus(BusWishbone)
	if wb.Ports[0].Physical != "wishbone_in_adr" || wb.Ports[0].Logical != "wishbone_adr" {
		t.Errorf("wishbone first port = %+v", wb.Ports[0])
	}

	if len(c.Clocks) != 3 || c.Clocks[1].Clock != StreamClock {
		t.Errorf("unexpected clocks: %+v", c.Clocks)
	}
}

func TestAXIConverterStreamPortNames(t *testing.T) {
	t.Parallel()

	c := AXIConverter(paramstest.Resolve(t, params.RawArgs{UserWidth: params.Int(2)}))

	tests := []struct {
		bus  string
		want []string
	}{
		{BusStreamIn, []string{"axis_in_tvalid", "axis_in_tready", "axis_in_tlast", "axis_in_tdata", "axis_in_tkeep", "axis_in_tuser"}},
		{BusStreamOut, []string{"axis_out_tvalid", "axis_out_tready", "axis_out_tlast", "axis_out_tdata", "axis_out_tkeep", "axis_out_tuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.bus, func(t *testing.T) {
			t.Parallel()

			b, ok := c.Bus(tt.bus)
			if !ok {
				t.Fatalf("bus %q missing", tt.bus)
			}
			var got []string
			for _, p := range b.Ports {
				got = append(got, p.Physical)
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("physical ports = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAXIConverterKeepWidth(t *testing.T) {
	t.Parallel()

	cfg := paramstest.Resolve(t, params.RawArgs{InputWidth: params.Int(128), OutputWidth: params.Int(64)})
	c := AXIConverter(cfg)
	for bus, want := range map[string]int{BusStreamIn: cfg.InputKeepWidth(), BusStreamOut: cfg.OutputKeepWidth()} {
		b, _ := c.Bus(bus)
		for _, p := range b.Ports {
			if p.Logical == "TKEEP" && p.Width != want {
				t.Errorf("%s TKEEP width = %d, want %d", bus, p.Width, want)
			}
		}
	}
	if cfg.InputKeepWidth() != 16 || cfg.OutputKeepWidth() != 8 {
		t.Errorf("keep widths = %d/%d, want 16/8", cfg.InputKeepWidth(), cfg.OutputKeepWidth())
	}
}

func TestAXIConverterUserWidth(t *testing.T) {
	t.Parallel()

	cfg := paramstest.Resolve(t, params.RawArgs{UserWidth: params.Int(4)})
	c := AXIConverter(cfg)
	out, _ := c.Bus(BusStreamOut)

	found := false
	for _, p := range out.Ports {
		if p.Logical == "TUSER" {
			found = true
			if p.Width != 4 {
				t.Errorf("TUSER width = %d, want 4", p.Width)
			}
		}
	}
	if !found {
		t.Error("TUSER missing with user_width=4")
	}
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		catalog Catalog
		want    string
	}{
		{
			name: "duplicate bus",
			catalog: Catalog{Buses: []BusInterfaceSpec{
				{Name: "a", Mode: ModeSlave, Protocol: ProtocolAXIStream, Ports: []PortMap{{"a_valid", "TVALID", 1, PortIn}}},
				{Name: "a", Mode: ModeSlave, Protocol: ProtocolAXIStream, Ports: []PortMap{{"b_valid", "TVALID", 1, PortIn}}},
			}},
			want: "duplicate bus",
		},
		{
			name: "bad mode",
			catalog: Catalog{Buses: []BusInterfaceSpec{
				{Name: "a", Mode: "monitor", Protocol: ProtocolAXIStream, Ports: []PortMap{{"a_valid", "TVALID", 1, PortIn}}},
			}},
			want: "neither master nor slave",
		},
		{
			name: "zero width port",
			catalog: Catalog{Buses: []BusInterfaceSpec{
				{Name: "a", Mode: ModeSlave, Protocol: ProtocolAXIStream, Ports: []PortMap{{"a_data", "TDATA", 0, PortIn}}},
			}},
			want: "non-positive width",
		},
		{
			name:    "clock lists bus twice",
			catalog: Catalog{Clocks: []ClockDomainBinding{{Clock: "clk", Buses: []string{"a", "a"}}}},
			want:    "listed twice",
		},
		{
			name:    "empty interrupt",
			catalog: Catalog{Interrupts: []InterruptSpec{{}}},
			want:    "empty signal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.catalog.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("errors.Is(err, ErrInvalidCatalog) = false")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
