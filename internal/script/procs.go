// SPDX-License-Identifier: MPL-2.0

package script

import (
	"github.com/sebo83910/litex-axi-converter/internal/catalog"
)

// Names of the helper procedures every packaging script defines.
const (
	procDeclareBus       = "declare_bus"
	procAddPortMap       = "add_port_map"
	procBindClock        = "bind_clock"
	procBindReset        = "bind_reset"
	procDeclareInterrupt = "declare_interrupt"
	procAddGuiGroup      = "add_gui_group"
	procPlaceParam       = "place_param"

	guiPage = "Page 0"
)

// Procedures returns the helper procedure definitions in a fixed order.
// Clock and reset helpers are idempotent: domains sharing a clock infer
// its interface once and only extend the association.
func Procedures() []ProcDef {
	return []ProcDef{
		{
			Name: procDeclareBus,
			Args: []string{"name", "mode", "bus_vlnv", "abs_vlnv"},
			Body: []string{
				"set old [ipx::get_bus_interfaces $name -of_objects [ipx::current_core]]",
				"if {$old ne {}} { ipx::remove_bus_interface $name [ipx::current_core] }",
				"set busif [ipx::add_bus_interface $name [ipx::current_core]]",
				"set_property abstraction_type_vlnv $abs_vlnv $busif",
				"set_property bus_type_vlnv $bus_vlnv $busif",
				"set_property interface_mode $mode $busif",
			},
		},
		{
			Name: procAddPortMap,
			Args: []string{"busif", "logical", "physical"},
			Body: []string{
				"set bus [ipx::get_bus_interfaces $busif -of_objects [ipx::current_core]]",
				"set map [ipx::add_port_map $logical $bus]",
				"set_property physical_name $physical $map",
			},
		},
		{
			Name: procBindClock,
			Args: []string{"clk", "buses"},
			Body: []string{
				"if {[ipx::get_bus_interfaces $clk -of_objects [ipx::current_core]] eq {}} {",
				"    ipx::infer_bus_interface $clk " + catalog.SignalClock.String() + " [ipx::current_core]",
				"}",
				"foreach busif $buses {",
				"    ipx::associate_bus_interfaces -busif $busif -clock $clk [ipx::current_core]",
				"}",
			},
		},
		{
			Name: procBindReset,
			Args: []string{"clk", "rst", "polarity"},
			Body: []string{
				"if {[ipx::get_bus_interfaces $rst -of_objects [ipx::current_core]] eq {}} {",
				"    ipx::infer_bus_interface $rst " + catalog.SignalReset.String() + " [ipx::current_core]",
				"}",
				"set busif [ipx::get_bus_interfaces $rst -of_objects [ipx::current_core]]",
				"set param [ipx::get_bus_parameters POLARITY -of_objects $busif]",
				"if {$param eq {}} { set param [ipx::add_bus_parameter POLARITY $busif] }",
				"set_property value $polarity $param",
				"ipx::associate_bus_interfaces -clock $clk -reset $rst [ipx::current_core]",
			},
		},
		{
			Name: procDeclareInterrupt,
			Args: []string{"irq"},
			Body: []string{
				"ipx::infer_bus_interface $irq " + catalog.SignalInterrupt.String() + " [ipx::current_core]",
				"set busif [ipx::get_bus_interfaces $irq -of_objects [ipx::current_core]]",
				"set param [ipx::add_bus_parameter SENSITIVITY $busif]",
				"set_property value LEVEL_HIGH $param",
			},
		},
		{
			Name: procAddGuiGroup,
			Args: []string{"name", "order"},
			Body: []string{
				"set page [ipgui::get_pagespec -name " + Quote(guiPage) + " -component [ipx::current_core]]",
				"set group [ipgui::add_group -name $name -component [ipx::current_core] -parent $page -display_name $name]",
				"ipgui::move_group -component [ipx::current_core] -order $order $group -parent $page",
			},
		},
		{
			Name: procPlaceParam,
			Args: []string{"group", "param", "order"},
			Body: []string{
				"set parent [ipgui::get_groupspec -name $group -component [ipx::current_core]]",
				"set widget [ipgui::get_guiparamspec -name $param -component [ipx::current_core]]",
				"ipgui::move_param -component [ipx::current_core] -order $order $widget -parent $parent",
				"set_property enablement_value false [ipx::get_user_parameters $param -of_objects [ipx::current_core]]",
			},
		},
	}
}
