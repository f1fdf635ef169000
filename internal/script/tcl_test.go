// SPDX-License-Identifier: MPL-2.0

package script

import "testing"

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "{}"},
		{"axis_in", "axis_in"},
		{"xilinx.com:interface:axis:1.0", "xilinx.com:interface:axis:1.0"},
		{"../interfaces", "../interfaces"},
		{"/UserIP", "/UserIP"},
		{"AXI Lite", "{AXI Lite}"},
		{"cost $5", "{cost $5}"},
		{"[exec rm]", "{[exec rm]}"},
		{"#comment", "{#comment}"},
		{"a}b", `"a\}b"`},
		{`C:\path`, `"C:\\path"`},
		{"say \"hi\" {x", `"say \"hi\" \{x"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	if got := List("axis_in", "axis_out"); got != "{axis_in axis_out}" {
		t.Errorf("List() = %s", got)
	}
	if got := List("a b", "c"); got != "{{a b} c}" {
		t.Errorf("List() = %s", got)
	}
	if got := List(); got != "{}" {
		t.Errorf("List() = %s", got)
	}
}

func TestSubst(t *testing.T) {
	t.Parallel()

	if got := Subst("get_bd_pins", "u0/clk"); got != "[get_bd_pins u0/clk]" {
		t.Errorf("Subst() = %s", got)
	}
}
