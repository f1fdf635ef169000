// SPDX-License-Identifier: MPL-2.0

package catalog

import "fmt"

// Validate checks the catalog structure once, before anything is emitted.
// Cross references from clock bindings to buses are checked by the script
// emitter, which owns that failure mode.
func (c *Catalog) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	buses := make(map[string]bool, len(c.Buses))
	physical := make(map[string]string)
	for i, b := range c.Buses {
		switch {
		case b.Name == "":
			addf("buses[%d]: empty name", i)
		case buses[b.Name]:
			addf("buses[%d]: duplicate bus %q", i, b.Name)
		}
		buses[b.Name] = true

		if b.Mode != ModeMaster && b.Mode != ModeSlave {
			addf("bus %q: mode %q is neither master nor slave", b.Name, b.Mode)
		}
		if b.Protocol.Bus.IsZero() || b.Protocol.Abstraction.IsZero() {
			addf("bus %q: protocol is not set", b.Name)
		}
		if len(b.Ports) == 0 {
			addf("bus %q: no ports", b.Name)
		}
		for _, p := range b.Ports {
			if p.Physical == "" || p.Logical == "" {
				addf("bus %q: port map %+v has an empty name", b.Name, p)
			}
			if p.Width <= 0 {
				addf("bus %q: port %q has non-positive width %d", b.Name, p.Physical, p.Width)
			}
			if owner, dup := physical[p.Physical]; dup {
				addf("bus %q: port %q already mapped by bus %q", b.Name, p.Physical, owner)
			}
			physical[p.Physical] = b.Name
		}
	}

	for i, cd := range c.Clocks {
		if cd.Clock == "" {
			addf("clocks[%d]: empty clock signal", i)
		}
		seen := make(map[string]bool, len(cd.Buses))
		for _, name := range cd.Buses {
			if seen[name] {
				addf("clock %q: bus %q listed twice", cd.Clock, name)
			}
			seen[name] = true
		}
	}

	for i, irq := range c.Interrupts {
		if irq.Signal == "" {
			addf("interrupts[%d]: empty signal", i)
		}
	}

	for _, g := range c.GUI {
		if g.DisplayName == "" {
			addf("gui group with order %d has no display name", g.Order)
		}
		for _, m := range g.Members {
			if m.Param == "" {
				addf("gui group %q: member with empty parameter name", g.DisplayName)
			}
		}
	}

	for _, d := range c.Definitions {
		if d.Protocol.Bus.IsZero() || d.Protocol.Abstraction.IsZero() {
			addf("bus definition has no protocol")
		}
		for _, p := range d.Ports {
			if p.Width <= 0 {
				addf("bus definition %s: port %q has non-positive width %d", d.Protocol.Bus, p.Logical, p.Width)
			}
		}
	}

	if len(problems) > 0 {
		return &InvalidCatalogError{Problems: problems}
	}
	return nil
}
