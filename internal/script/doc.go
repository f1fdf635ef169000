// SPDX-License-Identifier: MPL-2.0

// Package script builds the Vivado TCL programs that package the core.
//
// Emission is split in two steps. The emitters (Emit, EmitBusDefinitions,
// EmitProject) produce an ordered list of typed Statement values; ordering
// is fixed by each statement's Phase, so it can be tested without looking
// at any text. Rendering to TCL only happens in Script.Render.
//
// Each packaging statement mutates Vivado's internal state, so phase order
// is a hard constraint: procedures, project, files, bus interfaces, clock
// bindings, interrupts, GUI layout, version stamp, checksums, save, archive.
package script
