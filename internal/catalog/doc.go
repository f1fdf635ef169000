// SPDX-License-Identifier: MPL-2.0

// Package catalog describes the interfaces a packaged core exposes: bus
// interfaces and their port maps, clock/reset domains, interrupts, GUI
// parameter grouping, version metadata and the artifact set produced by
// elaboration.
//
// Catalog values are pure data. Port widths are parameterized by a
// params.BuildConfiguration, but nothing here depends on run state.
package catalog
