// SPDX-License-Identifier: MPL-2.0

// Package packager drives the packaging pipeline of the AXI converter core.
//
// An Orchestrator runs up to four stages against one build configuration:
// build (external elaboration), interface (custom bus definitions), package
// (post-processed artifacts plus the packaging script) and project (a demo
// block design). Stages run in dependency order, one at a time, and the
// vendor tool is invoked through a runtime.Runtime.
//
// The package and project directories are destructively recreated on every
// run. Two runs for the same build name must not overlap.
package packager
