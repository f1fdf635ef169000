// SPDX-License-Identifier: MPL-2.0

// Package postprocess rewrites the raw netlist and constraints files
// produced by elaboration before they are packaged.
//
// Both transforms make a single forward pass and preserve the line endings
// of the input. Neither is idempotent: apply each exactly once per fresh
// artifact.
package postprocess
