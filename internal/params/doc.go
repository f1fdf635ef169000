// SPDX-License-Identifier: MPL-2.0

// Package params resolves the user-supplied build parameters of the AXI
// width converter into one immutable BuildConfiguration.
//
// A BuildConfiguration is created once per invocation and threaded
// read-only through the script emitter and the artifact post-processor.
// Resolve has no side effects and never reads ambient state: callers pass
// the defaults explicitly.
package params
