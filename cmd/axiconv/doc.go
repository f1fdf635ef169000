// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the axiconv command line.
//
// The root command takes the build parameters and one switch per pipeline
// stage (--build, --interface, --package, --project). Subcommands cover
// configuration management (config) and printing the packaging script
// without running anything (script).
package cmd
