// SPDX-License-Identifier: MPL-2.0

// Package paramstest provides build configuration fixtures for tests.
package paramstest

import (
	"testing"

	"github.com/sebo83910/litex-axi-converter/internal/params"
)

// Resolve resolves raw against the standard defaults and fails the test on
// error.
func Resolve(tb testing.TB, raw params.RawArgs) params.BuildConfiguration {
	tb.Helper()

	cfg, err := params.Resolve(raw, params.StandardDefaults())
	if err != nil {
		tb.Fatalf("params.Resolve(%+v) error: %v", raw, err)
	}
	return cfg
}

// Default is Resolve with every parameter left unset.
func Default(tb testing.TB) params.BuildConfiguration {
	tb.Helper()
	return Resolve(tb, params.RawArgs{})
}
