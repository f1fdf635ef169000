// SPDX-License-Identifier: MPL-2.0

package params

import (
	"errors"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(RawArgs{}, StandardDefaults())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cfg.AddressWidth() != 64 {
		t.Errorf("AddressWidth() = %d, want 64", cfg.AddressWidth())
	}
	if cfg.InputWidth() != 128 {
		t.Errorf("InputWidth() = %d, want 128", cfg.InputWidth())
	}
	if cfg.OutputWidth() != 64 {
		t.Errorf("OutputWidth() = %d, want 64", cfg.OutputWidth())
	}
	if cfg.UserWidth() != 0 {
		t.Errorf("UserWidth() = %d, want 0", cfg.UserWidth())
	}
	if cfg.Reverse() {
		t.Error("Reverse() = true, want false")
	}
}

func TestResolveOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(RawArgs{
		InputWidth:  Int(32),
		OutputWidth: Int(256),
		UserWidth:   Int(4),
		Reverse:     Bool(true),
	}, StandardDefaults())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cfg.AddressWidth() != 64 {
		t.Errorf("AddressWidth() = %d, want default 64", cfg.AddressWidth())
	}
	if cfg.InputWidth() != 32 || cfg.OutputWidth() != 256 || cfg.UserWidth() != 4 {
		t.Errorf("widths = %d/%d/%d, want 32/256/4", cfg.InputWidth(), cfg.OutputWidth(), cfg.UserWidth())
	}
	if !cfg.Reverse() {
		t.Error("Reverse() = false, want true")
	}
	if cfg.InputKeepWidth() != 4 || cfg.OutputKeepWidth() != 32 {
		t.Errorf("keep widths = %d/%d, want 4/32", cfg.InputKeepWidth(), cfg.OutputKeepWidth())
	}
}

func TestResolveUsesGivenDefaults(t *testing.T) {
	t.Parallel()

	defaults := StandardDefaults()
	defaults.InputWidth = 512

	cfg, err := Resolve(RawArgs{}, defaults)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.InputWidth() != 512 {
		t.Errorf("InputWidth() = %d, want 512", cfg.InputWidth())
	}
}

func TestResolveInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       RawArgs
		wantParam []string
	}{
		{
			name:      "zero input width",
			raw:       RawArgs{InputWidth: Int(0)},
			wantParam: []string{ParamInputWidth},
		},
		{
			name:      "negative address width",
			raw:       RawArgs{AddressWidth: Int(-1)},
			wantParam: []string{ParamAddressWidth},
		},
		{
			name:      "output width not byte multiple",
			raw:       RawArgs{OutputWidth: Int(60)},
			wantParam: []string{ParamOutputWidth},
		},
		{
			name:      "negative user width",
			raw:       RawArgs{UserWidth: Int(-4)},
			wantParam: []string{ParamUserWidth},
		},
		{
			name:      "several fields at once",
			raw:       RawArgs{InputWidth: Int(12), OutputWidth: Int(-8)},
			wantParam: []string{ParamOutputWidth, ParamInputWidth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Resolve(tt.raw, StandardDefaults())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("errors.Is(err, ErrInvalidParameter) = false for %v", err)
			}

			var paramErr *InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("expected *InvalidParameterError, got %T", err)
			}

			joined, ok := err.(interface{ Unwrap() []error })
			if !ok {
				t.Fatalf("expected joined error, got %T", err)
			}
			var got []string
			for _, e := range joined.Unwrap() {
				var pe *InvalidParameterError
				if errors.As(e, &pe) {
					got = append(got, pe.Parameter)
				}
			}
			if len(got) != len(tt.wantParam) {
				t.Fatalf("rejected params = %v, want %v", got, tt.wantParam)
			}
			for i := range got {
				if got[i] != tt.wantParam[i] {
					t.Errorf("rejected[%d] = %q, want %q", i, got[i], tt.wantParam[i])
				}
			}
		})
	}
}

func TestUserWidthZeroIsValid(t *testing.T) {
	t.Parallel()

	if _, err := Resolve(RawArgs{UserWidth: Int(0)}, StandardDefaults()); err != nil {
		t.Errorf("Resolve() with user_width=0 error = %v", err)
	}
}

func TestBuildName(t *testing.T) {
	t.Parallel()

	cfg := mustResolve(t, RawArgs{InputWidth: Int(128), OutputWidth: Int(64)})
	if got := cfg.BuildName("axi_converter"); got != "axi_converter_128b_to_64b" {
		t.Errorf("BuildName() = %q", got)
	}
}

func TestGenerics(t *testing.T) {
	t.Parallel()

	cfg := mustResolve(t, RawArgs{Reverse: Bool(true), UserWidth: Int(2)})
	got := cfg.Generics()

	want := []Generic{
		{ParamAddressWidth, "64"},
		{ParamInputWidth, "128"},
		{ParamOutputWidth, "64"},
		{ParamUserWidth, "2"},
		{ParamReverse, "1"},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Generics()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Generics()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func mustResolve(t *testing.T, raw RawArgs) BuildConfiguration {
	t.Helper()

	cfg, err := Resolve(raw, StandardDefaults())
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return cfg
}
