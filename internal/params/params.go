// SPDX-License-Identifier: MPL-2.0

package params

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// DefaultAddressWidth is the AXI-Lite address width used when none is given.
	DefaultAddressWidth = 64
	// DefaultInputWidth is the AXI-Stream input data width used when none is given.
	DefaultInputWidth = 128
	// DefaultOutputWidth is the AXI-Stream output data width used when none is given.
	DefaultOutputWidth = 64
	// DefaultUserWidth is the AXI-Stream TUSER width used when none is given.
	DefaultUserWidth = 0

	// ByteWidth is the granularity stream data widths must respect.
	ByteWidth = 8

	// Parameter names, in declaration order. They double as HDL generic names.
	ParamAddressWidth = "address_width"
	ParamInputWidth   = "input_width"
	ParamOutputWidth  = "output_width"
	ParamUserWidth    = "user_width"
	ParamReverse      = "reverse"
)

// ErrInvalidParameter is the sentinel error wrapped by InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

type (
	// Defaults holds the values used for every parameter the caller leaves unset.
	Defaults struct {
		AddressWidth int
		InputWidth   int
		OutputWidth  int
		UserWidth    int
		Reverse      bool
	}

	// RawArgs carries explicit build arguments. A nil field means "not given"
	// and is replaced by the matching Defaults value.
	RawArgs struct {
		AddressWidth *int
		InputWidth   *int
		OutputWidth  *int
		UserWidth    *int
		Reverse      *bool
	}

	// BuildConfiguration is the resolved, immutable parameter set of one run.
	// Fields are unexported; use the accessors.
	BuildConfiguration struct {
		addressWidth int
		inputWidth   int
		outputWidth  int
		userWidth    int
		reverse      bool
	}

	// Generic is one named HDL parameter derived from a BuildConfiguration.
	Generic struct {
		Name  string
		Value string
	}

	// InvalidParameterError reports a single rejected build parameter.
	InvalidParameterError struct {
		Parameter string
		Value     int
		Reason    string
	}
)

// StandardDefaults returns the documented defaults:
// address_width=64, input_width=128, output_width=64, user_width=0, reverse=false.
func StandardDefaults() Defaults {
	return Defaults{
		AddressWidth: DefaultAddressWidth,
		InputWidth:   DefaultInputWidth,
		OutputWidth:  DefaultOutputWidth,
		UserWidth:    DefaultUserWidth,
		Reverse:      false,
	}
}

// Int returns a pointer to v, for building RawArgs literals.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building RawArgs literals.
func Bool(v bool) *bool { return &v }

// Resolve merges raw over defaults and validates the result.
//
// Every invalid field is reported; the returned error joins one
// *InvalidParameterError per field.
func Resolve(raw RawArgs, defaults Defaults) (BuildConfiguration, error) {
	cfg := BuildConfiguration{
		addressWidth: pick(raw.AddressWidth, defaults.AddressWidth),
		inputWidth:   pick(raw.InputWidth, defaults.InputWidth),
		outputWidth:  pick(raw.OutputWidth, defaults.OutputWidth),
		userWidth:    pick(raw.UserWidth, defaults.UserWidth),
		reverse:      pick(raw.Reverse, defaults.Reverse),
	}

	if err := cfg.Validate(); err != nil {
		return BuildConfiguration{}, err
	}
	return cfg, nil
}

func pick[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// Validate checks the width constraints the converter logic depends on.
// Address, input and output widths must be positive; user width may be zero
// (no TUSER) but not negative; stream data widths must be whole bytes.
func (c BuildConfiguration) Validate() error {
	var errs []error

	positive := []struct {
		name  string
		value int
	}{
		{ParamAddressWidth, c.addressWidth},
		{ParamInputWidth, c.inputWidth},
		{ParamOutputWidth, c.outputWidth},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, &InvalidParameterError{Parameter: p.name, Value: p.value, Reason: "must be positive"})
		}
	}

	if c.userWidth < 0 {
		errs = append(errs, &InvalidParameterError{Parameter: ParamUserWidth, Value: c.userWidth, Reason: "must not be negative"})
	}

	for _, p := range positive[1:] {
		if p.value > 0 && p.value%ByteWidth != 0 {
			errs = append(errs, &InvalidParameterError{
				Parameter: p.name,
				Value:     p.value,
				Reason:    fmt.Sprintf("must be a multiple of %d bits", ByteWidth),
			})
		}
	}

	return errors.Join(errs...)
}

// AddressWidth returns the AXI-Lite address width.
func (c BuildConfiguration) AddressWidth() int { return c.addressWidth }

// InputWidth returns the AXI-Stream input data width.
func (c BuildConfiguration) InputWidth() int { return c.inputWidth }

// OutputWidth returns the AXI-Stream output data width.
func (c BuildConfiguration) OutputWidth() int { return c.outputWidth }

// UserWidth returns the AXI-Stream TUSER width. Zero means no TUSER signal.
func (c BuildConfiguration) UserWidth() int { return c.userWidth }

// Reverse reports whether the converter reverses sub-word ordering.
func (c BuildConfiguration) Reverse() bool { return c.reverse }

// InputKeepWidth returns the TKEEP width of the input stream.
func (c BuildConfiguration) InputKeepWidth() int { return c.inputWidth / ByteWidth }

// OutputKeepWidth returns the TKEEP width of the output stream.
func (c BuildConfiguration) OutputKeepWidth() int { return c.outputWidth / ByteWidth }

// BuildName derives the per-variant build name, e.g. "axi_converter_128b_to_64b".
func (c BuildConfiguration) BuildName(core string) string {
	return fmt.Sprintf("%s_%db_to_%db", core, c.inputWidth, c.outputWidth)
}

// Generics returns one HDL parameter per configuration field, in declaration
// order. Booleans are rendered as 0/1 so they are legal Verilog literals.
func (c BuildConfiguration) Generics() []Generic {
	reverse := "0"
	if c.reverse {
		reverse = "1"
	}
	return []Generic{
		{Name: ParamAddressWidth, Value: strconv.Itoa(c.addressWidth)},
		{Name: ParamInputWidth, Value: strconv.Itoa(c.inputWidth)},
		{Name: ParamOutputWidth, Value: strconv.Itoa(c.outputWidth)},
		{Name: ParamUserWidth, Value: strconv.Itoa(c.userWidth)},
		{Name: ParamReverse, Value: reverse},
	}
}

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%d: %s", e.Parameter, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidParameter so callers can use errors.Is.
func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }
