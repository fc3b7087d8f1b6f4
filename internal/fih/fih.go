// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fih implements fault injection hardening primitives for boot code.
//
// Security critical integers are stored as redundancy encoded values (Uint,
// Int), when the double variable encoding is enabled each value is kept
// together with a masked copy of itself so that corruption of either word is
// detected on the next validation.
//
// Any detected inconsistency invokes Panic, which never returns.
//
// The following build tags select alternate implementations at compile time:
//
//	fih_single_vars     disable the double variable encoding
//	fih_no_global_fail  replace the global failure loop with a plain loop
//	fih_delay           enable random delays
//	fih_sim             report failures on the simulation sentinel
package fih

// Result is returned by comparisons, only True represents an affirmative
// answer, any other value must be treated as false.
type Result int32

const (
	true1 Result = 0x300A
	true2 Result = 0x0C50

	// True is glued from two independent halves (true1 | true2).
	True  Result = 0x3C5A
	False Result = 0xA5C3
)

const (
	PositiveValue = int32(0x5555AAAA)
	NegativeValue = -int32(0x5555AAAB) // 0xAAAA5555

	invalidVal = 0xAFFEDEAD
	invalidMsk = 0xDEADAFFE
)

var (
	// Success and Failure are the encoded return codes of protected
	// functions.
	Success = EncodeInt(PositiveValue)
	Failure = EncodeInt(NegativeValue)

	UintZero = EncodeUint(0)
	UintMax  = EncodeUint(0xFFFFFFFF)
)

// EncodeZeroEquality converts the common zero-on-success return convention to
// Success, any other value to Failure.
func EncodeZeroEquality(x int32) Int {
	if x != 0 {
		return Failure
	}

	return Success
}

// Bool returns an encoded True or False.
func Bool(b bool) Int {
	if b {
		return EncodeInt(int32(True))
	}

	return EncodeInt(int32(False))
}
