// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !fih_single_vars
// +build !fih_single_vars

package fih

// DoubleVars reports whether values carry a masked backup word.
const DoubleVars = true

// The mask value does not matter much as long as it has a reasonably high
// Hamming weight.
const (
	intMask  int32  = -0x5A3CA5C4 // 0xA5C35A3C
	uintMask uint32 = 0xB779A31C
)

// Uint is a redundancy encoded unsigned 32-bit integer, its backup word is
// always val ^ uintMask.
type Uint struct {
	val uint32
	msk uint32
}

// Int is a redundancy encoded signed 32-bit integer, its backup word is
// always val ^ intMask.
type Int struct {
	val int32
	msk int32
}

// InvalidUint and InvalidInt never pass validation, they are used to
// initialize results which must be overwritten before use.
var (
	InvalidUint = Uint{invalidVal, invalidMsk}
	InvalidInt  = Int{int32(invalidVal - 1<<32), int32(invalidMsk - 1<<32)}
)

// EncodeUint converts x to its encoded form.
func EncodeUint(x uint32) Uint {
	return Uint{x, x ^ uintMask}
}

// EncodeInt converts x to its encoded form.
func EncodeInt(x int32) Int {
	return Int{x, x ^ intMask}
}

// Validate checks x for tampering.
func (x Uint) Validate() {
	msk := x.msk

	if x.val != msk^uintMask {
		Panic()
	}
}

// Validate checks x for tampering.
func (x Int) Validate() {
	msk := x.msk

	if x.val != msk^intMask {
		Panic()
	}
}

// Decode validates x and returns its plain value.
func (x Uint) Decode() uint32 {
	x.Validate()
	return x.val
}

// Decode validates x and returns its plain value.
func (x Int) Decode() int32 {
	x.Validate()
	return x.val
}

// Value returns the primary word without validation.
func (x Uint) Value() uint32 {
	return x.val
}

// Check returns the unmasked backup word without validation.
func (x Uint) Check() uint32 {
	return x.msk ^ uintMask
}

// Value returns the primary word without validation.
func (x Int) Value() int32 {
	return x.val
}

// Check returns the unmasked backup word without validation.
func (x Int) Check() int32 {
	return x.msk ^ intMask
}

// CombineUint builds a value from two independently computed halves, it
// panics if they disagree.
func CombineUint(val uint32, check uint32) (x Uint) {
	x.val = val
	x.msk = check ^ uintMask
	x.Validate()

	return
}

// CombineInt builds a value from two independently computed halves, it panics
// if they disagree.
func CombineInt(val int32, check int32) (x Int) {
	x.val = val
	x.msk = check ^ intMask
	x.Validate()

	return
}

// Flip returns a copy of x with one bit of its stored representation
// inverted, bits 0-31 address the primary word and 32-63 the backup word.
func (x Uint) Flip(bit int) Uint {
	if bit < 32 {
		x.val ^= 1 << uint(bit)
	} else {
		x.msk ^= 1 << uint(bit-32)
	}

	return x
}

// Flip returns a copy of x with one bit of its stored representation
// inverted, bits 0-31 address the primary word and 32-63 the backup word.
func (x Int) Flip(bit int) Int {
	if bit < 32 {
		x.val ^= 1 << uint(bit)
	} else {
		x.msk ^= 1 << uint(bit-32)
	}

	return x
}

// Bits is the number of stored bits a fault can target.
const Bits = 64
