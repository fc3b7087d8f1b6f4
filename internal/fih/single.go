// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build fih_single_vars
// +build fih_single_vars

package fih

// DoubleVars reports whether values carry a masked backup word.
const DoubleVars = false

// Uint is an unsigned 32-bit integer, single variable builds keep no backup
// word and only the comparison sequences provide redundancy.
type Uint struct {
	val uint32
}

// Int is a signed 32-bit integer, single variable builds keep no backup word
// and only the comparison sequences provide redundancy.
type Int struct {
	val int32
}

var (
	InvalidUint = Uint{invalidVal}
	InvalidInt  = Int{int32(invalidVal - 1<<32)}
)

func EncodeUint(x uint32) Uint {
	return Uint{x}
}

func EncodeInt(x int32) Int {
	return Int{x}
}

func (x Uint) Validate() {}

func (x Int) Validate() {}

func (x Uint) Decode() uint32 {
	return x.val
}

func (x Int) Decode() int32 {
	return x.val
}

func (x Uint) Value() uint32 {
	return x.val
}

func (x Uint) Check() uint32 {
	return x.val
}

func (x Int) Value() int32 {
	return x.val
}

func (x Int) Check() int32 {
	return x.val
}

// CombineUint builds a value from two independently computed halves, it
// panics if they disagree.
func CombineUint(val uint32, check uint32) Uint {
	if val != check {
		Panic()
	}

	return Uint{val}
}

// CombineInt builds a value from two independently computed halves, it panics
// if they disagree.
func CombineInt(val int32, check int32) Int {
	if val != check {
		Panic()
	}

	return Int{val}
}

func (x Uint) Flip(bit int) Uint {
	x.val ^= 1 << uint(bit%32)
	return x
}

func (x Int) Flip(bit int) Int {
	x.val ^= 1 << uint(bit%32)
	return x
}

// Bits is the number of stored bits a fault can target.
const Bits = 32
