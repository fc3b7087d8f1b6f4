// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cfi implements a control flow integrity counter, used to prove that
// a sequence of security checks executed exactly as many times as expected.
//
// The counter is incremented before every protected call and decremented by
// the callee on return, after the return the caller verifies that the
// counter is back to its previous value:
//
//	func verify() fih.Int {
//		...
//		return cfi.Ret(fih.Success)
//	}
//
//	rc := cfi.Call(verify)
//
//	if rc.NotEq(fih.Success) == fih.True {
//		fih.Panic()
//	}
//
// This detects protected functions skipped by instruction glitches, it does
// not protect against ROP or JOP attacks.
//
// The counter is compiled out with the fih_no_cfi build tag.
package cfi

import (
	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// process wide counter, initialized at image start and never torn down
var global = New()

// Default returns the process wide counter.
func Default() *Counter {
	return global
}

// GetAndIncrement advances the process wide counter, see
// Counter.GetAndIncrement.
func GetAndIncrement(n uint8) Snapshot {
	return global.GetAndIncrement(n)
}

// Validate checks the process wide counter against s.
func Validate(s Snapshot) {
	global.Validate(s)
}

// Decrement moves the process wide counter back by one.
func Decrement() {
	global.Decrement()
}

// Value returns the decoded process wide counter.
func Value() uint32 {
	return global.Value()
}

// Call executes fn as a protected call, fn must return through Ret on the
// same counter.
func (c *Counter) Call(fn func() fih.Int) (ret fih.Int) {
	saved := c.GetAndIncrement(1)
	ret = fih.Failure

	fih.Delay()
	ret = fn()

	c.Validate(saved)
	ret.Validate()

	return
}

// UCall is like Call for functions returning bit masks, the result defaults
// to zero rather than Failure.
func (c *Counter) UCall(fn func() fih.Uint) (ret fih.Uint) {
	saved := c.GetAndIncrement(1)
	ret = fih.UintZero

	fih.Delay()
	ret = fn()

	c.Validate(saved)
	ret.Validate()

	return
}

// Void is like Call for functions without a return value, fn must end with
// VoidRet.
func (c *Counter) Void(fn func()) {
	saved := c.GetAndIncrement(1)

	fih.Delay()
	fn()

	c.Validate(saved)
}

// Ret decrements the counter and returns ret, it is the only valid way to
// return from a function executed with Call.
func (c *Counter) Ret(ret fih.Int) fih.Int {
	c.Decrement()
	return ret
}

func (c *Counter) URet(ret fih.Uint) fih.Uint {
	c.Decrement()
	return ret
}

func (c *Counter) VoidRet() {
	c.Decrement()
}

// StepInit saves the counter and adds the number of critical steps about to
// be executed within a function, each completed step must call
// StepDecrement.
func (c *Counter) StepInit(n uint8) Snapshot {
	return c.GetAndIncrement(n)
}

func (c *Counter) StepDecrement() {
	c.Decrement()
}

// StepErrReset rewinds the counter to the value saved by StepInit, it must
// only be used when a functional error forces an early exit.
func (c *Counter) StepErrReset(s Snapshot) {
	c.Restore(s)
}

// Call executes fn as a protected call on the process wide counter.
func Call(fn func() fih.Int) fih.Int {
	return global.Call(fn)
}

func UCall(fn func() fih.Uint) fih.Uint {
	return global.UCall(fn)
}

func Void(fn func()) {
	global.Void(fn)
}

// Ret returns from a function executed with Call on the process wide counter.
func Ret(ret fih.Int) fih.Int {
	return global.Ret(ret)
}

func URet(ret fih.Uint) fih.Uint {
	return global.URet(ret)
}

func VoidRet() {
	global.VoidRet()
}

func StepInit(n uint8) Snapshot {
	return global.StepInit(n)
}

func StepDecrement() {
	global.StepDecrement()
}

func StepErrReset(s Snapshot) {
	global.StepErrReset(s)
}
