// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !fih_no_cfi
// +build !fih_no_cfi

package cfi

import (
	"math"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// Enabled reports whether the control flow integrity counter is compiled in.
const Enabled = true

// Counter is an encoded control flow integrity counter. It is not safe for
// concurrent use, callers running on more than one core or with preemptive
// interrupts must serialize access.
type Counter struct {
	ctr fih.Uint
}

// Snapshot is the counter value captured before a protected region, it is
// consumed by a matching Validate.
type Snapshot struct {
	saved fih.Uint
}

// New returns a counter initialized to zero.
func New() *Counter {
	return &Counter{
		ctr: fih.UintZero,
	}
}

// GetAndIncrement advances the counter by n and returns its previous value.
// Overflow and any encoding inconsistency invoke fih.Panic before the counter
// is modified.
func (c *Counter) GetAndIncrement(n uint8) Snapshot {
	saved := c.ctr

	if c.ctr.Decode() > math.MaxUint32-uint32(n) {
		// overflow
		fih.Panic()
	}

	c.ctr = c.ctr.Add(uint32(n))

	c.ctr.Validate()
	saved.Validate()

	return Snapshot{saved}
}

// Validate invokes fih.Panic unless the counter equals the saved value.
func (c *Counter) Validate(s Snapshot) {
	if rc := s.saved.Eq(c.ctr); rc != fih.True {
		fih.Panic()
	}
}

// Decrement moves the counter back by one, underflow invokes fih.Panic.
func (c *Counter) Decrement() {
	if c.ctr.Decode() < 1 {
		fih.Panic()
	}

	c.ctr = c.ctr.Sub(1)
	c.ctr.Validate()
}

// Restore resets the counter to a snapshot taken by StepInit, allowing a
// functional error to unwind a partially executed sequence of steps.
func (c *Counter) Restore(s Snapshot) {
	s.saved.Validate()
	c.ctr = s.saved
	c.ctr.Validate()
}

// Value returns the decoded counter value.
func (c *Counter) Value() uint32 {
	return c.ctr.Decode()
}

// Value returns the decoded snapshot value.
func (s Snapshot) Value() uint32 {
	return s.saved.Decode()
}

// Corrupt returns a copy of the snapshot with one stored bit inverted, it
// models a fault on the caller's copy.
func (s Snapshot) Corrupt(bit int) Snapshot {
	return Snapshot{s.saved.Flip(bit)}
}
