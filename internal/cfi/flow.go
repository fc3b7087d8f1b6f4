// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cfi

import (
	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// Flow is a down-counting checkpoint counter, each critical step of a
// sequential flow passes a checkpoint and the flow verifies how many
// checkpoints have been passed at chosen points. Unlike Counter it is owned
// by a single flow and is always compiled in.
type Flow struct {
	ctr   fih.Uint
	start uint32
}

// NewFlow returns a flow counting down from start.
func NewFlow(start uint32) *Flow {
	return &Flow{
		ctr:   fih.EncodeUint(start),
		start: start,
	}
}

// Checkpoint records one passed checkpoint.
func (f *Flow) Checkpoint() {
	f.ctr = f.ctr.Sub(1)
}

// CheckpointN records n passed checkpoints.
func (f *Flow) CheckpointN(n uint32) {
	f.ctr = f.ctr.Sub(n)
}

// Expect invokes fih.Panic unless exactly passed checkpoints have been
// recorded.
func (f *Flow) Expect(passed uint32) {
	f.ctr.Validate()
	fih.Delay()

	if f.ctr.Value()+passed != f.start {
		fih.Panic()
	}
}

// Final invokes fih.Panic unless the flow reached end.
func (f *Flow) Final(end uint32) {
	want := fih.EncodeUint(end)

	f.ctr.Validate()
	fih.Delay()

	if f.ctr.Check() != want.Check() || f.ctr.Value() != want.Value() {
		fih.Panic()
	}
}

// Remaining returns the decoded counter.
func (f *Flow) Remaining() uint32 {
	return f.ctr.Decode()
}
