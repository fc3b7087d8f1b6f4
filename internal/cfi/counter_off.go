// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build fih_no_cfi
// +build fih_no_cfi

package cfi

const Enabled = false

// Counter is compiled out, all operations are no-ops.
type Counter struct{}

type Snapshot struct{}

func New() *Counter {
	return &Counter{}
}

func (c *Counter) GetAndIncrement(n uint8) (s Snapshot) {
	return
}

func (c *Counter) Validate(s Snapshot) {}

func (c *Counter) Decrement() {}

func (c *Counter) Restore(s Snapshot) {}

func (c *Counter) Value() uint32 {
	return 0
}

func (s Snapshot) Value() uint32 {
	return 0
}

func (s Snapshot) Corrupt(bit int) Snapshot {
	return s
}
