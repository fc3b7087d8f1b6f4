// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build fih_delay
// +build fih_delay

package fih

// DelayEnabled reports whether Delay busy-waits.
const DelayEnabled = true

// Delay busy-waits for a random number of iterations, decorrelating the
// timing of the following check from an external fault trigger.
//
//go:noinline
func Delay() {
	var counter uint32

	delay := uint32(DelayRandom())

	for i := uint32(0); i < delay; i++ {
		counter++
	}

	if counter != delay {
		Panic()
	}
}
