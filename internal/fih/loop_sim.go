// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build fih_sim
// +build fih_sim

package fih

const GlobalFail = true

// signalFailure reports the failure before any terminal action can reset or
// kill the simulated target.
func signalFailure() {
	WriteSentinel(SimFailed)
}

// failureLoop signals the failure to an external test fixture through the
// simulation sentinel.
//
//go:noinline
func failureLoop() {
	for {
		WriteSentinel(SimFailed)
		halt()
	}
}
