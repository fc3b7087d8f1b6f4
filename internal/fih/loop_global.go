// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !fih_no_global_fail && !fih_sim
// +build !fih_no_global_fail,!fih_sim

package fih

// GlobalFail reports whether failures land in the global failure loop.
const GlobalFail = true

func signalFailure() {}

// failureLoop is resistant to unlooping, a skipped halt or branch lands on an
// identical one.
//
//go:noinline
func failureLoop() {
	for {
		halt()
		halt()
		halt()
		halt()
		halt()
		halt()
		halt()
		halt()
		halt()
	}
}
