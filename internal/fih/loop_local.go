// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build fih_no_global_fail && !fih_sim
// +build fih_no_global_fail,!fih_sim

package fih

const GlobalFail = false

func signalFailure() {}

func failureLoop() {
	for {
		halt()
	}
}
