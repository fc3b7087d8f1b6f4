// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fih

// Simulation sentinel, observed by external fault injection fixtures.
const (
	SentinelAddress = 0xAA01000

	SimSuccess = 0x1
	SimFailed  = 0x2
)
