// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fih

import (
	"sync"
)

// DelaySource provides the randomness behind random delays.
type DelaySource interface {
	// Init seeds the source, it is called once at startup.
	Init() error
	// Uint8 returns a random byte.
	Uint8() uint8
}

var (
	delayMu     sync.Mutex
	delaySource DelaySource
)

// SetDelaySource installs the entropy source used by DelayRandom.
func SetDelaySource(s DelaySource) {
	delayMu.Lock()
	delaySource = s
	delayMu.Unlock()
}

func currentSource() DelaySource {
	delayMu.Lock()
	defer delayMu.Unlock()

	return delaySource
}

// DelayInit sets up the delay entropy source, failing to seed it is treated
// as a fault.
func DelayInit() {
	s := currentSource()

	if s == nil {
		return
	}

	if err := s.Init(); err != nil {
		Panic()
	}
}

// DelayRandom returns a random byte, without an installed DelaySource it
// returns the insecure constant 0xFF.
func DelayRandom() uint8 {
	s := currentSource()

	if s == nil {
		return 0xFF
	}

	return s.Uint8()
}
