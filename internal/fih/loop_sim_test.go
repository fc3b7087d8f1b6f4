// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build fih_sim && !tamago
// +build fih_sim,!tamago

package fih

import (
	"testing"
	"time"
)

func TestSentinelBeforeHandler(t *testing.T) {
	resetHandler(t)

	WriteSentinel(0)

	var seen uint32

	if _, err := SetPanicHandler(func() {
		seen = Sentinel()
		Raise()
	}); err != nil {
		t.Fatal(err)
	}

	if !Catch(Panic) {
		t.Fatal("handler did not run")
	}

	if seen != SimFailed {
		t.Fatalf("sentinel = %#x when the terminal action ran, want %#x", seen, SimFailed)
	}
}

func TestSimulationSentinel(t *testing.T) {
	resetHandler(t)

	WriteSentinel(0)

	go Panic()

	deadline := time.Now().Add(5 * time.Second)

	for Sentinel() != SimFailed {
		if time.Now().After(deadline) {
			t.Fatalf("sentinel = %#x, want %#x", Sentinel(), SimFailed)
		}

		time.Sleep(time.Millisecond)
	}
}
