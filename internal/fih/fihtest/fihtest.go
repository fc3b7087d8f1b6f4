// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fihtest provides helpers to observe fault detection in tests.
package fihtest

import (
	"testing"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// Trap makes fih.Panic raise fih.ErrFault for the duration of the test.
func Trap(t testing.TB) {
	t.Helper()

	prev, err := fih.SetPanicHandler(fih.Raise)

	if err != nil {
		t.Fatalf("cannot install panic handler, %v", err)
	}

	t.Cleanup(func() {
		fih.SetPanicHandler(prev)
	})
}

// MustFault fails the test unless fn invokes fih.Panic.
func MustFault(t testing.TB, fn func()) {
	t.Helper()

	if !fih.Catch(fn) {
		t.Fatal("expected fault detection, none occurred")
	}
}

// MustNotFault fails the test if fn invokes fih.Panic.
func MustNotFault(t testing.TB, fn func()) {
	t.Helper()

	if fih.Catch(fn) {
		t.Fatal("unexpected fault detection")
	}
}
