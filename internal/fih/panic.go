// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fih

import (
	"errors"
	"runtime"
	"sync"
)

// ErrSealed is returned when overriding a sealed panic handler.
var ErrSealed = errors.New("fih: panic handler is sealed")

// ErrFault is the value raised by handlers which convert fault detection into
// a Go panic, such handlers are only meant for test and simulation harnesses.
var ErrFault = errors.New("fih: fault injection detected")

var (
	mu      sync.Mutex
	handler func()
	sealed  bool
)

// SetPanicHandler installs a platform specific terminal action (e.g. reset or
// secure erase), invoked by Panic before its own failure loop. A handler must
// not return, if it does the failure loop runs anyway.
func SetPanicHandler(h func()) (prev func(), err error) {
	mu.Lock()
	defer mu.Unlock()

	if sealed {
		return nil, ErrSealed
	}

	prev = handler
	handler = h

	return
}

// Seal prevents any further change of the panic handler.
func Seal() {
	mu.Lock()
	sealed = true
	mu.Unlock()
}

// Panic traps execution after a fault has been detected, it never returns.
//
//go:noinline
func Panic() {
	signalFailure()

	mu.Lock()
	h := handler
	mu.Unlock()

	if h != nil {
		h()
	}

	failureLoop()
	failureLoop()

	for {
	}
}

// halt is the halting primitive repeated by the failure loops, it yields so
// that hosted builds keep servicing other goroutines.
func halt() {
	runtime.Gosched()
}
