// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !tamago
// +build !tamago

package fih

import (
	"sync/atomic"
)

// hosted builds have no memory mapped sentinel
var sentinel uint32

// WriteSentinel stores v in the simulation sentinel.
func WriteSentinel(v uint32) {
	atomic.StoreUint32(&sentinel, v)
}

// Sentinel returns the simulation sentinel value.
func Sentinel() uint32 {
	return atomic.LoadUint32(&sentinel)
}
