// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago
// +build tamago

package fih

import (
	"sync/atomic"
	"unsafe"
)

// WriteSentinel stores v in the memory mapped simulation sentinel.
func WriteSentinel(v uint32) {
	reg := (*uint32)(unsafe.Pointer(uintptr(SentinelAddress)))
	atomic.StoreUint32(reg, v)
}

// Sentinel returns the memory mapped simulation sentinel value.
func Sentinel() uint32 {
	reg := (*uint32)(unsafe.Pointer(uintptr(SentinelAddress)))
	return atomic.LoadUint32(reg)
}
