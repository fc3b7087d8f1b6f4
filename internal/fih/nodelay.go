// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !fih_delay
// +build !fih_delay

package fih

const DelayEnabled = false

func Delay() {}
