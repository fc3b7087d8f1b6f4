// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !linux && !(tamago && arm)
// +build !linux
// +build !tamago !arm

package platform

const name = "failure loop"

func terminate() func() {
	return nil
}
