// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package fih

// Raise is a panic handler which converts fault detection into a Go panic
// carrying ErrFault, it must never be installed on production images.
func Raise() {
	panic(ErrFault)
}

// Catch runs fn and reports whether it raised ErrFault, any other panic is
// propagated.
func Catch(fn func()) (faulted bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != ErrFault {
				panic(r)
			}

			faulted = true
		}
	}()

	fn()

	return
}
