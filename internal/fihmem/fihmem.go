// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fihmem implements fault resistant memory copy and comparison.
package fihmem

import (
	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

const wordSize = 4

func bounds(length fih.Uint, bufs ...[]byte) {
	length.Validate()

	for _, b := range bufs {
		if uint64(len(b)) < uint64(length.Value()) || uint64(len(b)) < uint64(length.Check()) {
			fih.Panic()
		}
	}
}

// Copy copies length bytes from src to dst, word sized chunks first, and
// returns the encoded number of bytes copied. The result must be checked
// with ValidateCopy.
func Copy(dst []byte, src []byte, length fih.Uint) fih.Uint {
	bounds(length, dst, src)

	n := length.Value()
	off := uint32(0)

	for n >= wordSize {
		copy(dst[off:off+wordSize], src[off:off+wordSize])
		off += wordSize
		n -= wordSize
	}

	if off != length.Check()/wordSize*wordSize {
		fih.Panic()
	}

	for n > 0 {
		dst[off] = src[off]
		off++
		n--
	}

	if off != length.Check() {
		fih.Panic()
	}

	return fih.CombineUint(off, length.Check())
}

// ValidateCopy checks the result of Copy against the requested length.
func ValidateCopy(result fih.Uint, length fih.Uint) {
	if result.Check() != length.Check() {
		fih.Panic()
	}

	result.Validate()

	if result.Value() != length.Value() {
		fih.Panic()
	}
}

// Compare compares the first length bytes of a and b, it returns an encoded
// fih.True when they match and fih.False otherwise. The buffers are walked
// forward and backward, then once more, a single skipped iteration or branch
// leaves the two result halves inconsistent.
func Compare(a []byte, b []byte, length fih.Uint) fih.Int {
	bounds(length, a, b)

	val := int32(fih.False)
	chk := int32(fih.False)

	n := length.Value()
	u := uint32(0)
	d := n

	for ; u < n && d > 0; u, d = u+1, d-1 {
		if a[u] != b[u] {
			break
		}

		if a[d-1] != b[d-1] {
			break
		}

		if u+d != n {
			fih.Panic()
		}
	}

	length.Validate()

	if u == n {
		val = int32(fih.True)
	}

	fih.Delay()

	n = length.Check()

	var i uint32

	for i = 0; i < n; i++ {
		if a[i] != b[i] {
			break
		}
	}

	if i == n {
		chk = int32(fih.True)
	}

	// recheck of the first loop
	if d != 0 && val == int32(fih.True) {
		fih.Panic()
	}

	return fih.CombineInt(val, chk)
}
