// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package lcs

import (
	"errors"
	"testing"

	"github.com/f-secure-foundry/armory-fih/internal/fih/fihtest"
)

type fuses struct {
	word uint32
	err  error
}

func (f *fuses) ReadLifeCycle() (uint32, error) {
	return f.word, f.err
}

func TestDecode(t *testing.T) {
	fihtest.Trap(t)

	for _, s := range states {
		t.Run(s.String(), func(t *testing.T) {
			var got State

			fihtest.MustNotFault(t, func() { got = Decode(uint32(s)) })

			if got != s {
				t.Fatalf("Decode(%#x) = %s", uint32(s), got)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	fihtest.Trap(t)

	for _, word := range []uint32{1, 0x3CC3A55B, 0xC33C5AA4, 0x7FFFFFFF, 0xDEADBEEF} {
		fihtest.MustFault(t, func() { Decode(word) })
	}
}

func TestStateDistance(t *testing.T) {
	for i, a := range states {
		for _, b := range states[i+1:] {
			if d := popcount(uint32(a) ^ uint32(b)); d < 16 {
				t.Errorf("%s and %s differ by %d bits", a, b, d)
			}
		}
	}
}

func popcount(x uint32) (n int) {
	for ; x != 0; x &= x - 1 {
		n++
	}

	return
}

func TestRead(t *testing.T) {
	fihtest.Trap(t)

	fihtest.MustNotFault(t, func() {
		if s := Read(&fuses{word: uint32(Secured)}); s != Secured {
			t.Errorf("Read = %s", s)
		}
	})

	fihtest.MustFault(t, func() { Read(&fuses{err: errors.New("fuse controller busy")}) })
}

func TestRequire(t *testing.T) {
	fihtest.Trap(t)

	fihtest.MustNotFault(t, func() { Require(Secured, Provisioned, Secured) })
	fihtest.MustFault(t, func() { Require(Decommissioned, Provisioned, Secured) })
	fihtest.MustFault(t, func() { Require(Virgin) })
}
