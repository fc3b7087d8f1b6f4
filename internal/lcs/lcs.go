// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package lcs decodes the device life-cycle state, any value other than a
// known state encoding is treated as a fault.
package lcs

import (
	"log"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// State represents a device life-cycle state, encodings are far apart in
// Hamming distance so that no small number of flipped fuse bits turns one
// state into another.
type State uint32

const (
	// Virgin is the unprogrammed fuse value.
	Virgin         State = 0x00000000
	Provisioned    State = 0x3CC3A55A
	Secured        State = 0xC33C5AA5
	Decommissioned State = 0xFFFFFFFF
)

var states = []State{
	Virgin,
	Provisioned,
	Secured,
	Decommissioned,
}

func (s State) String() string {
	switch s {
	case Virgin:
		return "virgin"
	case Provisioned:
		return "provisioned"
	case Secured:
		return "secured"
	case Decommissioned:
		return "decommissioned"
	default:
		return "invalid"
	}
}

// Encoded returns the redundancy encoded state.
func (s State) Encoded() fih.Uint {
	return fih.EncodeUint(uint32(s))
}

// FuseReader reads the raw life-cycle word.
type FuseReader interface {
	ReadLifeCycle() (uint32, error)
}

// Decode maps a raw life-cycle word to its state, unknown values invoke
// fih.Panic.
func Decode(word uint32) State {
	w := fih.EncodeUint(word)

	for _, s := range states {
		if w.Eq(s.Encoded()) != fih.True {
			continue
		}

		fih.Delay()

		if w.NotEq(s.Encoded()) == fih.True {
			fih.Panic()
		}

		return s
	}

	log.Printf("lcs: invalid life-cycle state %#x", word)
	fih.Panic()

	return Decommissioned
}

// Read returns the decoded life-cycle state, read errors invoke fih.Panic.
func Read(r FuseReader) State {
	word, err := r.ReadLifeCycle()

	if err != nil {
		log.Printf("lcs: could not read life-cycle state, %v", err)
		fih.Panic()
	}

	return Decode(word)
}

// Require invokes fih.Panic unless state is one of allowed.
func Require(state State, allowed ...State) {
	enc := state.Encoded()
	rc := fih.False

	for _, s := range allowed {
		if enc.Eq(s.Encoded()) == fih.True {
			rc = fih.True
		}
	}

	fih.Delay()

	if rc != fih.True {
		log.Printf("lcs: life-cycle state %s not allowed", state)
		fih.Panic()
	}
}
