// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package entropy

import (
	"errors"
	"testing"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

var _ fih.DelaySource = &ChaCha20{}

func zeroSeed(buf []byte) (int, error) {
	for i := range buf {
		buf[i] = 0
	}

	return len(buf), nil
}

func TestUninitialized(t *testing.T) {
	c := &ChaCha20{}

	if v := c.Uint8(); v != 0xFF {
		t.Fatalf("Uint8() = %#x before Init", v)
	}
}

func TestDeterministicSeed(t *testing.T) {
	a := &ChaCha20{Rand: zeroSeed}
	b := &ChaCha20{Rand: zeroSeed}

	if err := a.Init(); err != nil {
		t.Fatal(err)
	}

	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	// RFC 8439 A.1, test vector #1
	want := []byte{0x76, 0xb8, 0xe0, 0xad}

	for i := 0; i < 3*bufSize; i++ {
		x, y := a.Uint8(), b.Uint8()

		if x != y {
			t.Fatalf("byte %d differs: %#x != %#x", i, x, y)
		}

		if i < len(want) && x != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, x, want[i])
		}
	}
}

func TestRandomSeed(t *testing.T) {
	c := &ChaCha20{}

	if err := c.Init(); err != nil {
		t.Fatal(err)
	}

	seen := make(map[uint8]bool)

	for i := 0; i < 1024; i++ {
		seen[c.Uint8()] = true
	}

	if len(seen) < 64 {
		t.Fatalf("only %d distinct values in 1024 samples", len(seen))
	}
}

func TestSeedErrors(t *testing.T) {
	failing := &ChaCha20{Rand: func([]byte) (int, error) {
		return 0, errors.New("trng not ready")
	}}

	if err := failing.Init(); err == nil {
		t.Fatal("Init succeeded with failing seed source")
	}

	short := &ChaCha20{Rand: func(buf []byte) (int, error) {
		return len(buf) - 1, nil
	}}

	if err := short.Init(); !errors.Is(err, ErrShortSeed) {
		t.Fatalf("Init() = %v, want ErrShortSeed", err)
	}
}
