// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package entropy provides a random delay source backed by a ChaCha20
// keystream, keyed from crypto/rand (the SoC TRNG on TamaGo).
package entropy

import (
	"crypto/rand"
	"errors"
	"sync"

	"golang.org/x/crypto/chacha20"
)

const bufSize = 64

// ChaCha20 implements fih.DelaySource.
type ChaCha20 struct {
	sync.Mutex

	// Rand is the seed source, crypto/rand is used when nil.
	Rand func([]byte) (int, error)

	cipher *chacha20.Cipher
	buf    []byte
	off    int
}

func (c *ChaCha20) rng(buf []byte) (err error) {
	read := rand.Read

	if c.Rand != nil {
		read = c.Rand
	}

	n, err := read(buf)

	if err == nil && n != len(buf) {
		err = ErrShortSeed
	}

	return
}

// Init keys the cipher with fresh entropy.
func (c *ChaCha20) Init() (err error) {
	c.Lock()
	defer c.Unlock()

	key := make([]byte, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSize)

	if err = c.rng(key); err != nil {
		return
	}

	if err = c.rng(nonce); err != nil {
		return
	}

	if c.cipher, err = chacha20.NewUnauthenticatedCipher(key, nonce); err != nil {
		return
	}

	c.buf = make([]byte, bufSize)
	c.off = bufSize

	return
}

// Uint8 returns the next keystream byte, it returns 0xFF before Init.
func (c *ChaCha20) Uint8() uint8 {
	c.Lock()
	defer c.Unlock()

	if c.cipher == nil {
		return 0xFF
	}

	if c.off == len(c.buf) {
		for i := range c.buf {
			c.buf[i] = 0
		}

		c.cipher.XORKeyStream(c.buf, c.buf)
		c.off = 0
	}

	b := c.buf[c.off]
	c.off++

	return b
}

// ErrShortSeed is returned by seed sources which cannot fill a request.
var ErrShortSeed = errors.New("entropy: short seed")
