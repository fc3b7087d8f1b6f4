// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package image implements the boot image format and its fault injection
// hardened verification.
package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"
)

const (
	// Magic identifies a boot image ("AFIH").
	Magic = 0x48494641

	// HeaderSize is the encoded size of the fields preceding the payload.
	HeaderSize    = 8 + versionLength
	versionLength = 32
)

// Image represents a parsed boot image.
type Image struct {
	// Version is the semantic version of the payload.
	Version string
	// Payload is the executable payload.
	Payload []byte
}

// Word returns the first payload word, the value compared by the reference
// check.
func (img *Image) Word() uint32 {
	buf := make([]byte, 4)
	copy(buf, img.Payload)

	return binary.LittleEndian.Uint32(buf)
}

// Parse decodes a boot image.
func Parse(buf []byte) (img *Image, err error) {
	if len(buf) < HeaderSize {
		return nil, errors.New("image too short")
	}

	if m := binary.LittleEndian.Uint32(buf[0:4]); m != Magic {
		return nil, fmt.Errorf("invalid image magic %#x", m)
	}

	// storage reads are padded to the block or cluster size
	n := binary.LittleEndian.Uint32(buf[4:8])

	if uint64(n) > uint64(len(buf)-HeaderSize) {
		return nil, fmt.Errorf("invalid payload length %d", n)
	}

	img = &Image{
		Version: string(bytes.TrimRight(buf[8:HeaderSize], "\x00")),
		Payload: buf[HeaderSize : HeaderSize+int(n)],
	}

	if !semver.IsValid(img.Version) {
		return nil, fmt.Errorf("invalid image version %q", img.Version)
	}

	return
}

// Bytes encodes the image.
func (img *Image) Bytes() (buf []byte, err error) {
	if !semver.IsValid(img.Version) {
		return nil, fmt.Errorf("invalid image version %q", img.Version)
	}

	if len(img.Version) > versionLength {
		return nil, fmt.Errorf("image version %q exceeds %d bytes", img.Version, versionLength)
	}

	buf = make([]byte, HeaderSize, HeaderSize+len(img.Payload))
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(img.Payload)))
	copy(buf[8:], img.Version)

	return append(buf, img.Payload...), nil
}
