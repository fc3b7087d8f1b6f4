// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package assets

import (
	"encoding/hex"
	"strconv"
)

//go:generate go run embed_reference.go

// The following values are initialized at compile time, either by the
// generated provisioning file or with `-ldflags -X`.
var (
	// ReferenceWord represents the expected first payload word of a good
	// boot image, in hexadecimal.
	ReferenceWord = "0x12345678"

	// ImageDigest represents the SHA-256 of a good boot image payload, in
	// hexadecimal.
	ImageDigest string

	// MinVersion represents the oldest boot image version accepted.
	MinVersion = "v1.0.0"

	// Revision represents the firmware version.
	Revision string
)

// Reference returns the parsed reference word.
func Reference() (uint32, error) {
	v, err := strconv.ParseUint(ReferenceWord, 0, 32)
	return uint32(v), err
}

// Digest returns the parsed reference digest.
func Digest() ([]byte, error) {
	return hex.DecodeString(ImageDigest)
}
