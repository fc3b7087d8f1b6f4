// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package flash

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/f-secure-foundry/tamago/board/f-secure/usbarmory/mark-two"

	"github.com/f-secure-foundry/armory-fih/internal/image"
)

const (
	// ImageBlock is the eMMC block holding the boot image header.
	ImageBlock = 0x5000
	// MaxSize bounds the image read from eMMC.
	MaxSize = 16 << 20
)

// LoadMMC reads and parses the boot image stored on the internal eMMC.
func LoadMMC() (*image.Image, error) {
	blockSize := usbarmory.MMC.Info().BlockSize

	if blockSize <= 0 {
		return nil, errors.New("eMMC not detected")
	}

	hdr := make([]byte, blockSize)

	if err := usbarmory.MMC.ReadBlocks(ImageBlock, hdr); err != nil {
		return nil, err
	}

	if binary.LittleEndian.Uint32(hdr[0:4]) != image.Magic {
		return nil, errors.New("no boot image on eMMC")
	}

	n := int(binary.LittleEndian.Uint32(hdr[4:8]))

	if n > MaxSize {
		return nil, fmt.Errorf("boot image too large (%d)", n)
	}

	blocks := (image.HeaderSize + n + blockSize - 1) / blockSize
	buf := make([]byte, blocks*blockSize)

	if err := usbarmory.MMC.ReadBlocks(ImageBlock, buf); err != nil {
		return nil, err
	}

	return image.Parse(buf)
}
