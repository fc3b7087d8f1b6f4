// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package flash loads boot images from storage.
package flash

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/mitchellh/go-fs"
	"github.com/mitchellh/go-fs/fat"

	"github.com/f-secure-foundry/armory-fih/internal/image"
)

// DefaultName is the boot image file name looked up on FAT volumes.
const DefaultName = "BOOT.AFI"

// LoadFile reads and parses a raw boot image file.
func LoadFile(path string) (*image.Image, error) {
	buf, err := ioutil.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return image.Parse(buf)
}

// LoadFAT reads and parses the boot image name from the root directory of
// the FAT volume stored in path.
func LoadFAT(path string, name string) (*image.Image, error) {
	vol, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer vol.Close()

	dev, err := fs.NewFileDisk(vol)

	if err != nil {
		return nil, err
	}

	f, err := fat.New(dev)

	if err != nil {
		return nil, fmt.Errorf("invalid FAT volume, %v", err)
	}

	root, err := f.RootDir()

	if err != nil {
		return nil, err
	}

	for _, entry := range root.Entries() {
		if !strings.EqualFold(entry.Name(), name) {
			continue
		}

		file, err := entry.File()

		if err != nil {
			return nil, err
		}

		buf, err := ioutil.ReadAll(file)

		if err != nil {
			return nil, err
		}

		return image.Parse(buf)
	}

	return nil, fmt.Errorf("%s not found", name)
}
