// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package flash

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-fs"
	"github.com/mitchellh/go-fs/fat"

	"github.com/f-secure-foundry/armory-fih/internal/image"
)

var testPayload = []byte{0x78, 0x56, 0x34, 0x12, 0x01, 0x02, 0x03}

func testImage(t *testing.T) []byte {
	t.Helper()

	buf, err := (&image.Image{Version: "v1.0.0", Payload: testPayload}).Bytes()

	if err != nil {
		t.Fatal(err)
	}

	return buf
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boot.afi")

	if err := ioutil.WriteFile(path, testImage(t), 0600); err != nil {
		t.Fatal(err)
	}

	img, err := LoadFile(path)

	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(img.Payload, testPayload) {
		t.Fatalf("Payload = %x", img.Payload)
	}

	if _, err := LoadFile(path + ".missing"); err == nil {
		t.Fatal("missing file loaded")
	}
}

func writeVolume(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "volume.img")
	vol, err := os.Create(path)

	if err != nil {
		t.Fatal(err)
	}

	defer vol.Close()

	if err = vol.Truncate(1440 * 1024); err != nil {
		t.Fatal(err)
	}

	dev, err := fs.NewFileDisk(vol)

	if err != nil {
		t.Fatal(err)
	}

	conf := &fat.SuperFloppyConfig{
		FATType: fat.FAT12,
		Label:   "ARMORYFIH",
		OEMName: "ARMORY",
	}

	if err = fat.FormatSuperFloppy(dev, conf); err != nil {
		t.Fatal(err)
	}

	f, err := fat.New(dev)

	if err != nil {
		t.Fatal(err)
	}

	root, err := f.RootDir()

	if err != nil {
		t.Fatal(err)
	}

	entry, err := root.AddFile(name)

	if err != nil {
		t.Fatal(err)
	}

	file, err := entry.File()

	if err != nil {
		t.Fatal(err)
	}

	if _, err = file.Write(data); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadFAT(t *testing.T) {
	path := writeVolume(t, DefaultName, testImage(t))

	img, err := LoadFAT(path, DefaultName)

	if err != nil {
		t.Fatal(err)
	}

	if img.Version != "v1.0.0" || !bytes.Equal(img.Payload, testPayload) {
		t.Fatalf("loaded %q %x", img.Version, img.Payload)
	}

	if _, err := LoadFAT(path, "OTHER.AFI"); err == nil {
		t.Fatal("missing entry loaded")
	}
}
