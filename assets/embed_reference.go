// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build linux && ignore
// +build linux,ignore

package main

import (
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/f-secure-foundry/armory-fih/internal/image"
)

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)
}

func main() {
	var img *image.Image

	if p := os.Getenv("BOOT_IMAGE"); len(p) > 0 {
		buf, err := os.ReadFile(p)

		if err != nil {
			log.Fatal(err)
		}

		if img, err = image.Parse(buf); err != nil {
			log.Fatal(err)
		}
	} else {
		log.Fatal("BOOT_IMAGE environment variable must be defined")
	}

	out, err := os.Create("tmp-provisioning.go")

	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	sum := sha256.Sum256(img.Payload)

	out.WriteString(`
package assets

func init() {
`)
	out.WriteString(fmt.Sprintf("\tReferenceWord = %s\n", strconv.Quote(fmt.Sprintf("%#08x", img.Word()))))
	out.WriteString(fmt.Sprintf("\tImageDigest = %s\n", strconv.Quote(fmt.Sprintf("%x", sum))))

	if v := os.Getenv("MIN_VERSION"); len(v) > 0 {
		out.WriteString(fmt.Sprintf("\tMinVersion = %s\n", strconv.Quote(v)))
	}

	out.WriteString(`
}
`)
}
