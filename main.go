// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package main

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/f-secure-foundry/tamago/soc/imx6"

	"github.com/f-secure-foundry/tamago/board/f-secure/usbarmory/mark-two"

	"github.com/f-secure-foundry/armory-fih/assets"
	"github.com/f-secure-foundry/armory-fih/internal/entropy"
	"github.com/f-secure-foundry/armory-fih/internal/fih"
	"github.com/f-secure-foundry/armory-fih/internal/flash"
	"github.com/f-secure-foundry/armory-fih/internal/image"
	"github.com/f-secure-foundry/armory-fih/internal/lcs"
	"github.com/f-secure-foundry/armory-fih/internal/platform"
)

func init() {
	if err := imx6.SetARMFreq(900); err != nil {
		panic(fmt.Sprintf("WARNING: error setting ARM frequency: %v\n", err))
	}

	log.SetFlags(0)
}

func main() {
	usbarmory.LED("blue", false)
	usbarmory.LED("white", false)

	log.Printf("armory-fih: %s (%s)", Revision, Build)

	if err := platform.Install(); err != nil {
		log.Fatal(err)
	}

	log.Printf("armory-fih: terminal action %s", platform.Name())

	fih.SetDelaySource(&entropy.ChaCha20{})
	fih.DelayInit()

	state := lcs.Read(&lcs.OTP{Bank: lcs.DefaultBank, Word: lcs.DefaultWord})
	lcs.CheckSecureBoot(state)
	lcs.Require(state, lcs.Provisioned, lcs.Secured)

	log.Printf("armory-fih: life-cycle state %s", state)

	verifier, err := newVerifier()

	if err != nil {
		log.Fatal(err)
	}

	if err = usbarmory.MMC.Detect(); err != nil {
		log.Fatal(err)
	}

	img, err := flash.LoadMMC()

	if err != nil {
		log.Printf("armory-fih: could not load boot image, %v", err)
		fih.Panic()
	}

	log.Printf("armory-fih: loaded boot image %s (%d bytes)", img.Version, len(img.Payload))

	verifier.Boot(img, launch)
}

func newVerifier() (*image.Verifier, error) {
	ref, err := assets.Reference()

	if err != nil {
		return nil, fmt.Errorf("invalid reference word, %v", err)
	}

	digest, err := assets.Digest()

	if err != nil {
		return nil, fmt.Errorf("invalid reference digest, %v", err)
	}

	return image.NewVerifier(nil, ref, digest, assets.MinVersion)
}

// launch signals the verified boot and parks the firmware, the payload
// hand-off is board specific.
func launch(img *image.Image) {
	image.SimLaunch(img)
	usbarmory.LED("white", true)

	log.Printf("armory-fih: boot image %s verified", img.Version)

	for {
		runtime.Gosched()
		time.Sleep(1 * time.Second)
	}
}
