// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/f-secure-foundry/armory-fih/assets"
	"github.com/f-secure-foundry/armory-fih/internal/entropy"
	"github.com/f-secure-foundry/armory-fih/internal/fih"
	"github.com/f-secure-foundry/armory-fih/internal/flash"
	"github.com/f-secure-foundry/armory-fih/internal/image"
	"github.com/f-secure-foundry/armory-fih/internal/lcs"
	"github.com/f-secure-foundry/armory-fih/internal/platform"
)

type Config struct {
	image  string
	volume string
	name   string

	reference  string
	digest     string
	minVersion string
	lifeCycle  string

	check bool
	sim   bool

	payload string
	version string
	output  string
}

var conf *Config

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)

	conf = &Config{}

	flag.Usage = func() {
		fmt.Print(usage)
	}

	flag.StringVar(&conf.image, "i", "", "boot image file")
	flag.StringVar(&conf.volume, "f", "", "FAT volume holding the boot image")
	flag.StringVar(&conf.name, "n", flash.DefaultName, "boot image name on the FAT volume")

	flag.StringVar(&conf.reference, "r", assets.ReferenceWord, "reference word")
	flag.StringVar(&conf.digest, "d", assets.ImageDigest, "reference payload SHA-256")
	flag.StringVar(&conf.minVersion, "m", assets.MinVersion, "minimum image version")
	flag.StringVar(&conf.lifeCycle, "l", fmt.Sprintf("%#x", uint32(lcs.Provisioned)), "life-cycle word")

	flag.BoolVar(&conf.check, "c", false, "exit with an error on rejection or fault")
	flag.BoolVar(&conf.sim, "s", false, "signal boot on the simulation sentinel")

	flag.StringVar(&conf.payload, "p", "", "payload file, packs a boot image instead of verifying one")
	flag.StringVar(&conf.version, "v", "v1.0.0", "packed image version")
	flag.StringVar(&conf.output, "o", "", "packed image output file")
}

func main() {
	flag.Parse()

	log.Println(welcome)

	if conf.payload != "" {
		if err := pack(); err != nil {
			log.Fatal(err)
		}

		return
	}

	if conf.image == "" && conf.volume == "" {
		flag.Usage()
		os.Exit(1)
	}

	if conf.check {
		if _, err := fih.SetPanicHandler(abort); err != nil {
			log.Fatal(err)
		}

		fih.Seal()
	} else {
		if err := platform.Install(); err != nil {
			log.Fatal(err)
		}

		log.Printf("terminal action: %s", platform.Name())
	}

	fih.SetDelaySource(&entropy.ChaCha20{})
	fih.DelayInit()

	word, err := strconv.ParseUint(conf.lifeCycle, 0, 32)

	if err != nil {
		log.Fatalf("invalid life-cycle word, %v", err)
	}

	state := lcs.Decode(uint32(word))
	lcs.Require(state, lcs.Provisioned, lcs.Secured)

	log.Printf("life-cycle state: %s", state)

	img, err := load()

	if err != nil {
		log.Fatal(err)
	}

	v, err := verifier()

	if err != nil {
		log.Fatal(err)
	}

	log.Printf("boot image: %s (%d bytes)", img.Version, len(img.Payload))

	if conf.check {
		if err = v.Check(img); err != nil {
			log.Fatal(err)
		}

		log.Printf("boot image verified")
		return
	}

	v.Boot(img, launch)
}

func abort() {
	log.Printf("fault detected")
	os.Exit(2)
}

func load() (*image.Image, error) {
	if conf.volume != "" {
		return flash.LoadFAT(conf.volume, conf.name)
	}

	return flash.LoadFile(conf.image)
}

func verifier() (*image.Verifier, error) {
	ref, err := strconv.ParseUint(conf.reference, 0, 32)

	if err != nil {
		return nil, fmt.Errorf("invalid reference word, %v", err)
	}

	digest, err := hex.DecodeString(conf.digest)

	if err != nil {
		return nil, fmt.Errorf("invalid reference digest, %v", err)
	}

	return image.NewVerifier(nil, uint32(ref), digest, conf.minVersion)
}

func launch(img *image.Image) {
	if conf.sim {
		image.SimLaunch(img)
		log.Printf("sentinel: %#x", fih.Sentinel())
	}

	log.Printf("boot image %s launched", img.Version)
}

func pack() error {
	if conf.output == "" {
		return fmt.Errorf("missing output file")
	}

	payload, err := ioutil.ReadFile(conf.payload)

	if err != nil {
		return err
	}

	buf, err := (&image.Image{Version: conf.version, Payload: payload}).Bytes()

	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(conf.output, buf, 0600); err != nil {
		return err
	}

	img, err := image.Parse(buf)

	if err != nil {
		return err
	}

	sum := sha256.Sum256(img.Payload)

	log.Printf("packed %s (%d bytes)", conf.output, len(buf))
	log.Printf("reference word: %#08x", img.Word())
	log.Printf("payload digest: %x", sum)

	return nil
}
