// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

const usage = `Usage: fih-boot [OPTIONS]
  -h    show this help

  -i string
        boot image file
  -f string
        FAT volume holding the boot image
  -n string
        boot image name on the FAT volume (default "BOOT.AFI")

  -r string
        reference word (default from assets)
  -d string
        reference payload SHA-256 (default from assets)
  -m string
        minimum image version (default from assets)
  -l string
        life-cycle word (default provisioned)

  -c    exit with an error on rejection or fault instead of invoking
        the terminal action
  -s    signal boot on the simulation sentinel

  -p string
        payload file, packs a boot image instead of verifying one
  -v string
        packed image version (default "v1.0.0")
  -o string
        packed image output file
`

const welcome = `armory-fih boot image verifier`
