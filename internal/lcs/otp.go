// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package lcs

import (
	"encoding/binary"
	"log"

	"github.com/f-secure-foundry/tamago/soc/imx6"

	"github.com/f-secure-foundry/crucible/otp"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// Life-cycle word location, general purpose fuse GP1 (IMX6ULRM Table 5-9).
const (
	DefaultBank = 4
	DefaultWord = 6
)

// OTP reads the life-cycle word from the on-chip fuses.
type OTP struct {
	Bank int
	Word int
}

// ReadLifeCycle implements FuseReader.
func (o *OTP) ReadLifeCycle() (uint32, error) {
	log.Printf("lcs: reading life-cycle bank:%d word:%d", o.Bank, o.Word)

	res, err := otp.ReadOCOTP(o.Bank, o.Word, 0, 32)

	if err != nil {
		return 0, err
	}

	buf := make([]byte, 4)
	copy(buf, res)

	return binary.LittleEndian.Uint32(buf), nil
}

// CheckSecureBoot invokes fih.Panic when a Secured state is reported on a
// SoC which is not Secure Booted, as a glitched fuse read would.
func CheckSecureBoot(s State) {
	if s.Encoded().Eq(Secured.Encoded()) != fih.True {
		return
	}

	fih.Delay()

	if !imx6.SNVS() {
		log.Printf("lcs: %s state without Secure Boot", s)
		fih.Panic()
	}
}
