// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package platform

import (
	"github.com/f-secure-foundry/tamago/soc/imx6"
)

const name = "soc reset"

func terminate() func() {
	return func() {
		imx6.Reboot()
	}
}
