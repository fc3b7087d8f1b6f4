// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && arm
// +build tamago,arm

package main

import (
	"github.com/f-secure-foundry/armory-fih/assets"
)

// initialized at compile time with -ldflags -X
var Build string
var Revision = assets.Revision
