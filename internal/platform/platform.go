// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package platform provides the strongest terminal action available on the
// running platform and installs it as the fault injection panic handler.
package platform

import (
	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// Install sets the platform terminal action as the fih panic handler and
// seals it against further overrides.
func Install() (err error) {
	if h := terminate(); h != nil {
		if _, err = fih.SetPanicHandler(h); err != nil {
			return
		}
	}

	fih.Seal()

	return
}

// Name returns a short description of the terminal action.
func Name() string {
	return name
}
