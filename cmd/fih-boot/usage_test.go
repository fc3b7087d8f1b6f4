// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	if !strings.HasSuffix(usage, "\n") || strings.HasSuffix(usage, "\n\n") {
		t.Fatal("usage must end with a single newline")
	}

	// every registered flag is documented
	flag.VisitAll(func(f *flag.Flag) {
		if strings.HasPrefix(f.Name, "test.") {
			return
		}

		if !strings.Contains(usage, "  -"+f.Name+" ") {
			t.Errorf("flag -%s missing from usage", f.Name)
		}
	})
}
