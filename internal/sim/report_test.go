// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"context"
	"reflect"
	"testing"
)

func TestReport(t *testing.T) {
	r, err := (&Campaign{Program: Plain(), MaxFaults: 2}).Run(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if r.Count(2) == 0 {
		t.Fatal("no double fault attacks against the plain program")
	}

	empty := &Result{Program: "hardened", Runs: 7}

	b := MarshalResults([]*Result{r, empty})
	results, err := UnmarshalResults(b)

	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("decoded %d results", len(results))
	}

	if !reflect.DeepEqual(results[0], r) {
		t.Errorf("decoded %+v, want %+v", results[0], r)
	}

	if !reflect.DeepEqual(results[1], empty) {
		t.Errorf("decoded %+v, want %+v", results[1], empty)
	}

	if _, err := UnmarshalResults(b[:len(b)-1]); err == nil {
		t.Error("truncated report decoded")
	}
}
