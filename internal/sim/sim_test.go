// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"context"
	"testing"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

func TestPrograms(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name)

		if err != nil {
			t.Fatal(err)
		}

		if err = p.Validate(); err != nil {
			t.Fatal(err)
		}

		c := &Campaign{Program: p, MaxFaults: 1}

		if err = c.Check(); err != nil {
			t.Error(err)
		}
	}

	if _, err := Lookup("missing"); err == nil {
		t.Error("unknown program found")
	}
}

func TestValidate(t *testing.T) {
	for _, p := range []*Program{
		{Name: "empty"},
		{Name: "register", Code: []Instr{{Op: OpMovi, Rd: Registers}}},
		{Name: "branch", Code: []Instr{{Op: OpB, Imm: 1}}},
		{Name: "opcode", Code: []Instr{{Op: Op(100)}}},
	} {
		if err := p.Validate(); err == nil {
			t.Errorf("%s: invalid program accepted", p.Name)
		}
	}
}

func TestMachine(t *testing.T) {
	m := NewMachine(Plain())

	if s := m.Run(Positive()); s != Success {
		t.Fatalf("positive run ended in %s", s)
	}

	if s := m.Run(Negative()); s != Failed {
		t.Fatalf("negative run ended in %s", s)
	}

	// ldw, ldw, cmp, bne, movi, stw
	if m.Steps() != 6 {
		t.Fatalf("negative run took %d steps", m.Steps())
	}

	want := []TraceRecord{{0, 1}, {1, 1}, {2, 1}, {3, 1}, {7, 1}, {8, 1}}
	got := m.Trace()

	if len(got) != len(want) {
		t.Fatalf("trace %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trace %v, want %v", got, want)
		}
	}
}

func TestInstructionLimit(t *testing.T) {
	p := &Program{
		Name: "loop",
		Code: []Instr{{Op: OpNop}, {Op: OpB, Imm: 0}},
	}

	m := NewMachine(p)
	m.Max = 100

	if s := m.Run(nil); s != Init {
		t.Fatalf("endless loop ended in %s", s)
	}

	if m.Steps() != 100 {
		t.Fatalf("executed %d steps", m.Steps())
	}
}

func TestRunOff(t *testing.T) {
	p := &Program{
		Name: "runoff",
		Code: []Instr{{Op: OpMovi, Rd: 0, Imm: 3}, {Op: OpStore, Ra: 0, Imm: fih.SentinelAddress}},
	}

	if s := NewMachine(p).Run(nil); s != Error {
		t.Fatalf("run ended in %s", s)
	}
}

func TestFaults(t *testing.T) {
	m := NewMachine(Plain())

	// skipping the branch boots the rogue image
	m.SetFaults(Fault{Nop, 3, 1})

	if s := m.Run(Negative()); s != Success {
		t.Fatalf("nop run ended in %s", s)
	}

	// the rogue word is one bit away from the reference
	m.SetFaults(Fault{BitFlip, 0, 0})

	if s := m.Run(Negative()); s != Success {
		t.Fatalf("bitflip run ended in %s", s)
	}

	// skipped comparison leaves the flag clear
	m.SetFaults(Fault{Nop, 2, 1})

	if s := m.Run(Negative()); s != Failed {
		t.Fatalf("nop run ended in %s", s)
	}
}

func TestFaultList(t *testing.T) {
	p := Plain()
	trace := []TraceRecord{{0, 1}, {2, 1}, {3, 1}}

	faults := Faults(p, trace)

	// ldw: 2 nops + 32 flips, cmp: 2 nops + 1 flip, bne: 2 nops
	if len(faults) != 34+3+2 {
		t.Fatalf("%d faults", len(faults))
	}

	if n := len(Faults(p, trace, Nop)); n != 6 {
		t.Fatalf("%d nop faults", n)
	}

	if n := len(Faults(p, trace, BitFlip)); n != 33 {
		t.Fatalf("%d bitflip faults", n)
	}
}

func contains(r *Result, faults ...Fault) bool {
	for _, a := range r.Attacks {
		if len(a.Faults) != len(faults) {
			continue
		}

		match := true

		for i := range faults {
			if a.Faults[i] != faults[i] {
				match = false
			}
		}

		if match {
			return true
		}
	}

	return false
}

func TestPlainCampaign(t *testing.T) {
	c := &Campaign{Program: Plain(), MaxFaults: 1, Workers: 2}

	r, err := c.Run(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []Fault{
		{Nop, 0, 2},
		{Nop, 2, 2},
		{Nop, 3, 1},
		{BitFlip, 0, 0},
		{BitFlip, 1, 0},
		{BitFlip, 2, 0},
	} {
		if !contains(r, f) {
			t.Errorf("missing single fault attack %v", f)
		}
	}

	if n := r.Count(1); n != 6 {
		t.Errorf("%d single fault attacks: %v", n, r.Attacks)
	}
}

func TestHardenedCampaign(t *testing.T) {
	single := &Campaign{Program: Hardened(), MaxFaults: 1}

	r, err := single.Run(context.Background())

	if err != nil {
		t.Fatal(err)
	}

	if len(r.Attacks) != 0 {
		t.Fatalf("hardened program broken by single faults: %v", r.Attacks)
	}

	if r.Runs == 0 {
		t.Fatal("no runs")
	}

	double := &Campaign{Program: Hardened(), MaxFaults: 2, Kinds: []Kind{BitFlip}}

	if r, err = double.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if r.Count(1) != 0 {
		t.Fatalf("single fault attacks in double campaign: %v", r.Attacks)
	}

	// both reads of the image word flipped to the reference
	if !contains(r, Fault{BitFlip, 0, 0}, Fault{BitFlip, 2, 0}) {
		t.Fatalf("missing double fault attack: %v", r.Attacks)
	}
}

func TestCampaignErrors(t *testing.T) {
	if _, err := (&Campaign{Program: Plain(), MaxFaults: 3}).Run(context.Background()); err == nil {
		t.Error("three faults accepted")
	}

	broken := &Program{
		Name: "broken",
		Code: []Instr{{Op: OpHalt}},
	}

	if _, err := (&Campaign{Program: broken, MaxFaults: 1}).Run(context.Background()); err == nil {
		t.Error("program without sentinel accepted")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (&Campaign{Program: Plain(), MaxFaults: 1}).Run(ctx); err == nil {
		t.Error("cancelled campaign succeeded")
	}
}
