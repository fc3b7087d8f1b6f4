// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"fmt"
)

// Kind is a fault model.
type Kind int

const (
	// Nop replaces Arg consecutive instructions, starting at Addr, with
	// no-ops on every execution.
	Nop Kind = iota + 1
	// BitFlip inverts bit Arg of the value produced by the instruction at
	// Addr on every execution.
	BitFlip
)

func (k Kind) String() string {
	switch k {
	case Nop:
		return "nop"
	case BitFlip:
		return "bitflip"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Fault describes a single injected fault.
type Fault struct {
	Kind Kind
	Addr uint32
	Arg  uint32
}

func (f Fault) String() string {
	switch f.Kind {
	case Nop:
		return fmt.Sprintf("nop x%d @ %d", f.Arg, f.Addr)
	case BitFlip:
		return fmt.Sprintf("bitflip bit %d @ %d", f.Arg, f.Addr)
	default:
		return fmt.Sprintf("%s @ %d", f.Kind, f.Addr)
	}
}

// skips reports whether the fault turns the instruction at addr into a nop.
func (f Fault) skips(addr uint32) bool {
	return f.Kind == Nop && addr >= f.Addr && addr-f.Addr < f.Arg
}

// Faults enumerates the faults applicable to the traced instructions of p,
// in address order. NOP faults cover one and two consecutive instructions.
func Faults(p *Program, trace []TraceRecord, kinds ...Kind) (faults []Fault) {
	enabled := make(map[Kind]bool)

	for _, k := range kinds {
		enabled[k] = true
	}

	if len(kinds) == 0 {
		enabled[Nop] = true
		enabled[BitFlip] = true
	}

	for _, rec := range trace {
		if enabled[Nop] {
			faults = append(faults, Fault{Nop, rec.Addr, 1})

			if int(rec.Addr)+1 < len(p.Code) {
				faults = append(faults, Fault{Nop, rec.Addr, 2})
			}
		}

		if !enabled[BitFlip] || !p.Code[rec.Addr].Writes() {
			continue
		}

		bits := uint32(32)

		if p.Code[rec.Addr].Op == OpCmp {
			bits = 1
		}

		for b := uint32(0); b < bits; b++ {
			faults = append(faults, Fault{BitFlip, rec.Addr, b})
		}
	}

	return
}
