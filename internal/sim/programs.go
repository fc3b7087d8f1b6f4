// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"sort"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// Memory map of the boot programs.
const (
	// ImageAddr holds the first word of the loaded boot image.
	ImageAddr = 0x32000000
	// ReferenceAddr holds the reference word, ReferenceAddr+4 its check
	// half.
	ReferenceAddr = 0x00010000
)

const (
	// Reference is the first word of a genuine image.
	Reference = 0x12345678
	// Rogue is the first word of the image used on the negative path, one
	// bit away from Reference.
	Rogue = Reference ^ 0x1

	// mask used by double encoded fih.Uint values
	checkMask = 0xB779A31C
)

// Positive and Negative return the image memory of a genuine and a rogue
// boot image.
func Positive() map[uint32]uint32 {
	return map[uint32]uint32{ImageAddr: Reference}
}

func Negative() map[uint32]uint32 {
	return map[uint32]uint32{ImageAddr: Rogue}
}

func failLoop(a *assembler) {
	a.label("fail")
	a.emit(Instr{Op: OpMovi, Rd: 7, Imm: fih.SimFailed})
	a.emit(Instr{Op: OpStore, Ra: 7, Imm: fih.SentinelAddress})
	a.branch(OpB, "fail")
}

// Plain compares the image word with the reference once.
func Plain() *Program {
	a := newAssembler()

	a.emit(Instr{Op: OpLoad, Rd: 0, Imm: ImageAddr})
	a.emit(Instr{Op: OpLoad, Rd: 1, Imm: ReferenceAddr})
	a.emit(Instr{Op: OpCmp, Ra: 0, Rb: 1})
	a.branch(OpBne, "fail")
	a.emit(Instr{Op: OpMovi, Rd: 7, Imm: fih.SimSuccess})
	a.emit(Instr{Op: OpStore, Ra: 7, Imm: fih.SentinelAddress})
	a.emit(Instr{Op: OpHalt})
	failLoop(a)

	return &Program{
		Name: "plain",
		Code: a.assemble(),
		Memory: map[uint32]uint32{
			ReferenceAddr: Reference,
		},
	}
}

// Hardened compares a double encoded image word, read twice, with a double
// encoded reference. Every comparison is repeated and the success value is
// derived from the compared data rather than from a constant.
func Hardened() *Program {
	a := newAssembler()

	// value and check halves from independent reads
	a.emit(Instr{Op: OpLoad, Rd: 0, Imm: ImageAddr})
	a.emit(Instr{Op: OpLoad, Rd: 1, Imm: ReferenceAddr})
	a.emit(Instr{Op: OpLoad, Rd: 2, Imm: ImageAddr})
	a.emit(Instr{Op: OpXori, Rd: 2, Ra: 2, Imm: checkMask})
	a.emit(Instr{Op: OpLoad, Rd: 3, Imm: ReferenceAddr + 4})

	a.emit(Instr{Op: OpCmp, Ra: 0, Rb: 1})
	a.branch(OpBne, "fail")
	a.emit(Instr{Op: OpCmp, Ra: 2, Rb: 3})
	a.branch(OpBne, "fail")
	a.emit(Instr{Op: OpCmp, Ra: 0, Rb: 1})
	a.branch(OpBne, "fail")

	// r6 = ((r0 ^ r1) | (r2 ^ r3)) ^ 1
	a.emit(Instr{Op: OpXor, Rd: 4, Ra: 0, Rb: 1})
	a.emit(Instr{Op: OpXor, Rd: 5, Ra: 2, Rb: 3})
	a.emit(Instr{Op: OpOr, Rd: 4, Ra: 4, Rb: 5})
	a.emit(Instr{Op: OpXori, Rd: 6, Ra: 4, Imm: fih.SimSuccess})

	a.emit(Instr{Op: OpCmp, Ra: 2, Rb: 3})
	a.branch(OpBne, "fail")
	a.emit(Instr{Op: OpStore, Ra: 6, Imm: fih.SentinelAddress})
	a.branch(OpB, "fail")
	failLoop(a)

	return &Program{
		Name: "hardened",
		Code: a.assemble(),
		Memory: map[uint32]uint32{
			ReferenceAddr:     Reference,
			ReferenceAddr + 4: Reference ^ checkMask,
		},
	}
}

var programs = map[string]func() *Program{
	"plain":    Plain,
	"hardened": Hardened,
}

// Lookup returns the named built-in program.
func Lookup(name string) (*Program, error) {
	fn, ok := programs[name]

	if !ok {
		return nil, fmt.Errorf("unknown program %q", name)
	}

	return fn(), nil
}

// Names returns the built-in program names.
func Names() (names []string) {
	for name := range programs {
		names = append(names, name)
	}

	sort.Strings(names)

	return
}
