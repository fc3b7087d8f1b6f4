// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"fmt"
)

// Op is an instruction opcode.
type Op int

const (
	OpNop Op = iota
	// OpLoad: r[Rd] = mem[Imm]
	OpLoad
	// OpStore: mem[Imm] = r[Ra]
	OpStore
	// OpMovi: r[Rd] = Imm
	OpMovi
	// OpXori: r[Rd] = r[Ra] ^ Imm
	OpXori
	// OpXor: r[Rd] = r[Ra] ^ r[Rb]
	OpXor
	// OpOr: r[Rd] = r[Ra] | r[Rb]
	OpOr
	// OpCmp: Z = r[Ra] == r[Rb]
	OpCmp
	// OpBne: branch to Imm unless Z
	OpBne
	// OpBeq: branch to Imm if Z
	OpBeq
	// OpB: branch to Imm
	OpB
	OpHalt
)

var opNames = map[Op]string{
	OpNop:   "nop",
	OpLoad:  "ldw",
	OpStore: "stw",
	OpMovi:  "movi",
	OpXori:  "xori",
	OpXor:   "xor",
	OpOr:    "or",
	OpCmp:   "cmp",
	OpBne:   "bne",
	OpBeq:   "beq",
	OpB:     "b",
	OpHalt:  "halt",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}

	return fmt.Sprintf("op(%d)", int(op))
}

// Registers is the size of the register file.
const Registers = 8

// Instr is a decoded instruction.
type Instr struct {
	Op  Op
	Rd  int
	Ra  int
	Rb  int
	Imm uint32
}

// Writes reports whether the instruction produces a value which a bit flip
// fault can corrupt, the comparison flag counts as bit 0 of cmp results.
func (i Instr) Writes() bool {
	switch i.Op {
	case OpLoad, OpMovi, OpXori, OpXor, OpOr, OpCmp:
		return true
	}

	return false
}

func (i Instr) String() string {
	switch i.Op {
	case OpLoad:
		return fmt.Sprintf("ldw r%d, [%#x]", i.Rd, i.Imm)
	case OpStore:
		return fmt.Sprintf("stw r%d, [%#x]", i.Ra, i.Imm)
	case OpMovi:
		return fmt.Sprintf("movi r%d, %#x", i.Rd, i.Imm)
	case OpXori:
		return fmt.Sprintf("xori r%d, r%d, %#x", i.Rd, i.Ra, i.Imm)
	case OpXor, OpOr:
		return fmt.Sprintf("%s r%d, r%d, r%d", i.Op, i.Rd, i.Ra, i.Rb)
	case OpCmp:
		return fmt.Sprintf("cmp r%d, r%d", i.Ra, i.Rb)
	case OpBne, OpBeq, OpB:
		return fmt.Sprintf("%s %d", i.Op, i.Imm)
	default:
		return i.Op.String()
	}
}

// Program is a sequence of instructions together with the initial memory it
// expects. Instruction addresses are slice indices.
type Program struct {
	Name   string
	Code   []Instr
	Memory map[uint32]uint32
}

// Validate checks register numbers and branch targets.
func (p *Program) Validate() error {
	if len(p.Code) == 0 {
		return fmt.Errorf("%s: empty program", p.Name)
	}

	for addr, i := range p.Code {
		for _, r := range []int{i.Rd, i.Ra, i.Rb} {
			if r < 0 || r >= Registers {
				return fmt.Errorf("%s: invalid register r%d at %d", p.Name, r, addr)
			}
		}

		switch i.Op {
		case OpBne, OpBeq, OpB:
			if int(i.Imm) >= len(p.Code) {
				return fmt.Errorf("%s: branch target %d out of range at %d", p.Name, i.Imm, addr)
			}
		}

		if _, ok := opNames[i.Op]; !ok {
			return fmt.Errorf("%s: invalid opcode at %d", p.Name, addr)
		}
	}

	return nil
}

// assembler resolves forward branch labels while a program is being built.
type assembler struct {
	code   []Instr
	labels map[string]int
	fixups map[int]string
}

func newAssembler() *assembler {
	return &assembler{
		labels: make(map[string]int),
		fixups: make(map[int]string),
	}
}

func (a *assembler) emit(i Instr) {
	a.code = append(a.code, i)
}

func (a *assembler) branch(op Op, label string) {
	a.fixups[len(a.code)] = label
	a.emit(Instr{Op: op})
}

func (a *assembler) label(name string) {
	a.labels[name] = len(a.code)
}

func (a *assembler) assemble() []Instr {
	for addr, name := range a.fixups {
		target, ok := a.labels[name]

		if !ok {
			panic("undefined label " + name)
		}

		a.code[addr].Imm = uint32(target)
	}

	return a.code
}
