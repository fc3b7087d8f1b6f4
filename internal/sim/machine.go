// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sim simulates fault injection attacks against small boot
// programs. A program runs once with a genuine and once with a rogue image,
// the instructions executed by the rogue run are then faulted, alone or in
// pairs, and every combination which ends with the success value on the
// sentinel is reported as a successful attack.
package sim

import (
	"fmt"
	"sort"

	"github.com/f-secure-foundry/armory-fih/internal/fih"
)

// MaxInstructions bounds the execution of a single run.
const MaxInstructions = 2000

// RunState is the outcome of a run.
type RunState int

const (
	// Init means no sentinel was written before the run stopped.
	Init RunState = iota
	// Success means the success value reached the sentinel.
	Success
	// Failed means the failure value reached the sentinel.
	Failed
	// Error means the program counter left the program.
	Error
)

func (s RunState) String() string {
	switch s {
	case Init:
		return "init"
	case Success:
		return "success"
	case Failed:
		return "failed"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TraceRecord counts the executions of an instruction.
type TraceRecord struct {
	Addr  uint32
	Count int
}

// Machine executes a Program with optional faults. A Machine is not safe for
// concurrent use, campaigns allocate one per worker.
type Machine struct {
	// Max bounds the number of executed instructions, MaxInstructions is
	// used when zero.
	Max int

	prog   *Program
	faults []Fault

	mem   map[uint32]uint32
	regs  [Registers]uint32
	z     bool
	pc    uint32
	steps int
	state RunState
	trace map[uint32]int
}

// NewMachine returns a machine executing p.
func NewMachine(p *Program) *Machine {
	return &Machine{prog: p}
}

// SetFaults replaces the injected faults.
func (m *Machine) SetFaults(faults ...Fault) {
	m.faults = append(m.faults[:0], faults...)
}

func (m *Machine) reset(mem map[uint32]uint32) {
	m.mem = make(map[uint32]uint32, len(m.prog.Memory)+len(mem))

	for a, v := range m.prog.Memory {
		m.mem[a] = v
	}

	for a, v := range mem {
		m.mem[a] = v
	}

	m.regs = [Registers]uint32{}
	m.z = false
	m.pc = 0
	m.steps = 0
	m.state = Init
	m.trace = make(map[uint32]int)
}

func (m *Machine) skipped(addr uint32) bool {
	for _, f := range m.faults {
		if f.skips(addr) {
			return true
		}
	}

	return false
}

func (m *Machine) flips(addr uint32) (mask uint32) {
	for _, f := range m.faults {
		if f.Kind == BitFlip && f.Addr == addr {
			mask ^= 1 << (f.Arg % 32)
		}
	}

	return
}

func (m *Machine) store(addr uint32, val uint32) {
	m.mem[addr] = val

	if addr != fih.SentinelAddress {
		return
	}

	switch val {
	case fih.SimSuccess:
		m.state = Success
	case fih.SimFailed:
		m.state = Failed
	}
}

func (m *Machine) step() (stop bool) {
	if int(m.pc) >= len(m.prog.Code) {
		m.state = Error
		return true
	}

	addr := m.pc
	m.trace[addr]++
	m.steps++
	m.pc++

	if m.skipped(addr) {
		return false
	}

	i := m.prog.Code[addr]
	flip := m.flips(addr)

	switch i.Op {
	case OpNop:
	case OpLoad:
		m.regs[i.Rd] = m.mem[i.Imm] ^ flip
	case OpStore:
		m.store(i.Imm, m.regs[i.Ra])
	case OpMovi:
		m.regs[i.Rd] = i.Imm ^ flip
	case OpXori:
		m.regs[i.Rd] = (m.regs[i.Ra] ^ i.Imm) ^ flip
	case OpXor:
		m.regs[i.Rd] = (m.regs[i.Ra] ^ m.regs[i.Rb]) ^ flip
	case OpOr:
		m.regs[i.Rd] = (m.regs[i.Ra] | m.regs[i.Rb]) ^ flip
	case OpCmp:
		m.z = (m.regs[i.Ra] == m.regs[i.Rb]) != (flip&1 == 1)
	case OpBne:
		if !m.z {
			m.pc = i.Imm
		}
	case OpBeq:
		if m.z {
			m.pc = i.Imm
		}
	case OpB:
		m.pc = i.Imm
	case OpHalt:
		return true
	}

	return m.state != Init
}

// Run executes the program from its first instruction with mem overlaid on
// the program memory and returns the final state.
func (m *Machine) Run(mem map[uint32]uint32) RunState {
	limit := m.Max

	if limit == 0 {
		limit = MaxInstructions
	}

	m.reset(mem)

	for m.steps < limit {
		if m.step() {
			break
		}
	}

	return m.state
}

// Steps returns the number of instructions executed by the last run.
func (m *Machine) Steps() int {
	return m.steps
}

// Trace returns the execution counts of the last run in address order.
func (m *Machine) Trace() (records []TraceRecord) {
	for addr, n := range m.trace {
		records = append(records, TraceRecord{Addr: addr, Count: n})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Addr < records[j].Addr
	})

	return
}
