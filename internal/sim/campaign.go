// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Attack is a fault combination which turned a rogue image boot into a
// successful one.
type Attack struct {
	Faults []Fault
}

func (a Attack) String() string {
	return fmt.Sprintf("%v", a.Faults)
}

// Result summarizes a campaign.
type Result struct {
	Program string
	// Runs is the number of faulted executions.
	Runs int
	// Trace is the unfaulted negative path.
	Trace []TraceRecord
	// Attacks lists successful attacks, single faults first.
	Attacks []Attack
}

// Count returns the number of successful attacks using n faults.
func (r *Result) Count(n int) (c int) {
	for _, a := range r.Attacks {
		if len(a.Faults) == n {
			c++
		}
	}

	return
}

// Campaign runs fault injection attacks against a program.
type Campaign struct {
	Program *Program
	// MaxFaults is the number of faults combined per run, 1 or 2.
	MaxFaults int
	// Workers bounds the parallel runs, GOMAXPROCS when zero.
	Workers int
	// Max bounds each run, MaxInstructions when zero.
	Max int
	// Kinds restricts the fault models, all are used when empty.
	Kinds []Kind
}

func (c *Campaign) machine() *Machine {
	m := NewMachine(c.Program)
	m.Max = c.Max

	return m
}

// Check verifies that the unfaulted program boots the genuine image and
// rejects the rogue one.
func (c *Campaign) Check() error {
	m := c.machine()

	if s := m.Run(Positive()); s != Success {
		return fmt.Errorf("%s: positive path ended in %s", c.Program.Name, s)
	}

	if s := m.Run(Negative()); s != Failed {
		return fmt.Errorf("%s: negative path ended in %s", c.Program.Name, s)
	}

	return nil
}

// Trace records the negative path with faults applied.
func (c *Campaign) Trace(faults ...Fault) []TraceRecord {
	m := c.machine()
	m.SetFaults(faults...)
	m.Run(Negative())

	return m.Trace()
}

type collector struct {
	sync.Mutex
	runs    int
	attacks []Attack
}

func (r *collector) add(runs int, attacks []Attack) {
	r.Lock()
	defer r.Unlock()

	r.runs += runs
	r.attacks = append(r.attacks, attacks...)
}

// attack tries first alone and, when it does not succeed and the campaign
// allows it, combined with every fault applicable to the negative path as
// altered by first.
func (c *Campaign) attack(m *Machine, first Fault) (runs int, attacks []Attack) {
	m.SetFaults(first)
	runs++

	if m.Run(Negative()) == Success {
		return runs, []Attack{{Faults: []Fault{first}}}
	}

	if c.MaxFaults < 2 {
		return
	}

	for _, second := range Faults(c.Program, m.Trace(), c.Kinds...) {
		if second == first {
			continue
		}

		m.SetFaults(first, second)
		runs++

		if m.Run(Negative()) == Success {
			attacks = append(attacks, Attack{Faults: []Fault{first, second}})
		}
	}

	return
}

// Run performs the campaign.
func (c *Campaign) Run(ctx context.Context) (*Result, error) {
	if err := c.Program.Validate(); err != nil {
		return nil, err
	}

	if c.MaxFaults < 1 || c.MaxFaults > 2 {
		return nil, fmt.Errorf("unsupported number of faults %d", c.MaxFaults)
	}

	if err := c.Check(); err != nil {
		return nil, err
	}

	workers := c.Workers

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trace := c.Trace()
	faults := Faults(c.Program, trace, c.Kinds...)
	jobs := make(chan Fault)
	res := &collector{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)

		for _, f := range faults {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			m := c.machine()

			for f := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}

				res.add(c.attack(m, f))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortAttacks(res.attacks)

	return &Result{
		Program: c.Program.Name,
		Runs:    res.runs,
		Trace:   trace,
		Attacks: res.attacks,
	}, nil
}

func less(a, b Fault) bool {
	if a.Addr != b.Addr {
		return a.Addr < b.Addr
	}

	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}

	return a.Arg < b.Arg
}

func sortAttacks(attacks []Attack) {
	sort.Slice(attacks, func(i, j int) bool {
		a, b := attacks[i].Faults, attacks[j].Faults

		if len(a) != len(b) {
			return len(a) < len(b)
		}

		for k := range a {
			if a[k] != b[k] {
				return less(a[k], b[k])
			}
		}

		return false
	})
}
