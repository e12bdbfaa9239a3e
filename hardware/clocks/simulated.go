// This file is part of hdmicore.
//
// hdmicore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmicore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmicore.  If not, see <https://www.gnu.org/licenses/>.

package clocks

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/hdmicore/curated"
)

// Sentinal error patterns.
const (
	InjectedFailure = "clocks: %s: %s failed"
	NotEnabled      = "clocks: %s: disable of clock that is not enabled"
)

// Op identifies an operation on a Clock.
type Op string

// List of valid Op values.
const (
	OpSetRate    Op = "set_rate"
	OpSetMinRate Op = "set_min_rate"
	OpEnable     Op = "enable"
	OpDisable    Op = "disable"
)

// Journal is a record of clock operations, shared by all the clocks in a
// simulated tree so that the order of operations across clocks can be
// checked.
type Journal struct {
	crit    sync.Mutex
	entries []string
}

func (j *Journal) add(s string) {
	if j == nil {
		return
	}
	j.crit.Lock()
	defer j.crit.Unlock()
	j.entries = append(j.entries, s)
}

// Entries returns a copy of the journal. Entries are of the form
// "pixel: set_rate 148500000".
func (j *Journal) Entries() []string {
	j.crit.Lock()
	defer j.crit.Unlock()
	c := make([]string, len(j.entries))
	copy(c, j.entries)
	return c
}

// Clear the journal.
func (j *Journal) Clear() {
	j.crit.Lock()
	defer j.crit.Unlock()
	j.entries = j.entries[:0]
}

// Simulated is an implementation of the Clock interface with no hardware
// behind it. Failures can be injected per operation.
type Simulated struct {
	crit sync.Mutex

	name    string
	rate    uint64
	minRate uint64
	enabled int

	journal *Journal
	fail    map[Op]bool
}

// NewSimulated is the preferred method of initialisation for the Simulated
// type. The journal can be nil.
func NewSimulated(name string, rate uint64, journal *Journal) *Simulated {
	return &Simulated{
		name:    name,
		rate:    rate,
		journal: journal,
		fail:    make(map[Op]bool),
	}
}

// Fail causes all future calls of the operation to fail.
func (clk *Simulated) Fail(op Op, fail bool) {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	clk.fail[op] = fail
}

func (clk *Simulated) record(op Op, detail string) error {
	if clk.fail[op] {
		clk.journal.add(fmt.Sprintf("%s: %s failed", clk.name, op))
		return curated.Errorf(InjectedFailure, clk.name, op)
	}
	if detail == "" {
		clk.journal.add(fmt.Sprintf("%s: %s", clk.name, op))
	} else {
		clk.journal.add(fmt.Sprintf("%s: %s %s", clk.name, op, detail))
	}
	return nil
}

// Name implements the Clock interface.
func (clk *Simulated) Name() string {
	return clk.name
}

// SetRate implements the Clock interface. The rate will not be set below the
// minimum rate.
func (clk *Simulated) SetRate(hz uint64) error {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	if err := clk.record(OpSetRate, fmt.Sprintf("%d", hz)); err != nil {
		return err
	}
	clk.rate = max(hz, clk.minRate)
	return nil
}

// SetMinRate implements the Clock interface. The rate is raised to the
// minimum if necessary. A clock with a rate of zero has not been set up by
// the firmware and setting the minimum does not start it.
func (clk *Simulated) SetMinRate(hz uint64) error {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	if err := clk.record(OpSetMinRate, fmt.Sprintf("%d", hz)); err != nil {
		return err
	}
	clk.minRate = hz
	if clk.rate != 0 {
		clk.rate = max(clk.rate, hz)
	}
	return nil
}

// Rate implements the Clock interface.
func (clk *Simulated) Rate() uint64 {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	return clk.rate
}

// Enable implements the Clock interface. Enables are counted.
func (clk *Simulated) Enable() error {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	if err := clk.record(OpEnable, ""); err != nil {
		return err
	}
	clk.enabled++
	return nil
}

// Disable implements the Clock interface.
func (clk *Simulated) Disable() {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	_ = clk.record(OpDisable, "")
	if clk.enabled > 0 {
		clk.enabled--
	}
}

// Enabled returns the number of outstanding enables.
func (clk *Simulated) Enabled() int {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	return clk.enabled
}

// SimulatedTree is a Tree of Simulated clocks sharing a Journal.
type SimulatedTree struct {
	Tree    Tree
	Journal *Journal

	Pixel *Simulated
	HSM   *Simulated
	BVB   *Simulated
}

// NewSimulatedTree creates a tree of simulated clocks. The BVB clock is only
// created if withBVB is true. An hsmRate of zero models a board that booted
// without a display connected.
func NewSimulatedTree(withBVB bool, hsmRate uint64) *SimulatedTree {
	j := &Journal{}
	st := &SimulatedTree{
		Journal: j,
		Pixel:   NewSimulated("pixel", 0, j),
		HSM:     NewSimulated("hsm", hsmRate, j),
	}

	// the audio and CEC reference clocks are the HSM clock
	st.Tree = Tree{
		Pixel:  st.Pixel,
		HSM:    st.HSM,
		HSMRPM: st.HSM,
		Audio:  st.HSM,
		CEC:    st.HSM,
	}

	if withBVB {
		st.BVB = NewSimulated("bvb", 0, j)
		st.Tree.BVB = st.BVB
	}

	return st
}
