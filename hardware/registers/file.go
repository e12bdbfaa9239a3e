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

package registers

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// Store is the view of a File given to a Hook. Access through a Store does
// not trigger further hooks.
type Store interface {
	Peek(reg Register) uint32
	Poke(reg Register, value uint32)
}

// Hook is called after a value has been written to a register in a File.
type Hook func(s Store, value uint32)

// Access is a single entry in the File journal.
type Access struct {
	Register Register
	Value    uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%s <- %#08x", a.Register, a.Value)
}

// File is an in-memory register file. It implements the Bus interface and is
// used to run the HDMI core without hardware. Behaviour is added with write
// hooks, see the simulated package.
type File struct {
	crit  sync.Mutex
	regs  map[Register]uint32
	hooks map[Register][]Hook

	journal []Access
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile() *File {
	return &File{
		regs:  make(map[Register]uint32),
		hooks: make(map[Register][]Hook),
	}
}

type store struct {
	f *File
}

func (s store) Peek(reg Register) uint32 {
	return s.f.regs[reg]
}

func (s store) Poke(reg Register, value uint32) {
	s.f.regs[reg] = value
}

// Read implements the Bus interface.
func (f *File) Read(reg Register) uint32 {
	f.crit.Lock()
	defer f.crit.Unlock()
	return f.regs[reg]
}

// Write implements the Bus interface. Any hooks for the register are called
// after the value has been stored.
func (f *File) Write(reg Register, value uint32) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.regs[reg] = value
	f.journal = append(f.journal, Access{Register: reg, Value: value})
	for _, h := range f.hooks[reg] {
		h(store{f: f}, value)
	}
}

// Poke sets the value of a register without journaling or calling hooks. It
// is used to model status bits that are changed by the hardware.
func (f *File) Poke(reg Register, value uint32) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.regs[reg] = value
}

// Update changes a register with the register file locked, without
// journaling or calling hooks.
func (f *File) Update(reg Register, fn func(value uint32) uint32) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.regs[reg] = fn(f.regs[reg])
}

// AddHook adds a function to be called after every write to the register.
func (f *File) AddHook(reg Register, h Hook) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.hooks[reg] = append(f.hooks[reg], h)
}

// Journal returns a copy of every write made to the file since the last
// call to ClearJournal().
func (f *File) Journal() []Access {
	f.crit.Lock()
	defer f.crit.Unlock()
	j := make([]Access, len(f.journal))
	copy(j, f.journal)
	return j
}

// ClearJournal empties the journal.
func (f *File) ClearJournal() {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.journal = f.journal[:0]
}

// Dump writes the value of every register that has been set to io.Writer.
// Registers are listed in name order.
func (f *File) Dump(w io.Writer) {
	f.crit.Lock()
	defer f.crit.Unlock()

	names := make([]Register, 0, len(f.regs))
	for r := range f.regs {
		names = append(names, r)
	}
	slices.Sort(names)

	for _, r := range names {
		fmt.Fprintf(w, "%-32s %08x\n", r, f.regs[r])
	}
}
