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
	"sync"
	"time"
)

// Bus is the raw access to the registers of the HDMI block. Implementations
// do not need to be safe for concurrent use, the Context serialises all
// access.
type Bus interface {
	Read(reg Register) uint32
	Write(reg Register, value uint32)
}

// RW is the interface given to functions that run while the register lock is
// held.
type RW interface {
	Read(reg Register) uint32
	Write(reg Register, value uint32)
	Modify(reg Register, clear uint32, set uint32)
}

// PollInterval is the time between successive reads of a status register by
// WaitFor().
const PollInterval = time.Millisecond

// Context owns the register lock for a single HDMI block. Every component of
// the encoder is given the same Context.
//
// The register lock is held for the duration of a single access or for the
// duration of a function given to Locked(). It is never held while sleeping
// and it must never be held while calling into a clock or PHY routine that
// may sleep.
type Context struct {
	crit sync.Mutex
	bus  Bus
	clk  Clock
}

// NewContext is the preferred method of initialisation for the Context type.
// If clk is nil the SystemClock is used.
func NewContext(bus Bus, clk Clock) *Context {
	if clk == nil {
		clk = SystemClock{}
	}
	return &Context{
		bus: bus,
		clk: clk,
	}
}

// locked implements the RW interface for use while the register lock is held.
type locked struct {
	bus Bus
}

func (l locked) Read(reg Register) uint32 {
	return l.bus.Read(reg)
}

func (l locked) Write(reg Register, value uint32) {
	l.bus.Write(reg, value)
}

func (l locked) Modify(reg Register, clear uint32, set uint32) {
	l.bus.Write(reg, (l.bus.Read(reg)&^clear)|set)
}

// Read a single register.
func (ctx *Context) Read(reg Register) uint32 {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	return ctx.bus.Read(reg)
}

// Write a single register.
func (ctx *Context) Write(reg Register, value uint32) {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	ctx.bus.Write(reg, value)
}

// Modify a register by clearing and then setting bits. The read and the
// write happen under the same lock.
func (ctx *Context) Modify(reg Register, clear uint32, set uint32) {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	locked{bus: ctx.bus}.Modify(reg, clear, set)
}

// Locked runs the function with the register lock held. Use this for
// sequences of register accesses that must not be interleaved with access
// from another goroutine. The function must not sleep.
func (ctx *Context) Locked(f func(rw RW)) {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	f(locked{bus: ctx.bus})
}

// WaitFor polls the condition until it returns true or the timeout expires.
// The condition is evaluated with the register lock held but the lock is
// released between polls. Returns false if the timeout expired.
func (ctx *Context) WaitFor(cond func(rw RW) bool, timeout time.Duration) bool {
	deadline := ctx.clk.Now().Add(timeout)
	for {
		var ok bool
		ctx.Locked(func(rw RW) {
			ok = cond(rw)
		})
		if ok {
			return true
		}
		if !ctx.clk.Now().Before(deadline) {
			return false
		}
		ctx.clk.Sleep(PollInterval)
	}
}

// Delay sleeps for the duration. The register lock is not held.
func (ctx *Context) Delay(d time.Duration) {
	ctx.clk.Sleep(d)
}

// Clock returns the clock used by the context.
func (ctx *Context) Clock() Clock {
	return ctx.clk
}
