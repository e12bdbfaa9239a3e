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

package simulated

import (
	"sync/atomic"

	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Behaviour is a status bit of the HDMI block that changes in response to a
// write from the HDMI core.
type Behaviour int

// List of valid Behaviour values.
const (
	// the status bit of a packet RAM slot follows its enable bit
	PacketStatus Behaviour = iota

	// the HDMI active bit of the scheduler follows the HDMI mode bit
	HDMIActive

	// the recenter done bit of the FIFO follows the recenter bit
	Recenter

	// the PHY PLL locks when it is taken out of reset
	PLLLock

	numBehaviours
)

func (b Behaviour) String() string {
	switch b {
	case PacketStatus:
		return "packet status"
	case HDMIActive:
		return "hdmi active"
	case Recenter:
		return "recenter"
	case PLLLock:
		return "pll lock"
	}
	return "unknown behaviour"
}

// Block is a behavioural model of the HDMI block built on a register File.
// It is not a complete model. It models only those status bits that the HDMI
// core waits on.
type Block struct {
	File *registers.File

	stalled   [numBehaviours]atomic.Bool
	connected atomic.Bool
}

// NewBlock is the preferred method of initialisation for the Block type.
func NewBlock() *Block {
	b := &Block{
		File: registers.NewFile(),
	}

	b.File.AddHook(registers.RAMPacketConfig, func(s registers.Store, value uint32) {
		if b.stalled[PacketStatus].Load() {
			return
		}
		const slots = 0xffff
		status := s.Peek(registers.RAMPacketStatus)
		s.Poke(registers.RAMPacketStatus, (status&^slots)|(value&slots))
	})

	b.File.AddHook(registers.SchedulerControl, func(s registers.Store, value uint32) {
		if b.stalled[HDMIActive].Load() {
			return
		}
		if value&registers.SchedulerModeHDMI == registers.SchedulerModeHDMI {
			value |= registers.SchedulerHDMIActive
		} else {
			value &^= registers.SchedulerHDMIActive
		}
		s.Poke(registers.SchedulerControl, value)
	})

	b.File.AddHook(registers.FIFOCtl, func(s registers.Store, value uint32) {
		if b.stalled[Recenter].Load() {
			s.Poke(registers.FIFOCtl, value&^registers.FIFOCtlRecenterDone)
			return
		}
		if value&registers.FIFOCtlRecenter == registers.FIFOCtlRecenter {
			value |= registers.FIFOCtlRecenterDone
		} else {
			value &^= registers.FIFOCtlRecenterDone
		}
		s.Poke(registers.FIFOCtl, value)
	})

	b.File.AddHook(registers.TXPhyResetCtl, func(s registers.Store, value uint32) {
		if b.stalled[PLLLock].Load() || value&registers.ExtPhyResetCtlPLL == registers.ExtPhyResetCtlPLL {
			s.Poke(registers.TXPhyPLLStatus, 0)
			return
		}
		s.Poke(registers.TXPhyPLLStatus, registers.ExtPhyPLLLocked)
	})

	return b
}

// Read implements the registers.Bus interface.
func (b *Block) Read(reg registers.Register) uint32 {
	return b.File.Read(reg)
}

// Write implements the registers.Bus interface.
func (b *Block) Write(reg registers.Register, value uint32) {
	b.File.Write(reg, value)
}

// Stall freezes or releases a behaviour. A stalled behaviour never changes
// its status bit, which is used to exercise the timeout paths of the HDMI
// core.
func (b *Block) Stall(beh Behaviour, stall bool) {
	b.stalled[beh].Store(stall)
}

// SetConnected sets the hotplug status of the block.
func (b *Block) SetConnected(connected bool) {
	b.connected.Store(connected)
	b.File.Update(registers.Hotplug, func(value uint32) uint32 {
		if connected {
			return value | registers.HotplugConnected
		}
		return value &^ registers.HotplugConnected
	})
}

// Connected returns the value last given to SetConnected(). It stands in for
// the hotplug GPIO of boards that do not detect hotplug through a register.
func (b *Block) Connected() bool {
	return b.connected.Load()
}
