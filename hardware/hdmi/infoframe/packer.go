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

package infoframe

import (
	"fmt"
	"sync"
	"time"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Sentinal error patterns.
const (
	BusyTimeout   = "infoframe: %s packet did not %s"
	FrameTooLarge = "infoframe: %s frame of %d bytes does not fit in packet RAM"
	UnknownSlot   = "infoframe: unknown slot (%#02x)"
)

// Slot is a packet slot in the packet RAM of the HDMI block. The value of a
// slot is the infoframe type that it holds.
type Slot uint8

// List of valid Slot values.
const (
	AVI   Slot = 0x82
	SPD   Slot = 0x83
	Audio Slot = 0x84
	HDR   Slot = 0x87
)

// Slots lists every valid slot.
var Slots = []Slot{AVI, SPD, Audio, HDR}

func (s Slot) String() string {
	switch s {
	case AVI:
		return "AVI"
	case SPD:
		return "SPD"
	case Audio:
		return "audio"
	case HDR:
		return "HDR"
	}
	return fmt.Sprintf("type %#02x", uint8(s))
}

// PacketID is the index of the slot in the packet RAM. It is also the bit
// number of the slot in the packet RAM enable and status registers.
func (s Slot) PacketID() int {
	return int(s) - 0x80
}

func (s Slot) bit() uint32 {
	return 1 << s.PacketID()
}

func (s Slot) valid() bool {
	for _, v := range Slots {
		if s == v {
			return true
		}
	}
	return false
}

// State of a Slot.
type State int

// List of valid State values.
const (
	Disabled State = iota
	Writing
	Enabled
)

func (st State) String() string {
	switch st {
	case Disabled:
		return "disabled"
	case Writing:
		return "writing"
	case Enabled:
		return "enabled"
	}
	return "unknown state"
}

// Packet RAM geometry. Each slot is nine words.
const (
	Stride       = 0x24
	wordsPerSlot = Stride / 4

	// a pair of words carries seven bytes. the last word of a slot is the
	// first half of a pair, which holds three bytes
	MaxFrameSize = (wordsPerSlot/2)*7 + 3
)

// PollTimeout is the time allowed for a slot to go idle after being stopped
// and to go active after being enabled.
const PollTimeout = 100 * time.Millisecond

// Packer writes infoframes into the packet RAM. It tracks the state of each
// slot.
//
// The packet RAM is read by the video pipeline while it is being written so
// callers must serialise writes to the same slot. In the encoder this is done
// by the config mutex.
type Packer struct {
	ctx *registers.Context

	crit       sync.Mutex
	state      map[Slot]State
	ramEnabled bool
}

// NewPacker is the preferred method of initialisation for the Packer type.
func NewPacker(ctx *registers.Context) *Packer {
	return &Packer{
		ctx:   ctx,
		state: make(map[Slot]State),
	}
}

// State returns the state of the slot.
func (p *Packer) State(slot Slot) State {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.state[slot]
}

func (p *Packer) setState(slot Slot, st State) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.state[slot] = st
}

// RAMEnabled returns true if the packet RAM is on.
func (p *Packer) RAMEnabled() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.ramEnabled
}

// EnableRAM turns on the packet RAM with every slot disabled. Infoframes can
// only be sent to HDMI sinks and the packet RAM should be left off for DVI
// sinks.
func (p *Packer) EnableRAM() {
	p.ctx.Write(registers.RAMPacketConfig, registers.RAMPacketEnable)

	p.crit.Lock()
	defer p.crit.Unlock()
	for _, s := range Slots {
		p.state[s] = Disabled
	}
	p.ramEnabled = true
}

// Stop the slot by clearing its enable bit. If poll is true Stop() waits for
// the hardware to finish sending the packet and returns an error with the
// BusyTimeout pattern if it does not.
func (p *Packer) Stop(slot Slot, poll bool) error {
	if !slot.valid() {
		return curated.Errorf(UnknownSlot, uint8(slot))
	}

	p.ctx.Modify(registers.RAMPacketConfig, slot.bit(), 0)
	p.setState(slot, Disabled)

	if !poll {
		return nil
	}

	if !p.ctx.WaitFor(func(rw registers.RW) bool {
		return rw.Read(registers.RAMPacketStatus)&slot.bit() == 0
	}, PollTimeout) {
		return curated.Errorf(BusyTimeout, slot, "go idle")
	}

	return nil
}

// Write a packed infoframe to the slot and enable it. The slot is stopped
// first and if it does not go idle the frame is not written.
//
// Errors with the BusyTimeout pattern are not fatal. If the slot did not go
// idle the previous frame is still being sent. If the slot did not go active
// the new frame will be sent later.
func (p *Packer) Write(slot Slot, frame []byte) error {
	if !slot.valid() {
		return curated.Errorf(UnknownSlot, uint8(slot))
	}
	if len(frame) > MaxFrameSize {
		return curated.Errorf(FrameTooLarge, slot, len(frame))
	}

	if err := p.Stop(slot, true); err != nil {
		return err
	}

	p.setState(slot, Writing)

	base := registers.RAMPacketStart
	first := slot.PacketID() * wordsPerSlot

	p.ctx.Locked(func(rw registers.RW) {
		// the words after the end of the frame are zeroed. leaving stale
		// data in the slot upsets the checksum on HDMI analysers
		for w := 0; w < wordsPerSlot; w++ {
			rw.Write(base.Offset(first+w), packWord(frame, w))
		}
		rw.Modify(registers.RAMPacketConfig, 0, slot.bit())
	})

	p.setState(slot, Enabled)

	if !p.ctx.WaitFor(func(rw registers.RW) bool {
		return rw.Read(registers.RAMPacketStatus)&slot.bit() == slot.bit()
	}, PollTimeout) {
		return curated.Errorf(BusyTimeout, slot, "start")
	}

	return nil
}

// packWord returns word w of the slot. even words hold three bytes and odd
// words hold four bytes, so each pair of words holds seven bytes.
func packWord(frame []byte, w int) uint32 {
	i := (w / 2) * 7
	n := 3
	if w%2 == 1 {
		i += 3
		n = 4
	}

	var v uint32
	for b := 0; b < n; b++ {
		if i+b < len(frame) {
			v |= uint32(frame[i+b]) << (8 * b)
		}
	}
	return v
}

// DisableAll turns off the packet RAM and every slot.
func (p *Packer) DisableAll() {
	p.ctx.Write(registers.RAMPacketConfig, 0)

	p.crit.Lock()
	defer p.crit.Unlock()
	for _, s := range Slots {
		p.state[s] = Disabled
	}
	p.ramEnabled = false
}
