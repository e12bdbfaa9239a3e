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

package registers_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/test"
)

func TestField(t *testing.T) {
	f := registers.NewField(12, 0)
	test.ExpectEquality(t, f.Mask, uint32(0x1fff))
	test.ExpectEquality(t, f.Width(), 13)
	test.ExpectEquality(t, f.Set(1920), uint32(1920))
	test.ExpectEquality(t, f.Get(0xffff0000|1920), uint32(1920))

	f = registers.NewField(29, 20)
	test.ExpectEquality(t, f.Mask, uint32(0x3ff00000))
	test.ExpectEquality(t, f.Set(148), uint32(148)<<20)
	test.ExpectEquality(t, f.Get(f.Set(148)), uint32(148))
	test.ExpectEquality(t, f.Max(), uint32(1023))

	// values too large for the field are truncated
	test.ExpectEquality(t, f.Get(f.Set(1024)), uint32(0))

	f = registers.NewField(31, 8)
	test.ExpectEquality(t, f.Mask, uint32(0xffffff00))
	test.ExpectEquality(t, f.Get(f.Set(4500)), uint32(4500))
}

func TestOffset(t *testing.T) {
	test.ExpectEquality(t, registers.RAMPacketStart.Offset(9), registers.Register("HDMI_RAM_PACKET_START+0x24"))
	test.ExpectInequality(t, registers.RAMPacketStart.Offset(0), registers.RAMPacketStart.Offset(1))
}

func TestContext(t *testing.T) {
	f := registers.NewFile()
	ctx := registers.NewContext(f, registers.NewFakeClock())

	ctx.Write(registers.VidCtl, 0x0f)
	ctx.Modify(registers.VidCtl, 0x03, 0x30)
	test.ExpectEquality(t, ctx.Read(registers.VidCtl), uint32(0x3c))

	ctx.Locked(func(rw registers.RW) {
		rw.Write(registers.HorzA, 1)
		rw.Modify(registers.HorzA, 0, 2)
	})
	test.ExpectEquality(t, ctx.Read(registers.HorzA), uint32(3))

	j := f.Journal()
	test.DemandEquality(t, len(j), 4)
	test.ExpectEquality(t, j[0].Register, registers.VidCtl)
	test.ExpectEquality(t, j[1].Value, uint32(0x3c))
	test.ExpectEquality(t, j[3].Register, registers.HorzA)

	f.ClearJournal()
	test.ExpectEquality(t, len(f.Journal()), 0)
}

func TestWaitFor(t *testing.T) {
	f := registers.NewFile()
	clk := registers.NewFakeClock()
	ctx := registers.NewContext(f, clk)

	// condition never met
	ok := ctx.WaitFor(func(rw registers.RW) bool {
		return rw.Read(registers.RAMPacketStatus)&registers.Bit(2) != 0
	}, 100*time.Millisecond)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, clk.Slept(), 100*time.Millisecond)

	// condition met immediately. no sleeping
	f.Poke(registers.RAMPacketStatus, registers.Bit(2))
	ok = ctx.WaitFor(func(rw registers.RW) bool {
		return rw.Read(registers.RAMPacketStatus)&registers.Bit(2) != 0
	}, 100*time.Millisecond)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, clk.Slept(), 100*time.Millisecond)

	// condition met after a number of polls
	n := 0
	ok = ctx.WaitFor(func(rw registers.RW) bool {
		n++
		return n == 5
	}, 100*time.Millisecond)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, clk.Slept(), 104*time.Millisecond)
}

func TestHooks(t *testing.T) {
	f := registers.NewFile()
	f.AddHook(registers.FIFOCtl, func(s registers.Store, v uint32) {
		if v&registers.FIFOCtlRecenter != 0 {
			s.Poke(registers.FIFOCtl, v|registers.FIFOCtlRecenterDone)
		}
	})

	f.Write(registers.FIFOCtl, registers.FIFOCtlRecenter)
	test.ExpectEquality(t, f.Read(registers.FIFOCtl), registers.FIFOCtlRecenter|registers.FIFOCtlRecenterDone)

	// poke does not journal
	f.Poke(registers.Hotplug, 1)
	test.ExpectEquality(t, len(f.Journal()), 1)
}

func TestDump(t *testing.T) {
	f := registers.NewFile()
	f.Write(registers.VidCtl, 0x80000000)
	f.Write(registers.HorzA, 0x780)

	w := &strings.Builder{}
	f.Dump(w)
	test.ExpectEquality(t, w.String(),
		"HDMI_HORZA                       00000780\n"+
			"HDMI_VID_CTL                     80000000\n")
}
