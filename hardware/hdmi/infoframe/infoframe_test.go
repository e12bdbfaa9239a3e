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

package infoframe_test

import (
	"testing"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/simulated"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/test"
)

func newPacker() (*infoframe.Packer, *simulated.Block, *registers.FakeClock) {
	blk := simulated.NewBlock()
	clk := registers.NewFakeClock()
	return infoframe.NewPacker(registers.NewContext(blk, clk)), blk, clk
}

func slotWord(slot infoframe.Slot, w int) registers.Register {
	return registers.RAMPacketStart.Offset(slot.PacketID()*infoframe.Stride/4 + w)
}

func TestSlot(t *testing.T) {
	test.ExpectEquality(t, infoframe.AVI.PacketID(), 2)
	test.ExpectEquality(t, infoframe.SPD.PacketID(), 3)
	test.ExpectEquality(t, infoframe.Audio.PacketID(), 4)
	test.ExpectEquality(t, infoframe.HDR.PacketID(), 7)
	test.ExpectEquality(t, infoframe.Audio.String(), "audio")
	test.ExpectEquality(t, infoframe.MaxFrameSize, 31)
}

func TestWrite(t *testing.T) {
	p, blk, _ := newPacker()

	frame := make([]byte, 17)
	for i := range frame {
		frame[i] = uint8(i + 1)
	}

	test.ExpectEquality(t, p.State(infoframe.AVI), infoframe.Disabled)
	test.DemandSuccess(t, p.Write(infoframe.AVI, frame))
	test.ExpectEquality(t, p.State(infoframe.AVI), infoframe.Enabled)

	// three bytes then four bytes in each pair of words
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.AVI, 0)), uint32(0x030201))
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.AVI, 1)), uint32(0x07060504))
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.AVI, 2)), uint32(0x0a0908))
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.AVI, 3)), uint32(0x0e0d0c0b))
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.AVI, 4)), uint32(0x11100f))
	for w := 5; w < 9; w++ {
		test.ExpectEquality(t, blk.Read(slotWord(infoframe.AVI, w)), uint32(0), w)
	}

	bit := registers.Bit(infoframe.AVI.PacketID())
	test.ExpectEquality(t, blk.Read(registers.RAMPacketConfig)&bit, bit)
	test.ExpectEquality(t, blk.Read(registers.RAMPacketStatus)&bit, bit)
}

func TestWriteZeroesSlot(t *testing.T) {
	p, blk, _ := newPacker()

	long := make([]byte, infoframe.MaxFrameSize)
	for i := range long {
		long[i] = 0xff
	}
	test.DemandSuccess(t, p.Write(infoframe.SPD, long))
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.SPD, 8)), uint32(0xffffff))

	// a shorter frame must not leave any of the previous frame behind
	test.DemandSuccess(t, p.Write(infoframe.SPD, []byte{0x83, 0x01, 0x00, 0x7c}))
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.SPD, 1)), uint32(0x7c))
	for w := 2; w < 9; w++ {
		test.ExpectEquality(t, blk.Read(slotWord(infoframe.SPD, w)), uint32(0), w)
	}
}

func TestWriteStaysInSlot(t *testing.T) {
	p, blk, _ := newPacker()

	test.DemandSuccess(t, p.Write(infoframe.SPD, infoframe.NewSPD("Broadcom", "Videocore")))

	next := slotWord(infoframe.Audio, 0)
	for _, a := range blk.File.Journal() {
		test.ExpectInequality(t, a.Register, next)
	}

	// the source device byte is the last byte of the SPD frame
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.SPD, 8)), uint32(infoframe.SourcePC))
}

func TestWriteErrors(t *testing.T) {
	p, _, _ := newPacker()

	err := p.Write(infoframe.AVI, make([]byte, infoframe.MaxFrameSize+1))
	test.ExpectSuccess(t, curated.Is(err, infoframe.FrameTooLarge))

	err = p.Write(infoframe.Slot(0x85), []byte{0x85})
	test.ExpectSuccess(t, curated.Is(err, infoframe.UnknownSlot))

	err = p.Stop(infoframe.Slot(0x01), false)
	test.ExpectSuccess(t, curated.Is(err, infoframe.UnknownSlot))
}

func TestStopTimeout(t *testing.T) {
	p, blk, clk := newPacker()

	test.DemandSuccess(t, p.Write(infoframe.AVI, infoframe.NewAudio(2)))
	before := clk.Slept()

	// the packet status bit will not clear
	blk.Stall(simulated.PacketStatus, true)
	err := p.Stop(infoframe.AVI, true)
	test.ExpectSuccess(t, curated.Is(err, infoframe.BusyTimeout))
	test.ExpectEquality(t, clk.Slept()-before, infoframe.PollTimeout)
	test.ExpectEquality(t, p.State(infoframe.AVI), infoframe.Disabled)

	// the frame is not written if the slot does not go idle
	blk.File.ClearJournal()
	err = p.Write(infoframe.AVI, infoframe.NewAudio(8))
	test.ExpectSuccess(t, curated.Is(err, infoframe.BusyTimeout))
	for _, a := range blk.File.Journal() {
		test.ExpectInequality(t, a.Register, slotWord(infoframe.AVI, 0))
	}

	// stopping without polling never times out
	test.ExpectSuccess(t, p.Stop(infoframe.AVI, false))
}

func TestStartTimeout(t *testing.T) {
	p, blk, clk := newPacker()

	// the status bit is never set so the slot goes idle immediately but
	// never starts
	blk.Stall(simulated.PacketStatus, true)

	err := p.Write(infoframe.HDR, infoframe.NewHDR(infoframe.HDRMetadata{EOTF: 2}))
	test.ExpectSuccess(t, curated.Is(err, infoframe.BusyTimeout))
	test.ExpectEquality(t, err.Error(), "infoframe: HDR packet did not start")
	test.ExpectEquality(t, clk.Slept(), infoframe.PollTimeout)

	// the frame was written and enabled regardless
	test.ExpectEquality(t, p.State(infoframe.HDR), infoframe.Enabled)
	test.ExpectEquality(t, blk.Read(slotWord(infoframe.HDR, 0)), uint32(0x1a0187))
}

func TestDisableAll(t *testing.T) {
	p, blk, _ := newPacker()

	p.EnableRAM()
	test.ExpectSuccess(t, p.RAMEnabled())
	test.ExpectEquality(t, blk.Read(registers.RAMPacketConfig), registers.RAMPacketEnable)

	test.DemandSuccess(t, p.Write(infoframe.AVI, infoframe.NewAudio(2)))
	test.DemandSuccess(t, p.Write(infoframe.Audio, infoframe.NewAudio(2)))

	p.DisableAll()
	test.ExpectFailure(t, p.RAMEnabled())
	test.ExpectEquality(t, blk.Read(registers.RAMPacketConfig), uint32(0))
	for _, s := range infoframe.Slots {
		test.ExpectEquality(t, p.State(s), infoframe.Disabled, s)
	}
}

func TestBuilders(t *testing.T) {
	mode, err := display.ModeByName("1080p60")
	test.DemandSuccess(t, err)
	vic := display.MatchCEA(mode)
	test.DemandEquality(t, vic, 16)

	rgb := display.OutputConfig{BPC: 12, Format: display.RGB, PixelClockHz: 222750000}
	yuv := display.OutputConfig{BPC: 12, Format: display.YUV422, PixelClockHz: 148500000}

	avi := infoframe.NewAVI(mode, rgb, false, vic)
	test.ExpectEquality(t, len(avi), 17)
	test.ExpectSuccess(t, infoframe.Checksum(avi))
	test.ExpectEquality(t, avi[0], uint8(0x82))
	test.ExpectEquality(t, avi[1], uint8(2))
	test.ExpectEquality(t, avi[2], uint8(13))
	test.ExpectEquality(t, avi[4], uint8(0x00))
	test.ExpectEquality(t, avi[5], uint8(0x28))
	test.ExpectEquality(t, avi[6], uint8(0x00))
	test.ExpectEquality(t, avi[7], uint8(16))

	// full range for a CEA mode is signalled
	avi = infoframe.NewAVI(mode, rgb, true, vic)
	test.ExpectSuccess(t, infoframe.Checksum(avi))
	test.ExpectEquality(t, avi[6], uint8(0x08))

	avi = infoframe.NewAVI(mode, yuv, false, vic)
	test.ExpectSuccess(t, infoframe.Checksum(avi))
	test.ExpectEquality(t, avi[4], uint8(0x20))
	test.ExpectEquality(t, avi[5], uint8(0xa8))

	// pixel repetition for double clocked modes
	mode, err = display.ModeByName("480i60")
	test.DemandSuccess(t, err)
	avi = infoframe.NewAVI(mode, rgb, false, display.MatchCEA(mode))
	test.ExpectEquality(t, avi[8], uint8(1))

	spd := infoframe.NewSPD("Broadcom", "Videocore")
	test.ExpectEquality(t, len(spd), 29)
	test.ExpectSuccess(t, infoframe.Checksum(spd))
	test.ExpectEquality(t, string(spd[4:12]), "Broadcom")
	test.ExpectEquality(t, string(spd[12:21]), "Videocore")

	aud := infoframe.NewAudio(8)
	test.ExpectEquality(t, len(aud), 14)
	test.ExpectSuccess(t, infoframe.Checksum(aud))
	test.ExpectEquality(t, aud[4], uint8(7))
	test.ExpectEquality(t, aud[7], uint8(0x13))

	hdr := infoframe.NewHDR(infoframe.HDRMetadata{EOTF: 2, MaxCLL: 1000})
	test.ExpectEquality(t, len(hdr), 30)
	test.ExpectSuccess(t, infoframe.Checksum(hdr))
	test.ExpectEquality(t, hdr[4], uint8(2))
	test.ExpectEquality(t, hdr[26], uint8(1000&0xff))
	test.ExpectEquality(t, hdr[27], uint8(1000>>8))
}
