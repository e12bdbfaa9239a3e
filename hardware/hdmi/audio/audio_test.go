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

package audio_test

import (
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/audio"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/simulated"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/logger"
	"github.com/jetsetilly/hdmicore/test"
)

func TestClockRecovery(t *testing.T) {
	n, cts := audio.ClockRecovery(148500000, 48000)
	test.ExpectEquality(t, n, uint32(6144))
	test.ExpectEquality(t, cts, uint32(148500))

	n, cts = audio.ClockRecovery(148500000, 44100)
	test.ExpectEquality(t, n, uint32(5644))
	test.ExpectEquality(t, cts, uint32(148478))

	n, cts = audio.ClockRecovery(594000000, 192000)
	test.ExpectEquality(t, n, uint32(24576))
	test.ExpectEquality(t, cts, uint32(594000))

	// CTS is within truncation of the exact value for every combination
	for _, clk := range []uint64{25175000, 27000000, 74250000, 148500000, 297000000, 594000000} {
		for _, fs := range []int{32000, 44100, 48000, 88200, 96000, 176400, 192000} {
			n, cts := audio.ClockRecovery(clk, fs)
			exact := clk * uint64(n)
			approx := uint64(cts) * uint64(128*fs)
			test.ExpectSuccess(t, approx <= exact, clk, fs)
			test.ExpectSuccess(t, exact-approx < uint64(128*fs), clk, fs)
		}
	}
}

func TestMAIDivider(t *testing.T) {
	n, m := audio.MAIDivider(216000000, 48000)
	test.ExpectEquality(t, n, uint32(4500))
	test.ExpectEquality(t, m, uint32(1))

	n, m = audio.MAIDivider(216000000, 44100)
	test.ExpectEquality(t, n, uint32(240000))
	test.ExpectEquality(t, m, uint32(49))

	n, m = audio.MAIDivider(216000000, 192000)
	test.ExpectEquality(t, n, uint32(1125))
	test.ExpectEquality(t, m, uint32(1))

	// the divider always fits in the register fields
	for _, hz := range []uint64{120000000, 163682864, 216000000, 297000000} {
		for _, fs := range []int{8000, 11025, 44100, 48000, 176400} {
			n, m := audio.MAIDivider(hz, fs)
			test.ExpectSuccess(t, n <= registers.MAISmpN.Max(), hz, fs)
			test.ExpectSuccess(t, m >= 1 && m <= registers.MAISmpM.Max()+1, hz, fs)
			test.ExpectApproximate(t, float64(n)/float64(m), float64(hz)/float64(fs), 0.0001, hz, fs)
		}
	}
}

func TestSampleRateCode(t *testing.T) {
	test.ExpectEquality(t, audio.SampleRateCode(8000), uint32(1))
	test.ExpectEquality(t, audio.SampleRateCode(48000), uint32(9))
	test.ExpectEquality(t, audio.SampleRateCode(192000), uint32(15))
	test.ExpectEquality(t, audio.SampleRateCode(22000), uint32(0))
}

func TestChannelMask(t *testing.T) {
	test.ExpectEquality(t, audio.ChannelMask(1), uint32(0x01))
	test.ExpectEquality(t, audio.ChannelMask(2), uint32(0x03))
	test.ExpectEquality(t, audio.ChannelMask(8), uint32(0xff))
}

type rig struct {
	blk    *simulated.Block
	ctx    *registers.Context
	packer *infoframe.Packer
	cfgr   *audio.Configurer
}

func newRig(v variant.Variant) *rig {
	r := &rig{
		blk: simulated.NewBlock(),
	}
	r.ctx = registers.NewContext(r.blk, registers.NewFakeClock())
	r.packer = infoframe.NewPacker(r.ctx)
	hsm := clocks.NewSimulated("hsm", 216000000, nil)
	r.cfgr = audio.NewConfigurer(r.ctx, v, hsm, r.packer, logger.Deny)
	return r
}

var (
	stereo = audio.Params{Format: &goaudio.Format{NumChannels: 2, SampleRate: 48000}, SampleWidth: 16}
	hdmi   = audio.Link{IsHDMI: true, PixelClockHz: 148500000}
)

func TestNotStreaming(t *testing.T) {
	r := newRig(variant.HDMI0)

	err := r.cfgr.Startup(false)
	test.ExpectSuccess(t, curated.Is(err, audio.NotStreaming))
	test.ExpectFailure(t, r.cfgr.Streaming())

	err = r.cfgr.Prepare(stereo, audio.Link{PixelClockHz: 148500000})
	test.ExpectSuccess(t, curated.Is(err, audio.NotStreaming))

	// no register is touched
	test.ExpectEquality(t, len(r.blk.File.Journal()), 0)
}

func TestInvalidParams(t *testing.T) {
	r := newRig(variant.HDMI0)

	err := r.cfgr.Prepare(audio.Params{}, hdmi)
	test.ExpectSuccess(t, curated.Is(err, audio.InvalidParams))

	p := audio.Params{Format: &goaudio.Format{NumChannels: 9, SampleRate: 48000}}
	err = r.cfgr.Prepare(p, hdmi)
	test.ExpectSuccess(t, curated.Is(err, audio.InvalidParams))
}

func TestStartup(t *testing.T) {
	r := newRig(variant.HDMI0)
	r.variantRngOff()

	test.DemandSuccess(t, r.cfgr.Startup(true))
	test.ExpectSuccess(t, r.cfgr.Streaming())

	ctl := r.blk.Read(registers.MAICtl)
	test.ExpectEquality(t, ctl&registers.MAICtlReset, registers.MAICtlReset)
	test.ExpectEquality(t, ctl&registers.MAICtlFlush, registers.MAICtlFlush)

	// the PHY RNG is powered
	test.ExpectEquality(t, r.blk.Read(registers.TXPhyPowerdownCtl)&registers.ExtPhyRngPowerdown, uint32(0))
}

func (r *rig) variantRngOff() {
	r.blk.File.Poke(registers.TXPhyPowerdownCtl, registers.ExtPhyRngPowerdown)
}

func TestPrepare(t *testing.T) {
	r := newRig(variant.HDMI0)

	test.DemandSuccess(t, r.cfgr.Startup(true))
	test.DemandSuccess(t, r.cfgr.Prepare(stereo, hdmi))

	smp := r.blk.Read(registers.MAISmp)
	test.ExpectEquality(t, registers.MAISmpN.Get(smp), uint32(4500))
	test.ExpectEquality(t, registers.MAISmpM.Get(smp), uint32(0))

	ctl := r.blk.Read(registers.MAICtl)
	test.ExpectEquality(t, registers.MAICtlChNum.Get(ctl), uint32(2))
	test.ExpectEquality(t, ctl&registers.MAICtlEnable, registers.MAICtlEnable)
	test.ExpectEquality(t, ctl&registers.MAICtlWholSmp, registers.MAICtlWholSmp)

	fmt := r.blk.Read(registers.MAIFmt)
	test.ExpectEquality(t, registers.MAIFmtSampleRate.Get(fmt), uint32(9))
	test.ExpectEquality(t, registers.MAIFmtAudioFmt.Get(fmt), registers.MAIFormatPCM)

	test.ExpectEquality(t, registers.CRPCfgN.Get(r.blk.Read(registers.CRPCfg)), uint32(6144))
	test.ExpectEquality(t, r.blk.Read(registers.CTS0), uint32(148500))
	test.ExpectEquality(t, r.blk.Read(registers.CTS1), uint32(148500))

	test.ExpectEquality(t, r.blk.Read(registers.MAIChannelMap), variant.HDMI0.ChannelMap(0x03))
	test.ExpectEquality(t, registers.AudioPacketCEAMask.Get(r.blk.Read(registers.AudioPacketConfig)), uint32(0x03))
	test.ExpectEquality(t, registers.MAIConfigChannelMask.Get(r.blk.Read(registers.MAIConfig)), uint32(0x03))

	test.ExpectEquality(t, r.cfgr.Params().SampleRate, 48000)

	// the packet RAM is not enabled so the infoframe is not written
	test.ExpectEquality(t, r.packer.State(infoframe.Audio), infoframe.Disabled)
}

func TestPrepareLegacyChannelMap(t *testing.T) {
	r := newRig(variant.BCM2835)

	p := audio.Params{Format: &goaudio.Format{NumChannels: 8, SampleRate: 96000}, SampleWidth: 24}
	test.DemandSuccess(t, r.cfgr.Startup(true))
	test.DemandSuccess(t, r.cfgr.Prepare(p, hdmi))
	test.ExpectEquality(t, r.blk.Read(registers.MAIChannelMap), uint32(0xfac688))
	test.ExpectEquality(t, registers.MAIFmtAudioFmt.Get(r.blk.Read(registers.MAIFmt)), registers.MAIFormatPCM)
}

func TestPrepareHBR(t *testing.T) {
	r := newRig(variant.HDMI0)

	p := audio.Params{Format: &goaudio.Format{NumChannels: 8, SampleRate: 192000}, NonAudio: true}
	test.ExpectSuccess(t, p.HBR())
	test.DemandSuccess(t, r.cfgr.Startup(true))
	test.DemandSuccess(t, r.cfgr.Prepare(p, hdmi))
	test.ExpectEquality(t, registers.MAIFmtAudioFmt.Get(r.blk.Read(registers.MAIFmt)), registers.MAIFormatHBR)

	// compressed stereo is not HBR
	p.NumChannels = 2
	test.ExpectFailure(t, p.HBR())
}

func TestPrepareInfoframe(t *testing.T) {
	r := newRig(variant.HDMI0)
	r.packer.EnableRAM()

	test.DemandSuccess(t, r.cfgr.Startup(true))
	test.DemandSuccess(t, r.cfgr.Prepare(stereo, hdmi))
	test.ExpectEquality(t, r.packer.State(infoframe.Audio), infoframe.Enabled)

	// first word of the audio slot is the header
	w := r.blk.Read(registers.RAMPacketStart.Offset(infoframe.Audio.PacketID() * infoframe.Stride / 4))
	test.ExpectEquality(t, w, uint32(0x0a0184))
}

func TestShutdown(t *testing.T) {
	r := newRig(variant.HDMI0)
	r.packer.EnableRAM()

	test.DemandSuccess(t, r.cfgr.Startup(true))
	test.DemandSuccess(t, r.cfgr.Prepare(stereo, hdmi))

	r.cfgr.Shutdown()
	test.ExpectFailure(t, r.cfgr.Streaming())
	test.ExpectEquality(t, r.packer.State(infoframe.Audio), infoframe.Disabled)
	test.ExpectEquality(t, r.blk.Read(registers.MAICtl), registers.MAICtlFlush)
	test.ExpectEquality(t, r.blk.Read(registers.TXPhyPowerdownCtl)&registers.ExtPhyRngPowerdown, registers.ExtPhyRngPowerdown)

	// the infoframe is not rewritten once the stream has stopped
	r.cfgr.WriteInfoframe()
	test.ExpectEquality(t, r.packer.State(infoframe.Audio), infoframe.Disabled)
}
