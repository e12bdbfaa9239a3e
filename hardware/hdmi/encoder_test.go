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

package hdmi_test

import (
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/environment"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/audio"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/negotiate"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/power"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/scrambling"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/simulated"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/hardware/sink"
	"github.com/jetsetilly/hdmicore/test"
)

type rig struct {
	env *environment.Environment
	blk *simulated.Block
	st  *clocks.SimulatedTree
	snk *sink.Sink
	enc *hdmi.Encoder
}

func newRig(t *testing.T, v variant.Variant, preset string) *rig {
	t.Helper()

	// environments other than the main encoder do not log
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)

	snk, err := sink.Preset(preset)
	test.DemandSuccess(t, err)

	r := &rig{
		env: env,
		blk: simulated.NewBlock(),
		st:  clocks.NewSimulatedTree(v.HasBVBClock(), 216000000),
		snk: snk,
	}
	r.blk.SetConnected(true)

	ctx := registers.NewContext(r.blk, registers.NewFakeClock())
	r.enc = hdmi.NewEncoder(env, ctx, v, r.st.Tree, snk, r.blk)
	r.enc.Scrambler().Interval = time.Millisecond

	return r
}

func (r *rig) modeSet(t *testing.T, name string) hdmi.State {
	t.Helper()
	mode, err := display.ModeByName(name)
	test.DemandSuccess(t, err)
	st, err := r.enc.AtomicCheck(mode)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, r.enc.ModeSet(st))
	return st
}

func packetWord(slot infoframe.Slot, w int) registers.Register {
	return registers.RAMPacketStart.Offset(slot.PacketID()*infoframe.Stride/4 + w)
}

func TestEnable(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	st := r.modeSet(t, "1080p60")

	test.ExpectEquality(t, st.Config.BPC, 12)
	test.ExpectEquality(t, st.Config.Format, display.RGB)
	test.ExpectEquality(t, st.Config.PixelClockHz, uint64(222750000))
	test.ExpectSuccess(t, st.ModeChanged)

	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectSuccess(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Domain().References(), 1)
	test.ExpectEquality(t, r.st.Pixel.Rate(), uint64(222750000))
	test.ExpectEquality(t, r.st.Pixel.Enabled(), 1)

	vid := r.blk.Read(registers.VidCtl)
	test.ExpectEquality(t, vid&registers.VidCtlEnable, registers.VidCtlEnable)
	test.ExpectEquality(t, vid&registers.VidCtlBlankPix, uint32(0))

	sched := r.blk.Read(registers.SchedulerControl)
	test.ExpectEquality(t, sched&registers.SchedulerHDMIActive, registers.SchedulerHDMIActive)

	p := r.enc.Packer()
	test.ExpectSuccess(t, p.RAMEnabled())
	test.ExpectEquality(t, p.State(infoframe.AVI), infoframe.Enabled)
	test.ExpectEquality(t, p.State(infoframe.SPD), infoframe.Enabled)
	test.ExpectEquality(t, p.State(infoframe.Audio), infoframe.Disabled)
	test.ExpectEquality(t, p.State(infoframe.HDR), infoframe.Disabled)

	// type, version and length of the AVI infoframe
	test.ExpectEquality(t, r.blk.Read(packetWord(infoframe.AVI, 0)), uint32(0x0d0282))

	// below the HDMI 1.4 limit
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.Off)

	// the same mode again does not need a full mode set
	mode, _ := display.ModeByName("1080p60")
	st, err := r.enc.AtomicCheck(mode)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, st.ModeChanged)
}

func TestDisable(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "1080p60")
	test.DemandSuccess(t, r.enc.Enable())

	r.enc.Disable()
	test.ExpectFailure(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Domain().References(), 0)
	test.ExpectEquality(t, r.st.Pixel.Enabled(), 0)
	test.ExpectEquality(t, r.st.BVB.Enabled(), 0)
	test.ExpectEquality(t, r.st.HSM.Enabled(), 0)

	vid := r.blk.Read(registers.VidCtl)
	test.ExpectEquality(t, vid&registers.VidCtlEnable, uint32(0))
	test.ExpectEquality(t, vid&registers.VidCtlBlankPix, registers.VidCtlBlankPix)
	test.ExpectEquality(t, r.blk.Read(registers.RAMPacketConfig), uint32(0))

	for _, s := range infoframe.Slots {
		test.ExpectEquality(t, r.enc.Packer().State(s), infoframe.Disabled, s)
	}

	// a second disable does nothing
	r.blk.File.ClearJournal()
	r.enc.Disable()
	test.ExpectEquality(t, len(r.blk.File.Journal()), 0)

	// enable again after disable
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectSuccess(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Domain().References(), 1)
}

func TestDVI(t *testing.T) {
	r := newRig(t, variant.HDMI0, "dvi")
	st := r.modeSet(t, "1080p60")
	test.ExpectEquality(t, st.Config.BPC, 8)

	test.DemandSuccess(t, r.enc.Enable())

	sched := r.blk.Read(registers.SchedulerControl)
	test.ExpectEquality(t, sched&registers.SchedulerModeHDMI, uint32(0))
	test.ExpectFailure(t, r.enc.Packer().RAMEnabled())
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.AVI), infoframe.Disabled)

	err := r.enc.AudioStartup()
	test.ExpectSuccess(t, curated.Is(err, audio.NotStreaming))
	test.ExpectFailure(t, r.enc.AudioStreaming())
}

func TestNoMode(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	err := r.enc.Enable()
	test.ExpectSuccess(t, curated.Is(err, hdmi.NoMode))
	test.ExpectEquality(t, r.enc.Domain().References(), 0)

	err = r.enc.ModeSet(hdmi.State{})
	test.ExpectSuccess(t, curated.Is(err, hdmi.NoMode))
}

func TestNoValidConfig(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi-8bit")
	mode, err := display.ModeByName("2160p60")
	test.DemandSuccess(t, err)

	_, err = r.enc.AtomicCheck(mode)
	test.ExpectSuccess(t, curated.Is(err, negotiate.NoValidConfig))
	test.ExpectFailure(t, r.enc.ModeValid(mode) == nil)

	// nothing was committed
	_, cfg := r.enc.Config()
	test.ExpectFailure(t, cfg.Valid())
}

func TestEnableUnwind(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "1080p60")

	r.st.BVB.Fail(clocks.OpEnable, true)
	err := r.enc.Enable()
	test.ExpectSuccess(t, curated.Is(err, power.ClockSetFailure))
	test.ExpectFailure(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Domain().References(), 0)
	test.ExpectEquality(t, r.st.Pixel.Enabled(), 0)
	test.ExpectEquality(t, r.st.HSM.Enabled(), 0)

	// timings are not programmed without power
	test.ExpectEquality(t, r.blk.Read(registers.VidCtl)&registers.VidCtlEnable, uint32(0))

	r.st.BVB.Fail(clocks.OpEnable, false)
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectSuccess(t, r.enc.Enabled())
}

func TestEnableTimeouts(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "1080p60")

	// timeouts after power is established are not fatal
	r.blk.Stall(simulated.HDMIActive, true)
	r.blk.Stall(simulated.Recenter, true)
	r.blk.Stall(simulated.PacketStatus, true)

	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectSuccess(t, r.enc.Enabled())
	test.ExpectSuccess(t, r.enc.Packer().RAMEnabled())
}

func TestScrambling(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	st := r.modeSet(t, "2160p60")
	test.ExpectEquality(t, st.Config.PixelClockHz, uint64(594000000))

	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.On)
	test.ExpectSuccess(t, r.snk.Scrambling())
	test.ExpectSuccess(t, r.snk.HighTMDSClockRatio())

	deadline := time.Now().Add(time.Second)
	for r.enc.Scrambler().Checks() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectInequality(t, r.enc.Scrambler().Checks(), 0)

	r.enc.Disable()
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.Off)
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 0)
	test.ExpectFailure(t, r.snk.Scrambling())
	test.ExpectFailure(t, r.snk.HighTMDSClockRatio())
	test.ExpectEquality(t, r.blk.Read(registers.ScramblerCtl)&registers.ScramblerEnable, uint32(0))
}

func TestDetect(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi14")

	connected, err := r.enc.Detect()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, connected)
	test.ExpectSuccess(t, r.enc.Connected())

	// the power domain is only held for the duration of the detection
	test.ExpectEquality(t, r.enc.Domain().References(), 0)

	// new capabilities are picked up on the next detection
	caps := r.snk.Capabilities()
	caps.MaxTMDSClock = 165000
	r.snk.SetCapabilities(caps)
	_, err = r.enc.Detect()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.enc.Capabilities().MaxTMDSClock, 165000)

	r.blk.SetConnected(false)
	connected, err = r.enc.Detect()
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, connected)
	test.ExpectFailure(t, r.enc.Connected())
}

func TestDetectLegacy(t *testing.T) {
	r := newRig(t, variant.BCM2835, "hdmi14")

	// the legacy block has no hotplug register and uses the GPIO
	r.blk.File.Poke(registers.Hotplug, 0)

	connected, err := r.enc.Detect()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, connected)

	r.blk.SetConnected(false)
	test.ExpectFailure(t, r.enc.Connected())
}

func TestDetectRepairsScrambling(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "2160p60")

	// checks are only made by Detect() for the duration of the test
	r.enc.Scrambler().Interval = time.Hour
	test.DemandSuccess(t, r.enc.Enable())

	r.snk.LoseScrambling()
	test.ExpectFailure(t, r.snk.ScramblingStatus())

	_, err := r.enc.Detect()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.snk.ScramblingStatus())
	test.ExpectSuccess(t, r.snk.HighTMDSClockRatio())
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 1)

	r.enc.Disable()
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 0)
}

func TestReenableWithoutScrambling(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "2160p60")
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.On)

	// enabling a mode below the HDMI 1.4 limit turns scrambling off
	r.modeSet(t, "1080p60")
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectSuccess(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.Off)
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 0)
	test.ExpectFailure(t, r.snk.Scrambling())
	test.ExpectFailure(t, r.snk.HighTMDSClockRatio())
	test.ExpectEquality(t, r.blk.Read(registers.ScramblerCtl)&registers.ScramblerEnable, uint32(0))

	// the block was powered down and up again rather than twice
	test.ExpectEquality(t, r.enc.Domain().References(), 1)
	test.ExpectEquality(t, r.st.Pixel.Enabled(), 1)
	test.ExpectEquality(t, r.st.Pixel.Rate(), uint64(222750000))

	r.enc.Disable()
	test.ExpectFailure(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Domain().References(), 0)
}

func TestReenableFailure(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "2160p60")
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 1)

	r.st.Pixel.Fail(clocks.OpEnable, true)
	err := r.enc.Enable()
	test.ExpectSuccess(t, curated.Is(err, power.ClockSetFailure))

	// the failed enable leaves nothing running
	test.ExpectFailure(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.Off)
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 0)
	test.ExpectFailure(t, r.snk.Scrambling())
	test.ExpectEquality(t, r.enc.Domain().References(), 0)

	r.enc.Disable()
	test.ExpectFailure(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 0)
	test.ExpectFailure(t, r.snk.Scrambling())

	r.st.Pixel.Fail(clocks.OpEnable, false)
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 1)
	r.enc.Disable()
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 0)
}

func TestDetectStopsScrambling(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "2160p60")
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.On)

	// sink has been switched to a DVI input
	caps := r.snk.Capabilities()
	caps.IsHDMI = false
	r.snk.SetCapabilities(caps)

	_, err := r.enc.Detect()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.enc.Enabled())
	test.ExpectEquality(t, r.enc.Scrambler().State(), scrambling.Off)
	test.ExpectEquality(t, r.enc.Scrambler().Pending(), 0)
	test.ExpectFailure(t, r.snk.Scrambling())

	r.enc.Disable()
	test.ExpectFailure(t, r.enc.Enabled())
}

func TestAudio(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "1080p60")

	params := audio.Params{
		Format:      &goaudio.Format{NumChannels: 2, SampleRate: 48000},
		SampleWidth: 16,
	}

	// the stream can be prepared before video is enabled but the infoframe
	// is not written until the packet RAM is enabled
	test.DemandSuccess(t, r.enc.AudioStartup())
	test.DemandSuccess(t, r.enc.AudioPrepare(params))
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.Audio), infoframe.Disabled)

	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.Audio), infoframe.Enabled)

	// clock recovery values are for the pixel clock of the mode and not the
	// TMDS character rate
	test.ExpectEquality(t, registers.CRPCfgN.Get(r.blk.Read(registers.CRPCfg)), uint32(6144))
	test.ExpectEquality(t, r.blk.Read(registers.CTS0), uint32(148500))

	r.enc.AudioShutdown()
	test.ExpectFailure(t, r.enc.AudioStreaming())
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.Audio), infoframe.Disabled)

	// other infoframes are not affected
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.AVI), infoframe.Enabled)
}

func TestHDR(t *testing.T) {
	md := &infoframe.HDRMetadata{EOTF: 2, MaxCLL: 1000, MaxFALL: 400}

	r := newRig(t, variant.HDMI0, "hdmi20")
	r.modeSet(t, "1080p60")
	r.enc.SetHDRMetadata(md)
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.HDR), infoframe.Enabled)

	r.enc.SetHDRMetadata(nil)
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.HDR), infoframe.Disabled)

	r.enc.SetHDRMetadata(md)
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.HDR), infoframe.Enabled)

	// the legacy block does not send HDR metadata
	r = newRig(t, variant.BCM2835, "hdmi20")
	r.modeSet(t, "1080p60")
	r.enc.SetHDRMetadata(md)
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.AVI), infoframe.Enabled)
	test.ExpectEquality(t, r.enc.Packer().State(infoframe.HDR), infoframe.Disabled)
}

func TestCECEnable(t *testing.T) {
	r := newRig(t, variant.BCM2835, "hdmi14")

	test.DemandSuccess(t, r.enc.CECEnable(true))
	test.ExpectSuccess(t, r.enc.CECEnabled())
	test.ExpectEquality(t, r.enc.Domain().References(), 1)

	cntrl := r.blk.Read(registers.CECCntrl5)
	test.ExpectEquality(t, registers.CECCntTo4700.Get(cntrl), uint32(188))
	test.ExpectEquality(t, registers.CECCntTo4500.Get(cntrl), uint32(180))
	test.ExpectEquality(t, cntrl&(registers.CECTxSWReset|registers.CECRxSWReset), uint32(0))
	test.ExpectEquality(t, r.blk.Read(registers.CECCPUMaskClear), registers.CPUCEC)

	// enabling twice does not take a second reference
	test.DemandSuccess(t, r.enc.CECEnable(true))
	test.ExpectEquality(t, r.enc.Domain().References(), 1)

	test.DemandSuccess(t, r.enc.CECEnable(false))
	test.ExpectFailure(t, r.enc.CECEnabled())
	test.ExpectEquality(t, r.enc.Domain().References(), 0)

	cntrl = r.blk.Read(registers.CECCntrl5)
	test.ExpectEquality(t, cntrl&(registers.CECTxSWReset|registers.CECRxSWReset), registers.CECTxSWReset|registers.CECRxSWReset)
	test.ExpectEquality(t, r.blk.Read(registers.CECCPUMaskSet), registers.CPUCEC)
}

func TestCECEnableExternalIRQ(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")

	test.DemandSuccess(t, r.enc.CECEnable(true))
	test.ExpectEquality(t, r.blk.Read(registers.CECCPUMaskClear), uint32(0))

	// the CEC adapter keeps the block powered across a mode set
	r.modeSet(t, "1080p60")
	test.DemandSuccess(t, r.enc.Enable())
	test.ExpectEquality(t, r.enc.Domain().References(), 2)
	r.enc.Disable()
	test.ExpectEquality(t, r.enc.Domain().References(), 1)

	test.DemandSuccess(t, r.enc.CECEnable(false))
	test.ExpectEquality(t, r.enc.Domain().References(), 0)
}

func TestModes(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")

	var modes []display.Mode
	for _, c := range display.CEAModes() {
		modes = append(modes, c.Mode)
	}

	has := func(l []display.Mode, name string) bool {
		for _, m := range l {
			if m.Name == name {
				return true
			}
		}
		return false
	}

	test.ExpectSuccess(t, has(r.enc.Modes(modes), "2160p60"))
	test.ExpectSuccess(t, has(r.enc.Modes(modes), "1080p60"))

	test.DemandSuccess(t, r.env.Prefs.Set("hdmi.disable_4k60", true))
	test.ExpectFailure(t, has(r.enc.Modes(modes), "2160p60"))
	test.ExpectSuccess(t, has(r.enc.Modes(modes), "2160p30"))
	test.ExpectSuccess(t, has(r.enc.Modes(modes), "1080p60"))
}

func TestWifiFixup(t *testing.T) {
	r := newRig(t, variant.HDMI0, "hdmi20")
	test.DemandSuccess(t, r.env.Prefs.Set("hdmi.disable_wifi_frequencies", true))

	mode, err := display.ModeByName("2560x1440p60")
	test.DemandSuccess(t, err)
	st, err := r.enc.AtomicCheck(mode)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, st.Mode.Clock, negotiate.WifiClock)
	test.ExpectSuccess(t, st.ModeChanged)

	// the requested mode is not changed
	test.ExpectEquality(t, mode.Clock, 241500)
}
