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

package variant

import (
	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/colorspace"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/timing"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// MaxExtendedPixelClock is the fastest TMDS character rate of the bcm2711.
// Above the HDMI 1.4 rate the link must be scrambled.
const MaxExtendedPixelClock = 600000000

// Extended is the bcm2711 generation of the HDMI block. There are two
// instances of the block, which differ in their maximum rate and in the
// wiring of the PHY lanes.
type Extended struct {
	name          string
	compatible    string
	maxPixelClock uint64
	lanes         Lanes

	timing timing.Extended
	csc    colorspace.Extended
}

// The two instances of the extended HDMI block.
var (
	HDMI0 = &Extended{
		name:          "bcm2711-hdmi0",
		compatible:    "brcm,bcm2711-hdmi0",
		maxPixelClock: MaxExtendedPixelClock,
		lanes:         Lanes{Lane0, Lane1, Lane2, LaneClock},
	}

	HDMI1 = &Extended{
		name:          "bcm2711-hdmi1",
		compatible:    "brcm,bcm2711-hdmi1",
		maxPixelClock: clocks.HDMI14MaxTMDS,
		lanes:         Lanes{Lane1, Lane0, LaneClock, Lane2},
	}
)

// Name implements the Variant interface.
func (v *Extended) Name() string {
	return v.name
}

// Compatible implements the Variant interface.
func (v *Extended) Compatible() string {
	return v.compatible
}

// MaxPixelClock implements the Variant interface.
func (v *Extended) MaxPixelClock() uint64 {
	return v.maxPixelClock
}

// LaneMapping implements the Variant interface.
func (v *Extended) LaneMapping() Lanes {
	return v.lanes
}

// SupportsHDR implements the Variant interface.
func (v *Extended) SupportsHDR() bool {
	return true
}

// UnsupportedOddHTimings implements the Variant interface. The pixel valve
// of the bcm2711 outputs two pixels per clock.
func (v *Extended) UnsupportedOddHTimings() bool {
	return true
}

// ExternalIRQController implements the Variant interface.
func (v *Extended) ExternalIRQController() bool {
	return true
}

// HasBVBClock implements the Variant interface.
func (v *Extended) HasBVBClock() bool {
	return true
}

// Reset implements the Variant interface.
func (v *Extended) Reset(ctx *registers.Context) {
	ctx.Locked(func(rw registers.RW) {
		rw.Write(registers.DVPCtl, 0)
		rw.Modify(registers.ClockStop, 0, registers.ClockStopPixel)
	})
}

// SetTimings implements the Variant interface.
func (v *Extended) SetTimings(rw registers.RW, mode display.Mode, cfg display.OutputConfig) {
	v.timing.Program(rw, mode, cfg)
}

// ActivePixels implements the Variant interface.
func (v *Extended) ActivePixels(rw registers.RW) int {
	return v.timing.ActivePixels(rw)
}

// SetupCSC implements the Variant interface.
func (v *Extended) SetupCSC(rw registers.RW, cfg display.OutputConfig, fullRange bool) {
	v.csc.Setup(rw, cfg, fullRange)
}

// holds the PLL and the lanes in reset. the lanes are powered but the RNG
// remains powered down until audio needs it
func (v *Extended) resetPHY(rw registers.RW) {
	rw.Write(registers.TXPhyResetCtl, registers.ExtPhyResetCtlPLL|registers.ExtPhyResetCtlLanes.Mask)
	rw.Write(registers.TXPhyPowerdownCtl, registers.ExtPhyRngPowerdown)
}

// PHYInit implements the Variant interface. The PHY is held in reset while
// the lanes are mapped and is then released. An error is returned if the PLL
// does not lock.
func (v *Extended) PHYInit(ctx *registers.Context, _ display.OutputConfig) error {
	ctx.Locked(func(rw registers.RW) {
		v.resetPHY(rw)

		rw.Write(registers.TXPhyChannelSwap,
			registers.ExtLaneSwap0.Set(uint32(v.lanes[Lane0]))|
				registers.ExtLaneSwap1.Set(uint32(v.lanes[Lane1]))|
				registers.ExtLaneSwap2.Set(uint32(v.lanes[Lane2]))|
				registers.ExtLaneSwapC.Set(uint32(v.lanes[LaneClock])))
		rw.Write(registers.TXPhyResetCtl, 0)
	})

	if !ctx.WaitFor(func(rw registers.RW) bool {
		return rw.Read(registers.TXPhyPLLStatus)&registers.ExtPhyPLLLocked == registers.ExtPhyPLLLocked
	}, PLLLockTimeout) {
		ctx.Locked(v.resetPHY)
		return curated.Errorf(PLLNotLocked, v.name)
	}

	return nil
}

// PHYDisable implements the Variant interface.
func (v *Extended) PHYDisable(ctx *registers.Context) {
	ctx.Locked(v.resetPHY)
}

// PHYRngEnable implements the Variant interface.
func (v *Extended) PHYRngEnable(ctx *registers.Context) {
	ctx.Modify(registers.TXPhyPowerdownCtl, registers.ExtPhyRngPowerdown, 0)
}

// PHYRngDisable implements the Variant interface.
func (v *Extended) PHYRngDisable(ctx *registers.Context) {
	ctx.Modify(registers.TXPhyPowerdownCtl, 0, registers.ExtPhyRngPowerdown)
}

// ChannelMap implements the Variant interface. Slots are four bits wide.
func (v *Extended) ChannelMap(mask uint32) uint32 {
	return channelMap(mask, 4)
}

// HotplugDetect implements the Variant interface.
func (v *Extended) HotplugDetect(ctx *registers.Context) (bool, bool) {
	return ctx.Read(registers.Hotplug)&registers.HotplugConnected == registers.HotplugConnected, true
}
