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
	"time"

	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/colorspace"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/timing"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// MaxLegacyPixelClock is the fastest TMDS character rate of the bcm2835.
const MaxLegacyPixelClock = 162000000

// Legacy is the bcm2835 generation of the HDMI block.
type Legacy struct {
	timing timing.Legacy
	csc    colorspace.Legacy
}

// BCM2835 is the only member of the legacy generation.
var BCM2835 = &Legacy{}

// Name implements the Variant interface.
func (v *Legacy) Name() string {
	return "bcm2835"
}

// Compatible implements the Variant interface.
func (v *Legacy) Compatible() string {
	return "brcm,bcm2835-hdmi"
}

// MaxPixelClock implements the Variant interface.
func (v *Legacy) MaxPixelClock() uint64 {
	return MaxLegacyPixelClock
}

// LaneMapping implements the Variant interface. The legacy PHY cannot swap
// lanes.
func (v *Legacy) LaneMapping() Lanes {
	return Lanes{Lane0, Lane1, Lane2, LaneClock}
}

// SupportsHDR implements the Variant interface.
func (v *Legacy) SupportsHDR() bool {
	return false
}

// UnsupportedOddHTimings implements the Variant interface.
func (v *Legacy) UnsupportedOddHTimings() bool {
	return false
}

// ExternalIRQController implements the Variant interface.
func (v *Legacy) ExternalIRQController() bool {
	return false
}

// HasBVBClock implements the Variant interface.
func (v *Legacy) HasBVBClock() bool {
	return false
}

// Reset implements the Variant interface.
func (v *Legacy) Reset(ctx *registers.Context) {
	ctx.Write(registers.MCtl, registers.MCtlSWReset)
	ctx.Delay(time.Microsecond)
	ctx.Locked(func(rw registers.RW) {
		rw.Write(registers.MCtl, 0)
		rw.Write(registers.MCtl, registers.MCtlEnable)
		rw.Write(registers.SWResetControl, registers.SWResetHDMI|registers.SWResetFormatDetect)
		rw.Write(registers.SWResetControl, 0)
	})
}

// SetTimings implements the Variant interface.
func (v *Legacy) SetTimings(rw registers.RW, mode display.Mode, cfg display.OutputConfig) {
	v.timing.Program(rw, mode, cfg)
}

// ActivePixels implements the Variant interface.
func (v *Legacy) ActivePixels(rw registers.RW) int {
	return v.timing.ActivePixels(rw)
}

// SetupCSC implements the Variant interface.
func (v *Legacy) SetupCSC(rw registers.RW, cfg display.OutputConfig, fullRange bool) {
	v.csc.Setup(rw, cfg, fullRange)
}

// PHYInit implements the Variant interface. Pulsing the reset of the four
// lanes is all the legacy PHY requires.
func (v *Legacy) PHYInit(ctx *registers.Context, _ display.OutputConfig) error {
	ctx.Locked(func(rw registers.RW) {
		rw.Write(registers.TXPhyResetCtl, registers.LegacyPhyResetAll)
		rw.Write(registers.TXPhyResetCtl, 0)
	})
	return nil
}

// PHYDisable implements the Variant interface.
func (v *Legacy) PHYDisable(ctx *registers.Context) {
	ctx.Write(registers.TXPhyResetCtl, registers.LegacyPhyResetAll)
}

// PHYRngEnable implements the Variant interface.
func (v *Legacy) PHYRngEnable(ctx *registers.Context) {
	ctx.Modify(registers.TXPhyCtl0, registers.LegacyPhyRngPowerdown, 0)
}

// PHYRngDisable implements the Variant interface.
func (v *Legacy) PHYRngDisable(ctx *registers.Context) {
	ctx.Modify(registers.TXPhyCtl0, 0, registers.LegacyPhyRngPowerdown)
}

// ChannelMap implements the Variant interface. Slots are three bits wide.
func (v *Legacy) ChannelMap(mask uint32) uint32 {
	return channelMap(mask, 3)
}

// HotplugDetect implements the Variant interface. The legacy block relies on
// a GPIO for hotplug detection.
func (v *Legacy) HotplugDetect(_ *registers.Context) (bool, bool) {
	return false, false
}
