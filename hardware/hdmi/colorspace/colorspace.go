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

package colorspace

import (
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Converter configures the colour space converter of the HDMI block for an
// output configuration. The caller holds the register lock.
type Converter interface {
	Setup(rw registers.RW, cfg display.OutputConfig, fullRange bool)
}

// FullRange returns true if RGB output of the mode should use the full
// 0-255 range. DVI sinks always receive full range.
func FullRange(mode display.Mode, caps display.SinkCapabilities) bool {
	return !caps.IsHDMI || display.DefaultRGBQuantRange(mode) == display.Full
}

// Legacy is the converter for the bcm2835 generation. It can only output
// RGB.
type Legacy struct{}

// Setup implements the Converter interface.
func (Legacy) Setup(rw registers.RW, cfg display.OutputConfig, fullRange bool) {
	ctl := registers.CSCCtlOrder.Set(registers.CSCCtlOrderBGR)

	if !fullRange {
		ctl |= registers.CSCCtlEnable | registers.CSCCtlRGB2YCC |
			registers.CSCCtlMode.Set(registers.CSCCtlModeCustom)
		LegacyLimitedRGB.write(rw)
	}

	// channel order is written even when the converter is disabled
	rw.Write(registers.CSCCtl, ctl)
}

// crossbar settings for the VEC interface
const (
	xbarStraight = 0x543210
	xbarRGB      = 0x354021
)

// Extended is the converter for the bcm2711 generation.
type Extended struct{}

// Setup implements the Converter interface.
func (Extended) Setup(rw registers.RW, cfg display.OutputConfig, fullRange bool) {
	var ifCfg uint32
	var chanCtl uint32
	xbar := uint32(xbarStraight)
	ctl := registers.ExtCSCCtlEnable | registers.ExtCSCCtlMode.Set(registers.CSCCtlModeCustom)

	switch cfg.Format {
	case display.YUV444:
		YUV444BT709.write(rw)

	case display.YUV422:
		ctl |= registers.ExtCSCCtlFilterMode.Set(registers.ExtCSCCtlFilterStandard) |
			registers.ExtCSCCtlUse444To422 | registers.ExtCSCCtlRngSuppression
		chanCtl = registers.ExtCSCChannelCtlRemap.Set(registers.ExtCSCChannelCtlRemapLegacy)
		ifCfg = registers.ExtVECInterfaceSel422.Set(registers.ExtVECInterfaceSel422Legacy)
		YUV422BT709.write(rw)

	case display.RGB:
		xbar = xbarRGB
		if fullRange {
			Unity.write(rw)
		} else {
			LimitedRGB.write(rw)
		}
	}

	rw.Write(registers.VECInterfaceCfg, ifCfg)
	rw.Write(registers.VECInterfaceXbar, xbar)
	rw.Write(registers.CSCChannelCtl, chanCtl)
	rw.Write(registers.CSCCtl, ctl)
}
