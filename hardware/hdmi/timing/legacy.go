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

package timing

import (
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Legacy is the timing programmer for the bcm2835 generation of the HDMI
// block.
type Legacy struct{}

// Program implements the Programmer interface.
func (Legacy) Program(rw registers.RW, mode display.Mode, cfg display.OutputConfig) {
	g := newGeometry(mode)

	var horza uint32
	if g.vsyncPos {
		horza |= registers.LegacyHorzAVPos
	}
	if g.hsyncPos {
		horza |= registers.LegacyHorzAHPos
	}
	horza |= registers.LegacyHorzAHAP.Set(g.hap)
	rw.Write(registers.HorzA, horza)

	rw.Write(registers.HorzB, registers.LegacyHorzBHBP.Set(g.hbp)|
		registers.LegacyHorzBHSP.Set(g.hsp)|
		registers.LegacyHorzBHFP.Set(g.hfp))

	g.writeVertA(rw, registers.LegacyVertAVSP, registers.LegacyVertAVFP, registers.LegacyVertAVAL)

	// the odd field of an interlaced mode has one more line of back porch
	rw.Write(registers.VertB0, registers.LegacyVertBVBP.Set(g.vbp))
	rw.Write(registers.VertB1, registers.LegacyVertBVBP.Set(g.vbp+g.interlaced))

	writePixelRep(rw, g.pixelRep)
}

// ActivePixels implements the Programmer interface.
func (Legacy) ActivePixels(rw registers.RW) int {
	return int(registers.LegacyHorzAHAP.Get(rw.Read(registers.HorzA)))
}
