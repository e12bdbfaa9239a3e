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

// Programmer writes the timing registers of the HDMI block for a mode. The
// pixel clock must already be running and the block must not be scanning out
// active video. The caller holds the register lock for the duration of
// Program().
type Programmer interface {
	Program(rw registers.RW, mode display.Mode, cfg display.OutputConfig)

	// ActivePixels reads back the number of active pixels on a line as
	// programmed into the hardware. The value includes pixel repetition.
	ActivePixels(rw registers.RW) int
}

// geometry is the set of values common to both hardware generations. all
// horizontal values are multiplied by the pixel repetition factor.
type geometry struct {
	hsyncPos bool
	vsyncPos bool

	// zero or one
	interlaced uint32

	pixelRep uint32

	hap uint32
	hfp uint32
	hsp uint32
	hbp uint32

	vsp uint32
	vfp uint32
	val uint32
	vbp uint32
}

func newGeometry(mode display.Mode) geometry {
	g := geometry{
		hsyncPos: mode.Is(display.PHSync),
		vsyncPos: mode.Is(display.PVSync),
		pixelRep: uint32(mode.PixelRepetition()),
	}

	if mode.Is(display.Interlace) {
		g.interlaced = 1
	}

	g.hap = uint32(mode.HDisplay) * g.pixelRep
	g.hfp = uint32(mode.HSyncStart-mode.HDisplay) * g.pixelRep
	g.hsp = uint32(mode.HSyncEnd-mode.HSyncStart) * g.pixelRep
	g.hbp = uint32(mode.HTotal-mode.HSyncEnd) * g.pixelRep

	crtc := mode.CRTC()
	g.vsp = uint32(crtc.VSyncEnd - crtc.VSyncStart)
	g.vfp = uint32(crtc.VSyncStart - crtc.VDisplay)
	g.val = uint32(crtc.VDisplay)
	g.vbp = uint32(crtc.VTotal - crtc.VSyncEnd)

	return g
}

// the same value is used for both fields
func (g geometry) writeVertA(rw registers.RW, vsp, vfp, val registers.Field) {
	v := vsp.Set(g.vsp) | vfp.Set(g.vfp) | val.Set(g.val)
	rw.Write(registers.VertA0, v)
	rw.Write(registers.VertA1, v)
}

func writePixelRep(rw registers.RW, pixelRep uint32) {
	rw.Modify(registers.MiscControl, registers.MiscControlPixelRep.Mask,
		registers.MiscControlPixelRep.Set(pixelRep-1))
}
