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

// Extended is the timing programmer for the bcm2711 generation of the HDMI
// block. In addition to the line and field timings it programs the deep
// color packing and the general control packet.
type Extended struct{}

// the initial pack phase of the deep colour packer
const initPackPhase = 2

// GCP returns the colour depth code sent in the general control packet and
// whether the packet should be sent at all.
//
// YUV 4:2:2 is always sent as 36 bits per pixel and is not deep colour.
func GCP(cfg display.OutputConfig) (uint32, bool) {
	if cfg.Format == display.YUV422 {
		return 4, false
	}
	switch cfg.BPC {
	case 12:
		return 6, true
	case 10:
		return 5, true
	}
	return 4, false
}

// Program implements the Programmer interface.
func (Extended) Program(rw registers.RW, mode display.Mode, cfg display.OutputConfig) {
	g := newGeometry(mode)

	var horza uint32
	if g.vsyncPos {
		horza |= registers.ExtHorzAVPos
	}
	if g.hsyncPos {
		horza |= registers.ExtHorzAHPos
	}
	horza |= registers.ExtHorzAHAP.Set(g.hap) | registers.ExtHorzAHFP.Set(g.hfp)
	rw.Write(registers.HorzA, horza)

	rw.Write(registers.HorzB, registers.ExtHorzBHBP.Set(g.hbp)|
		registers.ExtHorzBHSP.Set(g.hsp))

	g.writeVertA(rw, registers.ExtVertAVSP, registers.ExtVertAVFP, registers.ExtVertAVAL)

	// the even field of an interlaced mode has one less line of back porch.
	// the vsync offset of the odd field is half a line
	vspo := uint32(mode.HTotal) >> (2 - g.pixelRep)
	rw.Write(registers.VertB0, registers.ExtVertBVBP.Set(g.vbp-g.interlaced))
	rw.Write(registers.VertB1, registers.ExtVertBVSPO.Set(vspo)|registers.ExtVertBVBP.Set(g.vbp))

	gcp, enable := GCP(cfg)

	rw.Modify(registers.DeepColorConfig1,
		registers.ExtDeepColorInitPackPhase.Mask|registers.ExtDeepColorColorDepth.Mask,
		registers.ExtDeepColorInitPackPhase.Set(initPackPhase)|registers.ExtDeepColorColorDepth.Set(gcp))

	rw.Modify(registers.GCPWord1, registers.ExtGCPSubpacketByte1.Mask,
		registers.ExtGCPSubpacketByte1.Set(gcp))

	if enable {
		rw.Modify(registers.GCPConfig, 0, registers.ExtGCPEnable)
	} else {
		rw.Modify(registers.GCPConfig, registers.ExtGCPEnable, 0)
	}

	writePixelRep(rw, g.pixelRep)

	rw.Write(registers.ClockStop, 0)
}

// ActivePixels implements the Programmer interface.
func (Extended) ActivePixels(rw registers.RW) int {
	return int(registers.ExtHorzAHAP.Get(rw.Read(registers.HorzA)))
}
