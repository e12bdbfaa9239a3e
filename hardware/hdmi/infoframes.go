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

package hdmi

import (
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/colorspace"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/logger"
)

// write every infoframe for the committed mode. must be called with the
// config mutex held and the packet RAM enabled.
func (e *Encoder) writeInfoframes() {
	fullRange := colorspace.FullRange(e.mode, e.caps)
	avi := infoframe.NewAVI(e.mode, e.cfg, fullRange, display.MatchCEA(e.mode))
	e.writeInfoframe(infoframe.AVI, avi)

	spd := infoframe.NewSPD(e.env.Prefs.Vendor.String(), e.env.Prefs.Product.String())
	e.writeInfoframe(infoframe.SPD, spd)

	if e.audio.Streaming() {
		e.audio.WriteInfoframe()
	}

	e.writeHDR()
}

func (e *Encoder) writeHDR() {
	if !e.v.SupportsHDR() || e.hdr == nil {
		return
	}
	e.writeInfoframe(infoframe.HDR, infoframe.NewHDR(*e.hdr))
}

func (e *Encoder) writeInfoframe(slot infoframe.Slot, frame []byte) {
	if err := e.packer.Write(slot, frame); err != nil {
		logger.Log(e.env, "hdmi: infoframe", err)
	}
}

// SetHDRMetadata sets the static HDR metadata sent to the sink. A nil value
// stops the HDR infoframe. If video is being output the change is immediate,
// otherwise it takes effect on the next Enable().
//
// The metadata is ignored by hardware variants that do not support HDR.
func (e *Encoder) SetHDRMetadata(md *infoframe.HDRMetadata) {
	e.crit.Lock()
	defer e.crit.Unlock()

	if md != nil {
		c := *md
		md = &c
	}
	e.hdr = md

	if !e.enabled || !e.caps.IsHDMI || !e.v.SupportsHDR() {
		return
	}

	if e.hdr == nil {
		if err := e.packer.Stop(infoframe.HDR, true); err != nil {
			logger.Log(e.env, "hdmi: infoframe", err)
		}
		return
	}

	e.writeHDR()
}
