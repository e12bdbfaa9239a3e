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

package display

import (
	"fmt"
	"strings"
)

// ColorFormats is a bitmask of the color formats supported by a sink.
type ColorFormats uint8

// List of valid ColorFormats bits.
const (
	RGB444 ColorFormats = 1 << iota
	YCbCr444
	YCbCr422
)

func (c ColorFormats) String() string {
	var s []string
	if c&RGB444 == RGB444 {
		s = append(s, "RGB444")
	}
	if c&YCbCr444 == YCbCr444 {
		s = append(s, "YCbCr444")
	}
	if c&YCbCr422 == YCbCr422 {
		s = append(s, "YCbCr422")
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "|")
}

// DeepColor is a bitmask of the deep color modes supported by a sink for a
// single color format.
type DeepColor uint8

// List of valid DeepColor bits. The names are the total number of bits per
// pixel.
const (
	DC30 DeepColor = 1 << iota
	DC36
	DC48
)

// Supports returns true if the deep color bitmask supports the bits per
// component. Eight bits per component is always supported.
func (dc DeepColor) Supports(bpc int) bool {
	switch bpc {
	case 8:
		return true
	case 10:
		return dc&DC30 == DC30
	case 12:
		return dc&DC36 == DC36
	case 16:
		return dc&DC48 == DC48
	}
	return false
}

// SinkCapabilities is a snapshot of the capabilities of the connected sink,
// as read from the EDID by a collaborator outside of the HDMI core.
type SinkCapabilities struct {
	ColorFormats ColorFormats

	// deep color support for RGB444 and YCbCr444 output
	RGB444DeepColor   DeepColor
	YCbCr444DeepColor DeepColor

	// maximum TMDS character rate in kHz. zero means the sink did not
	// advertise a maximum
	MaxTMDSClock int

	// false for a DVI sink
	IsHDMI bool

	// SCDC transport and scrambling support. only meaningful for HDMI 2.0
	// sinks
	SCDC       bool
	Scrambling bool
}

func (c SinkCapabilities) String() string {
	kind := "DVI"
	if c.IsHDMI {
		kind = "HDMI"
	}
	return fmt.Sprintf("%s %s rgbdc=%03b yuvdc=%03b tmds=%dkHz scdc=%v scrambling=%v",
		kind, c.ColorFormats, c.RGB444DeepColor, c.YCbCr444DeepColor,
		c.MaxTMDSClock, c.SCDC, c.Scrambling)
}
