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

package infoframe

import (
	"github.com/jetsetilly/hdmicore/display"
)

// Infoframe versions and payload lengths.
const (
	aviVersion = 2
	aviLength  = 13

	spdVersion = 1
	spdLength  = 25

	audioVersion = 1
	audioLength  = 10

	hdrVersion = 1
	hdrLength  = 26
)

// SourceDevice is the source device information byte of the SPD infoframe.
type SourceDevice uint8

// List of SourceDevice values used by the HDMI core.
const (
	SourceUnknown SourceDevice = 0x00
	SourcePC      SourceDevice = 0x09
)

// pack adds the header and the checksum to the payload. The checksum is
// chosen so that the sum of every byte of the frame is zero.
func pack(slot Slot, version uint8, payload []byte) []byte {
	frame := make([]byte, 4+len(payload))
	frame[0] = uint8(slot)
	frame[1] = version
	frame[2] = uint8(len(payload))
	copy(frame[4:], payload)

	var sum uint8
	for _, b := range frame {
		sum += b
	}
	frame[3] = -sum

	return frame
}

// Checksum returns true if the bytes of the frame sum to zero.
func Checksum(frame []byte) bool {
	var sum uint8
	for _, b := range frame {
		sum += b
	}
	return sum == 0
}

func aspect(vic int) uint8 {
	for _, c := range display.CEAModes() {
		if c.VIC != vic {
			continue
		}
		switch c.Aspect {
		case "4:3":
			return 1
		case "16:9":
			return 2
		}
	}
	return 0
}

// NewAVI builds the auxiliary video information infoframe for the mode and
// output configuration. The vic argument is the CEA video identification code
// of the mode, or zero.
func NewAVI(mode display.Mode, cfg display.OutputConfig, fullRange bool, vic int) []byte {
	p := make([]byte, aviLength)

	// Y1:Y0
	switch cfg.Format {
	case display.YUV422:
		p[0] = 1 << 5
	case display.YUV444:
		p[0] = 2 << 5
	}

	// colorimetry is BT.709 for YUV output. the active format aspect ratio
	// is the same as the picture
	if cfg.Format != display.RGB {
		p[1] = 2 << 6
	}
	p[1] |= aspect(vic)<<4 | 0x08

	// RGB quantisation range. the default is only signalled when it is not
	// what the sink expects
	if cfg.Format == display.RGB {
		limited := display.DefaultRGBQuantRange(mode) == display.Limited
		if fullRange && limited {
			p[2] = 2 << 2
		} else if !fullRange && !limited {
			p[2] = 1 << 2
		}
	}

	p[3] = uint8(vic)
	p[4] = uint8(mode.PixelRepetition() - 1)

	return pack(AVI, aviVersion, p)
}

// NewSPD builds the source product description infoframe. Strings longer than
// the field are truncated.
func NewSPD(vendor string, product string) []byte {
	p := make([]byte, spdLength)
	copy(p[0:8], vendor)
	copy(p[8:24], product)
	p[24] = uint8(SourcePC)
	return pack(SPD, spdVersion, p)
}

// speaker allocations for the audio infoframe, indexed by channel count
var speakerAllocation = map[int]uint8{
	2: 0x00,
	3: 0x01,
	4: 0x03,
	5: 0x07,
	6: 0x0b,
	7: 0x0f,
	8: 0x13,
}

// NewAudio builds the audio infoframe for the number of channels. Coding type,
// sample size and sample rate are left for the sink to take from the stream.
func NewAudio(channels int) []byte {
	p := make([]byte, audioLength)
	if channels > 1 {
		p[0] = uint8(channels-1) & 0x07
	}
	p[3] = speakerAllocation[channels]
	return pack(Audio, audioVersion, p)
}

// HDRMetadata is the static HDR metadata sent in the dynamic range and
// mastering infoframe. Chromaticity values are in units of 0.00002 and
// luminance values are in cd/m².
type HDRMetadata struct {
	EOTF uint8

	DisplayPrimaries [3][2]uint16
	WhitePoint       [2]uint16

	MaxDisplayLuminance uint16
	MinDisplayLuminance uint16
	MaxCLL              uint16
	MaxFALL             uint16
}

// NewHDR builds the dynamic range and mastering infoframe.
func NewHDR(md HDRMetadata) []byte {
	p := make([]byte, hdrLength)
	p[0] = md.EOTF & 0x07

	// static metadata descriptor type 1. p[1] stays zero
	le := func(i int, v uint16) {
		p[i] = uint8(v)
		p[i+1] = uint8(v >> 8)
	}

	i := 2
	for _, xy := range md.DisplayPrimaries {
		le(i, xy[0])
		le(i+2, xy[1])
		i += 4
	}
	le(i, md.WhitePoint[0])
	le(i+2, md.WhitePoint[1])
	le(i+4, md.MaxDisplayLuminance)
	le(i+6, md.MinDisplayLuminance)
	le(i+8, md.MaxCLL)
	le(i+10, md.MaxFALL)

	return pack(HDR, hdrVersion, p)
}
