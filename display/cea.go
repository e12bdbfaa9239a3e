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

// CEAMode is an entry in the table of CEA-861 video formats.
type CEAMode struct {
	VIC    int
	Aspect string
	Mode   Mode
}

// the CEA-861 formats known to the HDMI core. where two VICs share timings
// (4:3 and 16:9 versions of the same format) the first one in the table is
// the one returned by MatchCEA()
var ceaModes = []CEAMode{
	{VIC: 1, Aspect: "4:3", Mode: Mode{Name: "640x480p60", Clock: 25175,
		HDisplay: 640, HSyncStart: 656, HSyncEnd: 752, HTotal: 800,
		VDisplay: 480, VSyncStart: 490, VSyncEnd: 492, VTotal: 525,
		Flags: NHSync | NVSync}},
	{VIC: 2, Aspect: "4:3", Mode: Mode{Name: "720x480p60", Clock: 27000,
		HDisplay: 720, HSyncStart: 736, HSyncEnd: 798, HTotal: 858,
		VDisplay: 480, VSyncStart: 489, VSyncEnd: 495, VTotal: 525,
		Flags: NHSync | NVSync}},
	{VIC: 3, Aspect: "16:9", Mode: Mode{Name: "720x480p60", Clock: 27000,
		HDisplay: 720, HSyncStart: 736, HSyncEnd: 798, HTotal: 858,
		VDisplay: 480, VSyncStart: 489, VSyncEnd: 495, VTotal: 525,
		Flags: NHSync | NVSync}},
	{VIC: 4, Aspect: "16:9", Mode: Mode{Name: "720p60", Clock: 74250,
		HDisplay: 1280, HSyncStart: 1390, HSyncEnd: 1430, HTotal: 1650,
		VDisplay: 720, VSyncStart: 725, VSyncEnd: 730, VTotal: 750,
		Flags: PHSync | PVSync}},
	{VIC: 5, Aspect: "16:9", Mode: Mode{Name: "1080i60", Clock: 74250,
		HDisplay: 1920, HSyncStart: 2008, HSyncEnd: 2052, HTotal: 2200,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1094, VTotal: 1125,
		Flags: PHSync | PVSync | Interlace}},
	{VIC: 6, Aspect: "4:3", Mode: Mode{Name: "480i60", Clock: 13500,
		HDisplay: 720, HSyncStart: 739, HSyncEnd: 801, HTotal: 858,
		VDisplay: 480, VSyncStart: 488, VSyncEnd: 494, VTotal: 525,
		Flags: NHSync | NVSync | Interlace | DoubleClock}},
	{VIC: 7, Aspect: "16:9", Mode: Mode{Name: "480i60", Clock: 13500,
		HDisplay: 720, HSyncStart: 739, HSyncEnd: 801, HTotal: 858,
		VDisplay: 480, VSyncStart: 488, VSyncEnd: 494, VTotal: 525,
		Flags: NHSync | NVSync | Interlace | DoubleClock}},
	{VIC: 16, Aspect: "16:9", Mode: Mode{Name: "1080p60", Clock: 148500,
		HDisplay: 1920, HSyncStart: 2008, HSyncEnd: 2052, HTotal: 2200,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1089, VTotal: 1125,
		Flags: PHSync | PVSync}},
	{VIC: 17, Aspect: "4:3", Mode: Mode{Name: "576p50", Clock: 27000,
		HDisplay: 720, HSyncStart: 732, HSyncEnd: 796, HTotal: 864,
		VDisplay: 576, VSyncStart: 581, VSyncEnd: 586, VTotal: 625,
		Flags: NHSync | NVSync}},
	{VIC: 18, Aspect: "16:9", Mode: Mode{Name: "576p50", Clock: 27000,
		HDisplay: 720, HSyncStart: 732, HSyncEnd: 796, HTotal: 864,
		VDisplay: 576, VSyncStart: 581, VSyncEnd: 586, VTotal: 625,
		Flags: NHSync | NVSync}},
	{VIC: 19, Aspect: "16:9", Mode: Mode{Name: "720p50", Clock: 74250,
		HDisplay: 1280, HSyncStart: 1720, HSyncEnd: 1760, HTotal: 1980,
		VDisplay: 720, VSyncStart: 725, VSyncEnd: 730, VTotal: 750,
		Flags: PHSync | PVSync}},
	{VIC: 20, Aspect: "16:9", Mode: Mode{Name: "1080i50", Clock: 74250,
		HDisplay: 1920, HSyncStart: 2448, HSyncEnd: 2492, HTotal: 2640,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1094, VTotal: 1125,
		Flags: PHSync | PVSync | Interlace}},
	{VIC: 21, Aspect: "4:3", Mode: Mode{Name: "576i50", Clock: 13500,
		HDisplay: 720, HSyncStart: 732, HSyncEnd: 795, HTotal: 864,
		VDisplay: 576, VSyncStart: 580, VSyncEnd: 586, VTotal: 625,
		Flags: NHSync | NVSync | Interlace | DoubleClock}},
	{VIC: 22, Aspect: "16:9", Mode: Mode{Name: "576i50", Clock: 13500,
		HDisplay: 720, HSyncStart: 732, HSyncEnd: 795, HTotal: 864,
		VDisplay: 576, VSyncStart: 580, VSyncEnd: 586, VTotal: 625,
		Flags: NHSync | NVSync | Interlace | DoubleClock}},
	{VIC: 31, Aspect: "16:9", Mode: Mode{Name: "1080p50", Clock: 148500,
		HDisplay: 1920, HSyncStart: 2448, HSyncEnd: 2492, HTotal: 2640,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1089, VTotal: 1125,
		Flags: PHSync | PVSync}},
	{VIC: 32, Aspect: "16:9", Mode: Mode{Name: "1080p24", Clock: 74250,
		HDisplay: 1920, HSyncStart: 2558, HSyncEnd: 2602, HTotal: 2750,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1089, VTotal: 1125,
		Flags: PHSync | PVSync}},
	{VIC: 33, Aspect: "16:9", Mode: Mode{Name: "1080p25", Clock: 74250,
		HDisplay: 1920, HSyncStart: 2448, HSyncEnd: 2492, HTotal: 2640,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1089, VTotal: 1125,
		Flags: PHSync | PVSync}},
	{VIC: 34, Aspect: "16:9", Mode: Mode{Name: "1080p30", Clock: 74250,
		HDisplay: 1920, HSyncStart: 2008, HSyncEnd: 2052, HTotal: 2200,
		VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1089, VTotal: 1125,
		Flags: PHSync | PVSync}},
	{VIC: 93, Aspect: "16:9", Mode: Mode{Name: "2160p24", Clock: 297000,
		HDisplay: 3840, HSyncStart: 5116, HSyncEnd: 5204, HTotal: 5500,
		VDisplay: 2160, VSyncStart: 2168, VSyncEnd: 2178, VTotal: 2250,
		Flags: PHSync | PVSync}},
	{VIC: 94, Aspect: "16:9", Mode: Mode{Name: "2160p25", Clock: 297000,
		HDisplay: 3840, HSyncStart: 4896, HSyncEnd: 4984, HTotal: 5280,
		VDisplay: 2160, VSyncStart: 2168, VSyncEnd: 2178, VTotal: 2250,
		Flags: PHSync | PVSync}},
	{VIC: 95, Aspect: "16:9", Mode: Mode{Name: "2160p30", Clock: 297000,
		HDisplay: 3840, HSyncStart: 4016, HSyncEnd: 4104, HTotal: 4400,
		VDisplay: 2160, VSyncStart: 2168, VSyncEnd: 2178, VTotal: 2250,
		Flags: PHSync | PVSync}},
	{VIC: 96, Aspect: "16:9", Mode: Mode{Name: "2160p50", Clock: 594000,
		HDisplay: 3840, HSyncStart: 4896, HSyncEnd: 4984, HTotal: 5280,
		VDisplay: 2160, VSyncStart: 2168, VSyncEnd: 2178, VTotal: 2250,
		Flags: PHSync | PVSync}},
	{VIC: 97, Aspect: "16:9", Mode: Mode{Name: "2160p60", Clock: 594000,
		HDisplay: 3840, HSyncStart: 4016, HSyncEnd: 4104, HTotal: 4400,
		VDisplay: 2160, VSyncStart: 2168, VSyncEnd: 2178, VTotal: 2250,
		Flags: PHSync | PVSync}},
}

// clockMatch allows for the 1000/1001 versions of the CEA clocks, used by
// 59.94Hz sinks, and for small rounding differences.
func clockMatch(clock int, cea int) bool {
	near := func(a, b int) bool {
		d := a - b
		if d < 0 {
			d = -d
		}
		return d <= b/1000+1
	}
	return near(clock, cea) || near(clock, cea*1000/1001)
}

// MatchCEA returns the CEA-861 video identification code for the mode. It
// returns zero if the mode is not a CEA mode.
func MatchCEA(mode Mode) int {
	for _, c := range ceaModes {
		if mode.sameTimings(c.Mode) && clockMatch(mode.Clock, c.Mode.Clock) {
			return c.VIC
		}
	}
	return 0
}

// DefaultRGBQuantRange returns the quantisation range that a sink expects by
// default for RGB output of the mode. Every CEA mode other than VIC 1 uses
// limited range. Non-CEA modes are full range.
func DefaultRGBQuantRange(mode Mode) QuantRange {
	if MatchCEA(mode) > 1 {
		return Limited
	}
	return Full
}

// CEAModes returns a copy of the table of known CEA modes.
func CEAModes() []CEAMode {
	c := make([]CEAMode, len(ceaModes))
	copy(c, ceaModes)
	return c
}
