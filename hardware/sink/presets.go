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

package sink

import (
	"sort"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
)

// Sentinal error patterns.
const (
	UnknownPreset = "sink: unknown preset (%s)"
)

var presets = map[string]display.SinkCapabilities{
	// an HDMI 2.0 television with 4k60 support
	"hdmi20": {
		ColorFormats:      display.RGB444 | display.YCbCr444 | display.YCbCr422,
		RGB444DeepColor:   display.DC30 | display.DC36,
		YCbCr444DeepColor: display.DC30 | display.DC36,
		MaxTMDSClock:      600000,
		IsHDMI:            true,
		SCDC:              true,
		Scrambling:        true,
	},

	// an HDMI 2.0 television that accepts 4k60 only as 4:2:2
	"hdmi20-422": {
		ColorFormats:    display.RGB444 | display.YCbCr422,
		RGB444DeepColor: display.DC30 | display.DC36,
		MaxTMDSClock:    600000,
		IsHDMI:          true,
		SCDC:            true,
		Scrambling:      true,
	},

	// an HDMI 1.4 television with deep color
	"hdmi14": {
		ColorFormats:    display.RGB444 | display.YCbCr422,
		RGB444DeepColor: display.DC30 | display.DC36,
		MaxTMDSClock:    340000,
		IsHDMI:          true,
	},

	// an HDMI television with no deep color
	"hdmi-8bit": {
		ColorFormats: display.RGB444,
		MaxTMDSClock: 165000,
		IsHDMI:       true,
	},

	// a computer monitor with a DVI input
	"dvi": {
		ColorFormats: display.RGB444,
		MaxTMDSClock: 165000,
	},
}

// Preset returns a new Sink with capabilities from the list of presets.
func Preset(name string) (*Sink, error) {
	caps, ok := presets[name]
	if !ok {
		return nil, curated.Errorf(UnknownPreset, name)
	}
	return NewSink(name, caps), nil
}

// Presets returns the sorted names of the presets.
func Presets() []string {
	var n []string
	for k := range presets {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
