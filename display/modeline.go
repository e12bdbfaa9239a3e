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
	"strconv"
	"strings"

	"github.com/jetsetilly/hdmicore/curated"
)

// Sentinal error patterns.
const (
	ModelineError = "display: modeline: %v"
	UnknownMode   = "display: unknown mode (%s)"
)

// monitor modes that are not part of CEA-861 but which are common enough to
// be useful by name
var namedModes = []Mode{
	{Name: "1024x768p60", Clock: 65000,
		HDisplay: 1024, HSyncStart: 1048, HSyncEnd: 1184, HTotal: 1344,
		VDisplay: 768, VSyncStart: 771, VSyncEnd: 777, VTotal: 806,
		Flags: NHSync | NVSync},
	{Name: "1366x768p60", Clock: 85500,
		HDisplay: 1366, HSyncStart: 1436, HSyncEnd: 1579, HTotal: 1792,
		VDisplay: 768, VSyncStart: 771, VSyncEnd: 774, VTotal: 798,
		Flags: PHSync | PVSync},
	{Name: "2560x1440p60", Clock: 241500,
		HDisplay: 2560, HSyncStart: 2608, HSyncEnd: 2640, HTotal: 2720,
		VDisplay: 1440, VSyncStart: 1443, VSyncEnd: 1448, VTotal: 1481,
		Flags: PHSync | NVSync},
}

// ModeByName returns the CEA or monitor mode with the name. The names are of
// the form "1080p60" or "1366x768p60". The comparison is case insensitive.
func ModeByName(name string) (Mode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, c := range ceaModes {
		if strings.ToLower(c.Mode.Name) == n {
			return c.Mode, nil
		}
	}
	for _, m := range namedModes {
		if strings.ToLower(m.Name) == n {
			return m, nil
		}
	}
	return Mode{}, curated.Errorf(UnknownMode, name)
}

// ModeNames returns the list of names accepted by ModeByName(). Names shared
// by more than one CEA entry are listed once.
func ModeNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, c := range ceaModes {
		if !seen[c.Mode.Name] {
			names = append(names, c.Mode.Name)
			seen[c.Mode.Name] = true
		}
	}
	for _, m := range namedModes {
		names = append(names, m.Name)
	}
	return names
}

// ParseModeline parses a mode in the format used by the X Window System. The
// name is optional. The clock is in MHz:
//
//	"1920x1080" 148.50 1920 2008 2052 2200 1080 1084 1089 1125 +hsync +vsync
//
// Recognised flags are +hsync, -hsync, +vsync, -vsync, interlace, dblscan and
// dblclk.
func ParseModeline(s string) (Mode, error) {
	var m Mode

	f := strings.Fields(s)
	if len(f) > 0 && strings.HasPrefix(f[0], `"`) {
		m.Name = strings.Trim(f[0], `"`)
		f = f[1:]
	}

	if len(f) < 9 {
		return Mode{}, curated.Errorf(ModelineError, fmt.Sprintf("not enough fields (%d)", len(f)))
	}

	clk, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return Mode{}, curated.Errorf(ModelineError, err)
	}
	m.Clock = int(clk*1000 + 0.5)

	v := make([]int, 8)
	for i := range v {
		v[i], err = strconv.Atoi(f[i+1])
		if err != nil {
			return Mode{}, curated.Errorf(ModelineError, err)
		}
	}
	m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal = v[0], v[1], v[2], v[3]
	m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal = v[4], v[5], v[6], v[7]

	for _, fl := range f[9:] {
		switch strings.ToLower(fl) {
		case "+hsync":
			m.Flags |= PHSync
		case "-hsync":
			m.Flags |= NHSync
		case "+vsync":
			m.Flags |= PVSync
		case "-vsync":
			m.Flags |= NVSync
		case "interlace":
			m.Flags |= Interlace
		case "dblscan", "doublescan":
			m.Flags |= DoubleScan
		case "dblclk":
			m.Flags |= DoubleClock
		default:
			return Mode{}, curated.Errorf(ModelineError, fmt.Sprintf("unknown flag (%s)", fl))
		}
	}

	if err := m.Valid(); err != nil {
		return Mode{}, curated.Errorf(ModelineError, err)
	}

	return m, nil
}
