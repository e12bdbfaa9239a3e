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

	"github.com/jetsetilly/hdmicore/curated"
)

// Sentinal error patterns.
const (
	InvalidMode = "display: invalid mode: %s"
)

// ModeFlags describe the scan and sync properties of a Mode.
type ModeFlags uint32

// List of valid ModeFlags.
const (
	PHSync ModeFlags = 1 << iota
	NHSync
	PVSync
	NVSync
	Interlace
	DoubleScan
	DoubleClock
)

func (f ModeFlags) String() string {
	var s []string
	if f&PHSync == PHSync {
		s = append(s, "+hsync")
	}
	if f&NHSync == NHSync {
		s = append(s, "-hsync")
	}
	if f&PVSync == PVSync {
		s = append(s, "+vsync")
	}
	if f&NVSync == NVSync {
		s = append(s, "-vsync")
	}
	if f&Interlace == Interlace {
		s = append(s, "interlace")
	}
	if f&DoubleScan == DoubleScan {
		s = append(s, "dblscan")
	}
	if f&DoubleClock == DoubleClock {
		s = append(s, "dblclk")
	}
	return strings.Join(s, " ")
}

// Mode is the geometry of a display mode. Horizontal values are in pixels and
// vertical values are in lines. The clock is in kHz.
//
// A Mode is supplied to the encoder and is not changed once negotiation has
// started. The exception is the wifi coexistence fixup which is applied to a
// copy of the Mode before negotiation.
type Mode struct {
	Name string

	// pixel clock in kHz
	Clock int

	HDisplay   int
	HSyncStart int
	HSyncEnd   int
	HTotal     int

	VDisplay   int
	VSyncStart int
	VSyncEnd   int
	VTotal     int

	Flags ModeFlags
}

func (m Mode) String() string {
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("%dx%d", m.HDisplay, m.VDisplay)
	}
	return fmt.Sprintf("%s@%.2f", name, m.Refresh())
}

// Is returns true if the mode has all the specified flags.
func (m Mode) Is(f ModeFlags) bool {
	return m.Flags&f == f
}

// ClockHz returns the pixel clock in Hz.
func (m Mode) ClockHz() uint64 {
	return uint64(m.Clock) * 1000
}

// PixelRepetition returns the pixel repetition factor for the mode. Double
// clocked modes send every pixel twice.
func (m Mode) PixelRepetition() int {
	if m.Is(DoubleClock) {
		return 2
	}
	return 1
}

// Refresh returns the vertical refresh rate of the mode in Hz. Interlaced
// modes report the field rate.
func (m Mode) Refresh() float64 {
	if m.HTotal == 0 || m.VTotal == 0 {
		return 0
	}
	r := float64(m.Clock) * 1000 / float64(m.HTotal*m.VTotal)
	if m.Is(Interlace) {
		r *= 2
	}
	if m.Is(DoubleScan) {
		r /= 2
	}
	return r
}

// CRTC holds the vertical timings as they are seen by the pixel valve. For
// interlaced modes the values are for a single field.
type CRTC struct {
	VDisplay   int
	VSyncStart int
	VSyncEnd   int
	VTotal     int
}

// CRTC returns the vertical timings of the mode adjusted for interlacing.
func (m Mode) CRTC() CRTC {
	c := CRTC{
		VDisplay:   m.VDisplay,
		VSyncStart: m.VSyncStart,
		VSyncEnd:   m.VSyncEnd,
		VTotal:     m.VTotal,
	}
	if m.Is(Interlace) {
		c.VDisplay /= 2
		c.VSyncStart /= 2
		c.VSyncEnd /= 2
		c.VTotal /= 2
	}
	if m.Is(DoubleScan) {
		c.VDisplay *= 2
		c.VSyncStart *= 2
		c.VSyncEnd *= 2
		c.VTotal *= 2
	}
	return c
}

// Valid checks that the geometry of the mode is self-consistent.
func (m Mode) Valid() error {
	if m.Clock <= 0 {
		return curated.Errorf(InvalidMode, fmt.Sprintf("clock must be positive (%d)", m.Clock))
	}
	if !(m.HDisplay > 0 && m.HDisplay <= m.HSyncStart && m.HSyncStart <= m.HSyncEnd && m.HSyncEnd <= m.HTotal) {
		return curated.Errorf(InvalidMode, fmt.Sprintf("inconsistent horizontal timings (%d %d %d %d)", m.HDisplay, m.HSyncStart, m.HSyncEnd, m.HTotal))
	}
	if !(m.VDisplay > 0 && m.VDisplay <= m.VSyncStart && m.VSyncStart <= m.VSyncEnd && m.VSyncEnd <= m.VTotal) {
		return curated.Errorf(InvalidMode, fmt.Sprintf("inconsistent vertical timings (%d %d %d %d)", m.VDisplay, m.VSyncStart, m.VSyncEnd, m.VTotal))
	}
	return nil
}

// sameTimings compares the timings and the scan flags of two modes. The
// clock, the sync polarities and the name are ignored.
func (m Mode) sameTimings(n Mode) bool {
	const scan = Interlace | DoubleScan | DoubleClock
	return m.HDisplay == n.HDisplay && m.HSyncStart == n.HSyncStart &&
		m.HSyncEnd == n.HSyncEnd && m.HTotal == n.HTotal &&
		m.VDisplay == n.VDisplay && m.VSyncStart == n.VSyncStart &&
		m.VSyncEnd == n.VSyncEnd && m.VTotal == n.VTotal &&
		m.Flags&scan == n.Flags&scan
}
