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

	"github.com/dustin/go-humanize"
)

// Format is the pixel encoding sent over the link.
type Format int

// List of valid Format values. The zero value is RGB.
const (
	RGB Format = iota
	YUV422
	YUV444
)

func (f Format) String() string {
	switch f {
	case RGB:
		return "RGB"
	case YUV422:
		return "YUV 4:2:2"
	case YUV444:
		return "YUV 4:4:4"
	}
	return "unknown format"
}

// OutputConfig is the result of a successful negotiation. The zero value is
// not a valid configuration.
type OutputConfig struct {
	// bits per component. one of 8, 10 or 12
	BPC int

	Format Format

	// TMDS character rate in Hz
	PixelClockHz uint64
}

// Valid returns true if the configuration is the result of a successful
// negotiation.
func (cfg OutputConfig) Valid() bool {
	switch cfg.BPC {
	case 8, 10, 12:
		return cfg.PixelClockHz > 0
	}
	return false
}

func (cfg OutputConfig) String() string {
	if !cfg.Valid() {
		return "invalid output configuration"
	}
	return fmt.Sprintf("%dbpc %s %s", cfg.BPC, cfg.Format, humanize.SIWithDigits(float64(cfg.PixelClockHz), 2, "Hz"))
}

// QuantRange is the range of values used for each component.
type QuantRange int

// List of valid QuantRange values.
const (
	Full QuantRange = iota
	Limited
)

func (q QuantRange) String() string {
	if q == Limited {
		return "limited"
	}
	return "full"
}
