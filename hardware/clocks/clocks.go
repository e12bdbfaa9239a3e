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

package clocks

import (
	"github.com/dustin/go-humanize"
)

// Clock rates in Hz used when sequencing the HDMI block.
const (
	// floor for the HDMI state machine clock
	HSMMinimum = 120000000

	// the pixel BVB clock tiers
	BVBHigh   = 300000000
	BVBMedium = 150000000
	BVBLow    = 75000000

	// thresholds for selecting the BVB tier
	BVBHighThreshold   = 297000000
	BVBMediumThreshold = 148500000

	// the maximum TMDS character rate of HDMI 1.4. above this rate the link
	// must be scrambled
	HDMI14MaxTMDS = 340000000

	// the CEC bit clock
	CECClock = 40000
)

// Format returns the rate as a human readable string. For example, 222.75 MHz.
func Format(hz uint64) string {
	return humanize.SIWithDigits(float64(hz), 2, "Hz")
}

// HSMRate returns the minimum rate for the HDMI state machine clock for the
// TMDS character rate. The state machine clock must be slightly faster than
// the pixel clock.
func HSMRate(tmdsHz uint64) uint64 {
	return max(HSMMinimum, tmdsHz/100*101)
}

// BVBRate returns the minimum rate for the pixel BVB clock for the TMDS
// character rate.
func BVBRate(tmdsHz uint64) uint64 {
	switch {
	case tmdsHz > BVBHighThreshold:
		return BVBHigh
	case tmdsHz > BVBMediumThreshold:
		return BVBMedium
	}
	return BVBLow
}
