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

package negotiate

import (
	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
)

// Sentinal error patterns.
const (
	NoValidConfig  = "negotiate: no valid configuration for %s"
	ClockTooHigh   = "negotiate: %s exceeds %s limit"
	OddHTimings    = "negotiate: %s: odd horizontal timings are not supported"
	UnsupportedBPC = "negotiate: %s does not support %d bpc %s"
)

// the formats tried during negotiation, in order of preference. YUV 4:4:4
// is never chosen although the sink checks understand it
var searchOrder = []display.Format{display.RGB, display.YUV422}

// Negotiator finds an output configuration for a mode that the hardware
// variant and the sink can both handle.
type Negotiator struct {
	variant variant.Variant
}

// NewNegotiator is the preferred method of initialisation for the Negotiator
// type.
func NewNegotiator(v variant.Variant) *Negotiator {
	return &Negotiator{variant: v}
}

// ModeClock returns the TMDS character rate in Hz for the mode when sent
// with the bits per component and format. YUV 4:2:2 is always sent at 8 bits
// per component regardless of the bpc requested.
func ModeClock(mode display.Mode, bpc int, format display.Format) uint64 {
	clock := mode.ClockHz()
	if mode.Is(display.DoubleClock) {
		clock *= 2
	}
	if format == display.YUV422 {
		bpc = 8
	}
	return clock * uint64(bpc) / 8
}

// NeedsScrambling returns true if the configuration is faster than the
// HDMI 1.4 maximum.
func NeedsScrambling(cfg display.OutputConfig) bool {
	return cfg.PixelClockHz > clocks.HDMI14MaxTMDS
}

// SinkSupports checks the sink capabilities for the format and bits per
// component. The check is independent of the clock.
func SinkSupports(mode display.Mode, caps display.SinkCapabilities, format display.Format, bpc int) error {
	if display.MatchCEA(mode) == 1 && bpc != 8 {
		return curated.Errorf(UnsupportedBPC, "VIC 1", bpc, format)
	}

	if !caps.IsHDMI && (format != display.RGB || bpc != 8) {
		return curated.Errorf(UnsupportedBPC, "DVI sink", bpc, format)
	}

	switch format {
	case display.RGB:
		if caps.ColorFormats&display.RGB444 != display.RGB444 {
			return curated.Errorf(UnsupportedBPC, "sink", bpc, format)
		}
		if !caps.RGB444DeepColor.Supports(bpc) {
			return curated.Errorf(UnsupportedBPC, "sink", bpc, format)
		}
		return nil

	case display.YUV422:
		if caps.ColorFormats&display.YCbCr422 != display.YCbCr422 {
			return curated.Errorf(UnsupportedBPC, "sink", bpc, format)
		}
		if bpc != 12 {
			return curated.Errorf(UnsupportedBPC, "YUV 4:2:2", bpc, format)
		}
		return nil

	case display.YUV444:
		if caps.ColorFormats&display.YCbCr444 != display.YCbCr444 {
			return curated.Errorf(UnsupportedBPC, "sink", bpc, format)
		}
		if !caps.YCbCr444DeepColor.Supports(bpc) {
			return curated.Errorf(UnsupportedBPC, "sink", bpc, format)
		}
		return nil
	}

	return curated.Errorf(UnsupportedBPC, "encoder", bpc, format)
}

// ClockValid checks a TMDS character rate against the limit of the hardware
// variant, the 4k60 policy and the limit advertised by the sink.
func (n *Negotiator) ClockValid(hz uint64, caps display.SinkCapabilities, policy Policy) error {
	if hz > n.variant.MaxPixelClock() {
		return curated.Errorf(ClockTooHigh, clocks.Format(hz), n.variant.Name())
	}
	if policy.Disable4K60 && hz > clocks.HDMI14MaxTMDS {
		return curated.Errorf(ClockTooHigh, clocks.Format(hz), "disable_4k60")
	}
	if caps.MaxTMDSClock > 0 && hz > uint64(caps.MaxTMDSClock)*1000 {
		return curated.Errorf(ClockTooHigh, clocks.Format(hz), "sink")
	}
	return nil
}

// Negotiate searches for the output configuration with the deepest colour
// that the sink supports and whose clock is within every limit. Bits per
// component are tried from policy.MaxBPC down to 8 and for each depth RGB is
// preferred to YUV 4:2:2.
//
// Returns an error with the NoValidConfig pattern if nothing is suitable. The
// mode should be rejected in that case.
func (n *Negotiator) Negotiate(mode display.Mode, caps display.SinkCapabilities, policy Policy) (display.OutputConfig, error) {
	// odd values are rounded down
	maxBPC := min(max(policy.MaxBPC, 8), 12) &^ 1

	for bpc := maxBPC; bpc >= 8; bpc -= 2 {
		for _, format := range searchOrder {
			if SinkSupports(mode, caps, format, bpc) != nil {
				continue
			}

			hz := ModeClock(mode, bpc, format)
			if n.ClockValid(hz, caps, policy) != nil {
				continue
			}

			return display.OutputConfig{
				BPC:          bpc,
				Format:       format,
				PixelClockHz: hz,
			}, nil
		}
	}

	return display.OutputConfig{}, curated.Errorf(NoValidConfig, mode)
}

// ModeValid is the check made on each mode in the list offered to the user.
// Double clocked modes with odd timings are accepted because FixupOddTimings()
// can correct them.
func (n *Negotiator) ModeValid(mode display.Mode, caps display.SinkCapabilities, policy Policy) error {
	if n.variant.UnsupportedOddHTimings() && !mode.Is(display.DoubleClock) && oddHTimings(mode) {
		return curated.Errorf(OddHTimings, mode)
	}
	return n.ClockValid(mode.ClockHz(), caps, policy)
}

func oddHTimings(mode display.Mode) bool {
	return mode.HDisplay%2 != 0 || mode.HSyncStart%2 != 0 ||
		mode.HSyncEnd%2 != 0 || mode.HTotal%2 != 0
}

// FixupOddTimings adjusts the mode for hardware that cannot generate odd
// horizontal timings. Only double clocked modes are adjusted, by shortening
// an odd front porch or sync pulse by one pixel. This is enough for 480i and
// 576i.
//
// Returns an error if the mode still has odd timings. The mode is returned
// unchanged if the hardware supports odd timings.
func (n *Negotiator) FixupOddTimings(mode display.Mode) (display.Mode, error) {
	if !n.variant.UnsupportedOddHTimings() {
		return mode, nil
	}

	if mode.Is(display.DoubleClock) {
		if (mode.HSyncStart-mode.HDisplay)%2 != 0 {
			mode.HSyncStart--
		}
		if (mode.HSyncEnd-mode.HSyncStart)%2 != 0 {
			mode.HSyncEnd--
		}
	}

	if oddHTimings(mode) {
		return mode, curated.Errorf(OddHTimings, mode)
	}

	return mode, nil
}

// The first 2.4GHz wifi channel. Both limits are inclusive.
const (
	WifiBandLow  = 2400000000
	WifiBandHigh = 2422000000
)

// WifiClock is the clock in kHz used for modes that would otherwise
// interfere with the first 2.4GHz wifi channel.
const WifiClock = 238560

// WifiFixup lowers the clock of a mode if the TMDS bit rate of the mode falls
// in the first 2.4GHz wifi channel and the policy asks for wifi frequencies to
// be avoided. The bit rate is ten times the character rate.
//
// The second return value is true if the mode was changed.
func WifiFixup(mode display.Mode, policy Policy) (display.Mode, bool) {
	if !policy.DisableWifiFrequencies {
		return mode, false
	}
	bitRate := mode.ClockHz() * 10
	if bitRate >= WifiBandLow && bitRate <= WifiBandHigh {
		mode.Clock = WifiClock
		return mode, true
	}
	return mode, false
}
