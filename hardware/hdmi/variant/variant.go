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

package variant

import (
	"fmt"
	"sort"
	"time"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Sentinal error patterns.
const (
	UnknownVariant = "variant: no hardware matches %s"
	PLLNotLocked   = "variant: %s: PHY PLL did not lock"
)

// Lane is a TMDS lane of the PHY.
type Lane int

// List of valid Lane values.
const (
	Lane0 Lane = iota
	Lane1
	Lane2
	LaneClock
)

func (l Lane) String() string {
	if l == LaneClock {
		return "CK"
	}
	return fmt.Sprintf("%d", int(l))
}

// Lanes maps the logical TMDS channels 0, 1, 2 and the clock onto the
// physical lanes of the PHY.
type Lanes [4]Lane

// Variant describes a generation of the HDMI block and provides the
// routines that differ between generations. A Variant is chosen once with
// Match() and never changes.
//
// SetTimings(), SetupCSC() and ActivePixels() are called with the register
// lock held. The remaining routines take the register lock as required and
// may sleep.
type Variant interface {
	Name() string
	Compatible() string

	// maximum TMDS character rate in Hz
	MaxPixelClock() uint64

	LaneMapping() Lanes
	SupportsHDR() bool

	// the hardware cannot generate odd horizontal timings
	UnsupportedOddHTimings() bool

	// CEC interrupts are routed through an interrupt controller outside of
	// the HDMI block
	ExternalIRQController() bool

	// the block has the BVB clock between the pixel valve and the encoder
	HasBVBClock() bool

	Reset(ctx *registers.Context)

	SetTimings(rw registers.RW, mode display.Mode, cfg display.OutputConfig)
	ActivePixels(rw registers.RW) int
	SetupCSC(rw registers.RW, cfg display.OutputConfig, fullRange bool)

	PHYInit(ctx *registers.Context, cfg display.OutputConfig) error
	PHYDisable(ctx *registers.Context)
	PHYRngEnable(ctx *registers.Context)
	PHYRngDisable(ctx *registers.Context)

	// ChannelMap returns the MAI channel map for a mask of active audio
	// channels
	ChannelMap(mask uint32) uint32

	// HotplugDetect returns the state of the hotplug signal. The second value
	// is false if the variant cannot detect hotplug from a register, in which
	// case the first value is meaningless.
	HotplugDetect(ctx *registers.Context) (bool, bool)
}

// PLLLockTimeout is the time allowed for the PHY PLL to lock after reset is
// released.
const PLLLockTimeout = 10 * time.Millisecond

// the list of known variants, keyed by device compatible string
var variants = map[string]Variant{
	BCM2835.Compatible(): BCM2835,
	HDMI0.Compatible():   HDMI0,
	HDMI1.Compatible():   HDMI1,
}

// Match returns the Variant for a device compatible string.
func Match(compatible string) (Variant, error) {
	if v, ok := variants[compatible]; ok {
		return v, nil
	}
	return nil, curated.Errorf(UnknownVariant, compatible)
}

// Compatibles returns the compatible strings of every known variant, sorted.
func Compatibles() []string {
	c := make([]string, 0, len(variants))
	for k := range variants {
		c = append(c, k)
	}
	sort.Strings(c)
	return c
}

// Summary returns a one line description of the variant.
func Summary(v Variant) string {
	return fmt.Sprintf("%s (%s): max %s, lanes %v, hdr=%v odd-h=%v",
		v.Name(), v.Compatible(), clocks.Format(v.MaxPixelClock()),
		v.LaneMapping(), v.SupportsHDR(), !v.UnsupportedOddHTimings())
}

// channelMap places the index of every channel in the mask into a slot of
// the given width.
func channelMap(mask uint32, width int) uint32 {
	var m uint32
	for i := 0; i < 8; i++ {
		if mask&(1<<i) != 0 {
			m |= uint32(i) << (width * i)
		}
	}
	return m
}
