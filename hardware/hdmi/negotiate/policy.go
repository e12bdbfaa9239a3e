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
	"fmt"

	"github.com/jetsetilly/hdmicore/hardware/preferences"
)

// Policy is the board configuration that affects negotiation.
type Policy struct {
	// limit the TMDS character rate to the HDMI 1.4 maximum
	Disable4K60 bool

	// move modes out of the 2.4GHz wifi channel 1 band
	DisableWifiFrequencies bool

	// the largest bits per component to try. values outside of the range
	// 8 to 12 are clamped
	MaxBPC int
}

// DefaultPolicy has no restrictions and starts negotiation at 12 bits per
// component.
var DefaultPolicy = Policy{MaxBPC: 12}

// PolicyFromPreferences takes a snapshot of the live preference values.
func PolicyFromPreferences(p *preferences.Preferences) Policy {
	return Policy{
		Disable4K60:            p.Live.Disable4K60.Load(),
		DisableWifiFrequencies: p.Live.DisableWifiFrequencies.Load(),
		MaxBPC:                 int(p.Live.MaxBPC.Load()),
	}
}

func (p Policy) String() string {
	return fmt.Sprintf("max_bpc=%d disable_4k60=%v disable_wifi_frequencies=%v",
		p.MaxBPC, p.Disable4K60, p.DisableWifiFrequencies)
}
