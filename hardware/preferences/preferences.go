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

package preferences

import (
	"sync/atomic"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/prefs"
)

// Sentinal error patterns.
const (
	InvalidMaxBPC = "preferences: max bpc must be 8, 10 or 12 (%d)"
)

// Live values are updated automatically when the corresponding prefs value
// is set. Code that runs outside the preferences critical section, the
// negotiator for example, should read these rather than the prefs values.
type Live struct {
	Disable4K60            atomic.Bool
	DisableWifiFrequencies atomic.Bool
	MaxBPC                 atomic.Int32
}

// Preferences are the board level policy flags for the HDMI encoder.
type Preferences struct {
	reg *prefs.Registry

	// Prefer live values in time critical code
	Live Live

	// limit the pixel clock to 340MHz. boards without adequate cooling or
	// with a poor quality connector can set this to rule out 4k at 60Hz
	Disable4K60 prefs.Bool

	// nudge modes whose TMDS character rate falls in the 2.4GHz wifi
	// channel 1 band onto a nearby clock rate
	DisableWifiFrequencies prefs.Bool

	// the highest bits per component that the negotiator will try
	MaxBPC prefs.Int

	// vendor and product strings used in the SPD infoframe
	Vendor  prefs.String
	Product prefs.String
}

func (p *Preferences) String() string {
	return p.reg.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		reg: prefs.NewRegistry(),
	}

	// register callbacks to update the "live" values from the prefs value
	p.Disable4K60.SetHookPost(func(v prefs.Value) error {
		p.Live.Disable4K60.Store(v.(bool))
		return nil
	})
	p.DisableWifiFrequencies.SetHookPost(func(v prefs.Value) error {
		p.Live.DisableWifiFrequencies.Store(v.(bool))
		return nil
	})
	p.MaxBPC.SetHookPre(func(v prefs.Value) error {
		switch v.(int) {
		case 8, 10, 12:
			return nil
		}
		return curated.Errorf(InvalidMaxBPC, v.(int))
	})
	p.MaxBPC.SetHookPost(func(v prefs.Value) error {
		p.Live.MaxBPC.Store(int32(v.(int)))
		return nil
	})

	// the infoframe allows 8 bytes for the vendor and 16 for the product
	p.Vendor.SetMaxLen(8)
	p.Product.SetMaxLen(16)

	p.SetDefaults()

	err := p.reg.Add("hdmi.disable_4k60", &p.Disable4K60)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.reg.Add("hdmi.disable_wifi_frequencies", &p.DisableWifiFrequencies)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.reg.Add("hdmi.max_bpc", &p.MaxBPC)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.reg.Add("hdmi.spd.vendor", &p.Vendor)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}
	err = p.reg.Add("hdmi.spd.product", &p.Product)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.Disable4K60.Set(false)
	_ = p.DisableWifiFrequencies.Set(false)
	_ = p.MaxBPC.Set(12)
	_ = p.Vendor.Set("Broadcom")
	_ = p.Product.Set("Videocore")
}

// ApplyCommandLine updates the preferences with any values on the top of the
// prefs command line stack.
func (p *Preferences) ApplyCommandLine() error {
	if err := p.reg.ApplyCommandLine(); err != nil {
		return curated.Errorf("preferences: %v", err)
	}
	return nil
}

// Set a preference by key. Keys are of the form "hdmi.max_bpc".
func (p *Preferences) Set(key string, v prefs.Value) error {
	if err := p.reg.Set(key, v); err != nil {
		return curated.Errorf("preferences: %v", err)
	}
	return nil
}
