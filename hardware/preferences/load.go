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
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/prefs"
)

// Sentinal error patterns.
const (
	LoadFailure = "preferences: load: %v"
)

// the shape of a board configuration file. every field has a default so that
// a file only needs to mention the values that differ
type board struct {
	Disable4K60            bool   `mapstructure:"disable_4k60"`
	DisableWifiFrequencies bool   `mapstructure:"disable_wifi_frequencies"`
	MaxBPC                 int    `mapstructure:"max_bpc" validate:"oneof=8 10 12"`
	Vendor                 string `mapstructure:"spd_vendor" validate:"max=8"`
	Product                string `mapstructure:"spd_product" validate:"max=16"`
}

// Load board configuration from file. Any format supported by viper can be
// used, the format being decided by the file extension. Environment variables
// with the HDMI_ prefix override the file, for example HDMI_MAX_BPC=8.
//
// Values not mentioned in the file or the environment keep their current
// value.
func (p *Preferences) Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("HDMI")
	v.AutomaticEnv()

	v.SetDefault("disable_4k60", p.Disable4K60.Get())
	v.SetDefault("disable_wifi_frequencies", p.DisableWifiFrequencies.Get())
	v.SetDefault("max_bpc", p.MaxBPC.Get())
	v.SetDefault("spd_vendor", p.Vendor.String())
	v.SetDefault("spd_product", p.Product.String())

	if err := v.ReadInConfig(); err != nil {
		return curated.Errorf(LoadFailure, err)
	}

	var b board
	if err := v.Unmarshal(&b); err != nil {
		return curated.Errorf(LoadFailure, err)
	}

	validate := validator.New()
	if err := validate.Struct(b); err != nil {
		return curated.Errorf(LoadFailure, err)
	}

	err := p.reg.Apply(map[string]prefs.Value{
		"hdmi.disable_4k60":             b.Disable4K60,
		"hdmi.disable_wifi_frequencies": b.DisableWifiFrequencies,
		"hdmi.max_bpc":                  b.MaxBPC,
		"hdmi.spd.vendor":               b.Vendor,
		"hdmi.spd.product":              b.Product,
	})
	if err != nil {
		return curated.Errorf(LoadFailure, err)
	}

	return nil
}
