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
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
)

// Sentinal error patterns.
const (
	LoadFailure = "sink: load: %v"
)

// the shape of a sink description file
type description struct {
	Name              string   `mapstructure:"name"`
	IsHDMI            bool     `mapstructure:"is_hdmi"`
	ColorFormats      []string `mapstructure:"color_formats" validate:"min=1,dive,oneof=rgb444 ycbcr444 ycbcr422"`
	RGB444DeepColor   []string `mapstructure:"rgb444_deep_color" validate:"dive,oneof=dc30 dc36 dc48"`
	YCbCr444DeepColor []string `mapstructure:"ycbcr444_deep_color" validate:"dive,oneof=dc30 dc36 dc48"`
	MaxTMDSClock      int      `mapstructure:"max_tmds_clock" validate:"min=0,max=1200000"`
	SCDC              bool     `mapstructure:"scdc"`
	Scrambling        bool     `mapstructure:"scrambling"`
}

var colorFormats = map[string]display.ColorFormats{
	"rgb444":   display.RGB444,
	"ycbcr444": display.YCbCr444,
	"ycbcr422": display.YCbCr422,
}

var deepColors = map[string]display.DeepColor{
	"dc30": display.DC30,
	"dc36": display.DC36,
	"dc48": display.DC48,
}

// Load a sink description from a file. Any format supported by viper can be
// used. For example, in YAML:
//
//	name: living room
//	is_hdmi: true
//	color_formats: [rgb444, ycbcr422]
//	rgb444_deep_color: [dc30, dc36]
//	max_tmds_clock: 600000
//	scdc: true
//	scrambling: true
//
// The maximum TMDS clock is in kHz.
func Load(path string) (*Sink, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("name", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	v.SetDefault("color_formats", []string{"rgb444"})

	if err := v.ReadInConfig(); err != nil {
		return nil, curated.Errorf(LoadFailure, err)
	}

	var d description
	if err := v.Unmarshal(&d); err != nil {
		return nil, curated.Errorf(LoadFailure, err)
	}

	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return nil, curated.Errorf(LoadFailure, err)
	}

	caps := display.SinkCapabilities{
		IsHDMI:       d.IsHDMI,
		MaxTMDSClock: d.MaxTMDSClock,
		SCDC:         d.SCDC,
		Scrambling:   d.Scrambling,
	}
	for _, f := range d.ColorFormats {
		caps.ColorFormats |= colorFormats[f]
	}
	for _, dc := range d.RGB444DeepColor {
		caps.RGB444DeepColor |= deepColors[dc]
	}
	for _, dc := range d.YCbCr444DeepColor {
		caps.YCbCr444DeepColor |= deepColors[dc]
	}

	return NewSink(d.Name, caps), nil
}

// Open returns the preset with the name or, if there is no such preset, loads
// the sink from the file at the path.
func Open(nameOrPath string) (*Sink, error) {
	if s, err := Preset(nameOrPath); err == nil {
		return s, nil
	}
	return Load(nameOrPath)
}
