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

package environment

import (
	"github.com/jetsetilly/hdmicore/hardware/preferences"
)

// Label is used to name the environment.
type Label string

// MainEncoder is the label of the encoder that drives the physical output.
// Any other label indicates a secondary encoder, for example one created to
// test a mode-set without touching the real hardware.
const MainEncoder = Label("")

// Environment is used to provide context for an encoder instance.
type Environment struct {
	Label Label

	// the board preferences
	Prefs *preferences.Preferences

	// secondary environments are silent by default
	Verbose bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. If prefs is nil then a new instance of the board
// preferences is created with default values.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// regression testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsMainEncoder returns true if the environment is for the encoder driving
// the physical output.
func (env *Environment) IsMainEncoder() bool {
	return env.Label == MainEncoder
}

// IsEncoder checks if the environment has the supplied label.
func (env *Environment) IsEncoder(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEncoder() || env.Verbose
}
