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

// Clock is a single clock in the clock tree of the SoC. Rate changes and
// enabling can sleep.
type Clock interface {
	Name() string
	SetRate(hz uint64) error
	SetMinRate(hz uint64) error
	Rate() uint64
	Enable() error
	Disable()
}

// Tree is the set of clocks used by a single HDMI block. Clocks that do not
// exist on a hardware variant are nil.
type Tree struct {
	// the TMDS character clock
	Pixel Clock

	// the HDMI state machine clock. HSMRPM is the reference to the same
	// clock held by the runtime power domain
	HSM    Clock
	HSMRPM Clock

	// the pixel BVB clock. not present on the legacy hardware
	BVB Clock

	// reference clocks for the audio path and CEC
	Audio Clock
	CEC   Clock
}
