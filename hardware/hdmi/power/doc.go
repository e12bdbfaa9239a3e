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

// Package power sequences the HDMI block through power-up, mode-set,
// enable, disable and power-down.
//
// The Domain type is the runtime power domain of the block. It is reference
// counted and is held by the Sequencer for as long as video is configured.
// Other users of the block, such as hotplug detection and CEC, take their own
// reference.
//
// The Sequencer acquires clocks, the power domain and the PHY in a fixed
// order. A failure part way through releases what was acquired in reverse
// order, so a failed Configure() leaves the block in the same state as it
// was found.
package power
