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

// Package registers is the register access layer of the HDMI core. Registers
// are referred to by name and the bit layouts of the fields used by the core
// are defined here, separately for the legacy and extended hardware
// generations where they differ.
//
// All access goes through a Context, which owns the register lock and the
// clock used for delays and polling. A single Context is created for each
// HDMI block and given to every component at construction.
//
// The File type is an in-memory Bus implementation with write hooks and a
// journal of writes. Together with the FakeClock it allows the sequencing
// of the encoder to be tested without hardware.
package registers
