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

// Package timing translates the geometry of a display mode into the values
// of the horizontal and vertical timing registers.
//
// There are two implementations of the Programmer interface, one for each
// generation of the HDMI block. The register layouts differ between the two
// and the Extended programmer also sets up the deep colour packer and the
// general control packet.
package timing
