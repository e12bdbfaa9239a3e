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

// Package infoframe writes infoframes into the packet RAM of the HDMI block.
//
// The packet RAM is divided into slots of nine words, one slot per infoframe
// type. The Packer stops a slot, waits for the hardware to finish with it,
// writes the new frame and enables the slot again.
//
// The package also has minimal builders for the AVI, SPD, audio and HDR
// infoframes. The builders produce a frame with header and checksum that is
// ready to be given to Packer.Write().
package infoframe
