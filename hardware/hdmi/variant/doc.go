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

// Package variant describes the generations of the HDMI block and the
// routines that differ between them.
//
// The Variant for a device is selected once with Match() using the compatible
// string of the device:
//
//	brcm,bcm2835-hdmi    legacy, 162 MHz
//	brcm,bcm2711-hdmi0   extended, 600 MHz
//	brcm,bcm2711-hdmi1   extended, 340 MHz, swapped lanes
//
// The Variant is given to every component of the encoder that needs
// generation specific behaviour.
package variant
