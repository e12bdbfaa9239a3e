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

// Package hardware is the base package for the HDMI core. It contains no code
// of its own. The sub-packages are:
//
//	registers	access to the registers of the HDMI block
//	clocks		the clock tree of the SoC
//	preferences	board level policy
//	sink		a simulated display
//	hdmi		the encoder and its sub-systems
//
// The encoder can be run without hardware by giving it the register file of
// the hdmi/simulated package and the simulated clock tree of the clocks
// package.
package hardware
