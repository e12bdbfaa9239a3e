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

// Package simulated models the status bits of the HDMI block so that the HDMI
// core can be run without hardware.
//
// The model is a registers.File with write hooks. The packet RAM status
// follows the packet RAM enable bits, the scheduler reports HDMI active when
// HDMI mode is selected, a FIFO recenter completes immediately and the PHY
// PLL locks as soon as it leaves reset. Any of these can be stalled to test
// the behaviour of the HDMI core when the hardware does not respond.
package simulated
