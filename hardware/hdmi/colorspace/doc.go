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

// Package colorspace configures the colour space converter that sits between
// the pixel valve and the HDMI encoder.
//
// RGB output is either passed through unchanged or squashed into the limited
// 16-235 range expected by sinks for CEA modes. YUV output uses the BT.709
// coefficients. Only the Extended converter can produce YUV.
package colorspace
