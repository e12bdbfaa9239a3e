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

package colorspace

import (
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Matrix is a 3x4 colour conversion matrix. The first three columns are the
// coefficients as signed 2.13 fixed point values. The fourth column is the
// offset as a signed 9.6 fixed point value.
type Matrix [3][4]uint16

// Unity passes full range RGB through unchanged.
var Unity = Matrix{
	{0x2000, 0x0000, 0x0000, 0x0000},
	{0x0000, 0x2000, 0x0000, 0x0000},
	{0x0000, 0x0000, 0x2000, 0x0000},
}

// LimitedRGB squashes full range RGB into 16-235 with a scale of 0.8594 and
// an offset of 16.
var LimitedRGB = Matrix{
	{0x1b80, 0x0000, 0x0000, 0x0400},
	{0x0000, 0x1b80, 0x0000, 0x0400},
	{0x0000, 0x0000, 0x1b80, 0x0400},
}

// YUV422BT709 converts full range RGB to limited range BT.709 YUV. Rows are
// in Y, Cb, Cr order.
var YUV422BT709 = Matrix{
	{0x05d2, 0x1394, 0x01fa, 0x0400},
	{0xfccc, 0xf536, 0x0e00, 0x2000},
	{0x0e00, 0xf34a, 0xfeb8, 0x2000},
}

// YUV444BT709 is the same conversion as YUV422BT709 with the rows in the Cb,
// Cr, Y order expected by the 4:4:4 output path.
var YUV444BT709 = Matrix{
	{0xfccc, 0xf536, 0x0e00, 0x2000},
	{0x0e00, 0xf34a, 0xfeb8, 0x2000},
	{0x05d2, 0x1394, 0x01fa, 0x0400},
}

// LegacyLimitedRGB is the 16-235 range conversion for the legacy hardware.
// The legacy converter uses a different fixed point format and expects the
// channels in BGR order, hence the anti-diagonal.
var LegacyLimitedRGB = Matrix{
	{0x000, 0x000, 0x6e0, 0x100},
	{0x000, 0x6e0, 0x000, 0x100},
	{0x6e0, 0x000, 0x000, 0x100},
}

// coefficient registers, two values per register
var coefficients = [3][2]registers.Register{
	{registers.CSC1211, registers.CSC1413},
	{registers.CSC2221, registers.CSC2423},
	{registers.CSC3231, registers.CSC3433},
}

// write matrix to the coefficient registers. the value for the odd numbered
// column is in the low half of the register.
func (m Matrix) write(rw registers.RW) {
	for r := range m {
		rw.Write(coefficients[r][0], uint32(m[r][1])<<16|uint32(m[r][0]))
		rw.Write(coefficients[r][1], uint32(m[r][3])<<16|uint32(m[r][2]))
	}
}

// Read the matrix back from the coefficient registers.
func Read(rw registers.RW) Matrix {
	var m Matrix
	for r := range m {
		a := rw.Read(coefficients[r][0])
		b := rw.Read(coefficients[r][1])
		m[r] = [4]uint16{uint16(a), uint16(a >> 16), uint16(b), uint16(b >> 16)}
	}
	return m
}
