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

// Package negotiate chooses the output configuration (bits per component,
// pixel format and TMDS character rate) for a display mode.
//
// The search is a simple walk of the candidate space. Bits per component are
// tried from the requested maximum down to 8 in steps of two and for each
// depth RGB is tried before YUV 4:2:2. The first candidate that the sink
// supports and whose clock is within every limit is chosen.
//
// Before negotiation the mode may be adjusted by FixupOddTimings() and
// WifiFixup(). Both return a copy of the mode, the mode given to them is not
// changed.
package negotiate
