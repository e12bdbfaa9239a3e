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

// Package display contains the data model shared by the components of the
// HDMI core: the geometry of a display mode, the capabilities of the sink and
// the output configuration that results from negotiation.
//
// The package also carries a table of the CEA-861 video formats. MatchCEA()
// is used to decide the default quantisation range for RGB output and to
// apply the special rules for VIC 1.
package display
