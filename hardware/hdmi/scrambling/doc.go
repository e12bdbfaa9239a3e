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

// Package scrambling controls TMDS scrambling, which is required for TMDS
// character rates above 340MHz.
//
// Scrambling needs the cooperation of the sink, which is told to expect a
// scrambled link through its SCDC registers. The Monitor does this and then
// checks the sink once a second in case it has forgotten.
package scrambling
