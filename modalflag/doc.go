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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes and
// allows different flags for each mode.
//
// Arguments are given to NewArgs() and then parsed with Parse(). Sub-modes are
// added with AddSubModes(), the first being the default:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("NEGOTIATE", "MODESET", "AUDIO", "VARIANTS")
//	p, err := md.Parse()
//
// Once a mode has been selected NewMode() prepares the Modes instance for the
// flags specific to that mode:
//
//	switch md.Mode() {
//	case "NEGOTIATE":
//		md.NewMode()
//		sink := md.AddString("sink", "", "sink capability file")
//		p, err := md.Parse()
//		...
//	}
//
// Sub-mode comparisons are case insensitive. If Parse() meets a flag it does
// not recognise and sub-modes have been specified then the default sub-mode
// is selected and the flag is left for the next call to Parse().
package modalflag
