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

// Package prefs provides the typed preference values used by the HDMI core.
// Each value type (Bool, Int, Float and String) can have a pre and post hook
// attached. The post hook is normally used to update an atomic "live" copy
// of the value that is read by code that should not take a lock.
//
// Values are collected into a Registry by key. A Registry can be updated in
// bulk from a map, which is how values loaded from a board configuration
// file are applied, and from the command line stack.
//
// The command line stack allows preferences to be specified on the command
// line with a simple key::value syntax. Entries are separated with a
// semi-colon:
//
//	hdmi.max_bpc::10; hdmi.disable_4k60::true
//
// Values taken from the stack are removed from it so that the remaining,
// unused, entries can be reported back to the user.
package prefs
