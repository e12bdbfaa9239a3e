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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are used throughout the
// HDMI core to signal the error taxonomy of the encoder (no valid
// configuration, clock failures, packet timeouts and so on).
//
// Curated errors are created with the Errorf() function. The first argument
// is a pattern, which is also what identifies the error:
//
//	const BusyTimeout = "infoframe: %s packet did not go idle"
//
//	err := curated.Errorf(BusyTimeout, slot)
//
//	if curated.Is(err, BusyTimeout) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("hdmi: %v", err)
//
//	if curated.Has(f, BusyTimeout) {
//		fmt.Println("true")
//	}
//
// In this example Is(f, BusyTimeout) would be false because f was created
// with a different pattern.
//
// The Error() implementation normalises the chain by removing duplicate
// adjacent parts. For the purposes of this package a chain is a series of
// parts separated by the sub-string ": ", so wrapping an "hdmi: ..." error in
// another "hdmi: %v" pattern does not produce "hdmi: hdmi: ...".
//
// Any error values given to Errorf() are returned by Unwrap(), which means
// the standard library errors.Is() and errors.As() functions work as
// expected.
package curated
