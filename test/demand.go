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

package test

import "testing"

// The Demand*() functions are the same as the corresponding Expect*()
// functions except that a failure ends the test immediately.
//
// Use them when the values being tested are needed by later tests and so must
// be correct. For example, an error from a constructor or the length of two
// slices that are about to be iterated over in unison.

// DemandEquality is the fatal version of ExpectEquality().
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) {
	t.Helper()
	if !ExpectEquality(t, v, expectedValue, tags...) {
		t.FailNow()
	}
}

// DemandSuccess is the fatal version of ExpectSuccess().
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	if !ExpectSuccess(t, v, tags...) {
		t.FailNow()
	}
}

// DemandFailure is the fatal version of ExpectFailure().
func DemandFailure(t *testing.T, v any, tags ...any) {
	t.Helper()
	if !ExpectFailure(t, v, tags...) {
		t.FailNow()
	}
}
