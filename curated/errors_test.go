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

package curated_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/test"
)

const testPattern = "test: %s"
const wrapPattern = "wrap: %v"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("error: %v", curated.Errorf("error: %v", "foo"))
	test.ExpectEquality(t, e.Error(), "error: foo")

	e = curated.Errorf("a: %v", curated.Errorf("b: %v", curated.Errorf("b: %v", "c")))
	test.ExpectEquality(t, e.Error(), "a: b: c")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, "foo")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, wrapPattern))

	f := curated.Errorf(wrapPattern, e)
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))

	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.Has(nil, testPattern))
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf(wrapPattern, io.EOF)
	test.ExpectSuccess(t, errors.Is(e, io.EOF))
	test.ExpectEquality(t, e.Error(), "wrap: EOF")
}
