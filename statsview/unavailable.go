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

//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Address of the stats server. Empty when statsview is unavailable.
const Address = ""

// Launch reports that statsview is not available in this build.
func Launch(output io.Writer) func() {
	fmt.Fprintln(output, "stats server not available in this build (build with -tags statsview)")
	return func() {}
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
