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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter receives the usage message of the flag package so that it can
// be printed with the sub-modes of the layer.
type helpWriter struct {
	strings.Builder
}

func (hw *helpWriter) help(output io.Writer, banner string, l *layer) {
	usage, flags, _ := strings.Cut(hw.String(), "\n")

	if flags == "" && len(l.subModes) == 0 {
		if banner == "" {
			fmt.Fprintln(output, "No help available")
		} else {
			fmt.Fprintf(output, "No help available for %s\n", banner)
		}
		return
	}

	if banner == "" {
		fmt.Fprintln(output, usage)
	} else {
		fmt.Fprintf(output, "%s for %s mode\n", usage, banner)
	}
	io.WriteString(output, flags)

	if len(l.subModes) > 0 {
		if flags != "" {
			io.WriteString(output, "\n")
		}
		fmt.Fprintf(output, "  available sub-modes: %s\n", strings.Join(l.subModes, ", "))
		fmt.Fprintf(output, "    default: %s\n", l.subModes[0])
	}

	if l.help != "" {
		fmt.Fprintf(output, "\n%s\n", l.help)
	}
}
