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

package modalflag_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/hdmicore/modalflag"
	"github.com/jetsetilly/hdmicore/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-echo", "1", "2"})
	echo := md.AddBool("echo", false, "echo log")

	test.ExpectEquality(t, *echo, false)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, *echo, true)
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(1), "2")
	test.ExpectEquality(t, md.GetArg(2), "")
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"modeset", "-mode", "1080p60", "extra"})
	md.AddSubModes("negotiate", "modeset")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "MODESET")

	md.NewMode()
	mode := md.AddString("mode", "", "display mode")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *mode, "1080p60")
	test.ExpectEquality(t, md.GetArg(0), "extra")
	test.ExpectEquality(t, md.Path(), "MODESET")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-rate", "48000"})
	md.AddSubModes("negotiate", "audio")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "NEGOTIATE")
}

func TestNoHelpAvailable(t *testing.T) {
	w := &strings.Builder{}

	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, w.String(), "No help available\n")
}

func TestHelpFlags(t *testing.T) {
	w := &strings.Builder{}

	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	md.AddBool("echo", true, "echo log")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -echo\n" +
		"    	echo log (default true)\n"
	test.ExpectEquality(t, w.String(), expectedHelp)
}

func TestHelpFlagsAndModes(t *testing.T) {
	w := &strings.Builder{}

	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	md.AddBool("echo", true, "echo log")
	md.AddSubModes("negotiate", "modeset")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -echo\n" +
		"    	echo log (default true)\n" +
		"\n" +
		"  available sub-modes: NEGOTIATE, MODESET\n" +
		"    default: NEGOTIATE\n"
	test.ExpectEquality(t, w.String(), expectedHelp)
}

func TestFlagsBeforeMode(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-echo", "audio", "-rate", "44100"})
	echo := md.AddBool("echo", false, "echo log")
	md.AddSubModes("negotiate", "audio")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *echo, true)
	test.ExpectEquality(t, md.Mode(), "AUDIO")

	md.NewMode()
	rate := md.AddInt("rate", 48000, "sample rate")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *rate, 44100)
	test.ExpectEquality(t, len(md.RemainingArgs()), 0)
}

func TestUnknownFlagWithoutModes(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-rate", "44100"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}
