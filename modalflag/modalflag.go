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
	"errors"
	"flag"
	"io"
	"os"
	"slices"
	"strings"
)

// separator used when joining modes in the mode path.
const modeSeparator = "/"

// layer is one level of the command line: the flags and sub-modes that are
// recognised between one sub-mode name and the next.
type layer struct {
	flags *flag.FlagSet

	// the first entry is the default sub-mode
	subModes []string

	// printed after the flag and sub-mode summary
	help string
}

func newLayer() *layer {
	return &layer{
		flags: flag.NewFlagSet("", flag.ContinueOnError),
	}
}

// match returns the named sub-mode if arg is one of the sub-modes of the
// layer. Otherwise the default sub-mode is returned with named set to false.
func (l *layer) match(arg string) (mode string, named bool) {
	arg = strings.ToUpper(arg)
	if slices.Contains(l.subModes, arg) {
		return arg, true
	}
	return l.subModes[0], false
}

// Modes provides an easy way of handling command line arguments that select
// a mode of operation, each mode having its own set of flags.
type Modes struct {
	// where to print help messages. os.Stdout is used if Output is nil
	Output io.Writer

	args []string

	// index of the first argument not yet consumed by Parse()
	next int

	// the sub-modes selected by calls to Parse()
	path []string

	current *layer

	// arguments left over by the most recent Parse() that are neither flags
	// nor a sub-mode
	remaining []string
}

func (md *Modes) String() string {
	return md.Path()
}

func (md *Modes) output() io.Writer {
	if md.Output == nil {
		return os.Stdout
	}
	return md.Output
}

// Mode returns the most recently selected sub-mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every sub-mode selected so far, joined with a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and starts the first layer.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.next = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode starts a new layer. Flags and sub-modes added after this call
// apply to the arguments following the most recently selected sub-mode.
func (md *Modes) NewMode() {
	md.current = newLayer()
	md.remaining = nil
}

// AdditionalHelp sets text to be printed after the usual help message for the
// current layer.
func (md *Modes) AdditionalHelp(help string) {
	md.current.help = help
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were specified
	// then Mode() should be consulted
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Parse the arguments for the current layer. The idiomatic usage is:
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
func (md *Modes) Parse() (ParseResult, error) {
	l := md.current

	hw := &helpWriter{}
	l.flags.SetOutput(hw)

	err := l.flags.Parse(md.args[md.next:])
	if errors.Is(err, flag.ErrHelp) {
		hw.help(md.output(), md.Path(), l)
		return ParseHelp, nil
	}

	if err != nil {
		if len(l.subModes) == 0 {
			return ParseError, err
		}

		// the flag is left for the default sub-mode to parse
		md.path = append(md.path, l.subModes[0])
		return ParseContinue, nil
	}

	md.remaining = l.flags.Args()

	if len(l.subModes) > 0 {
		var arg string
		if len(md.remaining) > 0 {
			arg = md.remaining[0]
		}
		mode, named := l.match(arg)
		if named {
			md.remaining = md.remaining[1:]
		}
		md.path = append(md.path, mode)
	}

	md.next = len(md.args) - len(md.remaining)

	return ParseContinue, nil
}

// RemainingArgs returns the arguments left after the most recent call to
// Parse() that are neither flags nor a sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.remaining
}

// GetArg returns an entry from RemainingArgs(). The empty string is returned
// if there is no such entry.
func (md *Modes) GetArg(i int) string {
	if i < 0 || i >= len(md.remaining) {
		return ""
	}
	return md.remaining[i]
}

// AddSubModes adds to the sub-modes of the current layer. The first sub-mode
// ever added is the default. Sub-modes are case insensitive and are
// normalised to upper case.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.current.subModes = append(md.current.subModes, strings.ToUpper(m))
	}
}

// AddBool flag to the current layer.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.current.flags.Bool(name, value, usage)
}

// AddInt flag to the current layer.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.current.flags.Int(name, value, usage)
}

// AddString flag to the current layer.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.current.flags.String(name, value, usage)
}
