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

package logger

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries. The Encoder's environment is
// the usual implementation.
type Permission interface {
	AllowLogging() bool
}

type fixed bool

func (f fixed) AllowLogging() bool {
	return bool(f)
}

// Allow is a Permission that always allows logging.
var Allow Permission = fixed(true)

// Deny is a Permission that never allows logging. Components created outside
// of an Encoder, in tests or by command line tools, can use it to stay quiet.
var Deny Permission = fixed(false)
