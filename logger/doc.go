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

// Package logger is the central log repository for the HDMI core. Log entries
// are "tagged" with the subsystem that produced them, for example "hdmi:
// infoframe" or "hdmi: power", and adjacent duplicate entries are collapsed
// into a single entry with a repeat count.
//
// Every call to Log() or Logf() takes a Permission argument. The environment
// package implements this interface so that an encoder created for a
// secondary purpose (a dry run of a mode-set for example) can be silenced.
// The Allow value is available for code that should always log.
//
// In addition to the central logger, instances of Logger can be created with
// NewLogger(). This is useful for tests and for isolating the log of a
// single encoder.
package logger
