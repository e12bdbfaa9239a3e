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

// Package digest computes running hashes of the writes made to the HDMI
// block. Two runs of the encoder that make the same writes in the same order
// have the same digest, which makes a digest a compact way of checking that
// a change has not altered the sequence of writes for a mode set.
//
// The digest is chained. The buffer of pending writes is prefixed with the
// previous digest value before it is hashed.
package digest

// Digest implementations compute a hash of a stream of data.
type Digest interface {
	Hash() string
	ResetDigest()
}
