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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// the length of the buffer. the first sha1.Size bytes of the buffer are the
// previous digest value
const bufferLength = 4096

// Registers is a digest of register writes.
type Registers struct {
	digest   [sha1.Size]byte
	buffer   []byte
	bufferCt int
}

// NewRegisters is the preferred method of initialisation for the Registers
// type.
func NewRegisters() *Registers {
	dig := &Registers{
		buffer: make([]byte, bufferLength),
	}
	dig.bufferCt = sha1.Size
	return dig
}

func (dig *Registers) String() string {
	return dig.Hash()
}

// Hash implements the Digest interface. Pending writes are included in the
// hash.
func (dig *Registers) Hash() string {
	dig.flush()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Registers) ResetDigest() {
	clear(dig.digest[:])
	clear(dig.buffer)
	dig.bufferCt = sha1.Size
}

// Write adds a single register write to the digest.
func (dig *Registers) Write(a registers.Access) {
	for _, b := range []byte(a.Register) {
		dig.add(b)
	}

	// the name is terminated so that a name that is a prefix of another name
	// does not give the same stream of bytes
	dig.add(0)

	dig.add(uint8(a.Value))
	dig.add(uint8(a.Value >> 8))
	dig.add(uint8(a.Value >> 16))
	dig.add(uint8(a.Value >> 24))
}

// Journal adds every write in the journal to the digest.
func (dig *Registers) Journal(journal []registers.Access) {
	for _, a := range journal {
		dig.Write(a)
	}
}

func (dig *Registers) add(b byte) {
	dig.buffer[dig.bufferCt] = b
	dig.bufferCt++
	if dig.bufferCt >= bufferLength {
		dig.flush()
	}
}

func (dig *Registers) flush() {
	if dig.bufferCt == sha1.Size {
		return
	}
	copy(dig.buffer, dig.digest[:])
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	dig.bufferCt = sha1.Size
}
