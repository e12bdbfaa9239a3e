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

package digest_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/hdmicore/digest"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/test"
)

var writes = []registers.Access{
	{Register: registers.VidCtl, Value: 0x80000000},
	{Register: registers.SchedulerControl, Value: 0x00000021},
	{Register: registers.FIFOCtl, Value: 0x00000001},
}

func TestDeterministic(t *testing.T) {
	a := digest.NewRegisters()
	a.Journal(writes)

	b := digest.NewRegisters()
	for _, w := range writes {
		b.Write(w)
	}

	test.ExpectEquality(t, a.Hash(), b.Hash())

	// hashing again without any writes does not change the digest
	h := a.Hash()
	test.ExpectEquality(t, a.Hash(), h)
}

func TestOrder(t *testing.T) {
	a := digest.NewRegisters()
	a.Journal(writes)

	b := digest.NewRegisters()
	b.Journal([]registers.Access{writes[1], writes[0], writes[2]})

	test.ExpectInequality(t, a.Hash(), b.Hash())
}

func TestChained(t *testing.T) {
	// enough writes to fill the buffer many times over
	var long []registers.Access
	for i := range 2000 {
		long = append(long, registers.Access{Register: registers.RAMPacketStart.Offset(i % 64), Value: uint32(i)})
	}

	a := digest.NewRegisters()
	a.Journal(long)

	// a change early in the stream is carried through every later flush
	long[0].Value++
	b := digest.NewRegisters()
	b.Journal(long)

	test.ExpectInequality(t, a.Hash(), b.Hash())
}

func TestReset(t *testing.T) {
	var d digest.Digest = digest.NewRegisters()
	empty := d.Hash()
	test.ExpectEquality(t, empty, fmt.Sprintf("%040x", 0))

	d.(*digest.Registers).Journal(writes)
	test.ExpectInequality(t, d.Hash(), empty)

	d.ResetDigest()
	test.ExpectEquality(t, d.Hash(), empty)
}
