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

package hdmi

import (
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// the CEC bit clock period in microseconds
const cecPeriod = 1000000 / clocks.CECClock

// CECEnable enables or disables the CEC adapter. The power domain is held for
// as long as the adapter is enabled.
//
// The adapter can be enabled by a callback from inside Detect(), which holds
// the config mutex, so the config mutex is not taken here. A concurrent
// Enable() can rewrite the CEC clock divider while the adapter is being
// enabled. The power domain has its own lock so the reference count is
// always correct.
func (e *Encoder) CECEnable(enable bool) error {
	e.cecCrit.Lock()
	defer e.cecCrit.Unlock()

	if enable == e.cecEnabled {
		return nil
	}

	reset := registers.CECTxSWReset | registers.CECRxSWReset
	timing := registers.CECCntTo4700.Set(4700/cecPeriod) | registers.CECCntTo4500.Set(4500/cecPeriod)
	mask := reset | registers.CECCntTo4700.Mask | registers.CECCntTo4500.Mask

	if enable {
		if err := e.domain.Get(); err != nil {
			return err
		}

		e.ctx.Locked(func(rw registers.RW) {
			rw.Modify(registers.CECCntrl5, mask, timing|reset)
			rw.Modify(registers.CECCntrl5, reset, 0)
			if !e.v.ExternalIRQController() {
				rw.Write(registers.CECCPUMaskClear, registers.CPUCEC)
			}
		})
	} else {
		e.ctx.Locked(func(rw registers.RW) {
			if !e.v.ExternalIRQController() {
				rw.Write(registers.CECCPUMaskSet, registers.CPUCEC)
			}
			rw.Modify(registers.CECCntrl5, mask, timing|reset)
		})

		e.domain.Put()
	}

	e.cecEnabled = enable

	return nil
}

// CECEnabled returns true if the CEC adapter is enabled.
func (e *Encoder) CECEnabled() bool {
	e.cecCrit.Lock()
	defer e.cecCrit.Unlock()
	return e.cecEnabled
}
