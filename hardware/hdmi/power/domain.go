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

package power

import (
	"sync"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Domain is the runtime power domain of the HDMI block. It is reference
// counted. The first Get() powers the block and resets it. The last Put()
// removes power.
//
// Registers of the block must not be accessed unless the domain is active.
type Domain struct {
	ctx  *registers.Context
	v    variant.Variant
	clks clocks.Tree

	crit  sync.Mutex
	count int
}

// NewDomain is the preferred method of initialisation for the Domain type.
func NewDomain(ctx *registers.Context, v variant.Variant, clks clocks.Tree) *Domain {
	return &Domain{
		ctx:  ctx,
		v:    v,
		clks: clks,
	}
}

// Get a reference to the power domain, resuming it if necessary.
func (d *Domain) Get() error {
	d.crit.Lock()
	defer d.crit.Unlock()

	if d.count == 0 {
		if err := d.resume(); err != nil {
			return err
		}
	}
	d.count++

	return nil
}

// Put a reference to the power domain. The domain is suspended when the last
// reference is put.
func (d *Domain) Put() {
	d.crit.Lock()
	defer d.crit.Unlock()

	if d.count == 0 {
		return
	}
	d.count--

	if d.count == 0 {
		d.clks.HSMRPM.Disable()
	}
}

// Active returns true if the domain has at least one reference.
func (d *Domain) Active() bool {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.count > 0
}

// References returns the number of outstanding references.
func (d *Domain) References() int {
	d.crit.Lock()
	defer d.crit.Unlock()
	return d.count
}

func (d *Domain) resume() error {
	// the HSM clock keeps its rate only if it is set while the domain is
	// active
	rpm := d.clks.HSMRPM
	if err := rpm.SetMinRate(clocks.HSMMinimum); err != nil {
		return curated.Errorf(ClockSetFailure, rpm.Name(), err)
	}
	if err := rpm.Enable(); err != nil {
		return curated.Errorf(ClockSetFailure, rpm.Name(), err)
	}

	// a board that booted without a display has no HSM rate. touching the
	// registers in that state stalls the CPU
	if rpm.Rate() == 0 {
		rpm.Disable()
		return curated.Errorf(PowerFailure, "hsm clock has no rate")
	}

	d.v.Reset(d.ctx)

	// logical address unregistered
	d.ctx.Modify(registers.CECCntrl1, 0, registers.CECAddr.Mask)
	d.UpdateCECDivider()

	if !d.v.ExternalIRQController() {
		d.ctx.Write(registers.CECCPUMaskSet, registers.CECCPUMaskAll)
	}

	return nil
}

// UpdateCECDivider sets the divider that produces the CEC bit clock from the
// CEC reference clock.
func (d *Domain) UpdateCECDivider() {
	if d.clks.CEC == nil {
		return
	}
	div := uint32(d.clks.CEC.Rate() / clocks.CECClock)
	d.ctx.Modify(registers.CECCntrl1, registers.CECDivClkCnt.Mask, registers.CECDivClkCnt.Set(div))
}
