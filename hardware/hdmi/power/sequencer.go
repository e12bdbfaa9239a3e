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
	"time"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/colorspace"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
	"github.com/jetsetilly/hdmicore/hardware/registers"
)

// Sentinal error patterns.
const (
	ClockSetFailure = "power: %s clock: %v"
	PowerFailure    = "power: domain: %v"
	PHYFailure      = "power: phy: %v"
	RecenterTimeout = "power: fifo recenter did not complete"
	ActiveTimeout   = "power: scheduler did not go %s"
)

// Timeouts and delays used by the Sequencer.
const (
	ActiveWait    = 1000 * time.Millisecond
	RecenterWait  = time.Millisecond
	RecenterDelay = time.Millisecond
	DisableDelay  = time.Millisecond
)

// Sequencer brings the HDMI block up and down in the correct order. It does
// not serialise calls, that is the responsibility of the encoder.
type Sequencer struct {
	ctx    *registers.Context
	v      variant.Variant
	clks   clocks.Tree
	domain *Domain
	packer *infoframe.Packer

	// release functions for the resources acquired by Configure(), in the
	// order they were acquired
	acquired []func()
}

// NewSequencer is the preferred method of initialisation for the Sequencer
// type.
func NewSequencer(ctx *registers.Context, v variant.Variant, clks clocks.Tree, domain *Domain, packer *infoframe.Packer) *Sequencer {
	return &Sequencer{
		ctx:    ctx,
		v:      v,
		clks:   clks,
		domain: domain,
		packer: packer,
	}
}

// Powered returns true if Configure() has succeeded and PowerDown() has not
// been called since.
func (s *Sequencer) Powered() bool {
	return len(s.acquired) > 0
}

func (s *Sequencer) unwind() {
	for i := len(s.acquired) - 1; i >= 0; i-- {
		s.acquired[i]()
	}
	s.acquired = s.acquired[:0]
}

func (s *Sequencer) enableClock(clk clocks.Clock) error {
	if err := clk.Enable(); err != nil {
		return curated.Errorf(ClockSetFailure, clk.Name(), err)
	}
	s.acquired = append(s.acquired, clk.Disable)
	return nil
}

// Configure powers the HDMI block for the mode and output configuration and
// programs the timings. If any step fails the resources acquired by the
// earlier steps are released in reverse order and the error is returned.
// Timings are not programmed if power could not be established.
func (s *Sequencer) Configure(mode display.Mode, cfg display.OutputConfig) error {
	if s.Powered() {
		s.PowerDown()
	}

	// the HDMI state machine must run slightly faster than the pixel clock
	if err := s.clks.HSM.SetMinRate(clocks.HSMRate(cfg.PixelClockHz)); err != nil {
		return curated.Errorf(ClockSetFailure, s.clks.HSM.Name(), err)
	}

	if err := s.domain.Get(); err != nil {
		return err
	}
	s.acquired = append(s.acquired, s.domain.Put)

	if err := s.clks.Pixel.SetRate(cfg.PixelClockHz); err != nil {
		s.unwind()
		return curated.Errorf(ClockSetFailure, s.clks.Pixel.Name(), err)
	}
	if err := s.enableClock(s.clks.Pixel); err != nil {
		s.unwind()
		return err
	}

	// the CEC reference may have changed with the HSM rate
	s.domain.UpdateCECDivider()

	if s.v.HasBVBClock() && s.clks.BVB != nil {
		if err := s.clks.BVB.SetMinRate(clocks.BVBRate(cfg.PixelClockHz)); err != nil {
			s.unwind()
			return curated.Errorf(ClockSetFailure, s.clks.BVB.Name(), err)
		}
		if err := s.enableClock(s.clks.BVB); err != nil {
			s.unwind()
			return err
		}
	}

	if err := s.v.PHYInit(s.ctx, cfg); err != nil {
		s.unwind()
		return curated.Errorf(PHYFailure, err)
	}
	s.acquired = append(s.acquired, func() { s.v.PHYDisable(s.ctx) })

	s.ctx.Locked(func(rw registers.RW) {
		s.v.SetTimings(rw, mode, cfg)
		rw.Modify(registers.SchedulerControl, 0, registers.SchedulerManualFormat|registers.SchedulerIgnoreVSyncPredict)
	})

	return nil
}

// PreEnable sets up the colorspace converter and makes the HDMI block the
// master of the pixel FIFO.
func (s *Sequencer) PreEnable(mode display.Mode, caps display.SinkCapabilities, cfg display.OutputConfig) {
	fullRange := colorspace.FullRange(mode, caps)
	s.ctx.Locked(func(rw registers.RW) {
		s.v.SetupCSC(rw, cfg, fullRange)
		rw.Write(registers.FIFOCtl, registers.FIFOCtlMasterSlaveN)
	})
}

// EnableVideo starts video output and selects HDMI or DVI signalling. For
// HDMI sinks the packet RAM is enabled.
//
// An error with the ActiveTimeout pattern is returned if the scheduler does
// not change mode in time. The error is not fatal and the video will
// normally still be output.
func (s *Sequencer) EnableVideo(mode display.Mode, isHDMI bool) error {
	vid := registers.VidCtlEnable | registers.VidCtlClrRGB |
		registers.VidCtlUnderflowEnable | registers.VidCtlFrameCounterReset
	if !mode.Is(display.PVSync) {
		vid |= registers.VidCtlVSyncLow
	}
	if !mode.Is(display.PHSync) {
		vid |= registers.VidCtlHSyncLow
	}

	s.ctx.Write(registers.VidCtl, vid)
	s.ctx.Modify(registers.VidCtl, registers.VidCtlBlankPix, 0)

	var err error

	if isHDMI {
		s.ctx.Modify(registers.SchedulerControl, 0, registers.SchedulerModeHDMI)
		if !s.ctx.WaitFor(func(rw registers.RW) bool {
			return rw.Read(registers.SchedulerControl)&registers.SchedulerHDMIActive != 0
		}, ActiveWait) {
			err = curated.Errorf(ActiveTimeout, "active")
		}
		s.packer.EnableRAM()
	} else {
		s.ctx.Modify(registers.RAMPacketConfig, registers.RAMPacketEnable, 0)
		s.ctx.Modify(registers.SchedulerControl, registers.SchedulerModeHDMI, 0)
		if !s.ctx.WaitFor(func(rw registers.RW) bool {
			return rw.Read(registers.SchedulerControl)&registers.SchedulerHDMIActive == 0
		}, ActiveWait) {
			err = curated.Errorf(ActiveTimeout, "inactive")
		}
	}

	return err
}

// RecenterFIFO recenters the pixel FIFO. An error with the RecenterTimeout
// pattern is not fatal.
func (s *Sequencer) RecenterFIFO() error {
	drift := s.ctx.Read(registers.FIFOCtl) & registers.FIFOCtlValidWriteMask

	pulse := func() {
		s.ctx.Write(registers.FIFOCtl, drift&^registers.FIFOCtlRecenter)
		s.ctx.Write(registers.FIFOCtl, drift|registers.FIFOCtlRecenter)
	}

	pulse()
	s.ctx.Delay(RecenterDelay)
	pulse()

	if !s.ctx.WaitFor(func(rw registers.RW) bool {
		return rw.Read(registers.FIFOCtl)&registers.FIFOCtlRecenterDone != 0
	}, RecenterWait) {
		return curated.Errorf(RecenterTimeout)
	}

	return nil
}

// DisableVideo stops the packet RAM and video output.
func (s *Sequencer) DisableVideo() {
	s.packer.DisableAll()
	s.ctx.Modify(registers.VidCtl, 0, registers.VidCtlClrRGB)
	s.ctx.Delay(DisableDelay)
	s.ctx.Modify(registers.VidCtl, registers.VidCtlEnable, 0)
}

// PowerDown blanks the output and releases everything acquired by
// Configure() in reverse order. It does nothing if the block is not powered.
func (s *Sequencer) PowerDown() {
	if !s.Powered() {
		return
	}
	s.ctx.Modify(registers.VidCtl, 0, registers.VidCtlBlankPix)
	s.unwind()
}
