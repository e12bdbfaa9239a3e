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

package scrambling

import (
	"sync"
	"time"

	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/logger"
)

// SCDC is the status and control data channel of the sink. It is used to
// tell the sink to expect a scrambled link.
type SCDC interface {
	SetHighTMDSClockRatio(set bool) error
	SetScrambling(set bool) error
	ScramblingStatus() bool
}

// State of the Monitor.
type State int

// List of valid State values.
const (
	Off State = iota
	Enabling
	On
)

func (st State) String() string {
	switch st {
	case Off:
		return "off"
	case Enabling:
		return "enabling"
	case On:
		return "on"
	}
	return "unknown state"
}

// CheckInterval is the default time between checks of the scrambling status
// of the sink.
const CheckInterval = 1000 * time.Millisecond

// Needed returns true if the sink and the output configuration require the
// link to be scrambled.
func Needed(caps display.SinkCapabilities, cfg display.OutputConfig) bool {
	if !caps.IsHDMI || !caps.SCDC || !caps.Scrambling {
		return false
	}
	return cfg.PixelClockHz > clocks.HDMI14MaxTMDS
}

// Monitor enables scrambling on the link and keeps it enabled. Some sinks
// reset their SCDC registers when they change input or leave standby, so
// while scrambling is on the sink is checked periodically and told again if
// it has lost scrambling.
type Monitor struct {
	ctx  *registers.Context
	scdc SCDC
	perm logger.Permission

	// time between checks. the value is read when scrambling is enabled
	Interval time.Duration

	crit  sync.Mutex
	state State

	// signalled when the state leaves Enabling
	settled *sync.Cond

	// the check goroutine is running while quit is not nil. done is closed
	// by the goroutine when it returns
	quit chan struct{}
	done chan struct{}

	checks  int
	repairs int
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(ctx *registers.Context, scdc SCDC, perm logger.Permission) *Monitor {
	m := &Monitor{
		ctx:      ctx,
		scdc:     scdc,
		perm:     perm,
		Interval: CheckInterval,
	}
	m.settled = sync.NewCond(&m.crit)
	return m
}

// wait for any MaybeEnable() in another goroutine to finish. must be called
// with crit held
func (m *Monitor) waitSettled() {
	for m.state == Enabling {
		m.settled.Wait()
	}
}

// State returns the current state of the Monitor.
func (m *Monitor) State() State {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.state
}

// Pending returns the number of scheduled status checks. It is either zero
// or one.
func (m *Monitor) Pending() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	if m.quit != nil {
		return 1
	}
	return 0
}

// Checks returns the number of status checks made since the Monitor was
// created.
func (m *Monitor) Checks() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.checks
}

// Repairs returns the number of times the sink has been found to have lost
// scrambling and been told again.
func (m *Monitor) Repairs() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.repairs
}

func (m *Monitor) assert() {
	if err := m.scdc.SetHighTMDSClockRatio(true); err != nil {
		logger.Log(m.perm, "hdmi: scrambling", err)
	}
	if err := m.scdc.SetScrambling(true); err != nil {
		logger.Log(m.perm, "hdmi: scrambling", err)
	}
}

// MaybeEnable turns on scrambling if the sink and the output configuration
// need it. Otherwise it does nothing.
//
// If scrambling is already on the sink is told again but no additional check
// is scheduled.
func (m *Monitor) MaybeEnable(caps display.SinkCapabilities, cfg display.OutputConfig) {
	if !Needed(caps, cfg) {
		return
	}

	m.crit.Lock()
	m.waitSettled()
	if m.state == On {
		m.crit.Unlock()
		m.assert()
		return
	}
	m.state = Enabling
	m.crit.Unlock()

	m.assert()
	m.ctx.Modify(registers.ScramblerCtl, 0, registers.ScramblerEnable)

	m.crit.Lock()
	defer m.crit.Unlock()
	defer m.settled.Broadcast()
	m.state = On
	m.quit = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(m.Interval, m.quit, m.done)
}

func (m *Monitor) run(interval time.Duration, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.check()
		case <-quit:
			return
		}
	}
}

func (m *Monitor) check() {
	m.crit.Lock()
	m.checks++
	m.crit.Unlock()

	if m.scdc.ScramblingStatus() {
		return
	}

	logger.Log(m.perm, "hdmi: scrambling", "sink lost scrambling")
	m.assert()

	m.crit.Lock()
	m.repairs++
	m.crit.Unlock()
}

// Disable turns off scrambling. The status check is cancelled and Disable()
// does not return until any check in progress has finished. A MaybeEnable()
// running in another goroutine is allowed to complete before scrambling is
// turned off. It does nothing if scrambling is not on.
func (m *Monitor) Disable() {
	m.crit.Lock()
	m.waitSettled()
	if m.state == Off {
		m.crit.Unlock()
		return
	}
	m.state = Off
	quit, done := m.quit, m.done
	m.quit = nil
	m.done = nil
	m.crit.Unlock()

	if quit != nil {
		close(quit)
		<-done
	}

	m.ctx.Modify(registers.ScramblerCtl, registers.ScramblerEnable, 0)

	if err := m.scdc.SetScrambling(false); err != nil {
		logger.Log(m.perm, "hdmi: scrambling", err)
	}
	if err := m.scdc.SetHighTMDSClockRatio(false); err != nil {
		logger.Log(m.perm, "hdmi: scrambling", err)
	}
}
