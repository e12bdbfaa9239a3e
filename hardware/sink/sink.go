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

package sink

import (
	"sync"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
)

// Sentinal error patterns.
const (
	NoSCDC = "sink: %s does not have an SCDC channel"
)

// Sink is a simulated display. It supplies the capability snapshot that would
// normally come from the EDID and implements the SCDC side channel.
//
// Sink is safe for concurrent use. The scrambling monitor queries the SCDC
// status from its own goroutine.
type Sink struct {
	Name string

	crit sync.Mutex
	caps display.SinkCapabilities

	// SCDC state as set by the source
	highClockRatio bool
	scrambling     bool

	// the sink has lost scrambling lock. cleared when the source sets
	// scrambling again
	lost bool
}

// NewSink is the preferred method of initialisation for the Sink type.
func NewSink(name string, caps display.SinkCapabilities) *Sink {
	return &Sink{
		Name: name,
		caps: caps,
	}
}

func (s *Sink) String() string {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.Name + ": " + s.caps.String()
}

// Capabilities returns the current capability snapshot.
func (s *Sink) Capabilities() display.SinkCapabilities {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.caps
}

// SetCapabilities replaces the capability snapshot, as would happen if the
// display was replaced by another.
func (s *Sink) SetCapabilities(caps display.SinkCapabilities) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.caps = caps
	s.highClockRatio = false
	s.scrambling = false
	s.lost = false
}

// SetHighTMDSClockRatio sets the TMDS bit clock ratio in the SCDC registers
// of the sink.
func (s *Sink) SetHighTMDSClockRatio(set bool) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	if !s.caps.SCDC {
		return curated.Errorf(NoSCDC, s.Name)
	}
	s.highClockRatio = set
	return nil
}

// SetScrambling sets the scrambling enable in the SCDC registers of the sink.
func (s *Sink) SetScrambling(set bool) error {
	s.crit.Lock()
	defer s.crit.Unlock()
	if !s.caps.SCDC {
		return curated.Errorf(NoSCDC, s.Name)
	}
	s.scrambling = set
	s.lost = false
	return nil
}

// ScramblingStatus returns true if the sink is descrambling the link.
func (s *Sink) ScramblingStatus() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.caps.SCDC && s.scrambling && !s.lost
}

// HighTMDSClockRatio returns the TMDS bit clock ratio last set by the
// source.
func (s *Sink) HighTMDSClockRatio() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.highClockRatio
}

// Scrambling returns the scrambling enable last set by the source.
func (s *Sink) Scrambling() bool {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.scrambling
}

// LoseScrambling models a sink that has reset its SCDC registers, as some
// displays do when they change input or come out of standby.
func (s *Sink) LoseScrambling() {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.lost = true
	s.highClockRatio = false
	s.scrambling = false
}
