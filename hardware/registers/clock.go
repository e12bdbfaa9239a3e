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

package registers

import (
	"sync"
	"time"
)

// Clock is the source of time used for delays and polling.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the Clock implementation for real hardware.
type SystemClock struct{}

// Now implements the Clock interface.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep implements the Clock interface.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// FakeClock is a Clock that advances instantly when Sleep() is called. It
// makes polling timeouts deterministic in tests.
type FakeClock struct {
	crit sync.Mutex
	now  time.Time

	// total time spent sleeping
	slept time.Duration
}

// NewFakeClock is the preferred method of initialisation for the FakeClock
// type.
func NewFakeClock() *FakeClock {
	return &FakeClock{
		now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Now implements the Clock interface.
func (clk *FakeClock) Now() time.Time {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	return clk.now
}

// Sleep implements the Clock interface.
func (clk *FakeClock) Sleep(d time.Duration) {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	clk.now = clk.now.Add(d)
	clk.slept += d
}

// Slept returns the total amount of time that has been slept.
func (clk *FakeClock) Slept() time.Duration {
	clk.crit.Lock()
	defer clk.crit.Unlock()
	return clk.slept
}
