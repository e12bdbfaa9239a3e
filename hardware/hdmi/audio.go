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
	"github.com/jetsetilly/hdmicore/hardware/hdmi/audio"
)

func (e *Encoder) link() audio.Link {
	return audio.Link{
		IsHDMI:       e.caps.IsHDMI,
		PixelClockHz: e.mode.ClockHz(),
	}
}

// AudioStartup readies the encoder for an audio stream. Returns an error with
// the audio.NotStreaming pattern if the sink is not an HDMI sink.
func (e *Encoder) AudioStartup() error {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.audio.Startup(e.caps.IsHDMI)
}

// AudioPrepare configures the audio path for the stream parameters. The
// clock recovery values are calculated from the committed mode.
func (e *Encoder) AudioPrepare(p audio.Params) error {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.audio.Prepare(p, e.link())
}

// AudioShutdown stops the audio stream.
func (e *Encoder) AudioShutdown() {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.audio.Shutdown()
}

// AudioStreaming returns true between AudioStartup() and AudioShutdown().
func (e *Encoder) AudioStreaming() bool {
	return e.audio.Streaming()
}
