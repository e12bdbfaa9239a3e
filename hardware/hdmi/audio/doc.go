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

// Package audio configures the audio path of the HDMI block. Audio samples
// arrive on the MAI bus and are packetised into the video stream. Audio can
// only be sent to HDMI sinks.
//
// A stream is started with Startup(), configured with Prepare() and stopped
// with Shutdown(). Prepare() can be called more than once for the same
// stream.
//
// The sink regenerates the sample clock from the pixel clock using the N and
// CTS values:
//
//	N = 128 * fs / 1000
//	CTS = pixelClock * N / (128 * fs)
package audio
