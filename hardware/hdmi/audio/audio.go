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

package audio

import (
	"fmt"
	"sync"

	goaudio "github.com/go-audio/audio"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/logger"
)

// Sentinal error patterns.
const (
	NotStreaming  = "audio: cannot stream to a DVI sink"
	InvalidParams = "audio: invalid parameters: %s"
)

// MaxChannels is the number of channels supported by the MAI bus.
const MaxChannels = 8

// Params describe the audio stream being sent to the HDMI block.
type Params struct {
	*goaudio.Format

	// bits per sample
	SampleWidth int

	// the stream is compressed audio (IEC 61937) rather than PCM. eight
	// channel compressed audio is sent as high bit rate audio
	NonAudio bool
}

func (p Params) String() string {
	if p.Format == nil {
		return "no format"
	}
	return fmt.Sprintf("%d channels %dHz %d bit", p.NumChannels, p.SampleRate, p.SampleWidth)
}

func (p Params) validate() error {
	if p.Format == nil {
		return curated.Errorf(InvalidParams, "no format")
	}
	if p.NumChannels < 1 || p.NumChannels > MaxChannels {
		return curated.Errorf(InvalidParams, fmt.Sprintf("%d channels", p.NumChannels))
	}
	if p.SampleRate <= 0 {
		return curated.Errorf(InvalidParams, fmt.Sprintf("%dHz", p.SampleRate))
	}
	return nil
}

// HBR returns true if the stream will be sent as high bit rate audio.
func (p Params) HBR() bool {
	return p.NonAudio && p.NumChannels == 8
}

// Link is the state of the video link that the audio is carried on.
type Link struct {
	IsHDMI bool

	// the pixel clock of the mode in Hz. this is the mode clock and not the
	// TMDS character rate
	PixelClockHz uint64
}

// sample rate codes for the MAI format register
var sampleRateCodes = map[int]uint32{
	8000:   1,
	11025:  2,
	12000:  3,
	16000:  4,
	22050:  5,
	24000:  6,
	32000:  7,
	44100:  8,
	48000:  9,
	64000:  10,
	88200:  11,
	96000:  12,
	128000: 13,
	176400: 14,
	192000: 15,
}

// SampleRateCode returns the MAI format code for the sample rate. Rates
// without a code are sent as "not indicated", which is zero.
func SampleRateCode(rate int) uint32 {
	return sampleRateCodes[rate]
}

// MAIDivider returns the divider that produces the sample clock from the
// audio reference clock. The divider is n/m and is the closest that fits in
// the fields of the MAI sample register.
func MAIDivider(audioClockHz uint64, sampleRate int) (n uint32, m uint32) {
	bn, bm := bestApproximation(audioClockHz, uint64(sampleRate),
		uint64(registers.MAISmpN.Max()), uint64(registers.MAISmpM.Max())+1)
	return uint32(bn), uint32(bm)
}

// ClockRecovery returns the N and CTS values that allow the sink to
// regenerate the audio sample clock from the pixel clock.
func ClockRecovery(pixelClockHz uint64, sampleRate int) (n uint32, cts uint32) {
	n = uint32(128 * sampleRate / 1000)
	cts = uint32(pixelClockHz * uint64(n) / uint64(128*sampleRate))
	return n, cts
}

// ChannelMask returns the mask of active channels for the channel count.
func ChannelMask(channels int) uint32 {
	return uint32(1)<<channels - 1
}

// Configurer sets up the audio path of the HDMI block. Calls must be
// serialised by the caller.
type Configurer struct {
	ctx    *registers.Context
	v      variant.Variant
	clk    clocks.Clock
	packer *infoframe.Packer
	perm   logger.Permission

	crit      sync.Mutex
	streaming bool
	params    Params
	frame     []byte
}

// NewConfigurer is the preferred method of initialisation for the Configurer
// type. The clock is the audio reference clock.
func NewConfigurer(ctx *registers.Context, v variant.Variant, clk clocks.Clock, packer *infoframe.Packer, perm logger.Permission) *Configurer {
	return &Configurer{
		ctx:    ctx,
		v:      v,
		clk:    clk,
		packer: packer,
		perm:   perm,
	}
}

// Streaming returns true between Startup() and Shutdown().
func (c *Configurer) Streaming() bool {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.streaming
}

// Params returns the parameters given to the most recent successful
// Prepare().
func (c *Configurer) Params() Params {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.params
}

// Startup readies the MAI bus for a new stream. Audio cannot be sent to a DVI
// sink.
func (c *Configurer) Startup(isHDMI bool) error {
	if !isHDMI {
		return curated.Errorf(NotStreaming)
	}

	c.crit.Lock()
	c.streaming = true
	c.crit.Unlock()

	c.ctx.Write(registers.MAICtl, registers.MAICtlReset|registers.MAICtlFlush|
		registers.MAICtlDlate|registers.MAICtlErrorE|registers.MAICtlErrorF)

	c.v.PHYRngEnable(c.ctx)

	return nil
}

// Prepare configures the audio path for the stream. The audio infoframe is
// rewritten if the packet RAM is enabled.
func (c *Configurer) Prepare(p Params, link Link) error {
	if !link.IsHDMI {
		return curated.Errorf(NotStreaming)
	}
	if err := p.validate(); err != nil {
		return err
	}

	n, m := MAIDivider(c.clk.Rate(), p.SampleRate)
	mask := ChannelMask(p.NumChannels)

	format := registers.MAIFormatPCM
	if p.HBR() {
		format = registers.MAIFormatHBR
	}

	crpN, cts := ClockRecovery(link.PixelClockHz, p.SampleRate)

	c.ctx.Write(registers.MAISmp, registers.MAISmpN.Set(n)|registers.MAISmpM.Set(m-1))

	c.ctx.Locked(func(rw registers.RW) {
		rw.Write(registers.MAICtl, registers.MAICtlChNum.Set(uint32(p.NumChannels))|
			registers.MAICtlWholSmp|registers.MAICtlChAlign|registers.MAICtlEnable)

		rw.Write(registers.MAIFmt, registers.MAIFmtSampleRate.Set(SampleRateCode(p.SampleRate))|
			registers.MAIFmtAudioFmt.Set(format))

		rw.Write(registers.MAIThr, registers.MAIThrPanicHigh.Set(0x08)|
			registers.MAIThrPanicLow.Set(0x08)|
			registers.MAIThrDREQHigh.Set(0x06)|
			registers.MAIThrDREQLow.Set(0x08))

		rw.Write(registers.MAIConfig, registers.MAIConfigBitReverse|
			registers.MAIConfigFormatReverse|
			registers.MAIConfigChannelMask.Set(mask))

		rw.Write(registers.MAIChannelMap, c.v.ChannelMap(mask))

		// the B frame identifier matches the value used by alsa-lib
		rw.Write(registers.AudioPacketConfig, registers.AudioPacketZeroDataOnSampleFlat|
			registers.AudioPacketZeroDataOnInactive|
			registers.AudioPacketBFrameIdentifier.Set(0x08)|
			registers.AudioPacketCEAMask.Set(mask))

		rw.Write(registers.CRPCfg, registers.CRPCfgExternalCTSEn|registers.CRPCfgN.Set(crpN))
		rw.Write(registers.CTS0, cts)
		rw.Write(registers.CTS1, cts)
	})

	c.crit.Lock()
	c.params = p
	c.frame = infoframe.NewAudio(p.NumChannels)
	c.crit.Unlock()

	c.WriteInfoframe()

	return nil
}

// WriteInfoframe writes the audio infoframe for the prepared stream. It does
// nothing if the packet RAM is not enabled or if no stream has been
// prepared.
func (c *Configurer) WriteInfoframe() {
	c.crit.Lock()
	frame := c.frame
	c.crit.Unlock()

	if frame == nil || !c.packer.RAMEnabled() {
		return
	}

	if err := c.packer.Write(infoframe.Audio, frame); err != nil {
		logger.Log(c.perm, "hdmi: audio", err)
	}
}

// Shutdown stops the stream and resets the MAI bus.
func (c *Configurer) Shutdown() {
	c.ctx.Write(registers.MAICtl, registers.MAICtlDlate|registers.MAICtlErrorE|registers.MAICtlErrorF)
	c.v.PHYRngDisable(c.ctx)
	c.reset()
}

func (c *Configurer) reset() {
	c.crit.Lock()
	c.streaming = false
	c.frame = nil
	c.crit.Unlock()

	if err := c.packer.Stop(infoframe.Audio, false); err != nil {
		logger.Log(c.perm, "hdmi: audio", err)
	}

	c.ctx.Locked(func(rw registers.RW) {
		rw.Write(registers.MAICtl, registers.MAICtlReset)
		rw.Write(registers.MAICtl, registers.MAICtlErrorF)
		rw.Write(registers.MAICtl, registers.MAICtlFlush)
	})
}
