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
	"sync"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/environment"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/audio"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/negotiate"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/power"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/scrambling"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/logger"
)

// Sentinal error patterns.
const (
	NoMode = "hdmi: no mode has been set"
)

// Sink is the display attached to the encoder. Capabilities are those read
// from the EDID of the sink. The SCDC methods are only used for HDMI 2.0
// sinks.
type Sink interface {
	Capabilities() display.SinkCapabilities
	scrambling.SCDC
}

// HotplugGPIO is a hotplug signal outside of the HDMI block. It is used by
// hardware variants that cannot detect hotplug from a register.
type HotplugGPIO interface {
	Connected() bool
}

// State is the result of AtomicCheck().
type State struct {
	Mode   display.Mode
	Config display.OutputConfig

	// the output configuration is different to the one currently committed.
	// a full mode set is required
	ModeChanged bool
}

// Encoder is an instance of the HDMI block.
type Encoder struct {
	env  *environment.Environment
	ctx  *registers.Context
	v    variant.Variant
	clks clocks.Tree
	sink Sink
	gpio HotplugGPIO

	negotiator *negotiate.Negotiator
	domain     *power.Domain
	packer     *infoframe.Packer
	seq        *power.Sequencer
	audio      *audio.Configurer
	scrambler  *scrambling.Monitor

	// the config mutex
	crit sync.Mutex

	// the committed mode and output configuration
	mode display.Mode
	cfg  display.OutputConfig

	// capabilities of the sink as of the most recent call to Detect()
	caps display.SinkCapabilities

	hdr     *infoframe.HDRMetadata
	enabled bool

	// CECEnable() does not take the config mutex
	cecCrit    sync.Mutex
	cecEnabled bool
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
// The gpio argument can be nil.
func NewEncoder(env *environment.Environment, ctx *registers.Context, v variant.Variant, clks clocks.Tree, sink Sink, gpio HotplugGPIO) *Encoder {
	e := &Encoder{
		env:        env,
		ctx:        ctx,
		v:          v,
		clks:       clks,
		sink:       sink,
		gpio:       gpio,
		negotiator: negotiate.NewNegotiator(v),
		caps:       sink.Capabilities(),
	}

	e.domain = power.NewDomain(ctx, v, clks)
	e.packer = infoframe.NewPacker(ctx)
	e.seq = power.NewSequencer(ctx, v, clks, e.domain, e.packer)
	e.audio = audio.NewConfigurer(ctx, v, clks.Audio, e.packer, env)
	e.scrambler = scrambling.NewMonitor(ctx, sink, env)

	return e
}

func (e *Encoder) String() string {
	if e.env.Label == environment.MainEncoder {
		return e.v.Name()
	}
	return string(e.env.Label)
}

// Variant returns the hardware variant of the encoder.
func (e *Encoder) Variant() variant.Variant {
	return e.v
}

// Scrambler returns the scrambling monitor of the encoder.
func (e *Encoder) Scrambler() *scrambling.Monitor {
	return e.scrambler
}

// Packer returns the infoframe packer of the encoder.
func (e *Encoder) Packer() *infoframe.Packer {
	return e.packer
}

// Domain returns the runtime power domain of the encoder.
func (e *Encoder) Domain() *power.Domain {
	return e.domain
}

func (e *Encoder) policy() negotiate.Policy {
	return negotiate.PolicyFromPreferences(e.env.Prefs)
}

// ModeValid checks whether the mode can be output to the sink with any
// output configuration.
func (e *Encoder) ModeValid(mode display.Mode) error {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.negotiator.ModeValid(mode, e.caps, e.policy())
}

// Modes returns the modes in the list that can be output to the sink. A mode
// may be missing because of board policy, the disable_4k60 preference for
// example.
func (e *Encoder) Modes(modes []display.Mode) []display.Mode {
	e.crit.Lock()
	defer e.crit.Unlock()

	policy := e.policy()

	var valid []display.Mode
	for _, m := range modes {
		if e.negotiator.ModeValid(m, e.caps, policy) == nil {
			valid = append(valid, m)
		}
	}
	return valid
}

// AtomicCheck finds the output configuration for the mode. The hardware is
// not touched. The returned mode may differ from the requested mode if the
// timings or the clock had to be adjusted.
//
// Returns an error with the negotiate.NoValidConfig pattern if there is no
// configuration for the mode.
func (e *Encoder) AtomicCheck(mode display.Mode) (State, error) {
	e.crit.Lock()
	defer e.crit.Unlock()

	policy := e.policy()

	mode, err := e.negotiator.FixupOddTimings(mode)
	if err != nil {
		return State{}, err
	}

	var fixed bool
	mode, fixed = negotiate.WifiFixup(mode, policy)
	if fixed {
		logger.Logf(e.env, "hdmi: negotiate", "%s moved to %s to avoid wifi channel 1", mode.Name, clocks.Format(mode.ClockHz()))
	}

	cfg, err := e.negotiator.Negotiate(mode, e.caps, policy)
	if err != nil {
		return State{}, err
	}

	st := State{
		Mode:   mode,
		Config: cfg,
	}

	// a change of clock alone is handled by the mode set but a change to
	// the depth or format requires the pipeline to be restarted
	st.ModeChanged = fixed || cfg.BPC != e.cfg.BPC || cfg.Format != e.cfg.Format

	return st, nil
}

// ModeSet commits the result of AtomicCheck(). The hardware is not changed
// until the next call to Enable().
func (e *Encoder) ModeSet(st State) error {
	e.crit.Lock()
	defer e.crit.Unlock()

	if !st.Config.Valid() {
		return curated.Errorf(NoMode)
	}

	e.mode = st.Mode
	e.cfg = st.Config

	return nil
}

// Config returns the committed mode and output configuration.
func (e *Encoder) Config() (display.Mode, display.OutputConfig) {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.mode, e.cfg
}

// Capabilities returns the capabilities of the sink as of the last call to
// Detect().
func (e *Encoder) Capabilities() display.SinkCapabilities {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.caps
}

// Enabled returns true if video is being output.
func (e *Encoder) Enabled() bool {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.enabled
}

// Enable powers the HDMI block and starts output of the committed mode.
//
// If the encoder is already enabled the output is disabled first, including
// scrambling. Errors from the power sequence are returned and the hardware is
// left powered down. Timeouts after the power sequence has completed are logged
// but are not fatal.
func (e *Encoder) Enable() error {
	e.crit.Lock()
	defer e.crit.Unlock()

	if !e.cfg.Valid() {
		return curated.Errorf(NoMode)
	}

	// output of the previous mode is stopped completely before the block is
	// powered for the new mode
	e.disable()

	if err := e.seq.Configure(e.mode, e.cfg); err != nil {
		logger.Log(e.env, "hdmi: power", err)
		return err
	}

	e.seq.PreEnable(e.mode, e.caps, e.cfg)

	if err := e.seq.EnableVideo(e.mode, e.caps.IsHDMI); err != nil {
		logger.Log(e.env, "hdmi: power", err)
	}

	if e.caps.IsHDMI {
		e.writeInfoframes()
	}

	if err := e.seq.RecenterFIFO(); err != nil {
		logger.Log(e.env, "hdmi: power", err)
	}

	e.scrambler.MaybeEnable(e.caps, e.cfg)

	e.enabled = true

	logger.Logf(e.env, "hdmi", "%s: %s at %s", e, e.mode, clocks.Format(e.cfg.PixelClockHz))

	return nil
}

// Disable stops video output and powers down the HDMI block. Any scrambling
// check in progress will have finished by the time Disable() returns.
func (e *Encoder) Disable() {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.disable()
}

// disable must be called with the config mutex held.
func (e *Encoder) disable() {
	if !e.enabled && !e.seq.Powered() && e.scrambler.State() == scrambling.Off {
		return
	}

	if e.seq.Powered() {
		e.seq.DisableVideo()
	}
	e.scrambler.Disable()
	e.seq.PowerDown()

	e.enabled = false

	logger.Logf(e.env, "hdmi", "%s: disabled", e)
}

// Detect returns the state of the hotplug signal. If a sink is connected its
// capabilities are refreshed and, if video is being output, scrambling is
// reasserted in case the sink has forgotten it. Scrambling is turned off if
// the refreshed capabilities no longer call for it.
func (e *Encoder) Detect() (bool, error) {
	e.crit.Lock()
	defer e.crit.Unlock()

	if err := e.domain.Get(); err != nil {
		return false, err
	}
	defer e.domain.Put()

	connected := e.hotplug()
	if connected {
		e.caps = e.sink.Capabilities()
		if e.enabled {
			if scrambling.Needed(e.caps, e.cfg) {
				e.scrambler.MaybeEnable(e.caps, e.cfg)
			} else {
				e.scrambler.Disable()
			}
		}
	}

	return connected, nil
}

// Connected returns the state of the hotplug signal. It is safe to call from
// interrupt context. It does not take the config mutex and does not refresh
// the sink capabilities.
func (e *Encoder) Connected() bool {
	return e.hotplug()
}

func (e *Encoder) hotplug() bool {
	if connected, ok := e.v.HotplugDetect(e.ctx); ok {
		return connected
	}
	if e.gpio != nil {
		return e.gpio.Connected()
	}
	return false
}
