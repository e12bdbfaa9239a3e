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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	goaudio "github.com/go-audio/audio"

	"github.com/jetsetilly/hdmicore/audiosource"
	"github.com/jetsetilly/hdmicore/digest"
	"github.com/jetsetilly/hdmicore/display"
	"github.com/jetsetilly/hdmicore/environment"
	"github.com/jetsetilly/hdmicore/hardware/clocks"
	"github.com/jetsetilly/hdmicore/hardware/hdmi"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/audio"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/infoframe"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/negotiate"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/simulated"
	"github.com/jetsetilly/hdmicore/hardware/hdmi/variant"
	"github.com/jetsetilly/hdmicore/hardware/preferences"
	"github.com/jetsetilly/hdmicore/hardware/registers"
	"github.com/jetsetilly/hdmicore/hardware/sink"
	"github.com/jetsetilly/hdmicore/logger"
	"github.com/jetsetilly/hdmicore/modalflag"
	"github.com/jetsetilly/hdmicore/paths"
	"github.com/jetsetilly/hdmicore/prefs"
	"github.com/jetsetilly/hdmicore/statsview"
	"github.com/jetsetilly/hdmicore/version"
)

// the rate of the HSM clock as left by the firmware
const firmwareHSMRate = 216000000

// board preferences loaded if -prefs is not given
const defaultBoardFile = "board.yaml"

// #mainthread
func main() {
	// #ctrlc
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine so that the interrupt can be serviced
	// while the encoder is sleeping
	result := make(chan int)
	go func() {
		result <- launch(os.Stdout, os.Args[1:])
	}()

	exitVal := 0

	select {
	case <-intChan:
		fmt.Println("\r")
		exitVal = 1
	case exitVal = <-result:
	}

	os.Exit(exitVal)
}

// launch parses the command line and runs the selected mode. The return value
// is the exit status of the program.
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("NEGOTIATE", "MODESET", "AUDIO", "VARIANTS")
	showVersion := md.AddBool("version", false, "print version and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		return 0
	}

	switch md.Mode() {
	case "NEGOTIATE":
		err = negotiateMode(md)

	case "MODESET":
		err = modeset(md)

	case "AUDIO":
		err = audioMode(md)

	case "VARIANTS":
		err = variants(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// flags shared by every mode that creates an encoder
type setup struct {
	variant  *string
	sink     *string
	prefs    *string
	policy   *string
	echo     *bool
	stats    *bool
	env      *environment.Environment
	encoder  *hdmi.Encoder
	blk      *simulated.Block
	snk      *sink.Sink
	stopStat func()
}

func addSetupFlags(md *modalflag.Modes) *setup {
	return &setup{
		variant: md.AddString("variant", variant.HDMI0.Compatible(), "compatible string of the HDMI block"),
		sink:    md.AddString("sink", "hdmi20", "sink preset or sink description file"),
		prefs:   md.AddString("prefs", "", "board preferences file (default is board.yaml in the resource path)"),
		policy:  md.AddString("policy", "", "preference overrides (eg. hdmi.max_bpc::10)"),
		echo:    md.AddBool("echo", false, "echo log to output"),
		stats:   md.AddBool("statsview", false, "run stats server"),
	}
}

// create the encoder described by the flags. the simulated block reports a
// connected sink
func (s *setup) create(output io.Writer) error {
	if *s.echo {
		logger.SetEcho(output)
	}

	if *s.stats {
		if !statsview.Available() {
			fmt.Fprintln(output, "* statsview not available in this build")
		} else {
			s.stopStat = statsview.Launch(output)
		}
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		return err
	}
	pth := *s.prefs
	if pth == "" && paths.Exists(defaultBoardFile) {
		pth = paths.ResourcePath(defaultBoardFile)
	}
	if pth != "" {
		if err := p.Load(pth); err != nil {
			return err
		}
	}
	if *s.policy != "" {
		prefs.PushCommandLineStack(*s.policy)
		err := p.ApplyCommandLine()
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Fprintf(output, "* unused policy: %s\n", unused)
		}
		if err != nil {
			return err
		}
	}

	s.env, err = environment.NewEnvironment(environment.MainEncoder, p)
	if err != nil {
		return err
	}

	v, err := variant.Match(*s.variant)
	if err != nil {
		return err
	}

	s.snk, err = sink.Open(*s.sink)
	if err != nil {
		return err
	}

	s.blk = simulated.NewBlock()
	s.blk.SetConnected(true)

	ctx := registers.NewContext(s.blk, registers.SystemClock{})
	st := clocks.NewSimulatedTree(v.HasBVBClock(), firmwareHSMRate)
	s.encoder = hdmi.NewEncoder(s.env, ctx, v, st.Tree, s.snk, s.blk)

	return nil
}

func (s *setup) destroy() {
	if s.encoder != nil {
		s.encoder.Disable()
	}
	if s.stopStat != nil {
		s.stopStat()
	}
	logger.SetEcho(nil)
}

// a mode is a name from the CEA table or the list of monitor modes, or a
// modeline
func parseMode(s string) (display.Mode, error) {
	if strings.ContainsAny(strings.TrimSpace(s), " \t") {
		return display.ParseModeline(s)
	}
	return display.ModeByName(s)
}

func negotiateMode(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("Without -mode every CEA mode is tried against the sink.")

	s := addSetupFlags(md)
	modeName := md.AddString("mode", "", "mode name or modeline")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if err := s.create(md.Output); err != nil {
		return err
	}
	defer s.destroy()

	if _, err := s.encoder.Detect(); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "sink: %s\n", s.snk)
	fmt.Fprintf(md.Output, "policy: %s\n", negotiate.PolicyFromPreferences(s.env.Prefs))

	var modes []display.Mode
	if *modeName != "" {
		mode, err := parseMode(*modeName)
		if err != nil {
			return err
		}
		modes = append(modes, mode)
	} else {
		for _, c := range display.CEAModes() {
			modes = append(modes, c.Mode)
		}
	}

	for _, mode := range modes {
		st, err := s.encoder.AtomicCheck(mode)
		if err != nil {
			if len(modes) == 1 {
				return err
			}
			fmt.Fprintf(md.Output, "%-20s %v\n", mode, err)
			continue
		}
		scrambled := ""
		if negotiate.NeedsScrambling(st.Config) {
			scrambled = " (scrambled)"
		}
		fmt.Fprintf(md.Output, "%-20s %s%s\n", st.Mode, st.Config, scrambled)
	}

	return nil
}

func modeset(md *modalflag.Modes) error {
	md.NewMode()

	s := addSetupFlags(md)
	modeName := md.AddString("mode", "1080p60", "mode name or modeline")
	viz := md.AddString("memviz", "", "write a graph of the encoder state to a DOT file (AUTO for a unique name)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if err := s.create(md.Output); err != nil {
		return err
	}
	defer s.destroy()

	st, err := enable(s, *modeName)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%s: %s\n", st.Mode, st.Config)
	fmt.Fprintf(md.Output, "scrambling: %s\n", s.encoder.Scrambler().State())
	s.blk.File.Dump(md.Output)

	dig := digest.NewRegisters()
	dig.Journal(s.blk.File.Journal())
	fmt.Fprintf(md.Output, "digest: %s\n", dig)

	if *viz != "" {
		if strings.ToUpper(*viz) == "AUTO" {
			*viz = paths.UniqueFilename("memviz", st.Mode.Name) + ".dot"
		}
		f, err := os.Create(*viz)
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, &st)
	}

	return nil
}

// detect the sink and enable the encoder for the named mode
func enable(s *setup, modeName string) (hdmi.State, error) {
	if _, err := s.encoder.Detect(); err != nil {
		return hdmi.State{}, err
	}

	mode, err := parseMode(modeName)
	if err != nil {
		return hdmi.State{}, err
	}

	st, err := s.encoder.AtomicCheck(mode)
	if err != nil {
		return hdmi.State{}, err
	}

	if err := s.encoder.ModeSet(st); err != nil {
		return hdmi.State{}, err
	}

	return st, s.encoder.Enable()
}

func audioMode(md *modalflag.Modes) error {
	md.NewMode()

	s := addSetupFlags(md)
	modeName := md.AddString("mode", "1080p60", "mode name or modeline")
	file := md.AddString("file", "", "take the stream parameters from a WAV or MP3 file")
	rate := md.AddInt("rate", 48000, "sample rate")
	channels := md.AddInt("channels", 2, "number of channels")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	params := audio.Params{
		Format: &goaudio.Format{
			NumChannels: *channels,
			SampleRate:  *rate,
		},
		SampleWidth: 16,
	}

	if *file != "" {
		info, err := audiosource.Probe(*file)
		if err != nil {
			return err
		}
		params.Format = info.Format
		params.SampleWidth = info.BitDepth
	}

	if err := s.create(md.Output); err != nil {
		return err
	}
	defer s.destroy()

	st, err := enable(s, *modeName)
	if err != nil {
		return err
	}

	if err := s.encoder.AudioStartup(); err != nil {
		return err
	}
	defer s.encoder.AudioShutdown()

	if err := s.encoder.AudioPrepare(params); err != nil {
		return err
	}

	n, cts := audio.ClockRecovery(st.Mode.ClockHz(), params.SampleRate)
	fmt.Fprintf(md.Output, "%s on %s\n", params, st.Mode)
	fmt.Fprintf(md.Output, "N=%d CTS=%d\n", n, cts)
	fmt.Fprintf(md.Output, "audio infoframe: %s\n", s.encoder.Packer().State(infoframe.Audio))

	return nil
}

func variants(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for _, c := range variant.Compatibles() {
		v, err := variant.Match(c)
		if err != nil {
			return err
		}
		fmt.Fprintln(md.Output, variant.Summary(v))
	}

	fmt.Fprintf(md.Output, "sink presets: %s\n", strings.Join(sink.Presets(), ", "))

	return nil
}
