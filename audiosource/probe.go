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

package audiosource

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/hdmicore/curated"
)

// Sentinal error patterns.
const (
	ProbeFailure      = "audiosource: %s: %v"
	UnsupportedFormat = "audiosource: unsupported file type (%s)"
)

// Info describes an audio file.
type Info struct {
	*audio.Format

	// bits per sample
	BitDepth int
}

// Probe opens the audio file and returns its format. WAV and MP3 files are
// supported, the type being decided by the file extension.
func Probe(filename string) (Info, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Info{}, curated.Errorf(ProbeFailure, filename, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		dec := wav.NewDecoder(f)
		dec.ReadInfo()
		if err := dec.Err(); err != nil {
			return Info{}, curated.Errorf(ProbeFailure, filename, err)
		}
		if !dec.IsValidFile() {
			return Info{}, curated.Errorf(ProbeFailure, filename, "not a valid wav file")
		}
		return Info{
			Format:   dec.Format(),
			BitDepth: int(dec.BitDepth),
		}, nil

	case ".mp3":
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return Info{}, curated.Errorf(ProbeFailure, filename, err)
		}

		// the decoded stream is always 16 bit stereo even if the source is
		// a single channel
		return Info{
			Format: &audio.Format{
				NumChannels: 2,
				SampleRate:  dec.SampleRate(),
			},
			BitDepth: 16,
		}, nil
	}

	return Info{}, curated.Errorf(UnsupportedFormat, filepath.Ext(filename))
}
