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

package preferences_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/hdmicore/curated"
	"github.com/jetsetilly/hdmicore/hardware/preferences"
	"github.com/jetsetilly/hdmicore/prefs"
)

func writeBoard(t *testing.T, name string, content string) string {
	t.Helper()
	pth := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pth, []byte(content), 0o644))
	return pth
}

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	require.NoError(t, err)
	require.False(t, p.Live.Disable4K60.Load())
	require.False(t, p.Live.DisableWifiFrequencies.Load())
	require.Equal(t, int32(12), p.Live.MaxBPC.Load())
	require.Equal(t, "Broadcom", p.Vendor.String())
}

func TestLoad(t *testing.T) {
	p, err := preferences.NewPreferences()
	require.NoError(t, err)

	pth := writeBoard(t, "board.yaml", "disable_4k60: true\nmax_bpc: 10\n")
	require.NoError(t, p.Load(pth))

	require.True(t, p.Live.Disable4K60.Load())
	require.False(t, p.Live.DisableWifiFrequencies.Load())
	require.Equal(t, int32(10), p.Live.MaxBPC.Load())
	require.Equal(t, "Videocore", p.Product.String())
}

func TestLoadEnvironmentOverride(t *testing.T) {
	p, err := preferences.NewPreferences()
	require.NoError(t, err)

	t.Setenv("HDMI_DISABLE_WIFI_FREQUENCIES", "true")
	t.Setenv("HDMI_MAX_BPC", "8")

	pth := writeBoard(t, "board.toml", "max_bpc = 10\n")
	require.NoError(t, p.Load(pth))

	require.True(t, p.Live.DisableWifiFrequencies.Load())
	require.Equal(t, int32(8), p.Live.MaxBPC.Load())
}

func TestLoadValidationError(t *testing.T) {
	p, err := preferences.NewPreferences()
	require.NoError(t, err)

	pth := writeBoard(t, "board.yaml", "max_bpc: 9\n")
	err = p.Load(pth)
	require.Error(t, err)
	require.True(t, curated.Is(err, preferences.LoadFailure))

	// nothing was applied
	require.Equal(t, int32(12), p.Live.MaxBPC.Load())
}

func TestLoadMissingFile(t *testing.T) {
	p, err := preferences.NewPreferences()
	require.NoError(t, err)
	require.Error(t, p.Load(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestMaxBPCHook(t *testing.T) {
	p, err := preferences.NewPreferences()
	require.NoError(t, err)

	err = p.Set("hdmi.max_bpc", 11)
	require.Error(t, err)
	require.True(t, curated.Has(err, preferences.InvalidMaxBPC))
	require.Equal(t, int32(12), p.Live.MaxBPC.Load())
}

func TestCommandLine(t *testing.T) {
	p, err := preferences.NewPreferences()
	require.NoError(t, err)

	prefs.PushCommandLineStack("hdmi.disable_4k60::true; hdmi.max_bpc::10")
	require.NoError(t, p.ApplyCommandLine())
	require.Equal(t, "", prefs.PopCommandLineStack())

	require.True(t, p.Live.Disable4K60.Load())
	require.Equal(t, int32(10), p.Live.MaxBPC.Load())
}
