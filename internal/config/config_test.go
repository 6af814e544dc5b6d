package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[morse]
wpm = 20
tone_hz = 650
speaker = true

[runner]
frontend = "terminal"

[log]
level = "debug"

[[presets]]
label = "QRZ"
morse = "--.- .-. --.."

[[presets]]
label = "73"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Morse.WPM)
	assert.Equal(t, 20, *cfg.Morse.WPM)
	assert.Nil(t, cfg.Morse.UnitMs)
	assert.Equal(t, "terminal", *cfg.Runner.Frontend)
	assert.Equal(t, []PresetConfig{{Label: "QRZ", Morse: "--.- .-. --.."}, {Label: "73"}}, cfg.Presets)
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "[morse]\nspeed = 3\n",
		"both timings":  "[morse]\nunit_ms = 100\nwpm = 12\n",
		"zero unit":     "[morse]\nunit_ms = 0\n",
		"tone":          "[morse]\ntone_hz = 5\n",
		"hz":            "[runner]\nhz = 0\n",
		"frontend":      "[runner]\nfrontend = \"gtk\"\n",
		"preset label":  "[[presets]]\nlabel = \" \"\n",
		"preset symbol": "[[presets]]\nlabel = \"X\"\nmorse = \"..x\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[morse\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestMergeFlagsWin(t *testing.T) {
	wpm, tone, speaker, level := 15, 600, true, "debug"
	fc := FileConfig{
		Morse:   MorseConfig{WPM: &wpm, ToneHz: &tone, Speaker: &speaker},
		Log:     LogConfig{Level: &level},
		Presets: []PresetConfig{{Label: "QRZ"}},
	}

	s := Default()
	s.ToneHz = 900
	s.Merge(fc, func(flag string) bool { return flag == "tone" })

	assert.Equal(t, 15, s.WPM)
	assert.Equal(t, 900, s.ToneHz)
	assert.True(t, s.Speaker)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, []PresetConfig{{Label: "QRZ"}}, s.Presets)
}

func TestMergeExplicitUnitIgnoresFileTiming(t *testing.T) {
	wpm := 15
	s := Default()
	s.UnitMs = 80
	s.Merge(FileConfig{Morse: MorseConfig{WPM: &wpm}}, func(flag string) bool { return flag == "unit" })

	assert.Equal(t, 80, s.UnitMs)
	assert.Zero(t, s.WPM)
}

func TestMergeNilExplicit(t *testing.T) {
	hz := 30
	s := Default()
	s.Merge(FileConfig{Runner: RunnerConfig{Hz: &hz}}, nil)
	assert.Equal(t, 30, s.Hz)
}

func TestDefaultTemplateDecodes(t *testing.T) {
	var fc FileConfig
	_, err := toml.Decode(DefaultTemplate(), &fc)
	require.NoError(t, err)
	assert.NoError(t, fc.Validate())
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	assert.Equal(t, "/tmp/cfg/morsekey/config.toml", DefaultConfigPath())
	assert.Equal(t, "/tmp/state/morsekey/morsekey.log", DefaultLogPath())
}
