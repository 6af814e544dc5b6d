//go:build !tinygo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morsekey/internal/config"
	"morsekey/morse/playback"
)

func execute(t *testing.T, args ...string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String(), errOut.String()
}

func TestRootRejectsBadKeyScript(t *testing.T) {
	t.Cleanup(func() { runKeys = "" })
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--keys", "sos<enter", "--config", filepath.Join(t.TempDir(), "none.toml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --keys")
}

func TestEncodeCmd(t *testing.T) {
	out, errOut := execute(t, "encode", "sos", "now")
	assert.Equal(t, "... --- ... / -. --- .--\n", out)
	assert.Empty(t, errOut)
}

func TestEncodeCmdReportsUnmapped(t *testing.T) {
	out, errOut := execute(t, "encode", "a~b")
	assert.Equal(t, ".- ? -...\n", out)
	assert.Equal(t, "1 unmapped, shown as ?\n", errOut)
}

func TestDecodeCmdAcceptsDashes(t *testing.T) {
	out, _ := execute(t, "decode", "-.-.", "--.-")
	assert.Equal(t, "CQ\n", out)
}

func TestConfigCmdWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morsekey", "config.toml")
	out, _ := execute(t, "config", "--config", path)
	assert.Equal(t, path+"\n", out)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTemplate(), string(body))
}

func TestConfigCmdPrint(t *testing.T) {
	t.Cleanup(func() { configPrint = false })
	out, _ := execute(t, "config", "--print")
	assert.Equal(t, config.DefaultTemplate(), out)
}

func TestResolveFrontend(t *testing.T) {
	both := frontendEnv{window: true, terminal: true}
	cases := []struct {
		name       string
		configured string
		headless   bool
		keys       string
		env        frontendEnv
		want       string
	}{
		{"headless flag wins", config.FrontendWindow, true, "", both, config.FrontendHeadless},
		{"configured", config.FrontendTerminal, false, "", both, config.FrontendTerminal},
		{"key script", config.FrontendAuto, false, "sos", both, config.FrontendHeadless},
		{"window first", config.FrontendAuto, false, "", both, config.FrontendWindow},
		{"terminal", config.FrontendAuto, false, "", frontendEnv{terminal: true}, config.FrontendTerminal},
		{"nothing", config.FrontendAuto, false, "", frontendEnv{}, config.FrontendHeadless},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveFrontend(tc.configured, tc.headless, tc.keys, tc.env))
		})
	}
}

func TestBuildTiming(t *testing.T) {
	s := config.Default()
	timing, err := buildTiming(s)
	require.NoError(t, err)
	assert.Equal(t, 120*time.Millisecond, timing.Unit)

	s.WPM = 20
	timing, err = buildTiming(s)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Millisecond, timing.Unit)

	s.WPM, s.UnitMs = 0, 0
	_, err = buildTiming(s)
	assert.ErrorIs(t, err, playback.ErrInvalidTiming)
}

func TestBuildPresetsEncodesMissingMorse(t *testing.T) {
	presets := buildPresets([]config.PresetConfig{
		{Label: "QRZ", Morse: "--.- .-. --.."},
		{Label: "73"},
	})
	require.Len(t, presets, 11)
	assert.Equal(t, "SOS", presets[0].Label)
	assert.Equal(t, "--.- .-. --..", presets[9].Morse)
	assert.Equal(t, "--... ...--", presets[10].Morse)
}

func TestValidateSettings(t *testing.T) {
	assert.NoError(t, validateSettings(config.Default()))

	s := config.Default()
	s.Frontend = "gtk"
	assert.ErrorIs(t, validateSettings(s), config.ErrInvalidConfig)

	s = config.Default()
	s.Hz = 0
	assert.Error(t, validateSettings(s))

	s = config.Default()
	s.ToneHz = 5
	assert.Error(t, validateSettings(s))
}
