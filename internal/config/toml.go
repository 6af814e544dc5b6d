// Package config provides defaults, XDG path helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Frontend names accepted by [runner] frontend and --frontend.
const (
	FrontendAuto     = ""
	FrontendWindow   = "window"
	FrontendHeadless = "headless"
	FrontendTerminal = "terminal"
)

// Settings are the resolved values after defaults, file and flags.
type Settings struct {
	UnitMs    int
	WPM       int
	ToneHz    int
	Speaker   bool
	WrapWidth int
	Hz        int
	Frontend  string
	LogLevel  string
	Presets   []PresetConfig
}

// Default returns the baked-in settings.
func Default() Settings {
	return Settings{
		UnitMs:    120,
		ToneHz:    800,
		WrapWidth: 25,
		Hz:        60,
		LogLevel:  "info",
	}
}

// Merge overlays file values onto s. explicit reports whether the flag with
// the given name was set on the command line; such values win over the file.
// Presets are always appended.
func (s *Settings) Merge(fc FileConfig, explicit func(flag string) bool) {
	if explicit == nil {
		explicit = func(string) bool { return false }
	}
	timingFromFlags := explicit("unit") || explicit("wpm")
	if !timingFromFlags {
		if v := fc.Morse.UnitMs; v != nil {
			s.UnitMs, s.WPM = *v, 0
		}
		if v := fc.Morse.WPM; v != nil {
			s.WPM = *v
		}
	}
	applyInt(explicit("tone"), &s.ToneHz, fc.Morse.ToneHz)
	applyBool(explicit("speaker"), &s.Speaker, fc.Morse.Speaker)
	applyInt(false, &s.WrapWidth, fc.Morse.WrapWidth)
	applyInt(explicit("hz"), &s.Hz, fc.Runner.Hz)
	applyString(explicit("frontend"), &s.Frontend, fc.Runner.Frontend)
	applyString(explicit("log-level"), &s.LogLevel, fc.Log.Level)
	s.Presets = append(s.Presets, fc.Presets...)
}

func applyInt(skip bool, target, value *int) {
	if skip || value == nil {
		return
	}
	*target = *value
}

func applyBool(skip bool, target, value *bool) {
	if skip || value == nil {
		return
	}
	*target = *value
}

func applyString(skip bool, target, value *string) {
	if skip || value == nil {
		return
	}
	*target = *value
}

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Morse   MorseConfig    `toml:"morse"`
	Runner  RunnerConfig   `toml:"runner"`
	Log     LogConfig      `toml:"log"`
	Presets []PresetConfig `toml:"presets"`
}

// MorseConfig maps translator and playback settings.
type MorseConfig struct {
	UnitMs    *int  `toml:"unit_ms"`
	WPM       *int  `toml:"wpm"`
	ToneHz    *int  `toml:"tone_hz"`
	Speaker   *bool `toml:"speaker"`
	WrapWidth *int  `toml:"wrap_width"`
}

// RunnerConfig maps host runner settings.
type RunnerConfig struct {
	Hz       *int    `toml:"hz"`
	Frontend *string `toml:"frontend"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// PresetConfig is an extra preset appended after the built-in ones. An empty
// Morse is filled in by encoding Label.
type PresetConfig struct {
	Label string `toml:"label"`
	Morse string `toml:"morse"`
}

var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. Unset values are always valid.
func (c FileConfig) Validate() error {
	m := c.Morse
	if m.UnitMs != nil && m.WPM != nil {
		return fmt.Errorf("%w: morse.unit_ms and morse.wpm are mutually exclusive", ErrInvalidConfig)
	}
	if m.UnitMs != nil && *m.UnitMs <= 0 {
		return fmt.Errorf("%w: morse.unit_ms must be positive, got %d", ErrInvalidConfig, *m.UnitMs)
	}
	if m.WPM != nil && *m.WPM <= 0 {
		return fmt.Errorf("%w: morse.wpm must be positive, got %d", ErrInvalidConfig, *m.WPM)
	}
	if m.ToneHz != nil && (*m.ToneHz < 20 || *m.ToneHz > 20000) {
		return fmt.Errorf("%w: morse.tone_hz out of range: %d", ErrInvalidConfig, *m.ToneHz)
	}
	if m.WrapWidth != nil && *m.WrapWidth < 8 {
		return fmt.Errorf("%w: morse.wrap_width too small: %d", ErrInvalidConfig, *m.WrapWidth)
	}
	if r := c.Runner; r.Hz != nil && (*r.Hz <= 0 || *r.Hz > 1000) {
		return fmt.Errorf("%w: runner.hz out of range: %d", ErrInvalidConfig, *r.Hz)
	}
	if f := c.Runner.Frontend; f != nil {
		if err := ValidateFrontend(*f); err != nil {
			return err
		}
	}
	for i, p := range c.Presets {
		if strings.TrimSpace(p.Label) == "" {
			return fmt.Errorf("%w: presets[%d]: empty label", ErrInvalidConfig, i)
		}
		if strings.Trim(p.Morse, ".-/ ") != "" {
			return fmt.Errorf("%w: presets[%d]: morse may only contain '.', '-', '/' and spaces", ErrInvalidConfig, i)
		}
	}
	return nil
}

// ValidateFrontend rejects unknown frontend names.
func ValidateFrontend(name string) error {
	switch name {
	case FrontendAuto, FrontendWindow, FrontendHeadless, FrontendTerminal:
		return nil
	}
	return fmt.Errorf("%w: unknown frontend %q", ErrInvalidConfig, name)
}

// DefaultTemplate is a commented config file listing every key.
func DefaultTemplate() string {
	d := Default()
	return fmt.Sprintf(`# morsekey configuration
# Uncomment a value to enable it. CLI flags override config values.

[morse]
# unit_ms = %d          # Dot length in milliseconds
# wpm = 10              # Alternative to unit_ms: words per minute
# tone_hz = %d          # Tone pitch
# speaker = false       # Start with the speaker on
# wrap_width = %d        # Output line width in characters

[runner]
# hz = %d               # Ticks per second
# frontend = "window"   # window, headless or terminal

[log]
# level = %q

# [[presets]]
# label = "QRZ"
# morse = "--.- .-. --.."
`, d.UnitMs, d.ToneHz, d.WrapWidth, d.Hz, d.LogLevel)
}
