//go:build !tinygo

// Package main provides the host entrypoint for morsekey.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"morsekey/app"
	"morsekey/hal"
	"morsekey/internal/buildinfo"
	"morsekey/internal/config"
	"morsekey/morse/codec"
	"morsekey/morse/playback"
	"morsekey/morse/termui"
	"morsekey/morse/ui"
)

var (
	runHeadless bool
	runTicks    uint64
	runKeys     string
	configPath  string
	settings    = config.Default()

	configPrint bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "morsekey",
		Short:         "Morse translator for a 240x135 handheld",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runRootCmd,
	}

	d := config.Default()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")

	rootCmd.Flags().BoolVar(&runHeadless, "headless", false, "run without a window (same as --frontend headless)")
	rootCmd.Flags().IntVar(&settings.Hz, "hz", d.Hz, "tick rate")
	rootCmd.Flags().Uint64Var(&runTicks, "ticks", 0, "stop after N ticks in headless mode (0 = until the key script ends)")
	rootCmd.Flags().StringVar(&runKeys, "keys", "", `scripted key presses, e.g. "sos<enter><tab>"`)
	rootCmd.Flags().StringVar(&settings.Frontend, "frontend", d.Frontend, "window, headless or terminal (default: detect)")
	rootCmd.Flags().IntVar(&settings.UnitMs, "unit", d.UnitMs, "dot length in milliseconds")
	rootCmd.Flags().IntVar(&settings.WPM, "wpm", 0, "words per minute (overrides --unit)")
	rootCmd.Flags().IntVar(&settings.ToneHz, "tone", d.ToneHz, "tone pitch in Hz")
	rootCmd.Flags().BoolVar(&settings.Speaker, "speaker", d.Speaker, "start with the speaker on")
	rootCmd.Flags().StringVar(&settings.LogLevel, "log-level", d.LogLevel, "debug, info, warn or error")

	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	if runKeys != "" {
		if _, err := hal.ParseKeyScript(runKeys); err != nil {
			return fmt.Errorf("invalid --keys: %w", err)
		}
	}
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings.Merge(fileCfg, cmd.Flags().Changed)
	if err := validateSettings(settings); err != nil {
		return err
	}

	appCfg, err := buildAppConfig(settings)
	if err != nil {
		return err
	}
	frontend := resolveFrontend(settings.Frontend, runHeadless, runKeys, detectEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hostCfg := hal.HostConfig{LogLevel: settings.LogLevel, Keys: runKeys}
	newApp := func(h hal.HAL) func() error { return app.NewStep(h, appCfg) }

	switch frontend {
	case config.FrontendHeadless:
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled: true,
			Hz:      settings.Hz,
			Ticks:   runTicks,
			Host:    hostCfg,
		})
	case config.FrontendTerminal:
		logFile, lerr := openLogFile(config.DefaultLogPath())
		if lerr != nil {
			return lerr
		}
		defer logFile.Close()
		hostCfg.LogOutput = logFile
		err = termui.Run(ctx, hal.NewHost(hostCfg), func(h hal.HAL, present func(ui.Snapshot)) func() error {
			cfg := appCfg
			cfg.Present = present
			return app.NewStep(h, cfg)
		}, termui.Config{Hz: settings.Hz, AltScreen: true})
	default:
		err = hal.RunWindow(newApp, hal.WindowConfig{Hz: settings.Hz, Host: hostCfg})
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func validateSettings(s config.Settings) error {
	if err := config.ValidateFrontend(s.Frontend); err != nil {
		return err
	}
	if s.Hz <= 0 || s.Hz > 1000 {
		return fmt.Errorf("hz must be between 1 and 1000, got %d", s.Hz)
	}
	if s.ToneHz < 20 || s.ToneHz > 20000 {
		return fmt.Errorf("tone must be between 20 and 20000 Hz, got %d", s.ToneHz)
	}
	if s.WPM < 0 {
		return fmt.Errorf("wpm must not be negative, got %d", s.WPM)
	}
	return nil
}

func buildAppConfig(s config.Settings) (app.Config, error) {
	timing, err := buildTiming(s)
	if err != nil {
		return app.Config{}, err
	}
	return app.Config{
		Machine: ui.Config{
			Presets:   buildPresets(s.Presets),
			Speaker:   s.Speaker,
			WrapWidth: s.WrapWidth,
		},
		Timing: timing,
		ToneHz: uint32(s.ToneHz),
	}, nil
}

func buildTiming(s config.Settings) (playback.Timing, error) {
	if s.WPM > 0 {
		return playback.TimingFromWPM(s.WPM)
	}
	t := playback.Timing{Unit: time.Duration(s.UnitMs) * time.Millisecond}
	if err := t.Validate(); err != nil {
		return playback.Timing{}, fmt.Errorf("unit %dms: %w", s.UnitMs, err)
	}
	return t, nil
}

func buildPresets(extra []config.PresetConfig) []ui.Preset {
	presets := ui.DefaultPresets()
	for _, p := range extra {
		morse := strings.TrimSpace(p.Morse)
		if morse == "" {
			morse = codec.Encode(p.Label)
		}
		presets = append(presets, ui.Preset{Label: strings.TrimSpace(p.Label), Morse: morse})
	}
	return presets
}

type frontendEnv struct {
	window   bool
	terminal bool
}

func detectEnv() frontendEnv {
	display := true
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		display = os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return frontendEnv{
		window:   hal.WindowSupported && display,
		terminal: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// resolveFrontend picks the runner. An explicit choice wins; otherwise a key
// script runs headless, then a window is preferred over the terminal.
func resolveFrontend(configured string, headless bool, keys string, env frontendEnv) string {
	if headless {
		return config.FrontendHeadless
	}
	if configured != config.FrontendAuto {
		return configured
	}
	switch {
	case keys != "":
		return config.FrontendHeadless
	case env.window:
		return config.FrontendWindow
	case env.terminal:
		return config.FrontendTerminal
	}
	return config.FrontendHeadless
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <text>...",
		Short: "Print the Morse code for text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return translate(cmd.OutOrStdout(), cmd.ErrOrStderr(), codec.TextToMorse, args)
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <morse>...",
		Short: "Print the text for Morse code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return translate(cmd.OutOrStdout(), cmd.ErrOrStderr(), codec.MorseToText, args)
		},
		// Morse arguments start with '-'.
		DisableFlagParsing: true,
	}
}

func translate(out, errOut io.Writer, dir codec.Direction, args []string) error {
	result, st := codec.Translate(dir, strings.Join(args, " "))
	if _, err := fmt.Fprintln(out, result); err != nil {
		return err
	}
	if st.Unmapped > 0 {
		fmt.Fprintf(errOut, "%d unmapped, shown as ?\n", st.Unmapped)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create the config file if missing and print its path",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configPrint, "print", false, "print the default template instead")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if configPrint {
		_, err := fmt.Fprint(out, config.DefaultTemplate())
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(configPath, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	_, err := fmt.Fprintln(out, configPath)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
