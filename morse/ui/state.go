// Package ui is the modal input state machine of the translator.
//
// A Machine is driven one keyboard sample at a time and exposes its visible
// state as an immutable Snapshot; it never draws anything itself.
package ui

import (
	"morsekey/morse/codec"
	"morsekey/morse/view"
)

// Mode is the active input mode. Keys are routed to exactly one mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeMenu
	ModePreset
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePreset:
		return "preset"
	default:
		return "normal"
	}
}

// Options menu entries, in display order.
const (
	ItemPlayDemo   = "Play Demo"
	ItemSpeaker    = "Speaker"
	ItemPresets    = "Presets"
	ItemSwitchMode = "Switch Mode"
)

var menuItems = []string{ItemPlayDemo, ItemSpeaker, ItemPresets, ItemSwitchMode}

// Preset is a named text/morse pair that can be copied into the input.
type Preset struct {
	Label string
	Morse string
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	return []Preset{
		{Label: "SOS", Morse: "... --- ..."},
		{Label: "CQ", Morse: "-.-. --.-"},
		{Label: "73", Morse: "--... ...--"},
		{Label: "HELLO", Morse: ".... . .-.. .-.. ---"},
		{Label: "QTH?", Morse: "--.- - .... ..--.."},
		{Label: "MY NAME IS", Morse: "-- -.-- / -. .- -- . / .. ..."},
		{Label: "TEST", Morse: "- . ... -"},
		{Label: "DE", Morse: "-.. ."},
		{Label: "K", Morse: "-.-"},
	}
}

// Layout constants of the 240x135 screen.
const (
	OutputLines     = 2
	OutputWrap      = 25
	PlayingWrap     = 38
	InputTailChars  = 24
	LastInputChars  = 18
	ListCapacity    = (122 - 28) / 22
	InitialOutput   = "Ready."
	MenuHint        = "menu: tab"
	LastInputPrefix = "In: "
	InputPrompt     = ">"
	PlayingTitle    = "Playing:"
	MenuTitle       = "Options"
	PresetListTitle = "Presets"
	speakerLabelOn  = "Speaker: ON"
	speakerLabelOff = "Speaker: OFF"
)

// State is everything the machine mutates. Only the tick loop touches it.
type State struct {
	Mode      Mode
	Input     []rune
	Direction codec.Direction
	LastMorse string
	LastInput string
	Speaker   bool

	Output  *view.TextViewport
	Menu    *view.List
	Presets *view.List

	// Playing is the morse currently being signalled, empty otherwise.
	Playing string
}

func newState(presets []Preset, speaker bool, wrap int) State {
	labels := make([]string, len(presets))
	for i, p := range presets {
		labels[i] = p.Label
	}
	out := view.NewTextViewport(OutputLines)
	out.SetText(InitialOutput, wrap)
	return State{
		Direction: codec.TextToMorse,
		Speaker:   speaker,
		Output:    out,
		Menu:      view.NewList(MenuTitle, append([]string(nil), menuItems...), ListCapacity),
		Presets:   view.NewList(PresetListTitle, labels, ListCapacity),
	}
}

// inputLine is the prompt followed by the tail of the buffer that fits.
func (s *State) inputLine() string {
	in := s.Input
	if len(in) > InputTailChars {
		in = in[len(in)-InputTailChars:]
	}
	return InputPrompt + string(in)
}
