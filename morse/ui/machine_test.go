package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morsekey/hal"
	"morsekey/morse/codec"
	"morsekey/morse/playback"
)

type recordingPlayer struct {
	calls []playCall
}

type playCall struct {
	morse string
	tone  bool
}

func (p *recordingPlayer) Play(morse string, tone bool) playback.Result {
	p.calls = append(p.calls, playCall{morse: morse, tone: tone})
	return playback.Result{}
}

func newMachine(t *testing.T) (*Machine, *recordingPlayer, *[]Snapshot) {
	t.Helper()
	player := &recordingPlayer{}
	var shown []Snapshot
	m := New(Config{}, player, func(s Snapshot) { shown = append(shown, s) })
	return m, player, &shown
}

// typeKeys replays a key script through the edge-triggered poll path.
func typeKeys(t *testing.T, m *Machine, script string) {
	t.Helper()
	keys, err := hal.ParseKeyScript(script)
	require.NoError(t, err)
	kb := hal.NewScriptedKeyboard(keys)
	for !kb.Done() {
		m.Poll(kb)
	}
}

func TestInitialSnapshot(t *testing.T) {
	m, _, _ := newMachine(t)
	s := m.Snapshot()

	assert.Equal(t, ModeNormal, s.Mode)
	assert.Equal(t, []string{InitialOutput, ""}, s.Output)
	assert.Equal(t, "Text -> Morse", s.Direction)
	assert.Equal(t, ">", s.InputLine)
	assert.Equal(t, "menu: tab", s.Hint)
	assert.Nil(t, s.List)
	assert.Nil(t, s.Playing)
}

func TestTypeAndTranslate(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "sos<enter>")

	s := m.Snapshot()
	assert.Equal(t, []string{"... --- ...", ""}, s.Output)
	assert.Equal(t, "In: sos", s.LastInput)
	assert.Equal(t, ">", s.InputLine)
	assert.Equal(t, "... --- ...", m.LastMorse())
}

func TestBackspace(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "abc<bs><bs>")
	assert.Equal(t, "a", m.Input())

	rev := m.Rev()
	typeKeys(t, m, "<bs><bs>")
	assert.Equal(t, "", m.Input())
	assert.Equal(t, rev+1, m.Rev(), "deleting from an empty buffer changes nothing")
}

func TestHeldKeyFiresOnce(t *testing.T) {
	m, _, _ := newMachine(t)

	held := hal.KeyEvent{Press: true, Rune: 'e'}
	assert.True(t, m.Tick(held))
	for i := 0; i < 10; i++ {
		assert.False(t, m.Tick(held))
	}
	assert.Equal(t, "e", m.Input())

	m.Tick(hal.KeyEvent{})
	m.Tick(held)
	assert.Equal(t, "ee", m.Input())
}

type failingKeyboard struct {
	err   error
	polls int
}

func (k *failingKeyboard) Poll() (hal.KeyEvent, error) {
	k.polls++
	return hal.KeyEvent{Press: true, Rune: 'x'}, k.err
}

func TestKeyboardErrorIsNoKey(t *testing.T) {
	m, _, _ := newMachine(t)
	kb := &failingKeyboard{err: errors.New("bus error")}

	for i := 0; i < 3; i++ {
		assert.False(t, m.Poll(kb))
	}
	assert.Equal(t, "", m.Input())

	kb.err = nil
	assert.True(t, m.Poll(kb))
	assert.Equal(t, "x", m.Input())
}

func TestInputLineShowsTail(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "abcdefghijklmnopqrstuvwxyz0123")

	assert.Equal(t, ">"+"ghijklmnopqrstuvwxyz0123", m.Snapshot().InputLine)
}

func TestLastInputLabelIsTruncated(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "abcdefghijklmnopqrstuvwxyz<enter>")

	assert.Equal(t, "In: abcdefghijklmnopqr", m.Snapshot().LastInput)
}

func TestEmptyTranslate(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "<enter>")

	s := m.Snapshot()
	assert.Equal(t, []string{"", ""}, s.Output)
	assert.Equal(t, "", s.LastInput)
	assert.Equal(t, "", m.LastMorse())
}

func TestOutputScroll(t *testing.T) {
	m, _, _ := newMachine(t)

	// Three words of morse wrap to three lines at 25 characters.
	typeKeys(t, m, "hello world again<enter>")
	s := m.Snapshot()
	require.True(t, s.CanScrollDown)
	assert.False(t, s.CanScrollUp)

	typeKeys(t, m, "]")
	s = m.Snapshot()
	assert.True(t, s.CanScrollUp)
	assert.Equal(t, "", m.Input(), "scroll keys are not input")

	typeKeys(t, m, "[[[")
	assert.False(t, m.Snapshot().CanScrollUp)
}

func TestMenuOpenAndCancel(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "<tab>")
	s := m.Snapshot()
	require.NotNil(t, s.List)
	assert.Equal(t, ModeMenu, s.Mode)
	assert.Equal(t, "Options", s.List.Title)
	require.Len(t, s.List.Rows, 4)
	assert.Equal(t, "Speaker: OFF", s.List.Rows[1].Label)
	row, ok := s.List.Selected()
	require.True(t, ok)
	assert.Equal(t, ItemPlayDemo, row.Label)

	typeKeys(t, m, "`")
	assert.Equal(t, ModeNormal, m.Mode())

	typeKeys(t, m, "<tab>..<esc><tab>")
	row, _ = m.Snapshot().List.Selected()
	assert.Equal(t, ItemPlayDemo, row.Label, "opening the menu resets the selection")
}

func TestListKeysAreInputInNormal(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, ".-;`")

	assert.Equal(t, ".-;`", m.Input())
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestSwitchModeToggles(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "<tab>;<enter>")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, codec.MorseToText, m.Direction())

	typeKeys(t, m, "... --- ...<enter>")
	assert.Equal(t, []string{"SOS", ""}, m.Snapshot().Output)
	assert.Equal(t, "", m.LastMorse())

	typeKeys(t, m, "<tab><up><enter>")
	assert.Equal(t, codec.TextToMorse, m.Direction())
}

func TestSpeakerToggleStaysInMenu(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "<tab>.")
	rev := m.Rev()
	typeKeys(t, m, "<enter>")

	assert.Equal(t, ModeMenu, m.Mode())
	assert.True(t, m.Speaker())
	assert.Greater(t, m.Rev(), rev)
	assert.Equal(t, "Speaker: ON", m.Snapshot().List.Rows[1].Label)
}

func TestPresetInjectionFollowsDirection(t *testing.T) {
	m, _, _ := newMachine(t)

	// Menu -> Presets -> HELLO (fourth item).
	typeKeys(t, m, "<tab>..<enter>")
	require.Equal(t, ModePreset, m.Mode())
	s := m.Snapshot()
	assert.Equal(t, "Presets", s.List.Title)
	assert.True(t, s.List.MoreBelow)

	typeKeys(t, m, "...<enter>")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, "HELLO", m.Input())

	typeKeys(t, m, "<enter><tab>;<enter>")
	require.Equal(t, codec.MorseToText, m.Direction())

	typeKeys(t, m, "<tab>..<enter>...<enter>")
	assert.Equal(t, ".... . .-.. .-.. ---", m.Input())
}

func TestPresetWrapsToLast(t *testing.T) {
	m, _, _ := newMachine(t)

	typeKeys(t, m, "<tab>..<enter>;")

	s := m.Snapshot()
	row, ok := s.List.Selected()
	require.True(t, ok)
	assert.Equal(t, "K", row.Label)
	assert.True(t, s.List.MoreAbove)
	assert.False(t, s.List.MoreBelow)

	typeKeys(t, m, "<esc>")
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, "", m.Input())
}

func TestCloseMenuIsIdempotent(t *testing.T) {
	m, _, _ := newMachine(t)
	typeKeys(t, m, "abc")
	before := m.Snapshot()

	assert.False(t, m.CloseMenu())
	assert.Equal(t, before, m.Snapshot())

	typeKeys(t, m, "<tab>")
	assert.True(t, m.CloseMenu())
	assert.False(t, m.CloseMenu())
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestPlayDemo(t *testing.T) {
	m, player, shown := newMachine(t)

	typeKeys(t, m, "hi<enter><tab><enter>")

	require.Len(t, player.calls, 1)
	assert.Equal(t, playCall{morse: ".... ..", tone: false}, player.calls[0])
	require.Len(t, *shown, 1)
	assert.Equal(t, []string{".... .."}, (*shown)[0].Playing)
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Nil(t, m.Snapshot().Playing)
}

func TestPlayDemoWithoutOutputPlaysFirstPreset(t *testing.T) {
	m, player, _ := newMachine(t)

	typeKeys(t, m, "<tab>.<enter>;<enter>")

	require.Len(t, player.calls, 1)
	assert.Equal(t, playCall{morse: "... --- ...", tone: true}, player.calls[0])
}

func TestPlayingScreenWraps(t *testing.T) {
	m, _, shown := newMachine(t)

	typeKeys(t, m, "the quick brown fox<enter><tab><enter>")

	require.Len(t, *shown, 1)
	for _, line := range (*shown)[0].Playing {
		assert.LessOrEqual(t, len(line), PlayingWrap)
	}
}

func TestConfiguredPresets(t *testing.T) {
	player := &recordingPlayer{}
	m := New(Config{Presets: []Preset{{Label: "QRZ", Morse: "--.- .-. --.."}}, Speaker: true}, player, nil)

	typeKeys(t, m, "<tab><enter>")

	require.Len(t, player.calls, 1)
	assert.Equal(t, playCall{morse: "--.- .-. --..", tone: true}, player.calls[0])
}
