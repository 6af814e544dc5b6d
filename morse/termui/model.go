// Package termui is a terminal frontend for the translator.
//
// The tick loop runs on its own goroutine and talks to the bubbletea program
// only through Program.Send and the Keyboard queue.
package termui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"morsekey/morse/playback"
	"morsekey/morse/ui"
)

// screenCols matches the device's widest text line.
const screenCols = 38

type snapshotMsg ui.Snapshot

type flashMsg uint8

type doneMsg struct{ err error }

var (
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	arrowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#222222")).Background(lipgloss.Color("#CCCCCC"))
	selStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#007ACC"))
	screenStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	borderBaseline = lipgloss.Color("#6E6E6E")
	borderFlash    = lipgloss.Color("#FFD75F")
	borderDark     = lipgloss.Color("#262626")
)

// Model renders the latest snapshot and forwards keys to the tick loop.
type Model struct {
	kb    *Keyboard
	snap  ui.Snapshot
	level uint8
	err   error

	width  int
	height int
}

func NewModel(kb *Keyboard) *Model {
	return &Model{kb: kb, level: playback.BaselineLevel}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Err is the tick loop error that ended the program, if any.
func (m *Model) Err() error { return m.err }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		for _, ev := range keyEvents(msg) {
			m.kb.Push(ev)
		}
	case snapshotMsg:
		m.snap = ui.Snapshot(msg)
	case flashMsg:
		m.level = uint8(msg)
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch {
	case m.snap.Playing != nil:
		body = m.viewPlaying()
	case m.snap.List != nil:
		body = m.viewList(m.snap.List)
	default:
		body = m.viewMain()
	}

	border := borderBaseline
	switch {
	case m.level == playback.DarkLevel:
		border = borderDark
	case m.level > playback.BaselineLevel:
		border = borderFlash
	}
	screen := screenStyle.BorderForeground(border).Render(body)
	if m.width == 0 || m.height == 0 {
		return screen
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, screen)
}

func (m *Model) viewMain() string {
	s := m.snap
	lines := make([]string, 0, 8)

	left := fit(s.LastInput, screenCols-runewidth.StringWidth(s.Hint)-1)
	lines = append(lines, dimStyle.Render(left+" "+s.Hint))

	for i, out := range s.Output {
		arrow := " "
		if i == 0 && s.CanScrollUp {
			arrow = "▲"
		}
		if i == len(s.Output)-1 && s.CanScrollDown {
			arrow = "▼"
		}
		lines = append(lines, textStyle.Render(fit(out, screenCols-2))+" "+arrowStyle.Render(arrow))
	}

	lines = append(lines, "", textStyle.Render(fit(s.Direction, screenCols)), textStyle.Render(fit(s.InputLine, screenCols)))
	return strings.Join(lines, "\n")
}

func (m *Model) viewList(lv *ui.ListView) string {
	up, down := " ", " "
	if lv.MoreAbove {
		up = "▲"
	}
	if lv.MoreBelow {
		down = "▼"
	}
	lines := []string{titleStyle.Render(fit(lv.Title, screenCols-2)) + " " + arrowStyle.Render(up)}
	for _, row := range lv.Rows {
		label := fit(" "+row.Label, screenCols-2)
		if row.Selected {
			lines = append(lines, selStyle.Render(label))
			continue
		}
		lines = append(lines, textStyle.Render(label))
	}
	for len(lines) <= ui.ListCapacity {
		lines = append(lines, fit("", screenCols-2))
	}
	lines = append(lines, strings.Repeat(" ", screenCols-1)+arrowStyle.Render(down))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPlaying() string {
	lines := []string{textStyle.Render(fit(ui.PlayingTitle, screenCols))}
	for _, l := range m.snap.Playing {
		lines = append(lines, textStyle.Render(fit(l, screenCols)))
	}
	return strings.Join(lines, "\n")
}

// fit truncates or pads s to exactly w terminal cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, w, ""), w)
}
