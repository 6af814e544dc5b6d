package hal

import (
	"fmt"
	"strings"
)

var scriptNames = map[string]KeyEvent{
	"enter": {Code: KeyEnter},
	"tab":   {Code: KeyTab},
	"esc":   {Code: KeyEscape},
	"bs":    {Code: KeyBackspace},
	"del":   {Code: KeyDelete},
	"up":    {Code: KeyUp},
	"down":  {Code: KeyDown},
	"left":  {Code: KeyLeft},
	"right": {Code: KeyRight},
	"lt":    {Rune: '<'},
	"wait":  {},
}

// ParseKeyScript parses a key script.
//
// Printable characters stand for themselves. Named keys are written in angle
// brackets: <enter> <tab> <esc> <bs> <del> <up> <down> <left> <right>, <lt>
// for a literal '<', and <wait> for one idle step.
func ParseKeyScript(s string) ([]KeyEvent, error) {
	var out []KeyEvent
	for len(s) > 0 {
		if s[0] != '<' {
			r := []rune(s)[0]
			out = append(out, KeyEvent{Press: true, Rune: r})
			s = s[len(string(r)):]
			continue
		}
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return out, fmt.Errorf("unterminated key name in %q", s)
		}
		name := strings.ToLower(s[1:end])
		ev, ok := scriptNames[name]
		if !ok {
			return out, fmt.Errorf("unknown key name %q", name)
		}
		if name != "wait" {
			ev.Press = true
		}
		out = append(out, ev)
		s = s[end+1:]
	}
	return out, nil
}

// ScriptedKeyboard replays a fixed key sequence.
//
// Every key is held for exactly one poll and released on the next, so each
// script entry produces one key-down edge.
type ScriptedKeyboard struct {
	keys     []KeyEvent
	pos      int
	released bool
	last     KeyEvent
}

func NewScriptedKeyboard(keys []KeyEvent) *ScriptedKeyboard {
	return &ScriptedKeyboard{keys: keys, released: true}
}

// Done reports whether the whole script has been replayed.
func (k *ScriptedKeyboard) Done() bool {
	return k.pos >= len(k.keys) && k.released
}

func (k *ScriptedKeyboard) Poll() (KeyEvent, error) {
	if !k.released {
		k.released = true
		up := k.last
		up.Press = false
		return up, nil
	}
	if k.pos >= len(k.keys) {
		up := k.last
		up.Press = false
		return up, nil
	}
	ev := k.keys[k.pos]
	k.pos++
	k.last = ev
	k.released = false
	return ev, nil
}
