package editor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/ncq/internal/grapheme"
)

// ChordKind tags the input class a Chord matches.
type ChordKind uint8

const (
	ChordNone ChordKind = iota
	// ChordRune is a single printable grapheme, e.g. "a" or " ".
	ChordRune
	// ChordControl is a modified key such as "ctrl+a" or "shift+tab".
	ChordControl
	// ChordArrow is one of the four arrow keys.
	ChordArrow
	// ChordNamed is an unmodified special key such as "tab" or "enter".
	ChordNamed
)

// Chord is a typed key-chord descriptor. Chords are comparable and are used
// as keys of the KeyMap action table.
type Chord struct {
	Kind ChordKind
	Key  string
	Alt  bool
}

func (c Chord) String() string {
	if c.Kind == ChordNone {
		return ""
	}
	key := c.Key
	if c.Kind == ChordRune && key == " " {
		key = "space"
	}
	if c.Alt {
		return "alt+" + key
	}
	return key
}

var arrowKeys = map[string]struct{}{
	"up": {}, "down": {}, "left": {}, "right": {},
}

// teaKeyNames holds every key name Bubble Tea reports for non-rune keys.
var teaKeyNames = func() map[string]struct{} {
	names := make(map[string]struct{})
	for t := tea.KeyType(-128); t <= 127; t++ {
		if t == tea.KeyRunes {
			continue
		}
		if name := t.String(); name != "" && name != " " {
			names[name] = struct{}{}
		}
	}
	return names
}()

// ParseChord parses a chord descriptor in the form Bubble Tea prints key
// messages: an optional "alt+" prefix followed by a key name ("tab",
// "ctrl+left", "up") or a single printable grapheme. "space" names the
// space bar.
func ParseChord(s string) (Chord, error) {
	if s == "" {
		return Chord{}, fmt.Errorf("%w: empty descriptor", ErrBadChord)
	}
	var c Chord
	rest := s
	if len(rest) > len("alt+") && strings.HasPrefix(rest, "alt+") {
		c.Alt = true
		rest = rest[len("alt+"):]
	}

	switch {
	case rest == "space" || rest == " ":
		c.Kind, c.Key = ChordRune, " "
	case isArrow(rest):
		c.Kind, c.Key = ChordArrow, rest
	case isTeaKeyName(rest):
		c.Key = rest
		c.Kind = ChordNamed
		if strings.Contains(rest, "+") {
			c.Kind = ChordControl
		}
	case grapheme.Count(rest) == 1 && !grapheme.IsControl(rest) && rest != "\n" && rest != "\t":
		c.Kind, c.Key = ChordRune, rest
	default:
		return Chord{}, fmt.Errorf("%w: %q", ErrBadChord, s)
	}
	return c, nil
}

// ChordFromKey converts a Bubble Tea key message into a Chord. Multi-rune
// messages (paste bursts, IME commits) have no chord.
func ChordFromKey(msg tea.KeyMsg) Chord {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste || grapheme.Count(string(msg.Runes)) != 1 {
			return Chord{}
		}
		return Chord{Kind: ChordRune, Key: string(msg.Runes), Alt: msg.Alt}
	case tea.KeySpace:
		return Chord{Kind: ChordRune, Key: " ", Alt: msg.Alt}
	}
	c, err := ParseChord(msg.String())
	if err != nil {
		return Chord{}
	}
	return c
}

func isArrow(s string) bool {
	_, ok := arrowKeys[s]
	return ok
}

func isTeaKeyName(s string) bool {
	_, ok := teaKeyNames[s]
	return ok
}
