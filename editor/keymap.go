package editor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
)

var (
	// ErrDuplicateChord reports two actions bound to the same chord.
	ErrDuplicateChord = errors.New("duplicate chord")
	// ErrMissingBinding reports a required action without a chord.
	ErrMissingBinding = errors.New("missing binding")
	// ErrBadChord reports a chord descriptor that cannot be parsed.
	ErrBadChord = errors.New("bad chord")
	// ErrUnknownAction reports a binding for an action that does not exist.
	ErrUnknownAction = errors.New("unknown action")
)

// BindingError describes a key-binding configuration fault.
type BindingError struct {
	Action string
	Chord  string
	// Other is the action already holding Chord for ErrDuplicateChord.
	Other string
	Err   error
}

func (e *BindingError) Error() string {
	switch {
	case errors.Is(e.Err, ErrDuplicateChord):
		return fmt.Sprintf("keybinding %s: chord %q already bound to %s", e.Action, e.Chord, e.Other)
	case e.Chord != "":
		return fmt.Sprintf("keybinding %s = %q: %v", e.Action, e.Chord, e.Err)
	default:
		return fmt.Sprintf("keybinding %s: %v", e.Action, e.Err)
	}
}

func (e *BindingError) Unwrap() error { return e.Err }

// Action is a logical editor command a chord can trigger.
type Action int

const (
	ActionNone Action = iota
	ActionAutocomplete
	ActionCursorUp
	ActionCursorDown
	ActionLineStart
	ActionLineEnd
	ActionSubmit
	ActionNewline
	ActionLeft
	ActionRight
	ActionWordLeft
	ActionWordRight
	ActionBackspace
	ActionDelete
	ActionDismiss
	ActionUndo
	ActionRedo
	ActionHistoryPrev
	ActionHistoryNext
)

var actionNames = map[Action]string{
	ActionAutocomplete: "autocomplete",
	ActionCursorUp:     "cursorUp",
	ActionCursorDown:   "cursorDown",
	ActionLineStart:    "lineStart",
	ActionLineEnd:      "lineEnd",
	ActionSubmit:       "submit",
	ActionNewline:      "newline",
	ActionLeft:         "left",
	ActionRight:        "right",
	ActionWordLeft:     "wordLeft",
	ActionWordRight:    "wordRight",
	ActionBackspace:    "backspace",
	ActionDelete:       "delete",
	ActionDismiss:      "dismiss",
	ActionUndo:         "undo",
	ActionRedo:         "redo",
	ActionHistoryPrev:  "historyPrev",
	ActionHistoryNext:  "historyNext",
}

var actionsByName = func() map[string]Action {
	out := make(map[string]Action, len(actionNames))
	for a, name := range actionNames {
		out[name] = a
	}
	return out
}()

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction resolves a configuration action name.
func ParseAction(name string) (Action, bool) {
	a, ok := actionsByName[name]
	return a, ok
}

// RequiredActions must always carry a chord.
var RequiredActions = []Action{
	ActionAutocomplete,
	ActionCursorUp,
	ActionCursorDown,
	ActionLineStart,
	ActionLineEnd,
	ActionSubmit,
}

// Bindings maps action names to chord descriptors as read from
// configuration. An empty descriptor leaves the action unbound.
type Bindings map[string]string

// DefaultBindings returns the bindings used when nothing is configured.
func DefaultBindings() Bindings {
	return Bindings{
		"autocomplete": "tab",
		"cursorUp":     "up",
		"cursorDown":   "down",
		"lineStart":    "ctrl+left",
		"lineEnd":      "ctrl+right",
		"submit":       "enter",
		"newline":      "alt+enter",
		"left":         "left",
		"right":        "right",
		"wordLeft":     "alt+left",
		"wordRight":    "alt+right",
		"backspace":    "backspace",
		"delete":       "delete",
		"dismiss":      "esc",
		"undo":         "ctrl+z",
		"redo":         "ctrl+y",
		"historyPrev":  "ctrl+p",
		"historyNext":  "ctrl+n",
	}
}

// Merge returns b with the entries of over applied on top.
func (b Bindings) Merge(over Bindings) Bindings {
	out := make(Bindings, len(b)+len(over))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// KeyMap is a resolved binding table. The zero value binds nothing.
type KeyMap struct {
	table  map[Chord]Action
	chords map[Action]Chord
}

// NewKeyMap resolves bindings into a direct chord-to-action table.
//
// Every descriptor is parsed once. An unknown action name, an unparsable
// descriptor, two actions sharing one chord, or a required action without a
// chord is reported as a *BindingError.
func NewKeyMap(b Bindings) (KeyMap, error) {
	km := KeyMap{
		table:  make(map[Chord]Action, len(b)),
		chords: make(map[Action]Chord, len(b)),
	}

	// Sorted so that duplicate reports are deterministic.
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		desc := b[name]
		a, ok := ParseAction(name)
		if !ok {
			return KeyMap{}, &BindingError{Action: name, Chord: desc, Err: ErrUnknownAction}
		}
		if desc == "" {
			continue
		}
		c, err := ParseChord(desc)
		if err != nil {
			return KeyMap{}, &BindingError{Action: name, Chord: desc, Err: err}
		}
		if other, dup := km.table[c]; dup {
			return KeyMap{}, &BindingError{Action: name, Chord: desc, Other: other.String(), Err: ErrDuplicateChord}
		}
		km.table[c] = a
		km.chords[a] = c
	}

	for _, a := range RequiredActions {
		if _, ok := km.chords[a]; !ok {
			return KeyMap{}, &BindingError{Action: a.String(), Err: ErrMissingBinding}
		}
	}
	return km, nil
}

// DefaultKeyMap resolves DefaultBindings.
func DefaultKeyMap() KeyMap {
	km, err := NewKeyMap(DefaultBindings())
	if err != nil {
		panic(err)
	}
	return km
}

// Lookup returns the action bound to c.
func (k KeyMap) Lookup(c Chord) (Action, bool) {
	a, ok := k.table[c]
	return a, ok
}

// Chord returns the chord bound to a.
func (k KeyMap) Chord(a Action) (Chord, bool) {
	c, ok := k.chords[a]
	return c, ok
}

var helpText = map[Action]string{
	ActionSubmit:       "submit",
	ActionAutocomplete: "suggest",
	ActionLineStart:    "line start",
	ActionLineEnd:      "line end",
	ActionNewline:      "newline",
	ActionHistoryPrev:  "history",
}

// ShortHelp returns the bindings shown in the footer help line.
func (k KeyMap) ShortHelp() []key.Binding {
	order := []Action{ActionSubmit, ActionAutocomplete, ActionNewline, ActionLineStart, ActionLineEnd, ActionHistoryPrev}
	out := make([]key.Binding, 0, len(order)+1)
	for _, a := range order {
		c, ok := k.chords[a]
		if !ok {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(c.String()), key.WithHelp(c.String(), helpText[a])))
	}
	out = append(out, key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")))
	return out
}

// FullHelp satisfies help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
