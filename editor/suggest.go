package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/ncq/buffer"
)

const defaultMaxSuggestions = 8

// Choice is one candidate of the externally supplied choice set. The editor
// only reads it.
type Choice struct {
	ID    string
	Label string
	// UserEntered marks free-typed entries; they never appear in the filtered
	// list.
	UserEntered bool
}

// SuggestionState is a snapshot of the overlay state.
type SuggestionState struct {
	Active bool
	// Anchor is the cursor offset recorded when the overlay opened. It starts
	// the span a suggestion replaces.
	Anchor int
	// FilterText is the case-folded text between Anchor and the cursor.
	FilterText string
	Filtered   []Choice
	// Focused indexes Filtered, or is -1 when nothing is focused.
	Focused int
}

// Suggester owns the overlay state machine. Its choice set is an immutable
// snapshot replaced through SetChoices.
type Suggester struct {
	choices []Choice
	st      SuggestionState
	stale   bool
}

// NewSuggester returns an idle Suggester over choices.
func NewSuggester(choices []Choice) Suggester {
	s := Suggester{}
	s.SetChoices(choices)
	s.Close()
	return s
}

// SetChoices replaces the choice snapshot. An open overlay is refiltered on
// the next Refresh.
func (s *Suggester) SetChoices(choices []Choice) {
	s.choices = append([]Choice(nil), choices...)
	s.stale = true
}

// Choices returns the current choice snapshot.
func (s Suggester) Choices() []Choice { return append([]Choice(nil), s.choices...) }

func (s Suggester) Active() bool { return s.st.Active }

// State returns a copy of the overlay state.
func (s Suggester) State() SuggestionState {
	st := s.st
	st.Filtered = append([]Choice(nil), s.st.Filtered...)
	return st
}

// Toggle opens the overlay at the buffer cursor, or closes it when open.
// Opening with an empty choice set is a no-op.
func (s *Suggester) Toggle(buf *buffer.Buffer) {
	if s.st.Active {
		s.Close()
		return
	}
	if len(s.choices) == 0 {
		return
	}
	s.st = SuggestionState{Active: true, Anchor: buf.Cursor(), Focused: -1}
	s.stale = true
	s.Refresh(buf)
}

// Close returns to the idle state.
func (s *Suggester) Close() {
	s.st = SuggestionState{Focused: -1}
	s.stale = false
}

// Refresh recomputes the filter from the buffer. The overlay closes when the
// cursor has moved before the anchor. Focus resets to the first entry only
// when the filter text or the choice set changed.
func (s *Suggester) Refresh(buf *buffer.Buffer) {
	if !s.st.Active {
		return
	}
	cur := buf.Cursor()
	if cur < s.st.Anchor || s.st.Anchor > buf.Len() {
		s.Close()
		return
	}
	text := strings.ToLower(buf.Slice(s.st.Anchor, cur))
	if !s.stale && text == s.st.FilterText {
		return
	}
	s.st.FilterText = text
	s.st.Filtered = Filter(s.choices, text)
	s.st.Focused = -1
	if len(s.st.Filtered) > 0 {
		s.st.Focused = 0
	}
	s.stale = false
}

// Filter keeps the choices that are not user entered and whose case-folded
// label contains text. Order is preserved.
func Filter(choices []Choice, text string) []Choice {
	text = strings.ToLower(text)
	out := make([]Choice, 0, len(choices))
	for _, c := range choices {
		if c.UserEntered {
			continue
		}
		if strings.Contains(strings.ToLower(c.Label), text) {
			out = append(out, c)
		}
	}
	return out
}

// FocusNext moves the focus down, wrapping to the first entry.
func (s *Suggester) FocusNext() {
	n := len(s.st.Filtered)
	if !s.st.Active || n == 0 {
		return
	}
	s.st.Focused = (s.st.Focused + 1) % n
}

// FocusPrev moves the focus up, wrapping to the last entry.
func (s *Suggester) FocusPrev() {
	n := len(s.st.Filtered)
	if !s.st.Active || n == 0 {
		return
	}
	if s.st.Focused <= 0 {
		s.st.Focused = n - 1
		return
	}
	s.st.Focused--
}

// Focused returns the focused choice.
func (s Suggester) Focused() (Choice, bool) {
	if !s.st.Active || s.st.Focused < 0 || s.st.Focused >= len(s.st.Filtered) {
		return Choice{}, false
	}
	return s.st.Filtered[s.st.Focused], true
}

// InsertFocused replaces [anchor, cursor) with the focused label and closes
// the overlay. It reports whether anything was inserted.
func (s *Suggester) InsertFocused(buf *buffer.Buffer) (bool, error) {
	c, ok := s.Focused()
	if !ok {
		return false, nil
	}
	anchor := s.st.Anchor
	s.Close()
	if err := buf.ReplaceSpan(anchor, buf.Cursor(), c.Label); err != nil {
		return false, fmt.Errorf("insert suggestion %q: %w", c.Label, err)
	}
	return true, nil
}
