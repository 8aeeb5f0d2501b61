package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleKey_PrintableInsert(t *testing.T) {
	e := newTestEditor(t, Config{})
	typeText(e, "hi there")
	e.HandleKey(typeKey(tea.KeySpace))
	if got, want := e.Value(), "hi there "; got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
}

func TestHandleKey_AltRunesAreNotText(t *testing.T) {
	e := newTestEditor(t, Config{})
	e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true})
	if got := e.Value(); got != "" {
		t.Fatalf("value: got %q, want empty", got)
	}
}

func TestHandleKey_PasteInsertsText(t *testing.T) {
	e := newTestEditor(t, Config{TabWidth: 2, Choices: testChoices})
	e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\tx\r\ny"), Paste: true})
	if got, want := e.Value(), "  x\ny"; got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
	if e.State() != StateEditing {
		t.Fatalf("paste toggled the overlay")
	}
}

func TestHandleKey_UnboundTabInsertsSpaces(t *testing.T) {
	e := newTestEditor(t, Config{TabWidth: 2, Bindings: Bindings{"autocomplete": "ctrl+t"}, Choices: testChoices})
	e.HandleKey(typeKey(tea.KeyTab))
	if got, want := e.Value(), "  "; got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
	e.HandleKey(typeKey(tea.KeyCtrlT))
	if e.State() != StateSuggesting {
		t.Fatalf("state: got %v, want suggesting", e.State())
	}
}

func TestHandleKey_InterruptCancels(t *testing.T) {
	e := newTestEditor(t, Config{Text: "draft", Choices: testChoices})
	e.HandleKey(typeKey(tea.KeyTab))
	e.HandleKey(typeKey(tea.KeyCtrlC))
	if e.State() != StateCancelled || e.EOF() {
		t.Fatalf("state: got %v eof=%v, want cancelled", e.State(), e.EOF())
	}

	e.HandleKey(runeKey("x"))
	if got := e.Value(); got != "draft" {
		t.Fatalf("keys after cancel were handled: %q", got)
	}
}

func TestHandleKey_CtrlDOnEmptyBuffer(t *testing.T) {
	e := newTestEditor(t, Config{Text: "x"})
	e.HandleKey(typeKey(tea.KeyCtrlD))
	if e.Done() {
		t.Fatalf("ctrl+d with text must not end the session")
	}
	e.HandleKey(typeKey(tea.KeyBackspace))
	e.HandleKey(typeKey(tea.KeyCtrlD))
	if e.State() != StateCancelled || !e.EOF() {
		t.Fatalf("state: got %v eof=%v, want cancelled with eof", e.State(), e.EOF())
	}
}

func TestHandleKey_NewlineOnlyInMultiline(t *testing.T) {
	altEnter := tea.KeyMsg{Type: tea.KeyEnter, Alt: true}

	e := newTestEditor(t, Config{Text: "a", Multiline: true})
	e.HandleKey(altEnter)
	if got, want := e.Value(), "a\n"; got != want {
		t.Fatalf("multiline value: got %q, want %q", got, want)
	}

	s := newTestEditor(t, Config{Text: "a"})
	s.HandleKey(altEnter)
	if got := s.Value(); got != "a" {
		t.Fatalf("single-line value: got %q", got)
	}
}

func TestHandleKey_UndoRedo(t *testing.T) {
	e := newTestEditor(t, Config{})
	typeText(e, "ab")
	e.HandleKey(typeKey(tea.KeyCtrlZ))
	if got, want := e.Value(), "a"; got != want {
		t.Fatalf("after undo: got %q, want %q", got, want)
	}
	e.HandleKey(typeKey(tea.KeyCtrlY))
	if got, want := e.Value(), "ab"; got != want {
		t.Fatalf("after redo: got %q, want %q", got, want)
	}
}

func TestHandleKey_WordAndGraphemeMoves(t *testing.T) {
	e := newTestEditor(t, Config{Text: "foo bar"})
	e.HandleKey(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if got := e.Cursor(); got != 4 {
		t.Fatalf("word left: got %d, want 4", got)
	}
	e.HandleKey(typeKey(tea.KeyLeft))
	if got := e.Cursor(); got != 3 {
		t.Fatalf("left: got %d, want 3", got)
	}
	e.HandleKey(typeKey(tea.KeyDelete))
	if got, want := e.Value(), "foobar"; got != want {
		t.Fatalf("delete: got %q, want %q", got, want)
	}
}

func TestHandleKey_HistoryWalk(t *testing.T) {
	e := newTestEditor(t, Config{History: []string{"one", "two"}})
	typeText(e, "dr")

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyCtrlP, "two"},
		{tea.KeyCtrlP, "one"},
		{tea.KeyCtrlP, "one"},
		{tea.KeyCtrlN, "two"},
		{tea.KeyCtrlN, "dr"},
		{tea.KeyCtrlN, "dr"},
	}
	for i, s := range steps {
		e.HandleKey(typeKey(s.key))
		if got := e.Value(); got != s.want {
			t.Fatalf("step %d: got %q, want %q", i, got, s.want)
		}
	}
	if got := e.Cursor(); got != 2 {
		t.Fatalf("cursor after history: got %d, want 2", got)
	}
}

func TestSetChoices_RefiltersOpenOverlay(t *testing.T) {
	e := newTestEditor(t, Config{Choices: testChoices})
	e.HandleKey(typeKey(tea.KeyTab))
	typeText(e, "a")
	e.SetChoices([]Choice{{Label: "react"}, {Label: "vue"}})
	st := e.Suggestions()
	if len(st.Filtered) != 1 || st.Filtered[0].Label != "react" {
		t.Fatalf("filtered: got %v", labels(st.Filtered))
	}
}

func TestHandleKey_CombiningMarkJoinsPreviousCluster(t *testing.T) {
	e := newTestEditor(t, Config{Multiline: true})
	typeText(e, "e\u0301")
	if got := e.Buffer().Len(); got != 1 {
		t.Fatalf("clusters after combining mark: got %d, want 1", got)
	}
	e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	typeText(e, "ab")
	e.LineUp()
	typeText(e, "z")
	if got, want := e.Value(), "e\u0301z\nab"; got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
}

func TestHandleKey_CombiningMarkAfterPrompt(t *testing.T) {
	e := newTestEditor(t, Config{Prompt: "> "})
	typeText(e, "\u0301ab")
	if got, want := e.Lines().Len(), len("> ")+e.Buffer().Len(); got != want {
		t.Fatalf("wrapped len: got %d, want %d", got, want)
	}
	if got, want := e.CursorCoordinate().Col, 5; got != want {
		t.Fatalf("cursor col: got %d, want %d", got, want)
	}
}

func TestHandleKey_PasteDropsEscapeSequences(t *testing.T) {
	e := newTestEditor(t, Config{Multiline: true})
	e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\x1b[31mred\nxy\x07"), Paste: true})
	if got, want := e.Value(), "red\nxy"; got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
	if got, want := e.Buffer().Len(), e.Lines().Len(); got != want {
		t.Fatalf("buffer len %d does not match wrapped len %d", got, want)
	}
	e.LineUp()
	typeText(e, "!")
	if got, want := e.Value(), "re!d\nxy"; got != want {
		t.Fatalf("value after LineUp: got %q, want %q", got, want)
	}
}
