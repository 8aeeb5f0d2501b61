package buffer

import (
	"errors"
	"testing"
)

func TestBuffer_Insert_MultiLine(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(1)
	v := b.Version()

	b.Insert("X\nY")
	if got, want := b.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 4; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_Insert_Unicode(t *testing.T) {
	b := New("", Options{})
	b.Insert("π")
	b.Insert("テ")
	b.Insert("é")

	if got, want := b.Text(), "πテé"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 3; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Insert_EmptyIsNoop(t *testing.T) {
	b := New("ab", Options{})
	v := b.Version()
	b.Insert("")
	if b.Version() != v || b.CanUndo() {
		t.Fatalf("empty insert should not mutate")
	}
}

func TestBuffer_DeleteBackward_JoinsLines(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(3)

	b.DeleteBackward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteBackward_AtStartIsNoop(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(0)
	v := b.Version()
	b.DeleteBackward()
	if got := b.Text(); got != "ab" || b.Version() != v {
		t.Fatalf("text=%q version=%d, want unchanged", got, b.Version())
	}
}

func TestBuffer_DeleteForward(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(2)

	b.DeleteForward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	b.SetCursor(4)
	b.DeleteForward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("delete at end: text=%q, want %q", got, want)
	}
}

func TestBuffer_ReplaceSpan(t *testing.T) {
	b := New("lo world", Options{})
	b.SetCursor(2)

	if err := b.ReplaceSpan(0, 2, "lodash"); err != nil {
		t.Fatalf("ReplaceSpan: %v", err)
	}
	if got, want := b.Text(), "lodash world"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 6; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_ReplaceSpan_RejectsInvalidRange(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()

	for _, span := range [][2]int{{-1, 1}, {2, 1}, {0, 4}} {
		err := b.ReplaceSpan(span[0], span[1], "x")
		var re *RangeError
		if !errors.As(err, &re) {
			t.Fatalf("ReplaceSpan(%d,%d): err=%v, want *RangeError", span[0], span[1], err)
		}
		if re.From != span[0] || re.To != span[1] || re.Len != 3 {
			t.Fatalf("range error fields: got %+v", re)
		}
	}
	if got := b.Text(); got != "abc" || b.Version() != v {
		t.Fatalf("buffer mutated by rejected span: text=%q version=%d", got, b.Version())
	}
}

func TestBuffer_SetText(t *testing.T) {
	b := New("abc", Options{})
	b.SetCursor(1)
	b.SetText("xy\nz")
	if got, want := b.Text(), "xy\nz"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 4; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Insert_CombiningMarkResegments(t *testing.T) {
	b := New("ex", Options{})
	b.SetCursor(1)

	b.Insert("\u0301")
	if got, want := b.Len(), 2; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got, want := b.Slice(0, 1), "e\u0301"; got != want {
		t.Fatalf("first cluster=%q, want %q", got, want)
	}

	b.Undo()
	if got, want := b.Text(), "ex"; got != want {
		t.Fatalf("undo text=%q, want %q", got, want)
	}
}

func TestBuffer_Insert_DropsEscapesAndControls(t *testing.T) {
	b := New("", Options{})
	b.Insert("\x1b[31mred\x1b[0m\n\x1b]0;t\x07x\ty\x00")
	if got, want := b.Text(), "red\nx y"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), b.Len(); got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	v := b.Version()
	b.Insert("\x1b[2J")
	if b.Version() != v {
		t.Fatalf("escape-only insert should not mutate")
	}
}

func TestNew_SanitizesText(t *testing.T) {
	b := New("a\x1b[1mb\u0301", Options{})
	if got, want := b.Text(), "ab\u0301"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Len(), 2; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
}
