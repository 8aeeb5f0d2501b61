package buffer

import "testing"

func TestBuffer_UndoRedo_BasicTyping(t *testing.T) {
	b := New("", Options{})
	if b.CanUndo() {
		t.Fatalf("expected CanUndo=false")
	}
	if b.CanRedo() {
		t.Fatalf("expected CanRedo=false")
	}

	b.Insert("a")
	if !b.CanUndo() {
		t.Fatalf("expected CanUndo=true")
	}

	v := b.Version()
	if ok := b.Undo(); !ok {
		t.Fatalf("expected Undo=true")
	}
	if got, want := b.Text(), ""; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 0; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
	if !b.CanRedo() {
		t.Fatalf("expected CanRedo=true")
	}

	if ok := b.Redo(); !ok {
		t.Fatalf("expected Redo=true")
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_UndoRedo_EmptyStacks_NoMutation(t *testing.T) {
	b := New("hi", Options{})
	v := b.Version()
	if b.Undo() || b.Redo() {
		t.Fatalf("expected no-op on empty stacks")
	}
	if b.Text() != "hi" || b.Version() != v {
		t.Fatalf("buffer mutated by empty undo/redo")
	}
}

func TestBuffer_UndoRedo_NewEditClearsRedo(t *testing.T) {
	b := New("", Options{})
	b.Insert("a")
	b.Insert("b")
	b.Undo()
	if !b.CanRedo() {
		t.Fatalf("expected CanRedo after undo")
	}
	b.Insert("c")
	if b.CanRedo() {
		t.Fatalf("expected redo stack cleared by new edit")
	}
	if got, want := b.Text(), "ac"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_UndoRedo_RespectsLimit(t *testing.T) {
	b := New("", Options{HistoryLimit: 2})
	b.Insert("a")
	b.Insert("b")
	b.Insert("c")

	undone := 0
	for b.Undo() {
		undone++
	}
	if undone != 2 {
		t.Fatalf("undo count=%d, want 2", undone)
	}
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_History_Disabled(t *testing.T) {
	b := New("", Options{HistoryLimit: -1})
	b.Insert("a")
	if b.CanUndo() {
		t.Fatalf("expected undo disabled")
	}
}

func TestBuffer_ClearHistory(t *testing.T) {
	b := New("", Options{})
	b.Insert("a")
	b.Undo()
	b.ClearHistory()
	if b.CanUndo() || b.CanRedo() {
		t.Fatalf("expected empty history")
	}
}
