package buffer

import "github.com/iw2rmb/ncq/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
}

// Move moves the cursor without touching the text. Line-oriented moves live
// in the editor because they depend on the wrapped layout.
func (b *Buffer) Move(m Move) {
	b.SetCursor(b.moveCursor(b.cursor, m))
}

func (b *Buffer) moveCursor(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		if m.Dir == DirLeft {
			return off - 1
		}
		return off + 1
	case MoveWord:
		if m.Dir == DirLeft {
			return prevWordBoundary(b.text, off)
		}
		return nextWordBoundary(b.text, off)
	case MoveDoc:
		if m.Dir == DirLeft {
			return 0
		}
		return len(b.text)
	default:
		return off
	}
}

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - newline counts as whitespace, so words never span lines
func prevWordBoundary(text []string, off int) int {
	i := clampInt(off, 0, len(text))
	for i > 0 && grapheme.IsSpace(text[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(text[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(text []string, off int) int {
	i := clampInt(off, 0, len(text))
	for i < len(text) && grapheme.IsSpace(text[i]) {
		i++
	}
	for i < len(text) && !grapheme.IsSpace(text[i]) {
		i++
	}
	return i
}
