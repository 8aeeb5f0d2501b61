package buffer

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/ncq/internal/grapheme"
)

type Options struct {
	HistoryLimit int // default: 1000; negative disables undo
}

// Buffer is the pure document state: text and cursor.
type Buffer struct {
	text    []string
	cursor  int
	version uint64

	textVersion uint64

	opt  Options
	hist historyState
}

// New returns a buffer holding text with the cursor at the end.
func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	clusters := grapheme.Split(sanitize(text))
	return &Buffer{
		text:   clusters,
		cursor: len(clusters),
		opt:    opt,
	}
}

func (b *Buffer) Text() string { return grapheme.Join(b.text) }

// Len returns the length of the text in grapheme clusters.
func (b *Buffer) Len() int { return len(b.text) }

// Version bumps on every observable state change, cursor moves included.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion bumps only when the text changes.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor, clamping it into [0, Len()].
func (b *Buffer) SetCursor(off int) {
	next := clampInt(off, 0, len(b.text))
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// Slice returns the text in [from, to), clamped to the buffer.
func (b *Buffer) Slice(from, to int) string {
	from = clampInt(from, 0, len(b.text))
	to = clampInt(to, from, len(b.text))
	return grapheme.Join(b.text[from:to])
}

// LineBounds returns the logical line around off: start is one past the
// previous '\n' (or 0) and end is the index of the next '\n' (or Len()).
func (b *Buffer) LineBounds(off int) (start, end int) {
	off = clampInt(off, 0, len(b.text))
	start = off
	for start > 0 && b.text[start-1] != "\n" {
		start--
	}
	end = off
	for end < len(b.text) && b.text[end] != "\n" {
		end++
	}
	return start, end
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// sanitize drops escape sequences and control runes other than '\n'. Line
// endings become '\n' and a tab becomes a space.
func sanitize(s string) string {
	s = normalizeNewlines(strings.ToValidUTF8(s, "\uFFFD"))
	if !strings.ContainsFunc(s, unprintable) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unprintable(r):
			return -1
		}
		return r
	}, ansi.Strip(s))
}

func unprintable(r rune) bool {
	return r != '\n' && unicode.IsControl(r)
}
