package buffer

import "github.com/iw2rmb/ncq/internal/grapheme"

// Insert inserts s at the cursor and advances the cursor past it.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	_ = b.ReplaceSpan(b.cursor, b.cursor, s)
}

// DeleteBackward removes the grapheme before the cursor.
func (b *Buffer) DeleteBackward() {
	if b.cursor == 0 {
		return
	}
	_ = b.ReplaceSpan(b.cursor-1, b.cursor, "")
}

// DeleteForward removes the grapheme under the cursor.
func (b *Buffer) DeleteForward() {
	if b.cursor >= len(b.text) {
		return
	}
	_ = b.ReplaceSpan(b.cursor, b.cursor+1, "")
}

// ReplaceSpan replaces [from, to) with s and leaves the cursor right after
// the inserted text. A span outside the buffer is rejected with a
// *RangeError and the buffer is left untouched.
//
// The result is segmented again as a whole, so an inserted combining mark
// joins the cluster before it and the buffer always agrees with a fresh
// segmentation of Text().
func (b *Buffer) ReplaceSpan(from, to int, s string) error {
	if err := validSpan(from, to, len(b.text)); err != nil {
		return err
	}
	ins := sanitize(s)
	if from == to && ins == "" {
		return nil
	}

	prev := b.snapshot()

	left := grapheme.Join(b.text[:from])
	b.text = grapheme.Split(left + ins + grapheme.Join(b.text[to:]))
	b.cursor = clusterAt(b.text, len(left)+len(ins), ins != "")
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	return nil
}

// clusterAt maps a byte offset to a cluster offset. An offset inside a
// cluster rounds up after an insertion and down otherwise.
func clusterAt(clusters []string, pos int, up bool) int {
	at := 0
	for i, c := range clusters {
		if at >= pos {
			return i
		}
		if next := at + len(c); next > pos && !up {
			return i
		}
		at += len(c)
	}
	return len(clusters)
}

// SetText replaces the whole document and moves the cursor to its end.
func (b *Buffer) SetText(s string) {
	if s == b.Text() {
		b.SetCursor(len(b.text))
		return
	}
	_ = b.ReplaceSpan(0, len(b.text), s)
}
