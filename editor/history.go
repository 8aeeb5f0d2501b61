package editor

import "github.com/iw2rmb/ncq/buffer"

// inputHistory walks previously submitted inputs. The text being edited
// before the walk started is kept as a draft and restored past the newest
// entry.
type inputHistory struct {
	entries []string
	pos     int
	draft   string
}

func newInputHistory(entries []string) inputHistory {
	entries = append([]string(nil), entries...)
	return inputHistory{entries: entries, pos: len(entries)}
}

func (h *inputHistory) prev(buf *buffer.Buffer) {
	if h.pos == 0 {
		return
	}
	if h.pos == len(h.entries) {
		h.draft = buf.Text()
	}
	h.pos--
	buf.SetText(h.entries[h.pos])
}

func (h *inputHistory) next(buf *buffer.Buffer) {
	if h.pos >= len(h.entries) {
		return
	}
	h.pos++
	if h.pos == len(h.entries) {
		buf.SetText(h.draft)
		return
	}
	buf.SetText(h.entries[h.pos])
}
