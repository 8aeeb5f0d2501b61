package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/ncq/internal/grapheme"
)

// Row is one rendered line after wrapping.
type Row struct {
	// Text is the row content. Escape sequences are kept and take no width.
	Text string
	// Len is the number of visible grapheme clusters in Text.
	Len int
	// Cells is the terminal width of Text.
	Cells int
	// Break reports that the row ends a logical line, i.e. it is followed by
	// a '\n' in the source text.
	Break bool

	// starts holds the cell column of each cluster.
	starts []int
}

// Lines is the ordered output of Wrap. It always holds at least one row.
type Lines []Row

// Strings returns the row texts.
func (l Lines) Strings() []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = r.Text
	}
	return out
}

// Len returns the length of the source text in grapheme clusters.
func (l Lines) Len() int {
	n := 0
	for _, r := range l {
		n += r.span()
	}
	return n
}

func (r Row) span() int {
	if r.Break {
		return r.Len + 1
	}
	return r.Len
}

// Wrap splits text on '\n' and hard-wraps each logical line at width cells.
// Trailing spaces are preserved. A width <= 0 disables wrapping.
func Wrap(text string, width int) Lines {
	return WrapPrefixed("", text, width)
}

// WrapPrefixed wraps prefix followed by text. The two are segmented into
// grapheme clusters separately, so a combining mark at the start of text
// never joins the last cluster of prefix and offsets into text stay aligned
// with prefix's own length.
func WrapPrefixed(prefix, text string, width int) Lines {
	w := wrapper{width: width}
	w.feed(prefix)
	w.feed(text)
	w.flush()
	return w.rows
}

type wrapper struct {
	width int
	rows  Lines
	cur   Row
	sb    strings.Builder
}

func (w *wrapper) flush() {
	w.cur.Text = w.sb.String()
	w.rows = append(w.rows, w.cur)
	w.cur = Row{}
	w.sb.Reset()
}

func (w *wrapper) feed(s string) {
	var state byte
	for s != "" {
		if s[0] == '\n' {
			w.cur.Break = true
			w.flush()
			s = s[1:]
			state = 0
			continue
		}

		seq, _, n, next := ansi.DecodeSequence(s, state, nil)
		state = next
		if n <= 0 {
			seq, n = s[:1], 1
		}
		if invisible(seq) {
			w.sb.WriteString(seq)
			s = s[n:]
			continue
		}
		// DecodeSequence yields single ASCII bytes; a cluster may extend
		// past them with combining marks.
		seq, s, _, _ = uniseg.FirstGraphemeClusterInString(s, -1)

		cells := grapheme.Width(seq)
		if w.width > 0 && w.cur.Cells > 0 && w.cur.Cells+cells > w.width {
			w.flush()
		}
		w.sb.WriteString(seq)
		w.cur.starts = append(w.cur.starts, w.cur.Cells)
		w.cur.Len++
		w.cur.Cells += cells
	}
}

// invisible reports whether a decoded sequence is an escape or control
// sequence rather than a printable grapheme cluster.
func invisible(seq string) bool {
	c := seq[0]
	return c < 0x20 || (c >= 0x7f && c < 0xc0)
}
