package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/ncq/layout"
)

// Frame is one rendered picture of the editor region.
type Frame struct {
	Lines []string
	// CursorRow and CursorCol locate the cursor in cells, relative to the
	// top-left of the frame.
	CursorRow int
	CursorCol int
	// Final marks the frame left on screen after submit or cancel. It has no
	// overlay, scrollbar or footer.
	Final bool
}

func (f Frame) String() string { return strings.Join(f.Lines, "\n") }

// Render builds a frame from the current state and hands it to s. A sink
// failure is returned wrapped; the editor state is not touched, so the next
// Render reproduces the same frame.
func (e *Editor) Render(s Sink) error {
	if err := s.WriteFrame(e.Frame()); err != nil {
		return fmt.Errorf("editor: write frame: %w", err)
	}
	return nil
}

// Frame renders the current state without side effects.
func (e *Editor) Frame() Frame {
	if e.Done() {
		return e.finalFrame()
	}

	lines := e.Lines()
	v := e.view
	c := layout.ToCoordinate(lines, e.promptLen+e.buf.Cursor())
	cursorRow := c.Row - v.Top
	cursorCol := lines[c.Row].CellCol(c.Col)

	pad := e.cfg.Scrollbar || e.sugg.Active()
	rows := make([]string, v.Height)
	for i := range rows {
		var text string
		if idx := v.Top + i; idx < len(lines) {
			text = lines[idx].Text
		}
		if pad {
			text = padCells(text, v.Width)
		}
		rows[i] = text
	}

	if e.sugg.Active() {
		anchor := layout.ToCoordinate(lines, e.promptLen+e.sugg.State().Anchor)
		anchorCol := cursorCol
		if anchor.Row == c.Row {
			anchorCol = lines[anchor.Row].CellCol(anchor.Col)
		}
		rows = e.composeSuggestions(rows, cursorRow, anchorCol)
	}

	if e.cfg.Scrollbar {
		bar := NewScrollbar(WithScrollbarStyles(e.cfg.Style.ScrollThumb, e.cfg.Style.ScrollTrack))
		bar.Total, bar.Height, bar.Top = len(lines), v.Height, v.Top
		for i, glyph := range bar.Column() {
			rows[i] += " " + glyph
		}
	}

	if footer, ok := e.footer(); ok {
		rows = append(rows, ansi.Truncate(footer, e.width, ""))
	}

	return Frame{Lines: rows, CursorRow: cursorRow, CursorCol: cursorCol}
}

func (e *Editor) footer() (string, bool) {
	switch {
	case e.cfg.Footer != "":
		return e.cfg.Style.Footer.Render(e.cfg.Footer), true
	case e.cfg.ShowHelp:
		return e.help.ShortHelpView(e.keys.ShortHelp()), true
	default:
		return "", false
	}
}

// finalFrame is the whole text wrapped to the terminal width, greyed out
// when the session was cancelled.
func (e *Editor) finalFrame() Frame {
	text := e.prompt + e.buf.Text()
	if e.final == StateCancelled {
		logical := strings.Split(ansi.Strip(text), "\n")
		for i, l := range logical {
			if l != "" {
				logical[i] = e.cfg.Style.Cancelled.Render(l)
			}
		}
		text = strings.Join(logical, "\n")
	}
	lines := layout.Wrap(text, e.width)
	last := len(lines) - 1
	return Frame{
		Lines:     lines.Strings(),
		CursorRow: last,
		CursorCol: lines[last].Cells,
		Final:     true,
	}
}

func padCells(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
