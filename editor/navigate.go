package editor

import "github.com/iw2rmb/ncq/layout"

// LineStart moves the cursor to the start of its logical line.
func (e *Editor) LineStart() {
	e.lineStart()
	e.afterEdit()
}

// LineEnd moves the cursor to the end of its logical line.
func (e *Editor) LineEnd() {
	e.lineEnd()
	e.afterEdit()
}

// LineUp moves the cursor one wrapped row up, keeping its column.
func (e *Editor) LineUp() {
	e.lineUp()
	e.afterEdit()
}

// LineDown moves the cursor one wrapped row down, keeping its column. At
// the end of the text in multiline mode it opens a new line instead.
func (e *Editor) LineDown() {
	e.lineDown()
	e.afterEdit()
}

func (e *Editor) lineStart() {
	cur := e.buf.Cursor()
	if cur == 0 {
		return
	}
	start, _ := e.buf.LineBounds(cur)
	e.buf.SetCursor(start)
}

func (e *Editor) lineEnd() {
	cur := e.buf.Cursor()
	if cur == e.buf.Len() {
		return
	}
	_, end := e.buf.LineBounds(cur)
	e.buf.SetCursor(end)
}

func (e *Editor) lineUp() {
	lines := e.Lines()
	c := layout.ToCoordinate(lines, e.promptLen+e.buf.Cursor())
	if c.Row == 0 {
		return
	}
	e.moveToRow(lines, c.Row-1, c.Col)
}

func (e *Editor) lineDown() {
	lines := e.Lines()
	c := layout.ToCoordinate(lines, e.promptLen+e.buf.Cursor())
	if c.Row >= len(lines)-1 {
		if e.cfg.Multiline && e.buf.Cursor() == e.buf.Len() {
			e.buf.Insert("\n")
		}
		return
	}
	e.moveToRow(lines, c.Row+1, c.Col)
}

// moveToRow places the cursor at col on row. A soft-wrapped row clamps to
// its last cluster, since its end offset belongs to the next row.
func (e *Editor) moveToRow(lines layout.Lines, row, col int) {
	r := lines[row]
	limit := r.Len
	if !r.Break && row < len(lines)-1 && limit > 0 {
		limit--
	}
	off := layout.ToOffset(lines, layout.Coordinate{Row: row, Col: minInt(col, limit)})
	e.buf.SetCursor(off - e.promptLen)
}
