package layout

// Coordinate addresses a position in wrapped rows.
type Coordinate struct {
	Row int
	Col int
}

// ToCoordinate converts an absolute offset into a row and column.
//
// Rows are walked accumulating their length (plus one for a hard line
// break); the first row whose accumulated length exceeds off holds it. An
// offset on a soft wrap boundary therefore belongs to the start of the next
// row. Offsets outside the text clamp to its ends.
func ToCoordinate(lines Lines, off int) Coordinate {
	if len(lines) == 0 || off <= 0 {
		return Coordinate{}
	}
	acc := 0
	for i, r := range lines {
		n := r.span()
		if acc+n > off {
			return Coordinate{Row: i, Col: off - acc}
		}
		acc += n
	}
	last := len(lines) - 1
	return Coordinate{Row: last, Col: lines[last].Len}
}

// ToOffset is the inverse of ToCoordinate. Row and column are clamped to the
// wrapped bounds.
func ToOffset(lines Lines, c Coordinate) int {
	if len(lines) == 0 {
		return 0
	}
	row := clampInt(c.Row, 0, len(lines)-1)
	off := 0
	for i := 0; i < row; i++ {
		off += lines[i].span()
	}
	return off + clampInt(c.Col, 0, lines[row].Len)
}

// CellCol returns the terminal column of the col-th cluster in the row.
func (r Row) CellCol(col int) int {
	if col <= 0 {
		return 0
	}
	if col >= len(r.starts) {
		return r.Cells
	}
	return r.starts[col]
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
