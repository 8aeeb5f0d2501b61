package editor

// Viewport is the fixed-height window of wrapped rows drawn to the terminal.
type Viewport struct {
	// Height is the number of content rows, footer excluded.
	Height int
	// Width is the number of content columns, scrollbar gutter excluded.
	Width int
	// Top is the first visible wrapped row.
	Top int
}

// Follow scrolls so that cursorRow is visible given total wrapped rows.
//
// A cursor above the window pulls Top up to it; a cursor below the window
// pushes Top down to it, never past the last full page. When everything fits
// Top resets to 0.
func (v *Viewport) Follow(cursorRow, total int) {
	switch {
	case cursorRow < v.Top:
		v.Top = clampInt(cursorRow, 0, total-v.Height)
	case cursorRow > v.Top+v.Height-1:
		v.Top = minInt(cursorRow, total-v.Height)
	case total <= v.Height:
		v.Top = 0
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

// Visible reports whether row is inside the window.
func (v Viewport) Visible(row int) bool {
	return row >= v.Top && row < v.Top+v.Height
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

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
