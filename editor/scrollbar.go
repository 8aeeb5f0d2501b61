package editor

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Scrollbar renders the gutter drawn to the right of the content rows.
type Scrollbar struct {
	// Total is the number of wrapped rows.
	Total int
	// Height is the number of visible rows.
	Height int
	// Top is the first visible row.
	Top int

	ThumbStyle lipgloss.Style
	TrackStyle lipgloss.Style

	ThumbChar string
	UpChar    string
	DownChar  string
}

// ScrollbarOption configures NewScrollbar.
type ScrollbarOption func(*Scrollbar)

// NewScrollbar returns a scrollbar with arrow glyphs and a reverse-video
// thumb.
func NewScrollbar(opts ...ScrollbarOption) Scrollbar {
	s := Scrollbar{
		ThumbChar:  " ",
		UpChar:     "▲",
		DownChar:   "▼",
		ThumbStyle: lipgloss.NewStyle().Reverse(true),
		TrackStyle: lipgloss.NewStyle(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithScrollbarStyles sets the thumb and track styles.
func WithScrollbarStyles(thumb, track lipgloss.Style) ScrollbarOption {
	return func(s *Scrollbar) {
		s.ThumbStyle = thumb
		s.TrackStyle = track
	}
}

// WithScrollbarChars sets the thumb and arrow glyphs.
func WithScrollbarChars(thumb, up, down string) ScrollbarOption {
	return func(s *Scrollbar) {
		s.ThumbChar = thumb
		s.UpChar = up
		s.DownChar = down
	}
}

// Needed reports whether the content overflows the window.
func (s Scrollbar) Needed() bool {
	return s.Height > 0 && s.Total > s.Height
}

// Thumb returns the first thumb row and the thumb size. The size is
// round(h*h/total) and never less than one row.
func (s Scrollbar) Thumb() (top, size int) {
	if !s.Needed() {
		return 0, s.Height
	}
	h := float64(s.Height)
	total := float64(s.Total)
	size = int(math.Round(h * h / total))
	if size < 1 {
		size = 1
	}
	top = int(math.Round(float64(s.Top) * h / total))
	return clampInt(top, 0, s.Height-size), size
}

// Column returns one rendered glyph per visible row. Each entry is one cell
// wide; callers prefix it with a space to form the two-column gutter.
func (s Scrollbar) Column() []string {
	if s.Height <= 0 {
		return nil
	}
	out := make([]string, s.Height)
	if !s.Needed() {
		for i := range out {
			out[i] = " "
		}
		return out
	}

	// A plain space can lose its escape codes when rendered, so the thumb
	// uses a non-breaking space instead.
	thumb := s.ThumbChar
	if thumb == " " {
		thumb = "\u00a0"
	}

	top, size := s.Thumb()
	for i := range out {
		switch {
		case i >= top && i < top+size:
			out[i] = s.ThumbStyle.Render(thumb)
		case i == 0:
			out[i] = s.TrackStyle.Render(s.UpChar)
		case i == s.Height-1:
			out[i] = s.TrackStyle.Render(s.DownChar)
		default:
			out[i] = " "
		}
	}
	return out
}
