package editor

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// composeSuggestions draws the overlay over the content rows. The popup
// opens below the cursor row when it fits, otherwise above it when there is
// more room there. The visible window of entries follows the focus.
func (e *Editor) composeSuggestions(rows []string, cursorRow, anchorCol int) []string {
	st := e.sugg.State()
	if len(st.Filtered) == 0 || len(rows) == 0 {
		return rows
	}

	target := minInt(e.cfg.MaxSuggestions, len(st.Filtered))
	belowAvail := maxInt(len(rows)-(cursorRow+1), 0)
	aboveAvail := maxInt(cursorRow, 0)
	showBelow := true
	count := target
	if count > belowAvail {
		if aboveAvail >= count {
			showBelow = false
		} else if aboveAvail > belowAvail {
			showBelow = false
			count = aboveAvail
		} else {
			count = belowAvail
		}
	}
	if count <= 0 {
		return rows
	}

	start := 0
	if st.Focused >= count {
		start = st.Focused - count + 1
	}
	items := st.Filtered[start : start+count]

	width := 0
	for _, c := range items {
		if w := ansi.StringWidth(sanitizeLabel(c.Label)); w > width {
			width = w
		}
	}
	width = minInt(width+2, e.view.Width)
	if width < 3 {
		return rows
	}

	rendered := make([]string, 0, len(items))
	for i, c := range items {
		rendered = append(rendered, renderSuggestionRow(e.cfg.Style, c.Label, st.FilterText, start+i == st.Focused, width))
	}

	y := cursorRow + 1
	if !showBelow {
		y = cursorRow - len(rendered)
	}
	y = clampInt(y, 0, len(rows)-len(rendered))
	x := clampInt(anchorCol, 0, e.view.Width-width)

	out := overlay.Composite(
		strings.Join(rendered, "\n"),
		strings.Join(rows, "\n"),
		overlay.Left,
		overlay.Top,
		x,
		y,
	)
	return strings.Split(out, "\n")
}

// renderSuggestionRow renders " label " padded to width with the matched
// span of the label highlighted.
func renderSuggestionRow(st Style, label, filter string, selected bool, width int) string {
	base := st.SuggestionItem
	if selected {
		base = st.SuggestionSelected
	}

	inner := width - 2
	text := ansi.Truncate(sanitizeLabel(label), inner, "…")
	pre, match, post := splitMatch(text, filter)

	var sb strings.Builder
	sb.WriteString(base.Render(" " + pre))
	if match != "" {
		sb.WriteString(st.SuggestionMatch.Inherit(base).Render(match))
	}
	fill := maxInt(inner-ansi.StringWidth(text), 0)
	sb.WriteString(base.Render(post + strings.Repeat(" ", fill) + " "))
	return sb.String()
}

// splitMatch cuts text around the first case-folded occurrence of filter.
func splitMatch(text, filter string) (pre, match, post string) {
	if filter == "" {
		return text, "", ""
	}
	lower := strings.ToLower(text)
	// Folding changed byte offsets; no highlight rather than a wrong one.
	if len(lower) != len(text) {
		return text, "", ""
	}
	i := strings.Index(lower, filter)
	if i < 0 {
		return text, "", ""
	}
	return text[:i], text[i : i+len(filter)], text[i+len(filter):]
}

func sanitizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
