package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Prompt lipgloss.Style
	Cursor lipgloss.Style
	Footer lipgloss.Style

	// Cancelled styles the final frame of an aborted session.
	Cancelled lipgloss.Style

	SuggestionItem     lipgloss.Style
	SuggestionSelected lipgloss.Style
	// SuggestionMatch is layered over the row style for the matched span.
	SuggestionMatch lipgloss.Style

	ScrollThumb lipgloss.Style
	ScrollTrack lipgloss.Style
}

func DefaultStyle() Style {
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Prompt:             lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Cursor:             lipgloss.NewStyle().Reverse(true),
		Footer:             grey,
		Cancelled:          grey,
		SuggestionItem:     lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		SuggestionSelected: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")),
		SuggestionMatch:    lipgloss.NewStyle().Underline(true).Bold(true),
		ScrollThumb:        lipgloss.NewStyle().Reverse(true),
		ScrollTrack:        grey,
	}
}
