package editor

import (
	"errors"
	"reflect"
)

const (
	defaultHeight   = 10
	defaultTabWidth = 4
)

// ErrZeroViewport reports a size that leaves no room for content.
var ErrZeroViewport = errors.New("editor: viewport has no content rows or columns")

// Config configures an Editor.
type Config struct {
	// Initial text for the buffer. The cursor starts at its end.
	Text string

	// Prompt is drawn before the text and wraps with it. It may carry
	// styling escapes.
	Prompt string
	// Footer is drawn on the last row, truncated to the width. When empty and
	// ShowHelp is set, a key help line is used instead.
	Footer   string
	ShowHelp bool

	// Width and Height are the terminal cells available to the editor,
	// footer and scrollbar included. Height defaults to 10.
	Width  int
	Height int

	Scrollbar bool
	// Multiline lets cursorDown at the end of the text open a new line.
	Multiline bool

	// MaxSuggestions caps the overlay rows. Defaults to 8.
	MaxSuggestions int
	// TabWidth is the number of spaces an unbound tab inserts. Defaults to 4.
	TabWidth int

	// Forwarded to buffer.Options.
	HistoryLimit int

	Choices []Choice
	// Bindings are overlaid on DefaultBindings.
	Bindings Bindings
	// History holds previously submitted inputs, oldest first.
	History []string

	Style Style
}

func normalizeConfig(cfg Config) Config {
	if cfg.Height == 0 {
		cfg.Height = defaultHeight
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = defaultMaxSuggestions
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = defaultTabWidth
	}
	if reflect.DeepEqual(cfg.Style, Style{}) {
		cfg.Style = DefaultStyle()
	}
	return cfg
}

func (cfg Config) hasFooter() bool {
	return cfg.Footer != "" || cfg.ShowHelp
}

// viewportFor derives the content region for a terminal size.
func (cfg Config) viewportFor(width, height int) (Viewport, error) {
	rows := height
	if cfg.hasFooter() {
		rows--
	}
	cols := width
	if cfg.Scrollbar {
		cols -= 2
	}
	if rows < 1 || cols < 1 {
		return Viewport{}, ErrZeroViewport
	}
	return Viewport{Height: rows, Width: cols}, nil
}
