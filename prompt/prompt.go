// Package prompt runs one interactive editor session on a terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/iw2rmb/ncq/editor"
)

// ErrCancelled is returned when the user interrupts the session.
var ErrCancelled = errors.New("prompt: cancelled")

type options struct {
	in  io.Reader
	out io.Writer
}

// Option configures Read.
type Option func(*options)

// WithInput reads keys from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(o *options) { o.in = r }
}

// WithOutput renders to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// Read edits one input and returns the submitted text. A cancelled session
// returns ErrCancelled; end-of-input on an empty buffer returns io.EOF. The
// terminal is restored on every exit path.
func Read(ctx context.Context, cfg editor.Config, opts ...Option) (string, error) {
	o := options{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Width == 0 {
		cfg.Width = terminalWidth(o.out)
	}

	ed, err := editor.New(cfg)
	if err != nil {
		return "", err
	}

	p := tea.NewProgram(editor.NewModel(ed),
		tea.WithContext(ctx),
		tea.WithInput(o.in),
		tea.WithOutput(o.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(editor.Model)
	if !ok {
		return "", fmt.Errorf("prompt: unexpected model %T", final)
	}
	return result(m.Editor())
}

func result(ed *editor.Editor) (string, error) {
	switch ed.State() {
	case editor.StateSubmitted:
		return ed.Value(), nil
	case editor.StateCancelled:
		if ed.EOF() {
			return "", io.EOF
		}
		return "", ErrCancelled
	default:
		// input ended before the session finished
		return "", io.EOF
	}
}

// terminalWidth returns the width of w when it is a terminal, or 0 to let
// the editor pick its default.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
