package editor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"

	"github.com/iw2rmb/ncq/buffer"
	"github.com/iw2rmb/ncq/layout"
)

const defaultWidth = 80

// State is the dispatcher state.
type State int

const (
	StateEditing State = iota
	StateSuggesting
	StateSubmitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSuggesting:
		return "suggesting"
	case StateSubmitted:
		return "submitted"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Editor composes the buffer, the suggestion engine, the viewport and the
// resolved key map. It is not safe for concurrent use.
type Editor struct {
	cfg  Config
	buf  *buffer.Buffer
	keys KeyMap
	sugg Suggester
	view Viewport
	help help.Model

	width  int
	height int

	prompt    string
	promptLen int

	final State
	eof   bool
	err   error

	hist  inputHistory
	cache wrapCache
}

type wrapCache struct {
	valid       bool
	textVersion uint64
	width       int
	lines       layout.Lines
}

// New builds an Editor. Binding faults and sizes that leave no content
// region are reported before any input is accepted.
func New(cfg Config) (*Editor, error) {
	cfg = normalizeConfig(cfg)

	keys, err := NewKeyMap(DefaultBindings().Merge(cfg.Bindings))
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}

	width := cfg.Width
	if width == 0 {
		width = defaultWidth
	}
	view, err := cfg.viewportFor(width, cfg.Height)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		cfg:    cfg,
		buf:    buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		keys:   keys,
		sugg:   NewSuggester(cfg.Choices),
		view:   view,
		help:   help.New(),
		width:  width,
		height: cfg.Height,
		hist:   newInputHistory(cfg.History),
	}
	if cfg.Prompt != "" {
		e.prompt = cfg.Style.Prompt.Render(cfg.Prompt)
		e.promptLen = layout.Wrap(e.prompt, 0).Len()
	}
	e.help.Width = width
	e.follow()
	return e, nil
}

func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Value returns the logical text.
func (e *Editor) Value() string { return e.buf.Text() }

func (e *Editor) Cursor() int { return e.buf.Cursor() }

func (e *Editor) KeyMap() KeyMap { return e.keys }

func (e *Editor) Viewport() Viewport { return e.view }

func (e *Editor) Suggestions() SuggestionState { return e.sugg.State() }

func (e *Editor) State() State {
	if e.final != StateEditing {
		return e.final
	}
	if e.sugg.Active() {
		return StateSuggesting
	}
	return StateEditing
}

// Done reports whether the session reached Submitted or Cancelled.
func (e *Editor) Done() bool {
	return e.final == StateSubmitted || e.final == StateCancelled
}

// EOF reports that the session was cancelled with end-of-input on an empty
// buffer rather than interrupted.
func (e *Editor) EOF() bool { return e.eof }

// Err returns the last fault surfaced while handling input, if any.
func (e *Editor) Err() error { return e.err }

// SetChoices replaces the choice snapshot and refilters an open overlay.
func (e *Editor) SetChoices(choices []Choice) {
	e.sugg.SetChoices(choices)
	e.afterEdit()
}

// Resize sets the terminal cells available to the editor. A size without
// room for content is rejected and the previous size is kept.
func (e *Editor) Resize(width, height int) error {
	v, err := e.cfg.viewportFor(width, height)
	if err != nil {
		return err
	}
	v.Top = e.view.Top
	e.view = v
	e.width = width
	e.height = height
	e.help.Width = width
	e.follow()
	return nil
}

// Lines returns the prompt and text wrapped to the content width.
func (e *Editor) Lines() layout.Lines {
	if e.cache.valid && e.cache.textVersion == e.buf.TextVersion() && e.cache.width == e.view.Width {
		return e.cache.lines
	}
	e.cache = wrapCache{
		valid:       true,
		textVersion: e.buf.TextVersion(),
		width:       e.view.Width,
		lines:       layout.WrapPrefixed(e.prompt, e.buf.Text(), e.view.Width),
	}
	return e.cache.lines
}

// CursorCoordinate returns the wrapped row and column of the cursor.
func (e *Editor) CursorCoordinate() layout.Coordinate {
	return layout.ToCoordinate(e.Lines(), e.promptLen+e.buf.Cursor())
}

func (e *Editor) afterEdit() {
	e.sugg.Refresh(e.buf)
	e.follow()
}

func (e *Editor) follow() {
	if e.Done() {
		return
	}
	c := e.CursorCoordinate()
	e.view.Follow(c.Row, len(e.Lines()))
}

func (e *Editor) submit() {
	if e.sugg.Active() {
		inserted, err := e.sugg.InsertFocused(e.buf)
		if err != nil {
			e.err = err
			return
		}
		if inserted {
			return
		}
	}
	e.sugg.Close()
	e.final = StateSubmitted
}

func (e *Editor) cancel(eof bool) {
	e.sugg.Close()
	e.final = StateCancelled
	e.eof = eof
}
