package editor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/ncq/internal/grapheme"
)

// Model adapts an Editor to Bubble Tea. Key messages are dispatched in
// arrival order and the program quits once the editor is done.
type Model struct {
	ed *Editor
}

func NewModel(ed *Editor) Model { return Model{ed: ed} }

func (m Model) Editor() *Editor { return m.ed }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// A terminal too small for the region keeps the previous size.
		_ = m.ed.Resize(msg.Width, minInt(m.ed.cfg.Height, msg.Height))
	case tea.KeyMsg:
		m.ed.HandleKey(msg)
		if m.ed.Done() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	var view string
	_ = m.ed.Render(SinkFunc(func(f Frame) error {
		view = paintFrame(f, m.ed.cfg.Style.Cursor, m.ed.width)
		return nil
	}))
	return view
}

// paintFrame draws the cursor cell of a live frame in reverse video.
func paintFrame(f Frame, cursor lipgloss.Style, width int) string {
	if f.Final || f.CursorRow < 0 || f.CursorRow >= len(f.Lines) {
		return f.String()
	}
	lines := append([]string(nil), f.Lines...)
	col := f.CursorCol
	if width > 0 && col >= width {
		col = width - 1
	}
	line := lines[f.CursorRow]
	cell, w := cellAt(line, col)
	lines[f.CursorRow] = ansi.Truncate(line, col, "") + cursor.Render(cell) + ansi.TruncateLeft(line, col+w, "")
	return Frame{Lines: lines}.String()
}

// cellAt returns the grapheme drawn at cell col, or a blank past the end.
func cellAt(line string, col int) (string, int) {
	pos := 0
	for _, g := range grapheme.Split(ansi.Strip(line)) {
		w := grapheme.Width(g)
		if pos == col && w > 0 {
			return g, w
		}
		pos += w
		if pos > col {
			break
		}
	}
	return " ", 1
}
