package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/ncq/buffer"
)

// HandleKey runs one key event through the dispatcher. Keys arriving after
// the session finished are ignored.
func (e *Editor) HandleKey(msg tea.KeyMsg) {
	if e.Done() {
		return
	}

	switch {
	case msg.Type == tea.KeyCtrlC:
		// The interrupt never reaches the binding table.
		e.cancel(false)
		return
	case msg.Type == tea.KeyCtrlD && e.buf.Len() == 0:
		e.cancel(true)
		return
	case msg.Type == tea.KeyRunes && msg.Paste:
		e.buf.Insert(strings.ReplaceAll(string(msg.Runes), "\t", strings.Repeat(" ", e.cfg.TabWidth)))
		e.afterEdit()
		return
	}

	if a, ok := e.keys.Lookup(ChordFromKey(msg)); ok {
		e.apply(a)
	} else {
		e.insertKey(msg)
	}
	if !e.Done() {
		e.afterEdit()
	}
}

func (e *Editor) apply(a Action) {
	switch a {
	case ActionAutocomplete:
		e.sugg.Toggle(e.buf)
	case ActionCursorUp:
		if e.sugg.Active() {
			e.sugg.FocusPrev()
			return
		}
		e.lineUp()
	case ActionCursorDown:
		if e.sugg.Active() {
			e.sugg.FocusNext()
			return
		}
		e.lineDown()
	case ActionLineStart:
		e.lineStart()
	case ActionLineEnd:
		e.lineEnd()
	case ActionSubmit:
		e.submit()
	case ActionNewline:
		if e.cfg.Multiline {
			e.buf.Insert("\n")
		}
	case ActionLeft:
		e.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case ActionRight:
		e.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case ActionWordLeft:
		e.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case ActionWordRight:
		e.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case ActionBackspace:
		e.buf.DeleteBackward()
	case ActionDelete:
		e.buf.DeleteForward()
	case ActionDismiss:
		e.sugg.Close()
	case ActionUndo:
		e.buf.Undo()
	case ActionRedo:
		e.buf.Redo()
	case ActionHistoryPrev:
		e.sugg.Close()
		e.hist.prev(e.buf)
	case ActionHistoryNext:
		e.sugg.Close()
		e.hist.next(e.buf)
	}
}

// insertKey is the fallback for keys without a binding.
func (e *Editor) insertKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return
		}
		e.buf.Insert(string(msg.Runes))
	case tea.KeySpace:
		e.buf.Insert(" ")
	case tea.KeyTab:
		e.buf.Insert(strings.Repeat(" ", e.cfg.TabWidth))
	}
}
