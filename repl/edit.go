package repl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// sessionFile is the file editor() hands to the external editor.
const sessionFile = "index.js"

// EditFunc edits the file at path and returns once the editor has exited.
type EditFunc func(ctx context.Context, path string) error

// ExternalEditor runs $VISUAL or $EDITOR on path with the terminal attached.
// Without either it falls back to nano, then vi.
func ExternalEditor(ctx context.Context, path string) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
		if _, err := exec.LookPath("nano"); err == nil {
			editor = "nano"
		}
	}
	args := strings.Fields(editor)
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

// editor writes the inputs evaluated so far to index.js and opens it in the
// external editor. Once the current input is done the JavaScript context is
// reset and the edited file runs in it.
func (r *REPL) editor() {
	r.println("// Entering editor mode")
	path := filepath.Join(r.dir, sessionFile)
	code := strings.Join(r.session, "\n")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		r.report(fmt.Errorf("write %s: %w", sessionFile, err))
		return
	}
	if err := r.edit(r.ctx, path); err != nil {
		r.log.Warn("editor failed", "path", path, "error", err)
		r.println(fmt.Sprintf("Editor exited with code %d", exitCode(err)))
	}
	r.reload = path
}

// load replaces the JavaScript context with a fresh one and runs the file at
// path in it. The file becomes the new session.
func (r *REPL) load(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.report(fmt.Errorf("read %s: %w", sessionFile, err))
		return
	}
	r.println("// Loading and running new context, will print")
	r.vm = r.newRuntime()
	r.session = nil

	src := string(data)
	if strings.TrimSpace(src) == "" {
		return
	}
	r.log.Info("session reloaded", "path", path)
	if r.eval(ctx, src) {
		r.session = append(r.session, strings.TrimRight(src, "\n"))
	}
}
