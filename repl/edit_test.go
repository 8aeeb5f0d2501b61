package repl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditor_ReloadsEditedSession(t *testing.T) {
	dir := t.TempDir()
	var seen string
	edit := func(_ context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		seen = string(data)
		return os.WriteFile(path, []byte("var total = 10\ntotal * 2\n"), 0o644)
	}
	h := newHarness(t, Config{Dir: dir, Edit: edit})
	ctx := context.Background()

	h.r.Exec(ctx, "var total = 1")
	h.r.Exec(ctx, "help()")
	h.r.Exec(ctx, "nope +")
	h.r.Exec(ctx, "var other = 2")
	h.out.Reset()

	h.r.Exec(ctx, "editor")
	assert.Equal(t, "var total = 1\nvar other = 2", seen)
	assert.Equal(t, "// Entering editor mode\n// Loading and running new context, will print\n20\n", h.out.String())
	assert.FileExists(t, filepath.Join(dir, sessionFile))

	h.out.Reset()
	h.r.Exec(ctx, "typeof other")
	h.r.Exec(ctx, "total")
	assert.Equal(t, "undefined\n10\n", h.out.String())

	h.out.Reset()
	h.r.Exec(ctx, "version()")
	assert.Contains(t, h.out.String(), "Node Query Library")
}

func TestEditor_FailureStillReloads(t *testing.T) {
	edit := func(context.Context, string) error {
		return fmt.Errorf("vi: %w", exitErr(2))
	}
	h := newHarness(t, Config{Dir: t.TempDir(), Edit: edit})
	ctx := context.Background()

	h.r.Exec(ctx, "var a = 5")
	h.out.Reset()
	h.r.Exec(ctx, "editor()")
	assert.Equal(t, "// Entering editor mode\nEditor exited with code 2\n// Loading and running new context, will print\n", h.out.String())

	h.out.Reset()
	h.r.Exec(ctx, "a")
	assert.Equal(t, "5\n", h.out.String())
}

func TestEditor_UnwritableDir(t *testing.T) {
	called := false
	edit := func(context.Context, string) error {
		called = true
		return nil
	}
	h := newHarness(t, Config{Dir: filepath.Join(t.TempDir(), "missing"), Edit: edit})
	h.r.Exec(context.Background(), "editor()")
	assert.False(t, called)
	assert.Contains(t, h.err.String(), "NCQ: write index.js")
}

func TestIsCommandCall(t *testing.T) {
	assert.True(t, isCommandCall(`install("lodash")`))
	assert.True(t, isCommandCall("help ()"))
	assert.False(t, isCommandCall("helper()"))
	assert.False(t, isCommandCall("var help = 1"))
}
