package repl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

const defaultHistorySize = 1000

type historyEntry struct {
	Input string    `json:"input"`
	Time  time.Time `json:"time"`
}

// History keeps submitted inputs, oldest first, and appends each new entry
// to a JSON-lines file so multiline inputs survive. Once the file holds more
// than the cap it is rewritten with the kept entries. A zero path keeps
// history in memory only.
type History struct {
	path    string
	size    int
	entries []historyEntry
	// stale reports that the file holds entries trimmed from memory.
	stale bool
}

func newMemoryHistory() *History {
	return &History{size: defaultHistorySize}
}

// OpenHistory loads the history file at path. A missing file is empty;
// malformed lines are skipped. size caps the entries kept, 1000 when <= 0.
func OpenHistory(path string, size int) (*History, error) {
	if size <= 0 {
		size = defaultHistorySize
	}
	h := &History{path: path, size: size}
	if path == "" {
		return h, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var e historyEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil || e.Input == "" {
			continue
		}
		h.entries = append(h.entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	h.trim()
	return h, nil
}

// Entries returns the kept inputs, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Input
	}
	return out
}

// Add records input. Blank inputs and repeats of the newest entry are
// ignored.
func (h *History) Add(input string) error {
	if input == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1].Input == input) {
		return nil
	}
	e := historyEntry{Input: input, Time: time.Now().UTC()}
	h.entries = append(h.entries, e)
	h.trim()
	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	if h.stale {
		return h.rewrite()
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(e); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// rewrite replaces the file with the kept entries.
func (h *History) rewrite() error {
	tmp, err := os.CreateTemp(filepath.Dir(h.path), filepath.Base(h.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to rewrite history: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, e := range h.entries {
		if err := enc.Encode(e); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write history: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.path); err != nil {
		return fmt.Errorf("failed to rewrite history: %w", err)
	}
	h.stale = false
	return nil
}

func (h *History) trim() {
	if over := len(h.entries) - h.size; over > 0 {
		h.entries = slices.Delete(h.entries, 0, over)
		h.stale = true
	}
}
