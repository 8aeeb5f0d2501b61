// Package catalog indexes npm packages by the tasks they solve and holds the
// code samples recorded for each package.
//
// A catalog is a TOML file with one [[package]] table per package:
//
//	[[package]]
//	name = "lodash"
//	description = "Lodash modular utilities."
//	tasks = ["deep clone", "merge objects"]
//
// Samples live in a directory as <package>.<n>.js files.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/iw2rmb/ncq/editor"
)

// MaxChoices caps the number of tasks offered to the editor overlay.
const MaxChoices = 10000

// ErrNotLoaded is returned by queries made before Load.
var ErrNotLoaded = errors.New("catalog: index not loaded")

// Package is one catalog entry.
type Package struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Tasks       []string `toml:"tasks"`
}

type file struct {
	Packages []Package `toml:"package"`
}

// Index answers task and package queries. Build it with New and fill it with
// Load; it is read-only afterwards.
type Index struct {
	log *slog.Logger

	loaded   bool
	packages []Package
	byName   map[string]int
	tasks    []string
	snippets map[string][]string
}

// New returns an empty Index. A nil logger discards records.
func New(log *slog.Logger) *Index {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Index{log: log}
}

// Load reads the catalog at catalogPath and the samples under snippetsDir.
// An empty snippetsDir or a missing directory leaves the index without
// samples.
func (x *Index) Load(catalogPath, snippetsDir string) error {
	f, err := os.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	if err := x.Decode(f); err != nil {
		return fmt.Errorf("%s: %w", catalogPath, err)
	}
	if snippetsDir != "" {
		if err := x.loadSnippets(snippetsDir); err != nil {
			return err
		}
	}
	x.log.Info("catalog loaded",
		"packages", len(x.packages),
		"tasks", len(x.tasks),
		"snippets", x.snippetCount())
	return nil
}

// Decode replaces the package table with the TOML catalog read from r.
func (x *Index) Decode(r io.Reader) error {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown catalog key %q", undecoded[0].String())
	}

	byName := make(map[string]int, len(f.Packages))
	seen := make(map[string]bool)
	var tasks []string
	for i, p := range f.Packages {
		if p.Name == "" {
			return fmt.Errorf("package %d has no name", i)
		}
		if _, dup := byName[p.Name]; dup {
			return fmt.Errorf("duplicate package %q", p.Name)
		}
		byName[p.Name] = i
		for _, t := range p.Tasks {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tasks = append(tasks, t)
		}
	}

	x.packages = f.Packages
	x.byName = byName
	x.tasks = tasks
	if x.snippets == nil {
		x.snippets = make(map[string][]string)
	}
	x.loaded = true
	return nil
}

func (x *Index) loadSnippets(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			x.log.Warn("snippets directory missing", "dir", dir)
			return nil
		}
		return fmt.Errorf("failed to read snippets: %w", err)
	}

	type numbered struct {
		n    int
		code string
	}
	found := make(map[string][]numbered)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".js" {
			continue
		}
		pkg, n, ok := parseSnippetName(e.Name())
		if !ok {
			x.log.Debug("skipping snippet with unexpected name", "file", e.Name())
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to read snippet %s: %w", e.Name(), err)
		}
		found[pkg] = append(found[pkg], numbered{n: n, code: strings.TrimSpace(string(data))})
	}

	snippets := make(map[string][]string, len(found))
	for pkg, list := range found {
		slices.SortFunc(list, func(a, b numbered) int { return cmp.Compare(a.n, b.n) })
		for _, s := range list {
			snippets[pkg] = append(snippets[pkg], s.code)
		}
	}
	x.snippets = snippets
	return nil
}

// parseSnippetName splits "<package>.<n>.js". Package names may contain
// dots themselves.
func parseSnippetName(name string) (pkg string, n int, ok bool) {
	stem := strings.TrimSuffix(name, ".js")
	i := strings.LastIndexByte(stem, '.')
	if i <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return stem[:i], n, true
}

func (x *Index) snippetCount() int {
	n := 0
	for _, s := range x.snippets {
		n += len(s)
	}
	return n
}

// Loaded reports whether Load or Decode succeeded.
func (x *Index) Loaded() bool { return x.loaded }

// Package looks a package up by exact name.
func (x *Index) Package(name string) (Package, bool) {
	i, ok := x.byName[name]
	if !ok {
		return Package{}, false
	}
	return x.packages[i], true
}

// Tasks returns the distinct tasks in catalog order.
func (x *Index) Tasks() []string {
	return slices.Clone(x.tasks)
}

// Choices returns the task set for the editor overlay: the first MaxChoices
// tasks, sorted.
func (x *Index) Choices() []editor.Choice {
	tasks := x.tasks
	if len(tasks) > MaxChoices {
		tasks = tasks[:MaxChoices]
	}
	tasks = slices.Clone(tasks)
	slices.Sort(tasks)

	out := make([]editor.Choice, len(tasks))
	for i, t := range tasks {
		out[i] = editor.Choice{ID: strconv.Itoa(i), Label: t}
	}
	return out
}

// SnippetsByPackage returns the samples recorded for a package.
func (x *Index) SnippetsByPackage(name string) []string {
	return slices.Clone(x.snippets[strings.TrimSpace(name)])
}

// SnippetsByTask returns the samples of every package matching task, best
// match first.
func (x *Index) SnippetsByTask(task string) ([]string, error) {
	ranked, err := x.PackagesByTask(task)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range ranked {
		out = append(out, x.snippets[p.Name]...)
	}
	return out, nil
}
