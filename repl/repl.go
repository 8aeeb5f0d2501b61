// Package repl is the ncq read-eval-print loop. Each input is edited in the
// autocomplete editor, then evaluated as JavaScript in a context where the
// ncq commands (help, packages, samples, install, ...) are global functions.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/dop251/goja"

	"github.com/iw2rmb/ncq/catalog"
	"github.com/iw2rmb/ncq/editor"
	"github.com/iw2rmb/ncq/prompt"
)

// Name prefixes the prompt and diagnostic messages.
const Name = "NCQ"

// ReadFunc edits one input. It returns prompt.ErrCancelled when the input
// was interrupted and io.EOF when the user asked to leave.
type ReadFunc func(ctx context.Context, cfg editor.Config) (string, error)

// Config wires a REPL.
type Config struct {
	Catalog   *catalog.Index
	Installer Installer
	// Read defaults to an interactive prompt.Read on stdin.
	Read ReadFunc
	// Editor is the base editor configuration for every prompt. Prompt,
	// Text, Choices and History are filled in per input.
	Editor editor.Config
	// History may be nil.
	History *History
	// Installed lists the packages already installed in the project.
	Installed []string
	// Dir is the project directory editor() writes index.js to. Defaults
	// to the working directory.
	Dir string
	// Edit defaults to ExternalEditor.
	Edit EditFunc
	// Interrupt scopes one evaluation: the returned context is cancelled
	// when the user interrupts it and the loop carries on with the next
	// input. Defaults to catching SIGINT while the evaluation runs.
	Interrupt func(ctx context.Context) (context.Context, context.CancelFunc)

	Out io.Writer
	Err io.Writer
	Log *slog.Logger
}

// REPL runs the loop. It is not safe for concurrent use.
type REPL struct {
	cat       *catalog.Index
	installer Installer
	read      ReadFunc
	base      editor.Config
	hist      *History
	choices   []editor.Choice
	width     int
	dir       string
	edit      EditFunc
	interrupt func(ctx context.Context) (context.Context, context.CancelFunc)

	out io.Writer
	err io.Writer
	log *slog.Logger

	vm  *goja.Runtime
	ctx context.Context

	installed []string
	pending   []string
	last      string
	done      bool

	// session holds the JavaScript inputs evaluated in the current context.
	session []string
	reload  string
}

// New builds a REPL. A nil catalog is an error; the remaining fields have
// defaults.
func New(cfg Config) (*REPL, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("repl: catalog is required")
	}
	r := &REPL{
		cat:       cfg.Catalog,
		installer: cfg.Installer,
		read:      cfg.Read,
		base:      cfg.Editor,
		hist:      cfg.History,
		choices:   cfg.Catalog.Choices(),
		width:     cfg.Editor.Width,
		dir:       cfg.Dir,
		edit:      cfg.Edit,
		interrupt: cfg.Interrupt,
		out:       cfg.Out,
		err:       cfg.Err,
		log:       cfg.Log,
		installed: append([]string(nil), cfg.Installed...),
		ctx:       context.Background(),
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.err == nil {
		r.err = os.Stderr
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}
	if r.installer == nil {
		r.installer = NPM{Stdout: r.out, Stderr: r.err}
	}
	if r.read == nil {
		r.read = func(ctx context.Context, cfg editor.Config) (string, error) {
			return prompt.Read(ctx, cfg)
		}
	}
	if r.hist == nil {
		r.hist = newMemoryHistory()
	}
	if r.dir == "" {
		r.dir = "."
	}
	if r.edit == nil {
		r.edit = ExternalEditor
	}
	if r.interrupt == nil {
		r.interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		}
	}
	r.vm = r.newRuntime()
	return r, nil
}

// Installed returns the packages shown in the prompt.
func (r *REPL) Installed() []string {
	return append([]string(nil), r.installed...)
}

// Done reports whether exit() was called.
func (r *REPL) Done() bool { return r.done }

// Prompt returns the prompt line, e.g. "NCQ [lodash axios] › ".
func (r *REPL) Prompt() string {
	return fmt.Sprintf("%s [%s] › ", Name, strings.Join(r.installed, " "))
}

// Run reads and evaluates inputs until exit(), end of input or ctx is done.
// An empty input repeats the previous one; an interrupted input is dropped.
// Interrupting an evaluation only stops that evaluation.
func (r *REPL) Run(ctx context.Context) error {
	for !r.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.read(ctx, r.editorConfig())
		switch {
		case errors.Is(err, prompt.ErrCancelled):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("repl: read: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			if r.last == "" {
				continue
			}
			line = r.last
		} else {
			r.last = line
			if err := r.hist.Add(line); err != nil {
				r.log.Warn("history not saved", "error", err)
			}
		}
		r.Exec(ctx, line)
	}
	return nil
}

// Exec evaluates one input. Bare command names such as "help" run the
// command; everything else is JavaScript.
func (r *REPL) Exec(ctx context.Context, line string) {
	src := strings.TrimSpace(line)
	if src == "" {
		return
	}
	r.log.Debug("exec", "input", src)

	ctx, stop := r.interrupt(ctx)
	defer stop()
	r.ctx = ctx
	defer func() { r.ctx = context.Background() }()

	if c, ok := lookupCommand(strings.TrimSuffix(src, ";")); ok && c.bare {
		r.eval(ctx, c.name+"()")
	} else if r.eval(ctx, src) && !isCommandCall(src) {
		r.session = append(r.session, src)
	}

	if path := r.reload; path != "" {
		r.reload = ""
		r.load(ctx, path)
	}
}

// editorConfig is the configuration for the next prompt. A queued sample
// pre-fills the buffer.
func (r *REPL) editorConfig() editor.Config {
	cfg := r.base
	cfg.Prompt = r.Prompt()
	cfg.Choices = r.choices
	cfg.History = r.hist.Entries()
	cfg.Text = ""
	if len(r.pending) > 0 {
		cfg.Text = r.pending[0]
		r.pending = r.pending[1:]
	}
	return cfg
}

func (r *REPL) report(err error) {
	if err != nil {
		r.eprintln(Name + ": " + err.Error())
	}
}

func (r *REPL) println(s string) { fmt.Fprintln(r.out, s) }

func (r *REPL) eprintln(s string) { fmt.Fprintln(r.err, s) }

// LineReader reads inputs one line at a time from rd, for scripted use when
// stdin is not a terminal. The editor configuration is ignored.
func LineReader(rd io.Reader) ReadFunc {
	sc := bufio.NewScanner(rd)
	return func(ctx context.Context, _ editor.Config) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}
}
