package repl

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iw2rmb/ncq"
)

// pageSize is the number of packages listed per packages() call.
const pageSize = 25

type command struct {
	name    string
	usage   string
	summary string
	help    string
	// bare commands may be typed without parentheses.
	bare bool
}

var commands = []command{
	{
		name:    "samples",
		usage:   "samples(String task)",
		summary: "search for samples using a task",
		help:    "Searches samples by task. The next prompts are pre-filled with them, one per prompt.",
	},
	{
		name:    "packages",
		usage:   "packages(String task, int index?)",
		summary: "search for packages using a task, optional index to navigate results",
		help:    "Lists packages for a task, 25 at a time, best match first. Pass an index to see more.",
	},
	{
		name:    "packageSamples",
		usage:   "packageSamples(String package)",
		summary: "search for samples for a package",
		help:    "Pre-fills the next prompts with the samples recorded for a package.",
	},
	{
		name:    "install",
		usage:   "install(String packages)",
		summary: "install given packages",
		help:    "Installs the given space-separated packages with npm and adds them to the prompt.",
	},
	{
		name:    "uninstall",
		usage:   "uninstall(String packages)",
		summary: "uninstall given packages",
		help:    "Uninstalls the given space-separated packages with npm and removes them from the prompt.",
	},
	{
		name:    "editor",
		usage:   "editor()",
		summary: "edit the session in an external editor",
		help:    "Writes the inputs evaluated so far to index.js and opens it in $VISUAL or $EDITOR. On exit the context is reset and the file runs in it.",
		bare:    true,
	},
	{
		name:    "version",
		usage:   "version()",
		summary: "print the version",
		help:    "Prints the version.",
		bare:    true,
	},
	{
		name:    "help",
		usage:   "help(String topic?)",
		summary: "list commands or describe one",
		help:    `List available commands with "help()" or detailed help with "help(<cmd>)".`,
		bare:    true,
	},
	{
		name:    "exit",
		usage:   "exit()",
		summary: "exit ncq",
		help:    "Exits the application. Shorthand: Ctrl-D.",
		bare:    true,
	},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

var hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

func (r *REPL) help(topic string) {
	topic = strings.TrimSpace(topic)
	if topic != "" {
		c, ok := lookupCommand(strings.TrimSuffix(topic, "()"))
		if !ok {
			r.println("*** No help on " + topic)
			return
		}
		r.println(c.help)
		return
	}

	r.println("")
	r.println("Documented commands (type help(<topic>)):")
	r.println(strings.Repeat("=", 40))
	width := 0
	for _, c := range commands {
		width = max(width, len(c.usage))
	}
	for _, c := range commands {
		r.println(fmt.Sprintf("%-*s   %s", width, c.usage, c.summary))
	}
	r.println("")
}

func (r *REPL) version() {
	r.println(fmt.Sprintf("Node Query Library (NQL) version %s", ncq.Version()))
}

func (r *REPL) exit() {
	r.done = true
}

func (r *REPL) samples(task string) error {
	snippets, err := r.cat.SnippetsByTask(task)
	if err != nil {
		return err
	}
	if len(snippets) == 0 {
		r.println("could not find any samples for this task")
		return nil
	}
	r.queueSamples(snippets)
	return nil
}

func (r *REPL) packageSamples(pkg string) {
	snippets := r.cat.SnippetsByPackage(pkg)
	if len(snippets) == 0 {
		r.eprintln(Name + ": could not find any samples for this package")
		return
	}
	r.queueSamples(snippets)
}

func (r *REPL) queueSamples(snippets []string) {
	r.pending = snippets
	r.log.Info("samples queued", "count", len(snippets))
	r.println(fmt.Sprintf("%d samples found. The next prompts are pre-filled with them.", len(snippets)))
}

func (r *REPL) packages(task string, index int) error {
	all, err := r.cat.PackagesByTask(task)
	if err != nil {
		return err
	}
	index = max(index, 0)
	start := min(index, len(all))
	end := min(index+pageSize, len(all))

	rows := make([][]string, 0, end-start)
	for i, p := range all[start:end] {
		rows = append(rows, []string{strconv.Itoa(start + i), p.Name, p.Description})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("index", "name", "description").
		Rows(rows...)
	if r.width > 0 {
		t = t.Width(r.width)
	}
	r.println(t.Render())

	if rest := len(all) - end; rest > 0 {
		hint := fmt.Sprintf("Hint: Use packages(%q, %d) to see more.", task, index+pageSize)
		r.println(fmt.Sprintf("...and %d more packages. %s", rest, hintStyle.Render(hint)))
	}
	return nil
}

func (r *REPL) install(ctx context.Context, pkgs []string) {
	if len(pkgs) == 0 {
		r.eprintln(Name + ": no packages given")
		return
	}
	if err := r.installer.Install(ctx, pkgs); err != nil {
		r.log.Warn("install failed", "packages", pkgs, "error", err)
		r.println(fmt.Sprintf("Install failed with code %d", exitCode(err)))
		return
	}
	r.log.Info("installed", "packages", pkgs)
	for _, p := range pkgs {
		if !slices.Contains(r.installed, p) {
			r.installed = append(r.installed, p)
		}
	}
}

func (r *REPL) uninstall(ctx context.Context, pkgs []string) {
	if len(pkgs) == 0 {
		r.eprintln(Name + ": no packages given")
		return
	}
	if err := r.installer.Uninstall(ctx, pkgs); err != nil {
		r.log.Warn("uninstall failed", "packages", pkgs, "error", err)
		r.println(fmt.Sprintf("Uninstall failed with code %d", exitCode(err)))
		return
	}
	r.log.Info("uninstalled", "packages", pkgs)
	kept := r.installed[:0]
	for _, p := range r.installed {
		if !slices.Contains(pkgs, p) {
			kept = append(kept, p)
		}
	}
	r.installed = kept
}

// packageNames splits command arguments into package names. Each argument
// may hold several space-separated names.
func packageNames(args []string) []string {
	var out []string
	for _, a := range args {
		out = append(out, strings.Fields(a)...)
	}
	return out
}
