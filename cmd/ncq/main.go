// Command ncq is an interactive package-discovery REPL for Node.js
// projects. Arguments that are not flags name the packages already
// installed in the project.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/iw2rmb/ncq"
	"github.com/iw2rmb/ncq/catalog"
	"github.com/iw2rmb/ncq/internal/config"
	"github.com/iw2rmb/ncq/internal/logging"
	"github.com/iw2rmb/ncq/repl"
)

const (
	defaultCatalog  = "catalog.toml"
	defaultSnippets = "snippets"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("ncq", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the config file (default $"+config.EnvPath+" or the user config dir)")
	catalogPath := fs.String("catalog", "", "path to the package catalog")
	snippetsDir := fs.String("snippets", "", "directory holding <package>.<n>.js samples")
	historyPath := fs.String("history", "", "path to the input history file")
	logPath := fs.String("log", "", "path to the log file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(os.Stderr, "Usage: ncq [flags] [installed-package ...]")
		_, _ = fmt.Fprintln(os.Stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}
	if *showVersion {
		fmt.Printf("%s %s\n", repl.Name, ncq.VersionTag())
		return nil
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	paths := cfg.Paths
	override(&paths.Catalog, *catalogPath, defaultCatalog)
	override(&paths.Snippets, *snippetsDir, defaultSnippets)
	override(&paths.History, *historyPath, "")
	override(&paths.Log, *logPath, "")
	level := cfg.Log.Level
	override(&level, *logLevel, "")

	log, closer, err := logging.New(paths.Log, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	index := catalog.New(log)
	if err := index.Load(paths.Catalog, paths.Snippets); err != nil {
		return err
	}

	hist, err := repl.OpenHistory(paths.History, 0)
	if err != nil {
		return err
	}

	rc := repl.Config{
		Catalog:   index,
		Installer: repl.NPM{},
		Editor:    cfg.EditorConfig(),
		History:   hist,
		Installed: installedPackages(fs.Args()),
		Log:       log,
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		rc.Read = repl.LineReader(os.Stdin)
	}
	r, err := repl.New(rc)
	if err != nil {
		return err
	}

	// Ctrl-C interrupts the running input inside the REPL; only SIGTERM
	// ends the session.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	log.Info("session started", "installed", rc.Installed)
	return r.Run(ctx)
}

// override sets *dst to flagValue when given, and to def when *dst is still
// empty.
func override(dst *string, flagValue, def string) {
	if flagValue != "" {
		*dst = flagValue
	}
	if *dst == "" {
		*dst = def
	}
}

// installedPackages drops option-like arguments.
func installedPackages(args []string) []string {
	var out []string
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" && !strings.HasPrefix(a, "--") {
			out = append(out, a)
		}
	}
	return out
}
