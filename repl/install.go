package repl

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Installer adds and removes npm packages in the working project.
type Installer interface {
	Install(ctx context.Context, pkgs []string) error
	Uninstall(ctx context.Context, pkgs []string) error
}

// NPM runs the npm CLI. Output goes to Stdout and Stderr, the process
// streams when nil.
type NPM struct {
	// Dir is the project directory; empty means the current directory.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

func (n NPM) Install(ctx context.Context, pkgs []string) error {
	args := append([]string{"install"}, pkgs...)
	return n.run(ctx, append(args, "--save", "--production", "--no-optional")...)
}

func (n NPM) Uninstall(ctx context.Context, pkgs []string) error {
	args := append([]string{"uninstall"}, pkgs...)
	return n.run(ctx, append(args, "--save", "--production")...)
}

func (n NPM) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "npm", args...)
	cmd.Dir = n.Dir
	cmd.Stdout = n.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = n.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// exitCode extracts the process exit status from err, or -1.
func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}
