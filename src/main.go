// Package src contains the command line interface of following. Main is the
// only thing run in the project's root main.go file.
package src

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
)

// Main is the main function of following. For all intent and purposes it is the
// main function of the program.
func Main(sqlFiles fs.FS) {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, sqlFiles, afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the exit code.
func run(
	ctx context.Context,
	sqlFiles fs.FS,
	fsys afero.Fs,
	args []string,
	stdout, stderr io.Writer,
) int {
	cmd := newRootCommand(sqlFiles, fsys, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "Error: %s\n", err)
		}
		return 1
	}

	return 0
}
