package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/automaxprocs/maxprocs"
)

const usage = `usage: mdpdf [command] [flags]

commands:
  (none)                 open the editor
  generate FILE|GLOB...  write a PDF for each markdown file
  preview FILE           write the preview HTML for a markdown file
  fonts                  list the fonts the server offers

Run "mdpdf <command> --help" for the flags of a command.`

// env is everything run needs from the process, so tests can supply
// their own.
type env struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	now    func() time.Time
	open   func(path string) error
}

func main() {
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS, in
	// which case the runtime default stands.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		now:    time.Now,
		open:   openInBrowser,
	}
	if err := run(ctx, os.Args[1:], e); err != nil {
		fmt.Fprintf(os.Stderr, "mdpdf: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, e env) error {
	if len(args) > 0 {
		switch args[0] {
		case "generate":
			return runGenerate(ctx, args[1:], e)
		case "preview":
			return runPreview(ctx, args[1:], e)
		case "fonts":
			return runFonts(ctx, args[1:], e)
		case "help":
			fmt.Fprintln(e.stdout, usage)
			return nil
		}
	}
	return runTUI(ctx, args, e)
}

// openInBrowser hands path to the system's default browser.
func openInBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	launcher.Open("file://" + filepath.ToSlash(abs))
	return nil
}

// newLogger returns a text logger writing to w at level, or a discarding
// logger when w is nil.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
