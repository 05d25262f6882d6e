package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/mdpdf"
	bt "github.com/fwojciec/mdpdf/bubbletea"
	"github.com/fwojciec/mdpdf/json"
	"github.com/fwojciec/mdpdf/preview"
	"github.com/fwojciec/mdpdf/yaml"
	flag "github.com/spf13/pflag"
)

// tuiFlags holds the flags of the editor.
type tuiFlags struct {
	common      commonFlags
	draft       string
	outDir      string
	previewFile string
	logFile     string
	dark        bool
	isolate     bool
	embedFonts  bool
}

func runTUI(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("mdpdf", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintln(e.stderr, usage)
		fmt.Fprintln(e.stderr, "\neditor flags:")
		fs.PrintDefaults()
	}
	var f tuiFlags
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.draft, "draft", "", "draft file restored on start and saved on exit (default "+defaultDraftPath()+")")
	fs.StringVarP(&f.outDir, "out-dir", "o", "", "directory for generated PDFs (default .)")
	fs.StringVar(&f.previewFile, "preview-file", "", "HTML file the preview is written to (default "+defaultPreviewPath()+")")
	fs.StringVar(&f.logFile, "log-file", "", "write logs to this file")
	fs.BoolVar(&f.dark, "dark", false, "start in dark mode")
	fs.BoolVar(&f.isolate, "isolate", false, "block scripts in the preview document")
	fs.BoolVar(&f.embedFonts, "embed-fonts", false, "add @font-face rules for servers that do not embed fonts")
	if done, err := parseFlags(fs, args); done || err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	s, err := loadSettings(f.common, e)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(f.logFile, f.common.verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	defaults := s.cfg.Apply(mdpdf.DefaultOptions())
	draftPath := firstNonEmpty(f.draft, yaml.ExpandHome(s.cfg.Draft), defaultDraftPath())
	draft, err := json.LoadOrDefault(draftPath, mdpdf.Draft{Options: defaults, Dark: s.cfg.Dark})
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	store := mdpdf.NewStore(defaults)
	store.Restore(draft.Options)

	saveDraft := func(d mdpdf.Draft) error { return json.Save(draftPath, d) }
	m := bt.New(bt.Config{
		Service:   s.client(logger),
		Store:     store,
		Surface:   preview.NewFileSurface(firstNonEmpty(f.previewFile, yaml.ExpandHome(s.cfg.PreviewFile), defaultPreviewPath())),
		Renderer:  renderer(s, defaults, f.isolate, f.embedFonts),
		Logger:    logger,
		OutDir:    firstNonEmpty(f.outDir, yaml.ExpandHome(s.cfg.OutDir)),
		Document:  draft.Document,
		Dark:      draft.Dark || f.dark,
		Open:      e.open,
		SaveDraft: saveDraft,
	})

	final, err := bt.Run(ctx, m)
	if err != nil {
		return err
	}
	if err := saveDraft(final.Draft()); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// openLog returns a logger writing to path, or a discarding logger when
// path is empty. The alt screen owns the terminal, so the editor never
// logs to stderr.
func openLog(path string, verbose bool) (*slog.Logger, func(), error) {
	if path == "" {
		return newLogger(nil, slog.LevelInfo), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return newLogger(f, level), func() { _ = f.Close() }, nil
}

func defaultDraftPath() string {
	return filepath.Join(stateDir(), "draft.json")
}

func defaultPreviewPath() string {
	return filepath.Join(os.TempDir(), "mdpdf-preview.html")
}

// stateDir follows XDG_STATE_HOME, falling back to ~/.local/state/mdpdf.
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "mdpdf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "state", "mdpdf")
}
