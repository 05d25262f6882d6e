package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/mdpdf"
	"github.com/fwojciec/mdpdf/preview"
	"github.com/fwojciec/mdpdf/yaml"
	flag "github.com/spf13/pflag"
)

// Sentinel errors for the one-shot commands.
var (
	ErrNoInput   = errors.New("no input files")
	ErrNoMatches = errors.New("pattern matches no files")
)

// parseFlags parses args into fs. It reports done when --help was shown.
func parseFlags(fs *flag.FlagSet, args []string) (done bool, err error) {
	err = fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return true, nil
	}
	return false, err
}

func verboseLogger(verbose bool, e env) *slog.Logger {
	if !verbose {
		return newLogger(nil, slog.LevelInfo)
	}
	return newLogger(e.stderr, slog.LevelDebug)
}

func runGenerate(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var (
		c      commonFlags
		f      formatFlags
		outDir string
	)
	addCommonFlags(fs, &c)
	addFormatFlags(fs, &f)
	fs.StringVarP(&outDir, "out-dir", "o", "", "output directory (default: next to each input)")
	if done, err := parseFlags(fs, args); done || err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return ErrNoInput
	}

	s, err := loadSettings(c, e)
	if err != nil {
		return err
	}
	opts, err := s.options(f)
	if err != nil {
		return err
	}
	files, err := expandInputs(fs.Args())
	if err != nil {
		return err
	}
	svc := s.client(verboseLogger(c.verbose, e))
	outDir = firstNonEmpty(outDir, yaml.ExpandHome(s.cfg.OutDir))

	// A configured name would make every output collide, so it only
	// applies to a single input.
	named := len(files) == 1 && opts.Filename != ""

	var failed int
	for _, path := range files {
		o := opts.Clone()
		if !named {
			o.Filename = stem(path)
		}
		out, err := generateFile(ctx, svc, path, o, outDir, e.now())
		if err != nil {
			fmt.Fprintf(e.stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(e.stdout, "Created %s\n", out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// generateFile renders the markdown at path and writes the PDF into dir,
// or next to the input when dir is empty. It returns the written path.
func generateFile(ctx context.Context, svc mdpdf.Service, path string, opts mdpdf.FormattingOptions, dir string, now time.Time) (string, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	req := mdpdf.NewRequest(string(doc), opts)
	if err := req.Validate(); err != nil {
		return "", err
	}
	pdf, err := svc.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	out := filepath.Join(dir, mdpdf.TimestampedFilename(opts.Filename, now))
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return out, nil
}

// expandInputs resolves each argument as a doublestar pattern. A literal
// path with no match is kept so reading it reports the real error.
// Duplicates are dropped and directories skipped.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, arg := range args {
		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, fmt.Errorf("invalid pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if hasMeta(arg) {
				return nil, fmt.Errorf("%w: %s", ErrNoMatches, arg)
			}
			matches = []string{arg}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// stem returns the file name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runPreview(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var (
		c          commonFlags
		f          formatFlags
		output     string
		open       bool
		isolate    bool
		embedFonts bool
	)
	addCommonFlags(fs, &c)
	addFormatFlags(fs, &f)
	fs.StringVarP(&output, "output", "o", "", "HTML file to write (default: <input>.html next to the input)")
	fs.BoolVar(&open, "open", false, "open the preview in the browser")
	fs.BoolVar(&isolate, "isolate", false, "block scripts in the preview document")
	fs.BoolVar(&embedFonts, "embed-fonts", false, "add @font-face rules for servers that do not embed fonts")
	if done, err := parseFlags(fs, args); done || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("preview takes exactly one file, got %d", fs.NArg())
	}
	path := fs.Arg(0)

	s, err := loadSettings(c, e)
	if err != nil {
		return err
	}
	opts, err := s.options(f)
	if err != nil {
		return err
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	req := mdpdf.NewRequest(string(doc), opts)
	if err := req.Validate(); err != nil {
		return err
	}

	html, err := s.client(verboseLogger(c.verbose, e)).Preview(ctx, req)
	if err != nil {
		return err
	}
	if output == "" {
		output = filepath.Join(filepath.Dir(path), stem(path)+".html")
	}
	surface := preview.NewFileSurface(output)
	if err := surface.Apply(renderer(s, opts, isolate, embedFonts).Render(html)); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Created %s\n", output)
	if open {
		return e.open(output)
	}
	return nil
}

func renderer(s settings, opts mdpdf.FormattingOptions, isolate, embedFonts bool) *preview.Renderer {
	var ro []preview.Option
	if embedFonts {
		ro = append(ro, preview.WithFontFaces(preview.FontFaceCSS(s.fontURL, opts.AvailableFonts)))
	}
	if isolate {
		ro = append(ro, preview.WithIsolation())
	}
	return preview.NewRenderer(ro...)
}

func runFonts(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("fonts", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var c commonFlags
	addCommonFlags(fs, &c)
	if done, err := parseFlags(fs, args); done || err != nil {
		return err
	}
	s, err := loadSettings(c, e)
	if err != nil {
		return err
	}
	fonts, err := s.client(verboseLogger(c.verbose, e)).Fonts(ctx)
	if err != nil {
		return err
	}
	for _, font := range fonts {
		fmt.Fprintln(e.stdout, font)
	}
	return nil
}
