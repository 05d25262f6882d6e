package main

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/fwojciec/mdpdf"
	mdhttp "github.com/fwojciec/mdpdf/http"
	"github.com/fwojciec/mdpdf/yaml"
	flag "github.com/spf13/pflag"
)

// envAPIURL names the environment variable holding the backend address.
const envAPIURL = "MDPDF_API_URL"

// commonFlags holds flags shared by every command.
type commonFlags struct {
	apiURL        string
	config        string
	documentField string
	fontURL       string
	verbose       bool
}

// formatFlags holds the formatting overrides of generate and preview.
type formatFlags struct {
	font              string
	size              int
	spacing           string
	noAutoWidthTables bool
	index             bool
	pageBreaks        bool
	name              string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.apiURL, "api-url", "", "backend address (default $"+envAPIURL+" or "+mdhttp.DefaultBaseURL+")")
	fs.StringVarP(&f.config, "config", "c", "", "config file (default "+yaml.DefaultPath()+")")
	fs.StringVar(&f.documentField, "document-field", "", "request field for the document: markdown, markup")
	fs.StringVar(&f.fontURL, "font-url", "", "base address serving /fonts/<Family> for --embed-fonts (default: the backend address)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log requests to stderr")
}

func addFormatFlags(fs *flag.FlagSet, f *formatFlags) {
	fs.StringVar(&f.font, "font", "", "font family")
	fs.IntVar(&f.size, "size", 0, fmt.Sprintf("size level (%d-%d)", mdpdf.MinSizeLevel, mdpdf.MaxSizeLevel))
	fs.StringVar(&f.spacing, "spacing", "", "spacing: compact, default, spacious")
	fs.BoolVar(&f.noAutoWidthTables, "no-auto-width-tables", false, "keep table columns at equal width")
	fs.BoolVar(&f.index, "index", false, "add a table of contents")
	fs.BoolVar(&f.pageBreaks, "page-breaks", false, "start each section on a new page (needs --index)")
	fs.StringVar(&f.name, "name", "", "base name of the output file")
}

// settings is the configuration resolved from flags, environment and the
// config file, in that order of precedence.
type settings struct {
	cfg     yaml.Config
	apiURL  string
	fontURL string
	field   mdhttp.DocumentField
}

func loadSettings(c commonFlags, e env) (settings, error) {
	var (
		cfg yaml.Config
		err error
	)
	switch {
	case c.config != "":
		cfg, err = yaml.Load(yaml.ExpandHome(c.config))
	case yaml.DefaultPath() != "":
		cfg, err = yaml.LoadOptional(yaml.DefaultPath())
	}
	if err != nil {
		return settings{}, err
	}

	field := mdhttp.DocumentField(firstNonEmpty(c.documentField, cfg.DocumentField, string(mdhttp.FieldMarkdown)))
	if field != mdhttp.FieldMarkdown && field != mdhttp.FieldMarkup {
		return settings{}, fmt.Errorf("document field must be markdown or markup, got %q: %w", field, mdpdf.ErrValidation)
	}

	apiURL := firstNonEmpty(c.apiURL, e.getenv(envAPIURL), cfg.APIURL, mdhttp.DefaultBaseURL)
	return settings{
		cfg:     cfg,
		apiURL:  apiURL,
		fontURL: firstNonEmpty(c.fontURL, cfg.FontURL, apiURL),
		field:   field,
	}, nil
}

func (s settings) client(logger *slog.Logger) *mdhttp.Client {
	return mdhttp.New(
		mdhttp.WithBaseURL(s.apiURL),
		mdhttp.WithDocumentField(s.field),
		mdhttp.WithLogger(logger),
	)
}

// options returns the config file defaults with the flag overrides applied.
func (s settings) options(f formatFlags) (mdpdf.FormattingOptions, error) {
	o := s.cfg.Apply(mdpdf.DefaultOptions())
	if f.font != "" {
		o.FontFamily = f.font
		if !slices.Contains(o.AvailableFonts, f.font) {
			o.AvailableFonts = append(o.AvailableFonts, f.font)
		}
	}
	if f.size != 0 {
		if f.size < mdpdf.MinSizeLevel || f.size > mdpdf.MaxSizeLevel {
			return o, fmt.Errorf("--size must be in [%d, %d], got %d: %w", mdpdf.MinSizeLevel, mdpdf.MaxSizeLevel, f.size, mdpdf.ErrValidation)
		}
		o.SizeLevel = f.size
	}
	if f.spacing != "" {
		sp, err := mdpdf.ParseSpacing(f.spacing)
		if err != nil {
			return o, err
		}
		o.Spacing = sp
	}
	if f.noAutoWidthTables {
		o.AutoWidthTables = false
	}
	if f.index {
		o.IncludeIndex = true
	}
	if f.pageBreaks {
		o.AddPageBreaks = true
	}
	if f.name != "" {
		o.Filename = f.name
	}
	return o, o.Validate()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
