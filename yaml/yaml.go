// Package yaml reads the mdpdf configuration file.
//
// The file is optional. Every key is optional and unknown keys are
// rejected, so a typo fails loudly instead of being ignored:
//
//	api_url: http://localhost:8000
//	font_url: http://localhost:3000
//	font: Roboto
//	size: 4
//	spacing: compact
//	auto_width_tables: false
//	include_index: true
//	add_page_breaks: true
//	out_dir: ~/Documents/pdf
//	preview_file: /tmp/mdpdf-preview.html
//	draft: ~/.local/state/mdpdf/draft.json
//	dark: true
//	document_field: markdown
package yaml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/mdpdf"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits configuration files to 64KiB.
const MaxInputSize = 64 << 10

var (
	// ErrInputTooLarge is returned for files over MaxInputSize.
	ErrInputTooLarge = errors.New("config exceeds maximum size")
	// ErrConfigNotFound is returned by Load when the file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)

// Config is the parsed configuration file. Zero values mean "not set".
type Config struct {
	APIURL          string `yaml:"api_url"`
	FontURL         string `yaml:"font_url"`
	Font            string `yaml:"font"`
	Size            int    `yaml:"size"`
	Spacing         string `yaml:"spacing"`
	AutoWidthTables *bool  `yaml:"auto_width_tables"`
	IncludeIndex    bool   `yaml:"include_index"`
	AddPageBreaks   bool   `yaml:"add_page_breaks"`
	Filename        string `yaml:"filename"`
	OutDir          string `yaml:"out_dir"`
	PreviewFile     string `yaml:"preview_file"`
	Draft           string `yaml:"draft"`
	Dark            bool   `yaml:"dark"`
	DocumentField   string `yaml:"document_field"`
}

// Parse decodes data strictly. Empty input yields an empty Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if len(data) > MaxInputSize {
		return cfg, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOptional is Load, except that a missing file yields an empty Config.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return Config{}, nil
	}
	return cfg, err
}

// DefaultPath returns the per-user config location,
// e.g. ~/.config/mdpdf/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mdpdf", "config.yaml")
}

// Validate checks the values that can be checked without the server.
func (c Config) Validate() error {
	if c.Size != 0 && (c.Size < mdpdf.MinSizeLevel || c.Size > mdpdf.MaxSizeLevel) {
		return fmt.Errorf("size must be in [%d, %d], got %d: %w", mdpdf.MinSizeLevel, mdpdf.MaxSizeLevel, c.Size, mdpdf.ErrValidation)
	}
	if c.Spacing != "" {
		if _, err := mdpdf.ParseSpacing(c.Spacing); err != nil {
			return err
		}
	}
	switch c.DocumentField {
	case "", "markdown", "markup":
	default:
		return fmt.Errorf("document_field must be markdown or markup, got %q: %w", c.DocumentField, mdpdf.ErrValidation)
	}
	return nil
}

// Apply overlays the options set in c onto base. The font is added to the
// available list if it is not already offered, since the real list only
// arrives from the server later.
func (c Config) Apply(base mdpdf.FormattingOptions) mdpdf.FormattingOptions {
	o := base.Clone()
	if c.Font != "" {
		o.FontFamily = c.Font
		if !slices.Contains(o.AvailableFonts, c.Font) {
			o.AvailableFonts = append(o.AvailableFonts, c.Font)
		}
	}
	if c.Size != 0 {
		o.SizeLevel = c.Size
	}
	if c.Spacing != "" {
		o.Spacing = mdpdf.Spacing(c.Spacing)
	}
	if c.AutoWidthTables != nil {
		o.AutoWidthTables = *c.AutoWidthTables
	}
	if c.IncludeIndex {
		o.IncludeIndex = true
	}
	if c.AddPageBreaks {
		o.AddPageBreaks = true
	}
	if c.Filename != "" {
		o.Filename = c.Filename
	}
	return o
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
