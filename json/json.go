// Package json persists editor drafts as JSON files.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/mdpdf"
)

// envelope is the v1 wire format for a persisted draft.
type envelope struct {
	Version   int        `json:"version"`
	Document  string     `json:"document"`
	Options   optionsDTO `json:"options"`
	Dark      bool       `json:"dark"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type optionsDTO struct {
	FontFamily      string   `json:"font_family"`
	AvailableFonts  []string `json:"available_fonts,omitempty"`
	SizeLevel       int      `json:"size_level"`
	Spacing         string   `json:"spacing"`
	AutoWidthTables bool     `json:"auto_width_tables"`
	IncludeIndex    bool     `json:"include_index"`
	AddPageBreaks   bool     `json:"add_page_breaks"`
	Filename        string   `json:"filename,omitempty"`
}

// MarshalDraft serializes a Draft to JSON in v1 envelope format.
func MarshalDraft(d mdpdf.Draft) ([]byte, error) {
	o := d.Options
	env := envelope{
		Version:  1,
		Document: d.Document,
		Options: optionsDTO{
			FontFamily:      o.FontFamily,
			AvailableFonts:  o.AvailableFonts,
			SizeLevel:       o.SizeLevel,
			Spacing:         string(o.Spacing),
			AutoWidthTables: o.AutoWidthTables,
			IncludeIndex:    o.IncludeIndex,
			AddPageBreaks:   o.AddPageBreaks,
			Filename:        o.Filename,
		},
		Dark:      d.Dark,
		UpdatedAt: d.UpdatedAt,
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalDraft deserializes a Draft from JSON in v1 envelope format.
// A missing spacing reads as the default; the size level is clamped.
func UnmarshalDraft(data []byte) (mdpdf.Draft, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return mdpdf.Draft{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return mdpdf.Draft{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	spacing := mdpdf.SpacingDefault
	if env.Options.Spacing != "" {
		sp, err := mdpdf.ParseSpacing(env.Options.Spacing)
		if err != nil {
			return mdpdf.Draft{}, fmt.Errorf("options: %w", err)
		}
		spacing = sp
	}
	o := env.Options
	return mdpdf.Draft{
		Document: env.Document,
		Options: mdpdf.FormattingOptions{
			FontFamily:      o.FontFamily,
			AvailableFonts:  o.AvailableFonts,
			SizeLevel:       mdpdf.ClampSizeLevel(o.SizeLevel),
			Spacing:         spacing,
			AutoWidthTables: o.AutoWidthTables,
			IncludeIndex:    o.IncludeIndex,
			AddPageBreaks:   o.AddPageBreaks,
			Filename:        o.Filename,
		},
		Dark:      env.Dark,
		UpdatedAt: env.UpdatedAt,
	}, nil
}

// Save writes a Draft to a JSON file, creating parent directories as needed.
func Save(path string, d mdpdf.Draft) error {
	data, err := MarshalDraft(d)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Draft from a JSON file.
func Load(path string) (mdpdf.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mdpdf.Draft{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalDraft(data)
}

// LoadOrDefault reads a Draft, returning fallback when the file does not
// exist yet.
func LoadOrDefault(path string, fallback mdpdf.Draft) (mdpdf.Draft, error) {
	d, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return fallback, nil
	}
	return d, err
}
