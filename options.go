package mdpdf

import (
	"fmt"
	"slices"
)

// Spacing controls vertical rhythm in the generated document.
type Spacing string

const (
	SpacingDefault  Spacing = "default"
	SpacingCompact  Spacing = "compact"
	SpacingSpacious Spacing = "spacious"
)

var spacings = []Spacing{SpacingDefault, SpacingCompact, SpacingSpacious}

// ParseSpacing converts a user-supplied string to a Spacing.
func ParseSpacing(s string) (Spacing, error) {
	for _, sp := range spacings {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", fmt.Errorf("spacing must be one of default, compact, spacious, got %q: %w", s, ErrValidation)
}

// Next returns the spacing that follows s in display order, wrapping around.
func (s Spacing) Next() Spacing {
	i := slices.Index(spacings, s)
	return spacings[(i+1)%len(spacings)]
}

// Prev returns the spacing before s in display order, wrapping around.
func (s Spacing) Prev() Spacing {
	i := slices.Index(spacings, s)
	if i <= 0 {
		return spacings[len(spacings)-1]
	}
	return spacings[i-1]
}

// Size level bounds. Levels map to X-Small through X-Large.
const (
	MinSizeLevel     = 1
	MaxSizeLevel     = 5
	DefaultSizeLevel = 3
)

// ClampSizeLevel forces n into [MinSizeLevel, MaxSizeLevel].
func ClampSizeLevel(n int) int {
	return max(MinSizeLevel, min(n, MaxSizeLevel))
}

// SizeLevelName returns the display name for a size level. Unknown levels
// read as "Medium".
func SizeLevelName(level int) string {
	switch level {
	case 1:
		return "X-Small"
	case 2:
		return "Small"
	case 4:
		return "Large"
	case 5:
		return "X-Large"
	default:
		return "Medium"
	}
}

// FormattingOptions holds the typography and layout selections sent with
// every preview and generate request.
type FormattingOptions struct {
	FontFamily      string
	AvailableFonts  []string // server order is display order
	SizeLevel       int
	Spacing         Spacing
	AutoWidthTables bool
	IncludeIndex    bool
	AddPageBreaks   bool // only meaningful with IncludeIndex
	Filename        string
}

// DefaultOptions returns the options a fresh editor starts with.
func DefaultOptions() FormattingOptions {
	return FormattingOptions{
		FontFamily:      "Inter",
		AvailableFonts:  []string{"Inter", "Roboto", "Source Code Pro"},
		SizeLevel:       DefaultSizeLevel,
		Spacing:         SpacingDefault,
		AutoWidthTables: true,
	}
}

// Clone returns a deep copy of o.
func (o FormattingOptions) Clone() FormattingOptions {
	o.AvailableFonts = slices.Clone(o.AvailableFonts)
	return o
}

// PageBreaks reports whether page breaks take effect. They are inert
// unless the index is included.
func (o FormattingOptions) PageBreaks() bool {
	return o.IncludeIndex && o.AddPageBreaks
}

// NextFont returns the font after the current one in AvailableFonts,
// wrapping around. An unknown current font yields the first entry.
func (o FormattingOptions) NextFont() string {
	if len(o.AvailableFonts) == 0 {
		return o.FontFamily
	}
	i := slices.Index(o.AvailableFonts, o.FontFamily)
	return o.AvailableFonts[(i+1)%len(o.AvailableFonts)]
}

// PrevFont returns the font before the current one in AvailableFonts,
// wrapping around. An unknown current font yields the last entry.
func (o FormattingOptions) PrevFont() string {
	if len(o.AvailableFonts) == 0 {
		return o.FontFamily
	}
	i := slices.Index(o.AvailableFonts, o.FontFamily)
	if i <= 0 {
		return o.AvailableFonts[len(o.AvailableFonts)-1]
	}
	return o.AvailableFonts[i-1]
}
