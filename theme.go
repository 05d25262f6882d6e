package mdpdf

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. -1 means "no color".
type Theme struct {
	Dark    bool
	Text    int // Body text
	Heading int // Pane titles, markdown headings
	Focus   int // Focused pane border
	Border  int // Unfocused pane border
	Error   int // Error messages
	Success int // Success indicators
	Muted   int // Status bar, placeholders
	CodeBg  int // Inline code background
	Accent  int // Links, spinner
}

// DefaultTheme returns the light ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Text:    -1,
		Heading: 4,
		Focus:   4,
		Border:  8,
		Error:   1,
		Success: 2,
		Muted:   8,
		CodeBg:  7,
		Accent:  5,
	}
}

// DarkTheme returns the ANSI color mapping for dark terminals. Bright
// variants keep accents readable on dark backgrounds.
func DarkTheme() Theme {
	return Theme{
		Dark:    true,
		Text:    15,
		Heading: 12,
		Focus:   12,
		Border:  8,
		Error:   9,
		Success: 10,
		Muted:   7,
		CodeBg:  0,
		Accent:  13,
	}
}

// ThemeFor returns DarkTheme when dark is set, DefaultTheme otherwise.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return DefaultTheme()
}
