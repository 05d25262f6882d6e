// Package goldmark renders the draft document to ANSI-styled terminal
// output using goldmark (with the GFM extensions) for parsing, lipgloss for
// styling and chroma for fenced code. It is a reading aid next to the
// editor, not a prediction of the PDF layout.
package goldmark

import "github.com/fwojciec/mdpdf"

// DefaultWidth is used when the caller has no width yet.
const DefaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width; code is not.
func Render(source string, width int, theme mdpdf.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return newDraft([]byte(source), theme).render(width)
}
