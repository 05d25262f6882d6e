package mdpdf

import "strings"

// Request is a snapshot of the document and its formatting options taken
// at the moment a preview or PDF is requested. Treat it as immutable.
type Request struct {
	Document string
	Options  FormattingOptions
}

// NewRequest snapshots doc and a copy of opts.
func NewRequest(doc string, opts FormattingOptions) Request {
	return Request{Document: doc, Options: opts.Clone()}
}

// Empty reports whether the document is blank after trimming whitespace.
func (r Request) Empty() bool {
	return strings.TrimSpace(r.Document) == ""
}

// SamePreview reports whether r and other would render the same preview.
// Filename changes do not affect the preview.
func (r Request) SamePreview(other Request) bool {
	a, b := r.Options, other.Options
	return r.Document == other.Document &&
		a.FontFamily == b.FontFamily &&
		a.SizeLevel == b.SizeLevel &&
		a.Spacing == b.Spacing &&
		a.AutoWidthTables == b.AutoWidthTables &&
		a.IncludeIndex == b.IncludeIndex &&
		a.PageBreaks() == b.PageBreaks()
}
