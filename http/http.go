// Package http implements [mdpdf.Service] against the markdown-to-PDF
// HTTP API.
//
// Every call is a single request: previews and PDFs are POSTed as JSON,
// fonts are fetched with GET. Non-2xx responses become [*mdpdf.Error]
// carrying the server's "detail" when present. Nothing is retried.
package http

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	generatePath = "/generate-pdf"
	previewPath  = "/generate-pdf-preview"
	fontsPath    = "/fonts"

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// DocumentField names the JSON field carrying the document text. Older
// backends call it "markup" and know nothing about the index options.
type DocumentField string

const (
	FieldMarkdown DocumentField = "markdown"
	FieldMarkup   DocumentField = "markup"
)

// apiRequest is the JSON body for the generate and preview endpoints.
// Exactly one of Markdown and Markup is set.
type apiRequest struct {
	Markdown        *string `json:"markdown,omitempty"`
	Markup          *string `json:"markup,omitempty"`
	FontFamily      string  `json:"font_family,omitempty"`
	SizeLevel       int     `json:"size_level"`
	Spacing         string  `json:"spacing"`
	AutoWidthTables bool    `json:"auto_width_tables"`
	Filename        string  `json:"filename,omitempty"`
	IncludeIndex    *bool   `json:"include_index,omitempty"`
	AddPageBreaks   *bool   `json:"add_page_breaks,omitempty"`
}
