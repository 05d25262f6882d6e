package mdpdf

import "time"

// Draft is the editor state persisted between runs.
type Draft struct {
	Document  string
	Options   FormattingOptions
	Dark      bool
	UpdatedAt time.Time
}
