// Package bubbletea provides the Bubble Tea editor for mdpdf: a markdown
// editor with a live draft view, formatting controls, a debounced filename
// field and a throttled remote preview.
package bubbletea

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdpdf"
	"github.com/fwojciec/mdpdf/preview"
	"github.com/fwojciec/mdpdf/schedule"
)

// Config holds the collaborators of a Model. Service, Store and Surface are
// required; everything else has a default.
type Config struct {
	Service mdpdf.Service
	Store   *mdpdf.Store
	Surface preview.Surface

	// Renderer turns preview HTML into surface content. Defaults to a
	// renderer that passes the server document through unchanged.
	Renderer *preview.Renderer
	// Clock drives the filename debounce and the preview throttle.
	Clock schedule.Clock
	// Logger receives preview failures and other background errors. The
	// alt screen owns stdout, so the default discards.
	Logger *slog.Logger

	// OutDir is where generated PDFs are written. Defaults to ".".
	OutDir string
	// Document is the initial editor content.
	Document string
	// Dark starts the UI in dark mode.
	Dark bool

	// Open shows a file in an external viewer. When nil, ctrl+o reports
	// that opening is unavailable.
	Open func(path string) error
	// SaveDraft persists the editor state. When nil, ctrl+s is a no-op.
	SaveDraft func(mdpdf.Draft) error
}

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits and returns the final model. Cancelling ctx quits the program.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// FontsLoadedMsg carries the font list fetched from the service.
type FontsLoadedMsg struct {
	Fonts []string
	Err   error
}

// PreviewDoneMsg carries the outcome of one remote preview call.
type PreviewDoneMsg struct {
	HTML string
	Err  error
}

// GenerateDoneMsg carries the outcome of a PDF generation. Path is the
// written file on success.
type GenerateDoneMsg struct {
	Path string
	Err  error
}

// DraftSavedMsg reports the result of saving the draft.
type DraftSavedMsg struct {
	Err error
}

// OpenedMsg reports the result of opening the preview surface.
type OpenedMsg struct {
	Path string
	Err  error
}
