package mdpdf

import "context"

// Service is the remote markdown-to-PDF backend. Implementations do not
// retry; callers decide whether to surface or swallow errors.
type Service interface {
	// Preview returns the HTML document the PDF would be printed from.
	Preview(ctx context.Context, req Request) (string, error)
	// Generate returns the PDF bytes for req.
	Generate(ctx context.Context, req Request) ([]byte, error)
	// Fonts returns the font families the service accepts, in display order.
	Fonts(ctx context.Context) ([]string, error)
}
