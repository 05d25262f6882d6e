// Package mock provides test doubles for mdpdf interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/mdpdf"
)

// Interface compliance check.
var _ mdpdf.Service = (*Service)(nil)

// Service is a test double for mdpdf.Service.
// Set the function fields for the methods you need.
type Service struct {
	PreviewFn  func(ctx context.Context, req mdpdf.Request) (string, error)
	GenerateFn func(ctx context.Context, req mdpdf.Request) ([]byte, error)
	FontsFn    func(ctx context.Context) ([]string, error)
}

// Preview delegates to PreviewFn.
func (s *Service) Preview(ctx context.Context, req mdpdf.Request) (string, error) {
	return s.PreviewFn(ctx, req)
}

// Generate delegates to GenerateFn.
func (s *Service) Generate(ctx context.Context, req mdpdf.Request) ([]byte, error) {
	return s.GenerateFn(ctx, req)
}

// Fonts delegates to FontsFn.
func (s *Service) Fonts(ctx context.Context) ([]string, error) {
	return s.FontsFn(ctx)
}
