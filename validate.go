package mdpdf

import (
	"fmt"
	"slices"
)

// Validate checks universal constraints on FormattingOptions. The service
// applies its own checks; these only catch values it would certainly reject.
func (o FormattingOptions) Validate() error {
	if o.SizeLevel < MinSizeLevel || o.SizeLevel > MaxSizeLevel {
		return fmt.Errorf("size_level must be in [%d, %d], got %d: %w", MinSizeLevel, MaxSizeLevel, o.SizeLevel, ErrValidation)
	}
	if _, err := ParseSpacing(string(o.Spacing)); err != nil {
		return err
	}
	if o.FontFamily != "" && len(o.AvailableFonts) > 0 && !slices.Contains(o.AvailableFonts, o.FontFamily) {
		return fmt.Errorf("unsupported font family %q: %w", o.FontFamily, ErrValidation)
	}
	return nil
}

// Validate checks that r can be sent. The only client-side content rule is
// that the document is not blank.
func (r Request) Validate() error {
	if r.Empty() {
		return ErrEmptyDocument
	}
	return r.Options.Validate()
}
