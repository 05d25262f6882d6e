package mdpdf

import "slices"

// Store owns the FormattingOptions for one editor. It is not safe for
// concurrent use; the TUI mutates it only from its update loop.
//
// Setters notify subscribers only when the value actually changes, so a
// subscriber can treat every notification as "rebuild the preview".
type Store struct {
	initial FormattingOptions
	opts    FormattingOptions

	subs   map[int]func(FormattingOptions)
	nextID int
}

// NewStore creates a Store whose current and reset value is initial.
// The size level is clamped.
func NewStore(initial FormattingOptions) *Store {
	initial = initial.Clone()
	initial.SizeLevel = ClampSizeLevel(initial.SizeLevel)
	return &Store{
		initial: initial,
		opts:    initial.Clone(),
		subs:    make(map[int]func(FormattingOptions)),
	}
}

// Options returns a copy of the current options.
func (s *Store) Options() FormattingOptions {
	return s.opts.Clone()
}

// Filename returns the current filename.
func (s *Store) Filename() string {
	return s.opts.Filename
}

// Subscribe registers fn to be called after every effective change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(FormattingOptions)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// SetFontFamily selects a font family.
func (s *Store) SetFontFamily(font string) {
	s.update(func(o *FormattingOptions) { o.FontFamily = font })
}

// SetAvailableFonts replaces the font list, keeping server order. If the
// current family is no longer offered, the first entry is selected. An
// empty list is ignored.
func (s *Store) SetAvailableFonts(fonts []string) {
	if len(fonts) == 0 {
		return
	}
	s.update(func(o *FormattingOptions) {
		o.AvailableFonts = slices.Clone(fonts)
		if !slices.Contains(fonts, o.FontFamily) {
			o.FontFamily = fonts[0]
		}
	})
}

// SetSizeLevel sets the size level, clamped to [MinSizeLevel, MaxSizeLevel].
func (s *Store) SetSizeLevel(level int) {
	s.update(func(o *FormattingOptions) { o.SizeLevel = ClampSizeLevel(level) })
}

// SetSpacing sets the spacing.
func (s *Store) SetSpacing(sp Spacing) {
	s.update(func(o *FormattingOptions) { o.Spacing = sp })
}

// SetAutoWidthTables toggles automatic table column widths.
func (s *Store) SetAutoWidthTables(on bool) {
	s.update(func(o *FormattingOptions) { o.AutoWidthTables = on })
}

// SetIncludeIndex toggles the generated index.
func (s *Store) SetIncludeIndex(on bool) {
	s.update(func(o *FormattingOptions) { o.IncludeIndex = on })
}

// SetAddPageBreaks toggles page breaks after index sections. The value is
// kept even while the index is off.
func (s *Store) SetAddPageBreaks(on bool) {
	s.update(func(o *FormattingOptions) { o.AddPageBreaks = on })
}

// SetFilename sets the base name used for generated PDFs.
func (s *Store) SetFilename(name string) {
	s.update(func(o *FormattingOptions) { o.Filename = name })
}

// Reset restores the options the store was created with. The font list
// fetched from the server is kept, since resetting cannot make fonts
// disappear from the backend.
func (s *Store) Reset() {
	fonts := s.opts.AvailableFonts
	s.update(func(o *FormattingOptions) {
		*o = s.initial.Clone()
		if len(fonts) > 0 {
			o.AvailableFonts = slices.Clone(fonts)
			if !slices.Contains(fonts, o.FontFamily) {
				o.FontFamily = fonts[0]
			}
		}
	})
}

// Restore replaces the current options without changing the reset value.
// It is used to resume a saved draft.
func (s *Store) Restore(o FormattingOptions) {
	s.update(func(cur *FormattingOptions) {
		*cur = o.Clone()
		cur.SizeLevel = ClampSizeLevel(cur.SizeLevel)
	})
}

func (s *Store) update(fn func(*FormattingOptions)) {
	next := s.opts.Clone()
	fn(&next)
	if equalOptions(s.opts, next) {
		return
	}
	s.opts = next
	for _, id := range s.subscriberIDs() {
		if sub, ok := s.subs[id]; ok {
			sub(next.Clone())
		}
	}
}

// subscriberIDs returns IDs in subscription order so notifications are
// deterministic.
func (s *Store) subscriberIDs() []int {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func equalOptions(a, b FormattingOptions) bool {
	return a.FontFamily == b.FontFamily &&
		slices.Equal(a.AvailableFonts, b.AvailableFonts) &&
		a.SizeLevel == b.SizeLevel &&
		a.Spacing == b.Spacing &&
		a.AutoWidthTables == b.AutoWidthTables &&
		a.IncludeIndex == b.IncludeIndex &&
		a.AddPageBreaks == b.AddPageBreaks &&
		a.Filename == b.Filename
}
