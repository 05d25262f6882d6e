package mdpdf_test

import (
	"testing"

	"github.com/fwojciec/mdpdf"
	"github.com/stretchr/testify/assert"
)

func TestNewStore(t *testing.T) {
	t.Parallel()

	initial := mdpdf.DefaultOptions()
	initial.SizeLevel = 9
	s := mdpdf.NewStore(initial)

	assert.Equal(t, 5, s.Options().SizeLevel)
}

func TestStore_Options_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := mdpdf.NewStore(mdpdf.DefaultOptions())
	opts := s.Options()
	opts.AvailableFonts[0] = "Changed"

	assert.Equal(t, "Inter", s.Options().AvailableFonts[0])
}

func TestStore_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("notifies on change", func(t *testing.T) {
		t.Parallel()

		s := mdpdf.NewStore(mdpdf.DefaultOptions())
		var got []mdpdf.FormattingOptions
		s.Subscribe(func(o mdpdf.FormattingOptions) { got = append(got, o) })

		s.SetFontFamily("Roboto")
		s.SetSpacing(mdpdf.SpacingCompact)

		assert.Len(t, got, 2)
		assert.Equal(t, "Roboto", got[1].FontFamily)
		assert.Equal(t, mdpdf.SpacingCompact, got[1].Spacing)
	})

	t.Run("no notification when value unchanged", func(t *testing.T) {
		t.Parallel()

		s := mdpdf.NewStore(mdpdf.DefaultOptions())
		calls := 0
		s.Subscribe(func(mdpdf.FormattingOptions) { calls++ })

		s.SetFontFamily("Inter")
		s.SetSizeLevel(3)
		s.SetAutoWidthTables(true)
		s.SetFilename("")

		assert.Zero(t, calls)
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		t.Parallel()

		s := mdpdf.NewStore(mdpdf.DefaultOptions())
		calls := 0
		unsubscribe := s.Subscribe(func(mdpdf.FormattingOptions) { calls++ })

		s.SetIncludeIndex(true)
		unsubscribe()
		s.SetIncludeIndex(false)

		assert.Equal(t, 1, calls)
	})

	t.Run("subscribers run in subscription order", func(t *testing.T) {
		t.Parallel()

		s := mdpdf.NewStore(mdpdf.DefaultOptions())
		var order []string
		s.Subscribe(func(mdpdf.FormattingOptions) { order = append(order, "first") })
		s.Subscribe(func(mdpdf.FormattingOptions) { order = append(order, "second") })

		s.SetFilename("report")

		assert.Equal(t, []string{"first", "second"}, order)
	})
}

func TestStore_SetSizeLevel_Clamps(t *testing.T) {
	t.Parallel()

	s := mdpdf.NewStore(mdpdf.DefaultOptions())

	s.SetSizeLevel(0)
	assert.Equal(t, 1, s.Options().SizeLevel)

	s.SetSizeLevel(42)
	assert.Equal(t, 5, s.Options().SizeLevel)
}

func TestStore_SetAvailableFonts(t *testing.T) {
	t.Parallel()

	t.Run("keeps server order", func(t *testing.T) {
		t.Parallel()

		s := mdpdf.NewStore(mdpdf.DefaultOptions())
		s.SetAvailableFonts([]string{"Roboto", "Inter", "Lora"})

		assert.Equal(t, []string{"Roboto", "Inter", "Lora"}, s.Options().AvailableFonts)
		assert.Equal(t, "Inter", s.Options().FontFamily)
	})

	t.Run("falls back to first font when current is gone", func(t *testing.T) {
		t.Parallel()

		s := mdpdf.NewStore(mdpdf.DefaultOptions())
		s.SetAvailableFonts([]string{"Lora", "Merriweather"})

		assert.Equal(t, "Lora", s.Options().FontFamily)
	})

	t.Run("empty list ignored", func(t *testing.T) {
		t.Parallel()

		s := mdpdf.NewStore(mdpdf.DefaultOptions())
		s.SetAvailableFonts(nil)

		assert.Equal(t, mdpdf.DefaultOptions().AvailableFonts, s.Options().AvailableFonts)
	})
}

func TestStore_Reset(t *testing.T) {
	t.Parallel()

	s := mdpdf.NewStore(mdpdf.DefaultOptions())
	s.SetAvailableFonts([]string{"Inter", "Lora"})
	s.SetFontFamily("Lora")
	s.SetSizeLevel(5)
	s.SetSpacing(mdpdf.SpacingSpacious)
	s.SetAutoWidthTables(false)
	s.SetIncludeIndex(true)
	s.SetAddPageBreaks(true)
	s.SetFilename("report")

	s.Reset()

	opts := s.Options()
	assert.Equal(t, "Inter", opts.FontFamily)
	assert.Equal(t, []string{"Inter", "Lora"}, opts.AvailableFonts, "fetched fonts survive reset")
	assert.Equal(t, 3, opts.SizeLevel)
	assert.Equal(t, mdpdf.SpacingDefault, opts.Spacing)
	assert.True(t, opts.AutoWidthTables)
	assert.False(t, opts.IncludeIndex)
	assert.False(t, opts.AddPageBreaks)
	assert.Empty(t, opts.Filename)
}

func TestStore_Restore(t *testing.T) {
	t.Parallel()

	s := mdpdf.NewStore(mdpdf.DefaultOptions())
	saved := mdpdf.DefaultOptions()
	saved.FontFamily = "Roboto"
	saved.SizeLevel = 7
	saved.Filename = "notes"

	var calls int
	s.Subscribe(func(mdpdf.FormattingOptions) { calls++ })
	s.Restore(saved)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "Roboto", s.Options().FontFamily)
	assert.Equal(t, mdpdf.MaxSizeLevel, s.Options().SizeLevel)
	assert.Equal(t, "notes", s.Filename())

	s.Reset()
	assert.Equal(t, mdpdf.DefaultOptions(), s.Options())
}
