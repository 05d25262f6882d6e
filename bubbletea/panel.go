package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/mdpdf"
)

// optionRow identifies a line of the options panel.
type optionRow int

const (
	rowFont optionRow = iota
	rowSize
	rowSpacing
	rowAutoWidth
	rowIndex
	rowPageBreaks
	rowCount
)

func (r optionRow) label() string {
	switch r {
	case rowFont:
		return "Font"
	case rowSize:
		return "Size"
	case rowSpacing:
		return "Spacing"
	case rowAutoWidth:
		return "Auto-width tables"
	case rowIndex:
		return "Include index"
	case rowPageBreaks:
		return "Page breaks"
	default:
		return ""
	}
}

// handlePanelKey moves the row cursor or changes the selected option.
// The store notifies the model, which reschedules the preview.
func (m Model) handlePanelKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.panelKeys.Up):
		m.row = (m.row + rowCount - 1) % rowCount
	case key.Matches(msg, m.panelKeys.Down):
		m.row = (m.row + 1) % rowCount
	case key.Matches(msg, m.panelKeys.Prev):
		m.adjustOption(m.row, -1)
	case key.Matches(msg, m.panelKeys.Next), key.Matches(msg, m.panelKeys.Toggle):
		m.adjustOption(m.row, 1)
	}
	return m, nil
}

// adjustOption steps the option on row by dir (-1 or 1). Booleans toggle
// either way. Page breaks cannot be changed while the index is off.
func (m Model) adjustOption(row optionRow, dir int) {
	opts := m.store.Options()
	switch row {
	case rowFont:
		if dir < 0 {
			m.store.SetFontFamily(opts.PrevFont())
		} else {
			m.store.SetFontFamily(opts.NextFont())
		}
	case rowSize:
		m.store.SetSizeLevel(opts.SizeLevel + dir)
	case rowSpacing:
		if dir < 0 {
			m.store.SetSpacing(opts.Spacing.Prev())
		} else {
			m.store.SetSpacing(opts.Spacing.Next())
		}
	case rowAutoWidth:
		m.store.SetAutoWidthTables(!opts.AutoWidthTables)
	case rowIndex:
		m.store.SetIncludeIndex(!opts.IncludeIndex)
	case rowPageBreaks:
		if opts.IncludeIndex {
			m.store.SetAddPageBreaks(!opts.AddPageBreaks)
		}
	}
}

func (m Model) optionValue(row optionRow, opts mdpdf.FormattingOptions) string {
	switch row {
	case rowFont:
		return opts.FontFamily
	case rowSize:
		return fmt.Sprintf("%s (%d)", mdpdf.SizeLevelName(opts.SizeLevel), opts.SizeLevel)
	case rowSpacing:
		return string(opts.Spacing)
	case rowAutoWidth:
		return checkbox(opts.AutoWidthTables)
	case rowIndex:
		return checkbox(opts.IncludeIndex)
	case rowPageBreaks:
		return checkbox(opts.AddPageBreaks)
	default:
		return ""
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// renderPanel draws one line per option. The cursor row is highlighted
// while the panel has focus; page breaks are dimmed without an index.
func (m Model) renderPanel() string {
	opts := m.store.Options()
	lines := make([]string, 0, rowCount)
	for row := range rowCount {
		line := fmt.Sprintf("%-18s %s", row.label(), m.optionValue(row, opts))
		switch {
		case m.focus == FocusOptions && row == m.row:
			line = m.styles.Selected.Render("› " + line)
		case row == rowPageBreaks && !opts.IncludeIndex:
			line = m.styles.Muted.Render("  " + line)
		default:
			line = m.styles.Text.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
