package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdpdf"
)

// PendingPreview returns the snapshot waiting for the preview window.
func PendingPreview(m Model) (mdpdf.Request, bool) {
	return m.previews.Value()
}

// FilenamePending reports whether a filename edit is waiting to settle.
func FilenamePending(m Model) bool {
	return m.filename.pending.Pending()
}

// OptionRow returns the options panel cursor.
func OptionRow(m Model) int {
	return int(m.row)
}

// NoticeStyle returns the style the status line is drawn with.
func NoticeStyle(m Model) lipgloss.Style {
	return m.noticeStyle()
}
