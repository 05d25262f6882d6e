package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdpdf"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Text     lipgloss.Style
	Title    lipgloss.Style
	Focused  lipgloss.Style
	Blurred  lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t mdpdf.Theme) Styles {
	return Styles{
		Text:     lipgloss.NewStyle().Foreground(ansiColor(t.Text)),
		Title:    lipgloss.NewStyle().Foreground(ansiColor(t.Heading)).Bold(true),
		Focused:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ansiColor(t.Focus)),
		Blurred:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ansiColor(t.Border)),
		Selected: lipgloss.NewStyle().Foreground(ansiColor(t.Focus)).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:  lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
