package bubbletea

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings. They take precedence over the focused
// pane, so they shadow the editor's emacs-style ctrl bindings.
type keyMap struct {
	Quit      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Generate  key.Binding
	Font      key.Binding
	SizeUp    key.Binding
	SizeDown  key.Binding
	Reset     key.Binding
	Dark      key.Binding
	Open      key.Binding
	Save      key.Binding
}

// options panel bindings, active only while the panel has focus.
type panelKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Toggle key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab")),
		Generate:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "pdf")),
		Font:      key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "font")),
		SizeUp:    key.NewBinding(key.WithKeys("ctrl+up"), key.WithHelp("ctrl+↑", "size+")),
		SizeDown:  key.NewBinding(key.WithKeys("ctrl+down"), key.WithHelp("ctrl+↓", "size-")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Dark:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "theme")),
		Open:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	}
}

func newPanelKeyMap() panelKeyMap {
	return panelKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "-")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "+", "=")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter")),
	}
}

// help renders the short help line for the global bindings.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Generate, k.Font, k.SizeUp, k.SizeDown, k.Reset, k.Dark, k.Open, k.Save, k.NextFocus, k.Quit}
}
