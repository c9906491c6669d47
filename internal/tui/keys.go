package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Enter   key.Binding
	Esc     key.Binding
	Save    key.Binding
	Delete  key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("⇧tab", "previous tab")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous provider")),
	Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next provider")),
	Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit / apply")),
	Esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "save run")),
	Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete run")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload history")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down, k.Top, k.Bottom},
		{k.Left, k.Right, k.Enter, k.Esc},
		{k.Save, k.Delete, k.Reload, k.Help, k.Quit},
	}
}
