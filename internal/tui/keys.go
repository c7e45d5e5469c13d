package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Sort    key.Binding
	Reverse key.Binding
	Details key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "nav")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		None:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Reverse: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Details: key.NewBinding(key.WithKeys("i", "tab"), key.WithHelp("i", "details")),
		Delete:  key.NewBinding(key.WithKeys("backspace", "delete", "d"), key.WithHelp("⌫", "delete")),
		Confirm: key.NewBinding(key.WithKeys("enter")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// hints returns the footer bindings in display order.
func (k keyMap) hints() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.All, k.None, k.Sort, k.Reverse, k.Details, k.Delete, k.Quit}
}
