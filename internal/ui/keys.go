package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the app's bindings. Printable keys belong to the search
// input, so navigation uses arrows and control keys.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	SortNext   key.Binding
	SortPrev   key.Binding
	SortName   key.Binding
	SortPrice  key.Binding
	SortRating key.Binding
	Up         key.Binding
	Down       key.Binding
	Next       key.Binding
	Prev       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Debug      key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	SortNext:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next sort")),
	SortPrev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev sort")),
	SortName:   key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "by name")),
	SortPrice:  key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "by price")),
	SortRating: key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "by rating")),
	Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "row up")),
	Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "row down")),
	Next:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next card")),
	Prev:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev card")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Debug:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "diagnostics")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SortNext, k.Down, k.Up, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortNext, k.SortPrev, k.SortName, k.SortPrice, k.SortRating},
		{k.Up, k.Down, k.Next, k.Prev, k.PageUp, k.PageDown},
		{k.Help, k.Debug, k.Quit},
	}
}
