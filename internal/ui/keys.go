package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the task browser.
type keyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Actions
	Done       key.Binding
	Importance key.Binding
	Purge      key.Binding
	Reload     key.Binding

	// Filters
	Pending  key.Binding
	DoneOnly key.Binding
	AllTasks key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Done: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "mark done"),
		),
		Importance: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "cycle importance"),
		),
		Purge: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "remove done tasks"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "reload file"),
		),
		Pending: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "pending only"),
		),
		DoneOnly: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "done only"),
		),
		AllTasks: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Importance, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Done, k.Importance, k.Purge, k.Reload},
		{k.Pending, k.DoneOnly, k.AllTasks},
		{k.Help, k.Quit},
	}
}
