package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the explorer key bindings.
type KeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Start key.Binding
	End   key.Binding
	Write key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "seek -1"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "seek +1"),
		),
		Start: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first term"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last term"),
		),
		Write: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "write"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Write, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Start, k.End},
		{k.Write, k.Help, k.Quit},
	}
}
