package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap avoids the viewport's scrolling keys so both can share input.
type keyMap struct {
	Add         key.Binding
	Remove      key.Binding
	Shuffle     key.Binding
	RTL         key.Binding
	Orientation key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:         key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add card")),
		Remove:      key.NewBinding(key.WithKeys("x", "-"), key.WithHelp("x", "remove card")),
		Shuffle:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		RTL:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "toggle rtl")),
		Orientation: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "toggle orientation")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.Shuffle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Remove, k.Shuffle},
		{k.RTL, k.Orientation},
		{k.Help, k.Quit},
	}
}
