package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Continue key.Binding
	Back     key.Binding
	Close    key.Binding
	Calendar key.Binding
	Guests   key.Binding
	Edit     key.Binding
	Pane     key.Binding
	New      key.Binding
	Refresh  key.Binding
	UpDown   key.Binding
	Remove   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Continue: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Back:     key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "change place/date")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Calendar: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "pick dates")),
		Guests:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "guests")),
		Edit:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit trip")),
		Pane:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "activities/details")),
		New:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new")),
		Refresh:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		UpDown:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
		Remove:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove")),
	}
}
