package ui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	up, down, toggle, quit, forceQuit key.Binding
}

func newKeymap() keymap {
	return keymap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "close"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "close"),
		),
	}
}

func (k keymap) help() []key.Binding {
	return []key.Binding{k.up, k.down, k.toggle, k.quit}
}
