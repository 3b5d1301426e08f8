// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the application key bindings.
type keyMap struct {
	Quit     key.Binding
	Logout   key.Binding
	Back     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	TabLeft  key.Binding
	TabRight key.Binding
	Refresh  key.Binding
	Delete   key.Binding
	Edit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "sign out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		TabLeft: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "prev tab"),
		),
		TabRight: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next tab"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
	}
}
