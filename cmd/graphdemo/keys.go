package main

import "github.com/charmbracelet/bubbles/key"

// demoKeyMap is the standalone viewer's keymap, built with bubbles/key.
type demoKeyMap struct {
	Quit        key.Binding
	Diagnostics key.Binding
	Details     key.Binding
	Back        key.Binding
	YankHash    key.Binding
}

func newDemoKeyMap() demoKeyMap {
	return demoKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle diagnostics"),
		),
		Details: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view commit details"),
		),
		Back: key.NewBinding(
			key.WithKeys("v", "esc", "q"),
			key.WithHelp("v/esc", "back to graph"),
		),
		YankHash: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank commit hash"),
		),
	}
}
