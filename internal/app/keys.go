package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard bindings for the viewer.
type KeyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Goto      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Fit       key.Binding
	Refresh   key.Binding
	Upload    key.Binding
	Control1  key.Binding
	Control2  key.Binding
	Control3  key.Binding
	StartStop key.Binding
	Help      key.Binding
	Escape    key.Binding
	Enter     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("h", "left", "pgup"),
			key.WithHelp("h/←", "previous page"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right", "pgdown"),
			key.WithHelp("l/→", "next page"),
		),
		Goto: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit to window"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload PDF"),
		),
		Control1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "eye gaze"),
		),
		Control2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "hand gesture"),
		),
		Control3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "voice"),
		),
		StartStop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/stop control"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
