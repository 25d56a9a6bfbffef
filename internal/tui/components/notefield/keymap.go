package notefield

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the static binding table consulted before the surface's own key
// handling. Bound keys fully intercept the surface; anything unbound falls
// through to its default processing.
type KeyMap struct {
	Activate key.Binding
	Bold     key.Binding
	Italic   key.Binding
	Link     key.Binding
	Commit   key.Binding
	Discard  key.Binding
	Continue key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "edit"),
		),
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		// ctrl+i is indistinguishable from tab in a terminal.
		Italic: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "italic"),
		),
		Link: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "link"),
		),
		Commit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Discard: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
	}
}
