package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the root bindings. Dropdown keys are matched by the
// dropdown itself.
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	ClearAll  key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("→/tab", "next filter"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("←/shift+tab", "prev filter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear filters"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// dropdownKeyMap holds the bindings active while a dropdown is open.
type dropdownKeyMap struct {
	SwitchFocus key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	ClearAll    key.Binding
	Apply       key.Binding
	Clear       key.Binding
	Cancel      key.Binding
}

func defaultDropdownKeyMap() dropdownKeyMap {
	return dropdownKeyMap{
		SwitchFocus: key.NewBinding(key.WithKeys("tab", "shift+tab")),
		Up:          key.NewBinding(key.WithKeys("up", "k")),
		Down:        key.NewBinding(key.WithKeys("down", "j")),
		Toggle:      key.NewBinding(key.WithKeys(" ")),
		SelectAll:   key.NewBinding(key.WithKeys("a")),
		ClearAll:    key.NewBinding(key.WithKeys("n")),
		Apply:       key.NewBinding(key.WithKeys("enter")),
		Clear:       key.NewBinding(key.WithKeys("ctrl+x")),
		Cancel:      key.NewBinding(key.WithKeys("esc")),
	}
}
