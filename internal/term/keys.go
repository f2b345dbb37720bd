package term

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the input classes the engine reacts to.
type KeyMap struct {
	// Cursor movement
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Focus
	Tab      key.Binding
	ShiftTab key.Binding

	// Selection
	Activate   key.Binding
	Toggle     key.Binding
	SelectAll  key.Binding
	SelectNone key.Binding

	Exit key.Binding
}

// DefaultKeyMap returns the default bindings. Exit is bound to "q".
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Move right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+up", "Up five rows"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+down", "Down five rows"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next pane"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous pane"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Activate"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle selection"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "Select all"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Select none"),
		),
		Exit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// WithExit returns a copy of k with Exit rebound to keys.
func (k KeyMap) WithExit(keys ...string) KeyMap {
	if len(keys) == 0 {
		return k
	}
	k.Exit = key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], "Quit"),
	)
	return k
}

// ShortHelp returns key bindings for a one-line help strip.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Exit}
}
