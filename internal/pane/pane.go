package pane

import (
	"time"

	"github.com/five82/tinywin/internal/term"
)

// Processable panes take part in the process phase and input routing.
type Processable interface {
	Process(now time.Time)
	HandleInput(ev term.Event) term.Event
}

// Drawable panes take part in the draw phase.
type Drawable interface {
	Draw() error
	MarkDirty()
	Dirty() bool
}

// Focusable panes track focus.
type Focusable interface {
	Focus()
	Unfocus()
	Focused() bool
}

// Initializer panes need one-time setup before the first frame.
type Initializer interface {
	Init() error
}

// HotkeyHandler panes see every event before focus routing.
type HotkeyHandler interface {
	HandleHotkey(ev term.Event) term.Event
}

// Pane is what a layout can place.
type Pane interface {
	Processable
	Drawable
	Focusable
	SetWindow(r term.Region) error
	Window() term.Region
}
