package term

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// Key classifies an input event.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShiftUp
	KeyShiftDown
	KeyTab
	KeyBacktab
	KeyEnter
	KeyEscape
	KeyCtrlC
	KeyMouse
	KeyResize
)

var keyNames = map[Key]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyShiftUp:   "shift+up",
	KeyShiftDown: "shift+down",
	KeyTab:       "tab",
	KeyBacktab:   "shift+tab",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyCtrlC:     "ctrl+c",
	KeyMouse:     "mouse",
	KeyResize:    "resize",
}

// ErrMouseDecode reports an event that carries no usable mouse payload.
var ErrMouseDecode = errors.New("mouse event could not be decoded")

// Mouse is the decoded payload of a mouse event. X and Y are absolute
// terminal coordinates.
type Mouse struct {
	ID      int
	X, Y, Z int
	Buttons tcell.ButtonMask
}

// Pressed reports whether any of the three main buttons is down.
func (m Mouse) Pressed() bool {
	return m.Buttons&(tcell.Button1|tcell.Button2|tcell.Button3) != 0
}

// Event is one unit of input. The zero value is None, meaning "nothing to
// route", which is also what a handler returns after absorbing an event.
type Event struct {
	Key  Key
	Rune rune

	mouse *Mouse
}

// None is the absorbed/empty event.
var None Event

// Press builds a non-rune key event.
func Press(k Key) Event { return Event{Key: k} }

// Rune builds a printable key event.
func Rune(r rune) Event { return Event{Key: KeyRune, Rune: r} }

// Resize builds the distinguished resize event.
func Resize() Event { return Event{Key: KeyResize} }

// Click builds a mouse event carrying m.
func Click(m Mouse) Event {
	return Event{Key: KeyMouse, mouse: &m}
}

// Absorbed reports whether the event was consumed (or never existed).
func (e Event) Absorbed() bool { return e.Key == KeyNone }

// Mouse decodes the mouse payload. Any event other than a well-formed mouse
// event yields ErrMouseDecode.
func (e Event) Mouse() (Mouse, error) {
	if e.Key != KeyMouse || e.mouse == nil {
		return Mouse{}, ErrMouseDecode
	}
	return *e.mouse, nil
}

// String names the event the way Bubble Tea names keys ("up", "shift+tab",
// " " for space, the rune itself for printable keys).
func (e Event) String() string {
	if e.Key == KeyRune {
		return string(e.Rune)
	}
	return keyNames[e.Key]
}
