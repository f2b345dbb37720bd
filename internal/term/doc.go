// Package term is the boundary between the layout engine and a character-cell
// terminal.
//
// The engine only needs a handful of capabilities from a terminal: its size,
// a way to write styled text at a position, cursor movement with clear-to-EOL,
// and a non-blocking poll for one input event. Terminal captures exactly that.
// Two implementations ship with the package:
//
//   - Tcell drives a real terminal through github.com/gdamore/tcell/v2.
//   - Memory is an in-process cell buffer used by tests and by the Bubble Tea
//     host, which renders the buffer itself.
//
// # Events
//
// Input arrives as Event values. Resize is delivered through the same poll
// channel as keys, and mouse events carry their decoded payload, retrieved with
// Event.Mouse. Event implements fmt.Stringer using Bubble Tea key names, so the
// bindings in KeyMap are matched with key.Matches from
// github.com/charmbracelet/bubbles/key.
//
// A handler that consumes an event returns None; anything else tells the caller
// to keep routing it.
//
// # Regions
//
// Region is a clipped rectangle over a Terminal. Panes draw through a Region
// using coordinates relative to their window, and anything outside the window
// is dropped rather than wrapped.
package term
