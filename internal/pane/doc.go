// Package pane provides the focusable, drawable units a layout arranges.
//
// # Capabilities
//
// A pane is assembled from small interfaces rather than a class hierarchy:
//
//   - Processable: Process(now) runs every process tick, HandleInput(ev)
//     sees routed input and returns term.None when it consumed it.
//   - Drawable: Draw is a no-op unless the pane is dirty, and clears the
//     flag afterwards.
//   - Focusable: Focus and Unfocus always mark the pane dirty, since border
//     and content styles depend on focus.
//   - Initializer (optional): Init runs once before the first frame.
//   - HotkeyHandler (optional): sees every event before focus routing, which
//     is how a menu reacts to its hot keys while unfocused.
//
// Pane is the set the layout requires. Panes never hold a reference back to
// the layout; focus changes flow from the layout down.
//
// # Geometry
//
// A pane is given its window with SetWindow. The border style decides how
// much of the window is content: BorderFull keeps (w-4, h-2), BorderNoSides
// draws only a titled top rule and keeps (w-2, h-1), BorderNone keeps the
// whole window.
//
// # Kinds
//
// List covers read-only scrollers and cursor, single-select and multi-select
// lists; the kind picks a behavior once at construction. Menu is a row of
// activatable items, Notifier a one-line transient message strip.
package pane
