// Package app is the composition root of the tinywin demo: a file browser
// built from the toolkit's panes.
//
// The screen is a 3x4 grid under a title bar:
//
//	┌─ Files ─┐┌──────── Preview ────────┐
//	│> 0: a   ││2025-01-02 INFO [x] ...  │
//	│  1: b   ││...                      │
//	└─────────┘└─────────────────────────┘
//	──────────────── Menu ──────────────────
//	   Refresh (r)   Theme (t)   Quit
//	⠙ 40%[━━━━      ] loading 2/5
//
// A Loader lists the directory and reads the tail of every file from an
// errgroup of bounded size into a state.Store. The file pane pulls from the
// store only in its Process phase, so workers never touch pane state.
//
// Run picks the backend from config: tcell drives the screen directly,
// bubbletea hosts it through teahost.
package app
