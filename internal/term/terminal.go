package term

import "github.com/gdamore/tcell/v2"

// Terminal is the capability set the engine consumes from a terminal backend.
type Terminal interface {
	// Size returns the current dimensions in cells.
	Size() (rows, cols int)
	// WriteStyledText writes text starting at the given cell. Text running past
	// the right edge is clipped.
	WriteStyledText(row, col int, text string, style tcell.Style)
	MoveCursorTo(row, col int)
	// ClearToEndOfLine blanks the cursor row from the cursor to the right edge.
	ClearToEndOfLine()
	// PollKey returns the next pending event, or None without blocking.
	PollKey() Event
	// FlushPendingInput discards buffered keyboard and mouse input. A pending
	// resize survives the flush.
	FlushPendingInput()
	// Show commits everything written since the previous Show.
	Show()
}
