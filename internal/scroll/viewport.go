// Package scroll computes which rows of a list are visible in a fixed-height
// window, tracks a cursor over them and places a scrollbar thumb.
//
// A Viewport holds its rows by reference: the cursor flag it sets lives in
// each row's text.RowState and is visible to whoever owns the rows.
//
// When the rows do not fit (rowCount >= height) one column is given up for
// the scrollbar and one row is kept free at the bottom, so at most height-1
// rows are on screen. The window follows the cursor unless a forced scroll is
// pending or the viewport is in forced-only mode, where only ScrollBy moves it.
package scroll

import (
	"math"

	"github.com/five82/tinywin/internal/text"
)

// Viewport is a scroll window over a slice of lines.
type Viewport struct {
	rows       []*text.Line
	height     int
	baseWidth  int
	width      int
	cursor     int
	first      int
	delta      int
	forcedOnly bool
	needsBar   bool

	visible    []*text.Line
	thumbStart int
	thumbEnd   int
}

// New returns an empty viewport.
func New(height, width int, forcedOnly bool) *Viewport {
	v := &Viewport{forcedOnly: forcedOnly}
	v.layout(height, width)
	return v
}

// SetRows replaces the rows, moves the cursor to cursor and fits every row to
// the available width.
func (v *Viewport) SetRows(rows []*text.Line, cursor int) error {
	v.rows = rows
	return v.reset(v.height, v.baseWidth, cursor)
}

// Reset replaces rows and dimensions in one step.
func (v *Viewport) Reset(rows []*text.Line, height, width, cursor int) error {
	v.rows = rows
	return v.reset(height, width, cursor)
}

// Resize changes the window dimensions, keeping rows and cursor.
func (v *Viewport) Resize(height, width int) error {
	return v.reset(height, width, v.cursor)
}

func (v *Viewport) reset(height, width, cursor int) error {
	v.layout(height, width)
	for _, r := range v.rows {
		r.State.Cursor = false
		if err := r.ShortenToFit(v.width); err != nil {
			return err
		}
	}
	v.cursor = 0
	v.SetCursor(cursor)
	v.Recompute()
	return nil
}

func (v *Viewport) layout(height, width int) {
	v.height = max(height, 0)
	v.baseWidth = max(width, 0)
	v.width = v.baseWidth
	v.first = 0
	v.delta = 0
	v.needsBar = len(v.rows) > 0 && len(v.rows) >= v.height
	if v.needsBar {
		v.width = max(v.width-1, 0)
	}
}

// Rows returns the rows by reference.
func (v *Viewport) Rows() []*text.Line { return v.rows }

// Len is the row count.
func (v *Viewport) Len() int { return len(v.rows) }

// Height is the window height.
func (v *Viewport) Height() int { return v.height }

// Width is the usable width, already reduced for a scrollbar.
func (v *Viewport) Width() int { return v.width }

// ScrollbarNeeded reports whether the rows overflow the window.
func (v *Viewport) ScrollbarNeeded() bool { return v.needsBar }

// ForcedOnly reports whether cursor movement is ignored for scrolling.
func (v *Viewport) ForcedOnly() bool { return v.forcedOnly }

// SetForcedOnly switches between cursor-driven and forced scrolling.
func (v *Viewport) SetForcedOnly(on bool) { v.forcedOnly = on }

// Cursor is the current cursor index.
func (v *Viewport) Cursor() int { return v.cursor }

// SetCursor moves the cursor, clamped to the rows, and moves the cursor flag
// with it.
func (v *Viewport) SetCursor(index int) {
	if len(v.rows) == 0 {
		v.cursor = 0
		return
	}
	if v.cursor >= 0 && v.cursor < len(v.rows) {
		v.rows[v.cursor].State.Cursor = false
	}
	v.cursor = min(max(index, 0), len(v.rows)-1)
	v.rows[v.cursor].State.Cursor = true
}

// ScrollBy queues a forced scroll. It refuses when there is no scrollbar or
// the window already sits at the extreme delta points towards.
func (v *Viewport) ScrollBy(delta int) bool {
	if !v.needsBar {
		return false
	}
	if v.first == 0 && delta < 0 {
		return false
	}
	if v.first == v.maxFirst() && delta > 0 {
		return false
	}
	v.delta += delta
	return true
}

func (v *Viewport) maxFirst() int {
	return len(v.rows) - (v.height - 1)
}

// Recompute settles the window position, the visible rows and the thumb.
func (v *Viewport) Recompute() {
	if !v.needsBar {
		v.first = 0
		v.visible = v.rows
		v.thumbStart, v.thumbEnd = 0, 0
		return
	}

	if v.delta == 0 && !v.forcedOnly {
		lastOnScreen := v.first + v.height - 2
		switch {
		case v.cursor > lastOnScreen:
			v.first = v.cursor - v.height + 2
		case v.cursor < v.first:
			v.first = v.cursor
		}
	} else {
		v.first = min(max(v.first+v.delta, 0), v.maxFirst())
		v.delta = 0
	}
	v.first = min(max(v.first, 0), len(v.rows)-v.height+1)

	onScreen := max(v.height-1, 0)
	start := min(v.first, len(v.rows))
	v.visible = v.rows[start:min(start+onScreen, len(v.rows))]
	v.placeThumb(onScreen)
}

func (v *Viewport) placeThumb(onScreen int) {
	v.thumbStart, v.thumbEnd = 0, 0
	total := len(v.rows)
	if onScreen == 0 {
		return
	}
	size := max(onScreen*onScreen/total, 1)
	switch {
	case v.first == 0:
		v.thumbStart = 0
	case v.first+onScreen == total:
		v.thumbStart = onScreen - size
	default:
		v.thumbStart = int(math.Floor(float64(v.first+1) * (float64(onScreen) / float64(total))))
	}
	v.thumbEnd = min(v.thumbStart+size, onScreen)
}

// Visible returns the rows currently on screen.
func (v *Viewport) Visible() []*text.Line { return v.visible }

// First is the index of the top visible row. It is also the offset that maps
// a screen row back to a row index.
func (v *Viewport) First() int { return v.first }

// Thumb returns the half-open range of screen rows covered by the scrollbar
// thumb. ok is false when no scrollbar is shown.
func (v *Viewport) Thumb() (start, end int, ok bool) {
	if !v.needsBar || v.thumbEnd <= v.thumbStart {
		return 0, 0, false
	}
	return v.thumbStart, v.thumbEnd, true
}

// OnThumb reports whether screen row i is part of the thumb.
func (v *Viewport) OnThumb(i int) bool {
	start, end, ok := v.Thumb()
	return ok && i >= start && i < end
}
