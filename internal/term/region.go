package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Region is a rectangle of a Terminal. All drawing coordinates are relative
// to the region origin and clipped to its bounds.
type Region struct {
	T    Terminal
	X, Y int // absolute origin
	W, H int
}

// NewRegion builds a region over t.
func NewRegion(t Terminal, x, y, w, h int) Region {
	return Region{T: t, X: x, Y: y, W: max(w, 0), H: max(h, 0)}
}

// Sub returns a nested region, clipped to the parent.
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	return Region{T: r.T, X: r.X + x, Y: r.Y + y, W: max(w, 0), H: max(h, 0)}
}

// Put writes text at a relative position. Cells past the right edge are
// dropped.
func (r Region) Put(row, col int, text string, style tcell.Style) {
	if r.T == nil || row < 0 || row >= r.H || col >= r.W || text == "" {
		return
	}
	if col < 0 {
		text = runewidth.TruncateLeft(text, -col, "")
		col = 0
	}
	if runewidth.StringWidth(text) > r.W-col {
		text = runewidth.Truncate(text, r.W-col, "")
	}
	r.T.WriteStyledText(r.Y+row, r.X+col, text, style)
}

// Fill writes n copies of ch starting at a relative position.
func (r Region) Fill(row, col, n int, ch rune, style tcell.Style) {
	if n <= 0 {
		return
	}
	r.Put(row, col, strings.Repeat(string(ch), n), style)
}

// Clear blanks the whole region.
func (r Region) Clear(style tcell.Style) {
	for row := 0; row < r.H; row++ {
		r.Fill(row, 0, r.W, ' ', style)
	}
}

// Contains reports whether the absolute cell (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
