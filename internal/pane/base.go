package pane

import (
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/five82/tinywin/internal/term"
	"github.com/five82/tinywin/internal/text"
	"github.com/five82/tinywin/internal/theme"
)

// Border selects how a pane frames its window.
type Border int

const (
	BorderFull Border = iota
	BorderNoSides
	BorderNone
)

// Reduction is how many columns and rows the border takes from the window.
func (b Border) Reduction() (w, h int) {
	switch b {
	case BorderNoSides:
		return 2, 1
	case BorderNone:
		return 0, 0
	default:
		return 4, 2
	}
}

// origin is where content starts inside the window.
func (b Border) origin() (col, row int) {
	switch b {
	case BorderNoSides:
		return 1, 1
	case BorderNone:
		return 0, 0
	default:
		return 2, 1
	}
}

// Base carries the state every pane kind shares: window, focus, dirty flag and
// border drawing. Embed it and override what differs.
type Base struct {
	Title  string
	Border Border
	Styles theme.Styles
	Keys   term.KeyMap

	win     term.Region
	focused bool
	dirty   bool
}

// NewBase returns a dirty, unfocused base with plain styles and default keys.
func NewBase(title string, border Border) Base {
	return Base{
		Title:  title,
		Border: border,
		Styles: theme.Plain(),
		Keys:   term.DefaultKeyMap(),
		dirty:  true,
	}
}

// SetWindow assigns the window. A title that cannot fit the top border is a
// TerminalTooSmallError.
func (b *Base) SetWindow(r term.Region) error {
	if b.Border != BorderNone && b.Title != "" {
		need := uniseg.GraphemeClusterCount(b.Title) + 4
		if need > r.W {
			return &text.TerminalTooSmallError{What: b.Title, Width: r.W, Need: need}
		}
	}
	b.win = r
	b.dirty = true
	return nil
}

// HasWindow reports whether SetWindow has succeeded.
func (b *Base) HasWindow() bool { return b.win.T != nil }

// Window returns the assigned window.
func (b *Base) Window() term.Region { return b.win }

// Content is the part of the window inside the border.
func (b *Base) Content() term.Region {
	dw, dh := b.Border.Reduction()
	col, row := b.Border.origin()
	return b.win.Sub(col, row, b.win.W-dw, b.win.H-dh)
}

func (b *Base) Focus() {
	b.focused = true
	b.dirty = true
}

func (b *Base) Unfocus() {
	b.focused = false
	b.dirty = true
}

func (b *Base) Focused() bool { return b.focused }

func (b *Base) MarkDirty() { b.dirty = true }

func (b *Base) Dirty() bool { return b.dirty }

func (b *Base) clean() { b.dirty = false }

// Process does nothing by default.
func (b *Base) Process(time.Time) {}

// HandleInput passes everything on by default.
func (b *Base) HandleInput(ev term.Event) term.Event { return ev }

// Draw clears the dirty flag. Pane kinds replace it.
func (b *Base) Draw() error {
	b.clean()
	return nil
}

func (b *Base) borderStyle() tcell.Style {
	if b.focused {
		return b.Styles.BorderFocused
	}
	return b.Styles.Border
}

// DrawFrame blanks the window and draws the border with the title centered in
// the top rule.
func (b *Base) DrawFrame() {
	w := b.win
	w.Clear(b.Styles.Text)
	if b.Border == BorderNone || w.W < 2 || w.H < 1 {
		return
	}
	line := b.borderStyle()
	left, right := "┌", "┐"
	if b.Border == BorderNoSides {
		left, right = " ", " "
	}

	inner := w.W - 2
	if b.Title == "" {
		w.Put(0, 0, left+strings.Repeat("─", inner)+right, line)
	} else {
		title := " " + b.Title + " "
		tl := uniseg.GraphemeClusterCount(title)
		fillL := max(int(math.Ceil(float64(inner)/2-float64(tl)/2)), 0)
		fillR := max(inner-tl-fillL, 0)
		titleStyle := b.Styles.Muted
		if b.focused {
			titleStyle = b.Styles.Title
		}
		w.Put(0, 0, left+strings.Repeat("─", fillL), line)
		w.Put(0, 1+fillL, title, titleStyle)
		w.Put(0, 1+fillL+tl, strings.Repeat("─", fillR)+right, line)
	}

	if b.Border != BorderFull {
		return
	}
	for row := 1; row < w.H-2; row++ {
		w.Put(row, 0, "│", line)
		w.Put(row, w.W-1, "│", line)
	}
	if w.H >= 2 {
		w.Put(w.H-2, 0, "└"+strings.Repeat("─", inner)+"┘", line)
	}
}
