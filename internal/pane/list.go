package pane

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/gdamore/tcell/v2"

	"github.com/five82/tinywin/internal/scroll"
	"github.com/five82/tinywin/internal/term"
	"github.com/five82/tinywin/internal/text"
)

// Kind selects how a List reacts to input.
type Kind int

const (
	ReadOnly Kind = iota + 1
	CursorOnly
	SingleSelect
	MultiSelect
)

func (k Kind) String() string {
	switch k {
	case ReadOnly:
		return "read-only"
	case CursorOnly:
		return "cursor-only"
	case SingleSelect:
		return "single-select"
	case MultiSelect:
		return "multi-select"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

const (
	cursorSymbol = ">"
	scrollGlyph  = "▊"
	bigStep      = 5
)

// List is a scrollable list of lines.
type List struct {
	Base

	// OnSelect is called with the selected indices after the selection changes.
	OnSelect func(selected []int)

	kind     Kind
	behavior behavior
	rows     []*text.Line
	cursor   int
	vp       *scroll.Viewport
}

// NewList builds an empty list. An unknown kind panics.
func NewList(kind Kind, title string) *List {
	l := &List{
		Base: NewBase(title, BorderFull),
		kind: kind,
	}
	l.behavior = behaviorFor(kind)
	l.vp = scroll.New(0, 0, kind == ReadOnly)
	return l
}

// Kind reports the list kind.
func (l *List) Kind() Kind { return l.kind }

// Rows returns the rows by reference.
func (l *List) Rows() []*text.Line { return l.rows }

// Viewport exposes the scroll state.
func (l *List) Viewport() *scroll.Viewport { return l.vp }

// SetRows replaces the content, clearing cursor and selection flags. The
// cursor index is kept, clamped to the new rows.
func (l *List) SetRows(rows []*text.Line) error {
	for _, r := range rows {
		r.State.Cursor = false
		r.State.Selected = false
	}
	l.rows = rows
	l.MarkDirty()
	return l.layoutViewport()
}

// SetStrings is SetRows for plain text.
func (l *List) SetStrings(items []string, style tcell.Style) error {
	rows := make([]*text.Line, len(items))
	for i, s := range items {
		rows[i] = text.Plain(s, style)
	}
	return l.SetRows(rows)
}

// SetWindow assigns the window and refits the viewport to it.
func (l *List) SetWindow(r term.Region) error {
	if err := l.Base.SetWindow(r); err != nil {
		return err
	}
	return l.layoutViewport()
}

func (l *List) layoutViewport() error {
	if !l.HasWindow() {
		return nil
	}
	_, dh := l.Border.Reduction()
	height := l.win.H - dh
	if err := l.vp.Reset(l.rows, height, l.contentWidth(), l.cursor); err != nil {
		return err
	}
	l.cursor = l.vp.Cursor()
	return nil
}

// gutterWidth is the width of the "N:" index column plus its padding.
func (l *List) gutterWidth() int {
	return len(strconv.Itoa(len(l.rows))) + 2
}

func (l *List) contentWidth() int {
	dw, _ := l.Border.Reduction()
	w := l.win.W - dw
	if l.behavior.cursorColumn() {
		w -= len(cursorSymbol) + l.gutterWidth()
	}
	return max(w, 0)
}

// Cursor is the cursor row.
func (l *List) Cursor() int { return l.cursor }

// SetCursor moves the cursor, clamped to the rows.
func (l *List) SetCursor(i int) {
	l.vp.SetCursor(i)
	l.cursor = l.vp.Cursor()
	l.MarkDirty()
}

// Selected returns the indices of selected rows in order.
func (l *List) Selected() []int {
	var out []int
	for i, r := range l.rows {
		if r.State.Selected {
			out = append(out, i)
		}
	}
	return out
}

// SelectedIndex returns the first selected row, or -1.
func (l *List) SelectedIndex() int {
	for i, r := range l.rows {
		if r.State.Selected {
			return i
		}
	}
	return -1
}

// Select marks row i. With exclusive set every other row is cleared first,
// otherwise row i is toggled.
func (l *List) Select(i int, exclusive bool) {
	if i < 0 || i >= len(l.rows) {
		return
	}
	if exclusive {
		for _, r := range l.rows {
			r.State.Selected = false
		}
		l.rows[i].State.Selected = true
	} else {
		l.rows[i].State.Selected = !l.rows[i].State.Selected
	}
	l.selectionChanged()
}

// SelectAll sets every row's selected flag to on.
func (l *List) SelectAll(on bool) {
	for _, r := range l.rows {
		r.State.Selected = on
	}
	l.selectionChanged()
}

func (l *List) selectionChanged() {
	l.MarkDirty()
	if l.OnSelect != nil {
		l.OnSelect(l.Selected())
	}
}

// HandleInput implements the list key protocol. Movement that hits either end
// is passed on so the caller can move focus instead.
func (l *List) HandleInput(ev term.Event) term.Event {
	if !l.Focused() || ev.Absorbed() {
		return ev
	}
	switch {
	case ev.Key == term.KeyMouse:
		return l.click(ev)
	case key.Matches(ev, l.Keys.Down):
		return absorbIf(l.behavior.step(l, 1), ev)
	case key.Matches(ev, l.Keys.PageDown):
		return absorbIf(l.behavior.step(l, bigStep), ev)
	case key.Matches(ev, l.Keys.Up):
		return absorbIf(l.behavior.step(l, -1), ev)
	case key.Matches(ev, l.Keys.PageUp):
		return absorbIf(l.behavior.step(l, -bigStep), ev)
	case key.Matches(ev, l.Keys.Toggle):
		return absorbIf(l.behavior.toggle(l), ev)
	case key.Matches(ev, l.Keys.SelectAll):
		return absorbIf(l.behavior.force(l, true), ev)
	case key.Matches(ev, l.Keys.SelectNone):
		return absorbIf(l.behavior.force(l, false), ev)
	}
	return ev
}

func (l *List) click(ev term.Event) term.Event {
	m, err := ev.Mouse()
	if err != nil {
		return term.None
	}
	switch m.Buttons {
	case tcell.WheelDown:
		l.behavior.step(l, 1)
		return term.None
	case tcell.WheelUp:
		l.behavior.step(l, -1)
		return term.None
	}
	content := l.Content()
	if !content.Contains(m.X, m.Y) {
		return ev
	}
	if l.behavior.cursorColumn() {
		l.SetCursor(m.Y - content.Y + l.vp.First())
	}
	return term.None
}

func absorbIf(ok bool, ev term.Event) term.Event {
	if ok {
		return term.None
	}
	return ev
}

// Draw renders the frame, the visible rows and the scrollbar.
func (l *List) Draw() error {
	if !l.Dirty() {
		return nil
	}
	l.DrawFrame()
	l.vp.Recompute()

	content := l.Content()
	gutter := l.gutterWidth()
	index := l.vp.First()
	for i, row := range l.vp.Visible() {
		if !l.behavior.cursorColumn() {
			row.Render(content, i, 0, nil)
		} else {
			base := l.Styles.Text
			var highlight *tcell.Style
			if row.State.Selected {
				hl := l.Styles.Highlight
				highlight = &hl
				base = base.Reverse(true)
			}
			marker := " "
			if row.State.Cursor {
				marker = cursorSymbol
				base = base.Bold(l.Focused())
			}
			content.Put(i, 0, marker, base)
			content.Put(i, len(cursorSymbol), fmt.Sprintf("%-*s", gutter, strconv.Itoa(index)+":"), base)
			row.Render(content, i, len(cursorSymbol)+gutter, highlight)
		}
		if l.vp.ScrollbarNeeded() {
			style := l.Styles.Muted
			if l.vp.OnThumb(i) {
				style = l.Styles.Scrollbar
			}
			l.win.Put(content.Y-l.win.Y+i, l.win.W-2, scrollGlyph, style)
		}
		index++
	}
	l.clean()
	return nil
}

// behavior is the per-kind part of the list protocol. Each method reports
// whether the event was consumed.
type behavior interface {
	step(l *List, n int) bool
	toggle(l *List) bool
	force(l *List, on bool) bool
	cursorColumn() bool
}

func behaviorFor(kind Kind) behavior {
	switch kind {
	case ReadOnly:
		return readOnly{}
	case CursorOnly:
		return cursorOnly{}
	case SingleSelect:
		return selecting{exclusive: true}
	case MultiSelect:
		return selecting{exclusive: false}
	}
	panic(fmt.Sprintf("pane: unimplemented list kind %v", kind))
}

type readOnly struct{}

func (readOnly) step(l *List, n int) bool {
	if !l.vp.ScrollBy(n) {
		return false
	}
	l.MarkDirty()
	return true
}

func (readOnly) toggle(*List) bool      { return false }
func (readOnly) force(*List, bool) bool { return false }
func (readOnly) cursorColumn() bool     { return false }

type cursorOnly struct{}

func (cursorOnly) step(l *List, n int) bool {
	if len(l.rows) == 0 {
		return false
	}
	next := l.cursor + n
	clamped := next < 0 || next > len(l.rows)-1
	l.SetCursor(next)
	return !clamped
}

func (cursorOnly) toggle(*List) bool      { return false }
func (cursorOnly) force(*List, bool) bool { return false }
func (cursorOnly) cursorColumn() bool     { return true }

type selecting struct {
	cursorOnly
	exclusive bool
}

func (s selecting) toggle(l *List) bool {
	if len(l.rows) == 0 {
		return false
	}
	l.Select(l.cursor, s.exclusive)
	return true
}

func (selecting) force(l *List, on bool) bool {
	l.SelectAll(on)
	return true
}
