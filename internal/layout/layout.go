package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rivo/uniseg"
	"pkt.systems/pslog"

	"github.com/five82/tinywin/internal/logx"
	"github.com/five82/tinywin/internal/pane"
	"github.com/five82/tinywin/internal/term"
	"github.com/five82/tinywin/internal/theme"
)

var (
	// ErrInvalidGeometry marks a pane placement or division count the grid
	// cannot hold.
	ErrInvalidGeometry = errors.New("invalid layout geometry")
	// ErrNoFocusTarget marks a focus request at a cell no focusable pane owns.
	ErrNoFocusTarget = errors.New("no focus target")
	// ErrInvalidStep marks a directional move that is not along exactly one axis.
	ErrInvalidStep = errors.New("invalid focus step")
)

const (
	empty = -1
	// wrapLimit bounds how many times a directional search may hit the grid
	// edge before giving up.
	wrapLimit = 2
)

type entry struct {
	pane       pane.Pane
	x, y, w, h int
	oneLine    bool
	focusKey   rune
	focusable  bool
}

// Option configures a Layout.
type Option func(*Layout)

// WithTitle draws a title bar on the first row and a rule on the last.
func WithTitle(title string) Option {
	return func(l *Layout) { l.title = title }
}

// WithLogger sets the logger used for geometry warnings and resize events.
func WithLogger(log pslog.Logger) Option {
	return func(l *Layout) { l.log = log }
}

// WithStyles sets the styles of the title bar.
func WithStyles(s theme.Styles) Option {
	return func(l *Layout) { l.styles = s }
}

// WithKeys sets the bindings used for tab and arrow navigation.
func WithKeys(k term.KeyMap) Option {
	return func(l *Layout) { l.keys = k }
}

// PaneOption configures a single placement.
type PaneOption func(*entry)

// OneLine gives the pane a single row regardless of its cell span height.
func OneLine() PaneOption {
	return func(e *entry) { e.oneLine = true }
}

// FocusKey focuses the pane whenever r is pressed.
func FocusKey(r rune) PaneOption {
	return func(e *entry) { e.focusKey = r }
}

// Unfocusable keeps the pane out of focus navigation.
func Unfocusable() PaneOption {
	return func(e *entry) { e.focusable = false }
}

// Layout owns the panes placed on a terminal and the occupancy grid that maps
// every terminal cell back to its pane.
type Layout struct {
	t            term.Terminal
	xDivs, yDivs int
	title        string
	log          pslog.Logger
	styles       theme.Styles
	keys         term.KeyMap

	entries []*entry
	footer  pane.Pane
	chain   *TabChain

	rows, cols   int
	w, h         int
	yOffset      int
	cellW, cellH int
	grid         [][]int
}

// New measures t and prepares an xDivs by yDivs grid over it.
func New(t term.Terminal, xDivs, yDivs int, opts ...Option) (*Layout, error) {
	if xDivs < 1 || yDivs < 1 {
		return nil, fmt.Errorf("%w: %dx%d divisions", ErrInvalidGeometry, xDivs, yDivs)
	}
	l := &Layout{
		t:      t,
		xDivs:  xDivs,
		yDivs:  yDivs,
		styles: theme.Plain(),
		keys:   term.DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = logx.Or(l.log)
	l.measure()
	return l, nil
}

// measure reads the terminal size and derives the usable area and cell size.
func (l *Layout) measure() {
	l.rows, l.cols = l.t.Size()
	l.w, l.h = l.cols, l.rows
	l.yOffset = 0
	if l.title != "" {
		l.h -= 2
		l.yOffset = 1
	}
	if l.footer != nil {
		l.h--
	}
	l.h = max(l.h, 0)
	l.cellW = l.w / l.xDivs
	l.cellH = l.h / l.yDivs

	l.grid = make([][]int, l.rows)
	for y := range l.grid {
		row := make([]int, l.cols)
		for x := range row {
			row[x] = empty
		}
		l.grid[y] = row
	}
}

// Add places p over the cell span (x, y, w, h). A span that runs past the
// right edge is an error. A span that runs past the bottom is allowed and
// only logged.
func (l *Layout) Add(p pane.Pane, x, y, w, h int, opts ...PaneOption) error {
	if x < 0 || y < 0 || w < 1 || h < 1 {
		return fmt.Errorf("%w: pane at (%d, %d) size %dx%d", ErrInvalidGeometry, x, y, w, h)
	}
	if x+w > l.xDivs {
		return fmt.Errorf("%w: pane spans to column %d of %d", ErrInvalidGeometry, x+w, l.xDivs)
	}
	if y+h > l.yDivs {
		l.log.Warn("pane overruns layout height", "pane", len(l.entries), "bottom", y+h, "divisions", l.yDivs)
	}

	e := &entry{pane: p, x: x, y: y, w: w, h: h, focusable: true}
	for _, opt := range opts {
		opt(e)
	}
	index := len(l.entries)
	if err := l.place(index, e); err != nil {
		return err
	}
	l.entries = append(l.entries, e)
	if e.focusable && l.FocusedIndex() < 0 {
		l.focus(index)
	}
	return nil
}

// AddFooter reserves the bottom row for p and shrinks the grid by one row.
func (l *Layout) AddFooter(p pane.Pane) error {
	if l.footer != nil {
		return errors.New("layout already has a footer")
	}
	l.footer = p
	return l.Resize()
}

// place computes the window of e and claims its cells in the grid.
func (l *Layout) place(index int, e *entry) error {
	yShift := 0
	if e.y > 0 {
		yShift = -1
	}
	winH := e.h*l.cellH - yShift
	if e.oneLine {
		winH = 1 - yShift
	}
	winW := e.w * l.cellW
	top := max(e.y*l.cellH+l.yOffset+yShift, 0)
	left := e.x * l.cellW

	for row := top; row < top+winH-1 && row < len(l.grid); row++ {
		for col := left; col < left+winW-1 && col < l.cols; col++ {
			l.grid[row][col] = index
		}
	}
	return e.pane.SetWindow(term.NewRegion(l.t, left, top, winW, winH))
}

// Resize re-measures the terminal, moves every pane to its new window and
// marks everything dirty. Focus stays with the pane that held it. Every pane is
// placed even when one fails; the failures are joined.
func (l *Layout) Resize() error {
	focused := l.FocusedIndex()
	l.measure()
	l.log.Debug("layout resize", "rows", l.rows, "cols", l.cols, "cell_w", l.cellW, "cell_h", l.cellH)

	blank := strings.Repeat(" ", l.cols)
	for row := 0; row < l.rows; row++ {
		l.t.WriteStyledText(row, 0, blank, l.styles.Text)
	}

	var errs []error
	for i, e := range l.entries {
		if err := l.place(i, e); err != nil {
			errs = append(errs, fmt.Errorf("pane %d: %w", i, err))
		}
		e.pane.MarkDirty()
	}
	if l.footer != nil {
		row := l.yOffset + l.h
		if err := l.footer.SetWindow(term.NewRegion(l.t, 0, row, l.w, 1)); err != nil {
			errs = append(errs, fmt.Errorf("footer: %w", err))
		}
		l.footer.MarkDirty()
	}
	if focused >= 0 {
		l.focus(focused)
	}
	return errors.Join(errs...)
}

// Panes returns every placed pane in registration order, footer last.
func (l *Layout) Panes() []pane.Pane {
	out := make([]pane.Pane, 0, len(l.entries)+1)
	for _, e := range l.entries {
		out = append(out, e.pane)
	}
	if l.footer != nil {
		out = append(out, l.footer)
	}
	return out
}

// SetStyles replaces the title bar styles. Panes keep their own.
func (l *Layout) SetStyles(s theme.Styles) { l.styles = s }

// Footer returns the footer pane or nil.
func (l *Layout) Footer() pane.Pane { return l.footer }

// CellSize returns the width and height of one grid cell.
func (l *Layout) CellSize() (w, h int) { return l.cellW, l.cellH }

// Divisions returns the grid dimensions.
func (l *Layout) Divisions() (x, y int) { return l.xDivs, l.yDivs }

// TabChain returns the installed chain, or nil.
func (l *Layout) TabChain() *TabChain { return l.chain }

// SetTabChain installs c as the tab order.
func (l *Layout) SetTabChain(c *TabChain) { l.chain = c }

// DefaultTabChain builds a chain over the focusable panes in registration
// order.
func (l *Layout) DefaultTabChain(wrap bool) *TabChain {
	var panes []pane.Focusable
	for _, e := range l.entries {
		if e.focusable {
			panes = append(panes, e.pane)
		}
	}
	return NewTabChain(wrap, panes...)
}

// PaneAt returns the index of the pane owning the absolute cell (x, y), or -1.
func (l *Layout) PaneAt(x, y int) int {
	if y < 0 || y >= len(l.grid) || x < 0 || x >= l.cols {
		return empty
	}
	return l.grid[y][x]
}

// Focused returns the focused pane or nil.
func (l *Layout) Focused() pane.Pane {
	if i := l.FocusedIndex(); i >= 0 {
		return l.entries[i].pane
	}
	return nil
}

// FocusedIndex returns the registration index of the focused pane, or -1.
func (l *Layout) FocusedIndex() int {
	for i, e := range l.entries {
		if e.pane.Focused() {
			return i
		}
	}
	return empty
}

func (l *Layout) focus(index int) {
	for i, e := range l.entries {
		if i != index && e.pane.Focused() {
			e.pane.Unfocus()
		}
	}
	if p := l.entries[index].pane; !p.Focused() {
		p.Focus()
	}
}

// FocusPane focuses p if the layout holds it.
func (l *Layout) FocusPane(p pane.Pane) bool {
	for i, e := range l.entries {
		if e.pane == p {
			l.focus(i)
			return true
		}
	}
	return false
}

// FocusAt focuses the pane owning the absolute cell (x, y).
func (l *Layout) FocusAt(x, y int) error {
	i := l.PaneAt(x, y)
	if i == empty || !l.entries[i].focusable {
		return fmt.Errorf("%w at (%d, %d)", ErrNoFocusTarget, x, y)
	}
	l.focus(i)
	return nil
}

// MoveFocus walks the grid from the focused pane's top-left cell in the
// direction (dx, dy) until it reaches a different focusable pane. Each time
// the walk is clamped at the grid edge a limiter is spent. When it runs out the
// move is abandoned and MoveFocus reports false.
func (l *Layout) MoveFocus(dx, dy int) (bool, error) {
	if (dx == 0) == (dy == 0) {
		return false, fmt.Errorf("%w: (%d, %d)", ErrInvalidStep, dx, dy)
	}
	old := l.FocusedIndex()
	if old < 0 {
		return false, ErrNoFocusTarget
	}
	if len(l.grid) == 0 || l.cols == 0 {
		return false, nil
	}
	win := l.entries[old].pane.Window()
	x := min(max(win.X, 0), l.cols-1)
	y := min(max(win.Y, 0), len(l.grid)-1)

	found := func() bool {
		i := l.grid[y][x]
		return i != empty && i != old && l.entries[i].focusable
	}
	limiter := wrapLimit
	for !found() && limiter > 0 {
		x += dx
		y += dy
		if x < 0 {
			x = 0
			limiter--
		} else if x > l.cols-1 {
			x = l.cols - 1
			limiter--
		}
		if y < 0 {
			y = 0
			limiter--
		} else if y > len(l.grid)-1 {
			y = len(l.grid) - 1
			limiter--
		}
	}
	if !found() {
		return false, nil
	}
	l.focus(l.grid[y][x])
	return true, nil
}

// HandleHotkeys gives ev to the per-pane focus keys and then to every pane
// with hot keys of its own, before any focus routing.
func (l *Layout) HandleHotkeys(ev term.Event) term.Event {
	if ev.Absorbed() {
		return ev
	}
	if ev.Key == term.KeyRune {
		for i, e := range l.entries {
			if e.focusable && e.focusKey != 0 && e.focusKey == ev.Rune {
				l.focus(i)
				return term.None
			}
		}
	}
	for _, p := range l.Panes() {
		h, ok := p.(pane.HotkeyHandler)
		if !ok {
			continue
		}
		if ev = h.HandleHotkey(ev); ev.Absorbed() {
			return ev
		}
	}
	return ev
}

// HandleInput routes ev to the focused pane, then the tab chain, then mouse
// focus, then arrow navigation. Arrows that reach the layout are always
// absorbed.
func (l *Layout) HandleInput(ev term.Event) term.Event {
	if ev.Absorbed() {
		return ev
	}
	if p := l.Focused(); p != nil {
		if ev = p.HandleInput(ev); ev.Absorbed() {
			return ev
		}
	}

	if l.chain != nil {
		switch {
		case key.Matches(ev, l.keys.Tab):
			if l.chain.Forward() {
				return term.None
			}
		case key.Matches(ev, l.keys.ShiftTab):
			if l.chain.Back() {
				return term.None
			}
		}
	}

	switch {
	case ev.Key == term.KeyMouse:
		return l.mouse(ev)
	case key.Matches(ev, l.keys.Up):
		l.move(0, -1)
	case key.Matches(ev, l.keys.Down):
		l.move(0, 1)
	case key.Matches(ev, l.keys.Left):
		l.move(-1, 0)
	case key.Matches(ev, l.keys.Right):
		l.move(1, 0)
	default:
		return ev
	}
	return term.None
}

func (l *Layout) move(dx, dy int) {
	if _, err := l.MoveFocus(dx, dy); err != nil {
		l.log.Debug("focus move ignored", "dx", dx, "dy", dy, "err", err)
	}
}

// mouse focuses the pane under a button press and forwards the event to it.
func (l *Layout) mouse(ev term.Event) term.Event {
	m, err := ev.Mouse()
	if err != nil {
		l.log.Debug("mouse event dropped", "err", err)
		return term.None
	}
	if !m.Pressed() {
		return ev
	}
	i := l.PaneAt(m.X, m.Y)
	if i == empty || !l.entries[i].focusable || l.entries[i].pane.Focused() {
		return ev
	}
	l.focus(i)
	return l.entries[i].pane.HandleInput(ev)
}

// Draw renders the title bar, if any.
func (l *Layout) Draw() {
	if l.title == "" || l.cols < 2 {
		return
	}
	inner := l.cols - 2
	title := " " + l.title + " "
	tl := uniseg.GraphemeClusterCount(title)
	fillL := max(int(math.Ceil(float64(inner)/2-float64(tl)/2)), 0)
	fillR := max(int(math.Floor(float64(inner)/2-float64(tl)/2)), 0)

	r := term.NewRegion(l.t, 0, 0, l.cols, l.rows)
	r.Put(0, 1, strings.Repeat("─", fillL), l.styles.Border)
	r.Put(0, 1+fillL, title, l.styles.Title)
	r.Put(0, 1+fillL+tl, strings.Repeat("─", fillR), l.styles.Border)
	if l.rows > 1 {
		r.Put(l.rows-1, 1, strings.Repeat("─", inner), l.styles.Border)
	}
}
