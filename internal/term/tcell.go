package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tcell adapts a tcell.Screen to Terminal.
type Tcell struct {
	screen  tcell.Screen
	row     int
	col     int
	resized bool
}

// NewTcell opens the controlling terminal with mouse reporting enabled.
func NewTcell() (*Tcell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	s.EnableMouse()
	s.Clear()
	return WrapTcell(s), nil
}

// WrapTcell uses an already initialised screen, such as a simulation screen.
func WrapTcell(s tcell.Screen) *Tcell {
	return &Tcell{screen: s}
}

// Close restores the terminal.
func (t *Tcell) Close() {
	t.screen.Fini()
}

func (t *Tcell) Size() (rows, cols int) {
	cols, rows = t.screen.Size()
	return rows, cols
}

func (t *Tcell) WriteStyledText(row, col int, text string, style tcell.Style) {
	cols, rows := t.screen.Size()
	if row < 0 || row >= rows {
		return
	}
	for _, r := range text {
		if col >= cols {
			return
		}
		if col >= 0 {
			t.screen.SetContent(col, row, r, nil, style)
		}
		col += max(runewidth.RuneWidth(r), 1)
	}
}

func (t *Tcell) MoveCursorTo(row, col int) {
	t.row, t.col = row, col
}

func (t *Tcell) ClearToEndOfLine() {
	cols, _ := t.screen.Size()
	for c := max(t.col, 0); c < cols; c++ {
		t.screen.SetContent(c, t.row, ' ', nil, tcell.StyleDefault)
	}
}

func (t *Tcell) PollKey() Event {
	if t.resized {
		t.resized = false
		return Resize()
	}
	for t.screen.HasPendingEvent() {
		if ev, ok := convert(t.screen.PollEvent()); ok {
			if ev.Key == KeyResize {
				t.screen.Sync()
			}
			return ev
		}
	}
	return None
}

func (t *Tcell) FlushPendingInput() {
	for t.screen.HasPendingEvent() {
		if _, ok := t.screen.PollEvent().(*tcell.EventResize); ok {
			t.resized = true
		}
	}
}

func (t *Tcell) Show() {
	t.screen.Show()
}

// convert maps a tcell event onto an Event. Events the engine has no use for
// (releases, motion, unmapped keys) report false.
func convert(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Resize(), true
	case *tcell.EventMouse:
		if ev.Buttons() == tcell.ButtonNone {
			return None, false
		}
		x, y := ev.Position()
		return Click(Mouse{X: x, Y: y, Buttons: ev.Buttons()}), true
	case *tcell.EventKey:
		shift := ev.Modifiers()&tcell.ModShift != 0
		switch ev.Key() {
		case tcell.KeyRune:
			return Rune(ev.Rune()), true
		case tcell.KeyUp:
			if shift {
				return Press(KeyShiftUp), true
			}
			return Press(KeyUp), true
		case tcell.KeyDown:
			if shift {
				return Press(KeyShiftDown), true
			}
			return Press(KeyDown), true
		case tcell.KeyLeft:
			return Press(KeyLeft), true
		case tcell.KeyRight:
			return Press(KeyRight), true
		case tcell.KeyTab:
			return Press(KeyTab), true
		case tcell.KeyBacktab:
			return Press(KeyBacktab), true
		case tcell.KeyEnter:
			return Press(KeyEnter), true
		case tcell.KeyEscape:
			return Press(KeyEscape), true
		case tcell.KeyCtrlC:
			return Press(KeyCtrlC), true
		}
	}
	return None, false
}
