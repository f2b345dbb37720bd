package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimulation(t *testing.T, cols, rows int) (tcell.SimulationScreen, *Tcell) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(cols, rows)
	for s.HasPendingEvent() {
		s.PollEvent()
	}
	return s, WrapTcell(s)
}

func TestTcellSizeAndWrite(t *testing.T) {
	s, tc := newSimulation(t, 12, 3)
	if rows, cols := tc.Size(); rows != 3 || cols != 12 {
		t.Fatalf("Size() = %d,%d, want 3,12", rows, cols)
	}
	tc.WriteStyledText(1, 10, "abc", tcell.StyleDefault.Bold(true))
	tc.Show()

	cells, w, _ := s.GetContents()
	if got := string(cells[1*w+10].Runes); got != "a" {
		t.Fatalf("cell(10,1) = %q, want a", got)
	}
	if got := string(cells[1*w+11].Runes); got != "b" {
		t.Fatalf("cell(11,1) = %q, want b", got)
	}
}

func TestTcellPollKeyTranslates(t *testing.T) {
	s, tc := newSimulation(t, 10, 3)

	s.InjectKey(tcell.KeyDown, 0, tcell.ModShift)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	s.InjectKey(tcell.KeyBacktab, 0, tcell.ModNone)

	want := []Event{Press(KeyShiftDown), Rune('q'), Press(KeyBacktab)}
	for i, w := range want {
		if got := tc.PollKey(); got != w {
			t.Fatalf("PollKey() #%d = %q, want %q", i, got, w)
		}
	}
	if got := tc.PollKey(); !got.Absorbed() {
		t.Fatalf("PollKey() on empty queue = %q, want none", got)
	}
}

func TestTcellMouseAndFlush(t *testing.T) {
	s, tc := newSimulation(t, 10, 3)

	s.InjectMouse(4, 2, tcell.Button1, tcell.ModNone)
	ev := tc.PollKey()
	m, err := ev.Mouse()
	if err != nil {
		t.Fatalf("Mouse() returned error: %v", err)
	}
	if m.X != 4 || m.Y != 2 {
		t.Fatalf("mouse at %d,%d, want 4,2", m.X, m.Y)
	}

	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)
	tc.FlushPendingInput()
	if got := tc.PollKey(); !got.Absorbed() {
		t.Fatalf("PollKey() after flush = %q, want none", got)
	}
}
