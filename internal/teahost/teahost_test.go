package teahost

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"github.com/five82/tinywin/internal/layout"
	"github.com/five82/tinywin/internal/pane"
	"github.com/five82/tinywin/internal/screen"
	"github.com/five82/tinywin/internal/term"
	"github.com/five82/tinywin/internal/text"
)

func buildFiles(t term.Terminal) (*layout.Layout, error) {
	l, err := layout.New(t, 1, 1)
	if err != nil {
		return nil, err
	}
	files := pane.NewList(pane.MultiSelect, "Files")
	if err := l.Add(files, 0, 0, 1, 1); err != nil {
		return nil, err
	}
	return l, files.SetStrings([]string{"alpha", "beta"}, tcell.StyleDefault)
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want term.Event
		ok   bool
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, term.Press(term.KeyUp), true},
		{"shift down", tea.KeyMsg{Type: tea.KeyShiftDown}, term.Press(term.KeyShiftDown), true},
		{"backtab", tea.KeyMsg{Type: tea.KeyShiftTab}, term.Press(term.KeyBacktab), true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, term.Rune(' '), true},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, term.Rune('q'), true},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}, Alt: true}, term.None, false},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")}, term.None, false},
		{"unmapped", tea.KeyMsg{Type: tea.KeyF5}, term.None, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.msg)
			if ok != tt.ok || got.String() != tt.want.String() || got.Key != tt.want.Key {
				t.Fatalf("translateKey = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTranslateMouse(t *testing.T) {
	ev, ok := translateMouse(tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !ok {
		t.Fatal("left press should translate")
	}
	m, err := ev.Mouse()
	if err != nil {
		t.Fatalf("Mouse: %v", err)
	}
	if m.X != 4 || m.Y != 7 || m.Buttons != tcell.Button1 {
		t.Fatalf("mouse = %+v, want (4,7) button1", m)
	}

	ev, ok = translateMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m, _ := ev.Mouse(); !ok || m.Buttons != tcell.WheelDown {
		t.Fatal("wheel should translate")
	}

	if _, ok := translateMouse(tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}); ok {
		t.Fatal("release should be dropped")
	}
}

func TestRenderKeepsText(t *testing.T) {
	mem := term.NewMemory(2, 10)
	mem.WriteStyledText(0, 0, "hello", tcell.StyleDefault.Bold(true))
	mem.WriteStyledText(1, 2, "世界", tcell.StyleDefault)

	lines := strings.Split(Render(mem.Cells()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "hello") {
		t.Fatalf("row 0 = %q, want it to contain hello", lines[0])
	}
	if !strings.Contains(lines[1], "世界") {
		t.Fatalf("row 1 = %q, want wide runes once each", lines[1])
	}
}

func TestLipglossColor(t *testing.T) {
	if _, ok := lipglossColor(tcell.ColorDefault); ok {
		t.Fatal("default color should map to nothing")
	}
	c, ok := lipglossColor(tcell.NewHexColor(0x1e2030))
	if !ok || string(c) != "#1e2030" {
		t.Fatalf("color = %q, %v, want #1e2030", c, ok)
	}
}

func TestModelFrames(t *testing.T) {
	m, err := New(buildFiles, screen.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Init() == nil {
		t.Fatal("Init should schedule the first frame")
	}

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	_, cmd := m.Update(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("frame should schedule the next one")
	}
	l := m.Screen().Layout()
	if win := l.Panes()[0].Window(); win.W != 40 || win.H != 10 {
		t.Fatalf("window = %dx%d, want 40x10 after resize", win.W, win.H)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	_, cmd = m.Update(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("exit should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("exit key should quit the program")
	}
	if m.Err() != nil {
		t.Fatalf("Err = %v, want nil", m.Err())
	}
}

func TestModelStopsOnError(t *testing.T) {
	m, err := New(buildFiles, screen.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 6, Height: 10})
	_, cmd := m.Update(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("failure should quit")
	}
	if !errors.Is(m.Err(), text.ErrTerminalTooSmall) {
		t.Fatalf("Err = %v, want ErrTerminalTooSmall", m.Err())
	}
}

func TestViewShowsPanes(t *testing.T) {
	m, err := New(buildFiles, screen.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Update(frameMsg(time.Now()))
	view := m.View()
	for _, want := range []string{"Files", "alpha", "beta"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
