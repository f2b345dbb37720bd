// Package teahost runs a screen inside a Bubble Tea program. The program owns
// the terminal and pacing; the screen draws into an in-memory terminal that
// View renders with lipgloss.
package teahost

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/five82/tinywin/internal/layout"
	"github.com/five82/tinywin/internal/screen"
	"github.com/five82/tinywin/internal/term"
)

// Initial size of the memory terminal before the first WindowSizeMsg.
const (
	initialRows = 24
	initialCols = 80
)

// BuildFunc builds the layout for a terminal.
type BuildFunc func(t term.Terminal) (*layout.Layout, error)

// Model is the Bubble Tea model hosting a screen.
type Model struct {
	mem    *term.Memory
	screen *screen.Screen
	tick   time.Duration
	err    error
}

type frameMsg time.Time

// New builds the layout over a fresh memory terminal and wraps it in a
// screen that never sleeps, since Bubble Tea ticks it.
func New(build BuildFunc, opts screen.Options) (*Model, error) {
	mem := term.NewMemory(initialRows, initialCols)
	l, err := build(mem)
	if err != nil {
		return nil, err
	}
	opts.Sleep = func(time.Duration) {}
	s := screen.New(mem, opts)
	if err := s.Build(l); err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init panes: %w", err)
	}
	return &Model{mem: mem, screen: s, tick: s.ProcessPeriod()}, nil
}

// Screen returns the hosted screen.
func (m *Model) Screen() *screen.Screen { return m.screen }

// Err is the error that stopped the screen, if any.
func (m *Model) Err() error { return m.err }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameCmd(m.tick)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.mem.Resize(msg.Height, msg.Width)
		return m, nil

	case tea.KeyMsg:
		if ev, ok := translateKey(msg); ok {
			m.mem.Push(ev)
		}
		return m, nil

	case tea.MouseMsg:
		if ev, ok := translateMouse(msg); ok {
			m.mem.Push(ev)
		}
		return m, nil

	case frameMsg:
		ok, err := m.screen.Frame()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		if !ok {
			return m, tea.Quit
		}
		return m, frameCmd(m.tick)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	return Render(m.mem.Cells())
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

var teaKeys = map[tea.KeyType]term.Key{
	tea.KeyUp:        term.KeyUp,
	tea.KeyDown:      term.KeyDown,
	tea.KeyLeft:      term.KeyLeft,
	tea.KeyRight:     term.KeyRight,
	tea.KeyShiftUp:   term.KeyShiftUp,
	tea.KeyShiftDown: term.KeyShiftDown,
	tea.KeyTab:       term.KeyTab,
	tea.KeyShiftTab:  term.KeyBacktab,
	tea.KeyEnter:     term.KeyEnter,
	tea.KeyEsc:       term.KeyEscape,
	tea.KeyCtrlC:     term.KeyCtrlC,
}

func translateKey(msg tea.KeyMsg) (term.Event, bool) {
	if k, ok := teaKeys[msg.Type]; ok {
		return term.Press(k), true
	}
	switch msg.Type {
	case tea.KeySpace:
		return term.Rune(' '), true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return term.Rune(msg.Runes[0]), true
		}
	}
	return term.None, false
}

var teaButtons = map[tea.MouseButton]tcell.ButtonMask{
	tea.MouseButtonLeft:      tcell.Button1,
	tea.MouseButtonRight:     tcell.Button2,
	tea.MouseButtonMiddle:    tcell.Button3,
	tea.MouseButtonWheelUp:   tcell.WheelUp,
	tea.MouseButtonWheelDown: tcell.WheelDown,
}

// translateMouse keeps presses and wheel steps. Releases and motion carry
// nothing the panes react to.
func translateMouse(msg tea.MouseMsg) (term.Event, bool) {
	if msg.Action != tea.MouseActionPress {
		return term.None, false
	}
	buttons, ok := teaButtons[msg.Button]
	if !ok {
		return term.None, false
	}
	return term.Click(term.Mouse{X: msg.X, Y: msg.Y, Buttons: buttons}), true
}

// Render turns memory cells into styled text, one line per row, merging runs
// of equal style.
func Render(cells [][]term.Cell) string {
	var b strings.Builder
	for r, row := range cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		runStyle := tcell.StyleDefault
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipglossStyle(runStyle).Render(run.String()))
			run.Reset()
		}
		for _, c := range row {
			if c.Rune == 0 {
				continue
			}
			if c.Style != runStyle {
				flush()
				runStyle = c.Style
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return b.String()
}

func lipglossStyle(st tcell.Style) lipgloss.Style {
	fg, bg, attr := st.Decompose()
	out := lipgloss.NewStyle()
	if c, ok := lipglossColor(fg); ok {
		out = out.Foreground(c)
	}
	if c, ok := lipglossColor(bg); ok {
		out = out.Background(c)
	}
	return out.
		Bold(attr&tcell.AttrBold != 0).
		Underline(attr&tcell.AttrUnderline != 0).
		Reverse(attr&tcell.AttrReverse != 0).
		Faint(attr&tcell.AttrDim != 0).
		Italic(attr&tcell.AttrItalic != 0)
}

func lipglossColor(c tcell.Color) (lipgloss.Color, bool) {
	if c == tcell.ColorDefault {
		return "", false
	}
	hex := c.Hex()
	if hex < 0 {
		return "", false
	}
	return lipgloss.Color(fmt.Sprintf("#%06x", hex)), true
}

// Run hosts the layout built by build in a Bubble Tea program until the
// screen exits or ctx is cancelled.
func Run(ctx context.Context, build BuildFunc, opts screen.Options) error {
	m, err := New(build, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return m.Err()
		}
		return err
	}
	return m.Err()
}
