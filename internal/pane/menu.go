package pane

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rivo/uniseg"

	"github.com/five82/tinywin/internal/term"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label  string
	Action func()
	// Hotkey activates the item from anywhere; zero means none.
	Hotkey rune
	// Underline is the index of a label character to underline, or -1.
	Underline int
	Disabled  bool
}

func (m *MenuItem) text() string {
	if m.Hotkey != 0 {
		return m.Label + " (" + string(m.Hotkey) + ")"
	}
	return m.Label
}

// activate runs the action unless the item is disabled or has none.
func (m *MenuItem) activate() bool {
	if m.Action == nil || m.Disabled {
		return false
	}
	m.Action()
	return true
}

// Menu is a horizontal row of items.
type Menu struct {
	Base

	items   []*MenuItem
	current int // -1 while unfocused
	last    int
	subtle  bool
	centers []int
	row     int
}

// NewMenu builds a menu. A subtle menu draws only a titled top rule.
func NewMenu(subtle bool, items ...MenuItem) *Menu {
	border := BorderFull
	if subtle {
		border = BorderNoSides
	}
	m := &Menu{
		Base:    NewBase("Menu", border),
		current: -1,
		last:    -1,
		subtle:  subtle,
	}
	for i := range items {
		item := items[i]
		m.items = append(m.items, &item)
	}
	return m
}

// Item returns item i for inspection or to toggle Disabled.
func (m *Menu) Item(i int) *MenuItem { return m.items[i] }

// Current is the highlighted item, or -1.
func (m *Menu) Current() int { return m.current }

// SetWindow places the items evenly across the window.
func (m *Menu) SetWindow(r term.Region) error {
	if err := m.Base.SetWindow(r); err != nil {
		return err
	}
	step := int(math.Ceil(float64(r.W) / float64(len(m.items)+1)))
	m.centers = m.centers[:0]
	for i := range m.items {
		m.centers = append(m.centers, step*(i+1))
	}
	m.row = r.H/2 - 1
	if m.subtle {
		m.row = 1
	}
	return nil
}

// Focus highlights the item that was current when focus was last lost.
func (m *Menu) Focus() {
	if len(m.items) > 0 {
		m.current = max(m.last, 0)
	}
	m.Base.Focus()
}

func (m *Menu) Unfocus() {
	m.current = -1
	m.Base.Unfocus()
}

// HandleHotkey activates the item bound to ev, focused or not.
func (m *Menu) HandleHotkey(ev term.Event) term.Event {
	if ev.Key != term.KeyRune {
		return ev
	}
	for _, item := range m.items {
		if item.Hotkey != 0 && item.Hotkey == ev.Rune && item.activate() {
			m.MarkDirty()
			return term.None
		}
	}
	return ev
}

func (m *Menu) HandleInput(ev term.Event) term.Event {
	if !m.Focused() || ev.Absorbed() || len(m.items) == 0 {
		return ev
	}
	switch {
	case ev.Key == term.KeyMouse:
		return m.click(ev)
	case key.Matches(ev, m.Keys.Right):
		return m.move(1, ev)
	case key.Matches(ev, m.Keys.Left):
		return m.move(-1, ev)
	case key.Matches(ev, m.Keys.Activate):
		if m.items[m.current].activate() {
			return term.None
		}
	}
	return ev
}

// click highlights the item under a button press and activates it. Presses
// off every item propagate.
func (m *Menu) click(ev term.Event) term.Event {
	ms, err := ev.Mouse()
	if err != nil || !ms.Pressed() || ms.Y-m.win.Y != m.row {
		return ev
	}
	col := ms.X - m.win.X
	for i, item := range m.items {
		n := uniseg.GraphemeClusterCount(item.text())
		start := m.centers[i] - n/2
		if col < start || col >= start+n {
			continue
		}
		m.current = i
		m.last = i
		m.MarkDirty()
		item.activate()
		return term.None
	}
	return ev
}

func (m *Menu) move(step int, ev term.Event) term.Event {
	next := m.current + step
	m.current = min(max(next, 0), len(m.items)-1)
	m.MarkDirty()
	if m.current != next {
		return ev
	}
	m.last = m.current
	return term.None
}

func (m *Menu) Draw() error {
	if !m.Dirty() {
		return nil
	}
	m.DrawFrame()
	for i, item := range m.items {
		label := item.text()
		col := m.centers[i] - uniseg.GraphemeClusterCount(label)/2
		style := m.Styles.Menu
		if item.Disabled {
			style = m.Styles.MenuDisabled
		}
		if i == m.current {
			m.win.Put(m.row, col, label, m.Styles.MenuFocused.Underline(true))
			continue
		}
		if item.Underline < 0 || item.Underline >= len([]rune(item.Label)) {
			m.win.Put(m.row, col, label, style)
			continue
		}
		runes := []rune(label)
		u := item.Underline
		m.win.Put(m.row, col, string(runes[:u]), style)
		m.win.Put(m.row, col+u, string(runes[u]), style.Underline(true))
		m.win.Put(m.row, col+u+1, string(runes[u+1:]), style)
	}
	m.clean()
	return nil
}
