package term

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one character cell of a Memory terminal.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

var blank = Cell{Rune: ' ', Style: tcell.StyleDefault}

// Memory is a Terminal backed by an in-process cell buffer. It is safe for
// concurrent use so a host can push input from another goroutine.
type Memory struct {
	mu     sync.Mutex
	rows   int
	cols   int
	cells  [][]Cell
	curRow int
	curCol int
	queue  []Event
	shows  int
}

// NewMemory returns a blank terminal of the given size.
func NewMemory(rows, cols int) *Memory {
	m := &Memory{}
	m.allocate(rows, cols)
	return m
}

func (m *Memory) allocate(rows, cols int) {
	m.rows = max(rows, 0)
	m.cols = max(cols, 0)
	m.cells = make([][]Cell, m.rows)
	for r := range m.cells {
		m.cells[r] = make([]Cell, m.cols)
		for c := range m.cells[r] {
			m.cells[r][c] = blank
		}
	}
}

func (m *Memory) Size() (rows, cols int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows, m.cols
}

func (m *Memory) WriteStyledText(row, col int, text string, style tcell.Style) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= m.rows {
		return
	}
	for _, r := range text {
		w := max(runewidth.RuneWidth(r), 1)
		if col >= m.cols {
			return
		}
		if col >= 0 {
			m.cells[row][col] = Cell{Rune: r, Style: style}
			for extra := 1; extra < w && col+extra < m.cols; extra++ {
				m.cells[row][col+extra] = Cell{Rune: 0, Style: style}
			}
		}
		col += w
	}
}

func (m *Memory) MoveCursorTo(row, col int) {
	m.mu.Lock()
	m.curRow, m.curCol = row, col
	m.mu.Unlock()
}

func (m *Memory) ClearToEndOfLine() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.curRow < 0 || m.curRow >= m.rows {
		return
	}
	for c := max(m.curCol, 0); c < m.cols; c++ {
		m.cells[m.curRow][c] = blank
	}
}

func (m *Memory) PollKey() Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return None
	}
	ev := m.queue[0]
	m.queue = m.queue[1:]
	return ev
}

func (m *Memory) FlushPendingInput() {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.queue[:0]
	for _, ev := range m.queue {
		if ev.Key == KeyResize {
			kept = append(kept, ev)
			break
		}
	}
	m.queue = kept
}

func (m *Memory) Show() {
	m.mu.Lock()
	m.shows++
	m.mu.Unlock()
}

// Push queues input for a later PollKey.
func (m *Memory) Push(events ...Event) {
	m.mu.Lock()
	m.queue = append(m.queue, events...)
	m.mu.Unlock()
}

// Resize reallocates the buffer, blanking it, and queues a resize event.
func (m *Memory) Resize(rows, cols int) {
	m.mu.Lock()
	m.allocate(rows, cols)
	m.queue = append(m.queue, Resize())
	m.mu.Unlock()
}

// Row returns the text of one row with wide-rune continuation cells removed.
func (m *Memory) Row(row int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= m.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range m.cells[row] {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

// At returns the cell at row, col. Out-of-range positions read as blank.
func (m *Memory) At(row, col int) Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return blank
	}
	return m.cells[row][col]
}

// Cells returns a copy of the whole buffer.
func (m *Memory) Cells() [][]Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]Cell, len(m.cells))
	for r, row := range m.cells {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// Shows reports how many times Show has been called.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}
