package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestMemoryWriteClipsAtRightEdge(t *testing.T) {
	m := NewMemory(2, 5)
	m.WriteStyledText(0, 3, "abcdef", tcell.StyleDefault)
	if got := m.Row(0); got != "   ab" {
		t.Fatalf("Row(0) = %q, want %q", got, "   ab")
	}
	m.WriteStyledText(5, 0, "x", tcell.StyleDefault)
	if got := m.Row(1); got != "     " {
		t.Fatalf("Row(1) = %q, want blank", got)
	}
}

func TestMemoryClearToEndOfLine(t *testing.T) {
	m := NewMemory(1, 6)
	m.WriteStyledText(0, 0, "abcdef", tcell.StyleDefault)
	m.MoveCursorTo(0, 2)
	m.ClearToEndOfLine()
	if got := m.Row(0); got != "ab    " {
		t.Fatalf("Row(0) = %q, want %q", got, "ab    ")
	}
}

func TestMemoryFlushKeepsResize(t *testing.T) {
	m := NewMemory(3, 3)
	m.Push(Rune('a'), Rune('b'))
	m.Resize(4, 4)
	m.Push(Rune('c'))

	if ev := m.PollKey(); ev != Rune('a') {
		t.Fatalf("PollKey() = %q, want a", ev)
	}
	m.FlushPendingInput()
	if ev := m.PollKey(); ev.Key != KeyResize {
		t.Fatalf("PollKey() after flush = %q, want resize", ev)
	}
	if ev := m.PollKey(); !ev.Absorbed() {
		t.Fatalf("PollKey() on empty queue = %q, want none", ev)
	}
	if rows, cols := m.Size(); rows != 4 || cols != 4 {
		t.Fatalf("Size() = %d,%d, want 4,4", rows, cols)
	}
}

func TestMemoryWideRunes(t *testing.T) {
	m := NewMemory(1, 4)
	m.WriteStyledText(0, 0, "日x", tcell.StyleDefault)
	if got := m.Row(0); got != "日x " {
		t.Fatalf("Row(0) = %q, want %q", got, "日x ")
	}
	if c := m.At(0, 2); c.Rune != 'x' {
		t.Fatalf("At(0,2) = %q, want x", c.Rune)
	}
}
