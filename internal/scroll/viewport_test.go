package scroll

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/five82/tinywin/internal/text"
)

func makeRows(n int) []*text.Line {
	rows := make([]*text.Line, n)
	for i := range rows {
		rows[i] = text.Plain(fmt.Sprintf("row %d", i), tcell.StyleDefault)
	}
	return rows
}

func newViewport(t *testing.T, height, width, rows int, forced bool) *Viewport {
	t.Helper()
	v := New(height, width, forced)
	if err := v.SetRows(makeRows(rows), 0); err != nil {
		t.Fatalf("SetRows returned error: %v", err)
	}
	return v
}

func cursorCount(rows []*text.Line) int {
	n := 0
	for _, r := range rows {
		if r.State.Cursor {
			n++
		}
	}
	return n
}

func TestFewRowsShowEverything(t *testing.T) {
	v := newViewport(t, 10, 20, 4, false)
	if v.ScrollbarNeeded() {
		t.Fatalf("ScrollbarNeeded() = true for 4 rows in height 10")
	}
	if got := len(v.Visible()); got != 4 {
		t.Fatalf("len(Visible()) = %d, want 4", got)
	}
	if v.Width() != 20 {
		t.Fatalf("Width() = %d, want 20", v.Width())
	}
	if _, _, ok := v.Thumb(); ok {
		t.Fatalf("Thumb() ok without scrollbar")
	}
	if v.ScrollBy(1) {
		t.Fatalf("ScrollBy(1) accepted without scrollbar")
	}
}

func TestEmptyRowsNeedNoScrollbar(t *testing.T) {
	v := newViewport(t, 0, 20, 0, false)
	if v.ScrollbarNeeded() {
		t.Fatalf("ScrollbarNeeded() = true for no rows")
	}
	v.SetCursor(5)
	if v.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", v.Cursor())
	}
}

func TestScrollbarReducesWidthAndShortens(t *testing.T) {
	v := New(3, 5, false)
	rows := makeRows(5)
	if err := v.SetRows(rows, 0); err != nil {
		t.Fatalf("SetRows returned error: %v", err)
	}
	if !v.ScrollbarNeeded() || v.Width() != 4 {
		t.Fatalf("ScrollbarNeeded() = %v, Width() = %d, want true, 4", v.ScrollbarNeeded(), v.Width())
	}
	if got := rows[0].String(); got != "r..." {
		t.Fatalf("row 0 = %q, want %q", got, "r...")
	}
}

func TestForcedScrollScenario(t *testing.T) {
	v := newViewport(t, 3, 80, 50, true)
	if v.First() != 0 {
		t.Fatalf("First() = %d, want 0", v.First())
	}
	if v.ScrollBy(-1) {
		t.Fatalf("ScrollBy(-1) at top = true, want false")
	}
	v.Recompute()
	if v.First() != 0 {
		t.Fatalf("First() after refused scroll = %d, want 0", v.First())
	}
	if !v.ScrollBy(1) {
		t.Fatalf("ScrollBy(1) = false, want true")
	}
	v.Recompute()
	if v.First() != 1 {
		t.Fatalf("First() = %d, want 1", v.First())
	}
}

func TestForcedScrollClampsAtEnd(t *testing.T) {
	v := newViewport(t, 5, 20, 10, true)
	if !v.ScrollBy(100) {
		t.Fatalf("ScrollBy(100) = false, want true")
	}
	v.Recompute()
	if v.First() != 6 {
		t.Fatalf("First() = %d, want 6", v.First())
	}
	if v.ScrollBy(1) {
		t.Fatalf("ScrollBy(1) at bottom = true, want false")
	}
	if !v.ScrollBy(-2) {
		t.Fatalf("ScrollBy(-2) at bottom = false, want true")
	}
	v.Recompute()
	if v.First() != 4 {
		t.Fatalf("First() = %d, want 4", v.First())
	}
}

func TestCursorDrivesWindow(t *testing.T) {
	v := newViewport(t, 5, 20, 10, false)
	tests := []struct {
		cursor    int
		wantFirst int
	}{
		{3, 0},
		{4, 1},
		{9, 6},
		{7, 6},
		{5, 5},
		{0, 0},
	}
	for _, tt := range tests {
		v.SetCursor(tt.cursor)
		v.Recompute()
		if v.First() != tt.wantFirst {
			t.Fatalf("cursor %d: First() = %d, want %d", tt.cursor, v.First(), tt.wantFirst)
		}
		if got := len(v.Visible()); got != 4 {
			t.Fatalf("cursor %d: len(Visible()) = %d, want 4", tt.cursor, got)
		}
	}
}

func TestForcedOnlyIgnoresCursor(t *testing.T) {
	v := newViewport(t, 5, 20, 10, true)
	v.SetCursor(9)
	v.Recompute()
	if v.First() != 0 {
		t.Fatalf("First() = %d, want 0 in forced-only mode", v.First())
	}
}

func TestFirstStaysInBounds(t *testing.T) {
	for height := 2; height <= 8; height++ {
		for n := height; n <= 20; n++ {
			v := newViewport(t, height, 20, n, false)
			for c := -3; c < n+3; c++ {
				v.SetCursor(c)
				v.Recompute()
				if v.First() < 0 || v.First() > n-(height-1) {
					t.Fatalf("h=%d n=%d cursor=%d: First() = %d out of bounds", height, n, c, v.First())
				}
			}
		}
	}
}

func TestSetCursorKeepsSingleFlag(t *testing.T) {
	v := newViewport(t, 4, 20, 6, false)
	for _, c := range []int{2, -1, 99, 3} {
		v.SetCursor(c)
		if got := cursorCount(v.Rows()); got != 1 {
			t.Fatalf("after SetCursor(%d) %d rows carry the cursor, want 1", c, got)
		}
	}
	if v.Cursor() != 3 || !v.Rows()[3].State.Cursor {
		t.Fatalf("Cursor() = %d, want 3 with flag set", v.Cursor())
	}
	if err := v.SetRows(v.Rows(), 1); err != nil {
		t.Fatalf("SetRows returned error: %v", err)
	}
	if got := cursorCount(v.Rows()); got != 1 || !v.Rows()[1].State.Cursor {
		t.Fatalf("SetRows left %d cursor flags, want only row 1", got)
	}
}

func TestThumbPinsToExtremes(t *testing.T) {
	// 4 rows on screen over 10: thumb is floor(16/10) = 1 row.
	v := newViewport(t, 5, 20, 10, true)
	tests := []struct {
		scroll    int
		wantStart int
		wantEnd   int
	}{
		{0, 0, 1},
		{1, 0, 1}, // first=1: floor(2*0.4) = 0
		{2, 1, 2}, // first=3: floor(4*0.4) = 1
		{3, 3, 4}, // first=6 is the end, pinned to the bottom
	}
	for _, tt := range tests {
		if tt.scroll > 0 {
			v.ScrollBy(tt.scroll)
		}
		v.Recompute()
		start, end, ok := v.Thumb()
		if !ok || start != tt.wantStart || end != tt.wantEnd {
			t.Fatalf("first=%d: Thumb() = %d,%d,%v, want %d,%d", v.First(), start, end, ok, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestThumbTouchesBothEnds(t *testing.T) {
	for n := 5; n <= 40; n++ {
		v := newViewport(t, 5, 20, n, true)
		v.Recompute()
		if !v.OnThumb(0) {
			t.Fatalf("n=%d: thumb does not touch row 0 at the top", n)
		}
		v.ScrollBy(n)
		v.Recompute()
		if !v.OnThumb(3) {
			t.Fatalf("n=%d: thumb does not touch the last row at the bottom", n)
		}
	}
}

func TestResizeKeepsCursor(t *testing.T) {
	v := newViewport(t, 5, 20, 10, false)
	v.SetCursor(8)
	if err := v.Resize(12, 20); err != nil {
		t.Fatalf("Resize returned error: %v", err)
	}
	if v.ScrollbarNeeded() || v.Cursor() != 8 {
		t.Fatalf("after Resize: ScrollbarNeeded() = %v, Cursor() = %d", v.ScrollbarNeeded(), v.Cursor())
	}
	if err := v.Resize(5, 3); err == nil {
		t.Fatalf("Resize to width 2 (after scrollbar) should fail to fit rows")
	}
}
