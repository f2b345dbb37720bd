package text

import "testing"

func TestLoadingBarLine(t *testing.T) {
	b, err := NewLoadingBar("load", 22, 0, BarStyles{})
	if err != nil {
		t.Fatalf("NewLoadingBar returned error: %v", err)
	}
	if err := b.Set(0.5, ""); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	// 22 - 4 - 8 leaves a 10 cell bar.
	want := " 50%[━━━━━━━━━━] load"
	if got := b.Line().String(); got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}
}

func TestLoadingBarClampsAndShortens(t *testing.T) {
	b, err := NewLoadingBar("x", 20, 6, BarStyles{})
	if err != nil {
		t.Fatalf("NewLoadingBar returned error: %v", err)
	}
	if err := b.Set(3, "reading files"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if b.Fraction() != 1 {
		t.Fatalf("Fraction() = %v, want 1", b.Fraction())
	}
	want := "100%[━━━━━━] rea..."
	if got := b.Line().String(); got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}
}

func TestLoadingBarNarrowFallsBack(t *testing.T) {
	b, err := NewLoadingBar("message", 10, 0, BarStyles{})
	if err != nil {
		t.Fatalf("NewLoadingBar returned error: %v", err)
	}
	_ = b.Set(-1, "")
	if got := b.Line().String(); got != "message 0%  " {
		t.Fatalf("Line() = %q, want %q", got, "message 0%  ")
	}
}
