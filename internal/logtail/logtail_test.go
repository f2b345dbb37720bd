package logtail

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/tinywin/internal/theme"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func TestTail(t *testing.T) {
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	logPath := writeFile(t, content.String())

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(context.Background(), logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Tail() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTailMissingFile(t *testing.T) {
	got, err := Tail(context.Background(), filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Tail() = %v, %v, want nil, nil", got, err)
	}
}

func TestTailEmptyFile(t *testing.T) {
	got, err := Tail(context.Background(), writeFile(t, ""), 10)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Tail() = %v, want no lines", got)
	}
}

func TestTailBinary(t *testing.T) {
	_, err := Tail(context.Background(), writeFile(t, "ok\nbad\x00line\n"), 10)
	if !errors.Is(err, ErrBinary) {
		t.Fatalf("err = %v, want ErrBinary", err)
	}
}

func TestTailSanitizes(t *testing.T) {
	got, err := Tail(context.Background(), writeFile(t, "a\tb\r\n\x1b[31mred\n"), 0)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	want := []string{"a   b", "[31mred"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tail() = %q, want %q", got, want)
	}
}

func TestTailCancelled(t *testing.T) {
	var content strings.Builder
	for i := range 3 * checkEvery {
		fmt.Fprintf(&content, "%d\n", i)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Tail(ctx, writeFile(t, content.String()), 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"\tx", "    x"},
		{"ab\tx", "ab  x"},
		{"abcd\tx", "abcd    x"},
		{"bell\a", "bell"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorize(t *testing.T) {
	st := theme.Get("Nightfox").Styles()

	type seg struct {
		text  string
		style string
	}
	styleName := map[any]string{
		st.Text:    "text",
		st.Muted:   "muted",
		st.Accent:  "accent",
		st.Success: "success",
		st.Warning: "warning",
		st.Danger:  "danger",
	}

	tests := []struct {
		name  string
		input string
		want  []seg
	}{
		{
			name:  "plain",
			input: "just words",
			want:  []seg{{"just words", "text"}},
		},
		{
			name:  "empty",
			input: "",
			want:  []seg{{"", "text"}},
		},
		{
			name:  "info with component",
			input: "2025-10-08 21:01:05 INFO [encoder] starting",
			want: []seg{
				{"2025-10-08 21:01:05", "muted"},
				{" ", "text"},
				{"INFO", "success"},
				{" ", "text"},
				{"[encoder]", "accent"},
				{" starting", "text"},
			},
		},
		{
			name:  "error without timestamp",
			input: "ERROR disk full",
			want: []seg{
				{"ERROR", "danger"},
				{" ", "text"},
				{"disk full", "text"},
			},
		},
		{
			name:  "warning spelled out",
			input: "WARNING slow",
			want: []seg{
				{"WARNING", "warning"},
				{" ", "text"},
				{"slow", "text"},
			},
		},
		{
			name:  "level needs a word boundary",
			input: "INFORMATION only",
			want:  []seg{{"INFORMATION only", "text"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []seg
			for _, s := range Colorize(tt.input, st).Segments() {
				got = append(got, seg{s.Text, styleName[s.Style]})
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Colorize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorizeLines(t *testing.T) {
	st := theme.Plain()
	got := ColorizeLines([]string{"a", "b"}, st)
	if len(got) != 2 || got[0].String() != "a" || got[1].String() != "b" {
		t.Fatalf("ColorizeLines = %v, want [a b]", got)
	}
}
