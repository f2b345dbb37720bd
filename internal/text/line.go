package text

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// DefaultEllipsis is appended to shortened lines unless a line sets its own.
const DefaultEllipsis = "..."

// highlightReserve is the number of trailing cells a highlighted row leaves
// unpadded.
const highlightReserve = 3

// Segment is a run of text drawn in one style.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Len is the segment length in characters.
func (s Segment) Len() int {
	return uniseg.GraphemeClusterCount(s.Text)
}

// RowState is the per-row state panes attach to a line.
type RowState struct {
	Cursor   bool
	Selected bool
	Loaded   bool
}

// Surface is anything a line can be rendered onto.
type Surface interface {
	Put(row, col int, text string, style tcell.Style)
}

// Line is a styled logical line with a display form fitted to a width.
type Line struct {
	State RowState

	logical  []Segment
	display  []Segment
	width    int
	widthSet bool
	ellipsis Segment
}

// NewLine builds a line from segments. Its allowed width is the total length
// until SetAllowedWidth or ShortenToFit is called.
func NewLine(segments ...Segment) *Line {
	l := &Line{
		logical:  cloneSegments(segments),
		ellipsis: Segment{Text: DefaultEllipsis, Style: tcell.StyleDefault},
	}
	l.display = cloneSegments(l.logical)
	return l
}

// Plain builds a single-segment line.
func Plain(text string, style tcell.Style) *Line {
	return NewLine(Segment{Text: text, Style: style})
}

// Append adds a segment to the logical line and resets the display form.
func (l *Line) Append(text string, style tcell.Style) *Line {
	l.logical = append(l.logical, Segment{Text: text, Style: style})
	l.display = cloneSegments(l.logical)
	return l
}

// WithEllipsis replaces the truncation marker.
func (l *Line) WithEllipsis(text string, style tcell.Style) *Line {
	l.ellipsis = Segment{Text: text, Style: style}
	return l
}

// Len is the display length.
func (l *Line) Len() int {
	return segmentsLen(l.display)
}

// LogicalLen is the unshortened length.
func (l *Line) LogicalLen() int {
	return segmentsLen(l.logical)
}

// AllowedWidth returns the width the line is fitted to.
func (l *Line) AllowedWidth() int {
	if !l.widthSet {
		return l.LogicalLen()
	}
	return l.width
}

// SetAllowedWidth records a new target width without reshortening.
func (l *Line) SetAllowedWidth(width int) {
	l.width = width
	l.widthSet = true
}

// Fit shortens the line to its current allowed width.
func (l *Line) Fit() error {
	return l.ShortenToFit(l.AllowedWidth())
}

// ShortenToFit derives the display segments for width from the logical
// segments.
func (l *Line) ShortenToFit(width int) error {
	l.SetAllowedWidth(width)

	total := l.LogicalLen()
	if total <= width {
		l.display = cloneSegments(l.logical)
		return nil
	}
	ellipsisLen := l.ellipsis.Len()
	if width < ellipsisLen {
		return &TerminalTooSmallError{What: l.logicalString(), Width: width, Need: ellipsisLen}
	}

	// seg is the segment being cut, kept the characters retained from it.
	seg := len(l.logical) - 1
	kept := l.logical[seg].Len()
	for total+ellipsisLen > width {
		for kept == 0 && seg > 0 {
			seg--
			kept = l.logical[seg].Len()
		}
		total--
		kept--
	}
	for kept == 0 && seg > 0 {
		seg--
		kept = l.logical[seg].Len()
	}

	display := cloneSegments(l.logical[:seg])
	cut := l.logical[seg]
	cut.Text = strings.TrimSuffix(prefix(cut.Text, kept), " ")
	if cut.Text != "" {
		display = append(display, cut)
	}
	l.display = append(display, l.ellipsis)
	return nil
}

// Segments returns a copy of the display segments.
func (l *Line) Segments() []Segment {
	return cloneSegments(l.display)
}

// String returns the display text.
func (l *Line) String() string {
	return joinSegments(l.display)
}

func (l *Line) logicalString() string {
	return joinSegments(l.logical)
}

// Restyle sets every segment, logical and displayed, to style.
func (l *Line) Restyle(style tcell.Style) {
	for i := range l.logical {
		l.logical[i].Style = style
	}
	for i := range l.display {
		l.display[i].Style = style
	}
}

// Render draws the display segments at row starting at col and returns the
// number of cells consumed. With a highlight style, segment styles take on the
// highlight attributes and the rest of the allowed width, minus three trailing
// cells, is padded in the highlight style.
func (l *Line) Render(s Surface, row, col int, highlight *tcell.Style) int {
	consumed := 0
	for _, seg := range l.display {
		style := seg.Style
		if highlight != nil {
			_, _, attrs := highlight.Decompose()
			_, _, own := style.Decompose()
			style = style.Attributes(own | attrs)
		}
		s.Put(row, col+consumed, seg.Text, style)
		consumed += seg.Len()
	}
	if highlight != nil {
		if pad := l.AllowedWidth() - consumed - highlightReserve; pad > 0 {
			s.Put(row, col+consumed, strings.Repeat(" ", pad), *highlight)
		}
	}
	return consumed
}

// Clone returns an independent copy, state included.
func (l *Line) Clone() *Line {
	dup := *l
	dup.logical = cloneSegments(l.logical)
	dup.display = cloneSegments(l.display)
	return &dup
}

func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}

func segmentsLen(segs []Segment) int {
	n := 0
	for _, s := range segs {
		n += s.Len()
	}
	return n
}

func joinSegments(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func cloneSegments(segs []Segment) []Segment {
	if segs == nil {
		return nil
	}
	return append([]Segment(nil), segs...)
}
