package text

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// BarStyles are the styles a LoadingBar renders with.
type BarStyles struct {
	Text    tcell.Style
	Percent tcell.Style
	Done    tcell.Style // percent once complete
	Filled  tcell.Style
	Empty   tcell.Style
}

// LoadingBar renders progress as "NNN%[━━━   ] message" within a fixed width.
type LoadingBar struct {
	width        int
	messageWidth int
	message      *Line
	fraction     float64
	styles       BarStyles
}

// NewLoadingBar builds a bar width cells wide. A messageWidth of zero reserves
// exactly the length of message; otherwise every message is shortened to it.
func NewLoadingBar(message string, width, messageWidth int, styles BarStyles) (*LoadingBar, error) {
	b := &LoadingBar{width: width, styles: styles}
	msg := Plain(message, styles.Text)
	if messageWidth <= 0 {
		b.messageWidth = msg.LogicalLen()
	} else {
		b.messageWidth = messageWidth
		if err := msg.ShortenToFit(messageWidth); err != nil {
			return nil, err
		}
	}
	b.message = msg
	return b, nil
}

// Set records progress, clamped to [0, 1], and optionally a new message.
func (b *LoadingBar) Set(fraction float64, message string) error {
	b.fraction = min(max(fraction, 0), 1)
	if message == "" {
		return nil
	}
	msg := Plain(message, b.styles.Text)
	if err := msg.ShortenToFit(b.messageWidth); err != nil {
		return err
	}
	b.message = msg
	return nil
}

// Fraction returns the current progress.
func (b *LoadingBar) Fraction() float64 { return b.fraction }

// Line renders the bar. When fewer than two cells remain for the bar itself
// only the message and percentage are shown.
func (b *LoadingBar) Line() *Line {
	percent := fmt.Sprintf("%.0f%%", b.fraction*100)
	barLen := b.width - b.messageWidth - 8
	if barLen < 2 {
		return NewLine(append(b.message.Segments(),
			Segment{Text: fmt.Sprintf(" %-4s", percent), Style: b.styles.Text})...)
	}

	filled := int(math.Floor(float64(barLen) * b.fraction))
	percentStyle := b.styles.Percent
	if b.fraction == 1 {
		percentStyle = b.styles.Done
	}
	segs := []Segment{
		{Text: fmt.Sprintf("%4s", percent), Style: percentStyle},
		{Text: "[", Style: b.styles.Text},
		{Text: strings.Repeat("━", filled), Style: b.styles.Filled},
		{Text: strings.Repeat("━", barLen-filled), Style: b.styles.Empty},
		{Text: "] ", Style: b.styles.Text},
	}
	return NewLine(append(segs, b.message.Segments()...)...)
}
