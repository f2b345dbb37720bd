package pane

import (
	"strings"
	"time"

	"github.com/five82/tinywin/internal/text"
)

const (
	spinnerFrames = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"
	spinnerDone   = "⠿"
	spinnerPeriod = 100 * time.Millisecond
)

// Forever keeps a notification until the next one replaces it.
const Forever time.Duration = -1

// Notifier is a one-line strip that shows a header and a transient message,
// optionally behind a spinner.
type Notifier struct {
	Base

	header       string
	rightAligned bool

	message *text.Line
	timeout time.Duration
	expires time.Time
	armed   bool

	spinner   bool
	done      bool
	frame     int
	lastFrame time.Time
}

// NewNotifier builds an idle notifier.
func NewNotifier(header string, rightAligned bool) *Notifier {
	return &Notifier{
		Base:         NewBase("", BorderNone),
		header:       header,
		rightAligned: rightAligned,
	}
}

// Notify shows msg for d, or until replaced when d is Forever. With spinner
// set the message is prefixed by a spinner, frozen on the done glyph when
// done is set.
func (n *Notifier) Notify(msg *text.Line, d time.Duration, spinner, done bool) {
	n.message = msg
	n.timeout = d
	n.armed = d >= 0
	n.expires = time.Time{}
	n.spinner = spinner
	n.done = done
	n.MarkDirty()
}

// Message returns the current message text, or "".
func (n *Notifier) Message() string {
	if n.message == nil {
		return ""
	}
	return n.message.String()
}

// MaxMessageWidth is the room left for a message after the header and, if
// requested, the spinner.
func (n *Notifier) MaxMessageWidth(spinner bool) int {
	w := n.win.W - len([]rune(n.header))
	if spinner {
		w -= len([]rune(spinnerDone)) + 1
	}
	return max(w, 0)
}

// Process expires the message and paces the spinner.
func (n *Notifier) Process(now time.Time) {
	if n.armed && n.expires.IsZero() {
		n.expires = now.Add(n.timeout)
	}
	if n.armed && now.After(n.expires) {
		n.message = nil
		n.armed = false
		n.spinner = false
		n.MarkDirty()
		return
	}
	if n.spinner && !n.done && now.Sub(n.lastFrame) >= spinnerPeriod {
		n.frame = (n.frame + 1) % len([]rune(spinnerFrames))
		n.lastFrame = now
		n.MarkDirty()
	}
}

func (n *Notifier) prefix() string {
	if !n.spinner {
		return n.header
	}
	glyph := spinnerDone
	if !n.done {
		glyph = string([]rune(spinnerFrames)[n.frame])
	}
	return glyph + " " + n.header
}

func (n *Notifier) Draw() error {
	if !n.Dirty() {
		return nil
	}
	w := n.win
	w.Clear(n.Styles.Text)

	head := n.prefix()
	width := len([]rune(head))
	if n.message != nil {
		width += n.message.Len()
	}
	col := 0
	if n.rightAligned {
		col = w.W - width
	}
	w.Put(0, col, head, n.Styles.Notification)
	if n.message != nil {
		n.message.Render(w, 0, col+len([]rune(head)), nil)
	}
	n.clean()
	return nil
}

// String is the text the strip currently shows.
func (n *Notifier) String() string {
	var b strings.Builder
	b.WriteString(n.prefix())
	b.WriteString(n.Message())
	return b.String()
}
