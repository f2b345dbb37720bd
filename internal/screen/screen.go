// Package screen runs the fixed-rate frame loop: poll one input event, route
// it, then run the process and draw phases over every registered pane.
package screen

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"pkt.systems/pslog"

	"github.com/five82/tinywin/internal/layout"
	"github.com/five82/tinywin/internal/logx"
	"github.com/five82/tinywin/internal/pane"
	"github.com/five82/tinywin/internal/term"
)

const (
	DefaultProcessRate    = 30
	DefaultDrawRate       = 15
	DefaultExitKey        = "q"
	DefaultResizeDebounce = 10
)

// ErrAlreadyBuilt is returned by a second Build.
var ErrAlreadyBuilt = errors.New("screen already has a layout")

// Options tunes a Screen. Zero values take the defaults.
type Options struct {
	// ProcessRate and DrawRate are phases per second.
	ProcessRate float64
	DrawRate    float64
	ExitKey     string
	// SubScreen disables wrapping of the default tab chain so tabbing past
	// either end falls through to the host.
	SubScreen bool
	// ResizeDebounce is how many draw attempts are skipped after a resize.
	ResizeDebounce int
	Logger         pslog.Logger

	// Now and Sleep replace the wall clock, mainly for tests and for hosts
	// that own pacing themselves.
	Now   func() time.Time
	Sleep func(time.Duration)
}

func (o Options) withDefaults() Options {
	if o.ProcessRate <= 0 {
		o.ProcessRate = DefaultProcessRate
	}
	if o.DrawRate <= 0 {
		o.DrawRate = DefaultDrawRate
	}
	if o.ExitKey == "" {
		o.ExitKey = DefaultExitKey
	}
	if o.ResizeDebounce <= 0 {
		o.ResizeDebounce = DefaultResizeDebounce
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	o.Logger = logx.Or(o.Logger)
	return o
}

func period(rate float64) time.Duration {
	return time.Duration(float64(time.Second) / rate)
}

// Screen sequences input, process and draw for one layout.
type Screen struct {
	t    term.Terminal
	opts Options
	log  pslog.Logger
	keys term.KeyMap

	layout      *layout.Layout
	processable []pane.Processable
	drawable    []pane.Drawable
	// extras are processables outside the layout. They see input last.
	extras []pane.Processable

	processPeriod time.Duration
	drawPeriod    time.Duration
	lastProcess   time.Time
	lastDraw      time.Time

	recentResize bool
	resizeFrames int

	exit atomic.Bool
}

// New returns a screen over t with nothing registered.
func New(t term.Terminal, opts Options) *Screen {
	opts = opts.withDefaults()
	return &Screen{
		t:             t,
		opts:          opts,
		log:           opts.Logger,
		keys:          term.DefaultKeyMap().WithExit(opts.ExitKey),
		processPeriod: period(opts.ProcessRate),
		drawPeriod:    period(opts.DrawRate),
	}
}

// Build registers every pane of l. When l has no tab chain, one is built over
// its focusable panes, wrapping unless this is a sub-screen.
func (s *Screen) Build(l *layout.Layout) error {
	if s.layout != nil {
		return ErrAlreadyBuilt
	}
	s.layout = l
	if l.TabChain() == nil {
		l.SetTabChain(l.DefaultTabChain(!s.opts.SubScreen))
	}
	for _, p := range l.Panes() {
		s.processable = append(s.processable, p)
		s.drawable = append(s.drawable, p)
	}
	return nil
}

// ProcessPeriod is the interval between process phases.
func (s *Screen) ProcessPeriod() time.Duration { return s.processPeriod }

// Layout returns the built layout, or nil.
func (s *Screen) Layout() *layout.Layout { return s.layout }

// Add registers extra objects outside the layout. Each takes part in the
// phases it implements.
func (s *Screen) Add(objs ...any) {
	for _, o := range objs {
		if p, ok := o.(pane.Processable); ok {
			s.processable = append(s.processable, p)
			s.extras = append(s.extras, p)
		}
		if d, ok := o.(pane.Drawable); ok {
			s.drawable = append(s.drawable, d)
		}
	}
}

// Init runs the one-time setup of every registered object that needs it.
func (s *Screen) Init() error {
	seen := make(map[any]bool)
	run := func(o any) error {
		in, ok := o.(pane.Initializer)
		if !ok || seen[o] {
			return nil
		}
		seen[o] = true
		return in.Init()
	}
	for _, p := range s.processable {
		if err := run(p); err != nil {
			return err
		}
	}
	for _, d := range s.drawable {
		if err := run(d); err != nil {
			return err
		}
	}
	return nil
}

// RequestExit makes the next Frame return false. Safe from any goroutine.
func (s *Screen) RequestExit() { s.exit.Store(true) }

// Frame runs one tick. It reports false once the loop should stop, either
// because exit was requested or because the exit key went unhandled.
func (s *Screen) Frame() (bool, error) {
	if s.exit.Load() {
		s.log.Info("screen exit", "reason", "requested")
		return false, nil
	}

	now := s.opts.Now()
	untilProcess := s.lastProcess.Add(s.processPeriod).Sub(now)
	untilDraw := s.lastDraw.Add(s.drawPeriod).Sub(now)
	if untilProcess > 0 && untilDraw > 0 {
		s.opts.Sleep(min(untilProcess, untilDraw))
		now = s.opts.Now()
		untilProcess = s.lastProcess.Add(s.processPeriod).Sub(now)
		untilDraw = s.lastDraw.Add(s.drawPeriod).Sub(now)
	}

	ev := s.t.PollKey()
	input := !ev.Absorbed()
	if input {
		s.t.FlushPendingInput()
	}

	ev, err := s.route(ev)
	if err != nil {
		return false, err
	}
	if !ev.Absorbed() && key.Matches(ev, s.keys.Exit) {
		s.log.Info("screen exit", "reason", "exit key", "key", ev.String())
		return false, nil
	}

	if input || untilProcess <= 0 {
		s.process(now)
	}
	if input || untilDraw <= 0 {
		if err := s.draw(now); err != nil {
			return false, err
		}
	}
	return true, nil
}

// route handles a resize itself and passes anything else through hot keys,
// the layout and finally the extra processables.
func (s *Screen) route(ev term.Event) (term.Event, error) {
	if ev.Absorbed() {
		return ev, nil
	}
	if ev.Key == term.KeyResize {
		return term.None, s.resize()
	}
	if s.layout != nil {
		ev = s.layout.HandleHotkeys(ev)
		ev = s.layout.HandleInput(ev)
	}
	for _, p := range s.extras {
		if ev.Absorbed() {
			break
		}
		ev = p.HandleInput(ev)
	}
	return ev, nil
}

func (s *Screen) resize() error {
	s.recentResize = true
	s.resizeFrames = 0
	if s.layout == nil {
		return nil
	}
	rows, cols := s.t.Size()
	s.log.Debug("screen resize", "rows", rows, "cols", cols)
	return s.layout.Resize()
}

func (s *Screen) process(now time.Time) {
	for _, p := range s.processable {
		p.Process(now)
	}
	s.lastProcess = now
}

func (s *Screen) draw(now time.Time) error {
	s.lastDraw = now
	if s.recentResize {
		s.resizeFrames++
		if s.resizeFrames <= s.opts.ResizeDebounce {
			return nil
		}
		s.recentResize = false
		s.resizeFrames = 0
		for _, d := range s.drawable {
			d.MarkDirty()
		}
	}

	for _, d := range s.drawable {
		if !d.Dirty() {
			continue
		}
		if err := d.Draw(); err != nil {
			return err
		}
	}
	if s.layout != nil {
		s.layout.Draw()
	}
	s.t.Show()
	return nil
}

// Run calls Frame until it reports false or fails. Cancelling ctx requests
// exit.
func (s *Screen) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.RequestExit)
	defer stop()
	for {
		ok, err := s.Frame()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}
