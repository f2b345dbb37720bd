package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pkt.systems/pslog"

	"github.com/five82/tinywin/internal/layout"
	"github.com/five82/tinywin/internal/logtail"
	"github.com/five82/tinywin/internal/logx"
	"github.com/five82/tinywin/internal/pane"
	"github.com/five82/tinywin/internal/state"
	"github.com/five82/tinywin/internal/term"
	"github.com/five82/tinywin/internal/text"
	"github.com/five82/tinywin/internal/theme"
)

const (
	title        = "tinywin"
	noticeTime   = 2 * time.Second
	barMessageW  = 18
	previewTitle = "Preview"
)

// Browser is the demo file browser: a file list, a preview of the file under
// the cursor, a menu bar and a notification footer fed by a background loader.
type Browser struct {
	ctx    context.Context
	dir    string
	log    pslog.Logger
	store  *state.Store[string, []string]
	loader *Loader
	quit   func()

	layout   *layout.Layout
	files    *filesPane
	preview  *pane.List
	menu     *pane.Menu
	notifier *pane.Notifier

	themeName string
	styles    theme.Styles

	names []string
	snap  state.Snapshot[string, []string]
	shown int // row shown in the preview, -1 when stale
	done  bool
}

// BrowserOptions configure a Browser.
type BrowserOptions struct {
	Dir       string
	Theme     string
	Workers   int
	TailLines int
	Logger    pslog.Logger
	// Quit is called by the Quit menu item.
	Quit func()
}

// NewBrowser prepares a browser over opts.Dir. Nothing is loaded until the
// screen initializes its panes.
func NewBrowser(ctx context.Context, opts BrowserOptions) *Browser {
	log := logx.Or(opts.Logger)
	store := state.NewStore[string](cloneLines)
	b := &Browser{
		ctx:       ctx,
		dir:       opts.Dir,
		log:       log,
		store:     store,
		loader:    NewLoader(store, opts.Workers, opts.TailLines, log),
		quit:      opts.Quit,
		themeName: theme.Get(opts.Theme).Name,
		shown:     -1,
	}
	b.styles = theme.Get(b.themeName).Styles()
	return b
}

func cloneLines(lines []string) []string {
	return append([]string(nil), lines...)
}

// Build lays the browser out on t. It matches teahost.BuildFunc.
func (b *Browser) Build(t term.Terminal) (*layout.Layout, error) {
	l, err := layout.New(t, 3, 4,
		layout.WithTitle(title),
		layout.WithLogger(b.log),
		layout.WithStyles(b.styles),
	)
	if err != nil {
		return nil, err
	}

	b.files = &filesPane{List: pane.NewList(pane.MultiSelect, "Files"), browser: b}
	b.files.OnSelect = b.selected
	b.preview = pane.NewList(pane.ReadOnly, previewTitle)
	b.menu = pane.NewMenu(true,
		pane.MenuItem{Label: "Refresh", Hotkey: 'r', Underline: 0, Action: b.refresh},
		pane.MenuItem{Label: "Theme", Hotkey: 't', Underline: 0, Action: b.cycleTheme},
		pane.MenuItem{Label: "Quit", Underline: 0, Action: b.exit},
	)
	b.notifier = pane.NewNotifier("", false)

	if err := l.Add(b.files, 0, 0, 1, 3, layout.FocusKey('f')); err != nil {
		return nil, err
	}
	if err := l.Add(b.preview, 1, 0, 2, 3, layout.FocusKey('p')); err != nil {
		return nil, err
	}
	if err := l.Add(b.menu, 0, 3, 3, 1, layout.OneLine()); err != nil {
		return nil, err
	}
	if err := l.AddFooter(b.notifier); err != nil {
		return nil, err
	}
	b.layout = l
	b.applyStyles()
	return l, nil
}

// Store is the store the loader fills.
func (b *Browser) Store() *state.Store[string, []string] { return b.store }

// Loader returns the background loader.
func (b *Browser) Loader() *Loader { return b.loader }

// Close stops any running load.
func (b *Browser) Close() { b.loader.Stop() }

func (b *Browser) start() error {
	names, err := b.loader.Start(b.ctx, b.dir)
	if err != nil {
		return err
	}
	b.names = names
	b.snap = state.Snapshot[string, []string]{}
	b.done = false
	b.shown = -1
	rows := make([]*text.Line, len(names))
	for i, name := range names {
		rows[i] = text.Plain(name, b.styles.Muted)
	}
	if err := b.files.SetRows(rows); err != nil {
		return err
	}
	b.files.SetCursor(0)
	b.log.Info("browse", "dir", b.dir, "files", len(names))
	return nil
}

func (b *Browser) refresh() {
	if err := b.start(); err != nil {
		b.log.Warn("refresh failed", "dir", b.dir, "err", err)
		b.notify(text.Plain("refresh failed: "+err.Error(), b.styles.Danger), noticeTime)
	}
}

func (b *Browser) cycleTheme() {
	b.themeName = theme.Next(b.themeName)
	b.styles = theme.Get(b.themeName).Styles()
	b.applyStyles()
	b.notify(text.Plain("theme: "+b.themeName, b.styles.Text), noticeTime)
}

func (b *Browser) exit() {
	if b.quit != nil {
		b.quit()
	}
}

func (b *Browser) applyStyles() {
	b.layout.SetStyles(b.styles)
	for _, p := range []*pane.Base{&b.files.Base, &b.preview.Base, &b.menu.Base, &b.notifier.Base} {
		p.Styles = b.styles
		p.MarkDirty()
	}
	b.restyleFiles()
	b.shown = -1
}

func (b *Browser) selected(rows []int) {
	b.notify(text.Plain(fmt.Sprintf("%d selected", len(rows)), b.styles.Accent), noticeTime)
}

func (b *Browser) notify(msg *text.Line, d time.Duration) {
	if w := b.notifier.MaxMessageWidth(false); w > 0 {
		if err := msg.ShortenToFit(w); err != nil {
			return
		}
	}
	b.notifier.Notify(msg, d, false, false)
}

// consume pulls the latest snapshot when the loader has published anything.
func (b *Browser) consume() {
	if !b.store.HasNewData() {
		return
	}
	done := b.store.HasAllData()
	b.snap = b.store.Snapshot()
	b.restyleFiles()
	b.showProgress(done)
	b.done = done
	b.shown = -1
}

// restyleFiles colors each file by load state: muted while pending, plain
// once loaded, danger when it failed.
func (b *Browser) restyleFiles() {
	rows := b.files.Rows()
	for i, name := range b.names {
		if i >= len(rows) {
			break
		}
		style := b.styles.Muted
		_, loaded := b.snap.Data[name]
		if _, failed := b.snap.Errors[name]; failed {
			style = b.styles.Danger
		} else if loaded {
			style = b.styles.Text
		}
		rows[i].State.Loaded = loaded
		rows[i].Restyle(style)
	}
	b.files.MarkDirty()
}

func (b *Browser) showProgress(done bool) {
	if done && b.done {
		return
	}
	msg := fmt.Sprintf("loading %d/%d", b.snap.Done, b.snap.Expected)
	if done {
		msg = fmt.Sprintf("loaded %d files", b.snap.Expected)
		if n := len(b.snap.Errors); n > 0 {
			msg = fmt.Sprintf("loaded %d, %d failed", b.snap.Expected-n, n)
		}
	}
	bar, err := text.NewLoadingBar(msg, b.notifier.MaxMessageWidth(true), barMessageW, text.BarStyles{
		Text:    b.styles.Text,
		Percent: b.styles.Accent,
		Done:    b.styles.Success,
		Filled:  b.styles.Accent,
		Empty:   b.styles.Muted,
	})
	if err != nil {
		b.log.Debug("progress bar does not fit", "err", err)
		return
	}
	if err := bar.Set(b.snap.Fraction(), ""); err != nil {
		return
	}
	d := pane.Forever
	if done {
		d = noticeTime
	}
	b.notifier.Notify(bar.Line(), d, true, done)
}

// showPreview fills the preview with the file under the cursor.
func (b *Browser) showPreview() {
	cursor := b.files.Cursor()
	if cursor == b.shown {
		return
	}
	b.shown = cursor
	if cursor < 0 || cursor >= len(b.names) {
		b.setPreview(nil)
		return
	}
	name := b.names[cursor]
	if err, ok := b.snap.Errors[name]; ok {
		b.setPreview([]*text.Line{text.Plain(name+": "+cause(err).Error(), b.styles.Danger)})
		return
	}
	lines, ok := b.snap.Data[name]
	if !ok {
		b.setPreview([]*text.Line{text.Plain("loading...", b.styles.Muted)})
		return
	}
	b.setPreview(logtail.ColorizeLines(lines, b.styles))
}

// cause is the innermost error of a wrap chain. The wrappers repeat the file
// path, which the preview already names.
func cause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func (b *Browser) setPreview(rows []*text.Line) {
	if err := b.preview.SetRows(rows); err != nil {
		logx.WithPane(b.log, previewTitle).Warn("preview does not fit", "err", err)
	}
}

// filesPane is the file list. It owns the store hand-off so that all loader
// data enters the UI during the process phase.
type filesPane struct {
	*pane.List
	browser *Browser
}

// Init starts the first load.
func (f *filesPane) Init() error {
	return f.browser.start()
}

func (f *filesPane) Process(now time.Time) {
	f.List.Process(now)
	f.browser.consume()
	f.browser.showPreview()
}
