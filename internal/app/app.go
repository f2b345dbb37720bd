package app

import (
	"context"
	"fmt"

	"pkt.systems/pslog"

	"github.com/five82/tinywin/internal/config"
	"github.com/five82/tinywin/internal/logx"
	"github.com/five82/tinywin/internal/screen"
	"github.com/five82/tinywin/internal/teahost"
	"github.com/five82/tinywin/internal/term"
)

// Options configure the tinywin demo.
type Options struct {
	Config config.Config
	Dir    string // empty browses the working directory
	Logger pslog.Logger
}

// Run browses opts.Dir on the configured backend until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logx.Or(opts.Logger)
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	browser := NewBrowser(ctx, BrowserOptions{
		Dir:     dir,
		Theme:   cfg.Theme,
		Workers: cfg.LoaderWorkers,
		Logger:  log,
		Quit:    cancel,
	})
	defer browser.Close()

	sopts := ScreenOptions(cfg, log)
	log.Info("tinywin start", "backend", cfg.Backend, "dir", dir, "theme", cfg.Theme)
	switch cfg.Backend {
	case config.BackendBubbleTea:
		return teahost.Run(ctx, browser.Build, sopts)
	default:
		return runTcell(ctx, browser.Build, sopts)
	}
}

// ScreenOptions maps the configuration onto the frame loop.
func ScreenOptions(cfg config.Config, log pslog.Logger) screen.Options {
	return screen.Options{
		ProcessRate:    cfg.ProcessRate,
		DrawRate:       cfg.DrawRate,
		ExitKey:        cfg.ExitKey,
		ResizeDebounce: cfg.ResizeDebounceFrames,
		Logger:         log,
	}
}

func runTcell(ctx context.Context, build teahost.BuildFunc, opts screen.Options) error {
	t, err := term.NewTcell()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer t.Close()
	return runScreen(ctx, t, build, opts)
}

func runScreen(ctx context.Context, t term.Terminal, build teahost.BuildFunc, opts screen.Options) error {
	l, err := build(t)
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}
	s := screen.New(t, opts)
	if err := s.Build(l); err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init panes: %w", err)
	}
	return s.Run(ctx)
}
