package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"

	"github.com/five82/tinywin/internal/logtail"
	"github.com/five82/tinywin/internal/logx"
	"github.com/five82/tinywin/internal/state"
)

const (
	defaultWorkers   = 4
	defaultTailLines = 400
)

// Loader reads file tails into a store from background workers.
type Loader struct {
	store    *state.Store[string, []string]
	workers  int
	maxLines int
	log      pslog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoader returns a loader filling store with at most workers concurrent
// reads of maxLines each.
func NewLoader(store *state.Store[string, []string], workers, maxLines int, log pslog.Logger) *Loader {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if maxLines <= 0 {
		maxLines = defaultTailLines
	}
	return &Loader{
		store:    store,
		workers:  workers,
		maxLines: maxLines,
		log:      logx.Or(log),
	}
}

// Start lists the regular files of dir, resets the store to expect them and
// loads them in the background. A load still running from an earlier Start is
// cancelled and waited for first, so its results never reach the store.
func (l *Loader) Start(ctx context.Context, dir string) ([]string, error) {
	l.Stop()

	names, err := listFiles(dir)
	if err != nil {
		return nil, err
	}
	l.store.Reset(len(names))

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.mu.Lock()
	l.cancel = cancel
	l.done = done
	l.mu.Unlock()

	go func() {
		defer close(done)
		l.run(ctx, dir, names)
	}()
	return names, nil
}

func (l *Loader) run(ctx context.Context, dir string, names []string) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := logtail.Tail(ctx, filepath.Join(dir, name), l.maxLines)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				l.log.Warn("load file failed", "file", name, "err", err)
				l.store.Fail(name, err)
				return nil
			}
			l.store.Put(name, lines)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.log.Debug("load cancelled", "dir", dir, "err", err)
		return
	}
	l.log.Info("load finished", "dir", dir, "files", len(names), "elapsed", time.Since(start))
}

// Stop cancels the running load, if any, and waits for its workers.
func (l *Loader) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the running load finishes or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
