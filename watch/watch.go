// Package watch regenerates output when contract files change.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/contractgen/errors"
	"github.com/teranos/contractgen/logger"
)

const (
	// DefaultDebounce is how long the watcher waits for edits to settle.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultRate limits regenerations to one per second.
	DefaultRate = rate.Limit(1)
)

// ChangeFunc is called after a debounced change. Errors are logged and the
// watcher keeps running.
type ChangeFunc func(ctx context.Context) error

// Watcher watches a set of contract files.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	onChange ChangeFunc
	debounce time.Duration
	limiter  *rate.Limiter
	log      *zap.SugaredLogger

	// started is closed once every directory is being watched
	started chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is acted on.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithRateLimit sets how often regeneration may run.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(limit, burst)
	}
}

// New creates a watcher for paths. The parent directory of each file is
// watched since editors commonly save by renaming a temp file over the
// contract.
func New(paths []string, onChange ChangeFunc, opts ...Option) *Watcher {
	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		onChange: onChange,
		debounce: DefaultDebounce,
		limiter:  rate.NewLimiter(DefaultRate, 1),
		log:      logger.ComponentLogger("watch"),
		started:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	seenDirs := make(map[string]bool)
	for _, p := range paths {
		abs := absPath(p)
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Run watches until ctx is done. It returns an error only if watching could
// not start.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	close(w.started)
	w.log.Infow("Watching contracts", logger.FieldCount, len(w.files))

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Contract changed", logger.FieldFile, event.Name, "op", event.Op.String())

			// Restart the quiet period on every event
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)

		case <-fire:
			w.regenerate(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.files[absPath(event.Name)]
}

func (w *Watcher) regenerate(ctx context.Context) {
	if err := w.limiter.Wait(ctx); err != nil {
		return
	}

	start := time.Now()
	if err := w.onChange(ctx); err != nil {
		w.log.Errorw("Regeneration failed", logger.FieldError, err)
		return
	}
	w.log.Infow("Regenerated", logger.FieldDurationMS, time.Since(start).Milliseconds())
}
