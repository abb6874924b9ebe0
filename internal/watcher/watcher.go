// Package watcher reports debounced batches of changed test files.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 300 * time.Millisecond

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("watcher: already started")

// Filter decides which files and directories are watched.
type Filter interface {
	// IsInput reports whether a change to path should be delivered.
	IsInput(rootDir, path string) bool
	// SkipsDir reports whether dir and everything below it is ignored.
	SkipsDir(rootDir, dir string) bool
}

// Watcher monitors a directory tree and delivers changed files in batches.
type Watcher struct {
	watcher  *fsnotify.Watcher
	rootDir  string
	filter   Filter
	debounce time.Duration
	logger   *slog.Logger

	callback func(files []string)
	cancel   context.CancelFunc

	paused   bool
	pausedMu sync.RWMutex

	pending   map[string]bool
	pendingMu sync.Mutex

	timer   *time.Timer
	timerMu sync.Mutex

	startOnce sync.Once
	stopOnce  sync.Once
	doneCh    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher over rootDir. Every directory not skipped by filter
// is watched, including directories created later.
func New(rootDir string, filter Filter, opts ...Option) (*Watcher, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		rootDir:  absRoot,
		filter:   filter,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
		pending:  make(map[string]bool),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(absRoot); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string {
	return w.rootDir
}

// Start delivers batches of changed files to callback until ctx ends or Stop
// is called. Files in a batch are absolute and sorted; a file appears once
// per batch even when it changed several times. Resume may also deliver a
// batch, so callback must be safe for concurrent use.
func (w *Watcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return errors.New("watcher: nil callback")
	}

	err := ErrAlreadyStarted
	w.startOnce.Do(func() {
		w.callback = callback
		var watchCtx context.Context
		watchCtx, w.cancel = context.WithCancel(ctx)
		go w.watch(watchCtx)
		err = nil
	})
	return err
}

// Stop stops watching and releases resources. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		// Blocks a concurrent Start and rules out later ones.
		w.startOnce.Do(func() {})
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

// Pause holds back batches while changes keep accumulating.
func (w *Watcher) Pause() {
	w.pausedMu.Lock()
	defer w.pausedMu.Unlock()
	w.paused = true
}

// Resume delivers batches again, flushing changes that accumulated while paused.
func (w *Watcher) Resume() {
	w.pausedMu.Lock()
	wasPaused := w.paused
	w.paused = false
	w.pausedMu.Unlock()

	if wasPaused {
		w.flush()
	}
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event, fireCh)

		case <-fireCh:
			w.pausedMu.RLock()
			paused := w.paused
			w.pausedMu.RUnlock()
			if !paused {
				w.flush()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, fireCh chan struct{}) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	// Removed files have no outputs left to refresh.
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !w.filter.IsInput(w.rootDir, event.Name) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = true
	w.pendingMu.Unlock()

	w.resetTimer(fireCh)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	files := make([]string, 0, len(w.pending))
	for file := range w.pending {
		files = append(files, file)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	sort.Strings(files)
	w.logger.Debug("delivering changes", "files", len(files))
	w.callback(files)
}

func (w *Watcher) resetTimer(fireCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.logger.Warn("error accessing path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.filter.SkipsDir(w.rootDir, path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}
