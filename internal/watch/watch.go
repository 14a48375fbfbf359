// Package watch reports debounced changes to a single report file.
//
// The parent directory is watched rather than the file itself so that
// editors and analyzers which replace the file (write to a temp file, then
// rename) keep triggering events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 200 * time.Millisecond

var (
	// ErrPathNotExist indicates the watched report does not exist.
	ErrPathNotExist = errors.New("watch path does not exist")

	// ErrPathIsDirectory indicates the watched path is a directory.
	ErrPathIsDirectory = errors.New("watch path is a directory")
)

// Op is the kind of change observed.
type Op int

const (
	OpWrite Op = iota
	OpCreate
	OpRemove
	OpRename
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "write"
	}
}

// Event is one debounced change to the report.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Config configures a Watcher.
type Config struct {
	// Path is the report file to watch.
	Path     string
	Debounce time.Duration
}

// Watcher emits an Event once the report has been quiet for the debounce
// interval.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   logger.Logger

	mu       sync.Mutex
	timer    *time.Timer
	last     Op
	eventCh  chan Event
	stopOnce sync.Once
	stopped  bool
}

// New validates cfg and creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	info, err := os.Stat(cfg.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotExist, cfg.Path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPathIsDirectory, cfg.Path)
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		debounce: cfg.Debounce,
		watcher:  fw,
		logger:   logger.Default(),
	}, nil
}

// WithLogger sets the logger for dropped and failed events.
func (w *Watcher) WithLogger(log logger.Logger) *Watcher {
	w.logger = log
	return w
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The returned channel holds at most one pending
// event and is closed when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) (<-chan Event, error) {
	w.eventCh = make(chan Event, 1)

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		close(w.eventCh)
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	go w.loop(ctx)
	return w.eventCh, nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.cleanup()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", logger.F("error", err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		// chmod only
		return
	}

	w.schedule(op)
}

// schedule restarts the debounce timer; the last op in a burst wins.
func (w *Watcher) schedule(op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	w.last = op
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.emit)
}

func (w *Watcher) emit() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.timer = nil

	event := Event{Path: w.path, Op: w.last, Time: time.Now()}
	select {
	case w.eventCh <- event:
	default:
		// a rebuild is already queued and will read the latest file
		w.logger.Debug("Coalesced change", logger.F("path", w.path), logger.F("op", event.Op))
	}
}

// Stop stops watching and closes the event channel. Safe to call more than
// once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()

		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) cleanup() {
	_ = w.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	close(w.eventCh)
}
