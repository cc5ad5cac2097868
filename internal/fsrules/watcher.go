package fsrules

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/multierr"
)

const defaultDebounce = 100 * time.Millisecond

// Invalidator is satisfied by gitcore.IgnoreEngine and
// gitcore.AttributesEngine: Watcher calls InvalidateCache on every
// registered engine once rule-file activity settles.
type Invalidator interface {
	InvalidateCache()
}

// Watcher watches a directory tree for .gitignore/.gitattributes
// changes, as well as changes to the repository-local .git/info/exclude
// and .git/info/attributes files, and invalidates a set of engines'
// caches in response, debounced so that a burst of writes collapses
// into a single invalidation.
type Watcher struct {
	root         string
	debounce     time.Duration
	logger       *slog.Logger
	invalidators []Invalidator

	fsw *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a Watcher rooted at root and adds a recursive
// watch over every directory currently beneath it. Directories that
// fail to watch are collected via multierr and returned alongside a
// non-nil *Watcher — a partial watch is still useful, so the caller
// decides whether to treat the error as fatal.
func NewWatcher(root string, logger *slog.Logger, invalidators ...Invalidator) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		root:         root,
		debounce:     defaultDebounce,
		logger:       logger,
		invalidators: invalidators,
		fsw:          fsw,
		ctx:          ctx,
		cancel:       cancel,
	}

	err = w.watchTree(root)
	return w, err
}

// watchTree adds a watch on every directory in the tree rooted at
// root, combining (rather than aborting on) individual failures.
func (w *Watcher) watchTree(root string) error {
	var errs error
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("walking %s: %w", path, err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("watching %s: %w", path, addErr))
		}
		return nil
	})
	if walkErr != nil {
		errs = multierr.Append(errs, walkErr)
	}
	return errs
}

// Start begins the watch loop in a background goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Close stops the watch loop and waits for it to exit.
func (w *Watcher) Close() error {
	w.cancel()
	w.wg.Wait()
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Error("failed to close watcher", "err", err)
		}
	}()

	var debounceTimer *time.Timer

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isRuleFileEvent(event) {
				continue
			}
			w.logger.Debug("rule file change detected", "file", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.invalidateAll)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "err", err)
		}
	}
}

func (w *Watcher) invalidateAll() {
	if w.ctx.Err() != nil {
		return
	}
	for _, inv := range w.invalidators {
		inv.InvalidateCache()
	}
}

// isRuleFileEvent reports whether event touches a file this package
// treats as a rule source: a per-directory .gitignore/.gitattributes,
// or .git/info/exclude and .git/info/attributes (see LoadInfoRuleFile).
func isRuleFileEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	switch filepath.Base(event.Name) {
	case ".gitignore", ".gitattributes":
		return true
	case "exclude", "attributes":
		return filepath.Base(filepath.Dir(event.Name)) == "info"
	default:
		return false
	}
}
