package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SheetSuffix marks files the watcher cares about.
const SheetSuffix = ".calc"

// ChangeEvent represents a single filesystem change to a sheet.
type ChangeEvent struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches a directory tree for sheet changes and emits debounced batches.
type Watcher struct {
	rootPath string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a Watcher that recursively watches rootPath for
// sheet changes. Hidden directories are skipped.
func NewWatcher(rootPath string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		rootPath: rootPath,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
	}

	if err := w.addDirs(); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

func (w *Watcher) addDirs() error {
	return filepath.WalkDir(w.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.rootPath && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// Run reads fsnotify events, keeps the ones for sheets, debounces rapid
// edits and sends batched ChangeEvents to out. It blocks until ctx is
// cancelled or the fsnotify channels close.
func (w *Watcher) Run(ctx context.Context, out chan<- []ChangeEvent) error {
	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if accept(ev) {
				pending[ev.Name] |= ev.Op
				timer.Reset(w.debounce)
			}
			if ev.Op&fsnotify.Create != 0 {
				w.maybeAddDir(ev.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("fsnotify error", "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]ChangeEvent, 0, len(pending))
			for p, op := range pending {
				batch = append(batch, ChangeEvent{Path: p, Op: op})
			}
			pending = make(map[string]fsnotify.Op)

			select {
			case out <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close shuts down the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func accept(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, SheetSuffix) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) maybeAddDir(path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Debug("could not add to watch", "path", path, "err", err)
	}
}
