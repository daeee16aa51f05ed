package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	tt "github.com/scrublabs/tscrub/internal/types"
	"go.uber.org/zap"
)

// Watcher re-runs the engine on files as they change on disk.
type Watcher struct {
	engine     *Engine
	logger     *zap.Logger
	watcher    *fsnotify.Watcher
	watchDirs  []string
	write      bool
	isWatching atomic.Bool
}

// NewWatcher creates a watcher over the given directories. When write is
// true, changed files are rewritten in place; otherwise changes are only
// reported.
func NewWatcher(engine *Engine, logger *zap.Logger, dirs []string, write bool) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}
	return &Watcher{
		engine:    engine,
		logger:    logger,
		watcher:   fsWatcher,
		watchDirs: dirs,
		write:     write,
	}, nil
}

func (w *Watcher) StartWatching() error {
	if w.isWatching.Load() {
		return fmt.Errorf("already watching")
	}

	for _, dir := range w.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.isWatching.Store(true)
	go w.watchLoop()
	return nil
}

func (w *Watcher) StopWatching() error {
	w.isWatching.Store(false)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching.Load() {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".go") {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)

	output, changes, err := w.engine.Run(event.Name)
	if err != nil {
		w.logger.Error("error processing file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.reportChanges(event.Name, changes)

	if w.write && len(changes) > 0 {
		if err := os.WriteFile(event.Name, output, 0o644); err != nil {
			w.logger.Error("error writing file", zap.String("file", event.Name), zap.Error(err))
		}
	}
}

func (w *Watcher) reportChanges(filename string, changes []tt.Change) {
	if len(changes) == 0 {
		w.logger.Info("no matching literals", zap.String("file", filename))
		return
	}

	w.logger.Info("rewrote literals", zap.String("file", filename), zap.Int("count", len(changes)))
	for _, change := range changes {
		w.logger.Info("literal changed",
			zap.Int("line", change.Start.Line),
			zap.String("old", change.Old),
			zap.String("new", change.New),
		)
	}
}
