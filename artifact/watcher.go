package artifact

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher flags on-disk changes to loaded artifact files. The bundle itself is
// never reloaded: a drifted artifact set means the running process no longer
// matches what is on disk, so the service reports itself degraded until it is
// restarted against the new artifacts.
type Watcher struct {
	watcher *fsnotify.Watcher
	watched map[string]bool
	stale   atomic.Bool
	logger  *zap.Logger
	done    chan struct{}
}

// NewWatcher starts watching the given artifact files.
func NewWatcher(paths Paths, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		watched: make(map[string]bool),
		logger:  logger,
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range []string{paths.Model, paths.Scaler, paths.FeatureNames, paths.Metadata} {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// watch directories, not files: editors and atomic renames would
	// otherwise drop the watch
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	go w.run()
	return w, nil
}

// Stale reports whether any artifact file changed since load.
func (w *Watcher) Stale() bool {
	return w.stale.Load()
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.watched[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				if w.stale.CompareAndSwap(false, true) {
					w.logger.Warn("artifact changed on disk, service degraded until restart",
						zap.String("file", abs),
						zap.String("op", event.Op.String()))
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("artifact watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}
