package scripting

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"Worldsmith/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports script files that changed on disk. Events are buffered by
// fsnotify and drained by Changed, so callers never block.
type Watcher struct {
	w   *fsnotify.Watcher
	dir string
}

func NewWatcher(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{w: w, dir: dir}, nil
}

// Changed returns the names (without extension) of scripts written or
// created since the last call.
func (w *Watcher) Changed() []string {
	seen := make(map[string]bool)
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return sortedKeys(seen)
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(ev.Name) != Extension {
				continue
			}
			seen[strings.TrimSuffix(filepath.Base(ev.Name), Extension)] = true
		case err, ok := <-w.w.Errors:
			if !ok {
				return sortedKeys(seen)
			}
			logger.Log.Warn("script watcher error", zap.String("dir", w.dir), zap.Error(err))
		default:
			return sortedKeys(seen)
		}
	}
}

func (w *Watcher) Close() error {
	return w.w.Close()
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
