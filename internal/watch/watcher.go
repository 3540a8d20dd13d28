package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"

	"markwright/internal/contextutil"
)

// Debounce intervals for coalescing editor save bursts. A single save often
// arrives as several events within a few milliseconds.
const (
	debounceWait    = 200 * time.Millisecond
	debounceMaxWait = time.Second
)

// Watcher emits a rebuild signal whenever the watched file changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
}

// NewWatcher watches path for modifications. The parent directory is watched
// rather than the file itself: many editors save by writing a temp file and
// renaming it over the original, which orphans a file-level watch.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		path:    path,
		watcher: fsw,
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes returns the channel rebuild signals arrive on. At most one signal
// is pending at a time.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards debounced change events onto Changes until ctx is cancelled.
// Run owns the underlying watcher and closes it before returning.
func (w *Watcher) Run(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	notify, cancel := debounce.NewWithMaxWait(debounceWait, debounceMaxWait, func() {
		select {
		case w.changes <- struct{}{}:
		default:
			// A rebuild signal is already pending
		}
	})
	defer cancel()

	base := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			_ = w.watcher.Close()
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.DebugContext(ctx, "input file changed", "op", event.Op.String(), "file", event.Name)
				notify()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "file watcher error", "error", err)
		}
	}
}
