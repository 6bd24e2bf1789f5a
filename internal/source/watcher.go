package source

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"multicombo/internal/catalog"
	apperrors "multicombo/internal/errors"
)

// DefaultDebounce coalesces bursts of writes into one reload.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a source whenever its file changes and emits the entries
// whose ids have not been seen before. Entries already known, including ones
// later removed from the file, are never emitted again.
type Watcher struct {
	src      Source
	debounce time.Duration

	mu   sync.Mutex
	seen map[string]struct{}

	additions chan []catalog.Entry
	errs      chan error

	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher prepares a watcher for src. known lists the ids already loaded.
func NewWatcher(src Source, known []string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		src:       src,
		debounce:  DefaultDebounce,
		seen:      make(map[string]struct{}, len(known)),
		additions: make(chan []catalog.Entry, 1),
		errs:      make(chan error, 1),
	}
	for _, id := range known {
		w.seen[strings.TrimSpace(id)] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Additions delivers batches of new entries.
func (w *Watcher) Additions() <-chan []catalog.Entry { return w.additions }

// Errors delivers reload and watch failures. Errors are dropped while a
// previous one is still unread.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Start begins watching the directory containing the source file.
// The file is matched by name so editors that replace it on save still work.
func (w *Watcher) Start(ctx context.Context) error {
	if w.fsw != nil {
		return apperrors.New(apperrors.CodeSourceFailed, "watcher already started", nil)
	}
	path := w.src.Path()
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.New(apperrors.CodeSourceFailed, "create file watcher", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return apperrors.New(apperrors.CodeSourceFailed, "watch "+filepath.Dir(path), err)
	}
	ctx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(ctx, filepath.Base(path))
	return nil
}

// Stop ends watching and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	if w.fsw == nil {
		return nil
	}
	w.cancel()
	err := w.fsw.Close()
	<-w.done
	w.fsw = nil
	return err
}

func (w *Watcher) loop(ctx context.Context, base string) {
	defer close(w.done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base || !relevant(ev.Op) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.report(apperrors.New(apperrors.CodeSourceFailed, "file watcher", err))
		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

func (w *Watcher) reload(ctx context.Context) {
	entries, err := w.src.Load(ctx)
	if skipped := Skipped(err); skipped != nil {
		for _, e := range skipped {
			w.report(e)
		}
	} else if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.report(err)
		return
	}
	fresh := w.Unseen(entries)
	if len(fresh) == 0 {
		return
	}
	select {
	case w.additions <- fresh:
	case <-ctx.Done():
	}
}

// Unseen filters entries down to ids not seen before and marks them seen.
// Entries without an id are dropped.
func (w *Watcher) Unseen(entries []catalog.Entry) []catalog.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()

	var fresh []catalog.Entry
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			continue
		}
		if _, ok := w.seen[id]; ok {
			continue
		}
		w.seen[id] = struct{}{}
		fresh = append(fresh, e)
	}
	return fresh
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
