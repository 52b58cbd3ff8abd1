package prefabs

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is how long the watched directories must stay still before a
// burst of edits is reported.
const DefaultQuiet = 150 * time.Millisecond

// Change is one settled burst of edits to spec or level files.
type Change struct {
	Paths  []string
	Specs  bool
	Levels bool
}

// note records ev if it touches a spec or level file and reports whether it
// did.
func (c *Change) note(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml":
		c.Specs = true
	case ".json":
		c.Levels = true
	default:
		return false
	}
	if !slices.Contains(c.Paths, ev.Name) {
		c.Paths = append(c.Paths, ev.Name)
	}
	return true
}

// Watcher batches edits under the given directories so a running session can
// reload once per save rather than once per write.
type Watcher struct {
	fs      *fsnotify.Watcher
	quiet   time.Duration
	changes chan Change
	errs    chan error
	cancel  context.CancelFunc
	exited  chan struct{}
	close   func() error
}

func NewWatcher(quiet time.Duration, dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fs:      fs,
		quiet:   quiet,
		changes: make(chan Change, 4),
		errs:    make(chan error, 1),
		cancel:  cancel,
		exited:  make(chan struct{}),
	}
	w.close = sync.OnceValue(func() error {
		w.cancel()
		err := w.fs.Close()
		<-w.exited
		return err
	})
	go w.loop(ctx)
	return w, nil
}

// Changes is closed once the watcher stops.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Errors carries the most recent unread backend error. Older ones are dropped.
func (w *Watcher) Errors() <-chan error { return w.errs }

func (w *Watcher) Close() error { return w.close() }

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.exited)
	defer close(w.errs)
	defer close(w.changes)

	var (
		pending Change
		timer   *time.Timer
		settled <-chan time.Time
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
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !pending.note(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.quiet)
			} else {
				timer.Reset(w.quiet)
			}
			settled = timer.C
		case <-settled:
			settled = nil
			select {
			case w.changes <- pending:
			case <-ctx.Done():
				return
			}
			pending = Change{}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}
