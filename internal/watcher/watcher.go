// Package watcher detects external changes to the open document.
//
// The watcher observes the document's parent directory so that editors
// which save by rename are still noticed, filters events down to the one
// file, and coalesces bursts of events into a single notification. It only
// notifies; the document is never reloaded implicitly.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event reports a change to the watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op combines every operation seen during the debounce window.
	Op Op

	// Timestamp is when the notification fired.
	Timestamp time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithErrorHandler sets the handler for fsnotify errors.
func WithErrorHandler(h func(error)) Option {
	return func(w *Watcher) {
		w.onError = h
	}
}

// Watcher notifies about external changes to a single file.
type Watcher struct {
	mu sync.Mutex

	fsw     *fsnotify.Watcher
	notify  func(Event)
	onError func(error)
	delay   time.Duration

	path string // absolute path of the watched file
	dir  string // directory registered with fsnotify

	// Debounce state
	timer     *time.Timer
	pendingOp Op

	// Events before ignoreUntil are our own writes.
	ignoreUntil time.Time

	totalEvents atomic.Int64
	totalErrors atomic.Int64

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher that calls notify from its own goroutine.
func New(notify func(Event), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		notify:  notify,
		delay:   100 * time.Millisecond,
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch switches the watcher to path. The file itself need not exist yet,
// but its directory must.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	if dir != w.dir {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		if w.dir != "" {
			_ = w.fsw.Remove(w.dir)
		}
		w.dir = dir
	}
	w.path = absPath
	w.cancelPending()
	return nil
}

// Path returns the watched file, or "" before the first Watch.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// IgnoreFor suppresses notifications for d. Call it before writing the
// file yourself.
func (w *Watcher) IgnoreFor(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignoreUntil = time.Now().Add(d)
	w.cancelPending()
}

// Close stops the watcher. Pending notifications are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.cancelPending()
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.fsw.Close()
}

// Stats reports how many notifications fired and how many errors were seen.
func (w *Watcher) Stats() (events, errs int64) {
	return w.totalEvents.Load(), w.totalErrors.Load()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.totalErrors.Add(1)
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// handleFSEvent filters an fsnotify event and starts or extends the
// debounce window.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.path == "" || filepath.Clean(fsEvent.Name) != w.path {
		return
	}
	if time.Now().Before(w.ignoreUntil) {
		return
	}

	w.pendingOp |= op
	if w.timer != nil {
		w.timer.Reset(w.delay)
		return
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// fire delivers the coalesced notification.
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed || w.pendingOp == 0 {
		w.mu.Unlock()
		return
	}
	ev := Event{Path: w.path, Op: w.pendingOp, Timestamp: time.Now()}
	w.pendingOp = 0
	w.timer = nil
	w.mu.Unlock()

	w.totalEvents.Add(1)
	if w.notify != nil {
		w.notify(ev)
	}
}

// cancelPending drops a notification in its debounce window. Caller holds mu.
func (w *Watcher) cancelPending() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pendingOp = 0
}

// convertOp converts fsnotify.Op to watcher.Op. Permission changes are
// not content changes and map to zero.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
