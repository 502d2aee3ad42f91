// Package watcher reports changes to the file open in the editor.
//
// fsnotify watches directories more reliably than single files: editors and
// atomic saves replace a file by renaming over it, which drops a watch on the
// file itself. FileWatcher therefore watches the file's directory and filters
// events down to the one path, coalescing bursts into a single Event.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var (
	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("watcher closed")

	// ErrNotWatching indicates no file is being watched.
	ErrNotWatching = errors.New("not watching")
)

// Op is a set of file operations.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	var parts []string
	if op&OpCreate != 0 {
		parts = append(parts, "create")
	}
	if op&OpWrite != 0 {
		parts = append(parts, "write")
	}
	if op&OpRemove != 0 {
		parts = append(parts, "remove")
	}
	if op&OpRename != 0 {
		parts = append(parts, "rename")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event reports that the watched file changed. Op is the union of every
// operation seen during the debounce window.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// DefaultDelay is the debounce window used when none is given.
const DefaultDelay = 100 * time.Millisecond

// FileWatcher watches a single file.
type FileWatcher struct {
	mu sync.Mutex

	fsw    *fsnotify.Watcher
	delay  time.Duration
	target string // absolute path, empty when not watching
	dir    string

	pending *Event
	timer   *time.Timer
	flush   chan struct{}

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher that coalesces events arriving within delay.
// A non-positive delay means DefaultDelay.
func New(delay time.Duration) (*FileWatcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &FileWatcher{
		fsw:     fsw,
		delay:   delay,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		flush:   make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Watch starts watching path, replacing any previously watched file. The
// file itself need not exist, but its directory must.
func (w *FileWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if dir != w.dir {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		if w.dir != "" {
			_ = w.fsw.Remove(w.dir)
		}
		w.dir = dir
	}
	w.target = abs
	w.dropPending()
	return nil
}

// Unwatch stops watching the current file.
func (w *FileWatcher) Unwatch() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.target == "" {
		return ErrNotWatching
	}
	err := w.fsw.Remove(w.dir)
	w.target, w.dir = "", ""
	w.dropPending()
	return err
}

// Target returns the watched path, or "" when not watching.
func (w *FileWatcher) Target() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

// Events returns the channel of coalesced change events.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.dropPending()
	w.mu.Unlock()

	w.closedWg.Wait()
	err := w.fsw.Close()

	close(w.events)
	close(w.errors)
	return err
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case <-w.flush:
			w.deliver()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.target == "" || filepath.Clean(ev.Name) != w.target {
		return
	}

	if w.pending != nil {
		w.pending.Op |= op
		w.pending.Timestamp = time.Now()
		w.timer.Reset(w.delay)
		return
	}

	w.pending = &Event{Path: w.target, Op: op, Timestamp: time.Now()}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// fire runs on the timer goroutine once the debounce window has passed.
// Only processLoop sends on events, so Close can close the channel safely.
func (w *FileWatcher) fire() {
	select {
	case w.flush <- struct{}{}:
	default:
	}
}

func (w *FileWatcher) deliver() {
	w.mu.Lock()
	if w.pending == nil || w.closed {
		w.mu.Unlock()
		return
	}
	ev := *w.pending
	w.pending, w.timer = nil, nil
	w.mu.Unlock()

	select {
	case w.events <- ev:
	case <-w.closeCh:
	}
}

// dropPending cancels an undelivered event. Callers hold w.mu.
func (w *FileWatcher) dropPending() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending, w.timer = nil, nil
}

// convertOp keeps the operations that can change file content. Chmod is
// dropped.
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
