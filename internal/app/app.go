// Package app wires the editor together: it owns the editing session, the
// terminal view and the file watcher, turns terminal events into commands,
// and runs the event loop.
//
// Input handlers never touch the session directly. They append Commands to
// an in-process queue, which is drained in order after every event, and the
// screen is redrawn once the queue is empty.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/dshills/grindmap/internal/config"
	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/logging"
	"github.com/dshills/grindmap/internal/renderer"
	"github.com/dshills/grindmap/internal/renderer/backend"
	"github.com/dshills/grindmap/internal/renderer/statusline"
	"github.com/dshills/grindmap/internal/selection"
	"github.com/dshills/grindmap/internal/session"
	"github.com/dshills/grindmap/internal/watcher"
)

// Options configures the application.
type Options struct {
	// Config holds the settings. Nil means config.Default().
	Config *config.Config

	// File is opened on startup. A missing file starts a new map that will
	// be saved there.
	File string

	// Logger receives application logs. Nil uses logging.Get().
	Logger *logging.Logger
}

// Application is the editor.
type Application struct {
	mu sync.Mutex

	cfg     *config.Config
	log     *logging.Logger
	session *session.Session
	watcher *watcher.FileWatcher

	backend backend.Backend
	view    *renderer.View

	tracker   selection.Tracker
	hover     level.Point
	hovering  bool
	queue     []Command
	prompt    *prompt
	quitArmed bool

	// pending status message set before the view exists
	startupMsg     string
	startupMsgType statusline.MessageType

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	pumpWg   sync.WaitGroup
}

// interrupt payloads
type (
	fileChanged struct{ event watcher.Event }
	quitRequest struct{} // wakes PollEvent after Shutdown
)

// New creates an application.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Get()
	}

	app := &Application{
		cfg:  cfg,
		log:  logger.WithComponent("app"),
		done: make(chan struct{}),
		session: session.New(session.Options{
			MaxEntries: cfg.History.MaxEntries,
			UndoMode:   cfg.UndoMode(),
			Logger:     logger,
		}),
	}

	if cfg.Editor.WatchFiles {
		w, err := watcher.New(watcher.DefaultDelay)
		if err != nil {
			// Editing works without reload-on-change.
			app.log.Warn("file watching disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	if opts.File != "" {
		app.openStartupFile(opts.File)
	}
	return app, nil
}

func (app *Application) openStartupFile(path string) {
	err := app.session.OpenFile(path)
	switch {
	case err == nil:
		app.watch()
		app.startupMsg = "Opened " + app.session.Document().Name
		app.startupMsgType = statusline.MessageInfo
	case errors.Is(err, fs.ErrNotExist):
		if err := app.session.NewDocumentAt(path); err != nil {
			app.startupMsg = err.Error()
			app.startupMsgType = statusline.MessageError
			return
		}
		app.watch()
		app.startupMsg = fmt.Sprintf("New map: %s will be created on save", app.session.Document().Name)
		app.startupMsgType = statusline.MessageInfo
	default:
		app.startupMsg = err.Error()
		app.startupMsgType = statusline.MessageError
	}
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Session returns the editing session.
func (app *Application) Session() *session.Session {
	return app.session
}

// View returns the view, or nil before the backend is initialized.
func (app *Application) View() *renderer.View {
	return app.view
}

// Dispatch queues a command. It is executed when the queue is next drained.
func (app *Application) Dispatch(cmd Command) {
	app.queue = append(app.queue, cmd)
}

// Run initializes the backend and processes events until the user quits or
// Shutdown is called. A user quit returns ErrQuit; Shutdown makes it return
// nil.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.start(); err != nil {
		return err
	}
	defer app.stop()

	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		ev := app.backend.PollEvent()
		if err := app.HandleEvent(ev); err != nil {
			return err
		}
	}
}

// start brings up the backend and view and draws the first frame.
func (app *Application) start() error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	if app.cfg.UI.Mouse {
		b.EnableMouse()
	}
	app.view = renderer.New(b, renderer.Options{CellWidth: app.cfg.UI.CellWidth})
	if app.startupMsg != "" {
		app.view.Status().SetMessage(app.startupMsg, app.startupMsgType)
	}

	if app.watcher != nil {
		app.pumpWg.Add(1)
		go app.pumpWatcher(b)
	}

	app.log.Info("started")
	app.redraw()
	return nil
}

// stop releases the watcher and the terminal.
func (app *Application) stop() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.pumpWg.Wait()
	}
	app.backend.Shutdown()
	app.log.Info("stopped")
}

// pumpWatcher forwards file changes to the event loop as interrupts, so the
// session is only ever touched from the loop.
func (app *Application) pumpWatcher(b backend.Backend) {
	defer app.pumpWg.Done()
	events, errs := app.watcher.Events(), app.watcher.Errors()
	for events != nil || errs != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: fileChanged{event: ev}})
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			app.log.Warn("file watcher: %v", err)
		}
	}
}

// Shutdown asks a running event loop to return. It is safe to call from any
// goroutine and more than once.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
		app.mu.Lock()
		b := app.backend
		app.mu.Unlock()
		if b != nil && app.running.Load() {
			b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
		}
	})
}

// Close releases resources held by an application that never ran.
func (app *Application) Close() error {
	if app.running.Load() || app.watcher == nil {
		return nil
	}
	return app.watcher.Close()
}

// IsRunning returns true while Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// HandleEvent processes one terminal event, drains the command queue and
// redraws. It returns ErrQuit when the user quits.
func (app *Application) HandleEvent(ev backend.Event) error {
	err := app.handleBackendEvent(ev)
	if err == nil {
		err = app.drain()
	}
	if err != nil {
		if errors.Is(err, ErrQuit) {
			app.log.Info("quit")
		}
		return err
	}
	app.redraw()
	return nil
}

// drain executes queued commands in order. Commands queued while draining
// run in the same pass.
func (app *Application) drain() error {
	for len(app.queue) > 0 {
		cmd := app.queue[0]
		app.queue = app.queue[1:]
		if err := app.execute(cmd); err != nil {
			app.queue = nil
			return err
		}
	}
	app.queue = nil
	return nil
}

// watch points the file watcher at the current document.
func (app *Application) watch() {
	if app.watcher == nil {
		return
	}
	doc := app.session.Document()
	if doc.IsUntitled() {
		_ = app.watcher.Unwatch()
		return
	}
	if err := app.watcher.Watch(doc.Path); err != nil {
		app.log.Warn("cannot watch %s: %v", doc.Path, err)
	}
}

func (app *Application) redraw() {
	if app.view == nil {
		return
	}
	doc := app.session.Document()
	status := app.view.Status()
	status.SetFilename(doc.Name)
	status.SetModified(doc.IsModified())
	status.SetInfo(app.statusInfo())
	if app.prompt != nil {
		status.SetPrompt(app.prompt.label, app.prompt.text(), app.prompt.cursor)
	} else {
		status.ClearPrompt()
	}

	snap := app.session.SelectionSnapshot()
	app.view.Draw(app.session.Map(), &snap)
}

// statusInfo describes the hovered cell and the edit state.
func (app *Application) statusInfo() string {
	h := app.session.History()
	info := fmt.Sprintf("sel %d  undo %d  redo %d", len(app.session.Selected()), h.Len(), h.RedoLen())
	if app.hovering {
		m := app.session.Map()
		height, _ := m.HeightAt(app.hover)
		prefab, _ := m.PrefabAt(app.hover)
		info = fmt.Sprintf("(%d,%d) h=%d %s  %s", app.hover.X, app.hover.Y, height, prefab, info)
	}
	return info
}

func (app *Application) setMessage(msg string, t statusline.MessageType) {
	if app.view != nil {
		app.view.Status().SetMessage(msg, t)
	}
}

func (app *Application) info(format string, args ...any) {
	app.setMessage(fmt.Sprintf(format, args...), statusline.MessageInfo)
}

func (app *Application) warn(format string, args ...any) {
	app.setMessage(fmt.Sprintf(format, args...), statusline.MessageWarning)
}

func (app *Application) fail(err error) {
	app.setMessage(err.Error(), statusline.MessageError)
	if app.view != nil {
		app.backend.Beep()
	}
}
