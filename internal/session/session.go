// Package session is the mutation API of the editor. A Session owns the map
// being edited, its undo history, its selection and its file identity, and
// every change to any of them goes through it.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dshills/grindmap/internal/engine/history"
	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/logging"
	"github.com/dshills/grindmap/internal/selection"
)

// Options configures a Session.
type Options struct {
	// MaxEntries bounds the undo history. Zero means history.DefaultMaxEntries.
	MaxEntries int

	// UndoMode selects exact or clamped height undo.
	UndoMode history.UndoMode

	// Logger receives session events. Nil uses logging.Get().
	Logger *logging.Logger
}

// Session is a single editing session. It is not safe for concurrent use.
type Session struct {
	m       level.Map
	doc     *Document
	history *history.Stack
	sel     *selection.State
	log     *logging.Logger
}

// New creates a session editing an untitled default map.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Get()
	}
	s := &Session{
		history: history.NewStack(opts.MaxEntries, opts.UndoMode),
		sel:     selection.NewState(),
		log:     logger.WithComponent("session"),
	}
	s.NewDocument()
	return s
}

// Map returns the map being edited. Callers must not modify it.
func (s *Session) Map() *level.Map {
	return &s.m
}

// Document returns the file identity of the current map.
func (s *Session) Document() *Document {
	return s.doc
}

// History returns the undo history.
func (s *Session) History() *history.Stack {
	return s.history
}

// Modified reports whether there are unsaved changes.
func (s *Session) Modified() bool {
	return s.doc.IsModified()
}

func (s *Session) docLog() *logging.Logger {
	return s.log.WithField("doc", s.doc.ID.String())
}

// replace swaps in a new map and document, discarding history and selection.
func (s *Session) replace(m level.Map, doc *Document) {
	s.m = m
	s.doc = doc
	s.history.Clear()
	s.sel.Clear()
}

// NewDocument starts an untitled document holding the default map.
func (s *Session) NewDocument() {
	m := level.Default()
	s.replace(m, newDocument("", level.Serialize(&m), m))
	s.docLog().Info("new document")
}

// NewDocumentAt starts a document holding the default map that SaveFile
// will write to path. Nothing is written until then.
func (s *Session) NewDocumentAt(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return newOpError("new", path, err)
	}
	s.NewDocument()
	s.doc.adopt(abs)
	return nil
}

// Open parses text and, on success, makes it the current map as a new
// untitled document. On failure the session is unchanged and the error is a
// *level.ParseError.
func (s *Session) Open(text string) error {
	m, err := level.Parse(text)
	if err != nil {
		return err
	}
	s.replace(m, newDocument("", level.Serialize(&m), m))
	s.docLog().Info("opened map from text")
	return nil
}

// Save serializes the current map.
func (s *Session) Save() string {
	return level.Serialize(&s.m)
}

// PushEdit applies an edit and records it in the history. It returns false
// if the edit changed nothing.
func (s *Session) PushEdit(e history.Edit) bool {
	if !s.history.Push(e, &s.m) {
		s.log.Debug("ignored no-op edit: %s", e.Description())
		return false
	}
	s.log.Debug("%s", e.Description())
	s.refreshModified()
	return true
}

// Undo reverts the most recent edit.
func (s *Session) Undo() bool {
	e, ok := s.history.Peek()
	if !ok || !s.history.Pop(&s.m) {
		return false
	}
	s.log.Debug("undo: %s", e.Description())
	s.refreshModified()
	return true
}

// Redo re-applies the most recently undone edit.
func (s *Session) Redo() bool {
	if !s.history.Redo(&s.m) {
		return false
	}
	if e, ok := s.history.Peek(); ok {
		s.log.Debug("redo: %s", e.Description())
	}
	s.refreshModified()
	return true
}

// AdjustHeight raises or lowers every selected cell by delta.
func (s *Session) AdjustHeight(delta int) bool {
	switch {
	case delta > int(level.MaxHeight)-int(level.MinHeight):
		delta = int(level.MaxHeight) - int(level.MinHeight)
	case delta < int(level.MinHeight)-int(level.MaxHeight):
		delta = int(level.MinHeight) - int(level.MaxHeight)
	}
	return s.PushEdit(history.NewHeightEdit(int8(delta), s.sel.Selected()))
}

// SetPrefab places p on every selected cell.
func (s *Session) SetPrefab(p level.Prefab) bool {
	return s.PushEdit(history.NewPrefabEdit(&s.m, p, s.sel.Selected()))
}

// refreshModified compares the map with the one last loaded or saved, so
// undoing back to the saved state clears the modified flag.
func (s *Session) refreshModified() {
	s.doc.modified = !s.m.Equal(&s.doc.savedMap)
}

// UpdateBoxSelect advances the box-select state machine by one input tick.
func (s *Session) UpdateBoxSelect(in selection.Input) {
	s.sel.Update(in)
}

// SelectionSnapshot returns the flags of every cell.
func (s *Session) SelectionSnapshot() selection.Snapshot {
	return s.sel.Snapshot()
}

// Selected returns the selected cells in row-major order.
func (s *Session) Selected() []level.Point {
	return s.sel.Selected()
}

// SelectAll selects every cell.
func (s *Session) SelectAll() {
	s.sel.SelectAll()
}

// ClearSelection deselects every cell and drops any box in progress.
func (s *Session) ClearSelection() {
	s.sel.Clear()
}

// OpenFile reads and parses path. On failure the session is unchanged.
func (s *Session) OpenFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return newOpError("open", path, err)
	}
	text, err := readFile(abs)
	if err != nil {
		s.log.Warn("open %s failed: %v", abs, err)
		return newOpError("open", abs, err)
	}
	m, err := level.Parse(text)
	if err != nil {
		s.log.Warn("open %s failed: %v", abs, err)
		return newOpError("open", abs, err)
	}

	s.replace(m, newDocument(abs, text, m))
	s.docLog().Info("opened %s", abs)
	return nil
}

// SaveFile writes the map to the document's path. Untitled documents
// return ErrUntitled; callers should ask for a path and use SaveFileAs.
func (s *Session) SaveFile() error {
	if s.doc.IsUntitled() {
		return newOpError("save", "", ErrUntitled)
	}
	return s.saveTo(s.doc.Path)
}

// SaveFileAs writes the map to path and makes it the document's path.
func (s *Session) SaveFileAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return newOpError("save", path, err)
	}
	if err := s.saveTo(abs); err != nil {
		return err
	}
	s.doc.adopt(abs)
	return nil
}

func (s *Session) saveTo(path string) error {
	text := s.Save()
	if err := writeFile(path, text); err != nil {
		s.log.Error("save %s failed: %v", path, err)
		return newOpError("save", path, err)
	}
	s.doc.saved = text
	s.doc.savedMap = s.m
	s.doc.modified = false
	s.docLog().Info("saved %s", path)
	return nil
}

// Reload re-reads the document's file after it changed on disk. It returns
// false without error if the file still holds what was last loaded or saved,
// which filters out the session's own writes. If the document has unsaved
// changes, nothing is reloaded and ErrChangedOnDisk is returned.
func (s *Session) Reload() (bool, error) {
	if s.doc.IsUntitled() {
		return false, nil
	}
	path := s.doc.Path
	text, err := readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.docLog().Warn("%s was removed", path)
		}
		return false, newOpError("reload", path, err)
	}
	if text == s.doc.saved {
		return false, nil
	}
	m, err := level.Parse(text)
	if err != nil {
		return false, newOpError("reload", path, fmt.Errorf("file on disk is not a valid map: %w", err))
	}
	if m.Equal(&s.doc.savedMap) {
		s.doc.saved = text
		return false, nil
	}
	if s.doc.modified {
		return false, newOpError("reload", path, ErrChangedOnDisk)
	}

	id := s.doc.ID
	s.replace(m, newDocument(path, text, m))
	s.doc.ID = id
	s.docLog().Info("reloaded %s", path)
	return true, nil
}
