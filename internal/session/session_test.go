package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/grindmap/internal/engine/history"
	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/selection"
)

func newTestSession() *Session {
	return New(Options{})
}

// drag runs a full press, move and release over the grid.
func drag(s *Session, from, to level.Point, extend bool) {
	var tr selection.Tracker
	s.UpdateBoxSelect(tr.Next(from, true, true, false))
	s.UpdateBoxSelect(tr.Next(to, true, true, false))
	s.UpdateBoxSelect(tr.Next(to, true, false, extend))
}

func pts(ps ...level.Point) []level.Point { return ps }

func TestNewSessionIsUntitledDefault(t *testing.T) {
	s := newTestSession()
	def := level.Default()

	assert.True(t, s.Map().Equal(&def))
	assert.True(t, s.Document().IsUntitled())
	assert.Equal(t, Untitled, s.Document().Name)
	assert.False(t, s.Modified())
	assert.Equal(t, history.DefaultMaxEntries, s.History().MaxEntries())
}

func TestPushEditMarksModified(t *testing.T) {
	s := newTestSession()
	p := level.Point{X: 3, Y: 4}

	require.True(t, s.PushEdit(history.NewHeightEdit(2, pts(p))))
	h, _ := s.Map().HeightAt(p)
	assert.Equal(t, level.Height(2), h)
	assert.True(t, s.Modified())

	require.True(t, s.Undo())
	assert.False(t, s.Modified(), "undoing to the saved state clears modified")

	require.True(t, s.Redo())
	assert.True(t, s.Modified())
}

func TestNoOpEditIsNotRecorded(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.PushEdit(history.NewHeightEdit(0, pts(level.Point{}))))
	assert.False(t, s.SetPrefab(level.PrefabMelee), "nothing selected")
	assert.Equal(t, 0, s.History().Len())
	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
}

func TestTwiceThenUndo(t *testing.T) {
	s := newTestSession()
	p := level.Point{X: 0, Y: 0}
	s.sel.SetSelected(p, true)

	require.True(t, s.AdjustHeight(1))
	require.True(t, s.AdjustHeight(1))
	require.True(t, s.Undo())

	h, _ := s.Map().HeightAt(p)
	assert.Equal(t, level.Height(1), h)
}

func TestAdjustHeightLimitsDelta(t *testing.T) {
	s := newTestSession()
	s.SelectAll()

	require.True(t, s.AdjustHeight(1000))
	h, _ := s.Map().HeightAt(level.Point{X: 15, Y: 15})
	assert.Equal(t, level.MaxHeight, h)

	require.True(t, s.AdjustHeight(-1000))
	h, _ = s.Map().HeightAt(level.Point{X: 15, Y: 15})
	assert.Equal(t, level.MinHeight, h)
}

func TestDragSelectThenSetPrefab(t *testing.T) {
	s := newTestSession()
	drag(s, level.Point{X: 2, Y: 2}, level.Point{X: 5, Y: 5}, false)
	require.Len(t, s.Selected(), 16)

	require.True(t, s.SetPrefab(level.PrefabStairs))
	count := 0
	s.Map().Prefabs.Each(func(x, y int, v level.Prefab) {
		if v == level.PrefabStairs {
			count++
			assert.True(t, selection.IsInsideBox(level.Point{X: x, Y: y}, level.Point{X: 2, Y: 2}, level.Point{X: 5, Y: 5}))
		}
	})
	assert.Equal(t, 16, count)
	assert.False(t, s.SetPrefab(level.PrefabStairs), "same prefab again is a no-op")

	snap := s.SelectionSnapshot()
	f, ok := snap.At(3, 3)
	require.True(t, ok)
	assert.True(t, f.Selected)

	s.ClearSelection()
	assert.Empty(t, s.Selected())
}

func TestOpenTextFailureLeavesStateUntouched(t *testing.T) {
	s := newTestSession()
	s.SelectAll()
	require.True(t, s.AdjustHeight(3))
	before := *s.Map()
	doc := s.Document()

	err := s.Open("not a map")
	require.Error(t, err)
	var pe *level.ParseError
	assert.ErrorAs(t, err, &pe)

	assert.True(t, s.Map().Equal(&before))
	assert.Same(t, doc, s.Document())
	assert.Equal(t, 1, s.History().Len())
	assert.Len(t, s.Selected(), level.Size*level.Size)
}

func TestOpenTextReplacesState(t *testing.T) {
	s := newTestSession()
	s.SelectAll()
	require.True(t, s.AdjustHeight(3))
	text := s.Save()

	s.NewDocument()
	require.NoError(t, s.Open(text))

	h, _ := s.Map().HeightAt(level.Point{X: 7, Y: 7})
	assert.Equal(t, level.Height(3), h)
	assert.Equal(t, 0, s.History().Len())
	assert.Empty(t, s.Selected())
	assert.False(t, s.Modified())
	assert.Equal(t, text, s.Save())
}

func TestNewDocumentResets(t *testing.T) {
	s := newTestSession()
	s.SelectAll()
	require.True(t, s.AdjustHeight(1))
	oldID := s.Document().ID

	s.NewDocument()
	def := level.Default()
	assert.True(t, s.Map().Equal(&def))
	assert.Equal(t, 0, s.History().Len())
	assert.False(t, s.History().CanRedo())
	assert.Empty(t, s.Selected())
	assert.NotEqual(t, oldID, s.Document().ID)
}

func TestSaveUntitledFails(t *testing.T) {
	s := newTestSession()
	err := s.SaveFile()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUntitled)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "save", opErr.Op)
}

func TestSaveAsThenOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.cgp")

	s := newTestSession()
	s.SelectAll()
	require.True(t, s.AdjustHeight(-12))
	require.True(t, s.SetPrefab(level.PrefabJumpPad))
	require.True(t, s.Modified())

	require.NoError(t, s.SaveFileAs(path))
	assert.False(t, s.Modified())
	assert.Equal(t, path, s.Document().Path)
	assert.Equal(t, "arena.cgp", s.Document().Name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Save(), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")

	other := newTestSession()
	require.NoError(t, other.OpenFile(path))
	assert.True(t, other.Map().Equal(s.Map()))
	assert.False(t, other.Modified())
	assert.Equal(t, path, other.Document().Path)
}

func TestSaveFileKeepsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.cgp")
	require.NoError(t, os.WriteFile(path, []byte(level.Serialize(&level.Map{})), 0o600))

	s := newTestSession()
	require.NoError(t, s.OpenFile(path))
	s.SelectAll()
	require.True(t, s.AdjustHeight(1))
	require.NoError(t, s.SaveFile())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOpenFileAcceptsTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.cgp")
	m := level.Default()
	require.NoError(t, os.WriteFile(path, []byte(level.Serialize(&m)+"\n"), 0o644))

	s := newTestSession()
	require.NoError(t, s.OpenFile(path))
	assert.False(t, s.Modified())
}

func TestOpenFileErrors(t *testing.T) {
	dir := t.TempDir()
	s := newTestSession()
	s.SelectAll()
	require.True(t, s.AdjustHeight(5))
	before := *s.Map()

	err := s.OpenFile(filepath.Join(dir, "missing.cgp"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	bad := filepath.Join(dir, "bad.cgp")
	require.NoError(t, os.WriteFile(bad, []byte(strings.Repeat("0", 16)), 0o644))
	err = s.OpenFile(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, level.ErrRowCount)
	assert.Contains(t, err.Error(), "open "+bad)

	assert.True(t, s.Map().Equal(&before))
	assert.Equal(t, 1, s.History().Len())
	assert.True(t, s.Document().IsUntitled())
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.cgp")
	m := level.Default()
	require.NoError(t, os.WriteFile(path, []byte(level.Serialize(&m)), 0o644))

	s := newTestSession()
	require.NoError(t, s.OpenFile(path))
	id := s.Document().ID

	changed, err := s.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged file is not reloaded")

	m.Heights.Set(1, 1, 9)
	require.NoError(t, os.WriteFile(path, []byte(level.Serialize(&m)), 0o644))
	changed, err = s.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	h, _ := s.Map().HeightAt(level.Point{X: 1, Y: 1})
	assert.Equal(t, level.Height(9), h)
	assert.Equal(t, id, s.Document().ID)

	// Unsaved changes are never overwritten.
	s.SelectAll()
	require.True(t, s.AdjustHeight(1))
	m.Heights.Set(2, 2, 4)
	require.NoError(t, os.WriteFile(path, []byte(level.Serialize(&m)), 0o644))
	changed, err = s.Reload()
	assert.False(t, changed)
	assert.ErrorIs(t, err, ErrChangedOnDisk)
	assert.True(t, s.Modified())
}

func TestReloadIgnoresOwnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.cgp")
	s := newTestSession()
	s.SelectAll()
	require.True(t, s.AdjustHeight(2))
	require.NoError(t, s.SaveFileAs(path))

	changed, err := s.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, s.History().Len(), "history survives an ignored reload")
}

func TestReloadRemovedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.cgp")
	s := newTestSession()
	require.NoError(t, s.SaveFileAs(path))
	require.NoError(t, os.Remove(path))

	_, err := s.Reload()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOperationErrorFormatting(t *testing.T) {
	err := newOpError("save", "/tmp/x", errors.New("disk full"))
	assert.Equal(t, "save /tmp/x: disk full", err.Error())
	assert.Equal(t, "save", newOpError("save", "", nil).Error())

	var nilErr *OperationError
	assert.Equal(t, "", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
	assert.True(t, errors.Is(err, err))
}

func TestNewDocumentAtSavesToPath(t *testing.T) {
	s := newTestSession()
	path := filepath.Join(t.TempDir(), "fresh.map")

	require.NoError(t, s.NewDocumentAt(path))
	assert.False(t, s.Document().IsUntitled())
	assert.Equal(t, "fresh.map", s.Document().Name)
	assert.False(t, s.Modified())
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	s.SelectAll()
	require.True(t, s.AdjustHeight(2))
	require.NoError(t, s.SaveFile())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Save(), string(data))
}
