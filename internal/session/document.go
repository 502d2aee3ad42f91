package session

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/grindmap/internal/level"
)

// Untitled is the display name of a document that has never been saved.
const Untitled = "Untitled"

// Document is the file identity of the map being edited.
type Document struct {
	// Path is the absolute file path (empty for untitled documents).
	Path string

	// Name is the display name (file name or "Untitled").
	Name string

	// ID identifies the document in logs. It changes whenever a different
	// document is opened or created.
	ID uuid.UUID

	modified bool

	// saved is the text last read from or written to Path, and savedMap
	// the map it holds.
	saved    string
	savedMap level.Map
}

func newDocument(path, saved string, m level.Map) *Document {
	name := Untitled
	if path != "" {
		name = filepath.Base(path)
	}
	return &Document{
		Path:     path,
		Name:     name,
		ID:       uuid.New(),
		saved:    saved,
		savedMap: m,
	}
}

// IsModified reports whether the map differs from what was last loaded or saved.
func (d *Document) IsModified() bool {
	return d.modified
}

// IsUntitled reports whether the document has no file path.
func (d *Document) IsUntitled() bool {
	return d.Path == ""
}

func (d *Document) adopt(path string) {
	d.Path = path
	d.Name = filepath.Base(path)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeFile replaces path atomically by writing a sibling temp file and
// renaming it over the target. An existing file keeps its permissions.
func writeFile(path, content string) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
