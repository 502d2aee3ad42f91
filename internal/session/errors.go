package session

import (
	"errors"
	"fmt"
)

var (
	// ErrUntitled indicates a save was requested for a document with no path.
	ErrUntitled = errors.New("document has no file name")

	// ErrChangedOnDisk indicates the file changed on disk while the document
	// had unsaved changes, so it was not reloaded.
	ErrChangedOnDisk = errors.New("file changed on disk")
)

// OperationError is a failed file operation.
type OperationError struct {
	Op     string // "open", "save", "reload"
	Target string // File path
	Err    error
}

func newOpError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the same wrapper instance or anything the wrapped error matches.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
