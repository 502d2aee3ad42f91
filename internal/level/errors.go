package level

import (
	"bytes"
	"errors"
	"fmt"
)

// Parse error kinds. Match them with errors.Is on a *ParseError.
var (
	ErrBadHeight        = errors.New("malformed height")
	ErrBadPrefab        = errors.New("unknown prefab")
	ErrRowCount         = errors.New("wrong row count")
	ErrColumnCount      = errors.New("wrong column count")
	ErrMissingSeparator = errors.New("missing grid separator")
	ErrTrailingData     = errors.New("trailing data")
)

// ParseError reports where and why map text failed to parse.
type ParseError struct {
	Kind   error  // One of the Err* kinds above
	Offset int    // Byte offset into the input (0-based)
	Line   int    // Line number (1-based)
	Column int    // Byte column (1-based)
	Msg    string // Detail
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %v: %s", e.Line, e.Column, e.Kind, e.Msg)
	}
	return fmt.Sprintf("offset %d: %v: %s", e.Offset, e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// cellError builds an error relative to the start of a single cell.
// The grid scanner rebases it onto the full input.
func cellError(kind error, at int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:   kind,
		Offset: at,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// locate fills Line and Column from Offset.
func (e *ParseError) locate(src []byte) {
	off := min(e.Offset, len(src))
	before := src[:off]
	e.Line = bytes.Count(before, []byte{'\n'}) + 1
	e.Column = off - (bytes.LastIndexByte(before, '\n') + 1) + 1
}
