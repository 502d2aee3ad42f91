package history

import (
	"github.com/dshills/grindmap/internal/level"
)

// DefaultMaxEntries is the undo capacity used when none is configured.
const DefaultMaxEntries = 500

// UndoMode selects how height edits are reverted.
type UndoMode uint8

const (
	// UndoExact restores the heights recorded when the edit was applied.
	UndoExact UndoMode = iota
	// UndoClamped subtracts the delta and clamps again.
	UndoClamped
)

func (m UndoMode) String() string {
	if m == UndoClamped {
		return "clamped"
	}
	return "exact"
}

// Stack is a bounded undo log of applied edits with a redo list.
// It is owned by a single editing session and is not safe for concurrent use.
type Stack struct {
	undoStack []*Edit
	redoStack []*Edit

	maxEntries int
	mode       UndoMode
}

// NewStack creates an empty stack holding at most maxEntries edits.
func NewStack(maxEntries int, mode UndoMode) *Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack{
		maxEntries: maxEntries,
		mode:       mode,
	}
}

// Push applies e to m and records it. No-op edits are dropped and false is
// returned. A recorded edit clears the redo list, and the oldest entry is
// evicted if the stack is full.
func (s *Stack) Push(e Edit, m *level.Map) bool {
	entry := e.clone()
	if !entry.Apply(m) {
		return false
	}

	s.redoStack = nil
	s.record(entry)
	return true
}

// record appends an applied edit, evicting from the front when full.
func (s *Stack) record(e *Edit) {
	if len(s.undoStack) >= s.maxEntries {
		excess := len(s.undoStack) - s.maxEntries + 1
		clear(s.undoStack[:excess])
		s.undoStack = s.undoStack[excess:]
	}
	s.undoStack = append(s.undoStack, e)
}

// Pop reverts the most recent edit and moves it to the redo list.
// It returns false when there is nothing to undo.
func (s *Stack) Pop(m *level.Map) bool {
	if len(s.undoStack) == 0 {
		return false
	}

	last := len(s.undoStack) - 1
	entry := s.undoStack[last]
	s.undoStack[last] = nil
	s.undoStack = s.undoStack[:last]

	if s.mode == UndoClamped {
		entry.UndoClamped(m)
	} else {
		entry.Undo(m)
	}

	s.redoStack = append(s.redoStack, entry)
	return true
}

// Redo re-applies the most recently undone edit.
// It returns false when there is nothing to redo.
func (s *Stack) Redo(m *level.Map) bool {
	if len(s.redoStack) == 0 {
		return false
	}

	last := len(s.redoStack) - 1
	entry := s.redoStack[last]
	s.redoStack[last] = nil
	s.redoStack = s.redoStack[:last]

	if !entry.Apply(m) {
		return false
	}
	s.record(entry)
	return true
}

// Len returns the number of edits that can be undone.
func (s *Stack) Len() int {
	return len(s.undoStack)
}

// RedoLen returns the number of edits that can be redone.
func (s *Stack) RedoLen() int {
	return len(s.redoStack)
}

// CanUndo returns true if undo is available.
func (s *Stack) CanUndo() bool {
	return len(s.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (s *Stack) CanRedo() bool {
	return len(s.redoStack) > 0
}

// Peek returns the edit that Pop would revert.
func (s *Stack) Peek() (Edit, bool) {
	if len(s.undoStack) == 0 {
		return Edit{}, false
	}
	return *s.undoStack[len(s.undoStack)-1].clone(), true
}

// Clear drops all undo and redo entries.
func (s *Stack) Clear() {
	s.undoStack = nil
	s.redoStack = nil
}

// MaxEntries returns the capacity.
func (s *Stack) MaxEntries() int {
	return s.maxEntries
}

// SetMaxEntries changes the capacity, dropping the oldest entries if the
// stack is now over it.
func (s *Stack) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	s.maxEntries = max

	if len(s.undoStack) > max {
		excess := len(s.undoStack) - max
		clear(s.undoStack[:excess])
		s.undoStack = s.undoStack[excess:]
	}
}

// Mode returns the height undo mode.
func (s *Stack) Mode() UndoMode {
	return s.mode
}
