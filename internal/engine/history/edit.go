package history

import (
	"fmt"

	"github.com/dshills/grindmap/internal/level"
)

// Change is the payload of an Edit. It is implemented only by HeightChange
// and PrefabChange.
type Change interface {
	// Description returns a short human-readable summary for n targets.
	Description(n int) string

	apply(e *Edit, m *level.Map) bool
	undo(e *Edit, m *level.Map, mode UndoMode)
	clone() Change
}

// HeightChange adds Delta to every target height.
type HeightChange struct {
	Delta int8
}

// PrefabChange sets every target to To. From holds the prefab each target had
// when the edit was built, by position.
type PrefabChange struct {
	From []level.Prefab
	To   level.Prefab
}

// Edit is one reversible, batched mutation.
type Edit struct {
	Change  Change
	Squares []level.Point

	// prior holds each target's height before the last Apply.
	prior []level.Height
}

// NewHeightEdit builds an edit that raises (or lowers, for a negative delta)
// every square.
func NewHeightEdit(delta int8, squares []level.Point) Edit {
	return Edit{
		Change:  HeightChange{Delta: delta},
		Squares: squares,
	}
}

// NewPrefabEdit builds an edit that sets every square to prefab, recording
// the current prefabs of m so undo is exact.
func NewPrefabEdit(m *level.Map, prefab level.Prefab, squares []level.Point) Edit {
	from := make([]level.Prefab, len(squares))
	for i, sq := range squares {
		from[i], _ = m.PrefabAt(sq)
	}
	return Edit{
		Change:  PrefabChange{From: from, To: prefab},
		Squares: squares,
	}
}

// Apply performs the edit on m. It returns false, leaving m untouched, when
// the edit is a no-op.
func (e *Edit) Apply(m *level.Map) bool {
	if e.Change == nil {
		return false
	}
	return e.Change.apply(e, m)
}

// Undo reverts the edit using the values recorded by the last Apply.
func (e *Edit) Undo(m *level.Map) {
	if e.Change != nil {
		e.Change.undo(e, m, UndoExact)
	}
}

// UndoClamped reverts a height edit by subtracting its delta and clamping.
// Prefab edits are restored exactly either way.
func (e *Edit) UndoClamped(m *level.Map) {
	if e.Change != nil {
		e.Change.undo(e, m, UndoClamped)
	}
}

// Description summarizes the edit.
func (e *Edit) Description() string {
	if e.Change == nil {
		return "Empty edit"
	}
	return e.Change.Description(len(e.Squares))
}

// clone returns an independent copy without recorded state.
func (e *Edit) clone() *Edit {
	c := &Edit{
		Squares: append([]level.Point(nil), e.Squares...),
	}
	if e.Change != nil {
		c.Change = e.Change.clone()
	}
	return c
}

func (c HeightChange) apply(e *Edit, m *level.Map) bool {
	if c.Delta == 0 {
		return false
	}

	e.prior = make([]level.Height, len(e.Squares))
	for i, sq := range e.Squares {
		if h := m.Heights.At(sq.X, sq.Y); h != nil {
			e.prior[i] = *h
			*h = h.Add(int(c.Delta))
		}
	}
	return true
}

func (c HeightChange) undo(e *Edit, m *level.Map, mode UndoMode) {
	exact := mode == UndoExact && len(e.prior) == len(e.Squares)
	// Reverse order so a cell listed twice ends at its first recorded value.
	for i := len(e.Squares) - 1; i >= 0; i-- {
		sq := e.Squares[i]
		h := m.Heights.At(sq.X, sq.Y)
		if h == nil {
			continue
		}
		if exact {
			*h = e.prior[i]
		} else {
			*h = h.Add(-int(c.Delta))
		}
	}
}

func (c HeightChange) clone() Change {
	return c
}

// Description returns e.g. "Raise 4 cells by 2".
func (c HeightChange) Description(n int) string {
	verb, amount := "Raise", int(c.Delta)
	if amount < 0 {
		verb, amount = "Lower", -amount
	}
	return fmt.Sprintf("%s %s by %d", verb, cells(n), amount)
}

func (c PrefabChange) apply(e *Edit, m *level.Map) bool {
	if c.redundant() {
		return false
	}
	for _, sq := range e.Squares {
		m.Prefabs.Set(sq.X, sq.Y, c.To)
	}
	return true
}

// redundant reports whether every target already holds To.
func (c PrefabChange) redundant() bool {
	for _, f := range c.From {
		if f != c.To {
			return false
		}
	}
	return true
}

func (c PrefabChange) undo(e *Edit, m *level.Map, _ UndoMode) {
	for i, sq := range e.Squares {
		if i < len(c.From) {
			m.Prefabs.Set(sq.X, sq.Y, c.From[i])
		}
	}
}

func (c PrefabChange) clone() Change {
	return PrefabChange{
		From: append([]level.Prefab(nil), c.From...),
		To:   c.To,
	}
}

// Description returns e.g. "Set 3 cells to stairs".
func (c PrefabChange) Description(n int) string {
	return fmt.Sprintf("Set %s to %s", cells(n), c.To)
}

func cells(n int) string {
	if n == 1 {
		return "1 cell"
	}
	return fmt.Sprintf("%d cells", n)
}
