// Package history provides reversible map edits and the undo log.
//
// An Edit pairs a Change with the cells it targets. Two changes exist:
//   - HeightChange: add a signed delta to every target, clamped to [-50, 50]
//   - PrefabChange: set every target to one prefab, remembering the old ones
//
// Edits that would change nothing (a zero delta, or a prefab change whose
// targets all already hold the new prefab) are rejected by Apply and never
// reach the history.
//
// # Stack
//
// The Stack applies edits and keeps the applied ones for undo:
//
//	stack := NewStack(DefaultMaxEntries, UndoExact)
//	stack.Push(NewHeightEdit(1, sel), &m)
//	stack.Pop(&m)  // undo
//	stack.Redo(&m) // redo
//
// The stack is bounded. When it is full the oldest edit is dropped.
//
// # Height undo
//
// With UndoExact, a height edit records each target's previous value when it
// is applied and restores those values on undo. UndoClamped instead subtracts
// the delta and clamps again, which does not restore cells that saturated at
// a bound.
package history
