// Package selection tracks which grid cells are hovered, selected, or inside
// a box-select drag, and implements the box-select gesture.
package selection

import (
	"github.com/dshills/grindmap/internal/level"
)

// Flags is the per-cell selection state.
type Flags struct {
	Selected bool
	Hovered  bool
	// Boxed marks a cell inside the rectangle currently being dragged.
	Boxed bool
}

// Box is a rectangle spanned by two corner cells in any order.
type Box struct {
	A, B level.Point
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p level.Point) bool {
	return IsInsideBox(p, b.A, b.B)
}

// Normalize returns the top-left and bottom-right corners.
func (b Box) Normalize() (lo, hi level.Point) {
	lo = level.Point{X: min(b.A.X, b.B.X), Y: min(b.A.Y, b.B.Y)}
	hi = level.Point{X: max(b.A.X, b.B.X), Y: max(b.A.Y, b.B.Y)}
	return lo, hi
}

// IsInsideBox reports whether p lies in the inclusive rectangle spanned by
// corners a and b. The corners may be given in either order.
func IsInsideBox(p, a, b level.Point) bool {
	return between(p.X, a.X, b.X) && between(p.Y, a.Y, b.Y)
}

func between(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}

// Input is the pointer state for one logical tick.
type Input struct {
	// Pointer is the cell under the pointer. Ignored unless OverCell.
	Pointer  level.Point
	OverCell bool

	JustPressed  bool
	Pressed      bool
	JustReleased bool

	// Extend adds the released box to the selection instead of replacing it.
	Extend bool
}

// Snapshot is a copy of every cell's flags, indexed [y][x].
type Snapshot [level.Size][level.Size]Flags

// At returns the flags at (x, y), or false when out of range.
func (s *Snapshot) At(x, y int) (Flags, bool) {
	if !(level.Point{X: x, Y: y}).InBounds() {
		return Flags{}, false
	}
	return s[y][x], true
}

// State is the selection state of one editing session.
// It is not safe for concurrent use.
type State struct {
	cells [level.Size][level.Size]Flags

	box    Box
	boxing bool
}

// NewState creates a state with nothing selected.
func NewState() *State {
	return &State{}
}

// Update advances the box-select gesture by one tick.
//
// A press over a cell anchors a box there. While the button stays down the
// far corner follows the hovered cell and the covered cells are marked
// Boxed. On release the box is committed: unless Extend is set, cells
// selected before are deselected first, then every cell in the box is
// selected. With the button up and no release this tick, any box is dropped.
func (s *State) Update(in Input) {
	over := in.OverCell && in.Pointer.InBounds()

	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x].Hovered = false
		}
	}

	if over {
		s.cells[in.Pointer.Y][in.Pointer.X].Hovered = true
		switch {
		case in.JustPressed:
			s.box = Box{A: in.Pointer, B: in.Pointer}
			s.boxing = true
		case in.Pressed:
			if s.boxing {
				s.box.B = in.Pointer
			}
		}
	}
	if !in.Pressed && !in.JustPressed && !in.JustReleased {
		s.boxing = false
	}

	for y := range s.cells {
		for x := range s.cells[y] {
			c := &s.cells[y][x]
			if !s.boxing {
				c.Boxed = false
				continue
			}

			inBox := s.box.Contains(level.Point{X: x, Y: y})
			if in.JustReleased {
				if c.Selected && !in.Extend {
					c.Selected = false
				}
				if inBox {
					c.Selected = true
				}
				c.Boxed = false
			} else {
				c.Boxed = inBox
			}
		}
	}

	if in.JustReleased {
		s.boxing = false
	}
}

// Box returns the rectangle being dragged, if any.
func (s *State) Box() (Box, bool) {
	return s.box, s.boxing
}

// Flags returns the flags of one cell.
func (s *State) Flags(p level.Point) (Flags, bool) {
	if !p.InBounds() {
		return Flags{}, false
	}
	return s.cells[p.Y][p.X], true
}

// Snapshot returns a copy of all cell flags.
func (s *State) Snapshot() Snapshot {
	return Snapshot(s.cells)
}

// Selected returns the selected cells in row-major order. Edits target
// exactly these cells in this order.
func (s *State) Selected() []level.Point {
	var out []level.Point
	for y := range s.cells {
		for x := range s.cells[y] {
			if s.cells[y][x].Selected {
				out = append(out, level.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// Count returns the number of selected cells.
func (s *State) Count() int {
	n := 0
	for y := range s.cells {
		for x := range s.cells[y] {
			if s.cells[y][x].Selected {
				n++
			}
		}
	}
	return n
}

// SetSelected selects or deselects one cell.
func (s *State) SetSelected(p level.Point, selected bool) {
	if p.InBounds() {
		s.cells[p.Y][p.X].Selected = selected
	}
}

// SelectAll selects every cell.
func (s *State) SelectAll() {
	s.setAll(true)
}

// Clear deselects every cell and drops any box in progress.
func (s *State) Clear() {
	s.setAll(false)
	s.boxing = false
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x].Boxed = false
		}
	}
}

func (s *State) setAll(selected bool) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x].Selected = selected
		}
	}
}
