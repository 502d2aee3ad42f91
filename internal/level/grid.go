package level

// Size is the width and height of every grid.
const Size = 16

// Cell is the capability a grid cell type needs: a zero value that serves as
// the default, plus single-cell decode and encode.
type Cell[T any] interface {
	comparable
	// DecodeCell decodes one cell from the start of src and reports how many
	// bytes it consumed. The receiver is ignored.
	DecodeCell(src []byte) (T, int, error)
	// AppendCell appends the encoding of the cell to b.
	AppendCell(b []byte) []byte
}

// Point addresses one cell. X is the column, Y the row.
type Point struct {
	X, Y int
}

// InBounds reports whether p addresses a cell of a Size x Size grid.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// Grid is a fixed Size x Size array of cells stored row-major.
// The zero value is a grid of default cells.
type Grid[T Cell[T]] struct {
	cells [Size][Size]T
}

// Get returns the cell at (x, y). ok is false when the coordinates fall
// outside the grid; that is not an error.
func (g *Grid[T]) Get(x, y int) (v T, ok bool) {
	if !(Point{x, y}).InBounds() {
		return v, false
	}
	return g.cells[y][x], true
}

// At returns a pointer to the cell at (x, y), or nil when out of range.
func (g *Grid[T]) At(x, y int) *T {
	if !(Point{x, y}).InBounds() {
		return nil
	}
	return &g.cells[y][x]
}

// Set stores v at (x, y) and reports whether the coordinates were in range.
func (g *Grid[T]) Set(x, y int, v T) bool {
	p := g.At(x, y)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = v
		}
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid[T]) Each(fn func(x, y int, v T)) {
	for y := range g.cells {
		for x, v := range g.cells[y] {
			fn(x, y, v)
		}
	}
}

// AppendText appends the grid as Size lines joined by '\n'. No trailing
// line break is written.
func (g *Grid[T]) AppendText(b []byte) ([]byte, error) {
	for y := range g.cells {
		if y > 0 {
			b = append(b, '\n')
		}
		for _, v := range g.cells[y] {
			b = v.AppendCell(b)
		}
	}
	return b, nil
}

func (g *Grid[T]) String() string {
	b, _ := g.AppendText(nil)
	return string(b)
}
