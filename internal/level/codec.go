package level

// Parse decodes map text. Nothing is returned on failure except the error,
// which is always a *ParseError.
func Parse(text string) (Map, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes is Parse for a byte slice.
//
// Lines may end in "\n" or "\r\n". A single line break after the last prefab
// row is tolerated; anything more is trailing data.
func ParseBytes(src []byte) (Map, error) {
	var m Map
	s := &scanner{src: src}

	if err := parseGrid(s, &m.Heights, "height"); err != nil {
		return Map{}, err
	}

	for range 2 {
		n := s.lineBreak()
		if n == 0 {
			return Map{}, s.errorf(ErrMissingSeparator,
				"expected a blank line between the height and prefab grids, found %s", describeByte(s.rest()))
		}
		s.pos += n
	}

	if err := parseGrid(s, &m.Prefabs, "prefab"); err != nil {
		return Map{}, err
	}

	if n := s.lineBreak(); n > 0 {
		s.pos += n
		if s.pos == len(src) {
			return m, nil
		}
		if s.lineBreak() == 0 {
			return Map{}, s.errorf(ErrRowCount, "prefab grid has more than %d rows", Size)
		}
	}
	if s.pos != len(src) {
		return Map{}, s.errorf(ErrTrailingData, "unexpected content after the prefab grid")
	}
	return m, nil
}

// Serialize encodes m in the file format. Serialize(Parse(x)) == x for any
// x produced by Serialize.
func Serialize(m *Map) string {
	b, _ := m.AppendText(make([]byte, 0, 2*Size*(Size+1)+1))
	return string(b)
}

// scanner is a cursor over the input shared by both grid passes.
type scanner struct {
	src []byte
	pos int
}

func (s *scanner) rest() []byte {
	return s.src[s.pos:]
}

// lineBreak returns the length of the line break at the cursor, or 0.
func (s *scanner) lineBreak() int {
	rest := s.rest()
	switch {
	case len(rest) >= 1 && rest[0] == '\n':
		return 1
	case len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n':
		return 2
	}
	return 0
}

func (s *scanner) atLineEnd() bool {
	return s.pos >= len(s.src) || s.lineBreak() > 0
}

func (s *scanner) errorf(kind error, format string, args ...any) *ParseError {
	err := cellError(kind, s.pos, format, args...)
	err.locate(s.src)
	return err
}

// rebase moves a cell-relative error to its absolute position.
func (s *scanner) rebase(err error) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return s.errorf(ErrBadHeight, "%v", err)
	}
	pe.Offset += s.pos
	pe.locate(s.src)
	return pe
}

// parseGrid reads Size rows of Size cells. Cells are consumed one at a time,
// so a run of bare digits is a run of single-digit cells.
func parseGrid[T Cell[T]](s *scanner, g *Grid[T], what string) error {
	var zero T
	for y := range Size {
		if y > 0 {
			n := s.lineBreak()
			if n == 0 {
				return s.errorf(ErrRowCount, "%s grid has %d rows, want %d", what, y, Size)
			}
			s.pos += n
		}

		x := 0
		for !s.atLineEnd() {
			if x == Size {
				return s.errorf(ErrColumnCount, "%s row %d has more than %d cells", what, y+1, Size)
			}
			v, n, err := zero.DecodeCell(s.rest())
			if err != nil {
				return s.rebase(err)
			}
			g.cells[y][x] = v
			s.pos += n
			x++
		}

		switch {
		case x == 0:
			return s.errorf(ErrRowCount, "%s grid has %d rows, want %d", what, y, Size)
		case x < Size:
			return s.errorf(ErrColumnCount, "%s row %d has %d cells, want %d", what, y+1, x, Size)
		}
	}
	return nil
}
