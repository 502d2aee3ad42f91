package level

import (
	"strconv"
	"unicode/utf8"
)

// Editable height range. Parsing accepts the full int8 range; edits clamp to this.
const (
	MinHeight Height = -50
	MaxHeight Height = 50
)

// Height is the vertical offset of one pillar.
type Height int8

// ClampHeight clamps v to [MinHeight, MaxHeight].
func ClampHeight(v int) Height {
	switch {
	case v < int(MinHeight):
		return MinHeight
	case v > int(MaxHeight):
		return MaxHeight
	}
	return Height(v)
}

// Add returns h+delta clamped to the editable range.
// The sum is computed in int so it cannot wrap.
func (h Height) Add(delta int) Height {
	return ClampHeight(int(h) + delta)
}

func (h Height) String() string {
	return string(h.AppendCell(nil))
}

// AppendCell appends the cell encoding of h: a bare digit for 0-9,
// otherwise the value in parentheses.
func (h Height) AppendCell(b []byte) []byte {
	if h >= 0 && h <= 9 {
		return append(b, byte('0'+h))
	}
	b = append(b, '(')
	b = strconv.AppendInt(b, int64(h), 10)
	return append(b, ')')
}

// DecodeCell decodes exactly one height cell from the start of src and
// returns the number of bytes consumed.
func (Height) DecodeCell(src []byte) (Height, int, error) {
	if len(src) == 0 {
		return 0, 0, cellError(ErrBadHeight, 0, "expected height, found end of input")
	}

	c := src[0]
	if isDigit(c) {
		return Height(c - '0'), 1, nil
	}
	if c != '(' {
		return 0, 0, cellError(ErrBadHeight, 0, "unexpected %s", describeByte(src))
	}

	i := 1
	if i < len(src) && src[i] == '-' {
		i++
	}
	start := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i == start {
		return 0, 0, cellError(ErrBadHeight, i, "expected digits, found %s", describeByte(src[i:]))
	}
	if i >= len(src) || src[i] != ')' {
		return 0, 0, cellError(ErrBadHeight, i, "expected ')', found %s", describeByte(src[i:]))
	}

	v, err := strconv.ParseInt(string(src[1:i]), 10, 8)
	if err != nil {
		return 0, 0, cellError(ErrBadHeight, 1, "%s does not fit in 8 bits", src[1:i])
	}
	return Height(v), i + 1, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// describeByte quotes the first character of src for error messages.
func describeByte(src []byte) string {
	if len(src) == 0 {
		return "end of input"
	}
	switch src[0] {
	case '\n', '\r':
		return "end of line"
	}
	r, _ := utf8.DecodeRune(src)
	return strconv.QuoteRune(r)
}
