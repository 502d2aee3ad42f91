package level

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeightRows = []string{
	"2222110000(-1)(-2)(-2)(-1)00",
	"(12)(12)3333(-8)(-8)000000(50)(50)",
	"0000000000000000",
	"(-50)(-50)1234567890(127)(-128)00",
	"9999999999999999",
	"5555000055550000",
	"(-3)(-3)(-3)(-3)000000000000",
	"1111222233334444",
	"0(10)0(10)0(10)0(10)0(10)0(10)0(10)0(10)",
	"(-15)(-15)(-15)(-15)(-15)(-15)(-15)00(-15)(-15)(-15)(-15)(-15)0(-15)",
	"222221000012100(-15)",
	"0000000000000001",
	"7777777777777777",
	"(20)00000000000000(-20)",
	"3210000000000123",
	"8888888888888888",
}

var testPrefabRows = []string{
	"ppnnsnsnnssnsspp",
	"ppnnJJJnnJJJJJpJ",
	"JJJJJJJnnJJJJJnJ",
	"0000000000000000",
	"HHHHHHHHHHHHHHHH",
	"ppnnnssppssnsspJ",
	"JJnnJJJnnJJJJJnJ",
	"JJssJJJnnJJJJJnJ",
	"JJssJJJnnJJ00000",
	"JJppsnsnnJJ00sss",
	"JJppsnsnnJJ0sppp",
	"sssssssssssssssH",
	"nnnnnnnnnnnnnnnn",
	"pppJJJJnnJJ0s000",
	"pppssssppJJ0s0H0",
	"0npJsH0npJsH0npJ",
}

func testMapText(heights, prefabs []string) string {
	return strings.Join(heights, "\n") + "\n\n" + strings.Join(prefabs, "\n")
}

func withRow(rows []string, i int, row string) []string {
	out := append([]string(nil), rows...)
	out[i] = row
	return out
}

func TestHeightDecodeCell(t *testing.T) {
	tests := []struct {
		in   string
		want Height
		n    int
	}{
		{"0", 0, 1},
		{"8", 8, 1},
		{"55", 5, 1},
		{"(15)", 15, 4},
		{"(-2)", -2, 4},
		{"(0)", 0, 3},
		{"(127)", 127, 5},
		{"(-128)", -128, 6},
		{"(3)(4)", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, n, err := Height(0).DecodeCell([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestHeightDecodeCellErrors(t *testing.T) {
	for _, in := range []string{"", "x", "-1", "(", "()", "(-)", "(12", "(1x)", "(128)", "(-129)", "(+1)"} {
		t.Run(in, func(t *testing.T) {
			_, _, err := Height(0).DecodeCell([]byte(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadHeight)
		})
	}
}

func TestHeightEncoding(t *testing.T) {
	for v := -128; v <= 127; v++ {
		h := Height(v)
		s := h.String()
		if v >= 0 && v <= 9 {
			assert.Len(t, s, 1, "height %d", v)
		} else {
			assert.True(t, strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"), "height %d encoded as %q", v, s)
		}

		got, n, err := Height(0).DecodeCell([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, h, got)
		assert.Equal(t, len(s), n)
	}
}

func TestPrefabDecodeCell(t *testing.T) {
	tests := []struct {
		in   byte
		want Prefab
	}{
		{'0', PrefabNone},
		{'n', PrefabMelee},
		{'p', PrefabProjectile},
		{'J', PrefabJumpPad},
		{'s', PrefabStairs},
		{'H', PrefabHideous},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, n, err := PrefabNone.DecodeCell([]byte{tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, n)
			assert.Equal(t, tt.in, got.Code())
		})
	}

	for _, bad := range []byte{'N', 'j', 'S', 'h', '1', ' '} {
		_, _, err := PrefabNone.DecodeCell([]byte{bad})
		assert.ErrorIs(t, err, ErrBadPrefab, "character %q", bad)
	}
}

func TestParseScenario(t *testing.T) {
	text := testMapText(testHeightRows, testPrefabRows)

	m, err := Parse(text)
	require.NoError(t, err)

	h, ok := m.Heights.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, Height(2), h)

	p, ok := m.Prefabs.Get(0, 0)
	require.True(t, ok)
	assert.Equal(t, PrefabProjectile, p)

	assert.Equal(t, text, Serialize(&m))
}

func TestParseCells(t *testing.T) {
	m, err := Parse(testMapText(testHeightRows, testPrefabRows))
	require.NoError(t, err)

	tests := []struct {
		x, y int
		want Height
	}{
		{10, 0, -1},
		{0, 1, 12},
		{14, 1, 50},
		{0, 3, -50},
		{12, 3, 127},
		{13, 3, -128},
		{1, 8, 10},
		{15, 9, -15},
		{0, 13, 20},
		{15, 13, -20},
		{15, 15, 8},
	}
	for _, tt := range tests {
		got, ok := m.Heights.Get(tt.x, tt.y)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "height at (%d, %d)", tt.x, tt.y)
	}

	p, _ := m.Prefabs.Get(15, 11)
	assert.Equal(t, PrefabHideous, p)
	p, _ = m.Prefabs.Get(4, 1)
	assert.Equal(t, PrefabJumpPad, p)
}

func TestParseTerseDigitsAreSeparateCells(t *testing.T) {
	// A row of sixteen 9s is sixteen cells of height 9, never one large number.
	m, err := Parse(testMapText(testHeightRows, testPrefabRows))
	require.NoError(t, err)
	for x := range Size {
		h, _ := m.Heights.Get(x, 4)
		assert.Equal(t, Height(9), h)
	}

	// "1234567890" in row 3 is ten cells, not one.
	for i, want := range []Height{1, 2, 3, 4, 5, 6, 7, 8, 9, 0} {
		h, _ := m.Heights.Get(2+i, 3)
		assert.Equal(t, want, h)
	}

	// Writing 12 without parentheses yields two cells and overflows the row.
	rows := withRow(testHeightRows, 2, "12"+strings.Repeat("0", 15))
	_, err = Parse(testMapText(rows, testPrefabRows))
	assert.ErrorIs(t, err, ErrColumnCount)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		kind   error
		line   int
		column int
	}{
		{
			name:   "bad height character",
			text:   testMapText(withRow(testHeightRows, 4, "999999999999999a"), testPrefabRows),
			kind:   ErrBadHeight,
			line:   5,
			column: 16,
		},
		{
			name:   "height out of range",
			text:   testMapText(withRow(testHeightRows, 3, "(-50)(-50)1234567890(128)(-128)00"), testPrefabRows),
			kind:   ErrBadHeight,
			line:   4,
			column: 22,
		},
		{
			name:   "unknown prefab",
			text:   testMapText(testHeightRows, withRow(testPrefabRows, 2, "xJJJJJJnnJJJJJnJ")),
			kind:   ErrBadPrefab,
			line:   20,
			column: 1,
		},
		{
			name:   "short row",
			text:   testMapText(withRow(testHeightRows, 2, "000000000000000"), testPrefabRows),
			kind:   ErrColumnCount,
			line:   3,
			column: 16,
		},
		{
			name:   "long row",
			text:   testMapText(withRow(testHeightRows, 2, "00000000000000000"), testPrefabRows),
			kind:   ErrColumnCount,
			line:   3,
			column: 17,
		},
		{
			name:   "too few height rows",
			text:   testMapText(testHeightRows[:15], testPrefabRows),
			kind:   ErrRowCount,
			line:   16,
			column: 1,
		},
		{
			name:   "too few prefab rows",
			text:   testMapText(testHeightRows, testPrefabRows[:15]),
			kind:   ErrRowCount,
			line:   32,
			column: 17,
		},
		{
			name:   "too many prefab rows",
			text:   testMapText(testHeightRows, testPrefabRows) + "\n0000000000000000",
			kind:   ErrRowCount,
			line:   34,
			column: 1,
		},
		{
			name:   "no blank line",
			text:   strings.Join(testHeightRows, "\n") + "\n" + strings.Join(testPrefabRows, "\n"),
			kind:   ErrMissingSeparator,
			line:   17,
			column: 1,
		},
		{
			name:   "heights only",
			text:   strings.Join(testHeightRows, "\n"),
			kind:   ErrMissingSeparator,
			line:   16,
			column: 17,
		},
		{
			name:   "trailing blank line",
			text:   testMapText(testHeightRows, testPrefabRows) + "\n\n",
			kind:   ErrTrailingData,
			line:   34,
			column: 1,
		},
		{
			name:   "empty input",
			text:   "",
			kind:   ErrRowCount,
			line:   1,
			column: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, Default(), m)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line, "line")
			assert.Equal(t, tt.column, pe.Column, "column")
		})
	}
}

func TestParseToleratesLineEndings(t *testing.T) {
	text := testMapText(testHeightRows, testPrefabRows)
	want, err := Parse(text)
	require.NoError(t, err)

	got, err := Parse(text + "\n")
	require.NoError(t, err)
	assert.True(t, want.Equal(&got))

	got, err = Parse(strings.ReplaceAll(text, "\n", "\r\n"))
	require.NoError(t, err)
	assert.True(t, want.Equal(&got))
}

func TestRoundTrip(t *testing.T) {
	var m Map
	i := 0
	m.Heights.Each(func(x, y int, _ Height) {
		m.Heights.Set(x, y, Height(int8(i*37)))
		m.Prefabs.Set(x, y, Prefabs()[i%len(Prefabs())])
		i++
	})

	text := Serialize(&m)
	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.True(t, m.Equal(&parsed))
	assert.Equal(t, text, Serialize(&parsed))
}

func TestRoundTripDefault(t *testing.T) {
	m := Default()
	text := Serialize(&m)

	assert.Equal(t, 2*Size+1, strings.Count(text, "\n")+1)
	assert.False(t, strings.HasSuffix(text, "\n"))

	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestUnmarshalTextKeepsMapOnError(t *testing.T) {
	m, err := Parse(testMapText(testHeightRows, testPrefabRows))
	require.NoError(t, err)
	before := m

	err = m.UnmarshalText([]byte("garbage"))
	require.Error(t, err)
	assert.Equal(t, before, m)

	require.NoError(t, m.UnmarshalText([]byte(Serialize(new(Map)))))
	assert.Equal(t, Default(), m)
}
