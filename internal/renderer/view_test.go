package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/renderer/backend"
	"github.com/dshills/grindmap/internal/renderer/core"
	"github.com/dshills/grindmap/internal/selection"
)

func newTestView(t *testing.T, width, height int) (*View, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	require.NoError(t, b.Init())
	return New(b, DefaultOptions()), b
}

func TestLayoutSideBySide(t *testing.T) {
	l := computeLayout(120, 24, 3)
	assert.False(t, l.Stacked)
	assert.Equal(t, core.RectFromSize(2, 1, 16, 48), l.Heights)
	assert.Equal(t, core.RectFromSize(2, 52, 16, 48), l.Prefabs)
	assert.Equal(t, 22, l.StatusRow)
}

func TestLayoutStacked(t *testing.T) {
	l := computeLayout(60, 40, 3)
	assert.True(t, l.Stacked)
	assert.Equal(t, 19, l.Prefabs.Top)
	assert.Equal(t, l.Heights.Left, l.Prefabs.Left)
}

func TestHitTest(t *testing.T) {
	l := computeLayout(120, 24, 3)

	tests := []struct {
		name  string
		x, y  int
		want  level.Point
		panel Panel
	}{
		{"heights origin", 1, 2, level.Point{X: 0, Y: 0}, PanelHeights},
		{"heights cell edge", 3, 2, level.Point{X: 0, Y: 0}, PanelHeights},
		{"heights next cell", 4, 2, level.Point{X: 1, Y: 0}, PanelHeights},
		{"heights far corner", 48, 17, level.Point{X: 15, Y: 15}, PanelHeights},
		{"prefabs", 52 + 3*5, 2 + 7, level.Point{X: 5, Y: 7}, PanelPrefabs},
		{"gap", 50, 5, level.Point{}, PanelNone},
		{"menu", 5, 0, level.Point{}, PanelNone},
		{"below grids", 5, 18, level.Point{}, PanelNone},
		{"left margin", 0, 5, level.Point{}, PanelNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, panel := l.HitTest(tt.x, tt.y)
			assert.Equal(t, tt.panel, panel)
			if panel != PanelNone {
				assert.Equal(t, tt.want, p)
			}
		})
	}
}

func TestHitTestMatchesCellRect(t *testing.T) {
	l := computeLayout(140, 24, 4)
	for _, panel := range []Panel{PanelHeights, PanelPrefabs} {
		for y := 0; y < level.Size; y++ {
			for x := 0; x < level.Size; x++ {
				pt := level.Point{X: x, Y: y}
				r := l.CellRect(panel, pt)
				got, gotPanel := l.HitTest(r.Right-1, r.Top)
				require.Equal(t, panel, gotPanel)
				require.Equal(t, pt, got)
			}
		}
	}
}

func TestMenuHit(t *testing.T) {
	assert.Equal(t, MenuNew, menuHit(1, 0))
	assert.Equal(t, MenuNew, menuHit(5, 0))
	assert.Equal(t, MenuNone, menuHit(6, 0))
	assert.Equal(t, MenuOpen, menuHit(8, 0))
	assert.Equal(t, MenuSaveAs, menuHit(24, 0))
	assert.Equal(t, MenuNone, menuHit(1, 1))
}

func TestDrawShowsMapValues(t *testing.T) {
	v, b := newTestView(t, 120, 24)

	m := level.Default()
	m.Heights.Set(0, 0, -50)
	m.Heights.Set(1, 0, 7)
	m.Prefabs.Set(0, 0, level.PrefabJumpPad)
	sel := selection.NewState().Snapshot()

	v.Draw(&m, &sel)

	assert.Equal(t, " (N)ew  (O)pen  (S)ave  Save (A)s", b.Line(0))
	assert.Contains(t, b.Line(1), "Heights")
	assert.Contains(t, b.Line(1), "Prefabs")

	row := b.Line(2)
	assert.Equal(t, "-50  7  0", row[1:10])
	assert.Equal(t, 'J', b.GetCell(53, 2).Rune)
	assert.Equal(t, '·', b.GetCell(56, 2).Rune)
	assert.Equal(t, uint64(1), v.FrameCount())
}

func TestDrawMarksSelection(t *testing.T) {
	v, b := newTestView(t, 120, 24)
	m := level.Default()

	st := selection.NewState()
	st.SetSelected(level.Point{X: 2, Y: 3}, true)
	sel := st.Snapshot()
	v.Draw(&m, &sel)

	l := v.Layout()
	for _, panel := range []Panel{PanelHeights, PanelPrefabs} {
		r := l.CellRect(panel, level.Point{X: 2, Y: 3})
		assert.True(t, b.GetCell(r.Left, r.Top).Style.Attributes.Has(core.AttrReverse), panel.String())

		other := l.CellRect(panel, level.Point{X: 3, Y: 3})
		assert.False(t, b.GetCell(other.Left, other.Top).Style.Attributes.Has(core.AttrReverse), panel.String())
	}
}

func TestFlagStyle(t *testing.T) {
	base := core.DefaultStyle()
	assert.Equal(t, base, flagStyle(base, selection.Flags{}))

	s := flagStyle(base, selection.Flags{Boxed: true, Hovered: true})
	assert.Equal(t, core.ColorYellow, s.Foreground)
	assert.True(t, s.Attributes.Has(core.AttrUnderline))
	assert.False(t, s.Attributes.Has(core.AttrReverse))
}

func TestHeightStyleGradient(t *testing.T) {
	low := HeightStyle(level.MinHeight).Background
	zero := HeightStyle(0).Background
	high := HeightStyle(level.MaxHeight).Background

	assert.Greater(t, low.B, low.R, "low heights are blue")
	assert.Greater(t, high.R, high.B, "high heights are orange")
	assert.NotEqual(t, zero, low)
	// Out-of-range values read from a file use the end colors.
	assert.Equal(t, high, HeightStyle(120).Background)
}

func TestResizeRecomputesLayout(t *testing.T) {
	v, _ := newTestView(t, 120, 24)
	require.False(t, v.Layout().Stacked)
	v.Resize(60, 40)
	assert.True(t, v.Layout().Stacked)
	assert.Equal(t, 38, v.Layout().StatusRow)
}
