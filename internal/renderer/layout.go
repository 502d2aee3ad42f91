package renderer

import (
	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/renderer/core"
	"github.com/dshills/grindmap/internal/renderer/statusline"
)

// Panel identifies one of the two grids.
type Panel int

const (
	PanelNone Panel = iota
	PanelHeights
	PanelPrefabs
)

func (p Panel) String() string {
	switch p {
	case PanelHeights:
		return "Heights"
	case PanelPrefabs:
		return "Prefabs"
	default:
		return "none"
	}
}

const (
	menuRow   = 0
	gridTop   = 2 // below the menu and the panel titles
	panelGap  = 3
	leftInset = 1
)

// Layout is where everything sits on screen for a given terminal size.
type Layout struct {
	Heights   core.ScreenRect
	Prefabs   core.ScreenRect
	CellWidth int
	StatusRow int
	Stacked   bool
}

func computeLayout(width, height, cellWidth int) Layout {
	gridW := level.Size * cellWidth
	l := Layout{
		CellWidth: cellWidth,
		Heights:   core.RectFromSize(gridTop, leftInset, level.Size, gridW),
		StatusRow: max(height-statusline.Rows, 0),
	}

	if width >= leftInset+2*gridW+panelGap {
		l.Prefabs = core.RectFromSize(gridTop, leftInset+gridW+panelGap, level.Size, gridW)
	} else {
		l.Stacked = true
		l.Prefabs = core.RectFromSize(l.Heights.Bottom+1, leftInset, level.Size, gridW)
	}
	return l
}

// Grid returns the screen area of a panel's grid.
func (l Layout) Grid(p Panel) core.ScreenRect {
	if p == PanelPrefabs {
		return l.Prefabs
	}
	return l.Heights
}

// CellRect returns the screen area of one cell of a panel.
func (l Layout) CellRect(p Panel, pt level.Point) core.ScreenRect {
	g := l.Grid(p)
	return core.RectFromSize(g.Top+pt.Y, g.Left+pt.X*l.CellWidth, 1, l.CellWidth)
}

// HitTest maps a screen position to the grid cell under it. Both panels
// address the same map points.
func (l Layout) HitTest(x, y int) (level.Point, Panel) {
	for _, p := range []Panel{PanelHeights, PanelPrefabs} {
		g := l.Grid(p)
		if y >= l.StatusRow || !g.Contains(x, y) {
			continue
		}
		return level.Point{X: (x - g.Left) / l.CellWidth, Y: y - g.Top}, p
	}
	return level.Point{}, PanelNone
}
