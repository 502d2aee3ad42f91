package renderer

import (
	"strconv"

	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/renderer/backend"
	"github.com/dshills/grindmap/internal/renderer/core"
	"github.com/dshills/grindmap/internal/renderer/statusline"
	"github.com/dshills/grindmap/internal/selection"
)

// Options configures a View.
type Options struct {
	// CellWidth is the number of columns per map cell. Heights need 3
	// columns for "-50".
	CellWidth int
}

// DefaultOptions returns the default view options.
func DefaultOptions() Options {
	return Options{CellWidth: 3}
}

// View draws a map and its selection to a backend.
type View struct {
	backend backend.Backend
	opts    Options

	width, height int
	layout        Layout
	status        *statusline.StatusLine

	frameCount uint64
}

// New creates a view sized to the backend.
func New(b backend.Backend, opts Options) *View {
	if opts.CellWidth < 3 {
		opts.CellWidth = 3
	}
	v := &View{
		backend: b,
		opts:    opts,
		status:  statusline.New(),
	}
	w, h := b.Size()
	v.Resize(w, h)
	return v
}

// Resize recomputes the layout for a new terminal size.
func (v *View) Resize(width, height int) {
	v.width, v.height = width, height
	v.layout = computeLayout(width, height, v.opts.CellWidth)
	v.status.Resize(width)
}

// Layout returns the current layout.
func (v *View) Layout() Layout {
	return v.layout
}

// Status returns the status line so callers can set its contents.
func (v *View) Status() *statusline.StatusLine {
	return v.status
}

// HitTest returns the map point and panel under a screen position.
func (v *View) HitTest(x, y int) (level.Point, Panel) {
	return v.layout.HitTest(x, y)
}

// MenuAt returns the menu entry under a screen position.
func (v *View) MenuAt(x, y int) MenuItem {
	return menuHit(x, y)
}

// FrameCount returns the number of frames drawn.
func (v *View) FrameCount() uint64 {
	return v.frameCount
}

// Draw renders a full frame.
func (v *View) Draw(m *level.Map, sel *selection.Snapshot) {
	b := v.backend
	b.Clear()

	drawMenu(b, v.width)
	v.drawPanel(PanelHeights, sel, func(p level.Point) (string, core.Style) {
		h, _ := m.HeightAt(p)
		return strconv.Itoa(int(h)), HeightStyle(h)
	})
	v.drawPanel(PanelPrefabs, sel, func(p level.Point) (string, core.Style) {
		pf, _ := m.PrefabAt(p)
		label := string(pf.Code())
		if pf == level.PrefabNone {
			label = "·"
		}
		return label, PrefabStyle(pf)
	})
	v.status.Render(b, v.layout.StatusRow)

	b.Show()
	v.frameCount++
}

// drawPanel draws a title and a grid whose cells come from cell.
func (v *View) drawPanel(p Panel, sel *selection.Snapshot, cell func(level.Point) (string, core.Style)) {
	g := v.layout.Grid(p)
	titleStyle := core.DefaultStyle().Bold()
	for i, r := range p.String() {
		v.backend.SetCell(g.Left+i, g.Top-1, core.NewStyledCell(r, titleStyle))
	}

	for y := 0; y < level.Size; y++ {
		for x := 0; x < level.Size; x++ {
			pt := level.Point{X: x, Y: y}
			text, style := cell(pt)
			if f, ok := sel.At(x, y); ok {
				style = flagStyle(style, f)
			}
			v.drawCell(v.layout.CellRect(p, pt), text, style, p == PanelHeights)
		}
	}
}

// drawCell writes text into rect, right-aligned for numbers and centered
// otherwise.
func (v *View) drawCell(rect core.ScreenRect, text string, style core.Style, rightAlign bool) {
	v.backend.Fill(rect, core.NewStyledCell(' ', style))

	runes := []rune(text)
	w := rect.Width()
	if len(runes) > w {
		runes = runes[len(runes)-w:]
	}
	start := rect.Left + (w-len(runes))/2
	if rightAlign {
		start = rect.Right - len(runes)
	}
	for i, r := range runes {
		v.backend.SetCell(start+i, rect.Top, core.NewStyledCell(r, style))
	}
}

// flagStyle layers selection state over a cell's base style. Selected
// cells are inverted, cells inside a box being dragged are marked in
// yellow and the hovered cell is underlined.
func flagStyle(s core.Style, f selection.Flags) core.Style {
	if f.Selected {
		s = s.Reverse()
	}
	if f.Boxed {
		s = s.WithForeground(core.ColorYellow).Bold()
	}
	if f.Hovered {
		s = s.Underline()
	}
	return s
}
