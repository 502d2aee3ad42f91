package renderer

import (
	"github.com/dshills/grindmap/internal/renderer/backend"
	"github.com/dshills/grindmap/internal/renderer/core"
)

// MenuItem is an entry of the menu bar.
type MenuItem int

const (
	MenuNone MenuItem = iota
	MenuNew
	MenuOpen
	MenuSave
	MenuSaveAs
)

type menuEntry struct {
	item  MenuItem
	label string
	key   int // index of the highlighted shortcut letter in label
}

var menuEntries = []menuEntry{
	{MenuNew, "(N)ew", 1},
	{MenuOpen, "(O)pen", 1},
	{MenuSave, "(S)ave", 1},
	{MenuSaveAs, "Save (A)s", 6},
}

// menuSpan is the column range [start, end) of an entry.
type menuSpan struct {
	item       MenuItem
	start, end int
}

func menuSpans() []menuSpan {
	spans := make([]menuSpan, 0, len(menuEntries))
	col := 1
	for _, e := range menuEntries {
		n := len(e.label)
		spans = append(spans, menuSpan{e.item, col, col + n})
		col += n + 2
	}
	return spans
}

func drawMenu(b backend.Backend, width int) {
	bar := core.DefaultStyle().WithBackground(core.ColorFromRGB(40, 40, 48)).WithForeground(core.ColorWhite)
	b.Fill(core.RectFromSize(menuRow, 0, 1, width), core.NewStyledCell(' ', bar))

	for i, span := range menuSpans() {
		e := menuEntries[i]
		for j, r := range e.label {
			style := bar
			if j == e.key {
				style = bar.Bold().Underline()
			}
			b.SetCell(span.start+j, menuRow, core.NewStyledCell(r, style))
		}
	}
}

// menuHit returns the menu entry at column x of the menu row.
func menuHit(x, y int) MenuItem {
	if y != menuRow {
		return MenuNone
	}
	for _, span := range menuSpans() {
		if x >= span.start && x < span.end {
			return span.item
		}
	}
	return MenuNone
}
