package renderer

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/grindmap/internal/level"
	"github.com/dshills/grindmap/internal/renderer/core"
)

// Height colors run from deep blue at MinHeight through gray at zero to
// orange at MaxHeight, interpolated in Lab space so steps look even.
var (
	lowColor  = colorful.Color{R: 0.12, G: 0.30, B: 0.80}
	zeroColor = colorful.Color{R: 0.30, G: 0.30, B: 0.32}
	highColor = colorful.Color{R: 0.95, G: 0.55, B: 0.10}
)

var prefabColors = [...]colorful.Color{
	level.PrefabNone:       {R: 0.16, G: 0.16, B: 0.18},
	level.PrefabMelee:      {R: 0.80, G: 0.20, B: 0.20},
	level.PrefabProjectile: {R: 0.85, G: 0.45, B: 0.80},
	level.PrefabJumpPad:    {R: 0.20, G: 0.75, B: 0.35},
	level.PrefabStairs:     {R: 0.55, G: 0.45, B: 0.30},
	level.PrefabHideous:    {R: 0.45, G: 0.85, B: 0.85},
}

func heightColor(h level.Height) colorful.Color {
	if h < 0 {
		return zeroColor.BlendLab(lowColor, min(float64(h)/float64(level.MinHeight), 1))
	}
	return zeroColor.BlendLab(highColor, min(float64(h)/float64(level.MaxHeight), 1))
}

func prefabColor(p level.Prefab) colorful.Color {
	if !p.Valid() {
		return prefabColors[level.PrefabNone]
	}
	return prefabColors[p]
}

// cellStyle picks a readable foreground for the background c.
func cellStyle(c colorful.Color) core.Style {
	l, _, _ := c.Lab()
	fg := core.ColorWhite
	if l > 0.65 {
		fg = core.ColorBlack
	}
	return core.DefaultStyle().WithBackground(toCore(c)).WithForeground(fg)
}

func toCore(c colorful.Color) core.Color {
	r, g, b := c.Clamped().RGB255()
	return core.ColorFromRGB(r, g, b)
}

// HeightStyle returns the style of a heights-grid cell holding h.
func HeightStyle(h level.Height) core.Style {
	return cellStyle(heightColor(h))
}

// PrefabStyle returns the style of a prefabs-grid cell holding p.
func PrefabStyle(p level.Prefab) core.Style {
	return cellStyle(prefabColor(p))
}
