package selection

import "github.com/dshills/grindmap/internal/level"

// Tracker turns level-triggered pointer reports (button down or up) into
// the edge-triggered Input that State.Update expects.
type Tracker struct {
	down bool
}

// Next builds the Input for a pointer report. over is false when the pointer
// is not above any cell.
func (t *Tracker) Next(p level.Point, over, down, extend bool) Input {
	in := Input{
		Pointer:      p,
		OverCell:     over,
		JustPressed:  down && !t.down,
		Pressed:      down,
		JustReleased: !down && t.down,
		Extend:       extend,
	}
	t.down = down
	return in
}

// Down reports whether the button was down at the last report.
func (t *Tracker) Down() bool {
	return t.down
}

// Reset forgets the button state.
func (t *Tracker) Reset() {
	t.down = false
}
