// Package renderer draws the level editor to a backend.
//
// The screen is laid out top to bottom as:
//
//	row 0        menu bar: (N)ew (O)pen (S)ave Save (A)s
//	row 1        panel titles
//	rows 2..17   the heights grid and the prefabs grid, side by side
//	             when the terminal is wide enough, otherwise stacked
//	last 2 rows  status bar, then the prompt or message line
//
// Each map cell is CellWidth columns wide. View.HitTest maps a screen
// position back to a grid point, which is how mouse input reaches the
// selection engine.
//
// Sub-packages:
//   - backend: the Backend interface, the tcell terminal and a null backend
//   - core: colors, styles, cells and rectangles shared with backends
//   - statusline: the two bottom rows
package renderer
