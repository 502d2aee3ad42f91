// Package level provides the 16x16 arena layout model and its text codec.
//
// A Map is two aligned grids: pillar heights and prefab markers. Both grids
// share one generic container, Grid, parameterized over a Cell constraint
// that knows how to decode and encode a single cell.
//
// # Text format
//
// A map file is the height grid, one blank line, then the prefab grid:
//
//	222211000(-1)(-2)(-2)(-2)(-1)00
//	...                                (16 lines)
//
//	ppnnsnsnnssnsspp
//	...                                (16 lines)
//
// Heights 0 through 9 are written as a single digit. Any other value is a
// parenthesized decimal, for example (15) or (-2). Adjacent digits are always
// separate cells, so "55" is two cells of height 5.
//
// Prefabs are one character each: 0 n p J s H.
package level
