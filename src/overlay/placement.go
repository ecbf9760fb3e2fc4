package overlay

import (
	"math/rand/v2"

	"lifeoverlay/src/universe"
)

const (
	DefPlacementAttempts = 50
	//placementMargin keeps the anchor this many cells away from the bottom and right edges
	placementMargin = 8
)

//Rect is a half-open rectangle of cells
type Rect struct {
	Row    int
	Col    int
	Height int
	Width  int
}

//BottomRight returns the bottom-right quadrant of a rows x cols area
func BottomRight(rows int, cols int) Rect {
	return Rect{Row: rows / 2, Col: cols / 2, Height: rows - rows/2, Width: cols - cols/2}
}

//Contains reports whether p lies inside r
func (r Rect) Contains(p universe.Point) bool {
	return p.Row >= r.Row && p.Col >= r.Col && p.Row < r.Row+r.Height && p.Col < r.Col+r.Width
}

//Overlaps reports whether r and o share at least one cell
func (r Rect) Overlaps(o Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || o.Width <= 0 || o.Height <= 0 {
		return false
	}
	return r.Row < o.Row+o.Height && o.Row < r.Row+r.Height &&
		r.Col < o.Col+o.Width && o.Col < r.Col+r.Width
}

//Footprinter tells whether a stamp footprint would cover reserved cells
type Footprinter interface {
	Intersects(r Rect) bool
}

//ChoosePlacement samples anchors uniformly in rows [0, rows-8] and cols [0, cols-textWidth-8]
//until one lies outside exclude and, when immune is set, its textWidth x glyphHeight footprint
//misses every immune cell. After attempts candidates the last one is returned anyway,
//an overlap is only a cosmetic glitch
func ChoosePlacement(rng *rand.Rand, rows int, cols int, textWidth int, glyphHeight int, exclude Rect, immune Footprinter, attempts int) (row int, col int) {
	maxRow := rows - placementMargin
	if maxRow < 0 {
		maxRow = 0
	}
	maxCol := cols - textWidth - placementMargin
	if maxCol < 0 {
		maxCol = 0
	}
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		row = rng.IntN(maxRow + 1)
		col = rng.IntN(maxCol + 1)
		if exclude.Contains(universe.Point{Row: row, Col: col}) {
			continue
		}
		if immune != nil && immune.Intersects(Rect{Row: row, Col: col, Height: glyphHeight, Width: textWidth}) {
			continue
		}
		return
	}
	return
}
