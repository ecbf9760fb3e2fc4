package overlay

import (
	"strconv"

	"lifeoverlay/src/glyph"
	"lifeoverlay/src/universe"
)

//StampDigits writes the currency symbol followed by text with its top-left corner at row, col
//every glyph advances the column by its width plus one blank column
//pixels outside the area are skipped, the returned points are the cells actually written
func StampDigits(a *universe.Area, set *glyph.Set, text string, row int, col int, state universe.Cell) []universe.Point {
	var written []universe.Point
	x := col
	for _, g := range set.Layout(text) {
		for _, o := range g.Offsets {
			p := universe.Point{Row: row + o.Row, Col: x + o.Col}
			if a.Set(p, state) {
				written = append(written, p)
			}
		}
		x += g.Width + 1
	}
	return written
}

//StampCentered stamps text centred both ways on the area
func StampCentered(a *universe.Area, set *glyph.Set, text string, state universe.Cell) []universe.Point {
	row := (a.Height - set.Height()) / 2
	col := (a.Width - set.TextWidth(text)) / 2
	return StampDigits(a, set, text, row, col, state)
}

//StampImmuneTotal kills every cell of prev, whatever its current state, then stamps total
//as Immune cells anchored at the bottom-right corner, padding cells away from both edges
func StampImmuneTotal(a *universe.Area, set *glyph.Set, total int, prev []universe.Point, padding int) []universe.Point {
	for _, p := range prev {
		a.Set(p, universe.Dead)
	}
	text := strconv.Itoa(total)
	row := a.Height - set.Height() - padding
	col := a.Width - set.TextWidth(text) - padding
	return StampDigits(a, set, text, row, col, universe.Immune)
}
