package view

import (
	"image/color"

	"lifeoverlay/src/universe"
)

//Palette maps cell states to colours, indexed by universe.Cell
var Palette = []color.RGBA{
	universe.Dead:    {R: 12, G: 12, B: 18, A: 255},
	universe.Alive:   {R: 90, G: 220, B: 110, A: 255},
	universe.Pending: {R: 250, G: 200, B: 60, A: 255},
	universe.Initial: {R: 80, G: 200, B: 240, A: 255},
	universe.Immune:  {R: 230, G: 90, B: 220, A: 255},
}

//fillPaletteRGBA converts the cells of a into RGBA pixels in buf, row by row
//unknown states take the last palette colour
func fillPaletteRGBA(buf []byte, a universe.Area, palette []color.RGBA) {
	last := len(palette) - 1
	i := 0
	for _, row := range a.Entities {
		for _, c := range row {
			base := i * 4
			i++
			if base+3 >= len(buf) {
				return
			}
			if last < 0 {
				buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
				continue
			}
			idx := int(c)
			if idx > last {
				idx = last
			}
			col := palette[idx]
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
