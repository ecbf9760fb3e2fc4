// Package glyph holds the bitmap fonts stamped onto the grid: digits 0-9 and
// the currency symbol, in three sizes.
//
// Bitmaps are plain data (see bitmaps.go). They are parsed once into immutable
// Sets, so a new size only needs a new table, the stamping code is unaware of
// the shapes.
package glyph

import (
	"fmt"
	"strings"
)

//Symbol is the currency symbol rendered in front of every amount
const Symbol = '$'

//Size selects one of the glyph sets
type Size int

const (
	Small Size = iota
	Large
	Doubled
)

func (s Size) String() string {
	switch s {
	case Small:
		return "small"
	case Large:
		return "large"
	case Doubled:
		return "doubled"
	}
	return fmt.Sprintf("size(%d)", int(s))
}

//Offset is the position of an "on" pixel relative to the glyph's top-left corner
type Offset struct {
	Row int
	Col int
}

//Glyph is one character of a Set
type Glyph struct {
	Rune    rune
	Offsets []Offset
	Width   int //display width in cells, used for horizontal layout
	Height  int
}

//Set is an immutable collection of glyphs of one size
type Set struct {
	size   Size
	height int
	glyphs map[rune]Glyph
}

//NewSet parses bitmaps written as rows of '#' (on) and '.' (off)
//all rows of a glyph must have the same length
func NewSet(size Size, bitmaps map[rune][]string) (*Set, error) {
	s := &Set{size: size, glyphs: make(map[rune]Glyph, len(bitmaps))}
	for r, rows := range bitmaps {
		g, err := parse(r, rows)
		if err != nil {
			return nil, fmt.Errorf("%v set: %w", size, err)
		}
		if g.Height > s.height {
			s.height = g.Height
		}
		s.glyphs[r] = g
	}
	return s, nil
}

func parse(r rune, rows []string) (Glyph, error) {
	g := Glyph{Rune: r, Height: len(rows)}
	if len(rows) == 0 {
		return g, fmt.Errorf("glyph %q has no rows", r)
	}
	g.Width = len(rows[0])
	for y, row := range rows {
		if len(row) != g.Width {
			return g, fmt.Errorf("glyph %q row %d is %d wide, expected %d", r, y, len(row), g.Width)
		}
		if strings.Trim(row, "#.") != "" {
			return g, fmt.Errorf("glyph %q row %d has characters other than '#' and '.'", r, y)
		}
		for x, ch := range row {
			if ch == '#' {
				g.Offsets = append(g.Offsets, Offset{Row: y, Col: x})
			}
		}
	}
	return g, nil
}

//Scale returns a copy of s where every pixel becomes a factor x factor square
func Scale(s *Set, factor int, size Size) *Set {
	if factor < 1 {
		factor = 1
	}
	out := &Set{size: size, height: s.height * factor, glyphs: make(map[rune]Glyph, len(s.glyphs))}
	for r, g := range s.glyphs {
		sg := Glyph{Rune: r, Width: g.Width * factor, Height: g.Height * factor}
		sg.Offsets = make([]Offset, 0, len(g.Offsets)*factor*factor)
		for _, o := range g.Offsets {
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					sg.Offsets = append(sg.Offsets, Offset{Row: o.Row*factor + dy, Col: o.Col*factor + dx})
				}
			}
		}
		out.glyphs[r] = sg
	}
	return out
}

//Height returns the height of the tallest glyph
func (s *Set) Height() int { return s.height }

//Glyph returns the glyph for r
func (s *Set) Glyph(r rune) (Glyph, bool) {
	g, ok := s.glyphs[r]
	return g, ok
}

//Layout returns the glyphs rendering an amount: the currency symbol followed by
//every character of text the set knows, unknown characters are skipped
func (s *Set) Layout(text string) []Glyph {
	out := make([]Glyph, 0, len(text)+1)
	if g, ok := s.glyphs[Symbol]; ok {
		out = append(out, g)
	}
	for _, r := range text {
		if g, ok := s.glyphs[r]; ok {
			out = append(out, g)
		}
	}
	return out
}

//TextWidth returns the width of Layout(text) with one blank column between glyphs
func (s *Set) TextWidth(text string) int {
	w := 0
	for i, g := range s.Layout(text) {
		if i > 0 {
			w++
		}
		w += g.Width
	}
	return w
}

//Atlas groups the sets by size
type Atlas struct {
	sets map[Size]*Set
}

//NewAtlas builds an atlas from the given sets
func NewAtlas(sets ...*Set) *Atlas {
	a := &Atlas{sets: make(map[Size]*Set, len(sets))}
	for _, s := range sets {
		a.sets[s.size] = s
	}
	return a
}

//Set returns the set of the given size, nil when the atlas has none
func (a *Atlas) Set(size Size) *Set {
	return a.sets[size]
}

var defaultAtlas *Atlas

func init() {
	small, err := NewSet(Small, smallBitmaps)
	if err != nil {
		panic(err)
	}
	large, err := NewSet(Large, largeBitmaps)
	if err != nil {
		panic(err)
	}
	defaultAtlas = NewAtlas(small, large, Scale(large, 2, Doubled))
}

//Default returns the built-in atlas
func Default() *Atlas {
	return defaultAtlas
}
