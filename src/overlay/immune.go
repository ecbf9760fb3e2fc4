package overlay

import (
	"math"
	"time"

	"lifeoverlay/src/glyph"
	"lifeoverlay/src/universe"
)

//ImmuneSet is the single current set of cells showing the running total
type ImmuneSet struct {
	points []universe.Point
	bounds Rect
}

//Replace clears the previous rendering and stamps total in its place
func (s *ImmuneSet) Replace(a *universe.Area, set *glyph.Set, total int, padding int) {
	s.track(StampImmuneTotal(a, set, total, s.points, padding))
}

func (s *ImmuneSet) track(pts []universe.Point) {
	s.points = pts
	s.bounds = Rect{}
	if len(pts) == 0 {
		return
	}
	minRow, minCol, maxRow, maxCol := pts[0].Row, pts[0].Col, pts[0].Row, pts[0].Col
	for _, p := range pts {
		minRow, maxRow = min(minRow, p.Row), max(maxRow, p.Row)
		minCol, maxCol = min(minCol, p.Col), max(maxCol, p.Col)
	}
	s.bounds = Rect{Row: minRow, Col: minCol, Height: maxRow - minRow + 1, Width: maxCol - minCol + 1}
}

//Intersects reports whether any cell of the set lies inside r
func (s *ImmuneSet) Intersects(r Rect) bool {
	if !s.bounds.Overlaps(r) {
		return false
	}
	for _, p := range s.points {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

//Len returns the number of tracked cells
func (s *ImmuneSet) Len() int {
	return len(s.points)
}

//Reset forgets the tracked cells without touching the area
func (s *ImmuneSet) Reset() {
	s.track(nil)
}

//Tween eases the displayed total towards its latest target
//there is only one tween, a new target replaces the running one
type Tween struct {
	Duration time.Duration
	from     float64
	to       float64
	start    time.Time
	active   bool
}

//Retarget starts easing from the value shown at now towards to
func (t *Tween) Retarget(to float64, now time.Time) {
	cur, _ := t.At(now)
	t.from, t.to, t.start, t.active = cur, to, now, true
}

//At returns the value at now and whether the tween is still running
func (t *Tween) At(now time.Time) (float64, bool) {
	if !t.active {
		return t.to, false
	}
	if t.Duration <= 0 {
		t.active = false
		return t.to, false
	}
	f := float64(now.Sub(t.start)) / float64(t.Duration)
	if f >= 1 {
		t.active = false
		return t.to, false
	}
	if f < 0 {
		f = 0
	}
	return t.from + (t.to-t.from)*easeOutCubic(f), true
}

func easeOutCubic(f float64) float64 {
	return 1 - math.Pow(1-f, 3)
}
