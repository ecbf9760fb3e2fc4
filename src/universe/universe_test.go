package universe

import (
	"testing"
	"time"
)

func areaWith(w, h int, cells map[Point]Cell) Area {
	a := NewArea(w, h)
	for p, c := range cells {
		a.Set(p, c)
	}
	return a
}

func expectCells(t *testing.T, a Area, want map[Point]Cell) {
	t.Helper()
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			p := Point{y, x}
			exp, ok := want[p]
			if !ok {
				exp = Dead
			}
			if got := a.At(p); got != exp {
				t.Fatalf("cell (%d,%d) is %v, expected %v", y, x, got, exp)
			}
		}
	}
}

func TestAdvanceEmptyStaysEmpty(t *testing.T) {
	a := NewArea(20, 10)
	next := Advance(a)
	if n := next.Count(Alive); n != 0 {
		t.Fatalf("empty area produced %d live cells", n)
	}
}

func TestAdvanceBlockIsStill(t *testing.T) {
	block := map[Point]Cell{{2, 2}: Alive, {2, 3}: Alive, {3, 2}: Alive, {3, 3}: Alive}
	a := areaWith(6, 6, block)
	for i := 0; i < 3; i++ {
		a = Advance(a)
		expectCells(t, a, block)
	}
}

func TestAdvanceBlinker(t *testing.T) {
	horizontal := map[Point]Cell{{2, 1}: Alive, {2, 2}: Alive, {2, 3}: Alive}
	vertical := map[Point]Cell{{1, 2}: Alive, {2, 2}: Alive, {3, 2}: Alive}

	a := Advance(areaWith(5, 5, horizontal))
	expectCells(t, a, vertical)

	a = Advance(a)
	expectCells(t, a, horizontal)
}

func TestAdvanceHardBoundary(t *testing.T) {
	a := areaWith(8, 6, map[Point]Cell{{0, 0}: Alive, {0, 1}: Alive, {0, 2}: Alive})
	next := Advance(a)
	expectCells(t, next, map[Point]Cell{{0, 1}: Alive, {1, 1}: Alive})
}

func TestAdvanceKeepsProtectedCells(t *testing.T) {
	for _, c := range []Cell{Pending, Initial, Immune} {
		// the protected cell at (2,2) has 3 live neighbours, the one at (0,5) has none
		a := areaWith(8, 6, map[Point]Cell{
			{1, 1}: Alive, {1, 2}: Alive, {1, 3}: Alive,
			{2, 2}: c,
			{0, 5}: c,
		})
		next := Advance(a)
		if got := next.At(Point{2, 2}); got != c {
			t.Fatalf("%v cell became %v", c, got)
		}
		if got := next.At(Point{0, 5}); got != c {
			t.Fatalf("isolated %v cell became %v", c, got)
		}
	}
}

func TestAdvanceProtectedCellsAreNotAlive(t *testing.T) {
	// (2,2) sees two live cells and one pending cell, it must not be born
	a := areaWith(6, 6, map[Point]Cell{{1, 1}: Alive, {1, 3}: Alive, {3, 2}: Pending})
	next := Advance(a)
	if got := next.At(Point{2, 2}); got != Dead {
		t.Fatalf("cell with 2 live and 1 pending neighbours is %v", got)
	}
}

func TestAdvanceReadsPreviousGeneration(t *testing.T) {
	a := areaWith(5, 5, map[Point]Cell{{2, 1}: Alive, {2, 2}: Alive, {2, 3}: Alive})
	before := a.Clone()
	Advance(a)
	expectCells(t, a, map[Point]Cell{{2, 1}: Alive, {2, 2}: Alive, {2, 3}: Alive})
	if before.Count(Alive) != a.Count(Alive) {
		t.Fatalf("Advance modified its input")
	}
}

func TestAreaSetClipsOutside(t *testing.T) {
	a := NewArea(4, 3)
	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		if a.Set(p, Alive) {
			t.Fatalf("Set(%v) reported a write outside the area", p)
		}
	}
	if n := a.Count(Alive); n != 0 {
		t.Fatalf("clipped writes produced %d live cells", n)
	}
}

func waitManual(t *testing.T, ch chan Status) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-ch:
			if st.RunningMode == RunningStateManual {
				return
			}
		case <-timeout:
			t.Fatalf("universe did not return to manual mode")
		}
	}
}

func TestEnginesAgreeWithAdvance(t *testing.T) {
	seed := map[Point]Cell{
		{1, 1}: Alive, {1, 2}: Alive, {1, 3}: Alive, // blinker
		{5, 7}: Alive, {6, 8}: Alive, {7, 6}: Alive, {7, 7}: Alive, {7, 8}: Alive, // glider
		{4, 4}: Pending, {9, 10}: Immune, {0, 11}: Alive, {0, 10}: Alive, {1, 11}: Alive,
	}
	for _, e := range EngineNames() {
		t.Run(e, func(t *testing.T) {
			o := DefaultUniverseOptions
			o.Width, o.Height = 12, 10
			ch := make(chan Status, 10)
			u := Engines[e](&o, ch)
			defer u.Close()

			for p, c := range seed {
				u.Settle([]Point{p}, c)
			}
			want := areaWith(12, 10, seed)
			for i := 0; i < 8; i++ {
				u.Step()
				waitManual(t, ch)
				want = Advance(want)
				got := u.Area()
				for y := 0; y < want.Height; y++ {
					for x := 0; x < want.Width; x++ {
						if got.Entities[y][x] != want.Entities[y][x] {
							t.Fatalf("step %d: cell (%d,%d) is %v, expected %v", i+1, y, x, got.Entities[y][x], want.Entities[y][x])
						}
					}
				}
			}
		})
	}
}

type countingTicker struct {
	ticks  int
	resets int
}

func (c *countingTicker) Tick(a *Area, now time.Time) { c.ticks++ }
func (c *countingTicker) Reset()                      { c.resets++ }

func TestTurnStepsAtMostOncePerInterval(t *testing.T) {
	o := DefaultUniverseOptions
	o.Width, o.Height = 10, 10
	o.Interval = 100 * time.Millisecond
	u := NewBaseUniverse(&o, nil)
	defer u.Close()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return clock }
	ticker := &countingTicker{}
	u.RegisterTicker(ticker)

	turn := func(at time.Duration) int {
		done := make(chan int)
		u.do(func() {
			clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(at)
			u.turn()
			done <- u.Status().IterationNum
		})
		return <-done
	}

	steps := []struct {
		at   time.Duration
		want int
	}{
		{0, 1},
		{50 * time.Millisecond, 1},
		{99 * time.Millisecond, 1},
		{100 * time.Millisecond, 2},
		{450 * time.Millisecond, 3}, // no catch up of skipped generations
		{460 * time.Millisecond, 3},
	}
	for _, s := range steps {
		if got := turn(s.at); got != s.want {
			t.Fatalf("at %v: generation %d, expected %d", s.at, got, s.want)
		}
	}
	done := make(chan int)
	u.do(func() { done <- ticker.ticks })
	if got := <-done; got != len(steps) {
		t.Fatalf("ticker ran %d times, expected once per turn (%d)", got, len(steps))
	}
}

func TestClearResetsTickers(t *testing.T) {
	o := DefaultUniverseOptions
	o.Width, o.Height = 10, 10
	ch := make(chan Status, 10)
	u := NewBaseUniverse(&o, ch)
	defer u.Close()
	ticker := &countingTicker{}
	u.RegisterTicker(ticker)
	u.Settle([]Point{{1, 1}, {2, 2}}, Pending)
	u.Clear()
	waitManual(t, ch)

	if n := u.Area().Protected(); n != 0 {
		t.Fatalf("%d protected cells survived Clear", n)
	}
	done := make(chan int)
	u.do(func() { done <- ticker.resets })
	if got := <-done; got != 1 {
		t.Fatalf("ticker reset %d times, expected 1", got)
	}
}

func TestExecMutatesOnLoop(t *testing.T) {
	o := DefaultUniverseOptions
	o.Width, o.Height = 10, 10
	u := NewBaseUniverse(&o, nil)
	defer u.Close()

	done := make(chan struct{})
	u.Exec(func(a *Area, now time.Time) {
		a.Set(Point{3, 4}, Immune)
		close(done)
	})
	<-done
	if got := u.Area().At(Point{3, 4}); got != Immune {
		t.Fatalf("cell written by Exec is %v", got)
	}
}

func TestStopRunWithinFrameKeepsOnePump(t *testing.T) {
	o := DefaultUniverseOptions
	o.Width, o.Height = 10, 10
	o.Interval = time.Hour
	o.FrameInterval = 20 * time.Millisecond
	u := NewBaseUniverse(&o, nil)
	defer u.Close()
	ticker := &countingTicker{}
	u.RegisterTicker(ticker)

	u.Run()
	for i := 0; i < 5; i++ {
		u.Stop()
		u.Run()
	}
	time.Sleep(500 * time.Millisecond)
	u.Stop()

	done := make(chan int)
	u.do(func() { done <- ticker.ticks })
	// one pump turns about 25 times in 500ms, six pumps would turn about 150 times
	if got := <-done; got > 40 {
		t.Fatalf("%d turns in 500ms with a 20ms frame, more than one pump is running", got)
	}
}

func TestMaxStepsComputesEveryGeneration(t *testing.T) {
	o := DefaultUniverseOptions
	o.Width, o.Height = 5, 5
	o.Interval = 0
	o.FrameInterval = 0
	o.MaxSteps = 3
	ch := make(chan Status, 10)
	u := NewBaseUniverse(&o, ch)
	defer u.Close()

	blinker := map[Point]Cell{{2, 1}: Alive, {2, 2}: Alive, {2, 3}: Alive}
	for p, c := range blinker {
		u.Settle([]Point{p}, c)
	}
	u.Run()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-ch:
			if st.RunningMode != RunningStateFinished {
				continue
			}
			if st.IterationNum != 3 {
				t.Fatalf("finished at generation %d, expected 3", st.IterationNum)
			}
			// three generations leave the blinker vertical
			expectCells(t, u.Area(), map[Point]Cell{{1, 2}: Alive, {2, 2}: Alive, {3, 2}: Alive})
			return
		case <-timeout:
			t.Fatalf("universe did not finish")
		}
	}
}

func TestBlocksTemplateIsStill(t *testing.T) {
	var tmpl Template
	for _, tt := range DefaultTemplates {
		if tt.Name == "blocks" {
			tmpl = tt
		}
	}
	if len(tmpl.Coordinates) == 0 {
		t.Fatalf("no blocks template")
	}
	cells := map[Point]Cell{}
	for _, p := range tmpl.Coordinates {
		cells[Point{5 + p.Row, 10 + p.Col}] = Alive
	}
	a := areaWith(20, 10, cells)
	for i := 0; i < 3; i++ {
		a = Advance(a)
		expectCells(t, a, cells)
	}
}
