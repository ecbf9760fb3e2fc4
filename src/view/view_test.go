package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"lifeoverlay/src/overlay"
	"lifeoverlay/src/universe"
)

func TestFillPaletteRGBA(t *testing.T) {
	a := universe.NewArea(3, 2)
	a.Set(universe.Point{Row: 0, Col: 1}, universe.Alive)
	a.Set(universe.Point{Row: 1, Col: 2}, universe.Immune)
	buf := make([]byte, 3*2*4)
	fillPaletteRGBA(buf, a, Palette)

	check := func(i int, c universe.Cell) {
		t.Helper()
		want := Palette[c]
		got := buf[i*4 : i*4+4]
		if got[0] != want.R || got[1] != want.G || got[2] != want.B || got[3] != want.A {
			t.Fatalf("pixel %d is %v, expected %v colour %v", i, got, c, want)
		}
	}
	check(0, universe.Dead)
	check(1, universe.Alive)
	check(5, universe.Immune)
}

func TestFillPaletteUnknownStateUsesLastColour(t *testing.T) {
	a := universe.NewArea(1, 1)
	a.Entities[0][0] = universe.Cell(200)
	buf := make([]byte, 4)
	fillPaletteRGBA(buf, a, Palette)
	if last := Palette[len(Palette)-1]; buf[0] != last.R || buf[3] != last.A {
		t.Fatalf("unknown state drawn as %v", buf)
	}
}

func TestStatusJSON(t *testing.T) {
	st := universe.Status{
		IterationNum:   12,
		RunningMode:    universe.RunningStateRun,
		LiveCells:      40,
		ProtectedCells: 7,
		Details: map[string]interface{}{
			"pending": 7,
			"total":   1500,
			"events":  []overlay.Event{{ID: "e1", Kind: "donation", Message: "$5 at 1,2"}},
		},
	}
	line, err := StatusJSON(st, 2*time.Second)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	res := gjson.ParseBytes(line)
	if res.Get("iteration").Int() != 12 || res.Get("mode").String() != "run" {
		t.Fatalf("unexpected status %s", line)
	}
	if res.Get("overlay.total").Int() != 1500 || res.Get("overlay.pending").Int() != 7 {
		t.Fatalf("unexpected overlay %s", line)
	}
	if res.Get("overlay.last_event.id").String() != "e1" {
		t.Fatalf("unexpected last event %s", line)
	}
	if res.Get("elapsed_ms").Int() != 2000 {
		t.Fatalf("unexpected elapsed %s", line)
	}
}

func TestConsoleOutJSONOncePerGeneration(t *testing.T) {
	o := universe.DefaultUniverseOptions
	o.Width, o.Height = 8, 8
	u := universe.NewBaseUniverse(&o, nil)
	defer u.Close()

	var out bytes.Buffer
	c := NewConsoleOut(true)
	c.SetOutput(&out)
	c.Register(u)
	c.Start()
	c.Refresh()
	c.Refresh()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("%d lines for a single generation: %q", len(lines), out.String())
	}
	if !gjson.Valid(lines[0]) {
		t.Fatalf("invalid json %q", lines[0])
	}
}
