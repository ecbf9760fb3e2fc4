// Package overlay turns donation and total events into protected glyph stamps
// on a universe, and releases them back to the simulation over time.
//
// All Handle* and Tick methods expect exclusive access to the area. Attach
// routes events through Universe.Exec so they run on the universe goroutine,
// between two generation steps.
package overlay

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"lifeoverlay/src/glyph"
	"lifeoverlay/src/universe"
)

const (
	DefPendingDelay  = 3 * time.Second
	DefInitialDelay  = 4 * time.Second
	DefImmunePadding = 2
	DefTweenDuration = 1500 * time.Millisecond

	maxEvents = 10
	maxAmount = min(999999999999, math.MaxInt) //fits int on 32-bit targets
)

//Config holds the overlay tunables
type Config struct {
	PendingDelay      time.Duration //donation stamps stay frozen this long
	InitialDelay      time.Duration //the first total reveal stays frozen this long
	ImmunePadding     int
	PlacementAttempts int
	TweenDuration     time.Duration
	ImmuneTotal       bool //render the running total as immune cells, otherwise it is only reported
	Seed              int64
}

//DefaultConfig returns the standard configuration
func DefaultConfig() Config {
	return Config{
		PendingDelay:      DefPendingDelay,
		InitialDelay:      DefInitialDelay,
		ImmunePadding:     DefImmunePadding,
		PlacementAttempts: DefPlacementAttempts,
		TweenDuration:     DefTweenDuration,
		ImmuneTotal:       true,
		Seed:              universe.DefSeed,
	}
}

//Event is one entry of the overlay log
type Event struct {
	ID      string
	Kind    string
	Message string
	At      time.Time
}

//Overlay owns the protected cells of a universe
type Overlay struct {
	cfg       Config
	atlas     *glyph.Atlas
	rng       *rand.Rand
	pending   Scheduler
	immune    ImmuneSet
	tween     Tween
	revealed  bool
	total     int
	displayed int
	events    []Event
	u         universe.Universe
}

//New creates an overlay drawing with atlas, the default atlas when nil
func New(cfg Config, atlas *glyph.Atlas) *Overlay {
	if atlas == nil {
		atlas = glyph.Default()
	}
	if cfg.PlacementAttempts <= 0 {
		cfg.PlacementAttempts = DefPlacementAttempts
	}
	return &Overlay{
		cfg:   cfg,
		atlas: atlas,
		rng:   universe.NewRNG(cfg.Seed),
		tween: Tween{Duration: cfg.TweenDuration},
	}
}

//Attach registers the overlay on u, Donation and Total are delivered through u afterwards
func (o *Overlay) Attach(u universe.Universe) {
	o.u = u
	u.RegisterTicker(o)
}

//Donation queues a donation for the universe goroutine
func (o *Overlay) Donation(id string, amount float64) {
	if o.u == nil {
		return
	}
	o.u.Exec(func(a *universe.Area, now time.Time) {
		o.HandleDonation(a, now, id, amount)
	})
}

//Total queues a running total update for the universe goroutine
func (o *Overlay) Total(value float64) {
	if o.u == nil {
		return
	}
	o.u.Exec(func(a *universe.Area, now time.Time) {
		o.HandleTotal(a, now, value)
	})
}

//floorAmount returns the whole part of v, false when nothing should be stamped
func floorAmount(v float64) (int, bool) {
	if math.IsNaN(v) || v < 1 {
		return 0, false
	}
	if v > maxAmount {
		v = maxAmount
	}
	return int(math.Floor(v)), true
}

//HandleDonation stamps the floored amount as Pending cells at a random position
//avoiding the total display, and schedules their release
func (o *Overlay) HandleDonation(a *universe.Area, now time.Time, id string, amount float64) {
	n, ok := floorAmount(amount)
	if !ok {
		return
	}
	set := o.atlas.Set(glyph.Small)
	text := strconv.Itoa(n)
	var immune Footprinter
	if o.cfg.ImmuneTotal {
		immune = &o.immune
	}
	row, col := ChoosePlacement(o.rng, a.Height, a.Width, set.TextWidth(text), set.Height(),
		BottomRight(a.Height, a.Width), immune, o.cfg.PlacementAttempts)
	pts := StampDigits(a, set, text, row, col, universe.Pending)
	o.pending.Schedule(pts, universe.Pending, now.Add(o.cfg.PendingDelay))
	o.log(id, "donation", fmt.Sprintf("$%d at %d,%d", n, row, col), now)
}

//HandleTotal records the floored total; the first one is revealed in large glyphs
//in the centre, later ones only move the immune display
func (o *Overlay) HandleTotal(a *universe.Area, now time.Time, value float64) {
	n, ok := floorAmount(value)
	if !ok {
		return
	}
	o.total = n
	if !o.revealed {
		o.revealed = true
		pts := StampCentered(a, o.atlas.Set(glyph.Large), strconv.Itoa(n), universe.Initial)
		o.pending.Schedule(pts, universe.Initial, now.Add(o.cfg.InitialDelay))
		o.log("", "reveal", fmt.Sprintf("total $%d", n), now)
	}
	if o.cfg.ImmuneTotal {
		o.tween.Retarget(float64(n), now)
	}
}

//Tick releases expired stamps and re-stamps the total display whenever the shown value changes
func (o *Overlay) Tick(a *universe.Area, now time.Time) {
	o.pending.Fire(a, now)
	if !o.cfg.ImmuneTotal {
		return
	}
	v, _ := o.tween.At(now)
	shown := int(math.Floor(v))
	if shown > 0 && shown != o.displayed {
		o.immune.Replace(a, o.atlas.Set(glyph.Doubled), shown, o.cfg.ImmunePadding)
		o.displayed = shown
	}
}

//Reset forgets tracked cells after the area was cleared
//the total is kept and drawn again on the next tick
func (o *Overlay) Reset() {
	o.pending.Reset()
	o.immune.Reset()
	o.displayed = 0
}

//Report adds the overlay state to the universe status details
func (o *Overlay) Report(details map[string]interface{}) {
	details["pending"] = o.pending.Pending()
	details["immune"] = o.immune.Len()
	details["total"] = o.total
	details["displayed"] = o.displayed
	details["events"] = o.Events()
}

//Events returns a copy of the recent events, oldest first
func (o *Overlay) Events() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Overlay) log(id string, kind string, message string, at time.Time) {
	if id == "" {
		id = uuid.NewString()
	}
	o.events = append(o.events, Event{ID: id, Kind: kind, Message: message, At: at})
	if len(o.events) > maxEvents {
		o.events = o.events[1:]
	}
}
