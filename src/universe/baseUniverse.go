package universe

import (
	"math/rand/v2"
	"sync"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Width         int
	Height        int
	Interval      time.Duration //minimum time between two generations
	FrameInterval time.Duration //time between two scheduling turns (redraws)
	MaxSteps      int           //0 means unlimited
	StopOnStill   bool          //finish when the field is empty or stops changing
	Seed          int64
	Advanced      map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum   int
	RunningMode    RunningState
	LiveCells      int
	ProtectedCells int
	IterationTime  time.Duration
	Details        map[string]interface{} //advanced details (engine and ticker specific)
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Ticker is called once per scheduling turn on the universe goroutine, before the generation step
//it may mutate the area freely, no other mutation runs concurrently
type Ticker interface {
	Tick(a *Area, now time.Time)
}

//Resetter is implemented by tickers holding state bound to the area, called on Clear
type Resetter interface {
	Reset()
}

//Reporter is implemented by tickers contributing to Status.Details
type Reporter interface {
	Report(details map[string]interface{})
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates []Point //offsets relative to the centre of the area
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefFrameInterval      = time.Millisecond * 16
	DefMaxSteps           = 0
	DefWidth              = 182
	DefHeight             = 55
	DefSeed               = 42
	DefRandomDensity      = 0.2
)

const (
	RunningStateManual   = 0x0
	RunningStateStep     = 0x1
	RunningStateRun      = 0x2
	RunningStateFinished = 0x3
)

var DefaultUniverseOptions = Options{
	Width:         DefWidth,
	Height:        DefHeight,
	Interval:      DefSimulationInterval,
	FrameInterval: DefFrameInterval,
	MaxSteps:      DefMaxSteps,
	Seed:          DefSeed,
}

//BaseUniverse is the base universe's engine
//implements Universe interface
//can be used to create different implementations by redefining nextIteration func
//
//every mutation of the area is executed by mainLoop, one closure at a time,
//so the generation step, stamps and reverts never interleave
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		Area
		sync.Mutex
	}
	stateCh       chan Status
	views         []Viewer
	tickers       []Ticker
	templates     map[string]Template
	controlCh     chan func()
	quit          chan struct{}
	closeOnce     sync.Once
	rng           *rand.Rand
	now           func() time.Time
	lastUpdate    time.Time
	runID         int //the current turn pump, read and written on the main loop only
	nextIteration func() (hasLiveEnitities bool, changed bool)
}

//NewRNG creates a deterministic PCG source for the seed
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

//NewBaseUniverse creates the BaseUniverse instance
func NewBaseUniverse(o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	opts := *o
	opts.Advanced = make(map[string]interface{})
	for k, v := range o.Advanced {
		opts.Advanced[k] = v
	}
	opts.Advanced["engine"] = "base"

	u := BaseUniverse{
		options:   opts,
		controlCh: make(chan func(), 1),
		quit:      make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
		rng:       NewRNG(opts.Seed),
		now:       time.Now,
	}
	//nextIteration can be implemented by successor
	u.nextIteration = u._nextIteration
	u.state.Details = make(map[string]interface{})

	u.area.Area = createArea(opts.Width, opts.Height)
	for _, t := range DefaultTemplates {
		u.templates[t.Name] = t
	}
	go u.mainLoop()
	return &u
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.do(func() {
		u.templates[tmpl.Name] = tmpl
	})
}

//Settle writes the cell state c at every point, points outside the area are skipped
func (u *BaseUniverse) Settle(pts []Point, c Cell) {
	u.do(func() {
		u.area.Lock()
		u.settle(pts, c)
		u.area.Unlock()
		u.publish()
		u.refreshView()
	})
}

//SettleTemplate populates the universe with the seeding template, centred on the area
func (u *BaseUniverse) SettleTemplate(name string) {
	u.do(func() {
		tmpl, ok := u.templates[name]
		if !ok {
			return
		}
		u.area.Lock()
		cy, cx := u.area.Height/2, u.area.Width/2
		pts := make([]Point, 0, len(tmpl.Coordinates))
		for _, p := range tmpl.Coordinates {
			pts = append(pts, Point{Row: cy + p.Row, Col: cx + p.Col})
		}
		u.settle(pts, Alive)
		u.area.Unlock()
		u.publish()
		u.refreshView()
	})
}

//SettleWithRandomData clears the universe and populates it with random data
func (u *BaseUniverse) SettleWithRandomData() {
	u.do(func() {
		mode := u.mode()
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		u.clear()
		u.area.Lock()
		u.area.walk(func(y int, x int, e Cell) {
			if u.rng.Float64() < DefRandomDensity {
				u.area.Entities[y][x] = Alive
			}
		})
		u.area.Unlock()
		u.publish()
		u.refreshView()
	})
}

//InverseCell toggles a simulation-controlled cell between Dead and Alive
//protected cells are left as is
func (u *BaseUniverse) InverseCell(row int, col int) {
	u.do(func() {
		u.area.Lock()
		p := Point{Row: row, Col: col}
		switch u.area.At(p) {
		case Dead:
			u.area.Set(p, Alive)
		case Alive:
			u.area.Set(p, Dead)
		}
		u.area.Unlock()
		u.publish()
		u.refreshView()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	u.do(func() {
		u.views = append(u.views, v)
	})
}

//RegisterTicker registers t to be called on every scheduling turn
func (u *BaseUniverse) RegisterTicker(t Ticker) {
	u.do(func() {
		u.tickers = append(u.tickers, t)
	})
}

//Exec runs fn on the universe goroutine with exclusive access to the area, returns immediately
func (u *BaseUniverse) Exec(fn func(a *Area, now time.Time)) {
	u.do(func() {
		now := u.now()
		u.area.Lock()
		fn(&u.area.Area, now)
		u.area.Unlock()
		u.publish()
		u.refreshView()
	})
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Area returns a copy of the current universe area (field where cells is living)
func (u *BaseUniverse) Area() Area {
	u.area.Lock()
	defer u.area.Unlock()
	return u.area.Clone()
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.do(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.do(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.do(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.do(u.clear)
}

//Close stops the main loop, returns immediately
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() {
		close(u.quit)
	})
}

//do hands the command to the main loop, dropped after Close
func (u *BaseUniverse) do(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.quit:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.quit:
			return
		}
	}
}

//settle places the Cell at every point
func (u *BaseUniverse) settle(pts []Point, entity Cell) {
	for _, p := range pts {
		u.area.Set(p, entity)
	}
}

func (u *BaseUniverse) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.quit:
		}
	}
}

//publish recounts the cells and collects the ticker details
func (u *BaseUniverse) publish() {
	u.area.Lock()
	live := u.area.Count(Alive)
	protected := u.area.Protected()
	u.area.Unlock()

	details := make(map[string]interface{}, len(u.options.Advanced))
	for _, t := range u.tickers {
		if r, ok := t.(Reporter); ok {
			r.Report(details)
		}
	}

	u.state.Lock()
	u.state.LiveCells = live
	u.state.ProtectedCells = protected
	u.state.Details = details
	u.state.Unlock()
}

func (u *BaseUniverse) recordIteration(start time.Time) {
	u.state.Lock()
	u.state.IterationTime = time.Since(start)
	u.state.Unlock()
}

//run starts the universe simulation
//each turn runs the tickers and redraws, the generation step is gated by Interval
//simulation will stop on Stop() calling or when the boundary conditions are reached
//a pump exits as soon as a newer one was started, so Stop and Run in quick succession leave one pump
func (u *BaseUniverse) run() {
	if u.mode() == RunningStateRun {
		return
	}
	u.switchRunningState(RunningStateRun)
	u.runID++
	id := u.runID
	go func() {
		done := make(chan bool, 1)
		for {
			select {
			case u.controlCh <- func() {
				if u.runID != id || u.mode() != RunningStateRun {
					done <- false
					return
				}
				u.turn()
				done <- true
			}:
			case <-u.quit:
				return
			}
			select {
			case ok := <-done:
				if !ok {
					return
				}
			case <-u.quit:
				return
			}
			if u.options.FrameInterval > 0 {
				time.Sleep(u.options.FrameInterval)
			}
		}
	}()
}

//turn is one scheduling turn: tickers, at most one generation, redraw
//skipped generations are not caught up
func (u *BaseUniverse) turn() {
	now := u.now()
	u.area.Lock()
	for _, t := range u.tickers {
		t.Tick(&u.area.Area, now)
	}
	u.area.Unlock()

	if u.lastUpdate.IsZero() || now.Sub(u.lastUpdate) >= u.options.Interval {
		u.lastUpdate = now
		u.step()
		return
	}
	u.publish()
	u.refreshView()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.mode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
//with MaxSteps set the universe finishes right after generation MaxSteps
func (u *BaseUniverse) step() {

	finished := false
	rm := u.mode()
	maxIter := u.options.MaxSteps
	defer func() {
		u.publish()
		if finished {
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	u.state.Lock()
	if maxIter != 0 && u.state.IterationNum >= maxIter {
		u.state.Unlock()
		finished = true
		return
	}
	u.state.IterationNum++
	iter := u.state.IterationNum
	u.state.Unlock()

	u.switchRunningState(RunningStateStep)
	isAlive, changed := u.nextIteration()
	if maxIter != 0 && iter >= maxIter {
		finished = true
	}
	if u.options.StopOnStill && (!isAlive || !changed) {
		finished = true
	}
}

//clear clears the unvierse data, reset all counters and the tickers state
func (u *BaseUniverse) clear() {
	u.state.Lock()
	u.area.Lock()

	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.ProtectedCells = 0
	u.area.clear()
	u.state.RunningMode = RunningStateManual
	u.area.Unlock()
	u.state.Unlock()
	for _, t := range u.tickers {
		if r, ok := t.(Resetter); ok {
			r.Reset()
		}
	}
	u.lastUpdate = time.Time{}
	u.switchRunningState(RunningStateManual)
	u.publish()
	u.refreshView()

}

//_nextIteration does one simulation cycle
//the simplest implementation: Advance creates the new area buffer with full size on each call
//and the new buffer replaces the old one
func (u *BaseUniverse) _nextIteration() (hasLiveEnitities bool, changed bool) {
	u.area.Lock()
	defer u.area.Unlock()
	start := time.Now()
	a := Advance(u.area.Area)
	a.walk(func(y int, x int, e Cell) {
		hasLiveEnitities = hasLiveEnitities || e != Dead
		changed = changed || e != u.area.Entities[y][x]
	})
	u.area.Entities = a.Entities
	u.recordIteration(start)
	return
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
