package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"lifeoverlay/src/config"
	"lifeoverlay/src/feed"
	"lifeoverlay/src/glyph"
	"lifeoverlay/src/overlay"
	"lifeoverlay/src/universe"
	"lifeoverlay/src/view"
)

var testSample = universe.Template{
	Name:  "testSample1",
	Descr: "the test sample with 3 stable patterns",
	Coordinates: []universe.Point{
		{Row: -2, Col: -2}, {Row: -2, Col: -1},
		{Row: -1, Col: -2}, {Row: -1, Col: -1},
		{Row: 0, Col: 0},
		{Row: 1, Col: -1},
		{Row: 1, Col: 0},
		{Row: 2, Col: 0},
	},
}

func main() {
	cfg := initOptions()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	var stateCh chan universe.Status
	if cfg.View == config.ViewHeadless {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u := universe.Engines[cfg.Engine](&cfg.Universe, stateCh)
	u.AddTemplate(testSample)

	ov := overlay.New(cfg.Overlay, glyph.Default())
	ov.Attach(u)

	switch cfg.Pattern {
	case config.PatternRandom:
		u.SettleWithRandomData()
	case config.PatternNone:
	default:
		u.SettleTemplate(cfg.Pattern)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startFeed(ctx, cfg, ov)

	switch cfg.View {
	case config.ViewConsole:
		v := view.NewViewTerminal(ov)
		u.RegisterViewer(v)
		u.Run()
		v.Start()
	case config.ViewWindow:
		v := view.NewWindow(cfg.Scale, !cfg.Overlay.ImmuneTotal, ov)
		u.RegisterViewer(v)
		u.Run()
		v.Start()
	default:
		runHeadless(u, stateCh, cfg.JSON)
	}
	cancel()
	u.Close()
}

//startFeed connects the configured event source to the overlay
func startFeed(ctx context.Context, cfg *config.Config, sink feed.Sink) {
	events := make(chan feed.Event, 16)
	switch cfg.Feed {
	case config.FeedDemo:
		d := &feed.Demo{
			Rng:      universe.NewRNG(cfg.Universe.Seed + 1),
			Interval: cfg.DemoInterval,
			Max:      cfg.DemoMax,
			Start:    cfg.DemoStart,
		}
		go d.Run(ctx, events)
	case config.FeedStdin:
		go func() {
			if err := feed.ReadLines(ctx, os.Stdin, events); err != nil && ctx.Err() == nil {
				log.Println(err)
			}
		}()
	default:
		return
	}
	go feed.Pump(ctx, events, sink)
}

func runHeadless(u universe.Universe, stateCh chan universe.Status, json bool) {
	v := view.NewConsoleOut(json)
	u.RegisterViewer(v)
	v.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	startTime := time.Now()
	u.Run()
	for {
		select {
		case st := <-stateCh:
			if st.RunningMode == universe.RunningStateFinished {
				if !json {
					totalTime := time.Since(startTime).Round(time.Millisecond)
					fmt.Printf("Finished, iteration is: %v, total running time: %v\n", st.IterationNum, totalTime)
				}
				return
			}
		case <-interrupt:
			u.Stop()
			return
		}
	}
}

func initOptions() *config.Config {
	cfg := config.Default()
	configPath := config.PathFromArgs(os.Args[1:])
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			log.Fatalf("%v", err)
		}
	}

	var window, headless bool
	flaggy.SetName("lifeoverlay")
	flaggy.SetDescription("Game of Life with donation overlays")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&configPath, "c", "config", "Path to an ini configuration file")
	flaggy.Int(&cfg.Universe.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&cfg.Universe.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&cfg.Universe.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Duration(&cfg.Universe.FrameInterval, "f", "frame", "Interval between two redraws, overlays are updated at this rate")
	flaggy.Int(&cfg.Universe.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Int64(&cfg.Universe.Seed, "", "seed", "Random seed")
	flaggy.String(&cfg.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	flaggy.String(&cfg.Pattern, "p", "pattern", "Seed pattern [random|none|rpentomino|gliders|blocks|testSample1]")
	flaggy.Bool(&cfg.Overlay.ImmuneTotal, "", "immune", "Draw the running total as immune cells")
	flaggy.String(&cfg.Feed, "", "feed", "Event source [demo|stdin|none]")
	flaggy.Duration(&cfg.DemoInterval, "", "demoInterval", "Interval between two demo donations")
	flaggy.Bool(&window, "w", "window", "Open the desktop window (requires the ebiten build tag)")
	flaggy.Bool(&headless, "", "headless", "Print progress instead of the interactive terminal")
	flaggy.Bool(&cfg.JSON, "j", "json", "Headless output as JSON lines")
	flaggy.Int(&cfg.Scale, "", "scale", "Window pixels per cell")
	flaggy.String(&cfg.LogFile, "l", "log", "Write the log to a file")

	flaggy.Parse()

	switch {
	case window:
		cfg.View = config.ViewWindow
	case headless || cfg.JSON:
		cfg.View = config.ViewHeadless
	}
	cfg.Overlay.Seed = cfg.Universe.Seed

	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return cfg
}
