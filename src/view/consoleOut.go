package view

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/tidwall/sjson"

	"lifeoverlay/src/overlay"
	"lifeoverlay/src/universe"
)

//ConsoleOut is the headless viewer, it prints progress as text or one JSON object per generation
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	json      bool
	startTime time.Time
	lastIter  int
	lastEvent string
}

func NewConsoleOut(json bool) *ConsoleOut {
	return &ConsoleOut{w: os.Stdout, json: json, lastIter: -1}
}

//SetOutput redirects the output, stdout by default
func (c *ConsoleOut) SetOutput(w io.Writer) {
	c.w = w
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if c.json {
		if st.IterationNum != c.lastIter || st.RunningMode == universe.RunningStateFinished {
			c.lastIter = st.IterationNum
			if line, err := StatusJSON(st, time.Since(c.startTime)); err == nil {
				_, _ = fmt.Fprintln(c.w, string(line))
			} else {
				log.Println("status json:", err)
			}
		}
		return
	}

	c.printEvents(st)
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration":  st.IterationNum,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
			"Protected cells": st.ProtectedCells,
		}
		if total, ok := st.Details["total"]; ok {
			resultData["Total"] = total
		}
		_, _ = fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun && st.IterationNum != c.lastIter {
		c.lastIter = st.IterationNum
		if st.IterationNum%10 == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

//printEvents prints the overlay events logged since the previous call
func (c *ConsoleOut) printEvents(st universe.Status) {
	events, _ := st.Details["events"].([]overlay.Event)
	start := 0
	for i, ev := range events {
		if ev.ID == c.lastEvent {
			start = i + 1
		}
	}
	for _, ev := range events[start:] {
		_, _ = fmt.Fprintf(c.w, "  %s %s: %s\n", ev.At.Format("15:04:05"), ev.Kind, ev.Message)
	}
	if len(events) > 0 {
		c.lastEvent = events[len(events)-1].ID
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	if c.json {
		return
	}
	o := c.u.Options()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	if !c.json {
		_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
	}
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}

var runningStateNames = map[universe.RunningState]string{
	universe.RunningStateManual:   "manual",
	universe.RunningStateStep:     "step",
	universe.RunningStateRun:      "run",
	universe.RunningStateFinished: "finished",
}

//StatusJSON encodes the status as a single JSON object
func StatusJSON(st universe.Status, elapsed time.Duration) ([]byte, error) {
	line := []byte(`{}`)
	var err error
	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		line, err = sjson.SetBytes(line, path, value)
	}
	set("iteration", st.IterationNum)
	set("mode", runningStateNames[st.RunningMode])
	set("live", st.LiveCells)
	set("protected", st.ProtectedCells)
	set("iteration_us", st.IterationTime.Microseconds())
	set("elapsed_ms", elapsed.Milliseconds())
	for _, k := range []string{"pending", "immune", "total", "displayed"} {
		if v, ok := st.Details[k]; ok {
			set("overlay."+k, v)
		}
	}
	if events, ok := st.Details["events"].([]overlay.Event); ok && len(events) > 0 {
		last := events[len(events)-1]
		set("overlay.last_event.id", last.ID)
		set("overlay.last_event.kind", last.Kind)
		set("overlay.last_event.message", last.Message)
	}
	if err != nil {
		return nil, fmt.Errorf("encode status: %w", err)
	}
	return line, nil
}
