package universe

import (
	"testing"
)

var (
	testTemplate = Template{"ts1", "", []Point{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}}
)

const (
	width  = 200
	height = 200
)

func universeStep(u Universe, b *testing.B) {
	u.AddTemplate(testTemplate)
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		u.SettleTemplate("ts1")
		b.StartTimer()
		u.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual {
				break
			}
		}
	}
	u.Close()
}

func universeRun(u Universe, b *testing.B) {
	u.AddTemplate(testTemplate)
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		u.SettleTemplate("ts1")
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
}

func newStateCh() chan Status {
	return make(chan Status, 10)
}

func newUniverseOptions() *Options {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.FrameInterval = 0
	o.MaxSteps = 100
	o.StopOnStill = true
	o.Width = width
	o.Height = height
	return &o
}

func Benchmark_Step(b *testing.B) {
	for _, e := range EngineNames() {
		b.Run(e, func(b *testing.B) {
			u := Engines[e](newUniverseOptions(), newStateCh())
			universeStep(u, b)
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, e := range EngineNames() {
		b.Run(e, func(b *testing.B) {
			u := Engines[e](newUniverseOptions(), newStateCh())
			universeRun(u, b)
		})
	}
}
