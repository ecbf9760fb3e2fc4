package feed

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line   string
		kind   Kind
		amount float64
		id     string
	}{
		{`{"type":"donation","id":"a1","amount":25.5}`, KindDonation, 25.5, "a1"},
		{`{"type":"Donation","amount":"10.00"}`, KindDonation, 10, ""},
		{`{"type":"total","value":1234}`, KindTotal, 1234, ""},
		{`{"type":"total","data":{"amount":"99.9"}}`, KindTotal, 99.9, ""},
		{`{"type":"donation"}`, KindDonation, 0, ""},
	}
	for _, tc := range cases {
		ev, ok := Parse([]byte(tc.line))
		if !ok {
			t.Fatalf("%s rejected", tc.line)
		}
		if ev.Kind != tc.kind || ev.Amount != tc.amount {
			t.Fatalf("%s parsed as %v %v", tc.line, ev.Kind, ev.Amount)
		}
		if tc.id != "" && ev.ID != tc.id {
			t.Fatalf("%s has id %q", tc.line, ev.ID)
		}
		if ev.ID == "" {
			t.Fatalf("%s has no id", tc.line)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, line := range []string{
		``,
		`not json`,
		`[1,2,3]`,
		`{"type":"refund","amount":5}`,
		`{"amount":5}`,
	} {
		if ev, ok := Parse([]byte(line)); ok {
			t.Fatalf("%q accepted as %+v", line, ev)
		}
	}
}

type recordingSink struct {
	donations []float64
	totals    []float64
}

func (r *recordingSink) Donation(id string, amount float64) { r.donations = append(r.donations, amount) }
func (r *recordingSink) Total(value float64)                { r.totals = append(r.totals, value) }

func TestReadLinesAndPump(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"total","amount":100}`,
		``,
		`garbage`,
		`{"type":"donation","amount":5}`,
		`{"type":"total","amount":105}`,
	}, "\n")

	events := make(chan Event, 10)
	if err := ReadLines(context.Background(), strings.NewReader(input), events); err != nil {
		t.Fatalf("read: %v", err)
	}
	close(events)

	sink := &recordingSink{}
	Pump(context.Background(), events, sink)
	if len(sink.donations) != 1 || sink.donations[0] != 5 {
		t.Fatalf("donations %v", sink.donations)
	}
	if len(sink.totals) != 2 || sink.totals[0] != 100 || sink.totals[1] != 105 {
		t.Fatalf("totals %v", sink.totals)
	}
}

func TestReadLinesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	events := make(chan Event)
	err := ReadLines(ctx, strings.NewReader(`{"type":"donation","amount":5}`), events)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDemoRoundsKeepRunningTotal(t *testing.T) {
	d := &Demo{Rng: rand.New(rand.NewPCG(1, 2)), Max: 50}
	sum := 0.0
	for i := 0; i < 100; i++ {
		ev := d.Events()
		if len(ev) != 2 || ev[0].Kind != KindDonation || ev[1].Kind != KindTotal {
			t.Fatalf("unexpected round %+v", ev)
		}
		if ev[0].Amount < 1 || ev[0].Amount > 50 {
			t.Fatalf("donation %v outside 1..50", ev[0].Amount)
		}
		sum += ev[0].Amount
		if diff := ev[1].Amount - sum; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("total %v, donations sum to %v", ev[1].Amount, sum)
		}
	}
}

func TestDemoRunAnnouncesStart(t *testing.T) {
	d := &Demo{Rng: rand.New(rand.NewPCG(3, 4)), Interval: time.Millisecond, Start: 500}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan Event)
	go d.Run(ctx, out)

	first := <-out
	if first.Kind != KindTotal || first.Amount != 500 {
		t.Fatalf("first event %+v", first)
	}
	don := <-out
	tot := <-out
	if don.Kind != KindDonation || tot.Kind != KindTotal || tot.Amount != 500+don.Amount {
		t.Fatalf("round %+v %+v", don, tot)
	}
}
