// Package feed turns external donation events into overlay calls.
//
// Events arrive as JSON lines, one object per line:
//
//	{"type":"donation","id":"abc","amount":25.5}
//	{"type":"total","amount":"1234.00"}
//
// The amount is read from "amount", "value" or "data.amount" and may be a
// number or a numeric string.
package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

//Kind is the event type
type Kind int

const (
	KindDonation Kind = iota
	KindTotal
)

func (k Kind) String() string {
	switch k {
	case KindDonation:
		return "donation"
	case KindTotal:
		return "total"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

//Event is a single parsed feed entry
type Event struct {
	Kind   Kind
	ID     string
	Amount float64
}

//Sink receives the events, implemented by the overlay
type Sink interface {
	Donation(id string, amount float64)
	Total(value float64)
}

var amountPaths = []string{"amount", "value", "data.amount"}

//Parse decodes one JSON line, false for anything that is not a donation or a total
//a missing amount is reported as 0, the sink decides what to do with it
func Parse(line []byte) (Event, bool) {
	if !gjson.ValidBytes(line) {
		return Event{}, false
	}
	res := gjson.ParseBytes(line)
	if !res.IsObject() {
		return Event{}, false
	}

	var ev Event
	switch strings.ToLower(strings.TrimSpace(res.Get("type").String())) {
	case "donation":
		ev.Kind = KindDonation
	case "total":
		ev.Kind = KindTotal
	default:
		return Event{}, false
	}

	for _, p := range amountPaths {
		if v := res.Get(p); v.Exists() {
			ev.Amount = v.Float()
			break
		}
	}

	ev.ID = res.Get("id").String()
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	return ev, true
}

//ReadLines parses r line by line into out until EOF or ctx is done
//lines that are not events are logged and skipped
func ReadLines(ctx context.Context, r io.Reader, out chan<- Event) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		ev, ok := Parse(line)
		if !ok {
			log.Printf("feed: skipping line %d: %.80s", n, line)
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("feed: read line %d: %w", n+1, err)
	}
	return nil
}

//Pump delivers events to sink until events is closed or ctx is done
func Pump(ctx context.Context, events <-chan Event, sink Sink) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			Deliver(ev, sink)
		case <-ctx.Done():
			return
		}
	}
}

//Deliver hands a single event to sink
func Deliver(ev Event, sink Sink) {
	switch ev.Kind {
	case KindDonation:
		sink.Donation(ev.ID, ev.Amount)
	case KindTotal:
		sink.Total(ev.Amount)
	}
}
