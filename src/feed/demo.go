package feed

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

//Demo generates random donations and the matching running total
type Demo struct {
	Rng      *rand.Rand
	Interval time.Duration
	Max      float64 //largest single donation
	Start    float64 //total before the first donation, announced first when positive

	total float64
}

var tiers = []float64{5, 10, 20, 25, 50, 100}

//Next returns the next donation amount, mostly round tiers with the occasional odd value
func (d *Demo) Next() float64 {
	limit := d.Max
	if limit < 1 {
		limit = 100
	}
	var v float64
	if d.Rng.IntN(4) == 0 {
		v = 1 + d.Rng.Float64()*(limit-1)
		v = math.Round(v*100) / 100
	} else {
		v = tiers[d.Rng.IntN(len(tiers))]
	}
	return math.Min(v, limit)
}

//Events returns the events of one demo round: a donation followed by the new total
func (d *Demo) Events() []Event {
	amount := d.Next()
	d.total += amount
	return []Event{
		{Kind: KindDonation, ID: uuid.NewString(), Amount: amount},
		{Kind: KindTotal, ID: uuid.NewString(), Amount: d.total},
	}
}

//Run emits a round every Interval until ctx is done
func (d *Demo) Run(ctx context.Context, out chan<- Event) {
	d.total = d.Start
	if d.Start > 0 {
		select {
		case out <- Event{Kind: KindTotal, ID: uuid.NewString(), Amount: d.total}:
		case <-ctx.Done():
			return
		}
	}
	interval := d.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-tk.C:
			for _, ev := range d.Events() {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
