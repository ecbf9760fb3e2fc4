package overlay

import (
	"container/heap"
	"time"

	"lifeoverlay/src/universe"
)

//expiry is one tracked cell waiting to be released to the simulation
type expiry struct {
	p     universe.Point
	state universe.Cell //the state the cell was stamped with
	due   time.Time
	seq   uint64
}

//expiryQueue is a min-heap ordered by due time, then by scheduling order
type expiryQueue []expiry

func (q expiryQueue) Len() int { return len(q) }
func (q expiryQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q expiryQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *expiryQueue) Push(x interface{}) { *q = append(*q, x.(expiry)) }
func (q *expiryQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

//Scheduler reverts stamped cells to Alive once their delay is over
//
//there is no cancellation: a cell whose state changed before its expiry is
//simply left alone when the expiry fires
type Scheduler struct {
	queue expiryQueue
	seq   uint64
}

//Schedule tracks every point, stamped as state, until due
func (s *Scheduler) Schedule(pts []universe.Point, state universe.Cell, due time.Time) {
	for _, p := range pts {
		s.seq++
		heap.Push(&s.queue, expiry{p: p, state: state, due: due, seq: s.seq})
	}
}

//Fire releases every expiry due at now and returns how many cells became Alive
//a released cell is no longer tracked whether it was reverted or not
func (s *Scheduler) Fire(a *universe.Area, now time.Time) (reverted int) {
	for len(s.queue) > 0 && !s.queue[0].due.After(now) {
		e := heap.Pop(&s.queue).(expiry)
		if a.At(e.p) == e.state {
			a.Set(e.p, universe.Alive)
			reverted++
		}
	}
	return
}

//Pending returns the number of tracked cells
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

//Next returns the earliest due time
func (s *Scheduler) Next() (time.Time, bool) {
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].due, true
}

//Reset forgets every tracked cell
func (s *Scheduler) Reset() {
	s.queue = s.queue[:0]
}
