package game

import (
	"sort"
	"time"

	"chosenoffset.com/pong/internal/render"
)

// EventQueue buffers input events until the simulation reaches their time.
// Events are kept ordered by timestamp; events with equal stamps keep their
// arrival order.
type EventQueue struct {
	events []render.Event
}

// Push adds events to the queue.
func (q *EventQueue) Push(events ...render.Event) {
	for _, ev := range events {
		// Backends deliver in order almost always, so search from the back.
		i := len(q.events)
		for i > 0 && q.events[i-1].Time > ev.Time {
			i--
		}
		q.events = append(q.events, render.Event{})
		copy(q.events[i+1:], q.events[i:])
		q.events[i] = ev
	}
}

// PopUntil removes every event stamped at or before t and appends them to dst
// in order.
func (q *EventQueue) PopUntil(t time.Duration, dst []render.Event) []render.Event {
	n := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Time > t
	})
	if n == 0 {
		return dst
	}
	dst = append(dst, q.events[:n]...)
	rest := copy(q.events, q.events[n:])
	q.events = q.events[:rest]
	return dst
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
