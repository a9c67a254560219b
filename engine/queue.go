package engine

import (
	"context"

	"pkt.systems/pslog"
)

// Queue is a bounded single-consumer event queue. Engine backends emit into
// it; the client loop drains it between steps. Emit never blocks: when the
// queue is full the event is dropped and counted.
type Queue struct {
	ch      chan Event
	log     pslog.Logger
	dropped int
}

// NewQueue constructs a queue with the given depth.
func NewQueue(depth int, logger pslog.Logger) *Queue {
	if depth <= 0 {
		depth = 256
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Queue{ch: make(chan Event, depth), log: logger}
}

// C returns the receive side drained by the loop.
func (q *Queue) C() <-chan Event {
	return q.ch
}

// Emit enqueues an event without blocking.
func (q *Queue) Emit(ev Event) {
	select {
	case q.ch <- ev:
	default:
		q.dropped++
		q.log.Warn("event queue full, dropping event", "type", ev.Type, "dropped", q.dropped)
	}
}
