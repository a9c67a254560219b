package engine

import "testing"

func TestQueueEmitAndDrain(t *testing.T) {
	q := NewQueue(4, nil)
	q.Emit(Event{Type: EventSelfConnection})
	q.Emit(Event{Type: EventFriendMessage, Text: "hi"})

	ev := <-q.C()
	if ev.Type != EventSelfConnection {
		t.Fatalf("expected self connection first, got %v", ev.Type)
	}
	ev = <-q.C()
	if ev.Type != EventFriendMessage || ev.Text != "hi" {
		t.Fatalf("unexpected second event: %+v", ev)
	}
}

func TestQueueEmitDropsWhenFull(t *testing.T) {
	q := NewQueue(1, nil)
	q.Emit(Event{Type: EventSelfConnection})
	q.Emit(Event{Type: EventFriendMessage})
	if q.dropped != 1 {
		t.Fatalf("expected 1 dropped event, got %d", q.dropped)
	}
	select {
	case ev := <-q.C():
		if ev.Type != EventSelfConnection {
			t.Fatalf("kept the wrong event: %v", ev.Type)
		}
	default:
		t.Fatalf("expected a buffered event")
	}
}
