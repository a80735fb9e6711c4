package sim

import "container/heap"

// EventQueue is a stable min-heap of events.
// Ordering: timestamp, then insertion order. Once returned by Next an event
// is never seen again.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Schedule inserts an event firing at time t.
func (q *EventQueue) Schedule(t float64, kind EventKind) {
	q.nextSeq++
	heap.Push(&q.events, Event{time: t, kind: kind, seq: q.nextSeq})
}

// Next removes and returns the earliest event.
// ok is false when the queue is empty.
func (q *EventQueue) Next() (ev Event, ok bool) {
	if q.events.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(&q.events).(Event), true
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (ev Event, ok bool) {
	if q.events.Len() == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}

// eventHeap implements heap.Interface.
// See https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
