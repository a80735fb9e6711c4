package sim

import "fmt"

// EventKind identifies what happens when an event fires.
type EventKind int

const (
	// EventArrival is a client entering the system.
	EventArrival EventKind = iota
	// EventServerReady is a server finishing its current job.
	EventServerReady
)

// String returns the kind name used in logs and traces.
func (k EventKind) String() string {
	switch k {
	case EventArrival:
		return "Arrival"
	case EventServerReady:
		return "ServerReady"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is an immutable (timestamp, kind) pair.
// seq records insertion order and breaks timestamp ties.
type Event struct {
	time float64
	kind EventKind
	seq  uint64
}

// Timestamp returns the simulation time at which the event fires.
func (e Event) Timestamp() float64 {
	return e.time
}

// Kind returns the event kind.
func (e Event) Kind() EventKind {
	return e.kind
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%g", e.kind, e.time)
}
