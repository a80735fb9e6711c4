package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_Next_ReturnsTimestampOrder(t *testing.T) {
	// GIVEN events scheduled out of order
	q := NewEventQueue()
	q.Schedule(5, EventArrival)
	q.Schedule(1, EventServerReady)
	q.Schedule(3, EventArrival)

	// WHEN they are drained
	var got []float64
	for {
		ev, ok := q.Next()
		if !ok {
			break
		}
		got = append(got, ev.Timestamp())
	}

	// THEN they come out sorted by timestamp
	assert.Equal(t, []float64{1, 3, 5}, got)
}

func TestEventQueue_EqualTimestamps_KeepInsertionOrder(t *testing.T) {
	// GIVEN several events at the same time, alternating kinds
	q := NewEventQueue()
	kinds := []EventKind{EventServerReady, EventArrival, EventServerReady, EventArrival, EventArrival}
	for _, k := range kinds {
		q.Schedule(2, k)
	}

	// WHEN they are drained
	// THEN kinds come back in the order they were scheduled
	for i, want := range kinds {
		ev, ok := q.Next()
		require.True(t, ok)
		assert.Equal(t, want, ev.Kind(), "event %d", i)
	}
}

func TestEventQueue_Empty_ReportsNotOK(t *testing.T) {
	q := NewEventQueue()

	_, ok := q.Next()
	assert.False(t, ok)
	_, ok = q.Peek()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestEventQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(4, EventArrival)

	ev, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 4.0, ev.Timestamp())
	assert.Equal(t, 1, q.Len())

	next, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, ev, next)
	assert.Equal(t, 0, q.Len())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "Arrival", EventArrival.String())
	assert.Equal(t, "ServerReady", EventServerReady.String())
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}
