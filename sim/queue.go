// Implements the WaitQueue, which holds the arrival timestamps of clients
// waiting for a server. Clients are enqueued on arrival and dequeued on dispatch.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO of pending arrival timestamps.
type WaitQueue struct {
	queue []float64
}

// Enqueue adds an arrival timestamp to the back of the queue.
func (wq *WaitQueue) Enqueue(arrival float64) {
	wq.queue = append(wq.queue, arrival)
}

// Len returns the number of waiting clients.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the oldest arrival timestamp without removing it.
func (wq *WaitQueue) Peek() (float64, bool) {
	if len(wq.queue) == 0 {
		return 0, false
	}
	return wq.queue[0], true
}

// Dequeue removes and returns the oldest arrival timestamp.
// Panics on an empty queue: the driver only dequeues after checking Len.
func (wq *WaitQueue) Dequeue() float64 {
	if len(wq.queue) == 0 {
		panic("WaitQueue.Dequeue: queue is empty")
	}
	head := wq.queue[0]
	wq.queue = wq.queue[1:]
	return head
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
