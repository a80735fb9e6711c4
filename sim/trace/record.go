// Package trace provides decision-trace recording for dispatch policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RoutingRecord captures where a single arriving client was queued.
type RoutingRecord struct {
	Clock       float64
	Queue       int // index of the chosen queue
	QueueLength int // length of the chosen queue after the client joined
}

// ScaleRecord captures a change in the elastic server pool.
type ScaleRecord struct {
	Clock       float64
	Delta       int // positive on scale-up, negative on scale-down
	PoolSize    int // pool size after the change
	QueueLength int
}
