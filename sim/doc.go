// Package sim provides the discrete-event engine that compares queueing
// architectures under a shared arrival stream.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event_queue.go: stable min-heap of (timestamp, kind) events
//   - dispatch.go: the four architectures as DispatchPolicy implementations
//   - simulator.go: the event loop and the dispatch round
//
// # Architecture
//
// A run owns its EventQueue, Pool (servers and wait queues) and Statistics.
// Nothing is shared between runs, so independent configurations may run on
// separate goroutines as long as each gets its own *rand.Rand. Sub-packages:
//   - sim/workload/: arrival timestamp generation (poisson, gamma, weibull, constant)
//   - sim/trace/: routing and pool-scaling decision records
//   - sim/sensitivity/: parameter sweeps and first-order sensitivity indices
//   - sim/chart/: ASCII scatter plots for sweep output
//
// # Key Interfaces
//
//   - DispatchPolicy: route arrivals to a queue, map servers to queues,
//     and grow or shrink the pool around each dispatch round
//
// RunSimulation runs one configuration; CompareResults ranks several.
package sim
