// Tracks per-run statistics: waiting time, waiting probability and clients served.

package sim

import (
	"fmt"
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// waitScale converts waiting times to integer histogram units (1/1000 time unit).
	waitScale = 1000
	// defaultMaxRecordedWait is the smallest histogram upper bound, in histogram units.
	defaultMaxRecordedWait = int64(1e9)
	// histogramCeiling bounds the histogram for unbounded or enormous time limits.
	histogramCeiling = int64(1) << 52
)

// Accumulator is a running sum normalized once at the end of a run.
type Accumulator struct {
	total float64
}

// Add increases the running sum by amount.
func (a *Accumulator) Add(amount float64) {
	a.total += amount
}

// Total returns the raw running sum.
func (a *Accumulator) Total() float64 {
	return a.total
}

// Finalize returns the sum normalized by totalArrivals.
func (a *Accumulator) Finalize(totalArrivals int) float64 {
	return a.total / float64(totalArrivals)
}

// Statistics accumulates raw per-run sums while the event loop runs.
type Statistics struct {
	WaitingTime Accumulator // sum of (dispatch time - arrival time)
	Waited      Accumulator // clients whose waiting time was nonzero
	Served      Accumulator // successful server assignments

	waits   *hdrhistogram.Histogram
	highest int64
	maxWait float64
}

// NewStatistics creates empty accumulators whose waiting-time histogram
// covers [0, maxWait] time units at 3 significant figures. A client never
// waits longer than the run's time limit, so the simulator passes its horizon.
// Limits below 1e6 time units, and NaN, use a [0, 1e6] range.
func NewStatistics(maxWait float64) *Statistics {
	limit := maxWait * waitScale
	highest := defaultMaxRecordedWait
	switch {
	case limit >= float64(histogramCeiling):
		highest = histogramCeiling
	case limit > float64(highest):
		highest = int64(math.Ceil(limit))
	}
	return &Statistics{
		waits:   hdrhistogram.New(1, highest, 3),
		highest: highest,
	}
}

// RecordDispatch records one client assigned to a server after waiting wait time units.
func (s *Statistics) RecordDispatch(wait float64) {
	s.WaitingTime.Add(wait)
	if wait != 0 {
		s.Waited.Add(1)
	}
	s.Served.Add(1)

	s.maxWait = max(s.maxWait, wait)

	v := max(0, min(math.Round(wait*waitScale), float64(s.highest)))
	// v is clamped to the histogram range, so RecordValue cannot fail.
	_ = s.waits.RecordValue(int64(v))
}

// Finalize normalizes the accumulators by totalArrivals.
// Returns ErrEmptyInput when totalArrivals is not positive.
func (s *Statistics) Finalize(system SystemType, totalArrivals int) (*SimulationResult, error) {
	if totalArrivals <= 0 {
		return nil, fmt.Errorf("%w: cannot normalize statistics for %s", ErrEmptyInput, system)
	}
	return &SimulationResult{
		System:             system,
		Arrivals:           totalArrivals,
		AverageWaitingTime: s.WaitingTime.Finalize(totalArrivals),
		WaitingProbability: s.Waited.Finalize(totalArrivals),
		ClientsServed:      int(s.Served.Total()),
		WaitP50:            s.waitAtQuantile(50),
		WaitP95:            s.waitAtQuantile(95),
		WaitP99:            s.waitAtQuantile(99),
		WaitMax:            s.maxWait,
	}, nil
}

func (s *Statistics) waitAtQuantile(q float64) float64 {
	if s.waits.TotalCount() == 0 {
		return 0
	}
	return float64(s.waits.ValueAtQuantile(q)) / waitScale
}

// SimulationResult is the finalized, read-only outcome of one run.
type SimulationResult struct {
	System   SystemType `json:"system"`
	Arrivals int        `json:"arrivals"`

	AverageWaitingTime float64 `json:"average_waiting_time"`
	WaitingProbability float64 `json:"waiting_probability"`
	ClientsServed      int     `json:"clients_served"`

	// Waiting-time distribution over served clients. Percentiles carry histogram
	// precision (3 significant figures); WaitMax is exact.
	WaitP50 float64 `json:"wait_p50"`
	WaitP95 float64 `json:"wait_p95"`
	WaitP99 float64 `json:"wait_p99"`
	WaitMax float64 `json:"wait_max"`

	// Pool accounting; only the elastic system changes size.
	InitialServers int `json:"initial_servers"`
	PeakServers    int `json:"peak_servers"`
	FinalServers   int `json:"final_servers"`
	ScaleUps       int `json:"scale_ups"`
	ScaleDowns     int `json:"scale_downs"`

	EventsProcessed int     `json:"events_processed"`
	EndTime         float64 `json:"end_time"`
}

// Value returns the result's value for a comparison metric.
func (r *SimulationResult) Value(m Metric) float64 {
	switch m.Name {
	case MetricAverageWaitingTime.Name:
		return r.AverageWaitingTime
	case MetricWaitingProbability.Name:
		return r.WaitingProbability
	case MetricClientsServed.Name:
		return float64(r.ClientsServed)
	default:
		panic(fmt.Sprintf("SimulationResult.Value: unknown metric %q", m.Name))
	}
}
