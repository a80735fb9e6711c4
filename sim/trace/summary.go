package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRoutings     int
	UniqueQueues      int
	QueueDistribution map[int]int // queue index → count of clients routed
	MaxQueueLength    int
	ScaleUps          int // servers added
	ScaleDowns        int // servers removed
	PeakPoolSize      int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		QueueDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalRoutings = len(st.Routings)
	for _, r := range st.Routings {
		summary.QueueDistribution[r.Queue]++
		if r.QueueLength > summary.MaxQueueLength {
			summary.MaxQueueLength = r.QueueLength
		}
	}
	summary.UniqueQueues = len(summary.QueueDistribution)

	for _, s := range st.Scalings {
		if s.Delta > 0 {
			summary.ScaleUps += s.Delta
		} else {
			summary.ScaleDowns -= s.Delta
		}
		if s.PoolSize > summary.PeakPoolSize {
			summary.PeakPoolSize = s.PoolSize
		}
	}
	return summary
}
