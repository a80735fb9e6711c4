package sim

// Metric names a comparison metric and its optimization direction.
type Metric struct {
	Name          string
	LowerIsBetter bool
}

var (
	MetricAverageWaitingTime = Metric{Name: "average_waiting_time", LowerIsBetter: true}
	MetricWaitingProbability = Metric{Name: "waiting_probability", LowerIsBetter: true}
	MetricClientsServed      = Metric{Name: "clients_served", LowerIsBetter: false}
)

// ComparisonMetrics returns the compared metrics in report order.
func ComparisonMetrics() []Metric {
	return []Metric{MetricAverageWaitingTime, MetricWaitingProbability, MetricClientsServed}
}

// ReportRow holds one system's normalized metrics.
type ReportRow struct {
	System             SystemType `json:"system"`
	AverageWaitingTime float64    `json:"average_waiting_time"`
	WaitingProbability float64    `json:"waiting_probability"`
	ClientsServed      int        `json:"clients_served"`
}

// BestEntry names the system achieving the best value of one metric.
type BestEntry struct {
	Metric string     `json:"metric"`
	System SystemType `json:"system"`
	Value  float64    `json:"value"`
}

// Report is the cross-configuration comparison.
type Report struct {
	Rows []ReportRow `json:"rows"`
	Best []BestEntry `json:"best"`
}

// CompareResults builds one row per system type present in results, in
// SystemTypes order, and the best system per metric. Ties go to the system
// encountered first in that order. Nil results are skipped.
// The input is not modified, so repeated calls return equal reports.
func CompareResults(results map[SystemType]*SimulationResult) Report {
	report := Report{Rows: make([]ReportRow, 0, len(results))}
	ordered := make([]*SimulationResult, 0, len(results))
	for _, t := range SystemTypes() {
		r, ok := results[t]
		if !ok || r == nil {
			continue
		}
		ordered = append(ordered, r)
		report.Rows = append(report.Rows, ReportRow{
			System:             t,
			AverageWaitingTime: r.AverageWaitingTime,
			WaitingProbability: r.WaitingProbability,
			ClientsServed:      r.ClientsServed,
		})
	}
	if len(ordered) == 0 {
		return report
	}

	for _, m := range ComparisonMetrics() {
		best := ordered[0]
		bestValue := best.Value(m)
		for _, r := range ordered[1:] {
			v := r.Value(m)
			// strict comparison keeps the first-encountered system on ties
			if (m.LowerIsBetter && v < bestValue) || (!m.LowerIsBetter && v > bestValue) {
				best, bestValue = r, v
			}
		}
		report.Best = append(report.Best, BestEntry{Metric: m.Name, System: best.System, Value: bestValue})
	}
	return report
}
