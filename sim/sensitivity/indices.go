package sensitivity

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/queue-sim/sim"
)

// DefaultBins is the number of equal-count bins used to estimate E[Y|X].
const DefaultBins = 10

// Index is the first-order sensitivity of one metric of one system to one parameter.
type Index struct {
	System     sim.SystemType `json:"system"`
	Metric     string         `json:"metric"`
	Parameter  Parameter      `json:"parameter"`
	FirstOrder float64        `json:"first_order"`
}

// FirstOrderIndices estimates S_i = Var(E[Y|X_i]) / Var(Y) for every
// (system, metric, parameter) triple by sorting samples on X_i and
// averaging Y within equal-count bins. Samples without results are skipped.
// Indices are clamped to [0, 1]; a metric with zero variance gets 0.
// Output order: systems in enumeration order, then metrics, then parameters.
func FirstOrderIndices(results []SampleResult, bins int) []Index {
	if bins <= 0 {
		bins = DefaultBins
	}
	var out []Index
	for _, st := range sim.SystemTypes() {
		var xs []Sample
		var rs []*sim.SimulationResult
		for _, sr := range results {
			if r, ok := sr.Results[st]; ok && r != nil {
				xs = append(xs, sr.Sample)
				rs = append(rs, r)
			}
		}
		if len(rs) == 0 {
			continue
		}
		for _, m := range sim.ComparisonMetrics() {
			ys := make([]float64, len(rs))
			for i, r := range rs {
				ys[i] = r.Value(m)
			}
			for _, p := range Parameters() {
				x := make([]float64, len(xs))
				for i, s := range xs {
					x[i] = s.Value(p)
				}
				out = append(out, Index{
					System:     st,
					Metric:     m.Name,
					Parameter:  p,
					FirstOrder: firstOrder(x, ys, bins),
				})
			}
		}
	}
	return out
}

// firstOrder bins y by ascending x. Ties in x never straddle two bins, so an
// integer parameter with few distinct values yields one bin per value.
func firstOrder(x, y []float64, bins int) float64 {
	n := len(y)
	if n < 2 {
		return 0
	}
	totalVar := stat.PopVariance(y, nil)
	if totalVar == 0 {
		return 0
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	per := max(n/bins, 1)
	var means, weights []float64
	var group []float64
	for k, idx := range order {
		group = append(group, y[idx])
		last := k == n-1
		boundary := len(group) >= per && (last || x[order[k+1]] != x[idx])
		if boundary || last {
			means = append(means, stat.Mean(group, nil))
			weights = append(weights, float64(len(group)))
			group = group[:0]
		}
	}
	if len(means) < 2 {
		return 0
	}
	s := stat.PopVariance(means, weights) / totalVar
	return min(max(s, 0), 1)
}
