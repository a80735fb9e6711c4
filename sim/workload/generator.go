// Package workload generates client arrival timestamps shared by every
// architecture under comparison.
package workload

import (
	"fmt"
	"math/rand"
)

// Arrival process names accepted by ArrivalSpec.Process.
const (
	ProcessPoisson  = "poisson"
	ProcessGamma    = "gamma"
	ProcessWeibull  = "weibull"
	ProcessConstant = "constant"
)

var validProcesses = map[string]bool{
	"":              true, // empty defaults to poisson
	ProcessPoisson:  true,
	ProcessGamma:    true,
	ProcessWeibull:  true,
	ProcessConstant: true,
}

// IsValidProcess returns true if name is a recognized arrival process.
func IsValidProcess(name string) bool {
	return validProcesses[name]
}

// ValidProcessNames returns the accepted non-empty process names.
func ValidProcessNames() []string {
	return []string{ProcessPoisson, ProcessGamma, ProcessWeibull, ProcessConstant}
}

// ArrivalSpec selects the inter-arrival distribution.
// CV is the coefficient of variation for gamma and weibull; nil means 1.
type ArrivalSpec struct {
	Process string
	CV      *float64
}

func (s ArrivalSpec) cv() float64 {
	if s.CV == nil || *s.CV <= 0 {
		return 1.0
	}
	return *s.CV
}

// GenerateArrivals returns arrival timestamps in [0, horizon) at the given
// rate (arrivals per time unit). The result is non-decreasing and depends
// only on spec, rate, horizon and the rng state.
func GenerateArrivals(spec ArrivalSpec, rate, horizon float64, rng *rand.Rand) ([]float64, error) {
	if !IsValidProcess(spec.Process) {
		return nil, fmt.Errorf("unknown arrival process %q", spec.Process)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("arrival rate must be positive, got %g", rate)
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %g", horizon)
	}
	if rng == nil {
		return nil, fmt.Errorf("rng must not be nil")
	}

	sampler := NewArrivalSampler(spec, rate)
	arrivals := make([]float64, 0, int(rate*horizon)+1)
	t := 0.0
	for {
		t += sampler.SampleIAT(rng)
		if t >= horizon {
			break
		}
		arrivals = append(arrivals, t)
	}
	return arrivals, nil
}
