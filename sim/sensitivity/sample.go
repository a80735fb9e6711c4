// Package sensitivity runs parameter sweeps over the queueing comparison and
// estimates how much each input parameter drives each output metric.
package sensitivity

import (
	"fmt"
	"math"
	"math/rand"
)

// Parameter names a swept input.
type Parameter string

const (
	ParamArrivalRate   Parameter = "arrival_rate"
	ParamServers       Parameter = "servers"
	ParamThresholdLow  Parameter = "threshold_low"
	ParamThresholdHigh Parameter = "threshold_high"
)

// Parameters returns the swept inputs in report order.
func Parameters() []Parameter {
	return []Parameter{ParamArrivalRate, ParamServers, ParamThresholdLow, ParamThresholdHigh}
}

// Range is an inclusive interval. Integer parameters round to the nearest value inside it.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (r Range) validate(name string, positive bool) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Max < r.Min {
		return fmt.Errorf("%s range [%g, %g] must satisfy min <= max", name, r.Min, r.Max)
	}
	if positive && r.Min <= 0 {
		return fmt.Errorf("%s range must be positive, got min %g", name, r.Min)
	}
	if r.Min < 0 {
		return fmt.Errorf("%s range must be non-negative, got min %g", name, r.Min)
	}
	return nil
}

// ParameterSpace bounds every swept input.
// ThresholdGap is the distance between the high and low elastic thresholds
// and must be at least 1 so every sample is a valid elastic configuration.
type ParameterSpace struct {
	ArrivalRate  Range `yaml:"arrival_rate" json:"arrival_rate"`
	Servers      Range `yaml:"servers" json:"servers"`
	ThresholdLow Range `yaml:"threshold_low" json:"threshold_low"`
	ThresholdGap Range `yaml:"threshold_gap" json:"threshold_gap"`
}

// DefaultParameterSpace brackets the command-line defaults.
var DefaultParameterSpace = ParameterSpace{
	ArrivalRate:  Range{Min: 1, Max: 6},
	Servers:      Range{Min: 5, Max: 15},
	ThresholdLow: Range{Min: 1, Max: 5},
	ThresholdGap: Range{Min: 1, Max: 6},
}

// Validate checks every range.
func (s ParameterSpace) Validate() error {
	if err := s.ArrivalRate.validate("arrival rate", true); err != nil {
		return err
	}
	if err := s.Servers.validate("servers", true); err != nil {
		return err
	}
	if err := s.ThresholdLow.validate("threshold low", false); err != nil {
		return err
	}
	if err := s.ThresholdGap.validate("threshold gap", true); err != nil {
		return err
	}
	if math.Round(s.Servers.Max) < 1 {
		return fmt.Errorf("servers range must contain an integer >= 1")
	}
	if math.Round(s.ThresholdGap.Max) < 1 {
		return fmt.Errorf("threshold gap range must contain an integer >= 1")
	}
	return nil
}

// Sample is one point in the parameter space.
type Sample struct {
	ArrivalRate   float64 `json:"arrival_rate"`
	Servers       int     `json:"servers"`
	ThresholdLow  int     `json:"threshold_low"`
	ThresholdHigh int     `json:"threshold_high"`
}

// Value returns the sample's coordinate for p.
func (s Sample) Value(p Parameter) float64 {
	switch p {
	case ParamArrivalRate:
		return s.ArrivalRate
	case ParamServers:
		return float64(s.Servers)
	case ParamThresholdLow:
		return float64(s.ThresholdLow)
	case ParamThresholdHigh:
		return float64(s.ThresholdHigh)
	default:
		panic(fmt.Sprintf("Sample.Value: unknown parameter %q", p))
	}
}

// SampleParameters draws n independent uniform samples from space.
// The same rng state always yields the same samples.
func SampleParameters(space ParameterSpace, n int, rng *rand.Rand) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		low := uniformInt(rng, space.ThresholdLow, 0)
		samples[i] = Sample{
			ArrivalRate:  uniform(rng, space.ArrivalRate),
			Servers:      uniformInt(rng, space.Servers, 1),
			ThresholdLow: low,
		}
		samples[i].ThresholdHigh = low + uniformInt(rng, space.ThresholdGap, 1)
	}
	return samples
}

func uniform(rng *rand.Rand, r Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// uniformInt draws an integer uniformly from the rounded range, never below floor.
func uniformInt(rng *rand.Rand, r Range, floor int) int {
	lo := max(int(math.Round(r.Min)), floor)
	hi := max(int(math.Round(r.Max)), lo)
	return lo + rng.Intn(hi-lo+1)
}
