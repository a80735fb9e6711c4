package sensitivity

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/workload"
)

// SweepConfig describes a Monte-Carlo sweep over ParameterSpace.
// A nil Service means sim.DefaultServiceRange.
type SweepConfig struct {
	Space         ParameterSpace
	Samples       int
	ModellingTime float64
	Service       *sim.ServiceRange
	Arrival       workload.ArrivalSpec
	// Systems to run per sample; empty means every system type.
	Systems []sim.SystemType
	Seed    int64
	// Workers bounds concurrent samples; <= 0 means GOMAXPROCS.
	Workers int
}

// Validate checks the sweep before any run starts.
func (c SweepConfig) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive, got %d", sim.ErrConfiguration, c.Samples)
	}
	if c.ModellingTime <= 0 {
		return fmt.Errorf("%w: modelling time must be positive, got %g", sim.ErrConfiguration, c.ModellingTime)
	}
	if c.Service != nil {
		if err := c.Service.Validate(); err != nil {
			return err
		}
	}
	if err := c.Space.Validate(); err != nil {
		return fmt.Errorf("%w: %v", sim.ErrConfiguration, err)
	}
	for _, st := range c.Systems {
		if !st.IsValid() {
			return fmt.Errorf("%w: unknown system type %d", sim.ErrConfiguration, int(st))
		}
	}
	return nil
}

func (c SweepConfig) systems() []sim.SystemType {
	if len(c.Systems) == 0 {
		return sim.SystemTypes()
	}
	return c.Systems
}

// SampleResult holds every system's result for one sample.
// Results is nil for a sample whose arrival stream came out empty.
type SampleResult struct {
	Index   int                                      `json:"index"`
	Sample  Sample                                   `json:"sample"`
	Results map[sim.SystemType]*sim.SimulationResult `json:"results"`
}

// Sweep draws cfg.Samples parameter sets and runs every system for each one
// on a bounded worker pool. Results are returned in sample order and are
// identical for the same configuration regardless of worker count.
// The first run error cancels the remaining samples.
func Sweep(ctx context.Context, cfg SweepConfig) ([]SampleResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	master := rand.New(rand.NewSource(cfg.Seed))
	samples := SampleParameters(cfg.Space, cfg.Samples, master)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logrus.Infof("Sweeping %d samples over %d systems with %d workers", len(samples), len(cfg.systems()), workers)

	out := make([]SampleResult, len(samples))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sample := range samples {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runSample(cfg, i, sample)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// runSample owns its PartitionedRNG so samples share no state.
func runSample(cfg SweepConfig, index int, sample Sample) (SampleResult, error) {
	rngs := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed + int64(index) + 1))
	arrivals, err := workload.GenerateArrivals(cfg.Arrival, sample.ArrivalRate, cfg.ModellingTime, rngs.ForSubsystem(sim.SubsystemArrivals))
	if err != nil {
		return SampleResult{}, fmt.Errorf("%w: %v", sim.ErrConfiguration, err)
	}
	res := SampleResult{Index: index, Sample: sample}
	if len(arrivals) == 0 {
		logrus.Warnf("sample %d: no arrivals at rate %g, skipping", index, sample.ArrivalRate)
		return res, nil
	}

	res.Results = make(map[sim.SystemType]*sim.SimulationResult, len(cfg.systems()))
	for _, st := range cfg.systems() {
		sc := sim.SystemConfiguration{
			Type:        st,
			ServerCount: sample.Servers,
			Service:     cfg.Service,
		}
		if st == sim.SharedElastic {
			sc.Thresholds = &sim.Thresholds{Low: sample.ThresholdLow, High: sample.ThresholdHigh}
		}
		r, err := sim.RunSimulation(sc, cfg.ModellingTime, arrivals, rngs.ForSystem(st))
		if err != nil {
			return SampleResult{}, err
		}
		res.Results[st] = r
	}
	return res, nil
}
