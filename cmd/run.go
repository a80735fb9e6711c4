package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/trace"
	"github.com/inference-sim/queue-sim/sim/workload"
)

// Comparison is the outcome of running every selected system on one shared
// arrival stream.
type Comparison struct {
	RunID    string                                   `json:"run_id"`
	Scenario Scenario                                 `json:"scenario"`
	Arrivals int                                      `json:"arrivals"`
	Results  map[sim.SystemType]*sim.SimulationResult `json:"results"`
	Report   sim.Report                               `json:"report"`
	Traces   map[sim.SystemType]*trace.TraceSummary   `json:"traces,omitempty"`
	WallTime time.Duration                            `json:"-"`
}

// runComparison generates the arrival stream once and runs each system on
// its own goroutine with its own random stream.
func runComparison(ctx context.Context, sc Scenario) (*Comparison, error) {
	start := time.Now()
	rngs := sim.NewPartitionedRNG(sim.NewSimulationKey(sc.Seed))

	arrivals, err := workload.GenerateArrivals(sc.Arrival, sc.ArrivalRate, sc.ModellingTime, rngs.ForSubsystem(sim.SubsystemArrivals))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sim.ErrConfiguration, err)
	}
	logrus.Infof("Generated %d arrivals (rate=%g, process=%s, horizon=%g)", len(arrivals), sc.ArrivalRate, sc.Process, sc.ModellingTime)

	// PartitionedRNG is not safe for concurrent use; derive every stream up front.
	type job struct {
		cfg    sim.SystemConfiguration
		runner *sim.Simulator
	}
	jobs := make([]job, len(sc.Systems))
	for i, st := range sc.Systems {
		cfg := sc.systemConfig(st)
		s, err := sim.NewSimulator(cfg, sc.ModellingTime, arrivals, rngs.ForSystem(st))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", st, err)
		}
		s.Trace = trace.NewSimulationTrace(sc.TraceLevel)
		jobs[i] = job{cfg: cfg, runner: s}
	}

	results := make([]*sim.SimulationResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = j.runner.Run()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Comparison{
		RunID:    uuid.NewString(),
		Scenario: sc,
		Arrivals: len(arrivals),
		Results:  make(map[sim.SystemType]*sim.SimulationResult, len(jobs)),
		WallTime: time.Since(start),
	}
	for i, j := range jobs {
		c.Results[j.cfg.Type] = results[i]
		if j.runner.Trace != nil {
			if c.Traces == nil {
				c.Traces = make(map[sim.SystemType]*trace.TraceSummary)
			}
			c.Traces[j.cfg.Type] = trace.Summarize(j.runner.Trace)
		}
	}
	c.Report = sim.CompareResults(c.Results)
	return c, nil
}
