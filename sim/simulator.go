// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, system state, and the event loop.
// A Simulator runs once; it owns its event queue, pool and statistics exclusively.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventQueue has all pending arrival and server-ready events
	EventQueue *EventQueue
	Pool       *Pool
	Policy     DispatchPolicy
	Stats      *Statistics
	// Trace records dispatch decisions when non-nil.
	Trace *trace.SimulationTrace

	config   SystemConfiguration
	rng      *rand.Rand
	arrivals int

	eventsProcessed   int
	arrivalsProcessed int
	peakServers       int
	scaleUps          int
	scaleDowns        int
	finished          bool
}

// NewSimulator validates its inputs and schedules one arrival event per timestamp.
// arrivals must be non-empty, non-negative and non-decreasing.
// rng is consumed for service durations and random routing; pass a dedicated
// instance per run to keep runs reproducible.
func NewSimulator(cfg SystemConfiguration, horizon float64, arrivals []float64, rng *rand.Rand) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source must not be nil", ErrConfiguration)
	}
	if math.IsNaN(horizon) {
		return nil, fmt.Errorf("%w: time limit is NaN", ErrConfiguration)
	}
	if len(arrivals) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, cfg.Type)
	}
	if err := validateArrivals(arrivals); err != nil {
		return nil, err
	}

	s := &Simulator{
		Horizon:    horizon,
		EventQueue: NewEventQueue(),
		Pool:       newPool(cfg),
		Policy:     NewDispatchPolicy(cfg),
		Stats:      NewStatistics(horizon),
		config:     cfg,
		rng:        rng,
		arrivals:   len(arrivals),
	}
	s.peakServers = s.Pool.Size()
	for _, t := range arrivals {
		s.EventQueue.Schedule(t, EventArrival)
	}
	return s, nil
}

func validateArrivals(arrivals []float64) error {
	prev := 0.0
	for i, t := range arrivals {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return fmt.Errorf("%w: arrival %d has invalid timestamp %g", ErrConfiguration, i, t)
		}
		if t < prev {
			return fmt.Errorf("%w: arrival timestamps must be non-decreasing (index %d: %g < %g)", ErrConfiguration, i, t, prev)
		}
		prev = t
	}
	return nil
}

// Step processes the next event. It returns false once the event queue is
// empty or the next event lies past the horizon; that event is discarded.
func (sim *Simulator) Step() bool {
	if sim.finished {
		return false
	}
	ev, ok := sim.EventQueue.Next()
	if !ok {
		sim.finished = true
		return false
	}
	if ev.Timestamp() > sim.Horizon {
		logrus.Debugf("[t=%g] %s is past horizon %g, stopping", ev.Timestamp(), ev, sim.Horizon)
		sim.finished = true
		return false
	}
	sim.Clock = ev.Timestamp()
	sim.eventsProcessed++
	logrus.Tracef("[t=%g] Executing %s", sim.Clock, ev)

	switch ev.Kind() {
	case EventArrival:
		sim.handleArrival(sim.Clock)
	case EventServerReady:
		sim.dispatch(sim.Clock)
	default:
		panic(fmt.Sprintf("Simulator.Step: unhandled event kind %s", ev.Kind()))
	}
	return true
}

// ArrivalsProcessed returns the number of arrival events handled so far.
func (sim *Simulator) ArrivalsProcessed() int {
	return sim.arrivalsProcessed
}

// Run steps until the simulation finishes and returns the finalized result.
func (sim *Simulator) Run() *SimulationResult {
	logrus.Infof("Starting %s run: %d arrivals, %d servers, horizon=%g",
		sim.config.Type, sim.arrivals, sim.Pool.Size(), sim.Horizon)

	for sim.Step() {
	}

	result, err := sim.Stats.Finalize(sim.config.Type, sim.arrivals)
	if err != nil {
		// arrivals was checked non-empty in NewSimulator
		panic(err)
	}
	result.InitialServers = sim.config.ServerCount
	result.PeakServers = sim.peakServers
	result.FinalServers = sim.Pool.Size()
	result.ScaleUps = sim.scaleUps
	result.ScaleDowns = sim.scaleDowns
	result.EventsProcessed = sim.eventsProcessed
	result.EndTime = sim.Clock

	logrus.Infof("[t=%g] %s run ended: served %d/%d", sim.Clock, sim.config.Type, result.ClientsServed, sim.arrivals)
	return result
}

// handleArrival queues the client chosen by the policy, lets the policy grow
// the pool, then matches free servers to waiting clients.
func (sim *Simulator) handleArrival(now float64) {
	sim.arrivalsProcessed++
	idx := sim.Policy.Route(sim.Pool, sim.rng)
	q := sim.Pool.Queues[idx]
	q.Enqueue(now)
	if sim.Trace != nil {
		sim.Trace.RecordRouting(trace.RoutingRecord{Clock: now, Queue: idx, QueueLength: q.Len()})
	}

	if added := sim.Policy.Admit(sim.Pool, now); added > 0 {
		sim.scaleUps += added
		sim.peakServers = max(sim.peakServers, sim.Pool.Size())
		logrus.Debugf("[t=%g] scale-up: +%d servers (pool=%d, queue=%d)", now, added, sim.Pool.Size(), q.Len())
		sim.recordScaling(now, added)
	}

	sim.dispatch(now)
}

// dispatch runs one matching round: servers in ascending index order take
// the head of their queue if they are free and it is non-empty.
func (sim *Simulator) dispatch(now float64) {
	for i, server := range sim.Pool.Servers {
		if !server.IsFree(now) {
			continue
		}
		q := sim.Pool.Queues[sim.Policy.QueueFor(i)]
		if q.Len() == 0 {
			continue
		}
		arrival := q.Dequeue()
		sim.Stats.RecordDispatch(now - arrival)
		readyAt := server.Start(now, sim.rng)
		sim.EventQueue.Schedule(readyAt, EventServerReady)
		logrus.Tracef("[t=%g] server %d took client from %g, ready at %g", now, i, arrival, readyAt)
	}

	if removed := sim.Policy.Evict(sim.Pool, now); removed > 0 {
		sim.scaleDowns += removed
		logrus.Debugf("[t=%g] scale-down: -%d servers (pool=%d)", now, removed, sim.Pool.Size())
		sim.recordScaling(now, -removed)
	}
}

func (sim *Simulator) recordScaling(now float64, delta int) {
	if sim.Trace == nil {
		return
	}
	sim.Trace.RecordScaling(trace.ScaleRecord{
		Clock:       now,
		Delta:       delta,
		PoolSize:    sim.Pool.Size(),
		QueueLength: sim.Pool.QueuedCount(),
	})
}

// RunSimulation runs one configuration against an arrival sequence and
// returns its finalized statistics. Configuration and empty-input errors are
// returned before any event is processed; no partial result is produced.
func RunSimulation(cfg SystemConfiguration, timeLimit float64, arrivals []float64, rng *rand.Rand) (*SimulationResult, error) {
	s, err := NewSimulator(cfg, timeLimit, arrivals, rng)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}
