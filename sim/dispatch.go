package sim

import (
	"fmt"
	"math/rand"
)

// DispatchPolicy decides where arriving clients wait and which queue each
// server pulls from. Elastic variants also resize the server pool.
// Implementations must be deterministic given the same pool state and rng draws.
type DispatchPolicy interface {
	// Type returns the system type this policy implements.
	Type() SystemType
	// Route returns the index of the queue an arriving client joins.
	Route(pool *Pool, rng *rand.Rand) int
	// QueueFor returns the index of the queue server i pulls from.
	QueueFor(server int) int
	// Admit runs after an arrival is enqueued and returns the number of servers added.
	Admit(pool *Pool, now float64) int
	// Evict runs after every dispatch round and returns the number of servers removed.
	Evict(pool *Pool, now float64) int
}

// fixedPool provides the no-op resize behaviour shared by fixed-size systems.
type fixedPool struct{}

func (fixedPool) Admit(*Pool, float64) int { return 0 }
func (fixedPool) Evict(*Pool, float64) int { return 0 }

// DedicatedRandomPolicy sends each arrival to a uniformly random server queue.
type DedicatedRandomPolicy struct{ fixedPool }

// Type implements DispatchPolicy.
func (DedicatedRandomPolicy) Type() SystemType { return DedicatedRandom }

// Route implements DispatchPolicy for DedicatedRandomPolicy.
func (DedicatedRandomPolicy) Route(pool *Pool, rng *rand.Rand) int {
	if len(pool.Queues) == 0 {
		panic("DedicatedRandomPolicy.Route: no queues")
	}
	return rng.Intn(len(pool.Queues))
}

// QueueFor implements DispatchPolicy: each server owns the queue at its index.
func (DedicatedRandomPolicy) QueueFor(server int) int { return server }

// DedicatedShortestPolicy sends each arrival to the shortest server queue.
// Ties are broken by lowest index. This is greedy join-shortest-queue; no
// global optimum is sought.
type DedicatedShortestPolicy struct{ fixedPool }

// Type implements DispatchPolicy.
func (DedicatedShortestPolicy) Type() SystemType { return DedicatedShortest }

// Route implements DispatchPolicy for DedicatedShortestPolicy.
func (DedicatedShortestPolicy) Route(pool *Pool, _ *rand.Rand) int {
	if len(pool.Queues) == 0 {
		panic("DedicatedShortestPolicy.Route: no queues")
	}
	target := 0
	minLen := pool.Queues[0].Len()
	for i := 1; i < len(pool.Queues); i++ {
		if l := pool.Queues[i].Len(); l < minLen {
			minLen = l
			target = i
		}
	}
	return target
}

// QueueFor implements DispatchPolicy: each server owns the queue at its index.
func (DedicatedShortestPolicy) QueueFor(server int) int { return server }

// SharedFixedPolicy uses a single queue drained by a fixed pool.
type SharedFixedPolicy struct{ fixedPool }

// Type implements DispatchPolicy.
func (SharedFixedPolicy) Type() SystemType { return SharedFixed }

// Route implements DispatchPolicy: there is only one queue.
func (SharedFixedPolicy) Route(*Pool, *rand.Rand) int { return 0 }

// QueueFor implements DispatchPolicy: every server pulls from the shared queue.
func (SharedFixedPolicy) QueueFor(int) int { return 0 }

// SharedElasticPolicy uses a single queue drained by a pool that grows by one
// server whenever an arrival leaves the queue longer than High, and drops all
// free servers whenever a dispatch round leaves it shorter than Low.
// The pool has no upper bound; sustained overload grows it without limit.
type SharedElasticPolicy struct {
	Thresholds Thresholds
}

// Type implements DispatchPolicy.
func (*SharedElasticPolicy) Type() SystemType { return SharedElastic }

// Route implements DispatchPolicy: there is only one queue.
func (*SharedElasticPolicy) Route(*Pool, *rand.Rand) int { return 0 }

// QueueFor implements DispatchPolicy: every server pulls from the shared queue.
func (*SharedElasticPolicy) QueueFor(int) int { return 0 }

// Admit implements DispatchPolicy: scale up by one on queue length > High.
func (p *SharedElasticPolicy) Admit(pool *Pool, _ float64) int {
	if pool.Queues[0].Len() > p.Thresholds.High {
		pool.AddServer()
		return 1
	}
	return 0
}

// Evict implements DispatchPolicy: remove every free server on queue length < Low.
// Busy servers are never removed.
func (p *SharedElasticPolicy) Evict(pool *Pool, now float64) int {
	if pool.Queues[0].Len() < p.Thresholds.Low {
		return pool.RemoveFreeServers(now)
	}
	return 0
}

// NewDispatchPolicy creates the policy for a validated configuration.
// Panics on an unknown system type; callers validate first.
func NewDispatchPolicy(cfg SystemConfiguration) DispatchPolicy {
	switch cfg.Type {
	case DedicatedRandom:
		return DedicatedRandomPolicy{}
	case DedicatedShortest:
		return DedicatedShortestPolicy{}
	case SharedFixed:
		return SharedFixedPolicy{}
	case SharedElastic:
		if cfg.Thresholds == nil {
			panic("NewDispatchPolicy: shared-elastic requires thresholds")
		}
		return &SharedElasticPolicy{Thresholds: *cfg.Thresholds}
	default:
		panic(fmt.Sprintf("unhandled system type %d", int(cfg.Type)))
	}
}
