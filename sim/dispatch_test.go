package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchPolicy_TypeMatches(t *testing.T) {
	for _, st := range SystemTypes() {
		cfg := SystemConfiguration{Type: st, ServerCount: 2, Thresholds: &Thresholds{Low: 1, High: 3}}
		assert.Equal(t, st, NewDispatchPolicy(cfg).Type())
	}
}

func TestNewDispatchPolicy_UnknownType_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDispatchPolicy(SystemConfiguration{Type: SystemType(42)}) })
}

func TestDedicatedRandomPolicy_RouteCoversAllQueues(t *testing.T) {
	// GIVEN 4 dedicated queues
	p := newPool(SystemConfiguration{Type: DedicatedRandom, ServerCount: 4})
	policy := DedicatedRandomPolicy{}
	rng := rand.New(rand.NewSource(42))

	// WHEN routing many arrivals
	counts := make([]int, 4)
	for i := 0; i < 4000; i++ {
		idx := policy.Route(p, rng)
		require.True(t, idx >= 0 && idx < 4)
		counts[idx]++
	}

	// THEN each queue receives roughly a quarter
	for i, c := range counts {
		assert.InDelta(t, 1000, c, 150, "queue %d", i)
	}
	assert.Equal(t, 3, policy.QueueFor(3))
}

func TestDedicatedShortestPolicy_PicksShortestLowestIndex(t *testing.T) {
	// GIVEN queue lengths [2, 1, 1, 3]
	p := newPool(SystemConfiguration{Type: DedicatedShortest, ServerCount: 4})
	for i, n := range []int{2, 1, 1, 3} {
		for j := 0; j < n; j++ {
			p.Queues[i].Enqueue(0)
		}
	}

	// WHEN routing
	got := DedicatedShortestPolicy{}.Route(p, nil)

	// THEN the tie between 1 and 2 goes to the lower index
	assert.Equal(t, 1, got)
}

func TestDedicatedShortestPolicy_AllEmpty_RoutesToFirst(t *testing.T) {
	p := newPool(SystemConfiguration{Type: DedicatedShortest, ServerCount: 3})
	assert.Equal(t, 0, DedicatedShortestPolicy{}.Route(p, nil))
}

func TestSharedFixedPolicy_SingleQueue_NoResize(t *testing.T) {
	p := newPool(SystemConfiguration{Type: SharedFixed, ServerCount: 2})
	policy := SharedFixedPolicy{}
	for i := 0; i < 20; i++ {
		p.Queues[0].Enqueue(0)
	}

	assert.Equal(t, 0, policy.Route(p, nil))
	assert.Equal(t, 0, policy.QueueFor(1))
	assert.Equal(t, 0, policy.Admit(p, 0))
	assert.Equal(t, 0, policy.Evict(p, 0))
	assert.Equal(t, 2, p.Size())
}

func TestSharedElasticPolicy_Admit_GrowsOnlyAboveHigh(t *testing.T) {
	// GIVEN an elastic pool with High=3
	cfg := SystemConfiguration{Type: SharedElastic, ServerCount: 1, Thresholds: &Thresholds{Low: 1, High: 3}}
	p := newPool(cfg)
	policy := NewDispatchPolicy(cfg)

	// WHEN the queue length equals High
	for i := 0; i < 3; i++ {
		p.Queues[0].Enqueue(0)
	}
	// THEN nothing is added
	assert.Equal(t, 0, policy.Admit(p, 0))
	assert.Equal(t, 1, p.Size())

	// WHEN the queue length exceeds High
	p.Queues[0].Enqueue(0)
	// THEN exactly one server is added
	assert.Equal(t, 1, policy.Admit(p, 0))
	assert.Equal(t, 2, p.Size())
}

func TestSharedElasticPolicy_Evict_RemovesOnlyFreeBelowLow(t *testing.T) {
	// GIVEN 3 servers, one busy, and Low=2
	cfg := SystemConfiguration{Type: SharedElastic, ServerCount: 3, Thresholds: &Thresholds{Low: 2, High: 5}, Service: &ServiceRange{Min: 4, Max: 4}}
	p := newPool(cfg)
	policy := NewDispatchPolicy(cfg)
	busy := p.Servers[1]
	busy.Start(0, rand.New(rand.NewSource(1)))

	// WHEN the queue length equals Low
	p.Queues[0].Enqueue(0)
	p.Queues[0].Enqueue(0)
	// THEN nothing is removed
	assert.Equal(t, 0, policy.Evict(p, 1))

	// WHEN the queue length drops below Low
	p.Queues[0].Dequeue()
	// THEN every free server goes and the busy one stays
	assert.Equal(t, 2, policy.Evict(p, 1))
	assert.Equal(t, []*Server{busy}, p.Servers)
}

func TestSharedElasticPolicy_UnboundedGrowth(t *testing.T) {
	// GIVEN an elastic pool that never drains
	cfg := SystemConfiguration{Type: SharedElastic, ServerCount: 0, Thresholds: &Thresholds{Low: 0, High: 1}}
	p := newPool(cfg)
	policy := NewDispatchPolicy(cfg)

	// WHEN 100 arrivals pile up with Admit after each
	for i := 0; i < 100; i++ {
		p.Queues[0].Enqueue(0)
		policy.Admit(p, 0)
	}

	// THEN the pool grows without an upper bound
	assert.Equal(t, 99, p.Size())
}
