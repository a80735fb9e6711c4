package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPool_QueueLayout(t *testing.T) {
	tests := []struct {
		system     SystemType
		wantQueues int
	}{
		{DedicatedRandom, 4},
		{DedicatedShortest, 4},
		{SharedFixed, 1},
		{SharedElastic, 1},
	}
	for _, tt := range tests {
		t.Run(tt.system.String(), func(t *testing.T) {
			p := newPool(SystemConfiguration{Type: tt.system, ServerCount: 4, Thresholds: &Thresholds{Low: 1, High: 2}})
			assert.Equal(t, 4, p.Size())
			assert.Len(t, p.Queues, tt.wantQueues)
		})
	}
}

func TestNewPool_ElasticWithNoServers(t *testing.T) {
	p := newPool(SystemConfiguration{Type: SharedElastic, ServerCount: 0, Thresholds: &Thresholds{Low: 1, High: 2}})
	assert.Equal(t, 0, p.Size())
	assert.Len(t, p.Queues, 1)
}

func TestPool_RemoveFreeServers_KeepsBusyInOrder(t *testing.T) {
	// GIVEN a pool of 4 where servers 1 and 3 are busy until t=10
	p := newPool(SystemConfiguration{Type: SharedFixed, ServerCount: 4, Service: &ServiceRange{Min: 9, Max: 9}})
	rng := rand.New(rand.NewSource(1))
	busyA, busyB := p.Servers[1], p.Servers[3]
	busyA.Start(0, rng)
	busyB.Start(0, rng)

	// WHEN free servers are removed at t=5
	removed := p.RemoveFreeServers(5)

	// THEN only the busy ones remain, in their original order
	assert.Equal(t, 2, removed)
	assert.Equal(t, []*Server{busyA, busyB}, p.Servers)
	assert.Equal(t, 2, p.BusyCount(5))
}

func TestPool_AddServer_GrowsByOne(t *testing.T) {
	p := newPool(SystemConfiguration{Type: SharedElastic, ServerCount: 2, Thresholds: &Thresholds{Low: 1, High: 2}})
	assert.Equal(t, 3, p.AddServer())
	assert.True(t, p.Servers[2].IsFree(0))
}

func TestPool_QueuedCount_SumsQueues(t *testing.T) {
	p := newPool(SystemConfiguration{Type: DedicatedRandom, ServerCount: 3})
	p.Queues[0].Enqueue(0)
	p.Queues[2].Enqueue(1)
	p.Queues[2].Enqueue(2)
	assert.Equal(t, 3, p.QueuedCount())
}
