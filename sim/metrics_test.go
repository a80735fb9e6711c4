package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_FinalizeNormalizes(t *testing.T) {
	var a Accumulator
	a.Add(3)
	a.Add(6)
	assert.Equal(t, 9.0, a.Total())
	assert.Equal(t, 3.0, a.Finalize(3))
}

func TestStatistics_RecordDispatch_CountsOnlyNonZeroWaits(t *testing.T) {
	// GIVEN dispatches with waits 0, 3, 6
	s := NewStatistics(100)
	for _, w := range []float64{0, 3, 6} {
		s.RecordDispatch(w)
	}

	// WHEN finalized over 3 arrivals
	r, err := s.Finalize(SharedFixed, 3)
	require.NoError(t, err)

	// THEN averages are normalized by arrivals and clientsServed is raw
	assert.Equal(t, SharedFixed, r.System)
	assert.Equal(t, 3, r.Arrivals)
	assert.InDelta(t, 3.0, r.AverageWaitingTime, 1e-12)
	assert.InDelta(t, 2.0/3.0, r.WaitingProbability, 1e-12)
	assert.Equal(t, 3, r.ClientsServed)
}

func TestStatistics_Finalize_NormalizesByArrivalsNotServed(t *testing.T) {
	// GIVEN 2 dispatches out of 4 arrivals
	s := NewStatistics(100)
	s.RecordDispatch(2)
	s.RecordDispatch(0)

	r, err := s.Finalize(DedicatedRandom, 4)
	require.NoError(t, err)

	// THEN clients that were never served dilute the averages
	assert.InDelta(t, 0.5, r.AverageWaitingTime, 1e-12)
	assert.InDelta(t, 0.25, r.WaitingProbability, 1e-12)
	assert.Equal(t, 2, r.ClientsServed)
}

func TestStatistics_Finalize_ZeroArrivals(t *testing.T) {
	s := NewStatistics(100)
	_, err := s.Finalize(SharedElastic, 0)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestStatistics_WaitPercentiles(t *testing.T) {
	// GIVEN 100 dispatches with waits 1..100
	s := NewStatistics(100)
	for i := 1; i <= 100; i++ {
		s.RecordDispatch(float64(i))
	}

	r, err := s.Finalize(SharedFixed, 100)
	require.NoError(t, err)

	// THEN percentiles are within histogram precision
	assert.InDelta(t, 50, r.WaitP50, 0.1)
	assert.InDelta(t, 95, r.WaitP95, 0.1)
	assert.InDelta(t, 99, r.WaitP99, 0.1)
	assert.InDelta(t, 100, r.WaitMax, 0.1)
}

func TestStatistics_NoDispatches_ZeroPercentiles(t *testing.T) {
	r, err := NewStatistics(100).Finalize(SharedFixed, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.WaitP50)
	assert.Equal(t, 0.0, r.WaitMax)
	assert.Equal(t, 0, r.ClientsServed)
}

func TestSimulationResult_Value(t *testing.T) {
	r := &SimulationResult{AverageWaitingTime: 1.5, WaitingProbability: 0.25, ClientsServed: 7}
	assert.Equal(t, 1.5, r.Value(MetricAverageWaitingTime))
	assert.Equal(t, 0.25, r.Value(MetricWaitingProbability))
	assert.Equal(t, 7.0, r.Value(MetricClientsServed))
	assert.Panics(t, func() { r.Value(Metric{Name: "throughput"}) })
}

func TestStatistics_LongHorizon_PercentilesDoNotSaturate(t *testing.T) {
	// GIVEN a time limit far beyond the default histogram range
	s := NewStatistics(5e6)
	for i := 0; i < 99; i++ {
		s.RecordDispatch(1)
	}
	s.RecordDispatch(4e6)

	// WHEN finalized
	r, err := s.Finalize(DedicatedRandom, 100)
	require.NoError(t, err)

	// THEN the longest wait is reported at its real size
	assert.Equal(t, 4e6, r.WaitMax)
	assert.InEpsilon(t, 4e6, float64(s.waits.Max())/waitScale, 2e-3)
	assert.InDelta(t, 1.0, r.WaitP50, 0.01)
}

func TestStatistics_WaitBeyondLimit_MaxStaysExact(t *testing.T) {
	// GIVEN a histogram sized for the default range and a wait above it
	s := NewStatistics(10)
	s.RecordDispatch(2e6)

	r, err := s.Finalize(SharedFixed, 1)
	require.NoError(t, err)

	// THEN percentiles clamp to the histogram but the maximum does not
	assert.Equal(t, 2e6, r.WaitMax)
	assert.InEpsilon(t, 1e6, r.WaitP50, 2e-3)
}
