package workload

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateArrivals_OrderedAndWithinHorizon(t *testing.T) {
	// GIVEN a Poisson process over a horizon of 1000 at rate 3.33
	rng := rand.New(rand.NewSource(42))

	// WHEN arrivals are generated
	arrivals, err := GenerateArrivals(ArrivalSpec{}, 3.33, 1000, rng)
	require.NoError(t, err)

	// THEN every timestamp is in [0, horizon) and the sequence never decreases
	require.NotEmpty(t, arrivals)
	prev := 0.0
	for i, a := range arrivals {
		assert.GreaterOrEqual(t, a, prev, "arrival %d decreased", i)
		assert.Less(t, a, 1000.0)
		prev = a
	}
	// AND the count is near rate*horizon
	assert.InDelta(t, 3330, len(arrivals), 200)
}

func TestGenerateArrivals_SameSeed_SameSequence(t *testing.T) {
	cv := 2.0
	spec := ArrivalSpec{Process: ProcessGamma, CV: &cv}
	a, err := GenerateArrivals(spec, 1.5, 200, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := GenerateArrivals(spec, 1.5, 200, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateArrivals_Constant_ExactTimestamps(t *testing.T) {
	arrivals, err := GenerateArrivals(ArrivalSpec{Process: ProcessConstant}, 1.0, 4, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	// t=4 equals the horizon and is excluded
	assert.Equal(t, []float64{1, 2, 3}, arrivals)
}

func TestGenerateArrivals_InvalidInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name    string
		spec    ArrivalSpec
		rate    float64
		horizon float64
		rng     *rand.Rand
	}{
		{"unknown process", ArrivalSpec{Process: "bursty"}, 1, 10, rng},
		{"zero rate", ArrivalSpec{}, 0, 10, rng},
		{"negative horizon", ArrivalSpec{}, 1, -1, rng},
		{"nil rng", ArrivalSpec{}, 1, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateArrivals(tt.spec, tt.rate, tt.horizon, tt.rng)
			assert.Error(t, err)
		})
	}
}

func TestIsValidProcess(t *testing.T) {
	for _, name := range append(ValidProcessNames(), "") {
		assert.True(t, IsValidProcess(name), name)
	}
	assert.False(t, IsValidProcess("Poisson"))
	assert.False(t, IsValidProcess("uniform"))
}
