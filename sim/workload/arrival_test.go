package workload

import (
	"math"
	"math/rand"
	"testing"
)

func TestPoissonSampler_MeanIAT_MatchesRate(t *testing.T) {
	// GIVEN a Poisson sampler at 3.33 arrivals per time unit
	rng := rand.New(rand.NewSource(42))
	rate := 3.33
	sampler := NewArrivalSampler(ArrivalSpec{Process: ProcessPoisson}, rate)

	// WHEN 10000 IATs are sampled
	n := 10000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += sampler.SampleIAT(rng)
	}
	meanIAT := sum / float64(n)

	// THEN mean IAT ≈ 1/rate (within 5%)
	expected := 1.0 / rate
	if math.Abs(meanIAT-expected)/expected > 0.05 {
		t.Errorf("mean IAT = %.4f, want ≈ %.4f (within 5%%)", meanIAT, expected)
	}
}

func TestGammaSampler_HighCV_ProducesBurstierArrivals(t *testing.T) {
	// GIVEN a Gamma sampler with CV=3.5 and a Poisson sampler at same rate
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))
	cv := 3.5
	rate := 2.0
	gamma := NewArrivalSampler(ArrivalSpec{Process: ProcessGamma, CV: &cv}, rate)
	poisson := NewArrivalSampler(ArrivalSpec{Process: ProcessPoisson}, rate)

	// WHEN 10000 IATs sampled from each
	n := 10000
	gammaIATs := make([]float64, n)
	poissonIATs := make([]float64, n)
	for i := 0; i < n; i++ {
		gammaIATs[i] = gamma.SampleIAT(rng1)
		poissonIATs[i] = poisson.SampleIAT(rng2)
	}

	// THEN Gamma CV > 2.0 and Poisson CV ≈ 1.0
	gammaCV := coefficientOfVariation(gammaIATs)
	poissonCV := coefficientOfVariation(poissonIATs)
	if gammaCV < 2.0 {
		t.Errorf("gamma CV = %.2f, want > 2.0", gammaCV)
	}
	if poissonCV < 0.8 || poissonCV > 1.2 {
		t.Errorf("poisson CV = %.2f, want ≈ 1.0", poissonCV)
	}
}

func TestGammaSampler_MeanAndVariance_MatchTheoretical(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cv := 2.0
	rate := 0.5
	sampler := NewArrivalSampler(ArrivalSpec{Process: ProcessGamma, CV: &cv}, rate)

	n := 50000
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = sampler.SampleIAT(rng)
	}
	// mean = 1/rate, variance = mean² * CV²
	mean, variance := meanAndVariance(vals)
	expectedMean := 1.0 / rate
	expectedVar := expectedMean * expectedMean * cv * cv
	if math.Abs(mean-expectedMean)/expectedMean > 0.05 {
		t.Errorf("gamma mean = %.4f, want ≈ %.4f (within 5%%)", mean, expectedMean)
	}
	if math.Abs(variance-expectedVar)/expectedVar > 0.15 {
		t.Errorf("gamma variance = %.4f, want ≈ %.4f (within 15%%)", variance, expectedVar)
	}
}

func TestWeibullSampler_MeanIAT_MatchesRate(t *testing.T) {
	// GIVEN a Weibull sampler with CV=2.0
	rng := rand.New(rand.NewSource(42))
	cv := 2.0
	rate := 4.0
	sampler := NewArrivalSampler(ArrivalSpec{Process: ProcessWeibull, CV: &cv}, rate)

	// WHEN 50000 IATs are sampled
	n := 50000
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = sampler.SampleIAT(rng)
	}

	// THEN the mean matches 1/rate within 5%
	mean, _ := meanAndVariance(vals)
	expected := 1.0 / rate
	if math.Abs(mean-expected)/expected > 0.05 {
		t.Errorf("weibull mean = %.4f, want ≈ %.4f (within 5%%)", mean, expected)
	}
}

func TestWeibullShapeFromCV_RoundTrips(t *testing.T) {
	for _, cv := range []float64{0.5, 1.0, 2.0, 3.0} {
		k := weibullShapeFromCV(cv)
		if got := weibullCV(k); math.Abs(got-cv) > 0.01 {
			t.Errorf("weibullCV(weibullShapeFromCV(%.1f)) = %.4f", cv, got)
		}
	}
}

func TestWeibullSampler_ZeroUniform_StaysFinite(t *testing.T) {
	s := &WeibullSampler{shape: 1.0, scale: 1.0}
	rng := rand.New(zeroSource{})
	if v := s.SampleIAT(rng); math.IsInf(v, 0) || math.IsNaN(v) {
		t.Errorf("SampleIAT with u=0 = %v, want finite", v)
	}
}

func TestPoissonSampler_AllPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sampler := NewArrivalSampler(ArrivalSpec{}, 100.0)
	for i := 0; i < 10000; i++ {
		if v := sampler.SampleIAT(rng); v < 0 {
			t.Fatalf("IAT %d = %v, want >= 0", i, v)
		}
	}
}

func TestConstantSampler_FixedSpacing(t *testing.T) {
	sampler := NewArrivalSampler(ArrivalSpec{Process: ProcessConstant}, 4.0)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5; i++ {
		if v := sampler.SampleIAT(rng); v != 0.25 {
			t.Errorf("IAT %d = %v, want 0.25", i, v)
		}
	}
}

func TestNewArrivalSampler_EmptyProcess_DefaultsToPoisson(t *testing.T) {
	sampler := NewArrivalSampler(ArrivalSpec{}, 1.0)
	if _, ok := sampler.(*PoissonSampler); !ok {
		t.Errorf("sampler = %T, want *PoissonSampler", sampler)
	}
}

// zeroSource always yields 0 so rng.Float64() returns 0.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

func coefficientOfVariation(vals []float64) float64 {
	mean, variance := meanAndVariance(vals)
	if mean == 0 {
		return 0
	}
	return math.Sqrt(variance) / mean
}

func meanAndVariance(vals []float64) (float64, float64) {
	n := float64(len(vals))
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / n
	ss := 0.0
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return mean, ss / n
}
