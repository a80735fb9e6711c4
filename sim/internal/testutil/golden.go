// Package testutil provides shared test infrastructure for the queue simulator:
// the golden scenario dataset and float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-computed scenario. Service ranges with
// Min == Max make the run independent of the seed.
type GoldenTestCase struct {
	Name       string            `json:"name"`
	System     string            `json:"system"`
	Servers    int               `json:"servers"`
	Thresholds *GoldenThresholds `json:"thresholds,omitempty"`
	Service    GoldenService     `json:"service"`
	Horizon    float64           `json:"horizon"`
	Seed       int64             `json:"seed"`
	Arrivals   []float64         `json:"arrivals"`
	Metrics    GoldenMetrics     `json:"metrics"`
}

// GoldenThresholds mirrors the elastic pool bounds.
type GoldenThresholds struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// GoldenService mirrors the inclusive service duration range.
type GoldenService struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GoldenMetrics represents the expected outcome of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	ClientsServed   int `json:"clients_served"`
	EventsProcessed int `json:"events_processed"`
	PeakServers     int `json:"peak_servers"`
	FinalServers    int `json:"final_servers"`
	ScaleUps        int `json:"scale_ups"`
	ScaleDowns      int `json:"scale_downs"`

	// Normalized metrics
	AverageWaitingTime float64 `json:"average_waiting_time"`
	WaitingProbability float64 `json:"waiting_probability"`
	EndTime            float64 `json:"end_time"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
