package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/queue-sim/sim/workload"
)

// ScenarioBundle holds a comparison scenario, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML"; they do not override CLI defaults.
type ScenarioBundle struct {
	ModellingTime *float64      `yaml:"modelling_time"`
	Servers       *int          `yaml:"servers"`
	Seed          *int64        `yaml:"seed"`
	Arrival       ArrivalConfig `yaml:"arrival"`
	Thresholds    *Thresholds   `yaml:"thresholds"`
	Service       *ServiceRange `yaml:"service"`
	Systems       []SystemType  `yaml:"systems"`
}

// ArrivalConfig holds arrival generation parameters.
type ArrivalConfig struct {
	Rate    *float64 `yaml:"rate"`
	Process string   `yaml:"process"`
	CV      *float64 `yaml:"cv"`
}

// LoadScenarioBundle reads and parses a YAML scenario file.
// Unknown keys are rejected so typos surface as errors.
func LoadScenarioBundle(path string) (*ScenarioBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	var bundle ScenarioBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	return &bundle, nil
}

// Validate checks parameter ranges of every field that is set.
func (b *ScenarioBundle) Validate() error {
	if b.ModellingTime != nil && *b.ModellingTime <= 0 {
		return fmt.Errorf("%w: modelling_time must be positive, got %g", ErrConfiguration, *b.ModellingTime)
	}
	if b.Servers != nil && *b.Servers <= 0 {
		return fmt.Errorf("%w: servers must be positive, got %d", ErrConfiguration, *b.Servers)
	}
	if b.Arrival.Rate != nil && *b.Arrival.Rate <= 0 {
		return fmt.Errorf("%w: arrival rate must be positive, got %g", ErrConfiguration, *b.Arrival.Rate)
	}
	if !workload.IsValidProcess(b.Arrival.Process) {
		return fmt.Errorf("%w: unknown arrival process %q", ErrConfiguration, b.Arrival.Process)
	}
	if b.Arrival.CV != nil && *b.Arrival.CV <= 0 {
		return fmt.Errorf("%w: arrival cv must be positive, got %g", ErrConfiguration, *b.Arrival.CV)
	}
	if b.Thresholds != nil && b.Thresholds.Low >= b.Thresholds.High {
		return fmt.Errorf("%w: threshold min %d must be less than threshold max %d", ErrConfiguration, b.Thresholds.Low, b.Thresholds.High)
	}
	if b.Service != nil {
		if err := b.Service.Validate(); err != nil {
			return err
		}
	}
	return nil
}
