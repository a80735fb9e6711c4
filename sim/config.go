package sim

import (
	"fmt"
	"strings"
)

// SystemType selects one of the compared queueing architectures.
type SystemType int

const (
	// DedicatedRandom gives every server its own queue; arrivals pick a queue uniformly at random.
	DedicatedRandom SystemType = iota
	// DedicatedShortest gives every server its own queue; arrivals join the shortest one.
	DedicatedShortest
	// SharedFixed is one queue served by a fixed server pool.
	SharedFixed
	// SharedElastic is one queue served by a pool resized on queue-length thresholds.
	SharedElastic
)

var systemTypeNames = map[SystemType]string{
	DedicatedRandom:   "dedicated-random",
	DedicatedShortest: "dedicated-shortest",
	SharedFixed:       "shared-fixed",
	SharedElastic:     "shared-elastic",
}

// SystemTypes returns every system type in enumeration order.
// Report rows and best-metric tie-breaks follow this order.
func SystemTypes() []SystemType {
	return []SystemType{DedicatedRandom, DedicatedShortest, SharedFixed, SharedElastic}
}

func (t SystemType) String() string {
	if name, ok := systemTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SystemType(%d)", int(t))
}

// IsValid reports whether t is one of the enumerated system types.
func (t SystemType) IsValid() bool {
	_, ok := systemTypeNames[t]
	return ok
}

// ParseSystemType converts a system type name (as printed by String) into a SystemType.
func ParseSystemType(name string) (SystemType, error) {
	for _, t := range SystemTypes() {
		if systemTypeNames[t] == strings.ToLower(strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown system type %q", ErrConfiguration, name)
}

// MarshalText implements encoding.TextMarshaler for YAML and JSON output.
func (t SystemType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: unknown system type %d", ErrConfiguration, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SystemType) UnmarshalText(text []byte) error {
	parsed, err := ParseSystemType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Thresholds are the elastic pool's queue-length bounds.
// The pool grows when the queue is longer than High and sheds free servers
// when it is shorter than Low.
type Thresholds struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// SystemConfiguration describes one architecture under test.
// It is immutable for the duration of a run.
type SystemConfiguration struct {
	Type        SystemType
	ServerCount int
	// Thresholds is required for SharedElastic and ignored otherwise.
	Thresholds *Thresholds
	// Service is the per-job duration range; nil means DefaultServiceRange.
	Service *ServiceRange
}

// serviceRange returns the effective service range.
func (c SystemConfiguration) serviceRange() ServiceRange {
	if c.Service == nil {
		return DefaultServiceRange
	}
	return *c.Service
}

// Validate checks the configuration before a run. All failures wrap ErrConfiguration.
func (c SystemConfiguration) Validate() error {
	if err := c.serviceRange().Validate(); err != nil {
		return err
	}
	switch c.Type {
	case DedicatedRandom, DedicatedShortest, SharedFixed:
		if c.ServerCount <= 0 {
			return fmt.Errorf("%w: %s requires a positive server count, got %d", ErrConfiguration, c.Type, c.ServerCount)
		}
	case SharedElastic:
		if c.ServerCount < 0 {
			return fmt.Errorf("%w: %s initial server count must be non-negative, got %d", ErrConfiguration, c.Type, c.ServerCount)
		}
		if c.Thresholds == nil {
			return fmt.Errorf("%w: %s requires thresholds", ErrConfiguration, c.Type)
		}
		if c.Thresholds.Low < 0 || c.Thresholds.High < 0 {
			return fmt.Errorf("%w: thresholds must be non-negative, got (%d, %d)", ErrConfiguration, c.Thresholds.Low, c.Thresholds.High)
		}
		if c.Thresholds.Low >= c.Thresholds.High {
			return fmt.Errorf("%w: threshold min %d must be less than threshold max %d", ErrConfiguration, c.Thresholds.Low, c.Thresholds.High)
		}
	default:
		return fmt.Errorf("%w: unknown system type %d", ErrConfiguration, int(c.Type))
	}
	return nil
}
