package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/trace"
	"github.com/inference-sim/queue-sim/sim/workload"
)

// Positional defaults for `run`, in argument order.
const (
	defaultModellingTime = 10000.0
	defaultServers       = 10
	defaultArrivalRate   = 3.33
	defaultThresholdMin  = 3
	defaultThresholdMax  = 7
)

// Scenario is the fully-resolved input of one comparison.
type Scenario struct {
	ModellingTime float64              `json:"modelling_time"`
	Servers       int                  `json:"servers"`
	ArrivalRate   float64              `json:"arrival_rate"`
	Thresholds    sim.Thresholds       `json:"thresholds"`
	Service       sim.ServiceRange     `json:"service"`
	Seed          int64                `json:"seed"`
	Arrival       workload.ArrivalSpec `json:"-"`
	Process       string               `json:"arrival_process"`
	Systems       []sim.SystemType     `json:"systems"`
	TraceLevel    trace.TraceLevel     `json:"-"`
}

// defaultScenario returns the positional and flag defaults.
func defaultScenario() Scenario {
	return Scenario{
		ModellingTime: defaultModellingTime,
		Servers:       defaultServers,
		ArrivalRate:   defaultArrivalRate,
		Thresholds:    sim.Thresholds{Low: defaultThresholdMin, High: defaultThresholdMax},
		Service:       sim.DefaultServiceRange,
		Seed:          42,
		Process:       workload.ProcessPoisson,
		Systems:       sim.SystemTypes(),
	}
}

// resolveScenario layers defaults, then the --config file, then positional
// arguments and explicitly set flags. Later layers win.
func resolveScenario(flags *pflag.FlagSet, args []string) (Scenario, error) {
	sc := defaultScenario()

	if configPath != "" {
		bundle, err := sim.LoadScenarioBundle(configPath)
		if err != nil {
			return sc, err
		}
		if err := bundle.Validate(); err != nil {
			return sc, fmt.Errorf("%s: %w", configPath, err)
		}
		applyBundle(&sc, bundle)
	}

	if err := applyPositional(&sc, args); err != nil {
		return sc, err
	}

	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("service-min") {
		sc.Service.Min = serviceMin
	}
	if flags.Changed("service-max") {
		sc.Service.Max = serviceMax
	}
	if flags.Changed("arrival-process") {
		sc.Process = arrivalProcess
	}
	if flags.Changed("arrival-cv") {
		cv := arrivalCV
		sc.Arrival.CV = &cv
	}
	if flags.Changed("systems") {
		systems, err := parseSystems(systemNames)
		if err != nil {
			return sc, err
		}
		sc.Systems = systems
	}
	sc.TraceLevel = trace.TraceLevel(traceLevel)
	sc.Arrival.Process = sc.Process

	return sc, sc.validate()
}

func applyBundle(sc *Scenario, b *sim.ScenarioBundle) {
	if b.ModellingTime != nil {
		sc.ModellingTime = *b.ModellingTime
	}
	if b.Servers != nil {
		sc.Servers = *b.Servers
	}
	if b.Seed != nil {
		sc.Seed = *b.Seed
	}
	if b.Arrival.Rate != nil {
		sc.ArrivalRate = *b.Arrival.Rate
	}
	if b.Arrival.Process != "" {
		sc.Process = b.Arrival.Process
	}
	if b.Arrival.CV != nil {
		cv := *b.Arrival.CV
		sc.Arrival.CV = &cv
	}
	if b.Thresholds != nil {
		sc.Thresholds = *b.Thresholds
	}
	if b.Service != nil {
		sc.Service = *b.Service
	}
	if len(b.Systems) > 0 {
		sc.Systems = append([]sim.SystemType(nil), b.Systems...)
	}
}

// applyPositional reads modellingTime numberOfServers arrivalRate thresholdMin thresholdMax.
func applyPositional(sc *Scenario, args []string) error {
	var err error
	for i, arg := range args {
		switch i {
		case 0:
			sc.ModellingTime, err = strconv.ParseFloat(arg, 64)
		case 1:
			sc.Servers, err = strconv.Atoi(arg)
		case 2:
			sc.ArrivalRate, err = strconv.ParseFloat(arg, 64)
		case 3:
			sc.Thresholds.Low, err = strconv.Atoi(arg)
		case 4:
			sc.Thresholds.High, err = strconv.Atoi(arg)
		default:
			return fmt.Errorf("%w: unexpected argument %q", sim.ErrConfiguration, arg)
		}
		if err != nil {
			return fmt.Errorf("%w: argument %d (%q): %v", sim.ErrConfiguration, i+1, arg, err)
		}
	}
	return nil
}

func parseSystems(names []string) ([]sim.SystemType, error) {
	systems := make([]sim.SystemType, 0, len(names))
	seen := make(map[sim.SystemType]bool)
	for _, name := range names {
		st, err := sim.ParseSystemType(name)
		if err != nil {
			return nil, err
		}
		if !seen[st] {
			seen[st] = true
			systems = append(systems, st)
		}
	}
	if len(systems) == 0 {
		return nil, fmt.Errorf("%w: --systems must name at least one system", sim.ErrConfiguration)
	}
	return systems, nil
}

// validate checks the scenario-level inputs. Per-system checks run in
// SystemConfiguration.Validate.
func (sc Scenario) validate() error {
	if sc.ModellingTime <= 0 {
		return fmt.Errorf("%w: modelling time must be positive, got %g", sim.ErrConfiguration, sc.ModellingTime)
	}
	if sc.ArrivalRate <= 0 {
		return fmt.Errorf("%w: arrival rate must be positive, got %g", sim.ErrConfiguration, sc.ArrivalRate)
	}
	if !workload.IsValidProcess(sc.Process) {
		return fmt.Errorf("%w: unknown arrival process %q (valid: %v)", sim.ErrConfiguration, sc.Process, workload.ValidProcessNames())
	}
	if sc.Arrival.CV != nil && *sc.Arrival.CV <= 0 {
		return fmt.Errorf("%w: arrival cv must be positive, got %g", sim.ErrConfiguration, *sc.Arrival.CV)
	}
	if !trace.IsValidTraceLevel(string(sc.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q", sim.ErrConfiguration, sc.TraceLevel)
	}
	if len(sc.Systems) == 0 {
		return fmt.Errorf("%w: no systems selected", sim.ErrConfiguration)
	}
	return sc.Service.Validate()
}

// systemConfig builds the configuration for one system type.
func (sc Scenario) systemConfig(st sim.SystemType) sim.SystemConfiguration {
	svc := sc.Service
	cfg := sim.SystemConfiguration{
		Type:        st,
		ServerCount: sc.Servers,
		Service:     &svc,
	}
	if st == sim.SharedElastic {
		th := sc.Thresholds
		cfg.Thresholds = &th
	}
	return cfg
}
