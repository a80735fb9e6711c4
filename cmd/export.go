package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/sensitivity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExportComparisonJSON writes a comparison (scenario, results, report) to filename.
func ExportComparisonJSON(c *Comparison, filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding comparison: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// sweepExport is the JSON document written by `sweep --json`.
type sweepExport struct {
	RunID   string                     `json:"run_id"`
	Config  sweepExportConfig          `json:"config"`
	Samples []sensitivity.SampleResult `json:"samples"`
	Indices []sensitivity.Index        `json:"indices"`
}

type sweepExportConfig struct {
	Space         sensitivity.ParameterSpace `json:"space"`
	Samples       int                        `json:"samples"`
	ModellingTime float64                    `json:"modelling_time"`
	Service       *sim.ServiceRange          `json:"service,omitempty"`
	Process       string                     `json:"arrival_process"`
	Systems       []sim.SystemType           `json:"systems"`
	Seed          int64                      `json:"seed"`
}

// ExportSweepJSON writes sweep samples and indices to filename.
func ExportSweepJSON(runID string, cfg sensitivity.SweepConfig, results []sensitivity.SampleResult, indices []sensitivity.Index, filename string) error {
	doc := sweepExport{
		RunID: runID,
		Config: sweepExportConfig{
			Space:         cfg.Space,
			Samples:       cfg.Samples,
			ModellingTime: cfg.ModellingTime,
			Service:       cfg.Service,
			Process:       cfg.Arrival.Process,
			Systems:       cfg.Systems,
			Seed:          cfg.Seed,
		},
		Samples: results,
		Indices: indices,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sweep: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// ExportSweepCSV writes one row per (sample, system) for offline analysis.
// A failure to close the file is reported like a write failure.
func ExportSweepCSV(results []sensitivity.SampleResult, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", filename, closeErr)
		}
	}()

	w := csv.NewWriter(f)

	header := []string{
		"sample", "system", "arrival_rate", "servers", "threshold_low", "threshold_high",
		"average_waiting_time", "waiting_probability", "clients_served",
		"wait_p95", "peak_servers", "arrivals",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, sr := range results {
		for _, st := range sim.SystemTypes() {
			r, ok := sr.Results[st]
			if !ok {
				continue
			}
			record := []string{
				strconv.Itoa(sr.Index),
				st.String(),
				strconv.FormatFloat(sr.Sample.ArrivalRate, 'g', -1, 64),
				strconv.Itoa(sr.Sample.Servers),
				strconv.Itoa(sr.Sample.ThresholdLow),
				strconv.Itoa(sr.Sample.ThresholdHigh),
				strconv.FormatFloat(r.AverageWaitingTime, 'g', -1, 64),
				strconv.FormatFloat(r.WaitingProbability, 'g', -1, 64),
				strconv.Itoa(r.ClientsServed),
				strconv.FormatFloat(r.WaitP95, 'g', -1, 64),
				strconv.Itoa(r.PeakServers),
				strconv.Itoa(r.Arrivals),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
