package cmd

import (
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/chart"
	"github.com/inference-sim/queue-sim/sim/sensitivity"
	"github.com/inference-sim/queue-sim/sim/workload"
)

var (
	// CLI flags shared by run and sweep
	seed           int64    // Seed for arrival generation and service draws
	logLevel       string   // Log verbosity level
	serviceMin     int      // Shortest service duration (inclusive)
	serviceMax     int      // Longest service duration (inclusive)
	arrivalProcess string   // Inter-arrival distribution
	arrivalCV      float64  // Coefficient of variation for gamma/weibull arrivals
	systemNames    []string // Subset of systems to compare
	configPath     string   // Optional YAML scenario file
	jsonPath       string   // Optional JSON export path
	traceLevel     string   // Decision trace verbosity

	// CLI flags for sweep
	sweepSamples int     // Number of sampled parameter sets
	sweepWorkers int     // Concurrent samples
	sweepBins    int     // Bins per parameter for first-order indices
	sweepCSV     string  // Optional CSV export of per-sample results
	sweepNoChart bool    // Skip the ASCII scatter
	rateMin      float64 // Arrival rate range
	rateMax      float64
	serversMin   float64 // Server count range
	serversMax   float64
	lowMin       float64 // Elastic low threshold range
	lowMax       float64
	gapMin       float64 // Elastic high-minus-low range
	gapMax       float64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queue-sim",
	Short: "Discrete-event simulator comparing dedicated and shared queueing architectures",
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd compares every selected architecture once on a shared arrival stream
var runCmd = &cobra.Command{
	Use:   "run [modellingTime [numberOfServers [arrivalRate [thresholdMin [thresholdMax]]]]]",
	Short: "Compare the queueing architectures on one arrival stream",
	Args:  cobra.RangeArgs(0, 5),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		sc, err := resolveScenario(cmd.Flags(), args)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		logrus.Infof("Comparing %s over modelling time %g", systemList(sc.Systems), sc.ModellingTime)

		c, err := runComparison(cmd.Context(), sc)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		renderComparison(cmd.OutOrStdout(), c)

		if jsonPath != "" {
			if err := ExportComparisonJSON(c, jsonPath); err != nil {
				logrus.Fatalf("Failed to write %s: %v", jsonPath, err)
			}
			logrus.Infof("Wrote comparison to %s", jsonPath)
		}
	},
}

// sweepCmd samples the parameter space and reports sensitivity indices
var sweepCmd = &cobra.Command{
	Use:   "sweep [modellingTime]",
	Short: "Sample parameter sets, run every architecture on each, and report first-order sensitivity",
	Args:  cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		sc, err := resolveScenario(cmd.Flags(), args)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		cfg := sensitivity.SweepConfig{
			Space: sensitivity.ParameterSpace{
				ArrivalRate:  sensitivity.Range{Min: rateMin, Max: rateMax},
				Servers:      sensitivity.Range{Min: serversMin, Max: serversMax},
				ThresholdLow: sensitivity.Range{Min: lowMin, Max: lowMax},
				ThresholdGap: sensitivity.Range{Min: gapMin, Max: gapMax},
			},
			Samples:       sweepSamples,
			ModellingTime: sc.ModellingTime,
			Service:       &sc.Service,
			Arrival:       sc.Arrival,
			Systems:       sc.Systems,
			Seed:          sc.Seed,
			Workers:       sweepWorkers,
		}

		results, err := sensitivity.Sweep(cmd.Context(), cfg)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		indices := sensitivity.FirstOrderIndices(results, sweepBins)

		out := cmd.OutOrStdout()
		renderSweepSummary(out, results)
		renderIndices(out, indices)
		if !sweepNoChart {
			_, _ = out.Write([]byte(chart.NewGenerator().Scatter(
				"Average waiting time vs arrival rate", "arrival rate", "average waiting time",
				sweepSeries(results, sc.Systems))))
		}

		if jsonPath != "" {
			if err := ExportSweepJSON(uuid.NewString(), cfg, results, indices, jsonPath); err != nil {
				logrus.Fatalf("Failed to write %s: %v", jsonPath, err)
			}
			logrus.Infof("Wrote sweep to %s", jsonPath)
		}
		if sweepCSV != "" {
			if err := ExportSweepCSV(results, sweepCSV); err != nil {
				logrus.Fatalf("Failed to write %s: %v", sweepCSV, err)
			}
			logrus.Infof("Wrote sweep samples to %s", sweepCSV)
		}
	},
}

// sweepSeries builds one scatter series per system: arrival rate vs average wait.
func sweepSeries(results []sensitivity.SampleResult, systems []sim.SystemType) []chart.Series {
	series := make([]chart.Series, 0, len(systems))
	for _, st := range systems {
		s := chart.Series{Name: st.String()}
		for _, sr := range results {
			if r, ok := sr.Results[st]; ok {
				s.Points = append(s.Points, chart.Point{X: sr.Sample.ArrivalRate, Y: r.AverageWaitingTime})
			}
		}
		series = append(series, s)
	}
	return series
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for arrival generation and service durations")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().IntVar(&serviceMin, "service-min", sim.DefaultServiceRange.Min, "Shortest service duration (inclusive)")
	cmd.Flags().IntVar(&serviceMax, "service-max", sim.DefaultServiceRange.Max, "Longest service duration (inclusive)")
	cmd.Flags().StringVar(&arrivalProcess, "arrival-process", workload.ProcessPoisson, "Inter-arrival process (poisson, gamma, weibull, constant)")
	cmd.Flags().Float64Var(&arrivalCV, "arrival-cv", 1.0, "Coefficient of variation for gamma and weibull arrivals")
	cmd.Flags().StringSliceVar(&systemNames, "systems", nil, "Comma-separated systems to compare (default all)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML scenario file; explicit flags and arguments override it")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Write results as JSON to this path")
	cmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
}

// init sets up CLI flags and subcommands
func init() {
	addScenarioFlags(runCmd)
	addScenarioFlags(sweepCmd)

	d := sensitivity.DefaultParameterSpace
	sweepCmd.Flags().IntVar(&sweepSamples, "samples", 64, "Number of sampled parameter sets")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Concurrent samples (0 = GOMAXPROCS)")
	sweepCmd.Flags().IntVar(&sweepBins, "bins", sensitivity.DefaultBins, "Bins per parameter for first-order indices")
	sweepCmd.Flags().StringVar(&sweepCSV, "csv", "", "Write per-sample results as CSV to this path")
	sweepCmd.Flags().BoolVar(&sweepNoChart, "no-chart", false, "Skip the ASCII scatter plot")
	sweepCmd.Flags().Float64Var(&rateMin, "rate-min", d.ArrivalRate.Min, "Lowest sampled arrival rate")
	sweepCmd.Flags().Float64Var(&rateMax, "rate-max", d.ArrivalRate.Max, "Highest sampled arrival rate")
	sweepCmd.Flags().Float64Var(&serversMin, "servers-min", d.Servers.Min, "Fewest sampled servers")
	sweepCmd.Flags().Float64Var(&serversMax, "servers-max", d.Servers.Max, "Most sampled servers")
	sweepCmd.Flags().Float64Var(&lowMin, "threshold-low-min", d.ThresholdLow.Min, "Lowest sampled elastic low threshold")
	sweepCmd.Flags().Float64Var(&lowMax, "threshold-low-max", d.ThresholdLow.Max, "Highest sampled elastic low threshold")
	sweepCmd.Flags().Float64Var(&gapMin, "threshold-gap-min", d.ThresholdGap.Min, "Smallest sampled gap between elastic thresholds")
	sweepCmd.Flags().Float64Var(&gapMax, "threshold-gap-max", d.ThresholdGap.Max, "Largest sampled gap between elastic thresholds")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
