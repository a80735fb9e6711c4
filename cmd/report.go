package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/sensitivity"
)

// --- Color Palette ---
var (
	colorPrimary   = lipgloss.Color("#7D56F4")
	colorSecondary = lipgloss.Color("#04B575")
	colorSubtle    = lipgloss.Color("#767676")
	colorBorder    = lipgloss.Color("#3C3C3C")
)

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorSubtle)

	headerStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	valueStyle  = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// renderComparison writes the per-system table, the best-per-metric section,
// and pool and trace details when present.
func renderComparison(w io.Writer, c *Comparison) {
	sc := c.Scenario
	fmt.Fprintln(w, titleStyle.Render("Queueing Architecture Comparison"))
	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf(
		"run %s | modelling time %g | servers %d | rate %g (%s) | thresholds %d/%d | service [%d,%d] | seed %d | %d arrivals",
		c.RunID, sc.ModellingTime, sc.Servers, sc.ArrivalRate, sc.Process,
		sc.Thresholds.Low, sc.Thresholds.High, sc.Service.Min, sc.Service.Max, sc.Seed, c.Arrivals)))
	fmt.Fprintln(w)

	t := newTable("System", "Avg wait", "P(wait)", "Served", "Wait p50", "Wait p95", "Wait p99", "Wait max")
	for _, row := range c.Report.Rows {
		r := c.Results[row.System]
		t.Row(
			row.System.String(),
			formatFloat(row.AverageWaitingTime),
			formatFloat(row.WaitingProbability),
			strconv.Itoa(row.ClientsServed),
			formatFloat(r.WaitP50),
			formatFloat(r.WaitP95),
			formatFloat(r.WaitP99),
			formatFloat(r.WaitMax),
		)
	}
	fmt.Fprintln(w, t.Render())

	fmt.Fprintln(w, titleStyle.Render("Best"))
	for _, b := range c.Report.Best {
		fmt.Fprintf(w, "  %-22s %s (%s)\n", b.Metric, valueStyle.Render(b.System.String()), formatFloat(b.Value))
	}

	if r, ok := c.Results[sim.SharedElastic]; ok {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Elastic Pool"))
		fmt.Fprintf(w, "  initial %d | peak %d | final %d | scale-ups %d | scale-downs %d\n",
			r.InitialServers, r.PeakServers, r.FinalServers, r.ScaleUps, r.ScaleDowns)
	}

	if len(c.Traces) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Decision Trace"))
		tt := newTable("System", "Routed", "Queues used", "Max queue", "Scale-ups", "Scale-downs")
		for _, st := range sim.SystemTypes() {
			s, ok := c.Traces[st]
			if !ok {
				continue
			}
			tt.Row(st.String(), strconv.Itoa(s.TotalRoutings), strconv.Itoa(s.UniqueQueues),
				strconv.Itoa(s.MaxQueueLength), strconv.Itoa(s.ScaleUps), strconv.Itoa(s.ScaleDowns))
		}
		fmt.Fprintln(w, tt.Render())
	}
	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("completed in %s", c.WallTime)))
}

// renderIndices writes one row per (system, metric) with a column per parameter.
func renderIndices(w io.Writer, indices []sensitivity.Index) {
	fmt.Fprintln(w, titleStyle.Render("First-order Sensitivity Indices"))
	params := sensitivity.Parameters()
	headers := []string{"System", "Metric"}
	for _, p := range params {
		headers = append(headers, string(p))
	}

	type key struct {
		system sim.SystemType
		metric string
	}
	byKey := make(map[key]map[sensitivity.Parameter]float64)
	var order []key
	for _, idx := range indices {
		k := key{idx.System, idx.Metric}
		if _, ok := byKey[k]; !ok {
			byKey[k] = make(map[sensitivity.Parameter]float64)
			order = append(order, k)
		}
		byKey[k][idx.Parameter] = idx.FirstOrder
	}

	t := newTable(headers...)
	for _, k := range order {
		row := []string{k.system.String(), k.metric}
		for _, p := range params {
			row = append(row, formatFloat(byKey[k][p]))
		}
		t.Row(row...)
	}
	fmt.Fprintln(w, t.Render())
}

// renderSweepSummary writes the mean of each metric per system across samples.
func renderSweepSummary(w io.Writer, results []sensitivity.SampleResult) {
	fmt.Fprintln(w, titleStyle.Render("Sweep Means"))
	sums := make(map[sim.SystemType][3]float64)
	counts := make(map[sim.SystemType]int)
	for _, sr := range results {
		for st, r := range sr.Results {
			s := sums[st]
			s[0] += r.AverageWaitingTime
			s[1] += r.WaitingProbability
			s[2] += float64(r.ClientsServed)
			sums[st] = s
			counts[st]++
		}
	}
	systems := make([]sim.SystemType, 0, len(counts))
	for st := range counts {
		systems = append(systems, st)
	}
	sort.Slice(systems, func(i, j int) bool { return systems[i] < systems[j] })

	t := newTable("System", "Samples", "Avg wait", "P(wait)", "Served")
	for _, st := range systems {
		n := float64(counts[st])
		s := sums[st]
		t.Row(st.String(), strconv.Itoa(counts[st]), formatFloat(s[0]/n), formatFloat(s[1]/n), formatFloat(s[2]/n))
	}
	fmt.Fprintln(w, t.Render())
}

// systemList renders system names for log lines.
func systemList(systems []sim.SystemType) string {
	names := make([]string, len(systems))
	for i, st := range systems {
		names[i] = st.String()
	}
	return strings.Join(names, ",")
}
