// Package chart renders sweep output as plain-text scatter plots.
package chart

import (
	"fmt"
	"math"
	"strings"
)

const (
	chartWidth  = 80
	chartHeight = 20
	// axisWidth is the space taken by the y-axis label and the "|" gutter.
	axisWidth = 11
)

// markers are assigned to series in order; points from later series
// overwrite earlier ones in the same cell.
var markers = []rune{'o', '+', 'x', '*', '#', '@'}

// Point is one (x, y) observation.
type Point struct {
	X, Y float64
}

// Series is a named set of points drawn with one marker.
type Series struct {
	Name   string
	Points []Point
}

// Generator generates ASCII charts
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width:  chartWidth,
		height: chartHeight,
	}
}

// NewGeneratorSize creates a generator with a custom plot size.
// Sizes below the minimum readable chart are raised to it.
func NewGeneratorSize(width, height int) *Generator {
	return &Generator{
		width:  max(width, axisWidth+10),
		height: max(height, 4),
	}
}

// Scatter plots every series on shared axes scaled to the data.
// NaN and infinite values are skipped.
func (g *Generator) Scatter(title, xLabel, yLabel string, series []Series) string {
	xMin, xMax, yMin, yMax, n := bounds(series)
	if n == 0 {
		return "No data to display"
	}
	// flat ranges still need a non-zero span for scaling
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	plotWidth := g.width - axisWidth
	grid := make([][]rune, g.height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", plotWidth))
	}
	for i, s := range series {
		marker := markers[i%len(markers)]
		for _, p := range s.Points {
			if !finite(p) {
				continue
			}
			col := int(math.Round((p.X - xMin) / (xMax - xMin) * float64(plotWidth-1)))
			row := int(math.Round((p.Y - yMin) / (yMax - yMin) * float64(g.height-1)))
			grid[g.height-1-row][col] = marker
		}
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\n")
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n")
	sb.WriteString(yLabel + "\n")

	for r, line := range grid {
		label := ""
		switch r {
		case 0:
			label = formatTick(yMax)
		case g.height - 1:
			label = formatTick(yMin)
		case (g.height - 1) / 2:
			label = formatTick((yMin + yMax) / 2)
		}
		sb.WriteString(fmt.Sprintf("%*s |", axisWidth-2, label))
		sb.WriteString(string(line))
		sb.WriteString("\n")
	}

	// X-axis
	sb.WriteString(strings.Repeat(" ", axisWidth-1))
	sb.WriteString("+")
	sb.WriteString(strings.Repeat("-", plotWidth))
	sb.WriteString("\n")
	left, right := formatTick(xMin), formatTick(xMax)
	gap := max(plotWidth-len(left)-len(right), 1)
	sb.WriteString(strings.Repeat(" ", axisWidth))
	sb.WriteString(left + strings.Repeat(" ", gap) + right + "\n")
	sb.WriteString(strings.Repeat(" ", axisWidth))
	sb.WriteString(xLabel + "\n")

	// Legend
	sb.WriteString("\nLegend:")
	for i, s := range series {
		sb.WriteString(fmt.Sprintf("  %c %s", markers[i%len(markers)], s.Name))
	}
	sb.WriteString("\n")
	return sb.String()
}

func bounds(series []Series) (xMin, xMax, yMin, yMax float64, n int) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			if !finite(p) {
				continue
			}
			xMin, xMax = math.Min(xMin, p.X), math.Max(xMax, p.X)
			yMin, yMax = math.Min(yMin, p.Y), math.Max(yMax, p.Y)
			n++
		}
	}
	return xMin, xMax, yMin, yMax, n
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.3g", v)
}
