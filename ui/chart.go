package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/statview/engine"
)

// ============================================================================
// TERMINAL CHARTS
// ============================================================================
// Bar  → one horizontal bar per point, scaled to the largest magnitude
// Pie  → one bar per slice, scaled to the slice's share of the whole
// Grouped bars (matrix) are drawn period by period, one bar per series.
// ============================================================================

const (
	barRune       = "█"
	minBarWidth   = 10
	labelMaxWidth = 24
)

// DrawChart draws a chart in at most width columns.
func DrawChart(chart *engine.ChartConfig, policy *engine.FormatPolicy, styles Styles, width int) string {
	if chart == nil || len(chart.Series) == 0 {
		return ""
	}
	if chart.ChartType == string(engine.ModePie) {
		return drawPie(chart, policy, styles, width)
	}
	if len(chart.Series) > 1 {
		return drawGroupedBars(chart, policy, styles, width)
	}
	return drawBars(chart, policy, styles, width)
}

func drawBars(chart *engine.ChartConfig, policy *engine.FormatPolicy, styles Styles, width int) string {
	points := chart.Series[0].Data
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		values[i] = p.Value
	}

	color := chart.Series[0].Color
	colors := make([]string, len(points))
	for i := range colors {
		colors[i] = color
	}
	return drawBarLines(labels, values, colors, maxAbs(values), chart.Percent, policy, styles, width)
}

func drawGroupedBars(chart *engine.ChartConfig, policy *engine.FormatPolicy, styles Styles, width int) string {
	var all []float64
	for _, s := range chart.Series {
		for _, p := range s.Data {
			all = append(all, p.Value)
		}
	}
	scale := maxAbs(all)

	var sb strings.Builder
	for i, period := range chart.Series[0].Data {
		labels := make([]string, 0, len(chart.Series))
		values := make([]float64, 0, len(chart.Series))
		colors := make([]string, 0, len(chart.Series))
		for _, s := range chart.Series {
			if i >= len(s.Data) {
				continue
			}
			labels = append(labels, s.Name)
			values = append(values, s.Data[i].Value)
			colors = append(colors, s.Color)
		}
		sb.WriteString(styles.Header.Render(period.Label))
		sb.WriteString("\n")
		sb.WriteString(drawBarLines(labels, values, colors, scale, chart.Percent, policy, styles, width))
	}
	return sb.String()
}

func drawPie(chart *engine.ChartConfig, policy *engine.FormatPolicy, styles Styles, width int) string {
	points := chart.Series[0].Data
	total := 0.0
	for _, p := range points {
		total += math.Abs(p.Value)
	}

	labelWidth := labelColumnWidth(points)
	barWidth := barColumnWidth(width, labelWidth)

	var sb strings.Builder
	for i, p := range points {
		share := 0.0
		if total > 0 {
			share = math.Abs(p.Value) / total
		}
		color := p.Color
		if color == "" {
			color = policy.Color(i)
		}
		label := lipgloss.NewStyle().Width(labelWidth).Render(truncateLabel(p.Label))
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat(barRune, scaled(share, barWidth)))
		value := formatValue(p.Value, chart.Percent, policy)
		sb.WriteString(label + " " + bar + " " + value + styles.Muted.Render(" ("+policy.FormatPercent(share*100)+")") + "\n")
	}
	return sb.String()
}

func drawBarLines(labels []string, values []float64, colors []string, scale float64, percent bool, policy *engine.FormatPolicy, styles Styles, width int) string {
	labelWidth := 0
	for _, l := range labels {
		if w := lipgloss.Width(truncateLabel(l)); w > labelWidth {
			labelWidth = w
		}
	}
	barWidth := barColumnWidth(width, labelWidth)

	var sb strings.Builder
	for i, l := range labels {
		ratio := 0.0
		if scale > 0 {
			ratio = math.Abs(values[i]) / scale
		}
		label := lipgloss.NewStyle().Width(labelWidth).Render(truncateLabel(l))
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i])).Render(strings.Repeat(barRune, scaled(ratio, barWidth)))
		sb.WriteString(label + " " + bar + " " + styles.Body.Render(formatValue(values[i], percent, policy)) + "\n")
	}
	return sb.String()
}

// ============================================================================
// HELPERS
// ============================================================================

func formatValue(v float64, percent bool, policy *engine.FormatPolicy) string {
	if percent {
		return policy.FormatPercent(v)
	}
	return policy.FormatNumber(v)
}

func labelColumnWidth(points []engine.ChartPoint) int {
	w := 0
	for _, p := range points {
		if lw := lipgloss.Width(truncateLabel(p.Label)); lw > w {
			w = lw
		}
	}
	return w
}

func barColumnWidth(width, labelWidth int) int {
	// label + space + bar + space + value (about 12 columns)
	w := width - labelWidth - 14
	if w < minBarWidth {
		return minBarWidth
	}
	return w
}

func scaled(ratio float64, width int) int {
	n := int(math.Round(ratio * float64(width)))
	if n == 0 && ratio > 0 {
		return 1
	}
	return n
}

func maxAbs(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= labelMaxWidth {
		return s
	}
	return string(r[:labelMaxWidth-1]) + "…"
}
