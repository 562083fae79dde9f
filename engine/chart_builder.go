package engine

import (
	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a Projection
// ============================================================================
// FLAT   → one series (bar) or one pie, one point per row
// MATRIX → one series per row across the period axis (grouped bars)
//
// Missing matrix cells plot as 0 to keep the series continuous; tables and
// text show them blank instead.
// ============================================================================

// BuildChart produces a ChartConfig from a projection. The percent flag only
// affects axis labelling.
func BuildChart(p *Projection, percent bool, policy *FormatPolicy) *ChartConfig {
	if p.Empty() {
		return nil
	}

	chartType := ModeBar
	if p.Mode == ModePie && p.Shape != schema.Matrix {
		chartType = ModePie
	}

	config := &ChartConfig{
		ChartType:    string(chartType),
		ShowLegend:   true,
		ShowGrid:     chartType != ModePie,
		Percent:      percent,
		PieAvailable: p.Shape != schema.Matrix,
		YAxis:        policy.ValueLabel,
	}
	if percent {
		config.YAxis = policy.PercentSuffix
	}

	if p.Shape == schema.Matrix {
		config.XAxis = policy.PeriodLabel
		config.Series = buildMultiSeries(p, policy)
		config.Colors = assignColors(len(config.Series), policy)
		return config
	}

	config.XAxis = policy.CategoryLabel
	config.Series = buildSingleSeries(p, policy, chartType == ModePie)
	if chartType == ModePie {
		config.Colors = assignColors(len(p.Rows), policy)
	} else {
		config.Colors = assignColors(1, policy)
	}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(p *Projection, policy *FormatPolicy, perPointColor bool) []ChartSeries {
	points := make([]ChartPoint, 0, len(p.Rows))
	for i, row := range p.Rows {
		point := ChartPoint{
			Label: row,
			Value: p.Cells[i][0].Value,
		}
		if perPointColor {
			point.Color = policy.Color(i)
		}
		points = append(points, point)
	}

	return []ChartSeries{{
		Name:  policy.ValueLabel,
		Data:  points,
		Color: policy.Color(0),
	}}
}

func buildMultiSeries(p *Projection, policy *FormatPolicy) []ChartSeries {
	series := make([]ChartSeries, 0, len(p.Rows))
	for i, row := range p.Rows {
		points := make([]ChartPoint, 0, len(p.Columns))
		for j, column := range p.Columns {
			points = append(points, ChartPoint{
				Label: column,
				Value: p.Cells[i][j].Value,
			})
		}
		series = append(series, ChartSeries{
			Name:  row,
			Data:  points,
			Color: policy.Color(i),
		})
	}
	return series
}

func assignColors(count int, policy *FormatPolicy) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = policy.Color(i)
	}
	return colors
}
