package engine

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// CHART
// ============================================================================

func TestBuildChartFlatBar(t *testing.T) {
	policy := DefaultPolicy()
	chart := BuildChart(Project(gender(), ModeBar, false), false, policy)

	require.NotNil(t, chart)
	assert.Equal(t, "bar", chart.ChartType)
	assert.Equal(t, "Catégorie", chart.XAxis)
	assert.Equal(t, "Valeur", chart.YAxis)
	assert.True(t, chart.ShowGrid)
	assert.True(t, chart.PieAvailable)
	require.Len(t, chart.Series, 1)

	series := chart.Series[0]
	assert.Equal(t, "Valeur", series.Name)
	assert.Equal(t, []string{"Homme", "Femme", "total"}, lo.Map(series.Data, func(p ChartPoint, _ int) string { return p.Label }))
	assert.Equal(t, []float64{12, 8, 20}, lo.Map(series.Data, func(p ChartPoint, _ int) float64 { return p.Value }))
	assert.Equal(t, []string{"#8884d8"}, chart.Colors)
}

func TestBuildChartFlatPiePercent(t *testing.T) {
	chart := BuildChart(Project(gender(), ModePie, true), true, DefaultPolicy())

	require.NotNil(t, chart)
	assert.Equal(t, "pie", chart.ChartType)
	assert.False(t, chart.ShowGrid)
	assert.Equal(t, "%", chart.YAxis)
	assert.True(t, chart.Percent)

	points := chart.Series[0].Data
	require.Len(t, points, 2)
	assert.Equal(t, ChartPoint{Label: "Homme", Value: 60, Color: "#8884d8"}, points[0])
	assert.Equal(t, ChartPoint{Label: "Femme", Value: 40, Color: "#82ca9d"}, points[1])
	assert.Equal(t, []string{"#8884d8", "#82ca9d"}, chart.Colors)
}

func TestBuildChartMatrixGroupsByRow(t *testing.T) {
	chart := BuildChart(Project(monthly(), ModeBar, false), false, DefaultPolicy())

	require.NotNil(t, chart)
	assert.Equal(t, "bar", chart.ChartType)
	assert.False(t, chart.PieAvailable)
	assert.Equal(t, "Période", chart.XAxis)
	assert.Equal(t, []string{"A", "B", "total", "C"}, lo.Map(chart.Series, func(s ChartSeries, _ int) string { return s.Name }))

	a := chart.Series[0]
	assert.Equal(t, []ChartPoint{{Label: "04-2025", Value: 1}, {Label: "05-2025", Value: 0}}, a.Data, "missing cell plots as 0")
	assert.Equal(t, "#8884d8", a.Color)
	assert.Len(t, chart.Colors, 4)
}

func TestBuildChartNonNumericPlotsZero(t *testing.T) {
	chart := BuildChart(Project(schema.MustParse(`{"a": "n/a", "b": "12"}`), ModeBar, false), false, DefaultPolicy())
	assert.Equal(t, 0.0, chart.Series[0].Data[0].Value)
	assert.Equal(t, 12.0, chart.Series[0].Data[1].Value)
}

func TestBuildChartEmpty(t *testing.T) {
	assert.Nil(t, BuildChart(Project(schema.MustParse(`{}`), ModeBar, false), false, DefaultPolicy()))
}

// ============================================================================
// TABLE
// ============================================================================

func TestBuildTableFlat(t *testing.T) {
	table := BuildTable(Project(gender(), ModeTable, false), false, DefaultPolicy())

	require.NotNil(t, table)
	assert.Equal(t, []string{"Catégorie", "Valeur"}, table.Headers())
	assert.Equal(t, [][]string{{"Homme", "12"}, {"Femme", "8"}, {"total", "20"}}, table.Rows)
	assert.Equal(t, "left", table.Columns[0].Align)
	assert.Equal(t, "right", table.Columns[1].Align)
	assert.Equal(t, "number", table.Columns[1].Type)
}

func TestBuildTableMatrixPercent(t *testing.T) {
	table := BuildTable(Project(monthly(), ModeTable, true), true, DefaultPolicy())

	require.NotNil(t, table)
	assert.Equal(t, []string{"Catégorie", "04-2025", "05-2025"}, table.Headers())
	assert.Equal(t, [][]string{
		{"A", "33,33%", ""},
		{"B", "66,67%", "44,44%"},
		{"C", "", "55,56%"},
	}, table.Rows)
	assert.Equal(t, "percent", table.Columns[1].Type)
}

func TestBuildTableEchoesNonNumeric(t *testing.T) {
	table := BuildTable(Project(schema.MustParse(`{"a": "n/a"}`), ModeTable, false), false, DefaultPolicy())
	assert.Equal(t, [][]string{{"a", "n/a"}}, table.Rows)
}

// ============================================================================
// TEXT
// ============================================================================

func TestBuildTextFlatPercent(t *testing.T) {
	text := BuildText(Project(gender(), ModeText, true), true, DefaultPolicy())

	require.NotNil(t, text)
	assert.Equal(t, []string{"Homme: 60%", "Femme: 40%"}, text.Lines)
	assert.Equal(t, "Homme: 60%\nFemme: 40%", text.String())
}

func TestBuildTextMatrix(t *testing.T) {
	text := BuildText(Project(monthly(), ModeText, false), false, DefaultPolicy())

	require.NotNil(t, text)
	assert.Equal(t, []string{
		"A: 04-2025=1 · 05-2025=",
		"B: 04-2025=2 · 05-2025=4",
		"total: 04-2025=3 · 05-2025=9",
		"C: 04-2025= · 05-2025=5",
	}, text.Lines)
}

func TestBuildTextNilString(t *testing.T) {
	var text *TextData
	assert.Equal(t, "", text.String())
}

// ============================================================================
// TOTAL HANDLING ACROSS RENDERERS
// ============================================================================

func TestTotalIncludedInPlainModeForEveryRenderer(t *testing.T) {
	policy := DefaultPolicy()

	for _, payload := range []schema.Node{gender(), monthly()} {
		chart := BuildChart(Project(payload, ModeBar, false), false, policy)
		table := BuildTable(Project(payload, ModeTable, false), false, policy)
		text := BuildText(Project(payload, ModeText, false), false, policy)

		chartLabels := lo.Map(chart.Series[0].Data, func(p ChartPoint, _ int) string { return p.Label })
		if len(chart.Series) > 1 {
			chartLabels = lo.Map(chart.Series, func(s ChartSeries, _ int) string { return s.Name })
		}
		tableLabels := lo.Map(table.Rows, func(r []string, _ int) string { return r[0] })

		assert.Contains(t, chartLabels, "total")
		assert.Contains(t, tableLabels, "total")
		assert.True(t, lo.ContainsBy(text.Lines, func(l string) bool { return strings.HasPrefix(l, "total:") }))
	}
}

func TestTotalExcludedInPercentModeForEveryRenderer(t *testing.T) {
	policy := DefaultPolicy()

	for _, payload := range []schema.Node{gender(), monthly()} {
		for _, mode := range Modes {
			p := Project(payload, mode, true)
			assert.NotContains(t, p.Rows, "total", "mode %s", mode)
		}
		table := BuildTable(Project(payload, ModeTable, true), true, policy)
		for _, row := range table.Rows {
			assert.NotEqual(t, "total", row[0])
		}
	}
}

// ============================================================================
// RENDER
// ============================================================================

func TestRenderDispatchesOnMode(t *testing.T) {
	policy := DefaultPolicy()

	view := Render(Project(gender(), ModeTable, false), policy, "Genre")
	require.NotNil(t, view.Table)
	assert.Nil(t, view.Chart)
	assert.Nil(t, view.Text)
	assert.Equal(t, "Genre", view.Table.Title)
	assert.True(t, view.PieOffered)

	view = Render(Project(gender(), ModeText, false), policy, "")
	require.NotNil(t, view.Text)
	assert.Nil(t, view.Table)

	view = Render(Project(monthly(), ModePie, false), policy, "")
	require.NotNil(t, view.Chart)
	assert.Equal(t, ModeBar, view.Mode)
	assert.False(t, view.PieOffered)
}

func TestRenderNoData(t *testing.T) {
	for _, p := range []*Projection{
		Project(schema.MustParse(`[]`), ModeTable, false),
		Project(schema.MustParse(`{"a": 5}`), ModeBar, true),
		nil,
	} {
		view := Render(p, nil, "")
		assert.True(t, view.NoData)
		assert.Equal(t, "Aucune donnée à afficher", view.Message)
		assert.Nil(t, view.Chart)
		assert.Nil(t, view.Table)
		assert.Nil(t, view.Text)
	}
}
