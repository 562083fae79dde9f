package engine

import (
	"github.com/samber/lo"

	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// STATVIEW ENGINE TYPES — Shape-agnostic projections and render output
// ============================================================================
// Pipeline: schema.Node → Classify → Project → Build{Chart,Table,Text} → View
//
// The engine never computes statistics. It reads already-computed values and
// decides how to lay them out.
// ============================================================================

// ============================================================================
// VIEW MODE
// ============================================================================

// ViewMode is the visual representation selected for an item.
type ViewMode string

const (
	ModeBar   ViewMode = "bar"
	ModePie   ViewMode = "pie"
	ModeTable ViewMode = "table"
	ModeText  ViewMode = "text"
)

// Modes lists every mode in control order.
var Modes = []ViewMode{ModeBar, ModePie, ModeTable, ModeText}

// ParseMode maps hint strings to a mode. Unknown values fall back to bar.
func ParseMode(s string) ViewMode {
	switch s {
	case "pie", "chart-pie":
		return ModePie
	case "table":
		return ModeTable
	case "text", "list":
		return ModeText
	default:
		return ModeBar
	}
}

// Valid reports whether m is one of Modes.
func (m ViewMode) Valid() bool { return lo.Contains(Modes, m) }

// EffectiveMode applies the fallback rules: a matrix has no single-series
// reading, so pie becomes bar; unknown modes become bar.
func EffectiveMode(m ViewMode, shape schema.ShapeKind) ViewMode {
	if !m.Valid() {
		return ModeBar
	}
	if m == ModePie && shape == schema.Matrix {
		return ModeBar
	}
	return m
}

// ============================================================================
// PROJECTION
// ============================================================================

// Status tells renderers whether a projection has anything to show.
type Status string

const (
	StatusOK           Status = "ok"
	StatusUnrecognized Status = "unrecognized"
	StatusEmpty        Status = "empty"
)

// Cell is one (row, column) value of a projection.
type Cell struct {
	Source  schema.Node `json:"source"`
	Missing bool        `json:"missing,omitempty"`
	Numeric bool        `json:"numeric"`
	Value   float64     `json:"value"` // plotting value; 0 when missing or non-numeric
}

// Projection is the render-ready normalization of a payload for one mode and
// percent setting. FLAT projections have no columns; their cells live under
// the empty column name.
type Projection struct {
	Shape   schema.ShapeKind `json:"shape"`
	Mode    ViewMode         `json:"mode"`
	Percent bool             `json:"percent"`
	Status  Status           `json:"status"`
	Rows    []string         `json:"rows"`
	Columns []string         `json:"columns"`
	Cells   [][]Cell         `json:"cells"` // Cells[row][column], one column for FLAT
}

// Empty reports whether the projection must render as the no-data state.
func (p *Projection) Empty() bool {
	return p == nil || p.Status != StatusOK
}

// Cell returns the cell at (row, column). Unknown coordinates are Missing.
// Use column "" for FLAT projections.
func (p *Projection) Cell(row, column string) Cell {
	r := lo.IndexOf(p.Rows, row)
	if r < 0 {
		return Cell{Missing: true}
	}
	c := 0
	if len(p.Columns) > 0 {
		c = lo.IndexOf(p.Columns, column)
	} else if column != "" {
		c = -1
	}
	if c < 0 || r >= len(p.Cells) || c >= len(p.Cells[r]) {
		return Cell{Missing: true}
	}
	return p.Cells[r][c]
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType    string        `json:"chartType"`
	Title        string        `json:"title"`
	XAxis        string        `json:"xAxis,omitempty"`
	YAxis        string        `json:"yAxis,omitempty"`
	Series       []ChartSeries `json:"series"`
	Colors       []string      `json:"colors,omitempty"`
	ShowLegend   bool          `json:"showLegend"`
	ShowGrid     bool          `json:"showGrid"`
	Percent      bool          `json:"percent"`
	PieAvailable bool          `json:"pieAvailable"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent"
	Align string `json:"align"` // "left", "right"
}

// Headers returns the column labels in order.
func (t *TableData) Headers() []string {
	return lo.Map(t.Columns, func(c Column, _ int) string { return c.Label })
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is the compact text rendering: one line per row.
type TextData struct {
	Title string   `json:"title,omitempty"`
	Lines []string `json:"lines"`
}

// ============================================================================
// VIEW — Render-ready output
// ============================================================================

// View is the outbound, render-ready result for one item. Exactly one of
// Chart, Table and Text is set, unless NoData is true.
type View struct {
	Mode    ViewMode         `json:"mode"`
	Percent bool             `json:"percent"`
	Shape   schema.ShapeKind `json:"shape"`
	Status  Status           `json:"status"`
	Title   string           `json:"title,omitempty"`

	NoData  bool   `json:"noData"`
	Message string `json:"message,omitempty"`

	Chart *ChartConfig `json:"chart,omitempty"`
	Table *TableData   `json:"table,omitempty"`
	Text  *TextData    `json:"text,omitempty"`

	// Controls offered to the user for this item.
	PieOffered     bool `json:"pieOffered"`
	PercentOffered bool `json:"percentOffered"`
}
