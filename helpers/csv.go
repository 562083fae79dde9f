package helpers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/spektr-org/statview/engine"
	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// CSV HELPERS — Payloads in, rendered views out
// ============================================================================
// ParsePayloadCSV turns a spreadsheet export into a payload:
//   category,value            → FLAT   {category: value}
//   category,p1,p2,...        → MATRIX {p1: {category: value}, ...}
// Empty cells are left out of the payload so they project as missing.
//
// WriteCSV writes a rendered view in a Sheets-ready layout.
// ============================================================================

// ErrNoHeader is returned for CSV input without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// ParsePayloadCSV builds a payload from CSV bytes. The first column holds the
// categories; the remaining header cells name the value columns.
func ParsePayloadCSV(data []byte) (schema.Node, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return schema.Null(), ErrNoHeader
	}
	if err != nil {
		return schema.Null(), errors.Wrap(err, "read csv header")
	}
	if len(headers) < 2 {
		return schema.Null(), errors.Errorf("csv needs at least 2 columns, got %d", len(headers))
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return schema.Null(), errors.Wrap(err, "read csv row")
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		rows = append(rows, row)
	}

	if len(headers) == 2 {
		fields := make([]schema.Field, 0, len(rows))
		for _, row := range rows {
			if v, ok := cellNode(row, 1); ok {
				fields = append(fields, schema.F(strings.TrimSpace(row[0]), v))
			}
		}
		return schema.Object(fields...), nil
	}

	periods := make([]schema.Field, 0, len(headers)-1)
	for col := 1; col < len(headers); col++ {
		var cells []schema.Field
		for _, row := range rows {
			if v, ok := cellNode(row, col); ok {
				cells = append(cells, schema.F(strings.TrimSpace(row[0]), v))
			}
		}
		periods = append(periods, schema.F(strings.TrimSpace(headers[col]), schema.Object(cells...)))
	}
	return schema.Object(periods...), nil
}

// cellNode keeps plain numbers as numbers and everything else as strings,
// so "66,67%" stays a percentage string for the coercion rules.
func cellNode(row []string, col int) (schema.Node, bool) {
	if col >= len(row) {
		return schema.Node{}, false
	}
	raw := strings.TrimSpace(row[col])
	if raw == "" {
		return schema.Node{}, false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		n := schema.Number(f)
		if n.Kind == schema.KindNumber {
			n.Str = raw
			return n, true
		}
	}
	return schema.String(raw), true
}

// ============================================================================
// CSV OUTPUT
// ============================================================================

// WriteCSV writes view as CSV: chart data as label/value columns, tables as
// shown, text as one line per row.
func WriteCSV(w io.Writer, view *engine.View) error {
	cw := csv.NewWriter(w)

	switch {
	case view == nil || view.NoData:
		message := "No data"
		if view != nil && view.Message != "" {
			message = view.Message
		}
		_ = cw.Write([]string{"Result", message})
	case view.Chart != nil:
		writeChartCSV(cw, view.Chart)
	case view.Table != nil:
		writeTableCSV(cw, view.Table)
	case view.Text != nil:
		for _, line := range view.Text.Lines {
			_ = cw.Write([]string{line})
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "write csv")
}

func writeChartCSV(cw *csv.Writer, chart *engine.ChartConfig) {
	xLabel := chart.XAxis
	yLabel := chart.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	if len(chart.Series) == 0 {
		return
	}

	// Single series → two columns
	if len(chart.Series) == 1 {
		_ = cw.Write([]string{xLabel, yLabel})
		for _, d := range chart.Series[0].Data {
			_ = cw.Write([]string{d.Label, fmtNum(d.Value)})
		}
		return
	}

	// Multi-series → label + one column per series
	headers := []string{xLabel}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
	}
	_ = cw.Write(headers)

	for i, d := range chart.Series[0].Data {
		row := []string{d.Label}
		for _, s := range chart.Series {
			if i < len(s.Data) {
				row = append(row, fmtNum(s.Data[i].Value))
			} else {
				row = append(row, "")
			}
		}
		_ = cw.Write(row)
	}
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) {
	_ = cw.Write(table.Headers())
	for _, row := range table.Rows {
		_ = cw.Write(row)
	}
}

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
