package engine

import (
	"github.com/samber/lo"

	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// PROJECTION ENGINE — Payload + mode + percent → Projection
// ============================================================================
// Row rules, applied identically for chart, table and text:
//
//   percent=true   rows = categories with a <category>_pct key, minus total
//                  cells come from the _pct keys only
//   percent=false  rows = every key not ending in _pct, total included
//
// FLAT   → no columns, one cell per row
// MATRIX → columns = periods in source order, rows = first-seen union of the
//          categories of every period, absent cells are Missing (never zero)
//
// Project is a pure function of its inputs: the same arguments always yield
// an identical Projection.
// ============================================================================

// Project builds the projection of payload for the requested mode and percent
// setting.
func Project(payload schema.Node, mode ViewMode, percent bool) *Projection {
	return ProjectShape(schema.Classify(payload), mode, percent)
}

// ProjectShape is Project for a payload that has already been classified.
func ProjectShape(shape schema.Shape, mode ViewMode, percent bool) *Projection {
	p := &Projection{
		Shape:   shape.Kind,
		Mode:    EffectiveMode(mode, shape.Kind),
		Percent: percent,
		Rows:    []string{},
		Columns: []string{},
	}

	switch shape.Kind {
	case schema.Flat:
		projectFlat(p, shape.Body)
	case schema.Matrix:
		projectMatrix(p, shape)
	default:
		p.Status = StatusUnrecognized
		return p
	}

	if len(p.Rows) == 0 {
		p.Status = StatusEmpty
		p.Cells = nil
		return p
	}
	p.Status = StatusOK
	return p
}

func projectFlat(p *Projection, body schema.Node) {
	p.Rows = rowKeys(body.Fields, p.Percent)
	p.Cells = make([][]Cell, len(p.Rows))
	for i, row := range p.Rows {
		p.Cells[i] = []Cell{lookupCell(body, sourceKey(row, p.Percent))}
	}
}

func projectMatrix(p *Projection, shape schema.Shape) {
	p.Columns = append(p.Columns, shape.Periods...)

	var seen []string
	for _, period := range shape.Body.Fields {
		seen = append(seen, rowKeys(period.Value.Fields, p.Percent)...)
	}
	p.Rows = lo.Uniq(seen)

	p.Cells = make([][]Cell, len(p.Rows))
	for i, row := range p.Rows {
		key := sourceKey(row, p.Percent)
		cells := make([]Cell, 0, len(shape.Body.Fields))
		for _, period := range shape.Body.Fields {
			cells = append(cells, lookupCell(period.Value, key))
		}
		p.Cells[i] = cells
	}
}

// rowKeys applies the percent-inclusion and aggregate-exclusion rules to one
// level of category keys, keeping source order.
func rowKeys(fields []schema.Field, percent bool) []string {
	rows := make([]string, 0, len(fields))
	for _, f := range fields {
		if percent {
			if schema.IsPercentCategory(f.Key) {
				rows = append(rows, schema.StripPercent(f.Key))
			}
			continue
		}
		if !schema.IsPercentKey(f.Key) {
			rows = append(rows, f.Key)
		}
	}
	return lo.Uniq(rows)
}

func sourceKey(row string, percent bool) string {
	if percent {
		return schema.PercentKey(row)
	}
	return row
}

func lookupCell(obj schema.Node, key string) Cell {
	n, ok := obj.Get(key)
	if !ok {
		return Cell{Missing: true}
	}
	v, numeric := Coerce(n)
	return Cell{Source: n, Numeric: numeric, Value: v}
}
