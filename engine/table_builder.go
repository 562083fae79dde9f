package engine

// ============================================================================
// TABLE BUILDER — Produces TableData from a Projection
// ============================================================================
// First column holds the row labels. FLAT gets a single value column, MATRIX
// one column per period. Missing matrix cells render blank.
// ============================================================================

// BuildTable produces a TableData from a projection.
func BuildTable(p *Projection, percent bool, policy *FormatPolicy) *TableData {
	if p.Empty() {
		return nil
	}

	valueType := "number"
	if percent {
		valueType = "percent"
	}

	columns := []Column{
		{Key: "category", Label: policy.CategoryLabel, Type: "text", Align: "left"},
	}
	if len(p.Columns) == 0 {
		columns = append(columns, Column{Key: "value", Label: policy.ValueLabel, Type: valueType, Align: "right"})
	}
	for _, period := range p.Columns {
		columns = append(columns, Column{Key: period, Label: period, Type: valueType, Align: "right"})
	}

	rows := make([][]string, 0, len(p.Rows))
	for i, label := range p.Rows {
		row := make([]string, 0, len(columns))
		row = append(row, label)
		for _, cell := range p.Cells[i] {
			row = append(row, cell.Text(policy, percent))
		}
		rows = append(rows, row)
	}

	return &TableData{
		Columns: columns,
		Rows:    rows,
	}
}
