package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER — Produces compact TextData from a Projection
// ============================================================================
//   FLAT   → "label: value"
//   MATRIX → "label: 04-2025=1 · 05-2025=2"
// Values follow the table policy: percent suffix in percent mode, locale
// grouping otherwise, the original string when it is not numeric.
// ============================================================================

// BuildText produces one line per projection row.
func BuildText(p *Projection, percent bool, policy *FormatPolicy) *TextData {
	if p.Empty() {
		return nil
	}

	lines := make([]string, 0, len(p.Rows))
	for i, label := range p.Rows {
		if len(p.Columns) == 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", label, p.Cells[i][0].Text(policy, percent)))
			continue
		}

		parts := make([]string, 0, len(p.Columns))
		for j, period := range p.Columns {
			parts = append(parts, fmt.Sprintf("%s=%s", period, p.Cells[i][j].Text(policy, percent)))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, strings.Join(parts, policy.TextSeparator)))
	}

	return &TextData{Lines: lines}
}

// String joins the lines for plain output.
func (t *TextData) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(t.Lines, "\n")
}
