package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// VALUE COERCION — Heterogeneous scalars → canonical numbers
// ============================================================================
// Payload values arrive as numbers, numeric strings ("12") or localized
// percentage strings ("66,67%"). Two fallbacks exist for anything else:
//
//   PlotValue    → 0, so charts can always plot
//   DisplayValue → the original string, so text never shows a made-up zero
//
// Callers pick the fallback explicitly by picking the function.
// ============================================================================

// ParseNumber decodes a numeric or percentage string: "%" is stripped, the
// decimal comma becomes a period, surrounding space is trimmed.
func ParseNumber(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(s, "%", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Coerce converts a payload value to a number. ok is false for anything that
// is neither a finite number nor a numeric string.
func Coerce(n schema.Node) (float64, bool) {
	switch n.Kind {
	case schema.KindNumber:
		if math.IsNaN(n.Num) || math.IsInf(n.Num, 0) {
			return 0, false
		}
		return n.Num, true
	case schema.KindString:
		return ParseNumber(n.Str)
	}
	return 0, false
}

// PlotValue is Coerce with the plotting fallback: non-numeric values plot as 0.
func PlotValue(n schema.Node) float64 {
	v, _ := Coerce(n)
	return v
}

// DisplayValue is Coerce with the textual fallback: numeric values are
// formatted by the policy, anything else is echoed as-is.
func DisplayValue(n schema.Node, policy *FormatPolicy, percent bool) string {
	v, ok := Coerce(n)
	if !ok {
		return n.Text()
	}
	if percent {
		return policy.FormatPercent(v)
	}
	return policy.FormatNumber(v)
}

// Text formats a projection cell for tables and text. Missing cells are blank.
func (c Cell) Text(policy *FormatPolicy, percent bool) string {
	if c.Missing {
		return ""
	}
	return DisplayValue(c.Source, policy, percent)
}
