package engine

import (
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ============================================================================
// FORMATTING HELPERS
// ============================================================================

func (p *FormatPolicy) messagePrinter() *message.Printer {
	if p.printer == nil {
		p.printer = message.NewPrinter(p.Locale)
	}
	return p.printer
}

// FormatNumber renders v with locale grouping and at most MaxFractionDigits
// fraction digits: 1234.5 → "1 234,5" in French, "1,234.5" in English.
func (p *FormatPolicy) FormatNumber(v float64) string {
	if v == 0 {
		v = 0 // normalizes -0
	}
	return p.messagePrinter().Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(p.MaxFractionDigits)))
}

// FormatPercent renders v as a number followed by the percent suffix.
func (p *FormatPolicy) FormatPercent(v float64) string {
	return p.FormatNumber(v) + p.PercentSuffix
}
