package engine

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// FORMAT POLICY — Functional options for renderers
// ============================================================================
// Locale, fraction digits, suffixes and labels are passed in explicitly. No
// renderer reads the process locale or any other ambient state.
// ============================================================================

// Default palette for chart series, assigned by row index.
var defaultColors = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff8042", "#8dd1e1"}

// FormatPolicy configures how values and labels are displayed.
type FormatPolicy struct {
	Locale            language.Tag
	MaxFractionDigits int
	PercentSuffix     string
	TextSeparator     string
	CategoryLabel     string
	ValueLabel        string
	PeriodLabel       string
	NoDataLabel       string
	Palette           []string

	printer *message.Printer
}

// Option configures a FormatPolicy via the functional options pattern.
type Option func(*FormatPolicy)

// WithLocale sets the locale used for decimal and grouping separators.
func WithLocale(tag language.Tag) Option {
	return func(p *FormatPolicy) {
		p.Locale = tag
	}
}

// WithMaxFractionDigits caps the fraction digits of formatted numbers.
func WithMaxFractionDigits(n int) Option {
	return func(p *FormatPolicy) {
		if n >= 0 {
			p.MaxFractionDigits = n
		}
	}
}

// WithPercentSuffix sets the suffix appended to percent values (e.g. "%", " %").
func WithPercentSuffix(suffix string) Option {
	return func(p *FormatPolicy) {
		p.PercentSuffix = suffix
	}
}

// WithLabels overrides the category, value and period header labels.
// Empty strings keep the current label.
func WithLabels(category, value, period string) Option {
	return func(p *FormatPolicy) {
		if category != "" {
			p.CategoryLabel = category
		}
		if value != "" {
			p.ValueLabel = value
		}
		if period != "" {
			p.PeriodLabel = period
		}
	}
}

// WithNoDataLabel sets the message shown for the no-data state.
func WithNoDataLabel(label string) Option {
	return func(p *FormatPolicy) {
		if label != "" {
			p.NoDataLabel = label
		}
	}
}

// WithPalette replaces the series palette. An empty palette is ignored.
func WithPalette(colors ...string) Option {
	return func(p *FormatPolicy) {
		if len(colors) > 0 {
			p.Palette = colors
		}
	}
}

// NewFormatPolicy creates a policy from functional options.
func NewFormatPolicy(opts ...Option) *FormatPolicy {
	p := &FormatPolicy{
		Locale:            language.French,
		MaxFractionDigits: 2,
		PercentSuffix:     "%",
		TextSeparator:     " · ",
		CategoryLabel:     "Catégorie",
		ValueLabel:        "Valeur",
		PeriodLabel:       "Période",
		NoDataLabel:       "Aucune donnée à afficher",
		Palette:           defaultColors,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.printer = message.NewPrinter(p.Locale)
	return p
}

// DefaultPolicy returns the French policy the client ships with.
func DefaultPolicy() *FormatPolicy {
	return NewFormatPolicy()
}

// Color returns the palette color for index i.
func (p *FormatPolicy) Color(i int) string {
	palette := p.Palette
	if len(palette) == 0 {
		palette = defaultColors
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}
