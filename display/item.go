package display

import (
	"github.com/google/uuid"

	"github.com/spektr-org/statview/engine"
	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// DISPLAY ITEM — One renderable statistics payload inside a message
// ============================================================================
// The payload is immutable once the item exists. Its shape is classified once
// here; every later projection reuses it.
// ============================================================================

// Hints are the backend's suggestions for how an item should first render.
type Hints struct {
	Mode    engine.ViewMode `json:"mode"`
	Percent bool            `json:"percent"`
	Title   string          `json:"title,omitempty"`
}

// Item is one payload plus its suggested presentation.
type Item struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title,omitempty"`
	Payload          schema.Node     `json:"payload"`
	SuggestedMode    engine.ViewMode `json:"suggestedMode"`
	SuggestedPercent bool            `json:"suggestedPercent"`
	Shape            schema.Shape    `json:"shape"`

	fingerprint uint64
}

// NewItem classifies payload and wraps it in an item with a fresh id.
func NewItem(payload schema.Node, hints Hints) *Item {
	mode := hints.Mode
	if !mode.Valid() {
		mode = engine.ModeBar
	}
	return &Item{
		ID:               uuid.New(),
		Title:            hints.Title,
		Payload:          payload,
		SuggestedMode:    mode,
		SuggestedPercent: hints.Percent,
		Shape:            schema.Classify(payload),
		fingerprint:      payload.Fingerprint(),
	}
}

// Fingerprint identifies the payload for projection memoization.
func (it *Item) Fingerprint() uint64 { return it.fingerprint }

// HasPercent reports whether the payload carries percent companions.
func (it *Item) HasPercent() bool { return it.Shape.HasPercent }

// HintsFromRender maps a render descriptor (chart, chart_pct, table, text)
// and chart type (bar, pie) to hints.
func HintsFromRender(render, chartType string) Hints {
	var h Hints
	switch render {
	case "chart_pct":
		h.Percent = true
		h.Mode = chartMode(chartType)
	case "chart", "":
		h.Mode = chartMode(chartType)
	default:
		h.Mode = engine.ParseMode(render)
	}
	return h
}

func chartMode(chartType string) engine.ViewMode {
	if engine.ParseMode(chartType) == engine.ModePie {
		return engine.ModePie
	}
	return engine.ModeBar
}
