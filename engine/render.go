package engine

import (
	"github.com/spektr-org/statview/schema"
)

// ============================================================================
// RENDER — Dispatcher from Projection to the selected builder
// ============================================================================
// Pipeline:
//   1. Empty / unrecognized projection → single no-data state
//   2. Dispatch on the effective mode (chart / table / text)
//   3. Return View
//
// The percent flag comes from the projection; builders never re-derive it.
// ============================================================================

// Render turns a projection into the view for its effective mode.
func Render(p *Projection, policy *FormatPolicy, title string) *View {
	if policy == nil {
		policy = DefaultPolicy()
	}

	view := &View{
		Title:      title,
		PieOffered: true,
	}
	if p == nil {
		view.Mode = ModeBar
		view.Status = StatusUnrecognized
		view.NoData = true
		view.Message = policy.NoDataLabel
		return view
	}

	view.Mode = p.Mode
	view.Percent = p.Percent
	view.Shape = p.Shape
	view.Status = p.Status
	view.PieOffered = p.Shape != schema.Matrix

	if p.Empty() {
		view.NoData = true
		view.Message = policy.NoDataLabel
		return view
	}

	switch p.Mode {
	case ModeTable:
		view.Table = BuildTable(p, p.Percent, policy)
		view.Table.Title = title
	case ModeText:
		view.Text = BuildText(p, p.Percent, policy)
		view.Text.Title = title
	default:
		view.Chart = BuildChart(p, p.Percent, policy)
		view.Chart.Title = title
	}
	return view
}
