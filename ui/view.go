package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/statview/engine"
)

// ============================================================================
// VIEW + CONTROLS
// ============================================================================
// DrawView lays out one item: title, the active rendering and the mode
// controls. Controls that do not apply are left out rather than disabled:
// no pie for a matrix, no percent toggle without percent data.
// ============================================================================

// ModeLabels are the control captions, in control order.
var ModeLabels = map[engine.ViewMode]string{
	engine.ModeBar:   "Barres",
	engine.ModePie:   "Secteurs",
	engine.ModeTable: "Tableau",
	engine.ModeText:  "Texte",
}

// PercentLabel is the caption of the percent toggle.
const PercentLabel = "%"

// Controls lists the modes offered for view, in control order.
func Controls(view *engine.View) []engine.ViewMode {
	modes := make([]engine.ViewMode, 0, len(engine.Modes))
	for _, m := range engine.Modes {
		if m == engine.ModePie && !view.PieOffered {
			continue
		}
		modes = append(modes, m)
	}
	return modes
}

// DrawControls draws the mode switch and, when offered, the percent toggle.
func DrawControls(view *engine.View, styles Styles) string {
	parts := make([]string, 0, len(engine.Modes)+1)
	for _, m := range Controls(view) {
		style := styles.Control
		if m == view.Mode {
			style = styles.ControlActive
		}
		parts = append(parts, style.Render("["+ModeLabels[m]+"]"))
	}
	if view.PercentOffered {
		style := styles.Control
		if view.Percent {
			style = styles.ControlActive
		}
		parts = append(parts, style.Render("["+PercentLabel+"]"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// DrawView draws a complete item. selected frames the item. Unrecognized
// payloads get the no-data message without controls.
func DrawView(view *engine.View, policy *engine.FormatPolicy, styles Styles, width int, selected bool) string {
	if view == nil {
		return ""
	}

	var sections []string
	if view.Title != "" {
		sections = append(sections, styles.Title.Render(view.Title))
	}

	switch {
	case view.NoData:
		sections = append(sections, styles.Muted.Render(view.Message))
	case view.Chart != nil:
		sections = append(sections, strings.TrimRight(DrawChart(view.Chart, policy, styles, width-4), "\n"))
	case view.Table != nil:
		sections = append(sections, DrawTable(view.Table, styles))
	case view.Text != nil:
		sections = append(sections, DrawText(view.Text, styles))
	}

	// an empty projection may be a mode the user can switch away from
	if view.Status != engine.StatusUnrecognized {
		sections = append(sections, DrawControls(view, styles))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if selected {
		return styles.Selected.Render(body)
	}
	return styles.Card.Render(body)
}
