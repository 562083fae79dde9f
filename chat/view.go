package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/spektr-org/statview/display"
	"github.com/spektr-org/statview/ui"
)

const (
	userLabel = "Vous"
	botLabel  = "Assistant"
	helpLine  = "entrée envoyer · tab élément suivant · ctrl+r % · /bar /pie /table /text /pct · esc quitter"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initialisation..."
	}

	header := m.styles.Title.Render(m.opts.AppName)
	if m.opts.SessionID != "" {
		header += m.styles.Muted.Render("  Session: " + m.opts.SessionID)
	}

	footer := m.styles.Muted.Render(helpLine)
	if m.status != "" {
		footer = m.styles.Error.Render(m.status) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		m.textarea.View(),
		footer,
	)
}

// renderHistory draws every message, each item with its current view.
func (m Model) renderHistory() string {
	selected, hasSelection := m.Selected()

	var sb strings.Builder
	for _, msg := range m.messages {
		sb.WriteString(m.renderMessage(msg, selected.String(), hasSelection))
		sb.WriteString("\n")
	}
	if m.loading {
		sb.WriteString(m.styles.Bot.Render(botLabel) + " " + m.spinner.View() + "\n")
	}
	return sb.String()
}

func (m Model) renderMessage(msg *display.Message, selected string, hasSelection bool) string {
	var sb strings.Builder

	label, style := botLabel, m.styles.Bot
	if msg.Sender == display.SenderUser {
		label, style = userLabel, m.styles.User
	}
	sb.WriteString(style.Render(label) + m.styles.Muted.Render(" · "+msg.Timestamp.Format("15:04:05")) + "\n")

	switch {
	case msg.Failed:
		sb.WriteString(m.styles.Error.Render(msg.Text) + "\n")
	case msg.Sender == display.SenderBot:
		sb.WriteString(m.renderMarkdown(msg.Text))
	default:
		sb.WriteString(m.styles.Body.Render(msg.Text) + "\n")
	}

	if details := msg.Details(); details != "" {
		sb.WriteString(m.styles.Muted.Render(details) + "\n")
	}

	for _, item := range msg.Items {
		view, err := m.controller.Render(item.ID)
		if err != nil {
			m.log.Warn("render item failed", zap.Error(err))
			continue
		}
		isSelected := hasSelection && item.ID.String() == selected
		sb.WriteString(ui.DrawView(view, m.controller.Policy(), m.styles, m.width, isSelected))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderMarkdown renders bot text, falling back to plain text.
func (m Model) renderMarkdown(text string) string {
	if text == "" {
		return ""
	}
	if m.renderer == nil {
		return m.styles.Body.Render(text) + "\n"
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return m.styles.Body.Render(text) + "\n"
	}
	return strings.TrimLeft(out, "\n")
}
