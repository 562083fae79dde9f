package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/spektr-org/statview/backend"
	"github.com/spektr-org/statview/display"
	"github.com/spektr-org/statview/engine"
)

// responseMsg carries the answer to a question.
type responseMsg struct {
	message *display.Message
}

// commands maps slash commands to mode switches.
var commands = map[string]engine.ViewMode{
	"/bar":   engine.ModeBar,
	"/pie":   engine.ModePie,
	"/table": engine.ModeTable,
	"/text":  engine.ModeText,
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next

	case responseMsg:
		m.loading = false
		m = m.push(msg.message)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input. handled=false lets the key fall
// through to the textarea.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit, true

	case tea.KeyTab:
		m = m.selectOffset(1)
		return m, nil, true

	case tea.KeyShiftTab:
		m = m.selectOffset(-1)
		return m, nil, true

	case tea.KeyCtrlR:
		m = m.togglePercent()
		return m, nil, true

	case tea.KeyEnter:
		input := strings.TrimSpace(m.textarea.Value())
		if input == "" || m.loading {
			return m, nil, true
		}
		m.textarea.Reset()
		if strings.HasPrefix(input, "/") {
			return m.runCommand(input)
		}
		return m.submit(input)
	}
	return m, nil, false
}

// ============================================================================
// QUESTIONS
// ============================================================================

func (m Model) submit(question string) (Model, tea.Cmd, bool) {
	m = m.push(display.NewUserMessage(question))
	m.loading = true
	m.status = ""
	return m, tea.Batch(m.ask(question), m.spinner.Tick), true
}

// ask runs the backend call off the UI loop.
func (m Model) ask(question string) tea.Cmd {
	asker := m.opts.Asker
	timeout := m.opts.Timeout
	log := m.log
	return func() tea.Msg {
		if asker == nil {
			return responseMsg{message: display.ConnectionErrorMessage()}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return responseMsg{message: backend.AskOrApologize(ctx, asker, question, log)}
	}
}

func (m Model) push(msg *display.Message) Model {
	if msg == nil {
		return m
	}
	m.messages = append(m.messages, msg)
	m.controller.RegisterMessage(msg)
	for _, item := range msg.Items {
		m.items = append(m.items, item.ID)
	}
	if len(msg.Items) > 0 {
		m.selected = len(m.items) - 1
	}
	m.refresh()
	return m
}

// ============================================================================
// ITEM CONTROLS
// ============================================================================

func (m Model) runCommand(input string) (Model, tea.Cmd, bool) {
	name := strings.Fields(input)[0]
	switch name {
	case "/quit", "/exit":
		return m, tea.Quit, true
	case "/pct", "/percent":
		m = m.togglePercent()
		return m, nil, true
	}

	mode, ok := commands[name]
	if !ok {
		m.status = fmt.Sprintf("Commande inconnue: %s", name)
		return m, nil, true
	}
	id, ok := m.Selected()
	if !ok {
		m.status = "Aucun élément sélectionné"
		return m, nil, true
	}
	if err := m.controller.SetMode(id, mode); err != nil {
		m.log.Warn("set mode failed", zap.Error(err))
		m.status = err.Error()
		return m, nil, true
	}
	effective, _ := m.controller.EffectiveMode(id)
	m.status = ""
	if effective != mode {
		m.status = "Mode secteurs indisponible pour ce tableau"
	}
	m.refresh()
	return m, nil, true
}

func (m Model) togglePercent() Model {
	id, ok := m.Selected()
	if !ok {
		m.status = "Aucun élément sélectionné"
		return m
	}
	offered, err := m.controller.PercentOffered(id)
	if err != nil || !offered {
		m.status = "Pas de pourcentages pour cet élément"
		return m
	}
	if err := m.controller.TogglePercent(id); err != nil {
		m.log.Warn("toggle percent failed", zap.Error(err))
		return m
	}
	m.status = ""
	m.refresh()
	return m
}

func (m Model) selectOffset(delta int) Model {
	if len(m.items) == 0 {
		return m
	}
	m.selected = (m.selected + delta + len(m.items)) % len(m.items)
	m.refresh()
	return m
}

// ============================================================================
// LAYOUT
// ============================================================================

func (m Model) resize(width, height int) Model {
	if width <= 0 || height <= 0 {
		return m
	}
	m.width = width
	m.height = height

	vpHeight := height - inputHeight - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(width)

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.opts.Glamour),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.log.Warn("markdown renderer unavailable", zap.Error(err))
	} else {
		m.renderer = renderer
	}

	m.refresh()
	return m
}

// refresh re-renders the history into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}
