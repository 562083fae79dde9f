// Package chat is the interactive conversation client: a bubbletea model that
// sends questions to the analytics backend and renders each statistics item
// with its own switchable view.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spektr-org/statview/backend"
	"github.com/spektr-org/statview/display"
	"github.com/spektr-org/statview/ui"
)

const (
	inputHeight  = 2
	headerHeight = 2
	footerHeight = 2

	placeholder = "Tapez votre message ici..."
)

// Options configures a Model.
type Options struct {
	AppName    string
	SessionID  string
	Asker      backend.Asker
	Controller *display.Controller
	Styles     ui.Styles
	Logger     *zap.Logger
	Timeout    time.Duration // per question; zero means 30s
	Glamour    string        // glamour standard style: dark, light, notty
}

// Model is the bubbletea model of a conversation.
type Model struct {
	opts       Options
	controller *display.Controller
	styles     ui.Styles
	log        *zap.Logger

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	messages []*display.Message
	items    []uuid.UUID // every item of the conversation, oldest first
	selected int         // index into items, -1 when there are none

	loading bool
	ready   bool
	width   int
	height  int
	status  string
}

// New creates a conversation that starts with the welcome message.
func New(opts Options) Model {
	if opts.Controller == nil {
		opts.Controller = display.NewController()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Glamour == "" {
		opts.Glamour = "dark"
	}
	if opts.AppName == "" {
		opts.AppName = "Chatbot Assistant"
	}
	if opts.Styles.Theme.Primary == "" {
		opts.Styles = ui.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		opts:       opts,
		controller: opts.Controller,
		styles:     opts.Styles,
		log:        opts.Logger,
		textarea:   ta,
		spinner:    sp,
		messages:   []*display.Message{display.WelcomeMessage()},
		selected:   -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Messages returns the conversation so far.
func (m Model) Messages() []*display.Message { return m.messages }

// Selected returns the id of the selected item.
func (m Model) Selected() (uuid.UUID, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return uuid.Nil, false
	}
	return m.items[m.selected], true
}

// Loading reports whether a question is in flight.
func (m Model) Loading() bool { return m.loading }

// Status returns the last status line.
func (m Model) Status() string { return m.status }
