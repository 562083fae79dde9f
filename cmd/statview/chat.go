package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/statview/backend"
	"github.com/spektr-org/statview/chat"
	"github.com/spektr-org/statview/display"
	"github.com/spektr-org/statview/engine"
	"github.com/spektr-org/statview/ui"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive analytics chat",
		Long: `Opens a conversation with the analytics backend. Statistics in answers are
drawn in the terminal; switch the selected item with /bar /pie /table /text,
toggle percentages with /pct or ctrl+r, and move between items with tab.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(a)
		},
	}
}

func runChat(a *app) error {
	client := backend.NewClient(a.cfg.BackendClient(), a.logger.Named("backend"))
	controller := display.NewController(
		display.WithPolicy(a.cfg.Policy()),
		display.WithCache(engine.NewCache(0)),
		display.WithLogger(a.logger.Named("display")),
	)

	glamourStyle := "dark"
	if a.cfg.Display.Theme == "light" {
		glamourStyle = "light"
	}

	model := chat.New(chat.Options{
		AppName:    a.cfg.AppName,
		SessionID:  client.SessionID(),
		Asker:      client,
		Controller: controller,
		Styles:     ui.NewStyles(ui.ThemeByName(a.cfg.Display.Theme)),
		Logger:     a.logger.Named("chat"),
		Timeout:    a.cfg.Backend.Timeout,
		Glamour:    glamourStyle,
	})

	a.logger.Info("chat started",
		zap.String("endpoint", client.URL()),
		zap.String("session", client.SessionID()))

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "run chat")
	}
	return nil
}
