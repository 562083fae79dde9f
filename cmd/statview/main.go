package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/statview"
	"github.com/spektr-org/statview/config"
	"github.com/spektr-org/statview/logging"
)

// ============================================================================
// STATVIEW CLI — Adaptive statistics views for conversational analytics
// ============================================================================

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	out io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "statview",
		Short: "statview - adaptive statistics rendering for analytics chat",
		Long: `statview renders statistics payloads (category counts, per-period matrices,
percentages) as bar or pie charts, tables or compact text, and lets you switch
between them per item.

Run "statview chat" to talk to the analytics backend interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			// The chat UI owns the terminal; it logs to the configured file.
			logCfg := logging.Config{Level: "warn", Output: []string{"stderr"}}
			if cmd.Name() == "chat" {
				logCfg = cfg.Logger()
			}
			if a.verbose {
				logCfg.Level = "debug"
			}
			a.logger, err = logging.New(logCfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "statview.yaml", "Path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newChatCmd(a),
		newRenderCmd(a),
		newClassifyCmd(a),
		newVersionCmd(a),
	)
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.out, "statview %s\n", statview.Version)
			return err
		},
	}
}
