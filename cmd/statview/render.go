package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/statview"
	"github.com/spektr-org/statview/engine"
	"github.com/spektr-org/statview/helpers"
	"github.com/spektr-org/statview/schema"
	"github.com/spektr-org/statview/ui"
)

// Output formats accepted by --format.
var formats = []string{"terminal", "json", "pretty", "csv", "text"}

const terminalWidth = 80

type renderFlags struct {
	file    string
	mode    string
	percent bool
	title   string
	format  string
	out     string
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a statistics payload file",
		Long: `Reads a payload (JSON, or CSV with a category column and one value column per
period) and prints it in the selected view mode.`,
		Example: `  statview render --file genre.json
  statview render --file monthly.json --mode table --percent --format pretty
  statview render --file monthly.csv --format csv --out monthly-out.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(a, f)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Payload file (.json or .csv), - for stdin")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(engine.ModeBar), "View mode: bar, pie, table, text")
	cmd.Flags().BoolVarP(&f.percent, "percent", "p", false, "Show percentages when the payload has them")
	cmd.Flags().StringVar(&f.title, "title", "", "Title shown above the view")
	cmd.Flags().StringVar(&f.format, "format", "terminal", "Output format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write output to file instead of stdout")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newClassifyCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Print the detected shape of a payload file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(file)
			if err != nil {
				return err
			}
			shape := schema.Classify(payload)
			a.logger.Debug("payload classified",
				zap.String("file", file),
				zap.Stringer("shape", shape.Kind))
			return writeJSON(a.out, shape, "pretty")
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Payload file (.json or .csv), - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runRender(a *app, f *renderFlags) error {
	if !lo.Contains(formats, f.format) {
		return errors.Errorf("unknown format %q (want one of %s)", f.format, strings.Join(formats, ", "))
	}
	mode := engine.ParseMode(f.mode)
	if f.format == "text" {
		mode = engine.ModeText
	}

	payload, err := readPayload(f.file)
	if err != nil {
		return err
	}

	policy := a.cfg.Policy()
	view := statview.Render(payload, statview.Options{
		Mode:    mode,
		Percent: f.percent,
		Title:   f.title,
		Policy:  policy,
	})
	a.logger.Debug("payload rendered",
		zap.String("file", f.file),
		zap.String("mode", string(view.Mode)),
		zap.Bool("percent", view.Percent),
		zap.String("status", string(view.Status)))

	w := a.out
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return errors.Wrapf(err, "create %s", f.out)
		}
		defer file.Close()
		w = file
	}

	switch f.format {
	case "csv":
		return helpers.WriteCSV(w, view)
	case "text":
		return writeText(w, view)
	case "json", "pretty":
		return writeJSON(w, view, f.format)
	default:
		styles := ui.NewStyles(ui.ThemeByName(a.cfg.Display.Theme))
		_, err := fmt.Fprintln(w, ui.DrawView(view, policy, styles, terminalWidth, false))
		return err
	}
}

// ============================================================================
// INPUT
// ============================================================================

// readPayload loads a payload from path, or stdin for "-". Files ending in
// .csv go through the CSV reader; everything else must be JSON.
func readPayload(path string) (schema.Node, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return schema.Node{}, errors.Wrap(err, "read payload")
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return helpers.ParsePayloadCSV(data)
	}
	payload, err := schema.Parse(data)
	if err != nil {
		return schema.Node{}, errors.Wrapf(err, "parse %s", path)
	}
	return payload, nil
}

// ============================================================================
// OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, format string) error {
	var (
		out []byte
		err error
	)
	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeText prints the title and one line per row, without styling.
func writeText(w io.Writer, view *engine.View) error {
	var lines []string
	if view.Title != "" {
		lines = append(lines, view.Title)
	}
	switch {
	case view.NoData:
		lines = append(lines, view.Message)
	case view.Text != nil:
		lines = append(lines, view.Text.Lines...)
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
