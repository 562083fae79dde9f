// Package statview renders statistics payloads from a conversational
// analytics backend as bar charts, pie charts, tables or compact text.
//
// Usage:
//
//	import "github.com/spektr-org/statview"
//
//	view, err := statview.RenderJSON(payload, statview.Options{
//	    Mode:    engine.ModeTable,
//	    Percent: true,
//	})
//
// A payload is classified once (schema), projected for the selected mode and
// percent setting (engine), and turned into a render-ready engine.View. The
// display package keeps per-item view state for interactive clients; the ui
// and chat packages draw views in the terminal.
package statview

import (
	"github.com/pkg/errors"

	"github.com/spektr-org/statview/display"
	"github.com/spektr-org/statview/engine"
	"github.com/spektr-org/statview/schema"
)

// Version is the release of the statview module.
const Version = "0.3.0"

// Options selects how a one-off payload renders.
type Options struct {
	Mode    engine.ViewMode
	Percent bool
	Title   string
	Policy  *engine.FormatPolicy
}

// Render builds the view of payload. An invalid mode renders as bar; a pie
// request on a matrix falls back to bar; Percent is ignored when the payload
// has no percent companions.
func Render(payload schema.Node, opts Options) *engine.View {
	controller := display.NewController(display.WithPolicy(opts.Policy))
	item := display.NewItem(payload, display.Hints{
		Mode:    opts.Mode,
		Percent: opts.Percent,
		Title:   opts.Title,
	})
	controller.Register(item)

	view, err := controller.Render(item.ID)
	if err != nil {
		// Unreachable: the item was registered above.
		return engine.Render(nil, opts.Policy, opts.Title)
	}
	return view
}

// RenderJSON parses data and renders it with Render.
func RenderJSON(data []byte, opts Options) (*engine.View, error) {
	payload, err := schema.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse payload")
	}
	return Render(payload, opts), nil
}
