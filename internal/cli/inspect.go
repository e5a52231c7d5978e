package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/internal/presentation/tui"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/events"
)

// InspectOptions configures RunInspect.
type InspectOptions struct {
	Input      string
	ModeFlag   string // empty keeps the profile's mode
	ConfigPath string
	Overrides  Overrides
	Debug      bool
	// Markdown forces raw markdown even on a terminal.
	Markdown bool
	Stdout   io.Writer
}

// RunInspect prints a summary of the tiers an event log would produce.
func RunInspect(ctx context.Context, opts InspectOptions) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	cfg, err := ResolveConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	convOpts := append(cfg.ConverterOptions(), eventgrid.WithLogger(createLogger(opts.Debug)))
	if opts.ModeFlag != "" {
		mode, err := domain.ParseBoundMode(opts.ModeFlag)
		if err != nil {
			return &domain.UsageError{Reason: err.Error()}
		}
		convOpts = append(convOpts, eventgrid.WithBoundMode(mode))
	}

	in, err := events.Open(opts.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	doc, stats, err := eventgrid.New(convOpts...).Convert(ctx, in)
	if err != nil {
		return err
	}

	md := tui.Summary(opts.Input, doc, stats)
	if f, ok := stdout.(*os.File); ok && !opts.Markdown && tui.IsTerminal(f) {
		if rendered, err := tui.NewRenderer()(md); err == nil {
			md = rendered
		}
	}
	_, err = fmt.Fprint(stdout, md)
	return err
}
