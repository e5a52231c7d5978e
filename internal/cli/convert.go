package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/internal/metrics"
	"github.com/aretw0/eventgrid/internal/presentation/tui"
	"github.com/aretw0/eventgrid/pkg/domain"
)

// ConvertOptions configures RunConvert.
type ConvertOptions struct {
	Input       string
	Output      string
	ModeFlag    string // "1" subtracts durations, "0" adds them
	ConfigPath  string
	Overrides   Overrides
	MetricsFile string
	Debug       bool
	Quiet       bool
	Stdout      io.Writer
}

// RunConvert converts one event log into a TextGrid file.
func RunConvert(ctx context.Context, opts ConvertOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	mode, err := domain.ParseBoundMode(opts.ModeFlag)
	if err != nil {
		return &domain.UsageError{Reason: err.Error()}
	}

	cfg, err := ResolveConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	logger := createLogger(opts.Debug)
	var collector *metrics.Collector
	if opts.MetricsFile != "" {
		collector = metrics.New()
	}

	convOpts := append(cfg.ConverterOptions(),
		eventgrid.WithBoundMode(mode),
		eventgrid.WithLogger(logger),
	)
	if collector != nil {
		convOpts = append(convOpts, eventgrid.WithObserver(collector))
	}
	conv := eventgrid.New(convOpts...)

	stats, convErr := conv.ConvertFile(ctx, opts.Input, opts.Output)

	if collector != nil {
		if err := collector.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("metrics textfile not written", "path", opts.MetricsFile, "error", err)
		}
	}
	if convErr != nil {
		return convErr
	}

	if !opts.Quiet {
		tui.Status(opts.Stdout, true, "%s: %d tiers, %d intervals (%d events skipped) in %s",
			opts.Output, stats.Tiers, stats.Intervals, stats.Skipped, stats.Took.Round(time.Millisecond))
	}
	return nil
}

// UsageErrorf builds a *domain.UsageError.
func UsageErrorf(format string, args ...any) error {
	return &domain.UsageError{Reason: fmt.Sprintf(format, args...)}
}
