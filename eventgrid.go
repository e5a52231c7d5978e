package eventgrid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/eventgrid/internal/adapters/file"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/events"
	"github.com/aretw0/eventgrid/pkg/textgrid"
)

// Event outcomes reported to an Observer.
const (
	OutcomeAccepted = "accepted"
	OutcomeSkipped  = "skipped"
	OutcomeFiltered = "filtered"
)

// Observer receives conversion measurements. internal/metrics.Collector
// implements it on top of Prometheus.
type Observer interface {
	ObserveEvents(outcome string, n int)
	ObserveConversion(tiers, intervals int, took time.Duration, err error)
}

// Stats summarises one conversion.
type Stats struct {
	Events    int // completed events read
	Skipped   int // events in any other state
	Filtered  int // completed events dropped by the sender filter
	Intervals int
	Tiers     int
	Extent    domain.Extent
	Took      time.Duration
}

// Converter turns event logs into TextGrid documents.
// A Converter holds configuration only and may be shared between goroutines;
// every conversion builds its own document.
type Converter struct {
	mode        domain.BoundMode
	logger      *slog.Logger
	observer    Observer
	aliases     map[string]string
	senders     map[string]struct{}
	strictOrder bool
	renderOpts  []textgrid.RenderOption
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithBoundMode selects how event times map to interval bounds (default BoundsAdd).
func WithBoundMode(mode domain.BoundMode) Option {
	return func(c *Converter) {
		c.mode = mode
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithObserver reports event and conversion measurements to o.
func WithObserver(o Observer) Option {
	return func(c *Converter) {
		c.observer = o
	}
}

// WithTierAliases names the tier of a sender differently from the sender.
// Several senders may share one alias; they then share the tier.
func WithTierAliases(aliases map[string]string) Option {
	return func(c *Converter) {
		c.aliases = make(map[string]string, len(aliases))
		for sender, tier := range aliases {
			c.aliases[sender] = tier
		}
	}
}

// WithSenders restricts the conversion to events of the given senders.
// An empty list keeps every sender.
func WithSenders(senders ...string) Option {
	return func(c *Converter) {
		if len(senders) == 0 {
			c.senders = nil
			return
		}
		c.senders = make(map[string]struct{}, len(senders))
		for _, s := range senders {
			c.senders[s] = struct{}{}
		}
	}
}

// WithStrictOrder rejects logs in which a sender's events go back in time.
func WithStrictOrder() Option {
	return func(c *Converter) {
		c.strictOrder = true
	}
}

// WithRenderOptions sets the options used when rendering documents.
func WithRenderOptions(opts ...textgrid.RenderOption) Option {
	return func(c *Converter) {
		c.renderOpts = append(c.renderOpts, opts...)
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{mode: domain.BoundsAdd}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.logger = c.logger.With("mode", c.mode.String())
	return c
}

// Mode returns the configured bound mode.
func (c *Converter) Mode() domain.BoundMode {
	return c.mode
}

// Convert reads the whole event log from r into a new document.
// The context is checked between events.
func (c *Converter) Convert(ctx context.Context, r io.Reader) (doc *textgrid.Document, stats Stats, err error) {
	start := time.Now()
	reader := events.NewReader(r)
	defer func() {
		stats.Skipped = reader.Skipped()
		stats.Took = time.Since(start)
		c.observe(stats, err)
	}()

	var docOpts []textgrid.Option
	if c.strictOrder {
		docOpts = append(docOpts, textgrid.WithStrictOrder())
	}
	doc = textgrid.New(docOpts...)

	for ev, readErr := range reader.All() {
		if readErr != nil {
			return nil, stats, readErr
		}
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.Events++

		if !c.accepts(ev.Sender) {
			stats.Filtered++
			continue
		}

		lower, upper, err := ev.Bounds(c.mode)
		if err != nil {
			return nil, stats, err
		}
		if err := doc.Append(c.tierName(ev.Sender), domain.Interval{Lower: lower, Upper: upper, Label: ev.Label}); err != nil {
			return nil, stats, fmt.Errorf("event #%d: %w", ev.Ordinal, err)
		}
		stats.Intervals++
	}

	stats.Tiers = doc.Len()
	stats.Extent = doc.Extent()

	c.logger.Debug("event log converted",
		"events", stats.Events,
		"skipped", reader.Skipped(),
		"filtered", stats.Filtered,
		"tiers", stats.Tiers,
		"intervals", stats.Intervals,
	)
	return doc, stats, nil
}

// Render serialises doc with the converter's render options.
func (c *Converter) Render(doc *textgrid.Document) string {
	return doc.Render(c.renderOpts...)
}

// ConvertBytes converts an in-memory event log and returns the rendered text.
func (c *Converter) ConvertBytes(ctx context.Context, data []byte) (string, Stats, error) {
	doc, stats, err := c.Convert(ctx, bytes.NewReader(data))
	if err != nil {
		return "", stats, err
	}
	return c.Render(doc), stats, nil
}

// ConvertFile converts the event log at inPath and writes the TextGrid to
// outPath. The document is rendered in memory and written atomically, so
// outPath is left untouched when anything fails.
func (c *Converter) ConvertFile(ctx context.Context, inPath, outPath string) (Stats, error) {
	logger := c.logger.With("input", inPath, "output", outPath)

	in, err := events.Open(inPath)
	if err != nil {
		return Stats{}, err
	}
	defer in.Close()

	doc, stats, err := c.Convert(ctx, in)
	if err != nil {
		if !isConversionError(err) {
			err = &domain.IOError{Op: "read", Path: inPath, Err: err}
		}
		logger.Error("conversion failed", "error", err)
		return stats, err
	}

	if err := file.WriteAtomic(outPath, []byte(c.Render(doc)), 0644); err != nil {
		logger.Error("write failed", "error", err)
		return stats, err
	}

	logger.Info("textgrid written", "tiers", stats.Tiers, "intervals", stats.Intervals, "took", stats.Took)
	return stats, nil
}

// isConversionError reports whether err already says what went wrong with the
// log itself, as opposed to a failure to read it.
func isConversionError(err error) bool {
	var malformed *domain.MalformedInputError
	var orderErr *domain.OrderError
	var ioErr *domain.IOError
	return errors.As(err, &malformed) ||
		errors.As(err, &orderErr) ||
		errors.As(err, &ioErr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (c *Converter) accepts(sender string) bool {
	if c.senders == nil {
		return true
	}
	_, ok := c.senders[sender]
	return ok
}

func (c *Converter) tierName(sender string) string {
	if alias, ok := c.aliases[sender]; ok && alias != "" {
		return alias
	}
	return sender
}

func (c *Converter) observe(stats Stats, err error) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveEvents(OutcomeAccepted, stats.Intervals)
	c.observer.ObserveEvents(OutcomeSkipped, stats.Skipped)
	c.observer.ObserveEvents(OutcomeFiltered, stats.Filtered)
	c.observer.ObserveConversion(stats.Tiers, stats.Intervals, stats.Took, err)
}
