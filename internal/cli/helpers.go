package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/eventgrid/internal/config"
	"github.com/aretw0/eventgrid/internal/logging"
	"github.com/aretw0/eventgrid/pkg/domain"
)

// Exit codes reported by the eventgrid binary.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitMalformed = 3
	ExitIO        = 4
)

// ExitCode maps an error returned by a Run function to a process exit code.
func ExitCode(err error) int {
	var usage *domain.UsageError
	var malformed *domain.MalformedInputError
	var orderErr *domain.OrderError
	var ioErr *domain.IOError

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage):
		return ExitUsage
	case errors.As(err, &malformed), errors.As(err, &orderErr):
		return ExitMalformed
	case errors.As(err, &ioErr):
		return ExitIO
	default:
		return ExitFailure
	}
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr; otherwise logging is discarded.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// Overrides are command-line flags that take precedence over the profile.
// Nil pointers and empty slices leave the profile value alone.
type Overrides struct {
	Format      *string
	FillGaps    *bool
	StrictOrder *bool
	Tiers       []string // sender=tier
	Senders     []string
}

// ResolveConfig loads the profile at path and applies the overrides.
func ResolveConfig(path string, o Overrides) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		var ioErr *domain.IOError
		if errors.As(err, &ioErr) {
			return cfg, err
		}
		return cfg, &domain.UsageError{Reason: err.Error()}
	}

	if o.Format != nil {
		cfg.Format = *o.Format
	}
	if o.FillGaps != nil {
		cfg.FillGaps = *o.FillGaps
	}
	if o.StrictOrder != nil {
		cfg.StrictOrder = *o.StrictOrder
	}
	if len(o.Senders) > 0 {
		cfg.Senders = o.Senders
	}
	if len(o.Tiers) > 0 {
		aliases := make(map[string]string, len(cfg.Tiers)+len(o.Tiers))
		for k, v := range cfg.Tiers {
			aliases[k] = v
		}
		for _, pair := range o.Tiers {
			sender, tier, ok := strings.Cut(pair, "=")
			if !ok || sender == "" || tier == "" {
				return cfg, &domain.UsageError{Reason: fmt.Sprintf("--tier %q: want sender=name", pair)}
			}
			aliases[sender] = tier
		}
		cfg.Tiers = aliases
	}

	if err := cfg.Validate(); err != nil {
		return cfg, &domain.UsageError{Reason: err.Error()}
	}
	return cfg, nil
}

// profileFingerprint is a stable description of the output-shaping parts of
// cfg. Request parameters are keyed separately.
func profileFingerprint(cfg config.Config) string {
	var parts []string
	for sender, tier := range cfg.Tiers {
		parts = append(parts, "tier:"+sender+"="+tier)
	}
	for _, s := range cfg.Senders {
		parts = append(parts, "sender:"+s)
	}
	sort.Strings(parts)
	parts = append(parts, "format:"+cfg.Format)
	if cfg.FillGaps {
		parts = append(parts, "fill")
	}
	if cfg.StrictOrder {
		parts = append(parts, "strict")
	}
	return strings.Join(parts, ";")
}
