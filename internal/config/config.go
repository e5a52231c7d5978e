// Package config loads converter profiles.
//
// A profile is a YAML, JSON or JSONC file. It is first decoded into a generic
// map and then into Config with mapstructure, which lets "mode: 1" and
// "mode: subtract" mean the same thing and accepts durations like "10m".
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/textgrid"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are looked up in the working directory when no profile is given.
var DefaultFiles = []string{"eventgrid.yaml", "eventgrid.yml", "eventgrid.jsonc", "eventgrid.json"}

// Config is a converter profile.
type Config struct {
	Mode        string            `mapstructure:"mode"`
	Format      string            `mapstructure:"format"`
	FillGaps    bool              `mapstructure:"fill_gaps"`
	StrictOrder bool              `mapstructure:"strict_order"`
	Tiers       map[string]string `mapstructure:"tiers"`
	Senders     []string          `mapstructure:"senders"`
	Server      ServerConfig      `mapstructure:"server"`
}

// ServerConfig configures `eventgrid serve`.
type ServerConfig struct {
	Addr     string        `mapstructure:"addr"`
	MaxBytes int64         `mapstructure:"max_bytes"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RedisConfig selects the Redis document cache. An empty Addr keeps the
// in-memory cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// Default returns the built-in profile.
func Default() Config {
	return Config{
		Mode:   "add",
		Format: string(textgrid.FormatLong),
		Server: ServerConfig{
			Addr:     ":8080",
			MaxBytes: 64 << 20,
			Timeout:  30 * time.Second,
			Redis: RedisConfig{
				TTL:    24 * time.Hour,
				Prefix: "eventgrid:textgrid:",
			},
		},
	}
}

// Load reads the profile at path on top of Default.
// With an empty path the DefaultFiles are tried and a missing file is not an
// error; an explicit path must exist.
func Load(path string) (Config, error) {
	if path == "" {
		for _, candidate := range DefaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &domain.IOError{Op: "read", Path: path, Err: err}
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a profile. ext picks the syntax (".json", ".jsonc"); anything
// else is read as YAML.
func Parse(data []byte, ext string) (Config, error) {
	raw := map[string]any{}

	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return Config{}, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	var errs []error
	if _, err := domain.ParseBoundMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := textgrid.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	for sender, tier := range c.Tiers {
		if tier == "" {
			errs = append(errs, fmt.Errorf("tier alias for sender %q is empty", sender))
		}
	}
	return errors.Join(errs...)
}

// BoundMode returns the parsed bound mode.
func (c Config) BoundMode() domain.BoundMode {
	mode, _ := domain.ParseBoundMode(c.Mode)
	return mode
}

// RenderOptions returns the render options selected by the profile.
func (c Config) RenderOptions() []textgrid.RenderOption {
	format, _ := textgrid.ParseFormat(c.Format)
	opts := []textgrid.RenderOption{textgrid.WithFormat(format)}
	if c.FillGaps {
		opts = append(opts, textgrid.WithGapFill())
	}
	return opts
}

// ConverterOptions translates the profile into converter options.
func (c Config) ConverterOptions() []eventgrid.Option {
	opts := []eventgrid.Option{
		eventgrid.WithBoundMode(c.BoundMode()),
		eventgrid.WithRenderOptions(c.RenderOptions()...),
	}
	if len(c.Tiers) > 0 {
		opts = append(opts, eventgrid.WithTierAliases(c.Tiers))
	}
	if len(c.Senders) > 0 {
		opts = append(opts, eventgrid.WithSenders(c.Senders...))
	}
	if c.StrictOrder {
		opts = append(opts, eventgrid.WithStrictOrder())
	}
	return opts
}
