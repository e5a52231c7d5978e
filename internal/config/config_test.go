package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAML(t *testing.T) {
	data := []byte(`
mode: 1
format: short
fill_gaps: true
tiers:
  audio: voice
senders: [audio, face]
server:
  addr: ":9090"
  timeout: 5s
  redis:
    addr: localhost:6379
    db: "2"
    ttl: 10m
`)
	cfg, err := Parse(data, ".yaml")
	require.NoError(t, err)

	assert.Equal(t, domain.BoundsSubtract, cfg.BoundMode())
	assert.Equal(t, "short", cfg.Format)
	assert.True(t, cfg.FillGaps)
	assert.Equal(t, map[string]string{"audio": "voice"}, cfg.Tiers)
	assert.Equal(t, []string{"audio", "face"}, cfg.Senders)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Server.Redis.Addr)
	assert.Equal(t, 2, cfg.Server.Redis.DB)
	assert.Equal(t, 10*time.Minute, cfg.Server.Redis.TTL)
	assert.Equal(t, "eventgrid:textgrid:", cfg.Server.Redis.Prefix, "defaults survive partial sections")
	assert.Len(t, cfg.RenderOptions(), 2)
	assert.Len(t, cfg.ConverterOptions(), 4)
}

func TestParse_JSONC(t *testing.T) {
	data := []byte(`{
		// subtract durations from anchors
		"mode": "subtract",
		"strict_order": true,
	}`)
	cfg, err := Parse(data, ".jsonc")
	require.NoError(t, err)
	assert.Equal(t, domain.BoundsSubtract, cfg.BoundMode())
	assert.True(t, cfg.StrictOrder)
	assert.Equal(t, "long", cfg.Format)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad mode":     "mode: sideways",
		"bad format":   "format: binary",
		"unknown key":  "colour: red",
		"empty alias":  "tiers: {audio: \"\"}",
		"broken yaml":  "mode: [",
		"bad duration": "server: {timeout: soon}",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), ".yaml")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: subtract\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.BoundsSubtract, cfg.BoundMode())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	var ioErr *domain.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestLoad_DefaultFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile("eventgrid.json", []byte(`{"format": "short"}`), 0644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "short", cfg.Format)
}
