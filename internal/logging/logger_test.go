package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_NormalizesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelInfo)

	logger.Info("converted", "error", errors.New("boom"), "took", 1500*time.Millisecond)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "err=boom")
	assert.Contains(t, out, "took=1.5")
	assert.NotContains(t, out, "hidden")
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Error("nothing", "error", errors.New("x"))
	})
}
