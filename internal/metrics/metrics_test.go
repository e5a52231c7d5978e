package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/eventgrid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ eventgrid.Observer = (*Collector)(nil)

func TestCollector_Observe(t *testing.T) {
	c := New()
	c.ObserveEvents(eventgrid.OutcomeAccepted, 3)
	c.ObserveEvents(eventgrid.OutcomeSkipped, 2)
	c.ObserveConversion(2, 3, 10*time.Millisecond, nil)
	c.ObserveConversion(0, 0, time.Millisecond, errors.New("bad"))

	assert.Equal(t, 3.0, testutil.ToFloat64(c.events.WithLabelValues(eventgrid.OutcomeAccepted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.events.WithLabelValues(eventgrid.OutcomeSkipped)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.intervals))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.tiers))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.conversions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.conversions.WithLabelValues("error")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveEvents(eventgrid.OutcomeAccepted, 1)
		c.ObserveConversion(1, 1, time.Second, nil)
	})
}

func TestCollector_WriteTextfile(t *testing.T) {
	c := New()
	c.ObserveEvents(eventgrid.OutcomeAccepted, 5)

	path := filepath.Join(t.TempDir(), "eventgrid.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `eventgrid_events_total{outcome="accepted"} 5`))
}
