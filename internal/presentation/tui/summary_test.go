package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/textgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	doc := textgrid.New()
	require.NoError(t, doc.Append("audio|left", domain.Interval{Lower: 0.5, Upper: 1, Label: "x"}))
	require.NoError(t, doc.Append("face", domain.Interval{Lower: 1, Upper: 2.25, Label: "y"}))

	md := Summary("session.events", doc, eventgrid.Stats{Events: 3, Skipped: 4, Filtered: 1, Tiers: 2, Intervals: 2})

	assert.Contains(t, md, "# session.events")
	assert.Contains(t, md, "Span **0.500 s** to **2.250 s** (1.750 s).")
	assert.Contains(t, md, "- skipped (not completed): 4")
	assert.Contains(t, md, "- filtered by sender: 1")
	assert.Contains(t, md, `| 1 | audio\|left | 1 | 0.500 | 1.000 |`)
	assert.Contains(t, md, "| 2 | face | 1 | 1.000 | 2.250 |")
}

func TestSummary_Empty(t *testing.T) {
	md := Summary("empty", textgrid.New(), eventgrid.Stats{Skipped: 2})
	assert.Contains(t, md, "No completed events.")
	assert.NotContains(t, md, "| # |")
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	Status(&buf, true, "wrote %d tiers", 3)
	Status(&buf, false, "failed")
	// Not a terminal: no escape sequences.
	assert.Equal(t, "✔ wrote 3 tiers\n✘ failed\n", buf.String())
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}
