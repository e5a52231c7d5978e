package events_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `<?xml version="1.0" ?>
<events ssi-v="V2">
	<event sender="audio" event="vad" from="1500" dur="300" prob="1.000" type="EMPTY" state="COMPLETED" glue="0"/>
	<event sender="audio" event="vad" from="2000" dur="100" prob="1.000" type="EMPTY" state="CONTINUED" glue="0"/>
	<event sender="face" event="smile" from="2100" dur="400" state="completed"></event>
</events>
`

func collect(t *testing.T, r *events.Reader) ([]domain.Event, error) {
	t.Helper()
	var out []domain.Event
	for ev, err := range r.All() {
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func TestReader_FiltersCompleted(t *testing.T) {
	r := events.NewReader(strings.NewReader(sampleLog))
	got, err := collect(t, r)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "audio", got[0].Sender)
	assert.Equal(t, "vad", got[0].Label)
	assert.Equal(t, int64(1500), got[0].From)
	assert.Equal(t, int64(300), got[0].Duration)
	assert.Equal(t, 1.0, got[0].Prob)
	assert.Equal(t, "EMPTY", got[0].Type)
	assert.Equal(t, 1, got[0].Ordinal)

	assert.Equal(t, "face", got[1].Sender)
	assert.Equal(t, 3, got[1].Ordinal)

	assert.Equal(t, 1, r.Skipped())
	assert.Equal(t, 3, r.Seen())
}

func TestReader_OnlyNonCompleted(t *testing.T) {
	doc := `<events>
		<event sender="a" event="x" from="0" dur="10" state="continued"/>
		<event sender="b" event="y" from="5" dur="10" state="CONTINUED"/>
	</events>`
	r := events.NewReader(strings.NewReader(doc))
	got, err := collect(t, r)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, r.Skipped())
}

func TestReader_NextReturnsEOF(t *testing.T) {
	r := events.NewReader(strings.NewReader(`<events/>`))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		attribute string
	}{
		{
			name:      "missing from on completed event",
			doc:       `<events><event sender="A" event="x" dur="10" state="completed"/></events>`,
			attribute: "from",
		},
		{
			name:      "non-integer dur",
			doc:       `<events><event sender="A" event="x" from="0" dur="1.5" state="completed"/></events>`,
			attribute: "dur",
		},
		{
			name:      "negative dur",
			doc:       `<events><event sender="A" event="x" from="0" dur="-3" state="completed"/></events>`,
			attribute: "dur",
		},
		{
			name:      "missing sender",
			doc:       `<events><event event="x" from="0" dur="1" state="completed"/></events>`,
			attribute: "sender",
		},
		{
			name:      "missing state",
			doc:       `<events><event sender="A" event="x" from="0" dur="1"/></events>`,
			attribute: "state",
		},
		{
			name:      "bad prob",
			doc:       `<events><event sender="A" event="x" from="0" dur="1" prob="high" state="completed"/></events>`,
			attribute: "prob",
		},
		{
			name: "broken xml",
			doc:  `<events><event sender="A" event="x" from="0" dur="1" state="completed"></events>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, events.NewReader(strings.NewReader(tt.doc)))
			require.Error(t, err)

			var malformed *domain.MalformedInputError
			require.True(t, errors.As(err, &malformed), "got %T", err)
			assert.Equal(t, tt.attribute, malformed.Attribute)
		})
	}
}

func TestReader_RejectsNonEventDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty input", ""},
		{"whitespace only", "  \n\t"},
		{"json", `{"events":[{"sender":"A"}]}`},
		{"csv", "sender,event,from\nA,x,100\n"},
		{"foreign root", `<foo><bar/></foo>`},
		{"text after root", `<events/>trailing`},
		{"two roots", `<events/><events/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, events.NewReader(strings.NewReader(tt.doc)))
			assert.Empty(t, got)

			var malformed *domain.MalformedInputError
			require.True(t, errors.As(err, &malformed), "got %v", err)
		})
	}
}

func TestReader_DeclarationAndCommentsAroundRoot(t *testing.T) {
	doc := `<?xml version="1.0" ?>
<!-- written by SSI -->
<events ssi-v="V2"/>
`
	got, err := collect(t, events.NewReader(strings.NewReader(doc)))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReader_NonCompletedIsNotValidated(t *testing.T) {
	doc := `<events><event sender="A" event="x" state="continued"/></events>`
	got, err := collect(t, events.NewReader(strings.NewReader(doc)))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReader_ErrorIsSticky(t *testing.T) {
	doc := `<events>
		<event sender="A" event="x" dur="10" state="completed"/>
		<event sender="A" event="y" from="0" dur="10" state="completed"/>
	</events>`
	r := events.NewReader(strings.NewReader(doc))
	_, err1 := r.Next()
	_, err2 := r.Next()
	require.Error(t, err1)
	assert.Equal(t, err1, err2)
}
