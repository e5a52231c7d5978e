package events

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/aretw0/eventgrid/pkg/domain"
)

const (
	rootElement  = "events"
	eventElement = "event"
)

// Reader is a single-pass reader of completed events.
type Reader struct {
	dec     *xml.Decoder
	ordinal int
	skipped int
	depth   int
	rooted  bool
	err     error
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	// SSI declares ISO-8859-1 on some platforms; labels are ASCII in practice.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return &Reader{dec: dec}
}

// Next returns the next completed event, or io.EOF when the log is exhausted.
// Errors are sticky. Problems with the document itself are
// *domain.MalformedInputError; failures of the underlying reader are returned
// wrapped.
func (r *Reader) Next() (domain.Event, error) {
	if r.err != nil {
		return domain.Event{}, r.err
	}

	for {
		tok, err := r.dec.Token()
		if err != nil {
			var syntaxErr *xml.SyntaxError
			switch {
			case errors.Is(err, io.EOF) && !r.rooted:
				r.err = r.malformed("not an event document")
			case errors.Is(err, io.EOF):
				r.err = io.EOF
			case errors.As(err, &syntaxErr):
				r.err = &domain.MalformedInputError{Ordinal: r.ordinal, Reason: "invalid event document", Err: err}
			default:
				r.err = fmt.Errorf("reading event log: %w", err)
			}
			return domain.Event{}, r.err
		}

		var start xml.StartElement
		switch t := tok.(type) {
		case xml.StartElement:
			r.depth++
			if r.depth == 1 {
				if r.rooted {
					r.err = r.malformed("more than one root element")
					return domain.Event{}, r.err
				}
				if t.Name.Local != rootElement {
					r.err = r.malformed(fmt.Sprintf("root element <%s>, want <%s>", t.Name.Local, rootElement))
					return domain.Event{}, r.err
				}
				r.rooted = true
				continue
			}
			start = t
		case xml.EndElement:
			r.depth--
			continue
		case xml.CharData:
			if r.depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				r.err = r.malformed("text outside the root element")
				return domain.Event{}, r.err
			}
			continue
		default:
			continue
		}
		if start.Name.Local != eventElement {
			continue
		}

		r.ordinal++
		ev, accepted, err := parseEvent(start.Attr, r.ordinal)
		if err != nil {
			r.err = err
			return domain.Event{}, err
		}
		if !accepted {
			r.skipped++
			continue
		}
		return ev, nil
	}
}

func (r *Reader) malformed(reason string) error {
	return &domain.MalformedInputError{Ordinal: r.ordinal, Reason: reason}
}

// All returns an iterator over the remaining completed events.
// Iteration stops after the first error, which is yielded once.
func (r *Reader) All() iter.Seq2[domain.Event, error] {
	return func(yield func(domain.Event, error) bool) {
		for {
			ev, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// Skipped returns how many non-completed events have been dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Seen returns how many event elements have been read so far.
func (r *Reader) Seen() int {
	return r.ordinal
}

func parseEvent(attrs []xml.Attr, ordinal int) (domain.Event, bool, error) {
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		values[a.Name.Local] = a.Value
	}

	state, ok := values["state"]
	if !ok {
		return domain.Event{}, false, missing(ordinal, "state")
	}
	ev := domain.Event{State: domain.EventState(state), Ordinal: ordinal}
	if !ev.State.IsCompleted() {
		return ev, false, nil
	}

	var err error
	if ev.Sender, ok = values["sender"]; !ok {
		return ev, false, missing(ordinal, "sender")
	}
	if ev.Label, ok = values["event"]; !ok {
		return ev, false, missing(ordinal, "event")
	}
	if ev.From, err = requireInt(values, "from", ordinal); err != nil {
		return ev, false, err
	}
	if ev.Duration, err = requireInt(values, "dur", ordinal); err != nil {
		return ev, false, err
	}
	if ev.Duration < 0 {
		return ev, false, &domain.MalformedInputError{Ordinal: ordinal, Attribute: "dur", Reason: "negative duration"}
	}

	if v, ok := values["prob"]; ok {
		if ev.Prob, err = strconv.ParseFloat(v, 64); err != nil {
			return ev, false, &domain.MalformedInputError{Ordinal: ordinal, Attribute: "prob", Err: err}
		}
	}
	if v, ok := values["glue"]; ok {
		if ev.Glue, err = strconv.Atoi(v); err != nil {
			return ev, false, &domain.MalformedInputError{Ordinal: ordinal, Attribute: "glue", Err: err}
		}
	}
	ev.Type = values["type"]

	return ev, true, nil
}

func requireInt(values map[string]string, name string, ordinal int) (int64, error) {
	v, ok := values[name]
	if !ok {
		return 0, missing(ordinal, name)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &domain.MalformedInputError{Ordinal: ordinal, Attribute: name, Reason: "not an integer", Err: err}
	}
	return n, nil
}

func missing(ordinal int, name string) error {
	return &domain.MalformedInputError{Ordinal: ordinal, Attribute: name, Reason: "missing"}
}
