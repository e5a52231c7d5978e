package domain

import (
	"fmt"
	"strings"
)

// EventState is the lifecycle state of an SSI event.
type EventState string

const (
	StateCompleted EventState = "completed"
	StateContinued EventState = "continued"
)

// IsCompleted reports whether the state is the terminal "completed" state.
// SSI writes states in upper case, so the comparison ignores case.
func (s EventState) IsCompleted() bool {
	return strings.EqualFold(string(s), string(StateCompleted))
}

// Event is one annotation event as found in an event log.
// Times are kept in the source time base (milliseconds).
type Event struct {
	Sender   string
	Label    string
	From     int64 // anchor time in ms
	Duration int64 // ms
	State    EventState

	// Optional SSI attributes.
	Prob float64
	Type string
	Glue int

	// Ordinal is the 1-based position of the element in the source document.
	Ordinal int
}

// BoundMode selects how From and Duration map to interval bounds.
type BoundMode int

const (
	// BoundsAdd yields [from, from+dur].
	BoundsAdd BoundMode = iota
	// BoundsSubtract yields [from-dur, from]: the event ends at its anchor.
	BoundsSubtract
)

func (m BoundMode) String() string {
	switch m {
	case BoundsAdd:
		return "add"
	case BoundsSubtract:
		return "subtract"
	default:
		return fmt.Sprintf("BoundMode(%d)", int(m))
	}
}

// ParseBoundMode accepts the literals understood on the command line and in
// configuration files.
func ParseBoundMode(s string) (BoundMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "subtract", "sub":
		return BoundsSubtract, nil
	case "0", "false", "add", "additive":
		return BoundsAdd, nil
	default:
		return BoundsAdd, fmt.Errorf("unknown bound mode %q (want 1/subtract or 0/add)", s)
	}
}

// Bounds converts the event to interval bounds in seconds.
func (e Event) Bounds(mode BoundMode) (lower, upper float64, err error) {
	if e.Duration < 0 {
		return 0, 0, &MalformedInputError{Ordinal: e.Ordinal, Attribute: "dur", Reason: "negative duration"}
	}

	var lo, hi int64
	switch mode {
	case BoundsSubtract:
		lo, hi = e.From-e.Duration, e.From
	case BoundsAdd:
		lo, hi = e.From, e.From+e.Duration
	default:
		return 0, 0, fmt.Errorf("unsupported bound mode %v", mode)
	}

	if lo < 0 {
		return 0, 0, &MalformedInputError{
			Ordinal:   e.Ordinal,
			Attribute: "from",
			Reason:    fmt.Sprintf("interval starts before zero (%d ms)", lo),
		}
	}

	return float64(lo) / 1000, float64(hi) / 1000, nil
}

// Interval is a labelled span in seconds. Lower <= Upper.
type Interval struct {
	Lower float64
	Upper float64
	Label string
}

// Extent returns the extent covered by the interval alone.
func (iv Interval) Extent() Extent {
	return Extent{}.MergeBounds(iv.Lower, iv.Upper)
}
