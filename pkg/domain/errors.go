package domain

import (
	"errors"
	"fmt"
)

// ErrDocumentFrozen is returned when a document is modified after it was rendered.
var ErrDocumentFrozen = errors.New("document already rendered")

// ErrCacheMiss is returned by a DocumentCache when the key is not present.
var ErrCacheMiss = errors.New("cache miss")

// UsageError reports a bad command-line invocation.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Reason
}

// MalformedInputError reports an event element that cannot be converted.
// Ordinal is the 1-based element position, 0 when the document itself is broken.
type MalformedInputError struct {
	Ordinal   int
	Attribute string
	Reason    string
	Err       error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input"
	if e.Ordinal > 0 {
		msg += fmt.Sprintf(": event #%d", e.Ordinal)
	}
	if e.Attribute != "" {
		msg += fmt.Sprintf(": attribute %q", e.Attribute)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// IOError reports an unreadable input or unwritable output, with the path.
type IOError struct {
	Op   string // "read", "write", "open"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// OrderError is returned in strict-order mode when an interval starts before
// the previous interval of the same tier.
type OrderError struct {
	Tier     string
	Previous float64
	Lower    float64
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("tier %q: interval at %.3f starts before previous interval at %.3f", e.Tier, e.Lower, e.Previous)
}
