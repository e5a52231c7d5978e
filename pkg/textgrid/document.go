package textgrid

import (
	"fmt"
	"slices"

	"github.com/aretw0/eventgrid/pkg/domain"
)

// Tier is a named, ordered sequence of intervals.
type Tier struct {
	Name      string
	Intervals []domain.Interval
	Extent    domain.Extent
}

// Document is an append-only collection of interval tiers.
type Document struct {
	tiers       []Tier
	index       map[string]int // derived from tiers, never authoritative
	extent      domain.Extent
	strictOrder bool
	rendered    bool
}

// Option configures a Document.
type Option func(*Document)

// WithStrictOrder rejects intervals that start before the previous interval
// of the same tier instead of storing them as they arrive.
func WithStrictOrder() Option {
	return func(d *Document) {
		d.strictOrder = true
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{index: make(map[string]int)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// EnsureTier returns the index of the tier called name, appending an empty
// tier if none exists yet.
func (d *Document) EnsureTier(name string) (int, error) {
	if idx, ok := d.index[name]; ok {
		return idx, nil
	}
	if d.rendered {
		return -1, domain.ErrDocumentFrozen
	}
	d.tiers = append(d.tiers, Tier{Name: name})
	idx := len(d.tiers) - 1
	d.index[name] = idx
	return idx, nil
}

// AppendInterval appends iv to the tier at idx. Overlapping and touching
// intervals are accepted as-is.
func (d *Document) AppendInterval(idx int, iv domain.Interval) error {
	if d.rendered {
		return domain.ErrDocumentFrozen
	}
	if idx < 0 || idx >= len(d.tiers) {
		return fmt.Errorf("tier index %d out of range [0,%d)", idx, len(d.tiers))
	}
	if iv.Lower < 0 || iv.Lower > iv.Upper {
		return &domain.MalformedInputError{
			Reason: fmt.Sprintf("invalid interval [%.3f, %.3f] for tier %q", iv.Lower, iv.Upper, d.tiers[idx].Name),
		}
	}

	tier := &d.tiers[idx]
	if d.strictOrder && len(tier.Intervals) > 0 {
		prev := tier.Intervals[len(tier.Intervals)-1]
		if iv.Lower < prev.Lower {
			return &domain.OrderError{Tier: tier.Name, Previous: prev.Lower, Lower: iv.Lower}
		}
	}

	tier.Intervals = append(tier.Intervals, iv)
	tier.Extent = tier.Extent.MergeBounds(iv.Lower, iv.Upper)
	d.extent = d.extent.MergeBounds(iv.Lower, iv.Upper)
	return nil
}

// Append is a convenience for EnsureTier followed by AppendInterval.
func (d *Document) Append(tier string, iv domain.Interval) error {
	idx, err := d.EnsureTier(tier)
	if err != nil {
		return err
	}
	return d.AppendInterval(idx, iv)
}

// Tiers returns the tiers in first-seen order. The returned slice is a copy;
// the intervals it references must not be modified.
func (d *Document) Tiers() []Tier {
	return slices.Clone(d.tiers)
}

// Tier returns the tier called name.
func (d *Document) Tier(name string) (Tier, bool) {
	idx, ok := d.index[name]
	if !ok {
		return Tier{}, false
	}
	return d.tiers[idx], true
}

// Extent returns the span covered by every interval of every tier.
func (d *Document) Extent() domain.Extent {
	return d.extent
}

// Len returns the number of tiers.
func (d *Document) Len() int {
	return len(d.tiers)
}

// IntervalCount returns the number of intervals across all tiers.
func (d *Document) IntervalCount() int {
	n := 0
	for _, t := range d.tiers {
		n += len(t.Intervals)
	}
	return n
}

// Frozen reports whether the document has been rendered.
func (d *Document) Frozen() bool {
	return d.rendered
}
