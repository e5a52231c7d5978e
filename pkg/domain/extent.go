package domain

// Extent is the [Lower, Upper] span covered by a set of intervals.
// The zero value is the empty extent; merging into it adopts the other side.
type Extent struct {
	Lower float64
	Upper float64
	set   bool
}

// NewExtent builds a non-empty extent. Bounds are swapped if given reversed.
func NewExtent(lower, upper float64) Extent {
	if lower > upper {
		lower, upper = upper, lower
	}
	return Extent{Lower: lower, Upper: upper, set: true}
}

// IsEmpty reports whether no bounds have been merged yet.
func (e Extent) IsEmpty() bool {
	return !e.set
}

// MergeBounds returns the smallest extent covering e and [lower, upper].
func (e Extent) MergeBounds(lower, upper float64) Extent {
	return e.Merge(NewExtent(lower, upper))
}

// Merge returns the smallest extent covering both e and o.
func (e Extent) Merge(o Extent) Extent {
	switch {
	case !o.set:
		return e
	case !e.set:
		return o
	}
	out := e
	if o.Lower < out.Lower {
		out.Lower = o.Lower
	}
	if o.Upper > out.Upper {
		out.Upper = o.Upper
	}
	return out
}

// Contains reports whether v lies within the extent, bounds included.
func (e Extent) Contains(v float64) bool {
	return e.set && v >= e.Lower && v <= e.Upper
}

// Duration is Upper - Lower, or 0 for the empty extent.
func (e Extent) Duration() float64 {
	if !e.set {
		return 0
	}
	return e.Upper - e.Lower
}
