package textgrid

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/eventgrid/pkg/domain"
)

// Format selects the Praat text serialisation.
type Format string

const (
	// FormatLong is Praat's verbose "text file" format with labelled values.
	FormatLong Format = "long"
	// FormatShort is Praat's "short text file" format: one bare value per line.
	FormatShort Format = "short"
)

// ParseFormat validates a format name. The empty string selects FormatLong.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatLong, "":
		return FormatLong, nil
	case FormatShort:
		return FormatShort, nil
	default:
		return "", fmt.Errorf("unknown TextGrid format %q (want long or short)", s)
	}
}

type renderConfig struct {
	format  Format
	gapFill bool
}

// RenderOption configures Render.
type RenderOption func(*renderConfig)

// WithFormat selects the output format.
func WithFormat(f Format) RenderOption {
	return func(c *renderConfig) {
		c.format = f
	}
}

// WithGapFill makes every tier span the document extent, inserting empty
// intervals wherever consecutive intervals do not touch. Praat requires
// interval tiers to be contiguous; overlapping intervals are still emitted as
// stored.
func WithGapFill() RenderOption {
	return func(c *renderConfig) {
		c.gapFill = true
	}
}

// WithoutGapFill undoes an earlier WithGapFill in the same option list.
func WithoutGapFill() RenderOption {
	return func(c *renderConfig) {
		c.gapFill = false
	}
}

// Render serialises the document and freezes it. Calling Render again with
// the same options returns identical text.
func (d *Document) Render(opts ...RenderOption) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = d.Encode(&sb, opts...)
	return sb.String()
}

// Encode writes the serialised document to w and freezes the document.
func (d *Document) Encode(w io.Writer, opts ...RenderOption) error {
	cfg := renderConfig{format: FormatLong}
	for _, opt := range opts {
		opt(&cfg)
	}
	d.rendered = true

	var e encoder
	if cfg.format == FormatShort {
		e = &shortEncoder{}
	} else {
		e = &longEncoder{}
	}

	docExtent := extentOrZero(d.extent)
	e.header(docExtent, len(d.tiers))
	for i, tier := range d.tiers {
		intervals, tierExtent := tier.Intervals, extentOrZero(tier.Extent)
		if cfg.gapFill {
			intervals = fillGaps(tier.Intervals, docExtent)
			tierExtent = docExtent
		}
		e.tier(i+1, tier.Name, tierExtent, len(intervals))
		for j, iv := range intervals {
			e.interval(j+1, iv)
		}
	}

	_, err := io.WriteString(w, e.String())
	return err
}

// fillGaps returns intervals padded with empty labels so that they cover
// span without holes.
func fillGaps(intervals []domain.Interval, span domain.Extent) []domain.Interval {
	out := make([]domain.Interval, 0, 2*len(intervals)+1)
	cursor := span.Lower
	for _, iv := range intervals {
		if iv.Lower > cursor {
			out = append(out, domain.Interval{Lower: cursor, Upper: iv.Lower})
		}
		out = append(out, iv)
		cursor = max(cursor, iv.Upper)
	}
	if cursor < span.Upper {
		out = append(out, domain.Interval{Lower: cursor, Upper: span.Upper})
	}
	return out
}

func extentOrZero(e domain.Extent) domain.Extent {
	if e.IsEmpty() {
		return domain.NewExtent(0, 0)
	}
	return e
}

type encoder interface {
	header(extent domain.Extent, tiers int)
	tier(ordinal int, name string, extent domain.Extent, intervals int)
	interval(ordinal int, iv domain.Interval)
	String() string
}

const fileHeader = "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\n\n"

// longEncoder writes the format Praat produces with "Save as text file".
// Value lines carry a trailing space, as Praat writes them.
type longEncoder struct {
	strings.Builder
}

func (e *longEncoder) header(extent domain.Extent, tiers int) {
	e.WriteString(fileHeader)
	fmt.Fprintf(e, "xmin = %s \n", formatTime(extent.Lower))
	fmt.Fprintf(e, "xmax = %s \n", formatTime(extent.Upper))
	if tiers == 0 {
		e.WriteString("tiers? <absent> \n")
		return
	}
	e.WriteString("tiers? <exists> \n")
	fmt.Fprintf(e, "size = %d \n", tiers)
	e.WriteString("item []: \n")
}

func (e *longEncoder) tier(ordinal int, name string, extent domain.Extent, intervals int) {
	fmt.Fprintf(e, "    item [%d]:\n", ordinal)
	e.WriteString("        class = \"IntervalTier\" \n")
	fmt.Fprintf(e, "        name = %s \n", quote(name))
	fmt.Fprintf(e, "        xmin = %s \n", formatTime(extent.Lower))
	fmt.Fprintf(e, "        xmax = %s \n", formatTime(extent.Upper))
	fmt.Fprintf(e, "        intervals: size = %d \n", intervals)
}

func (e *longEncoder) interval(ordinal int, iv domain.Interval) {
	fmt.Fprintf(e, "        intervals [%d]:\n", ordinal)
	fmt.Fprintf(e, "            xmin = %s \n", formatTime(iv.Lower))
	fmt.Fprintf(e, "            xmax = %s \n", formatTime(iv.Upper))
	fmt.Fprintf(e, "            text = %s \n", quote(iv.Label))
}

// shortEncoder writes the format Praat produces with "Save as short text file".
type shortEncoder struct {
	strings.Builder
}

func (e *shortEncoder) header(extent domain.Extent, tiers int) {
	e.WriteString(fileHeader)
	fmt.Fprintf(e, "%s\n%s\n", formatTime(extent.Lower), formatTime(extent.Upper))
	if tiers == 0 {
		e.WriteString("<absent>\n")
		return
	}
	fmt.Fprintf(e, "<exists>\n%d\n", tiers)
}

func (e *shortEncoder) tier(_ int, name string, extent domain.Extent, intervals int) {
	fmt.Fprintf(e, "\"IntervalTier\"\n%s\n%s\n%s\n%d\n",
		quote(name), formatTime(extent.Lower), formatTime(extent.Upper), intervals)
}

func (e *shortEncoder) interval(_ int, iv domain.Interval) {
	fmt.Fprintf(e, "%s\n%s\n%s\n", formatTime(iv.Lower), formatTime(iv.Upper), quote(iv.Label))
}

// formatTime renders seconds with millisecond precision, independent of locale.
func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// quote wraps s in double quotes, doubling embedded quotes as Praat does.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
