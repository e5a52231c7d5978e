package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/pkg/textgrid"
	"github.com/muesli/termenv"
)

// Summary describes a converted document as markdown.
func Summary(title string, doc *textgrid.Document, stats eventgrid.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	ext := doc.Extent()
	if ext.IsEmpty() {
		sb.WriteString("No completed events.\n\n")
	} else {
		fmt.Fprintf(&sb, "Span **%.3f s** to **%.3f s** (%.3f s).\n\n", ext.Lower, ext.Upper, ext.Duration())
	}

	fmt.Fprintf(&sb, "- completed events: %d\n", stats.Events)
	fmt.Fprintf(&sb, "- skipped (not completed): %d\n", stats.Skipped)
	if stats.Filtered > 0 {
		fmt.Fprintf(&sb, "- filtered by sender: %d\n", stats.Filtered)
	}
	fmt.Fprintf(&sb, "- tiers: %d\n- intervals: %d\n\n", stats.Tiers, stats.Intervals)

	if doc.Len() == 0 {
		return sb.String()
	}

	sb.WriteString("| # | Tier | Intervals | xmin | xmax |\n")
	sb.WriteString("|---|------|----------:|-----:|-----:|\n")
	for i, tier := range doc.Tiers() {
		fmt.Fprintf(&sb, "| %d | %s | %d | %.3f | %.3f |\n",
			i+1, escapeCell(tier.Name), len(tier.Intervals), tier.Extent.Lower, tier.Extent.Upper)
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Status writes a one-line coloured status message to w.
func Status(w io.Writer, ok bool, format string, args ...any) {
	out := termenv.NewOutput(w)
	mark, color := "✔", "#22c55e"
	if !ok {
		mark, color = "✘", "#ef4444"
	}
	fmt.Fprintf(w, "%s %s\n",
		out.String(mark).Foreground(out.ColorProfile().Color(color)).Bold(),
		fmt.Sprintf(format, args...))
}
