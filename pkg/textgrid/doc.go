/*
Package textgrid builds Praat TextGrid documents from labelled intervals.

A Document holds an ordered list of interval tiers. Tiers are created on first
use of a name and keep the order in which they were first seen; intervals keep
the order in which they were appended. Extents are maintained incrementally as
intervals arrive, so appending is O(1) regardless of document size.

Once rendered, a Document is frozen: further EnsureTier or AppendInterval calls
fail with domain.ErrDocumentFrozen, while Render may be called again and yields
byte-identical output.

	doc := textgrid.New()
	idx, _ := doc.EnsureTier("audio")
	_ = doc.AppendInterval(idx, domain.Interval{Lower: 1.2, Upper: 1.5, Label: "vad"})
	fmt.Print(doc.Render())
*/
package textgrid
