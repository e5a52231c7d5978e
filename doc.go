/*
Package eventgrid converts SSI event logs into Praat TextGrid documents.

Every completed event in the log becomes one labelled interval on the tier named
after the event's sender. Tiers appear in the order their senders were first
seen; intervals keep the order in which they appear in the log.

# Usage

	conv := eventgrid.New(eventgrid.WithBoundMode(domain.BoundsSubtract))

	stats, err := conv.ConvertFile(ctx, "session.events", "session.TextGrid")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d tiers, %d intervals\n", stats.Tiers, stats.Intervals)

# Bounds

SSI events carry an anchor time ("from") and a duration ("dur") in
milliseconds. With BoundsAdd the interval is [from, from+dur]; with
BoundsSubtract it is [from-dur, from]. The mode applies to the whole run.

# Errors

Failures are typed: *domain.MalformedInputError for events that cannot be
converted, *domain.IOError for unreadable inputs and unwritable outputs, and
*domain.OrderError when strict ordering is requested and violated. Nothing is
written when a conversion fails.
*/
package eventgrid
