/*
Package domain contains the core domain models shared by the event reader,
the tier document builder and the adapters.

It defines what an annotation event looks like once it has been read from an
SSI event log, how its bounds are derived, and the extent value used to track
the span of tiers and documents. This package is kept pure and free of I/O.

# Key Entities

  - Event: A single annotation event (sender, label, start, duration, state).
  - BoundMode: How an event's anchor time and duration map to an interval.
  - Interval: A labelled [lower, upper] span in seconds.
  - Extent: The [min, max] span covered by a set of intervals.
*/
package domain
