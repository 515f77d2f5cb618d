// Package schedule holds the pure dispatch-scheduling engine: the
// half-open interval test, the availability index built from live
// dispatches, and the candidate filter. Nothing in this package performs
// I/O; callers feed it rows and read back answers.
package schedule

import (
	"errors"
	"time"
)

// ErrInvalidInterval marks a window whose start is not strictly before its
// end. Callers validate their own intervals before querying the engine.
var ErrInvalidInterval = errors.New("invalid interval: start must be before end")

// Overlaps reports whether [startA, endA) and [startB, endB) intersect.
// Half-open semantics: windows that only touch at an endpoint do not
// overlap, so back-to-back bookings at the exact boundary are fine.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// ValidateInterval rejects windows with start >= end.
func ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}
	return nil
}
