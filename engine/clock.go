package engine

import (
	"context"
	"time"
)

// =============================================================================
// CLOCK - trusted wall-clock time in the school's timezone
// =============================================================================

// Clock supplies the current wall-clock time in the school's local timezone.
// The second return is false when no trusted time source is reachable; all
// downstream logic treats "no current time" as "cannot decide remotely,
// fall back to cache-only".
type Clock interface {
	Now(ctx context.Context) (time.Time, bool)
}

// SystemClock reads the local system clock, pinned to the school's timezone.
type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now(_ context.Context) (time.Time, bool) {
	return time.Now().In(c.Location), true
}

// FixedClock always reports the same instant. Test helper; also useful to
// replay a decision at a known time.
type FixedClock struct {
	T           time.Time
	Unavailable bool
}

func (c FixedClock) Now(_ context.Context) (time.Time, bool) {
	if c.Unavailable {
		return time.Time{}, false
	}
	return c.T, true
}
