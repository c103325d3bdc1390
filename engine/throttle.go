/*
throttle.go - Minimum-interval guard for remote queries

PURPOSE:
  Decides, from the cached record's LastUpdatedAt and a role-specific
  minimum interval, whether a new remote query is permitted right now.
  Prevents hammering the backend with repeated fetches of the same
  (entity, month) unit.

RULES:
  Plain interval rule:
    elapsed = now - LastUpdatedAt
    elapsed <  interval -> blocked, wait = ceil((interval - elapsed) / 1m)
    elapsed >= interval -> allowed
    no record           -> always allowed

  Weekend override:
    When "now" falls outside the school week, the interval rule is replaced
    by a staleness comparison against the last consolidation instant:
      LastUpdatedAt before the instant -> the cache predates consolidation,
                                          refetch immediately
      LastUpdatedAt at/after it        -> the cache is already final until
                                          the next school day; blocked, wait
                                          runs to the next school-week start

SEE ALSO:
  - calendar.go: LastConsolidationInstant, MinutesUntilNextSchoolWeek
*/
package engine

import "time"

// Throttle guards remote fetches for one role.
type Throttle struct {
	Interval time.Duration
	Week     SchoolWeek
}

// ThrottleDecision is the outcome of a throttle check. MinutesRemaining is
// meaningful only when Allowed is false.
type ThrottleDecision struct {
	Allowed          bool
	MinutesRemaining int
}

// Check applies the throttle to an existing record. A nil record always
// permits the fetch.
func (t Throttle) Check(now time.Time, rec *MonthlyRecord) ThrottleDecision {
	if rec == nil {
		return ThrottleDecision{Allowed: true}
	}

	// Outside the school week the backend has already consolidated the last
	// school day; polling only makes sense while the cache predates that.
	if !t.Week.IsSchoolDay(now) {
		instant := t.Week.LastConsolidationInstant(now)
		if rec.LastUpdatedAt.Before(instant) {
			return ThrottleDecision{Allowed: true}
		}
		return ThrottleDecision{
			Allowed:          false,
			MinutesRemaining: t.Week.MinutesUntilNextSchoolWeek(now),
		}
	}

	elapsed := now.Sub(rec.LastUpdatedAt)
	if elapsed < t.Interval {
		remaining := t.Interval - elapsed
		return ThrottleDecision{
			Allowed:          false,
			MinutesRemaining: int((remaining + time.Minute - time.Second) / time.Minute),
		}
	}
	return ThrottleDecision{Allowed: true}
}
