package engine_test

import (
	"testing"
	"time"

	"github.com/warp/attendance-engine/engine"
)

func record(updatedAt time.Time) *engine.MonthlyRecord {
	return &engine.MonthlyRecord{
		EntityID:      "stu-1",
		Month:         6,
		Days:          engine.DayMap{},
		LastUpdatedAt: updatedAt,
	}
}

func TestThrottle_NoRecord_AlwaysAllowed(t *testing.T) {
	th := engine.Throttle{Interval: 10 * time.Minute, Week: defaultWeek()}
	if d := th.Check(at(9, 9, 0), nil); !d.Allowed {
		t.Error("missing record must always allow a fetch")
	}
}

func TestThrottle_IntervalBoundary(t *testing.T) {
	// GIVEN: lastUpdatedAt = T, interval = 10 minutes
	th := engine.Throttle{Interval: 10 * time.Minute, Week: defaultWeek()}
	base := at(9, 9, 0) // Tuesday Jun 9
	rec := record(base)

	// WHEN: querying at T+9m59s THEN: blocked with 1 minute to wait
	d := th.Check(base.Add(9*time.Minute+59*time.Second), rec)
	if d.Allowed {
		t.Fatal("query 1s before the interval must be throttled")
	}
	if d.MinutesRemaining != 1 {
		t.Errorf("minutes remaining = %d, want 1", d.MinutesRemaining)
	}

	// WHEN: querying at exactly T+10m THEN: allowed
	if d := th.Check(base.Add(10*time.Minute), rec); !d.Allowed {
		t.Error("query at exactly the interval must be allowed")
	}
}

func TestThrottle_PartialIntervalRoundsUp(t *testing.T) {
	// Wait math: updated 3 minutes ago with a 10 minute interval
	// leaves 7 minutes.
	th := engine.Throttle{Interval: 10 * time.Minute, Week: defaultWeek()}
	base := at(9, 9, 0)

	d := th.Check(base.Add(3*time.Minute), record(base))
	if d.Allowed || d.MinutesRemaining != 7 {
		t.Errorf("got %+v, want blocked with 7 minutes", d)
	}
}

func TestThrottle_WeekendStaleness(t *testing.T) {
	// The weekend rule compares against Friday's consolidation instant
	// instead of the plain interval.
	th := engine.Throttle{Interval: 10 * time.Minute, Week: defaultWeek()}
	saturday := at(6, 10, 0)

	// GIVEN: record written Friday 21:00, before the 22:00 consolidation
	// THEN: stale, refetch-eligible immediately
	if d := th.Check(saturday, record(at(5, 21, 0))); !d.Allowed {
		t.Error("pre-consolidation cache queried on Saturday must be refetchable")
	}

	// GIVEN: record written Friday 22:30, after consolidation
	// THEN: final until Monday; wait runs to Monday 00:00
	d := th.Check(saturday, record(at(5, 22, 30)))
	if d.Allowed {
		t.Fatal("post-consolidation cache queried on Saturday must be blocked")
	}
	wantMinutes := 38 * 60 // Sat 10:00 -> Mon 00:00
	if d.MinutesRemaining != wantMinutes {
		t.Errorf("minutes remaining = %d, want %d", d.MinutesRemaining, wantMinutes)
	}
}

func TestThrottle_WeekendRecordQueriedOnSunday(t *testing.T) {
	// A record refreshed on Saturday is already post-consolidation data;
	// Sunday polling is pointless.
	th := engine.Throttle{Interval: 10 * time.Minute, Week: defaultWeek()}
	if d := th.Check(at(7, 9, 0), record(at(6, 11, 0))); d.Allowed {
		t.Error("Saturday-written cache queried on Sunday must be blocked")
	}
}
