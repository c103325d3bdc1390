/*
Package engine provides the core attendance synchronization engine.

PURPOSE:
  This package contains the shared decision machinery behind the per-entity,
  per-month attendance cache: given the current time, the calendar position
  and the state of the local cache, decide whether to answer from storage,
  fetch a consolidated monthly snapshot, fetch today's live records, or
  fetch both and merge them.

KEY CONCEPTS IN THIS FILE (types.go):
  - AttendanceMark: one side (entry or exit) of a day's registration
  - DayAttendance: a full day's record for one entity
  - DayMap: day-of-month -> DayAttendance mapping, the cached payload
  - MonthlyRecord: the cached unit, keyed by (EntityID, Month)
  - FetchStrategy: the four remote-fetch strategies
  - Provenance: where the returned data came from (cache/api/mixed)

DESIGN PRINCIPLES:
  1. The engine is role-agnostic: the four actor roles (director, auxiliary,
     tutor, guardian) are parameterizations via RolePolicy, not subclasses.
  2. Past months are immutable once cached; only the current month churns.
  3. Every call resolves to an Envelope - the engine never panics or lets
     an error escape the orchestrator boundary.

SEE ALSO:
  - strategy.go: the strategy selector
  - throttle.go: the minimum-interval guard and weekend override
  - orchestrator.go: the parameterized call sequence
*/
package engine

import "time"

// =============================================================================
// IDENTIFIERS
// =============================================================================

// EntityID identifies a student or staff member whose attendance is tracked.
type EntityID string

// Month is a calendar month number, 1..12.
type Month int

func (m Month) Valid() bool { return m >= 1 && m <= 12 }

// =============================================================================
// ATTENDANCE MARKS - the day-level data model
// =============================================================================

// AttendanceMark is one side (entry or exit) of a day's attendance.
// OffsetSeconds is the signed gap between actual and scheduled time;
// nil means no registration happened (absent). Marks for past days are
// immutable once the backend has consolidated them; today's mark may be
// overwritten until the consolidation hour.
type AttendanceMark struct {
	OffsetSeconds *int `json:"offset_seconds"`
	Valid         bool `json:"valid"`
}

// Late reports whether the mark is a registration later than scheduled
// by more than the given tolerance.
func (m AttendanceMark) Late(toleranceSeconds int) bool {
	return m.OffsetSeconds != nil && *m.OffsetSeconds > toleranceSeconds
}

// DayAttendance is a day's record for one entity. A nil *DayAttendance in
// a DayMap means the entity was inactive (not enrolled) that day. Exit is
// nil for education levels that do not track exit registration.
type DayAttendance struct {
	Entry *AttendanceMark `json:"entry"`
	Exit  *AttendanceMark `json:"exit,omitempty"`
}

// DayMap maps day-of-month (1..31) to that day's attendance.
type DayMap map[int]*DayAttendance

// Clone returns a shallow-value copy of the map. The day records themselves
// are treated as immutable by all engine code, so sharing them is safe.
func (d DayMap) Clone() DayMap {
	if d == nil {
		return nil
	}
	out := make(DayMap, len(d))
	for day, att := range d {
		out[day] = att
	}
	return out
}

// Empty reports whether the map holds no days at all. A record created by
// Store.Touch on gateway failure has an empty map: it carries a throttle
// timestamp but no answerable data.
func (d DayMap) Empty() bool { return len(d) == 0 }

// =============================================================================
// MONTHLY RECORD - the cached unit
// =============================================================================

// MonthlyRecord is one entity's cached attendance for one month.
// LastUpdatedAt is stamped on every write, including writes that did not
// change any day data; the throttle and the consolidation window reason
// about this timestamp, never about the day payload.
type MonthlyRecord struct {
	EntityID      EntityID
	Month         Month
	Days          DayMap
	LastUpdatedAt time.Time
}

// =============================================================================
// FETCH STRATEGY
// =============================================================================

// FetchStrategy is the remote-fetch decision for a current-month query.
// Computed per call, never stored.
type FetchStrategy string

const (
	// StrategyCacheOnly answers from local storage without touching the network.
	StrategyCacheOnly FetchStrategy = "cache_only"

	// StrategyMonthlyOnly fetches the consolidated monthly snapshot.
	StrategyMonthlyOnly FetchStrategy = "monthly_api_only"

	// StrategyDailyOnly fetches only today's live records.
	StrategyDailyOnly FetchStrategy = "daily_api_only"

	// StrategyParallelBoth fetches snapshot and live concurrently and fuses them.
	StrategyParallelBoth FetchStrategy = "parallel_both"
)

// =============================================================================
// PROVENANCE
// =============================================================================

// Provenance records where an Envelope's data came from: purely the local
// cache, purely fresh gateway data, or a fusion of both.
type Provenance string

const (
	ProvenanceCache Provenance = "cache"
	ProvenanceAPI   Provenance = "api"
	ProvenanceMixed Provenance = "mixed"
)
