/*
gateway.go - Remote query contracts

PURPOSE:
  The engine talks to two external query contracts: a Monthly Snapshot
  query (all days recorded so far for a month) and a Today's Live query
  (only today's in-progress records, meaningful only inside the schooling
  window). Both are interfaces here; concrete HTTP clients live in
  gateway/httpapi. Role policies pick which concrete variant they call -
  the engine itself is scope-blind.

FAILURE CONTRACT:
  Gateways return an error for not-found, permission-denied and transient
  network/server failures (see errors.go). The orchestrator converts every
  gateway error into a local recovery: touch the store, fall back to cache,
  and only surface failure when no cached data exists at all.
*/
package engine

import "context"

// =============================================================================
// MONTHLY SNAPSHOT
// =============================================================================

// MonthlyGateway fetches the consolidated monthly snapshot for one entity.
// Role variants differ in the backing endpoint (whole school, one level,
// one classroom, one child), not in this contract.
type MonthlyGateway interface {
	FetchMonth(ctx context.Context, entityID EntityID, month Month) (DayMap, error)
}

// =============================================================================
// TODAY'S LIVE
// =============================================================================

// LiveQuery narrows a today's-live fetch. Level/Grade/Section address the
// group; EntityID optionally narrows to one entity; ActorTag identifies the
// querying role to the backend.
type LiveQuery struct {
	Level    string   `json:"level"`
	Grade    string   `json:"grade"`
	Section  string   `json:"section"`
	EntityID EntityID `json:"entity_id,omitempty"`
	ActorTag string   `json:"actor_tag"`
}

// LiveRecord is one entity's in-progress record for today. Marked is false
// when no registration has happened yet; outside the schooling window an
// unmarked record means nothing at all.
type LiveRecord struct {
	EntityID   EntityID       `json:"entity_id"`
	Marked     bool           `json:"attendance_marked"`
	Attendance *DayAttendance `json:"attendance,omitempty"`
}

// DailyGateway fetches today's live records for a group of entities.
type DailyGateway interface {
	FetchToday(ctx context.Context, q LiveQuery) ([]LiveRecord, error)
}
