/*
orchestrator.go - The parameterized role orchestrator

PURPOSE:
  One procedure drives all four actor roles (school director, attendance
  auxiliary, classroom tutor, guardian). Role differences - visibility
  scope, throttle interval, endpoint variant, level timing - arrive as a
  RolePolicy value; there is no inheritance and no per-role copy of the
  call sequence.

CALL SEQUENCE for Query(entity, month):
  1. Validate the month and the caller's scope. Failure -> Envelope with
     success=false, nothing fetched.
  2. Month != current month -> past-month fallback: cache is authoritative
     forever once populated; otherwise one monthly fetch, stored permanently.
  3. Current month: read the record, run the throttle (weekend override
     included). Blocked -> cached data with requires_wait + minutes.
  4. Run the strategy selector and dispatch. Every gateway failure touches
     the store (keeps the throttle engaged) and degrades to cached data;
     failure only surfaces when no cached data exists at all.
  5. Every successful remote fetch is persisted via Store.Put before the
     Envelope is returned.

CONCURRENCY:
  ParallelBoth fires both gateway calls concurrently and inspects both
  outcomes only after both settle; a failing monthly fetch never cancels
  the in-flight daily fetch, and vice versa. Two concurrent Query calls
  for the same (entity, month) may both decide to refetch; the overwrite
  is idempotent, so this race is tolerated rather than locked away.

PROVENANCE:
  cache  - no fresh gateway data in the answer
  api    - exactly one gateway contributed fresh data
  mixed  - monthly snapshot and today's live both contributed
*/
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// ROLE POLICY
// =============================================================================

// ScopeCheck reports whether the role may query the given entity.
type ScopeCheck func(EntityID) bool

// RolePolicy parameterizes the orchestrator for one actor role.
type RolePolicy struct {
	// Role names the actor role, for logs and messages.
	Role string

	// ThrottleInterval is the minimum spacing between remote fetches for
	// one (entity, month) unit.
	ThrottleInterval time.Duration

	// Week carries the school days and the consolidation hour.
	Week SchoolWeek

	// Hours is the schooling window of the education level this role sees.
	Hours SchoolingHours

	// Monthly and Daily are the role's concrete gateway variants.
	Monthly MonthlyGateway
	Daily   DailyGateway

	// Live is the daily-endpoint addressing for this role's group; the
	// entity id of each query is filled in per call.
	Live LiveQuery

	// Scope guards visibility. Nil means unrestricted (director).
	Scope ScopeCheck
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator executes attendance queries under one role policy.
type Orchestrator struct {
	policy RolePolicy
	store  Store
	clock  Clock
	log    *zap.Logger
}

// NewOrchestrator wires a role policy to its store and clock. A nil logger
// is replaced by a no-op one.
func NewOrchestrator(policy RolePolicy, store Store, clock Clock, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		policy: policy,
		store:  store,
		clock:  clock,
		log:    log.With(zap.String("role", policy.Role)),
	}
}

// Query resolves the attendance of one entity for one month. It never
// returns an error; every outcome is an Envelope.
func (o *Orchestrator) Query(ctx context.Context, entityID EntityID, month Month) Envelope {
	if !month.Valid() {
		return failureEnvelope((&ValidationError{Field: "month", Reason: ErrInvalidMonth}).Error())
	}
	if o.policy.Scope != nil && !o.policy.Scope(entityID) {
		return failureEnvelope((&ValidationError{Field: "entity", Reason: ErrScopeDenied}).Error())
	}

	now, clockOK := o.clock.Now(ctx)
	if !clockOK {
		// Without a trusted current time we cannot even tell whether the
		// month is the current one; the cache is the only defensible answer.
		rec, err := o.store.Get(ctx, entityID, month)
		if err != nil {
			return failureEnvelope(fmt.Sprintf("local store read: %v", err))
		}
		return cachedEnvelope(rec, StrategyCacheOnly, ErrClockUnavailable.Error())
	}

	if month != Month(now.Month()) {
		return o.queryPastMonth(ctx, entityID, month)
	}
	return o.queryCurrentMonth(ctx, entityID, month, now)
}

// =============================================================================
// PAST MONTHS - cache is authoritative forever once populated
// =============================================================================

func (o *Orchestrator) queryPastMonth(ctx context.Context, entityID EntityID, month Month) Envelope {
	rec, err := o.store.Get(ctx, entityID, month)
	if err != nil {
		return failureEnvelope(fmt.Sprintf("local store read: %v", err))
	}
	if rec != nil && !rec.Days.Empty() {
		return Envelope{Success: true, Data: rec.Days, Provenance: ProvenanceCache}
	}

	days, err := o.policy.Monthly.FetchMonth(ctx, entityID, month)
	if err != nil {
		o.log.Warn("monthly snapshot fetch failed for past month",
			zap.String("entity", string(entityID)),
			zap.Int("month", int(month)),
			zap.Error(err),
		)
		return failureEnvelope(err.Error())
	}
	stored, err := o.store.Put(ctx, entityID, month, days)
	if err != nil {
		return failureEnvelope(fmt.Sprintf("local store write: %v", err))
	}
	return Envelope{Success: true, Data: stored.Days, Provenance: ProvenanceAPI}
}

// =============================================================================
// CURRENT MONTH - throttle, strategy, dispatch
// =============================================================================

func (o *Orchestrator) queryCurrentMonth(ctx context.Context, entityID EntityID, month Month, now time.Time) Envelope {
	rec, err := o.store.Get(ctx, entityID, month)
	if err != nil {
		return failureEnvelope(fmt.Sprintf("local store read: %v", err))
	}

	throttle := Throttle{Interval: o.policy.ThrottleInterval, Week: o.policy.Week}
	if d := throttle.Check(now, rec); !d.Allowed {
		env := cachedEnvelope(rec, "", "recent data already cached")
		env.RequiresWait = true
		env.MinutesWait = d.MinutesRemaining
		// A throttled answer with cached days is a success even though the
		// caller must wait before refreshing.
		return env
	}

	strategy := SelectStrategy(now, true, o.policy.Week, o.policy.Hours)
	o.log.Debug("strategy selected",
		zap.String("entity", string(entityID)),
		zap.Int("month", int(month)),
		zap.String("strategy", string(strategy)),
	)

	switch strategy {
	case StrategyCacheOnly:
		return cachedEnvelope(rec, strategy, "cache only")
	case StrategyMonthlyOnly:
		return o.fetchMonthlyOnly(ctx, entityID, month, rec, strategy)
	case StrategyDailyOnly:
		return o.fetchDailyOnly(ctx, entityID, month, now.Day(), rec)
	default:
		return o.fetchParallelBoth(ctx, entityID, month, now.Day(), rec)
	}
}

func (o *Orchestrator) fetchMonthlyOnly(ctx context.Context, entityID EntityID, month Month, rec *MonthlyRecord, strategy FetchStrategy) Envelope {
	days, err := o.policy.Monthly.FetchMonth(ctx, entityID, month)
	if err != nil {
		return o.degrade(ctx, entityID, month, rec, strategy, err)
	}
	stored, err := o.store.Put(ctx, entityID, month, days)
	if err != nil {
		return failureEnvelope(fmt.Sprintf("local store write: %v", err))
	}
	return Envelope{Success: true, Data: stored.Days, Provenance: ProvenanceAPI, Strategy: strategy}
}

func (o *Orchestrator) fetchDailyOnly(ctx context.Context, entityID EntityID, month Month, today int, rec *MonthlyRecord) Envelope {
	live, ok, err := o.fetchLive(ctx, entityID, today)
	if err != nil {
		return o.degrade(ctx, entityID, month, rec, StrategyDailyOnly, err)
	}
	if !ok {
		// Nothing marked yet today; the cache stays authoritative and the
		// record is stamped so the throttle spaces out the polling.
		if terr := o.store.Touch(ctx, entityID, month); terr != nil {
			o.log.Warn("store touch failed", zap.Error(terr))
		}
		return cachedEnvelope(rec, StrategyDailyOnly, "no live registration yet today")
	}

	base := DayMap(nil)
	if rec != nil {
		base = rec.Days
	}
	fused := MergeToday(base, live, today)
	stored, err := o.store.Put(ctx, entityID, month, fused)
	if err != nil {
		return failureEnvelope(fmt.Sprintf("local store write: %v", err))
	}
	return Envelope{Success: true, Data: stored.Days, Provenance: ProvenanceAPI, Strategy: StrategyDailyOnly}
}

// gatewayOutcome carries one settled branch of a parallel fetch.
type gatewayOutcome struct {
	days  DayMap
	found bool
	err   error
}

func (o *Orchestrator) fetchParallelBoth(ctx context.Context, entityID EntityID, month Month, today int, rec *MonthlyRecord) Envelope {
	monthlyCh := make(chan gatewayOutcome, 1)
	dailyCh := make(chan gatewayOutcome, 1)

	go func() {
		days, err := o.policy.Monthly.FetchMonth(ctx, entityID, month)
		monthlyCh <- gatewayOutcome{days: days, found: err == nil, err: err}
	}()
	go func() {
		live, ok, err := o.fetchLive(ctx, entityID, today)
		dailyCh <- gatewayOutcome{days: live, found: ok, err: err}
	}()

	// Both branches settle before any outcome is inspected; one failing
	// branch never cancels the other.
	monthly := <-monthlyCh
	daily := <-dailyCh

	switch {
	case monthly.err == nil && daily.err == nil:
		fused := MergeToday(monthly.days, daily.days, today)
		stored, err := o.store.Put(ctx, entityID, month, fused)
		if err != nil {
			return failureEnvelope(fmt.Sprintf("local store write: %v", err))
		}
		prov := ProvenanceMixed
		if !daily.found {
			// The live side answered but carried nothing for this entity;
			// the snapshot is the only fresh contribution.
			prov = ProvenanceAPI
		}
		return Envelope{Success: true, Data: stored.Days, Provenance: prov, Strategy: StrategyParallelBoth}

	case monthly.err == nil:
		o.log.Warn("daily branch failed during parallel fetch", zap.Error(daily.err))
		stored, err := o.store.Put(ctx, entityID, month, monthly.days)
		if err != nil {
			return failureEnvelope(fmt.Sprintf("local store write: %v", err))
		}
		return Envelope{Success: true, Data: stored.Days, Provenance: ProvenanceAPI, Strategy: StrategyParallelBoth}

	case daily.err == nil && daily.found:
		// Degraded fusion: today's live value merged onto whatever was
		// cached, never a hard failure.
		o.log.Warn("monthly branch failed during parallel fetch", zap.Error(monthly.err))
		base := DayMap(nil)
		if rec != nil {
			base = rec.Days
		}
		fused := MergeToday(base, daily.days, today)
		stored, err := o.store.Put(ctx, entityID, month, fused)
		if err != nil {
			return failureEnvelope(fmt.Sprintf("local store write: %v", err))
		}
		return Envelope{Success: true, Data: stored.Days, Provenance: ProvenanceAPI, Strategy: StrategyParallelBoth}

	default:
		err := monthly.err
		if err == nil {
			err = daily.err
		}
		return o.degrade(ctx, entityID, month, rec, StrategyParallelBoth, err)
	}
}

// fetchLive calls the daily gateway narrowed to one entity and shapes the
// response as a one-day map.
func (o *Orchestrator) fetchLive(ctx context.Context, entityID EntityID, today int) (DayMap, bool, error) {
	q := o.policy.Live
	q.EntityID = entityID
	records, err := o.policy.Daily.FetchToday(ctx, q)
	if err != nil {
		return nil, false, err
	}
	live, ok := LiveToDayMap(records, entityID, today)
	return live, ok, nil
}

// degrade is the shared gateway-failure recovery: stamp the store so the
// throttle still engages, then answer from cache if the cache has anything.
func (o *Orchestrator) degrade(ctx context.Context, entityID EntityID, month Month, rec *MonthlyRecord, strategy FetchStrategy, cause error) Envelope {
	o.log.Warn("remote fetch failed, degrading to cache",
		zap.String("entity", string(entityID)),
		zap.Int("month", int(month)),
		zap.String("strategy", string(strategy)),
		zap.Error(cause),
	)
	if err := o.store.Touch(ctx, entityID, month); err != nil {
		o.log.Warn("store touch failed", zap.Error(err))
	}
	env := cachedEnvelope(rec, strategy, cause.Error())
	return env
}
