/*
store.go - Persistence interface for the local attendance cache

PURPOSE:
  Defines the interface between the engine and the device-local table that
  backs the cache. One table, keyed by (entity, month), holding the
  serialized day map plus a last-write timestamp. Implementations exist for
  SQLite (store/sqlite) and in-memory (engine/store).

TIMESTAMP CONTRACT:
  Put and Touch ALWAYS stamp LastUpdatedAt with the device clock, whether or
  not the day data changed. The throttle and the consolidation window reason
  exclusively about that stamp.

TOUCH:
  Touch exists for the gateway-failure path: stamping the record without
  changing data keeps the throttle engaged so a failing backend is not
  hammered in a loop. When no record exists yet, Touch creates one with an
  empty day map; the empty map answers like an absent record but carries
  the back-off timestamp.

NO CROSS-KEY TRANSACTIONS:
  Each (entity, month) key is independent; no multi-entity atomicity is
  required or offered.
*/
package engine

import "context"

// Store is the device-local persistence for MonthlyRecord units.
type Store interface {
	// Get returns the record for (entityID, month), or nil when absent.
	Get(ctx context.Context, entityID EntityID, month Month) (*MonthlyRecord, error)

	// Put replaces the record's day map in full and stamps LastUpdatedAt.
	// Callers wanting a partial merge must read-modify-write via fusion
	// first. Returns the stored record.
	Put(ctx context.Context, entityID EntityID, month Month, days DayMap) (*MonthlyRecord, error)

	// Touch stamps LastUpdatedAt without changing day data, creating an
	// empty record if none exists.
	Touch(ctx context.Context, entityID EntityID, month Month) error
}
