// Package store provides Store implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records map[key]*engine.MonthlyRecord

	// Now stamps LastUpdatedAt on writes. Overridable in tests to pin the
	// device clock; defaults to time.Now.
	Now func() time.Time
}

type key struct {
	EntityID engine.EntityID
	Month    engine.Month
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[key]*engine.MonthlyRecord),
		Now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, entityID engine.EntityID, month engine.Month) (*engine.MonthlyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[key{entityID, month}]
	if !ok {
		return nil, nil
	}
	cp := *rec
	cp.Days = rec.Days.Clone()
	return &cp, nil
}

func (m *Memory) Put(_ context.Context, entityID engine.EntityID, month engine.Month, days engine.DayMap) (*engine.MonthlyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := &engine.MonthlyRecord{
		EntityID:      entityID,
		Month:         month,
		Days:          days.Clone(),
		LastUpdatedAt: m.Now(),
	}
	if rec.Days == nil {
		rec.Days = make(engine.DayMap)
	}
	m.records[key{entityID, month}] = rec

	cp := *rec
	cp.Days = rec.Days.Clone()
	return &cp, nil
}

func (m *Memory) Touch(_ context.Context, entityID engine.EntityID, month engine.Month) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{entityID, month}
	if rec, ok := m.records[k]; ok {
		rec.LastUpdatedAt = m.Now()
		return nil
	}
	m.records[k] = &engine.MonthlyRecord{
		EntityID:      entityID,
		Month:         month,
		Days:          make(engine.DayMap),
		LastUpdatedAt: m.Now(),
	}
	return nil
}
