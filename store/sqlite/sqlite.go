/*
Package sqlite provides the SQLite-backed implementation of engine.Store.

PURPOSE:
  The local attendance cache is one table keyed by (entity_id, month),
  holding the serialized day map plus the last-write timestamp. SQLite fits
  the single-reader/single-writer-per-device model; the same SQL works on
  PostgreSQL with trivial dialect changes.

SCHEMA:
  monthly_attendance(entity_id, month, day_map_json, last_updated_at)
  with a composite primary key on (entity_id, month).

TIMESTAMP CONTRACT:
  Put and Touch always stamp last_updated_at from the injected clock,
  whether or not the day payload changed. The throttle depends on this.

WAL MODE:
  The database is opened with WAL so readers never block the writer and
  crash recovery is cheap.

USAGE:
  st, err := sqlite.New("./attendance.db")
  if err != nil { ... }
  defer st.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/attendance-engine/engine"
)

// Store implements engine.Store on SQLite.
type Store struct {
	db *sql.DB

	// Now stamps last_updated_at on writes; defaults to time.Now.
	Now func() time.Time
}

// New opens (and migrates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, Now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS monthly_attendance (
		entity_id       TEXT    NOT NULL,
		month           INTEGER NOT NULL,
		day_map_json    TEXT    NOT NULL,
		last_updated_at TEXT    NOT NULL,
		PRIMARY KEY (entity_id, month)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// engine.Store
// =============================================================================

func (s *Store) Get(ctx context.Context, entityID engine.EntityID, month engine.Month) (*engine.MonthlyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT day_map_json, last_updated_at FROM monthly_attendance WHERE entity_id = ? AND month = ?`,
		string(entityID), int(month),
	)

	var dayJSON, updatedAt string
	if err := row.Scan(&dayJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read monthly_attendance: %w", err)
	}

	var days engine.DayMap
	if err := json.Unmarshal([]byte(dayJSON), &days); err != nil {
		return nil, fmt.Errorf("decode day map: %w", err)
	}
	stamp, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("decode last_updated_at: %w", err)
	}

	return &engine.MonthlyRecord{
		EntityID:      entityID,
		Month:         month,
		Days:          days,
		LastUpdatedAt: stamp,
	}, nil
}

func (s *Store) Put(ctx context.Context, entityID engine.EntityID, month engine.Month, days engine.DayMap) (*engine.MonthlyRecord, error) {
	if days == nil {
		days = make(engine.DayMap)
	}
	dayJSON, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode day map: %w", err)
	}
	stamp := s.Now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO monthly_attendance (entity_id, month, day_map_json, last_updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (entity_id, month) DO UPDATE SET
			day_map_json = excluded.day_map_json,
			last_updated_at = excluded.last_updated_at`,
		string(entityID), int(month), string(dayJSON), stamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("write monthly_attendance: %w", err)
	}

	return &engine.MonthlyRecord{
		EntityID:      entityID,
		Month:         month,
		Days:          days.Clone(),
		LastUpdatedAt: stamp,
	}, nil
}

func (s *Store) Touch(ctx context.Context, entityID engine.EntityID, month engine.Month) error {
	stamp := s.Now().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(ctx,
		`UPDATE monthly_attendance SET last_updated_at = ? WHERE entity_id = ? AND month = ?`,
		stamp, string(entityID), int(month),
	)
	if err != nil {
		return fmt.Errorf("touch monthly_attendance: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// No record yet: create an empty one so the throttle has a timestamp
	// to back off from after a failed remote call.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO monthly_attendance (entity_id, month, day_map_json, last_updated_at)
		VALUES (?, ?, '{}', ?)
		ON CONFLICT (entity_id, month) DO UPDATE SET last_updated_at = excluded.last_updated_at`,
		string(entityID), int(month), stamp,
	)
	if err != nil {
		return fmt.Errorf("touch monthly_attendance: %w", err)
	}
	return nil
}

// Compile-time check.
var _ engine.Store = (*Store)(nil)
