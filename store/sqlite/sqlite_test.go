package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func dayMap(day, offsetSeconds int) engine.DayMap {
	o := offsetSeconds
	return engine.DayMap{day: {Entry: &engine.AttendanceMark{OffsetSeconds: &o, Valid: true}}}
}

func TestStore_GetAbsent(t *testing.T) {
	st := newTestStore(t)
	rec, err := st.Get(context.Background(), "stu-1", 6)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_PutRoundtrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	st.Now = func() time.Time { return time.Date(2026, time.June, 9, 9, 0, 0, 0, time.UTC) }

	_, err := st.Put(ctx, "stu-1", 6, dayMap(9, 120))
	require.NoError(t, err)

	rec, err := st.Get(ctx, "stu-1", 6)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, engine.EntityID("stu-1"), rec.EntityID)
	assert.Equal(t, engine.Month(6), rec.Month)
	require.NotNil(t, rec.Days[9])
	require.NotNil(t, rec.Days[9].Entry)
	assert.Equal(t, 120, *rec.Days[9].Entry.OffsetSeconds)
	assert.True(t, rec.Days[9].Entry.Valid)
	assert.Equal(t, 9, rec.LastUpdatedAt.Hour())
}

func TestStore_PutPreservesInactiveDays(t *testing.T) {
	// A present key with a null record means "inactive that day" and must
	// survive serialization as distinct from an absent key.
	ctx := context.Background()
	st := newTestStore(t)

	days := dayMap(9, 0)
	days[10] = nil
	_, err := st.Put(ctx, "stu-1", 6, days)
	require.NoError(t, err)

	rec, err := st.Get(ctx, "stu-1", 6)
	require.NoError(t, err)
	att, present := rec.Days[10]
	assert.True(t, present, "inactive day must round-trip as a present key")
	assert.Nil(t, att)
	_, present = rec.Days[11]
	assert.False(t, present)
}

func TestStore_PutReplacesInFull(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Put(ctx, "stu-1", 6, dayMap(8, 60))
	require.NoError(t, err)
	_, err = st.Put(ctx, "stu-1", 6, dayMap(9, 30))
	require.NoError(t, err)

	rec, err := st.Get(ctx, "stu-1", 6)
	require.NoError(t, err)
	assert.NotContains(t, rec.Days, 8, "Put must replace, not merge")
	assert.Contains(t, rec.Days, 9)
}

func TestStore_TouchCreatesAndRestamps(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	st.Now = func() time.Time { return time.Date(2026, time.June, 9, 9, 0, 0, 0, time.UTC) }

	// Touch with no record creates an empty stamped one.
	require.NoError(t, st.Touch(ctx, "stu-1", 6))
	rec, err := st.Get(ctx, "stu-1", 6)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Days.Empty())
	assert.Equal(t, 9, rec.LastUpdatedAt.Hour())

	// Touch with data restamps and leaves the days alone.
	_, err = st.Put(ctx, "stu-1", 6, dayMap(9, 120))
	require.NoError(t, err)
	st.Now = func() time.Time { return time.Date(2026, time.June, 9, 11, 0, 0, 0, time.UTC) }
	require.NoError(t, st.Touch(ctx, "stu-1", 6))

	rec, err = st.Get(ctx, "stu-1", 6)
	require.NoError(t, err)
	assert.Equal(t, 11, rec.LastUpdatedAt.Hour())
	assert.Contains(t, rec.Days, 9)
}

func TestStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Put(ctx, "stu-1", 6, dayMap(1, 10))
	require.NoError(t, err)
	_, err = st.Put(ctx, "stu-1", 5, dayMap(20, 20))
	require.NoError(t, err)
	_, err = st.Put(ctx, "stu-2", 6, dayMap(1, 30))
	require.NoError(t, err)

	rec, err := st.Get(ctx, "stu-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 20, *rec.Days[20].Entry.OffsetSeconds)
}
