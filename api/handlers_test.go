package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/api"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type stubMonthly struct{ days engine.DayMap }

func (s stubMonthly) FetchMonth(context.Context, engine.EntityID, engine.Month) (engine.DayMap, error) {
	return s.days, nil
}

type stubDaily struct{}

func (stubDaily) FetchToday(context.Context, engine.LiveQuery) ([]engine.LiveRecord, error) {
	return nil, nil
}

// newTestServer serves a tutor orchestrator pinned to Tuesday Jun 9 2026
// 15:00 (outside schooling hours, before consolidation -> monthly only).
func newTestServer(t *testing.T, days engine.DayMap) *httptest.Server {
	now := time.Date(2026, time.June, 9, 15, 0, 0, 0, time.UTC)
	mem := store.NewMemory()
	mem.Now = func() time.Time { return now }

	policy := engine.RolePolicy{
		Role:             "tutor",
		ThrottleInterval: 10 * time.Minute,
		Week:             engine.DefaultSchoolWeek(),
		Hours: engine.SchoolingHours{
			Start: engine.TimeOfDay{Hour: 7, Minute: 30},
			End:   engine.TimeOfDay{Hour: 13, Minute: 0},
		},
		Monthly: stubMonthly{days: days},
		Daily:   stubDaily{},
	}
	orch := engine.NewOrchestrator(policy, mem, engine.FixedClock{T: now}, nil)

	h := api.NewHandler(map[string]*engine.Orchestrator{"tutor": orch}, nil)
	srv := httptest.NewServer(api.NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

// =============================================================================
// ROUTES
// =============================================================================

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	var out map[string]string
	status := getJSON(t, srv.URL+"/healthz", &out)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", out["status"])
}

func TestQueryMonth(t *testing.T) {
	offset := 120
	srv := newTestServer(t, engine.DayMap{
		8: {Entry: &engine.AttendanceMark{OffsetSeconds: &offset, Valid: true}},
	})

	var out api.EnvelopeDTO
	status := getJSON(t, srv.URL+"/api/tutor/entities/stu-1/months/6", &out)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, out.Success)
	assert.Equal(t, engine.ProvenanceAPI, out.Provenance)
	require.Contains(t, out.Data, 8)
	assert.Equal(t, 120, *out.Data[8].Entry.OffsetSeconds)
}

func TestQueryMonth_UnknownRole(t *testing.T) {
	srv := newTestServer(t, nil)
	var out map[string]any
	status := getJSON(t, srv.URL+"/api/principal/entities/stu-1/months/6", &out)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, out["success"])
}

func TestQueryMonth_BadMonth(t *testing.T) {
	srv := newTestServer(t, nil)

	// Unparseable month is an HTTP-level rejection.
	var out map[string]any
	status := getJSON(t, srv.URL+"/api/tutor/entities/stu-1/months/abc", &out)
	assert.Equal(t, http.StatusBadRequest, status)

	// An out-of-range number reaches the engine and comes back as a
	// domain envelope, not an HTTP error.
	var env api.EnvelopeDTO
	status = getJSON(t, srv.URL+"/api/tutor/entities/stu-1/months/13", &env)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, env.Success)
}

func TestMonthReport(t *testing.T) {
	late, onTime := 300, 0
	srv := newTestServer(t, engine.DayMap{
		8: {Entry: &engine.AttendanceMark{OffsetSeconds: &late, Valid: true}},
		9: {Entry: &engine.AttendanceMark{OffsetSeconds: &onTime, Valid: true}},
	})

	var out api.SummaryDTO
	status := getJSON(t, srv.URL+"/api/tutor/entities/stu-1/months/6/report", &out)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Present)
	assert.Equal(t, 1, out.Late)
	assert.Equal(t, "100", out.AttendanceRate)
}
