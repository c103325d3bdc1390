/*
handlers.go - HTTP handlers over the role orchestrators

PURPOSE:
  Translates HTTP requests into orchestrator queries and engine envelopes
  into JSON. The handlers add nothing to the decision logic: validation
  beyond URL shape, throttling and degradation all live in the engine, and
  an Envelope always comes back, so these handlers never 500 on domain
  conditions - only on unknown roles or unparseable URLs.
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/report"
)

// Handler carries the per-role orchestrators and shared dependencies.
type Handler struct {
	Orchestrators map[string]*engine.Orchestrator
	Log           *zap.Logger

	// LateToleranceSeconds feeds the punctuality report; entries later than
	// this still count as on time.
	LateToleranceSeconds int
}

func NewHandler(orchestrators map[string]*engine.Orchestrator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Orchestrators:        orchestrators,
		Log:                  log,
		LateToleranceSeconds: 0,
	}
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// QueryMonth resolves one entity's attendance for one month under the
// role's policy.
func (h *Handler) QueryMonth(w http.ResponseWriter, r *http.Request) {
	orch, entityID, month, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	env := orch.Query(r.Context(), entityID, month)
	writeJSON(w, http.StatusOK, envelopeDTO(env))
}

// MonthReport resolves the month (same policy path as QueryMonth) and folds
// the result into a punctuality summary.
func (h *Handler) MonthReport(w http.ResponseWriter, r *http.Request) {
	orch, entityID, month, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	env := orch.Query(r.Context(), entityID, month)
	if !env.Success {
		writeJSON(w, http.StatusOK, envelopeDTO(env))
		return
	}
	summary := report.Summarize(&engine.MonthlyRecord{Month: month, Days: env.Data}, h.LateToleranceSeconds)
	writeJSON(w, http.StatusOK, summaryDTO(summary, env))
}

func (h *Handler) parseQuery(w http.ResponseWriter, r *http.Request) (*engine.Orchestrator, engine.EntityID, engine.Month, bool) {
	role := chi.URLParam(r, "role")
	orch, ok := h.Orchestrators[role]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown role: "+role)
		return nil, "", 0, false
	}

	monthStr := chi.URLParam(r, "month")
	monthNum, err := strconv.Atoi(monthStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be a number, got "+monthStr)
		return nil, "", 0, false
	}

	return orch, engine.EntityID(chi.URLParam(r, "entityID")), engine.Month(monthNum), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}
