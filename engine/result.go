package engine

// =============================================================================
// ENVELOPE - uniform result shape
// =============================================================================

// Envelope is the uniform result of every orchestrator call. The engine
// never lets an error escape past the orchestrator boundary: callers always
// receive an Envelope and can always render something - cached data, a
// partial fusion, or an explicit wait/error message.
type Envelope struct {
	Success      bool          `json:"success"`
	Data         DayMap        `json:"data,omitempty"`
	RequiresWait bool          `json:"requires_wait"`
	MinutesWait  int           `json:"minutes_wait,omitempty"`
	Provenance   Provenance    `json:"provenance"`
	Strategy     FetchStrategy `json:"strategy,omitempty"`
	Message      string        `json:"message,omitempty"`
}

func failureEnvelope(msg string) Envelope {
	return Envelope{Success: false, Message: msg}
}

// cachedEnvelope wraps whatever the cache holds. Success is true only when
// the record actually carries days; a touched-but-empty record answers like
// an absent one.
func cachedEnvelope(rec *MonthlyRecord, strategy FetchStrategy, msg string) Envelope {
	if rec == nil || rec.Days.Empty() {
		return Envelope{Success: false, Provenance: ProvenanceCache, Strategy: strategy, Message: msg}
	}
	return Envelope{
		Success:    true,
		Data:       rec.Days,
		Provenance: ProvenanceCache,
		Strategy:   strategy,
		Message:    msg,
	}
}
