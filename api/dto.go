package api

import (
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/report"
)

// =============================================================================
// DTOs - wire shapes for envelope and report responses
// =============================================================================

type EnvelopeDTO struct {
	Success      bool                 `json:"success"`
	Data         engine.DayMap        `json:"data,omitempty"`
	RequiresWait bool                 `json:"requires_wait"`
	MinutesWait  int                  `json:"minutes_wait,omitempty"`
	Provenance   engine.Provenance    `json:"provenance,omitempty"`
	Strategy     engine.FetchStrategy `json:"strategy,omitempty"`
	Message      string               `json:"message,omitempty"`
}

func envelopeDTO(env engine.Envelope) EnvelopeDTO {
	return EnvelopeDTO{
		Success:      env.Success,
		Data:         env.Data,
		RequiresWait: env.RequiresWait,
		MinutesWait:  env.MinutesWait,
		Provenance:   env.Provenance,
		Strategy:     env.Strategy,
		Message:      env.Message,
	}
}

type SummaryDTO struct {
	Success                   bool              `json:"success"`
	Month                     int               `json:"month"`
	DaysRecorded              int               `json:"days_recorded"`
	Inactive                  int               `json:"inactive"`
	Present                   int               `json:"present"`
	Absent                    int               `json:"absent"`
	Late                      int               `json:"late"`
	AverageEntryOffsetMinutes string            `json:"average_entry_offset_minutes"`
	AttendanceRate            string            `json:"attendance_rate"`
	Provenance                engine.Provenance `json:"provenance"`
	RequiresWait              bool              `json:"requires_wait"`
	MinutesWait               int               `json:"minutes_wait,omitempty"`
}

func summaryDTO(s report.Summary, env engine.Envelope) SummaryDTO {
	return SummaryDTO{
		Success:                   true,
		Month:                     int(s.Month),
		DaysRecorded:              s.DaysRecorded,
		Inactive:                  s.Inactive,
		Present:                   s.Present,
		Absent:                    s.Absent,
		Late:                      s.Late,
		AverageEntryOffsetMinutes: s.AverageEntryOffsetMinutes.String(),
		AttendanceRate:            s.AttendanceRate.String(),
		Provenance:                env.Provenance,
		RequiresWait:              env.RequiresWait,
		MinutesWait:               env.MinutesWait,
	}
}
