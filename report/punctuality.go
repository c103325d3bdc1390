/*
Package report derives per-month punctuality summaries from a cached
attendance record. This is the engine's report-generation consumer: it
reads whatever the orchestrator cached (it never triggers fetches itself)
and computes rates and averages with decimal precision, so a 19/21
attendance rate renders as 90.48 and not 90.476190476.
*/
package report

import (
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
)

// Summary is one entity's punctuality profile for one month.
type Summary struct {
	Month        engine.Month
	DaysRecorded int // days with any record, inactive days included
	Inactive     int // entity not enrolled/active that day
	Present      int // entry registered
	Absent       int // active day with no entry registration
	Late         int // present with entry offset beyond tolerance

	// AverageEntryOffsetMinutes is the signed mean entry offset over present
	// days, in minutes; negative means earlier than scheduled. Zero when no
	// day was present.
	AverageEntryOffsetMinutes decimal.Decimal

	// AttendanceRate is Present / (Present + Absent) as a percentage with
	// two decimal places. Zero when the month has no active days.
	AttendanceRate decimal.Decimal
}

// Summarize folds a cached record into a Summary. toleranceSeconds is how
// far past the scheduled time an entry still counts as on time.
func Summarize(rec *engine.MonthlyRecord, toleranceSeconds int) Summary {
	s := Summary{
		AverageEntryOffsetMinutes: decimal.Zero,
		AttendanceRate:            decimal.Zero,
	}
	if rec == nil {
		return s
	}
	s.Month = rec.Month

	offsetSum := decimal.Zero
	for _, att := range rec.Days {
		s.DaysRecorded++
		if att == nil {
			s.Inactive++
			continue
		}
		if att.Entry == nil || att.Entry.OffsetSeconds == nil {
			s.Absent++
			continue
		}
		s.Present++
		if att.Entry.Late(toleranceSeconds) {
			s.Late++
		}
		offsetSum = offsetSum.Add(decimal.NewFromInt(int64(*att.Entry.OffsetSeconds)))
	}

	if s.Present > 0 {
		s.AverageEntryOffsetMinutes = offsetSum.
			Div(decimal.NewFromInt(int64(s.Present))).
			Div(decimal.NewFromInt(60)).
			Round(2)
	}
	if active := s.Present + s.Absent; active > 0 {
		s.AttendanceRate = decimal.NewFromInt(int64(s.Present)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(active))).
			Round(2)
	}
	return s
}
