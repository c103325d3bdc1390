package engine_test

import (
	"testing"
	"time"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// June 2026 is the reference month throughout the engine tests:
// Mon Jun 1 is the first school day; Sat Jun 6 / Sun Jun 7 are the first
// weekend; Fri Jun 5 is the first consolidation day.

func at(day, hour, min int) time.Time {
	return time.Date(2026, time.June, day, hour, min, 0, 0, time.UTC)
}

func defaultWeek() engine.SchoolWeek {
	return engine.DefaultSchoolWeek() // Mon-Fri, consolidation 22:00
}

// =============================================================================
// SCHOOL DAY / FIRST SCHOOL DAY
// =============================================================================

func TestSchoolWeek_IsSchoolDay(t *testing.T) {
	week := defaultWeek()
	cases := []struct {
		day  int
		want bool
	}{
		{1, true},  // Monday
		{5, true},  // Friday
		{6, false}, // Saturday
		{7, false}, // Sunday
		{8, true},  // Monday
	}
	for _, c := range cases {
		if got := week.IsSchoolDay(at(c.day, 10, 0)); got != c.want {
			t.Errorf("IsSchoolDay(Jun %d) = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestSchoolWeek_FirstSchoolDayOfMonth(t *testing.T) {
	week := defaultWeek()

	// June 2026 starts on a Monday.
	if got := week.FirstSchoolDayOfMonth(at(15, 0, 0)); got != 1 {
		t.Errorf("first school day of June 2026 = %d, want 1", got)
	}

	// August 2026 starts on a Saturday; first school day is Monday the 3rd.
	aug := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	if got := week.FirstSchoolDayOfMonth(aug); got != 3 {
		t.Errorf("first school day of August 2026 = %d, want 3", got)
	}

	if !week.IsFirstSchoolDay(at(1, 9, 0)) {
		t.Error("Jun 1 should be the first school day")
	}
	if week.IsFirstSchoolDay(at(2, 9, 0)) {
		t.Error("Jun 2 should not be the first school day")
	}
}

// =============================================================================
// CONSOLIDATION INSTANT
// =============================================================================

func TestSchoolWeek_LastConsolidationInstant(t *testing.T) {
	week := defaultWeek()
	fridayJun5 := at(5, 22, 0)
	priorFriday := time.Date(2026, time.May, 29, 22, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{"saturday", at(6, 10, 0), fridayJun5},
		{"sunday", at(7, 23, 0), fridayJun5},
		{"friday after hour", at(5, 22, 30), fridayJun5},
		{"friday at hour", at(5, 22, 0), fridayJun5},
		{"friday before hour", at(5, 21, 0), priorFriday},
		{"monday", at(8, 9, 0), fridayJun5},
		{"thursday", at(11, 9, 0), fridayJun5},
	}
	for _, c := range cases {
		if got := week.LastConsolidationInstant(c.ref); !got.Equal(c.want) {
			t.Errorf("%s: LastConsolidationInstant = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSchoolWeek_MinutesUntilNextSchoolWeek(t *testing.T) {
	week := defaultWeek()

	// Saturday Jun 6 12:00 -> Monday Jun 8 00:00 is 36h = 2160 minutes.
	if got := week.MinutesUntilNextSchoolWeek(at(6, 12, 0)); got != 2160 {
		t.Errorf("minutes until Monday from Sat noon = %d, want 2160", got)
	}

	// Sunday Jun 7 23:59 -> 1 minute.
	if got := week.MinutesUntilNextSchoolWeek(at(7, 23, 59)); got != 1 {
		t.Errorf("minutes until Monday from Sun 23:59 = %d, want 1", got)
	}
}

// =============================================================================
// SCHOOLING WINDOW
// =============================================================================

func TestSchoolingHours_InExtendedWindow(t *testing.T) {
	hours := engine.SchoolingHours{
		Start:      engine.TimeOfDay{Hour: 7, Minute: 30},
		End:        engine.TimeOfDay{Hour: 13, Minute: 0},
		EntryGrace: 30 * time.Minute,
		ExitGrace:  45 * time.Minute,
	}

	cases := []struct {
		hour, min int
		want      bool
	}{
		{6, 59, false}, // before entry grace
		{7, 0, true},   // window opens at 07:00
		{9, 0, true},
		{13, 45, true},  // window closes at 13:45
		{13, 46, false}, // after exit grace
	}
	for _, c := range cases {
		if got := hours.InExtendedWindow(at(9, c.hour, c.min)); got != c.want {
			t.Errorf("InExtendedWindow(%02d:%02d) = %v, want %v", c.hour, c.min, got, c.want)
		}
	}
}
