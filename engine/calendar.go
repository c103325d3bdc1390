/*
calendar.go - School-week calendar and consolidation window arithmetic

PURPOSE:
  Centralizes every piece of day-of-week and date arithmetic the engine
  performs: which days are school days, which day is the first school day
  of a month, when the backend last consolidated its live store, and how
  long until the next school week begins. No other file does calendar math.

KEY CONCEPTS:
  - SchoolWeek: the set of school days plus the daily consolidation hour.
    Mon-Fri at 22:00 is the common configuration, but it is a value, not
    a constant - holiday calendars can narrow it later without touching
    the strategy selector.
  - Consolidation instant: the moment the backend migrated the last school
    day's live records into durable storage. Cached data written after
    that instant is final until the next school day; data written before
    it is stale.

SEE ALSO:
  - throttle.go: uses the consolidation instant for the weekend rule
  - strategy.go: uses school-day and first-school-day checks
*/
package engine

import "time"

// =============================================================================
// SCHOOL WEEK
// =============================================================================

// SchoolWeek describes which weekdays are school days and at which hour the
// backend consolidates each day's live records into durable storage.
type SchoolWeek struct {
	// Days is indexed by time.Weekday (Sunday = 0).
	Days [7]bool

	// ConsolidationHour is the local hour (0..23) after which the backend's
	// durable store is authoritative for the day.
	ConsolidationHour int
}

// DefaultSchoolWeek returns the standard Monday-Friday week with a 22:00
// consolidation hour.
func DefaultSchoolWeek() SchoolWeek {
	var w SchoolWeek
	for d := time.Monday; d <= time.Friday; d++ {
		w.Days[d] = true
	}
	w.ConsolidationHour = 22
	return w
}

// IsSchoolDay reports whether t falls on a school day.
func (w SchoolWeek) IsSchoolDay(t time.Time) bool {
	return w.Days[t.Weekday()]
}

// lastSchoolWeekday returns the latest weekday of the week that is a school
// day (Friday under the default week). Falls back to Friday if the week is
// misconfigured with no school days.
func (w SchoolWeek) lastSchoolWeekday() time.Weekday {
	for d := time.Saturday; d >= time.Sunday; d-- {
		if w.Days[d] {
			return d
		}
	}
	return time.Friday
}

// firstSchoolWeekday returns the earliest weekday of the week that is a
// school day (Monday under the default week).
func (w SchoolWeek) firstSchoolWeekday() time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Days[d] {
			return d
		}
	}
	return time.Monday
}

// FirstSchoolDayOfMonth returns the day-of-month (1..31) of the first school
// day in the month containing t.
func (w SchoolWeek) FirstSchoolDayOfMonth(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	for !w.IsSchoolDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d.Day()
}

// IsFirstSchoolDay reports whether t falls on the first school day of its
// own month.
func (w SchoolWeek) IsFirstSchoolDay(t time.Time) bool {
	return w.IsSchoolDay(t) && t.Day() == w.FirstSchoolDayOfMonth(t)
}

// =============================================================================
// CONSOLIDATION WINDOW
// =============================================================================

// LastConsolidationInstant returns the most recent end-of-week consolidation
// moment at or before ref: the consolidation hour on the last school day of
// the week. On that day itself, the instant only counts once the hour has
// passed; before the hour, the previous week's instant applies.
func (w SchoolWeek) LastConsolidationInstant(ref time.Time) time.Time {
	last := w.lastSchoolWeekday()
	d := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	for d.Weekday() != last {
		d = d.AddDate(0, 0, -1)
	}
	if d.Year() == ref.Year() && d.YearDay() == ref.YearDay() && ref.Hour() < w.ConsolidationHour {
		d = d.AddDate(0, 0, -7)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), w.ConsolidationHour, 0, 0, 0, ref.Location())
}

// MinutesUntilNextSchoolWeek returns the whole minutes (rounded up) from t
// until midnight of the next school-week start (Monday 00:00 under the
// default week).
func (w SchoolWeek) MinutesUntilNextSchoolWeek(t time.Time) int {
	first := w.firstSchoolWeekday()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
	for d.Weekday() != first {
		d = d.AddDate(0, 0, 1)
	}
	secs := int(d.Sub(t).Seconds())
	return (secs + 59) / 60
}

// =============================================================================
// SCHOOLING HOURS - the entity's extended live window
// =============================================================================

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (td TimeOfDay) minutes() int { return td.Hour*60 + td.Minute }

// SchoolingHours is an education level's scheduled day: the start and end of
// lessons plus the grace extensions within which entry/exit registrations
// still happen. TracksExit is false for levels that only register entry.
type SchoolingHours struct {
	Start      TimeOfDay
	End        TimeOfDay
	EntryGrace time.Duration
	ExitGrace  time.Duration
	TracksExit bool
}

// InExtendedWindow reports whether t falls inside the schooling window
// widened by the grace extensions: [Start-EntryGrace, End+ExitGrace].
// Only inside this window do today's-live queries return meaningful data.
func (h SchoolingHours) InExtendedWindow(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	lo := h.Start.minutes() - int(h.EntryGrace.Minutes())
	hi := h.End.minutes() + int(h.ExitGrace.Minutes())
	return m >= lo && m <= hi
}
