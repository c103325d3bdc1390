/*
strategy.go - The central fetch-strategy decision procedure

PURPOSE:
  Given the current time, the calendar position and the entity's schooling
  window, choose one of the four fetch strategies for a CURRENT-month query.
  Past months never reach this selector; they use the simpler two-step
  fallback in orchestrator.go.

DECISION TABLE (top to bottom, first match wins):
  1. no trusted current time            -> CacheOnly
  2. at/after the consolidation hour    -> MonthlyApiOnly
  3. first school day of the month:
       inside the extended live window  -> DailyApiOnly
       outside it                       -> CacheOnly
  4. weekend / non-school day           -> MonthlyApiOnly
  5. ordinary school day:
       inside the extended live window  -> ParallelBoth
       outside it                       -> MonthlyApiOnly

RATIONALE:
  The monthly snapshot is cheap and always safe outside live hours. The
  daily endpoint only returns meaningful data inside the schooling window.
  On the first school day of a month there is no earlier data to reconcile,
  so only the live endpoint (or the cache) makes sense. ParallelBoth is
  reserved for the steady state where a consolidated partial month and
  today's live update are both useful at once.
*/
package engine

import "time"

// SelectStrategy chooses the fetch strategy for a current-month query.
// clockOK is false when no trusted current time is available, in which case
// now is ignored and the cache is the only defensible answer.
func SelectStrategy(now time.Time, clockOK bool, week SchoolWeek, hours SchoolingHours) FetchStrategy {
	if !clockOK {
		return StrategyCacheOnly
	}
	if now.Hour() >= week.ConsolidationHour {
		return StrategyMonthlyOnly
	}
	if week.IsFirstSchoolDay(now) {
		if hours.InExtendedWindow(now) {
			return StrategyDailyOnly
		}
		return StrategyCacheOnly
	}
	if !week.IsSchoolDay(now) {
		return StrategyMonthlyOnly
	}
	if hours.InExtendedWindow(now) {
		return StrategyParallelBoth
	}
	return StrategyMonthlyOnly
}
