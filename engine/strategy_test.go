package engine_test

import (
	"testing"
	"time"

	"github.com/warp/attendance-engine/engine"
)

func primaryHours() engine.SchoolingHours {
	return engine.SchoolingHours{
		Start:      engine.TimeOfDay{Hour: 7, Minute: 30},
		End:        engine.TimeOfDay{Hour: 13, Minute: 0},
		EntryGrace: 30 * time.Minute,
		ExitGrace:  45 * time.Minute,
	}
}

func TestSelectStrategy(t *testing.T) {
	week := defaultWeek()
	hours := primaryHours()

	cases := []struct {
		name string
		now  time.Time
		want engine.FetchStrategy
	}{
		// The consolidation hour always wins.
		{"weekday 09:00 inside window is parallel", at(9, 9, 0), engine.StrategyParallelBoth},
		{"weekday 21:59 outside window is monthly", at(9, 21, 59), engine.StrategyMonthlyOnly},
		{"weekday 22:00 is monthly", at(9, 22, 0), engine.StrategyMonthlyOnly},
		{"weekend 23:00 is monthly", at(6, 23, 0), engine.StrategyMonthlyOnly},

		// First school day of the month (Mon Jun 1).
		{"first school day inside window is daily", at(1, 8, 0), engine.StrategyDailyOnly},
		{"first school day outside window is cache", at(1, 15, 0), engine.StrategyCacheOnly},

		// Weekends before the consolidation hour.
		{"saturday morning is monthly", at(6, 10, 0), engine.StrategyMonthlyOnly},
		{"sunday afternoon is monthly", at(7, 16, 0), engine.StrategyMonthlyOnly},

		// Ordinary school day.
		{"ordinary day outside window is monthly", at(9, 15, 0), engine.StrategyMonthlyOnly},
		{"ordinary day inside window is parallel", at(10, 12, 30), engine.StrategyParallelBoth},
	}
	for _, c := range cases {
		if got := engine.SelectStrategy(c.now, true, week, hours); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestSelectStrategy_NoClock(t *testing.T) {
	// Rule 1: without a trusted current time the cache is the only answer,
	// regardless of what the (ignored) time argument says.
	got := engine.SelectStrategy(at(9, 9, 0), false, defaultWeek(), primaryHours())
	if got != engine.StrategyCacheOnly {
		t.Errorf("no clock: got %s, want %s", got, engine.StrategyCacheOnly)
	}
}
