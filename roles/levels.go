package roles

import (
	"time"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// EDUCATION LEVEL WINDOWS
// =============================================================================
// Grace extensions widen the scheduled day into the window during which
// today's-live queries return meaningful data. Values are per level; the
// younger the level, the wider the entry window tends to be.

// KindergartenHours: morning-only, entry tracked, exit tracked (pick-up).
func KindergartenHours() engine.SchoolingHours {
	return engine.SchoolingHours{
		Start:      engine.TimeOfDay{Hour: 8, Minute: 0},
		End:        engine.TimeOfDay{Hour: 12, Minute: 0},
		EntryGrace: 45 * time.Minute,
		ExitGrace:  60 * time.Minute,
		TracksExit: true,
	}
}

// PrimaryHours: full morning, both marks tracked.
func PrimaryHours() engine.SchoolingHours {
	return engine.SchoolingHours{
		Start:      engine.TimeOfDay{Hour: 7, Minute: 30},
		End:        engine.TimeOfDay{Hour: 13, Minute: 0},
		EntryGrace: 30 * time.Minute,
		ExitGrace:  45 * time.Minute,
		TracksExit: true,
	}
}

// SecondaryHours: longer day, entry only.
func SecondaryHours() engine.SchoolingHours {
	return engine.SchoolingHours{
		Start:      engine.TimeOfDay{Hour: 7, Minute: 0},
		End:        engine.TimeOfDay{Hour: 14, Minute: 30},
		EntryGrace: 30 * time.Minute,
		ExitGrace:  30 * time.Minute,
		TracksExit: false,
	}
}

// StaffHours: staff members register against the full working day.
func StaffHours() engine.SchoolingHours {
	return engine.SchoolingHours{
		Start:      engine.TimeOfDay{Hour: 6, Minute: 45},
		End:        engine.TimeOfDay{Hour: 17, Minute: 0},
		EntryGrace: 15 * time.Minute,
		ExitGrace:  30 * time.Minute,
		TracksExit: true,
	}
}
