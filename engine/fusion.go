/*
fusion.go - Merging a monthly snapshot with today's live records

PURPOSE:
  The monthly snapshot is authoritative for every day except today; today's
  live fetch is authoritative for today only. Fusion overlays the live value
  onto today's slot and leaves every other day untouched. When the monthly
  branch failed but the live branch succeeded, fusion still produces a
  usable result from whatever base the caller has (cached days, or nothing
  but today) instead of failing outright.
*/
package engine

// MergeToday returns monthly with today's slot overwritten by the live
// value, if the live map carries one. All other days pass through
// unchanged. A nil monthly map degrades to a one-day result.
func MergeToday(monthly, live DayMap, today int) DayMap {
	out := monthly.Clone()
	if out == nil {
		out = make(DayMap)
	}
	if att, ok := live[today]; ok {
		out[today] = att
	}
	return out
}

// LiveToDayMap extracts the live record for one entity from a today's-live
// response and shapes it as a one-day map. The second return is false when
// the entity has no marked attendance yet, which callers must treat as
// "nothing to merge", never as "absent".
func LiveToDayMap(records []LiveRecord, entityID EntityID, today int) (DayMap, bool) {
	for _, r := range records {
		if r.EntityID != entityID || !r.Marked {
			continue
		}
		return DayMap{today: r.Attendance}, true
	}
	return nil, false
}
