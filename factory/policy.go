/*
Package factory provides JSON to Go role-policy conversion.

PURPOSE:
  Converts JSON role definitions into engine.RolePolicy values. Deployments
  tune throttle intervals, the school week, the consolidation hour and the
  schooling windows per education level without code changes; the gateways
  are wired in by the caller afterwards, since they carry credentials and
  base URLs that never belong in a policy file.

JSON SCHEMA:
  {
    "role": "tutor",
    "throttle_minutes": 10,
    "consolidation_hour": 22,
    "school_days": ["monday", "tuesday", "wednesday", "thursday", "friday"],
    "hours": {
      "start": "07:30",
      "end": "13:00",
      "entry_grace_minutes": 30,
      "exit_grace_minutes": 45,
      "tracks_exit": true
    },
    "live": {"level": "primary", "grade": "3", "section": "B"},
    "scope_entities": ["stu-201", "stu-202"]
  }

DEFAULTS:
  school_days        -> Monday..Friday
  consolidation_hour -> 22
  throttle_minutes   -> 10

USAGE:
  policy, scope, err := factory.ParseRolePolicy(jsonBytes)
  policy.Monthly = monthlyClient
  policy.Daily = dailyClient
  policy.Scope = scope.Check()
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/roles"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

type RolePolicyJSON struct {
	Role              string     `json:"role"`
	ThrottleMinutes   int        `json:"throttle_minutes"`
	ConsolidationHour *int       `json:"consolidation_hour"`
	SchoolDays        []string   `json:"school_days"`
	Hours             HoursJSON  `json:"hours"`
	Live              LiveJSON   `json:"live"`
	ScopeEntities     []string   `json:"scope_entities"`
	ScopeAll          bool       `json:"scope_all"`
}

type HoursJSON struct {
	Start             string `json:"start"` // "HH:MM"
	End               string `json:"end"`
	EntryGraceMinutes int    `json:"entry_grace_minutes"`
	ExitGraceMinutes  int    `json:"exit_grace_minutes"`
	TracksExit        bool   `json:"tracks_exit"`
}

type LiveJSON struct {
	Level   string `json:"level"`
	Grade   string `json:"grade"`
	Section string `json:"section"`
}

// =============================================================================
// PARSING
// =============================================================================

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseRolePolicy converts a JSON role definition into an engine.RolePolicy
// plus the entity scope it declared. Gateways and the scope check are wired
// by the caller.
func ParseRolePolicy(data []byte) (engine.RolePolicy, roles.Scope, error) {
	var raw RolePolicyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return engine.RolePolicy{}, roles.Scope{}, fmt.Errorf("parse role policy: %w", err)
	}
	if raw.Role == "" {
		return engine.RolePolicy{}, roles.Scope{}, fmt.Errorf("parse role policy: missing role name")
	}

	week, err := parseWeek(raw)
	if err != nil {
		return engine.RolePolicy{}, roles.Scope{}, err
	}
	hours, err := parseHours(raw.Hours)
	if err != nil {
		return engine.RolePolicy{}, roles.Scope{}, err
	}

	interval := time.Duration(raw.ThrottleMinutes) * time.Minute
	if interval == 0 {
		interval = 10 * time.Minute
	}

	scope := roles.Scope{AllowAll: raw.ScopeAll, Entities: make(map[engine.EntityID]bool, len(raw.ScopeEntities))}
	for _, id := range raw.ScopeEntities {
		scope.Entities[engine.EntityID(id)] = true
	}

	policy := engine.RolePolicy{
		Role:             raw.Role,
		ThrottleInterval: interval,
		Week:             week,
		Hours:            hours,
		Live: engine.LiveQuery{
			Level:    raw.Live.Level,
			Grade:    raw.Live.Grade,
			Section:  raw.Live.Section,
			ActorTag: raw.Role,
		},
	}
	return policy, scope, nil
}

func parseWeek(raw RolePolicyJSON) (engine.SchoolWeek, error) {
	week := engine.DefaultSchoolWeek()
	if raw.ConsolidationHour != nil {
		h := *raw.ConsolidationHour
		if h < 0 || h > 23 {
			return engine.SchoolWeek{}, fmt.Errorf("parse role policy: consolidation_hour %d out of range", h)
		}
		week.ConsolidationHour = h
	}
	if len(raw.SchoolDays) > 0 {
		week.Days = [7]bool{}
		for _, name := range raw.SchoolDays {
			d, ok := weekdayNames[strings.ToLower(name)]
			if !ok {
				return engine.SchoolWeek{}, fmt.Errorf("parse role policy: unknown school day %q", name)
			}
			week.Days[d] = true
		}
	}
	return week, nil
}

func parseHours(raw HoursJSON) (engine.SchoolingHours, error) {
	start, err := parseTimeOfDay(raw.Start)
	if err != nil {
		return engine.SchoolingHours{}, fmt.Errorf("parse role policy: hours.start: %w", err)
	}
	end, err := parseTimeOfDay(raw.End)
	if err != nil {
		return engine.SchoolingHours{}, fmt.Errorf("parse role policy: hours.end: %w", err)
	}
	return engine.SchoolingHours{
		Start:      start,
		End:        end,
		EntryGrace: time.Duration(raw.EntryGraceMinutes) * time.Minute,
		ExitGrace:  time.Duration(raw.ExitGraceMinutes) * time.Minute,
		TracksExit: raw.TracksExit,
	}, nil
}

func parseTimeOfDay(s string) (engine.TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return engine.TimeOfDay{}, fmt.Errorf("want HH:MM, got %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return engine.TimeOfDay{}, fmt.Errorf("out of range: %q", s)
	}
	return engine.TimeOfDay{Hour: h, Minute: m}, nil
}
