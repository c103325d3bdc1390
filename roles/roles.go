/*
Package roles provides ready-to-use role policies for the attendance engine.

PURPOSE:
  The engine is one parameterized orchestrator; the four actor roles of the
  attendance system are RolePolicy presets built here. Each preset fixes the
  role's visibility scope, throttle interval and live-endpoint addressing,
  and receives the concrete gateway variants the deployment wires in.

ROLES:
  Director:  whole-school visibility, arbitrary classroom parameter,
             shortest throttle (the dashboard refreshes often).
  Auxiliary: one education level, same cadence as the director.
  Tutor:     pre-scoped to one classroom.
  Guardian:  pre-scoped to the guardian's own children, longest throttle.

CUSTOMIZATION:
  These are starting points; deployments that need other intervals or
  school weeks go through factory.ParseRolePolicy with a JSON config.

SEE ALSO:
  - levels.go: per-education-level schooling windows
  - factory/policy.go: JSON-based role configuration
*/
package roles

import (
	"time"

	"github.com/warp/attendance-engine/engine"
)

// Default throttle intervals per role. Administrative dashboards poll more
// aggressively than guardian devices.
const (
	DirectorInterval  = 5 * time.Minute
	AuxiliaryInterval = 5 * time.Minute
	TutorInterval     = 10 * time.Minute
	GuardianInterval  = 15 * time.Minute
)

// Scope is an explicit entity allow-list. AllowAll bypasses the list
// (director). The zero value denies everything.
type Scope struct {
	AllowAll bool
	Entities map[engine.EntityID]bool
}

// AllowEntities builds a scope over a fixed entity set.
func AllowEntities(ids ...engine.EntityID) Scope {
	s := Scope{Entities: make(map[engine.EntityID]bool, len(ids))}
	for _, id := range ids {
		s.Entities[id] = true
	}
	return s
}

// Check returns the scope as an engine.ScopeCheck.
func (s Scope) Check() engine.ScopeCheck {
	return func(id engine.EntityID) bool {
		return s.AllowAll || s.Entities[id]
	}
}

// Gateways bundles the concrete remote variants a role talks to.
type Gateways struct {
	Monthly engine.MonthlyGateway
	Daily   engine.DailyGateway
}

// DirectorPolicy sees the whole school; any entity is in scope.
func DirectorPolicy(gw Gateways, week engine.SchoolWeek, hours engine.SchoolingHours, live engine.LiveQuery) engine.RolePolicy {
	live.ActorTag = "director"
	return engine.RolePolicy{
		Role:             "director",
		ThrottleInterval: DirectorInterval,
		Week:             week,
		Hours:            hours,
		Monthly:          gw.Monthly,
		Daily:            gw.Daily,
		Live:             live,
		Scope:            nil,
	}
}

// AuxiliaryPolicy is scoped to one education level's entities.
func AuxiliaryPolicy(gw Gateways, week engine.SchoolWeek, hours engine.SchoolingHours, live engine.LiveQuery, scope Scope) engine.RolePolicy {
	live.ActorTag = "auxiliary"
	return engine.RolePolicy{
		Role:             "auxiliary",
		ThrottleInterval: AuxiliaryInterval,
		Week:             week,
		Hours:            hours,
		Monthly:          gw.Monthly,
		Daily:            gw.Daily,
		Live:             live,
		Scope:            scope.Check(),
	}
}

// TutorPolicy is pre-scoped to the tutor's own classroom.
func TutorPolicy(gw Gateways, week engine.SchoolWeek, hours engine.SchoolingHours, live engine.LiveQuery, classroom Scope) engine.RolePolicy {
	live.ActorTag = "tutor"
	return engine.RolePolicy{
		Role:             "tutor",
		ThrottleInterval: TutorInterval,
		Week:             week,
		Hours:            hours,
		Monthly:          gw.Monthly,
		Daily:            gw.Daily,
		Live:             live,
		Scope:            classroom.Check(),
	}
}

// GuardianPolicy is pre-scoped to the guardian's children.
func GuardianPolicy(gw Gateways, week engine.SchoolWeek, hours engine.SchoolingHours, live engine.LiveQuery, children Scope) engine.RolePolicy {
	live.ActorTag = "guardian"
	return engine.RolePolicy{
		Role:             "guardian",
		ThrottleInterval: GuardianInterval,
		Week:             week,
		Hours:            hours,
		Monthly:          gw.Monthly,
		Daily:            gw.Daily,
		Live:             live,
		Scope:            children.Check(),
	}
}
