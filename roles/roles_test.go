package roles_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/roles"
)

func TestScope(t *testing.T) {
	scope := roles.AllowEntities("stu-1", "stu-2")
	check := scope.Check()

	assert.True(t, check("stu-1"))
	assert.False(t, check("stu-3"))

	all := roles.Scope{AllowAll: true}
	assert.True(t, all.Check()("anyone"))

	var zero roles.Scope
	assert.False(t, zero.Check()("stu-1"), "zero scope must deny everything")
}

func TestRolePresets(t *testing.T) {
	gw := roles.Gateways{}
	week := engine.DefaultSchoolWeek()
	hours := roles.PrimaryHours()
	live := engine.LiveQuery{Level: "primary", Grade: "3", Section: "B"}

	director := roles.DirectorPolicy(gw, week, hours, live)
	assert.Equal(t, "director", director.Role)
	assert.Equal(t, 5*time.Minute, director.ThrottleInterval)
	assert.Nil(t, director.Scope, "director sees the whole school")
	assert.Equal(t, "director", director.Live.ActorTag)

	tutor := roles.TutorPolicy(gw, week, hours, live, roles.AllowEntities("stu-1"))
	assert.Equal(t, 10*time.Minute, tutor.ThrottleInterval)
	assert.True(t, tutor.Scope("stu-1"))
	assert.False(t, tutor.Scope("stu-9"), "tutor is pre-scoped to one classroom")

	guardian := roles.GuardianPolicy(gw, week, hours, live, roles.AllowEntities("child-1"))
	assert.Equal(t, 15*time.Minute, guardian.ThrottleInterval)
	assert.Equal(t, "guardian", guardian.Live.ActorTag)
}

func TestLevelWindows(t *testing.T) {
	// 06:55 is inside the secondary window (07:00 start minus 30m grace
	// opens 06:30) but outside primary (07:30 minus 30m opens 07:00).
	at := time.Date(2026, time.June, 9, 6, 55, 0, 0, time.UTC)
	assert.True(t, roles.SecondaryHours().InExtendedWindow(at))
	assert.False(t, roles.PrimaryHours().InExtendedWindow(at))

	assert.False(t, roles.SecondaryHours().TracksExit)
	assert.True(t, roles.PrimaryHours().TracksExit)
}
