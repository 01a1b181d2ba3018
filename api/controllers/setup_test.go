package controllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	testutils "github.com/z3r0n3br4instorm/duothan-onboarding/api/controllers/testing"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

// fakeClock drives the session/submission controllers in tests so the
// 12-hour budget can be fast-forwarded.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type testEnv struct {
	codes       *testutils.FakeTeamCodeStorage
	teams       *testutils.FakeTeamStorage
	sessions    *testutils.FakeSessionStorage
	submissions *testutils.FakeSubmissionStorage
	clock       *fakeClock
	router      *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	env := &testEnv{
		codes:       testutils.NewFakeTeamCodeStorage(),
		teams:       testutils.NewFakeTeamStorage(),
		sessions:    testutils.NewFakeSessionStorage(),
		submissions: testutils.NewFakeSubmissionStorage(),
		clock:       &fakeClock{now: time.Date(2025, 7, 12, 9, 0, 0, 0, time.UTC)},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()

	registrationController := NewRegistrationController(env.codes, env.teams)
	registrationController.RegisterRoutes(r)

	sessionController := NewSessionController(env.codes, env.sessions, env.submissions)
	sessionController.now = env.clock.Now
	sessionController.RegisterRoutes(r)

	submissionController := NewSubmissionController(env.sessions, env.submissions)
	submissionController.now = env.clock.Now
	submissionController.RegisterRoutes(r)

	adminController := NewAdminController(env.teams, env.codes)
	adminController.RegisterRoutes(r)

	env.router = r
	return env
}

// seedTeamCode plants a registered team code without going through the
// registration endpoint.
func (e *testEnv) seedTeamCode(code string) {
	teamID := "team-" + code
	e.codes.Items[code] = &storage.TeamCode{
		Code:         code,
		IsRegistered: true,
		TeamID:       &teamID,
		CreatedAt:    e.clock.Now(),
	}
}

func validTeamPayload(name, email string) models.RegisterTeamRequest {
	return models.RegisterTeamRequest{
		TeamData: models.TeamDataPayload{
			TeamName:      name,
			TeamEmail:     email,
			ContactNumber: "+94771234567",
			University:    "University of Moratuwa",
			Members: []models.TeamMemberPayload{
				{FullName: "Amara Silva", Email: "amara@example.com", Gender: "female", FoodPreference: "vegetarian"},
				{FullName: "Nuwan Perera", Email: "nuwan@example.com", Gender: "male", FoodPreference: "non-vegetarian"},
			},
		},
	}
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
