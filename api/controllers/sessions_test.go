package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testutils "github.com/z3r0n3br4instorm/duothan-onboarding/api/controllers/testing"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
)

const fullBudgetMs = int64(12 * 60 * 60 * 1000)

func startSession(t *testing.T, env *testEnv, req models.StartSessionRequest, wantStatus int) models.SessionResponse {
	t.Helper()
	res := testutils.PerformRequest(env.router, http.MethodPost, "/session", req, nil)
	require.Equal(t, wantStatus, res.Code, "Unexpected status from POST /session: %s", res.Body.String())

	var response models.SessionResponse
	if wantStatus == http.StatusOK {
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
	}
	return response
}

func TestStartSession(t *testing.T) {
	t.Run("Happy path - pending session has no start time and the full budget", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("code00001")

		response := startSession(t, env, models.StartSessionRequest{TeamCode: "code00001"}, http.StatusOK)

		assert.True(t, response.Success)
		assert.Nil(t, response.Session.StartTime, "Clock must not start before a question is chosen")
		assert.Nil(t, response.Session.QuestionType)
		assert.False(t, response.Session.IsCompleted)
		assert.Equal(t, fullBudgetMs, response.Session.RemainingTimeMs)
	})

	t.Run("Happy path - repeated start returns the same session", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("code00002")

		startSession(t, env, models.StartSessionRequest{TeamCode: "code00002"}, http.StatusOK)
		env.clock.Advance(2 * time.Hour)
		startSession(t, env, models.StartSessionRequest{TeamCode: "code00002"}, http.StatusOK)

		assert.Len(t, env.sessions.Items, 1, "A second start must not create a second row")
	})

	t.Run("Happy path - starting with a question starts the clock", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("code00003")

		response := startSession(t, env, models.StartSessionRequest{TeamCode: "code00003", QuestionType: intPtr(0)}, http.StatusOK)

		require.NotNil(t, response.Session.StartTime)
		require.NotNil(t, response.Session.QuestionType)
		assert.Equal(t, 0, *response.Session.QuestionType)
		assert.Equal(t, fullBudgetMs, response.Session.RemainingTimeMs)
	})

	t.Run("Unhappy path - unknown team code", func(t *testing.T) {
		env := setupTestEnv(t)

		startSession(t, env, models.StartSessionRequest{TeamCode: "neverseen"}, http.StatusNotFound)
	})

	t.Run("Unhappy path - invalid question type", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("code00004")

		startSession(t, env, models.StartSessionRequest{TeamCode: "code00004", QuestionType: intPtr(7)}, http.StatusBadRequest)
	})
}

func TestSessionBudget(t *testing.T) {
	env := setupTestEnv(t)
	env.seedTeamCode("budget001")

	startSession(t, env, models.StartSessionRequest{TeamCode: "budget001", QuestionType: intPtr(1)}, http.StatusOK)

	t.Run("Happy path - remaining budget shrinks with the clock", func(t *testing.T) {
		env.clock.Advance(3 * time.Hour)
		response := startSession(t, env, models.StartSessionRequest{TeamCode: "budget001"}, http.StatusOK)
		assert.Equal(t, int64(9*60*60*1000), response.Session.RemainingTimeMs)

		env.clock.Advance(5 * time.Hour)
		response = startSession(t, env, models.StartSessionRequest{TeamCode: "budget001"}, http.StatusOK)
		assert.Equal(t, int64(4*60*60*1000), response.Session.RemainingTimeMs)
	})

	t.Run("Happy path - remaining budget bottoms out at zero", func(t *testing.T) {
		// 8h elapsed so far; push just past the 12h mark. The session is
		// now stale, so a fresh pending row comes back instead.
		env.clock.Advance(4*time.Hour + time.Minute)
		response := startSession(t, env, models.StartSessionRequest{TeamCode: "budget001"}, http.StatusOK)

		assert.Nil(t, response.Session.StartTime, "Stale session should be replaced by a pending one")
		assert.Equal(t, fullBudgetMs, response.Session.RemainingTimeMs)
		assert.Len(t, env.sessions.Items, 1)
	})
}

func TestStartSessionReplacesStaleOrForced(t *testing.T) {
	t.Run("Happy path - pending sessions never go stale", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("pending01")

		startSession(t, env, models.StartSessionRequest{TeamCode: "pending01"}, http.StatusOK)
		env.clock.Advance(20 * time.Hour)
		response := startSession(t, env, models.StartSessionRequest{TeamCode: "pending01"}, http.StatusOK)

		assert.Nil(t, response.Session.StartTime)
		assert.Len(t, env.sessions.Items, 1)
	})

	t.Run("Happy path - force restart discards the active session", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("forced001")

		startSession(t, env, models.StartSessionRequest{TeamCode: "forced001", QuestionType: intPtr(2)}, http.StatusOK)
		env.clock.Advance(time.Hour)
		response := startSession(t, env, models.StartSessionRequest{TeamCode: "forced001", ForceRestart: true}, http.StatusOK)

		assert.Nil(t, response.Session.StartTime, "Restarted session should be pending again")
		assert.Nil(t, response.Session.QuestionType)
		assert.Equal(t, fullBudgetMs, response.Session.RemainingTimeMs)
		assert.Len(t, env.sessions.Items, 1)
	})

	t.Run("Unhappy path - completed session cannot be restarted via plain start", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("donecode1")

		startSession(t, env, models.StartSessionRequest{TeamCode: "donecode1", QuestionType: intPtr(0)}, http.StatusOK)
		res := testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "donecode1", IsCompleted: boolPtr(true)}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		startSession(t, env, models.StartSessionRequest{TeamCode: "donecode1"}, http.StatusConflict)
	})
}

func TestUpdateSession(t *testing.T) {
	t.Run("Happy path - choosing a question starts the clock exactly once", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("update001")

		startSession(t, env, models.StartSessionRequest{TeamCode: "update001"}, http.StatusOK)

		res := testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "update001", QuestionType: intPtr(1)}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var first models.SessionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &first))
		require.NotNil(t, first.Session.StartTime)

		// Switching the question later must not reset the clock.
		env.clock.Advance(time.Hour)
		res = testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "update001", QuestionType: intPtr(2)}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var second models.SessionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &second))
		require.NotNil(t, second.Session.StartTime)
		assert.Equal(t, *first.Session.StartTime, *second.Session.StartTime)
		assert.Equal(t, 2, *second.Session.QuestionType)
	})

	t.Run("Happy path - completion is idempotent and keeps the first end time", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("update002")

		startSession(t, env, models.StartSessionRequest{TeamCode: "update002", QuestionType: intPtr(0)}, http.StatusOK)

		res := testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "update002", IsCompleted: boolPtr(true)}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var first models.SessionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &first))
		require.NotNil(t, first.Session.EndTime)
		assert.True(t, first.Session.IsCompleted)

		env.clock.Advance(30 * time.Minute)
		res = testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "update002", IsCompleted: boolPtr(true)}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var second models.SessionResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &second))
		require.NotNil(t, second.Session.EndTime)
		assert.Equal(t, *first.Session.EndTime, *second.Session.EndTime, "Replay must not move the end time")
	})

	t.Run("Unhappy path - completed session rejects a question change", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("update003")

		startSession(t, env, models.StartSessionRequest{TeamCode: "update003", QuestionType: intPtr(1)}, http.StatusOK)
		res := testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "update003", IsCompleted: boolPtr(true)}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "update003", QuestionType: intPtr(2)}, nil)
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("Unhappy path - update without a session", func(t *testing.T) {
		env := setupTestEnv(t)

		res := testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "nosession", QuestionType: intPtr(0)}, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - update with nothing to change", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("update004")
		startSession(t, env, models.StartSessionRequest{TeamCode: "update004"}, http.StatusOK)

		res := testutils.PerformRequest(env.router, http.MethodPut, "/session",
			models.UpdateSessionRequest{TeamCode: "update004"}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestCompleteSessionWithSubmission(t *testing.T) {
	t.Run("Happy path - one request stores the submission and completes the session", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("patch0001")

		startSession(t, env, models.StartSessionRequest{TeamCode: "patch0001", QuestionType: intPtr(1)}, http.StatusOK)
		env.clock.Advance(4 * time.Hour)

		res := testutils.PerformRequest(env.router, http.MethodPatch, "/session", models.CompleteSessionRequest{
			TeamCode: "patch0001",
			Submission: &models.SubmissionPayload{
				Explanation: "solved with a variational circuit",
				Files:       []models.FilePayload{{Name: "solution.ipynb", Type: "application/x-ipynb+json", Size: 42, Content: "e30="}},
			},
		}, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		submission := env.submissions.Items["patch0001"]
		require.NotNil(t, submission)
		assert.Equal(t, 1, submission.QuestionType, "Question type should be inherited from the session")
		assert.Equal(t, []string{"solution.ipynb"}, submission.FileNames)

		session := env.sessions.Items["patch0001"]
		require.NotNil(t, session)
		assert.True(t, session.IsCompleted)
		require.NotNil(t, session.EndTime)
		assert.Equal(t, env.clock.Now().UTC(), *session.EndTime)
	})

	t.Run("Unhappy path - second completion conflicts and leaves one submission", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("patch0002")

		startSession(t, env, models.StartSessionRequest{TeamCode: "patch0002", QuestionType: intPtr(0)}, http.StatusOK)

		body := models.CompleteSessionRequest{
			TeamCode:   "patch0002",
			Submission: &models.SubmissionPayload{Explanation: "first"},
		}
		res := testutils.PerformRequest(env.router, http.MethodPatch, "/session", body, nil)
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(env.router, http.MethodPatch, "/session", body, nil)
		assert.Equal(t, http.StatusConflict, res.Code)
		assert.Len(t, env.submissions.Items, 1)
	})

	t.Run("Unhappy path - no question type anywhere", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("patch0003")

		startSession(t, env, models.StartSessionRequest{TeamCode: "patch0003"}, http.StatusOK)

		res := testutils.PerformRequest(env.router, http.MethodPatch, "/session", models.CompleteSessionRequest{
			TeamCode:   "patch0003",
			Submission: &models.SubmissionPayload{Explanation: "no question chosen"},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - completion without a session", func(t *testing.T) {
		env := setupTestEnv(t)

		res := testutils.PerformRequest(env.router, http.MethodPatch, "/session", models.CompleteSessionRequest{
			TeamCode:   "ghostcode",
			Submission: &models.SubmissionPayload{},
		}, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestListChallenges(t *testing.T) {
	env := setupTestEnv(t)

	res := testutils.PerformRequest(env.router, http.MethodGet, "/challenges", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var challenges []models.ChallengeEntry
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &challenges))
	require.Len(t, challenges, len(models.Challenges))
	assert.Equal(t, 0, challenges[0].ID)
	assert.Equal(t, "Basic Quantum Computing", challenges[0].Title)
}
