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

var adminHeaders = map[string]string{"x-admin-token": "secret"}

func TestAdminAuth(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("Unhappy path - missing token", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/teams", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - wrong token", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/codes", nil,
			map[string]string{"x-admin-token": "guess"})
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestAdminListTeams(t *testing.T) {
	env := setupTestEnv(t)

	first := testutils.PerformRequest(env.router, http.MethodPost, "/team-code", validTeamPayload("Early Birds", "early@example.com"), nil)
	require.Equal(t, http.StatusCreated, first.Code)
	// Registration uses the wall clock for RegistrationDate, so space the
	// rows out before asserting ordering.
	env.teams.Items["early birds"].RegistrationDate = time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)

	second := testutils.PerformRequest(env.router, http.MethodPost, "/team-code", validTeamPayload("Late Risers", "late@example.com"), nil)
	require.Equal(t, http.StatusCreated, second.Code)
	env.teams.Items["late risers"].RegistrationDate = time.Date(2025, 7, 11, 9, 0, 0, 0, time.UTC)

	res := testutils.PerformRequest(env.router, http.MethodGet, "/teams", nil, adminHeaders)
	require.Equal(t, http.StatusOK, res.Code)

	var response models.TeamListResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.Equal(t, 2, response.Count)
	assert.Equal(t, "Late Risers", response.Teams[0].TeamName, "Newest registration comes first")
	assert.Equal(t, "Early Birds", response.Teams[1].TeamName)
	assert.Equal(t, []string{"Amara Silva", "Nuwan Perera"}, response.Teams[0].MemberNames)
	assert.NotContains(t, res.Body.String(), "amara@example.com", "Listing must not leak member e-mails")
}

func TestAdminListCodes(t *testing.T) {
	env := setupTestEnv(t)
	env.seedTeamCode("admincode")

	res := testutils.PerformRequest(env.router, http.MethodGet, "/codes", nil, adminHeaders)
	require.Equal(t, http.StatusOK, res.Code)

	var codes []models.TeamCodeEntry
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &codes))
	require.Len(t, codes, 1)
	assert.Equal(t, "admincode", codes[0].Code)
	assert.True(t, codes[0].IsRegistered)
	require.NotNil(t, codes[0].TeamID)
	assert.Equal(t, "team-admincode", *codes[0].TeamID)
}
