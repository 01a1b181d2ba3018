package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testutils "github.com/z3r0n3br4instorm/duothan-onboarding/api/controllers/testing"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

func TestStorageFailureTranslation(t *testing.T) {
	t.Run("Unhappy path - connectivity failure answers 503", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("failcode1")
		env.codes.Err = fmt.Errorf("%w: dial tcp: connection refused", storage.ErrStoreUnavailable)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/session",
			models.StartSessionRequest{TeamCode: "failcode1"}, nil)

		require.Equal(t, http.StatusServiceUnavailable, res.Code, "Retryable failures must be distinguishable from bugs")

		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
		assert.Equal(t, "storage temporarily unavailable", response.Error)
	})

	t.Run("Unhappy path - any other failure answers 500", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seedTeamCode("failcode2")
		env.codes.Err = errors.New("unmarshal failed")

		res := testutils.PerformRequest(env.router, http.MethodPost, "/session",
			models.StartSessionRequest{TeamCode: "failcode2"}, nil)

		require.Equal(t, http.StatusInternalServerError, res.Code)

		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &response))
		assert.Equal(t, "unexpected internal error", response.Error)
	})

	t.Run("Unhappy path - submission write hits an unavailable store", func(t *testing.T) {
		env := setupTestEnv(t)
		env.submissions.Err = fmt.Errorf("%w: request timed out", storage.ErrStoreUnavailable)

		res := testutils.PerformRequest(env.router, http.MethodPost, "/submission", models.CreateSubmissionRequest{
			TeamCode:     "failcode3",
			QuestionType: intPtr(0),
			Explanation:  "never lands",
		}, nil)

		assert.Equal(t, http.StatusServiceUnavailable, res.Code)
		assert.Empty(t, env.submissions.Items)
	})
}
