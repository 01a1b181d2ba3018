package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testutils "github.com/z3r0n3br4instorm/duothan-onboarding/api/controllers/testing"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
)

func TestHealthCheck(t *testing.T) {
	logging.Log = logrus.New()

	t.Run("Happy path - storage reachable", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		NewHealthController(&testutils.FakeHealthStorage{Latency: 25 * time.Millisecond}).RegisterRoutes(r)

		res := testutils.PerformRequest(r, http.MethodGet, "/health", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, float64(25), body["latencyMs"])
	})

	t.Run("Unhappy path - storage unreachable", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		NewHealthController(&testutils.FakeHealthStorage{Err: errors.New("connection refused")}).RegisterRoutes(r)

		res := testutils.PerformRequest(r, http.MethodGet, "/health", nil, nil)
		require.Equal(t, http.StatusServiceUnavailable, res.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		assert.Equal(t, "unhealthy", body["status"])
	})
}
