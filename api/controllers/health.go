package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

type HealthController struct {
	healthStorage storage.HealthStorage
}

func NewHealthController(healthStorage storage.HealthStorage) *HealthController {
	return &HealthController{healthStorage: healthStorage}
}

func (c *HealthController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", c.checkHealth)
}

// checkHealth godoc
// @Summary Storage connectivity probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{} "Storage unreachable"
// @Router /health [get]
func (c *HealthController) checkHealth(g *gin.Context) {
	latency, err := c.healthStorage.Ping(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("HEALTH: storage unreachable: %v", err)
		g.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     "storage unreachable",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	g.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"latencyMs": latency.Milliseconds(),
		"timestamp": time.Now().UTC(),
	})
}
