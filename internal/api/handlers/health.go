package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nflpredict/prediction-service/internal/services"
	"github.com/nflpredict/prediction-service/pkg/utils"
)

type HealthHandler struct {
	predictor *services.PredictionService
	cache     *services.CacheService
	started   time.Time
}

func NewHealthHandler(predictor *services.PredictionService, cache *services.CacheService) *HealthHandler {
	return &HealthHandler{
		predictor: predictor,
		cache:     cache,
		started:   time.Now(),
	}
}

// GetHealth reports service liveness plus agent and cache health.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	statuses := h.predictor.AgentStatuses()
	agentStates := make(map[string]string, len(statuses))
	for _, status := range statuses {
		agentStates[status.AgentName] = status.Status
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
			cacheStatus = "unreachable"
		}
	}

	utils.SendSuccess(c, gin.H{
		"status":    "ok",
		"service":   "nfl-prediction-service",
		"uptime":    time.Since(h.started).String(),
		"agents":    agentStates,
		"cache":     cacheStatus,
		"timestamp": time.Now().UTC(),
	})
}
