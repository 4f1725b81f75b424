package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nflpredict/prediction-service/internal/agents"
	"github.com/nflpredict/prediction-service/internal/models"
	"github.com/nflpredict/prediction-service/internal/services"
	"github.com/nflpredict/prediction-service/pkg/utils"
)

type PredictionHandler struct {
	predictor *services.PredictionService
	refresher *services.AgentRefresherService
}

func NewPredictionHandler(predictor *services.PredictionService, refresher *services.AgentRefresherService) *PredictionHandler {
	return &PredictionHandler{predictor: predictor, refresher: refresher}
}

// Predict runs the full four-agent pipeline for one matchup.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var matchup models.Matchup
	if err := c.ShouldBindJSON(&matchup); err != nil {
		utils.SendValidationError(c, "Invalid matchup payload", err.Error())
		return
	}

	result, err := h.predictor.Predict(c.Request.Context(), matchup)
	if err != nil {
		if errors.Is(err, agents.ErrInvalidMatchup) {
			utils.SendValidationError(c, "Invalid matchup", err.Error())
			return
		}
		utils.SendInternalError(c, "Prediction failed")
		return
	}

	utils.SendSuccess(c, result)
}

// PredictWithAgent runs a single named agent, bypassing consensus.
func (h *PredictionHandler) PredictWithAgent(c *gin.Context) {
	agentKey := c.Param("agent")

	var matchup models.Matchup
	if err := c.ShouldBindJSON(&matchup); err != nil {
		utils.SendValidationError(c, "Invalid matchup payload", err.Error())
		return
	}

	verdict, err := h.predictor.PredictWith(c.Request.Context(), agentKey, matchup)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownAgent):
			utils.SendNotFound(c, "Unknown agent: "+agentKey)
		case errors.Is(err, agents.ErrInvalidMatchup):
			utils.SendValidationError(c, "Invalid matchup", err.Error())
		default:
			utils.SendInternalError(c, "Prediction failed")
		}
		return
	}

	utils.SendSuccess(c, verdict)
}

// Compare shows every agent's verdict side by side without a consensus.
func (h *PredictionHandler) Compare(c *gin.Context) {
	var matchup models.Matchup
	if err := c.ShouldBindJSON(&matchup); err != nil {
		utils.SendValidationError(c, "Invalid matchup payload", err.Error())
		return
	}

	comparison, err := h.predictor.Compare(c.Request.Context(), matchup)
	if err != nil {
		if errors.Is(err, agents.ErrInvalidMatchup) {
			utils.SendValidationError(c, "Invalid matchup", err.Error())
			return
		}
		utils.SendInternalError(c, "Comparison failed")
		return
	}

	utils.SendSuccess(c, comparison)
}

// AgentStatus reports each agent's operational snapshot.
func (h *PredictionHandler) AgentStatus(c *gin.Context) {
	utils.SendSuccess(c, gin.H{
		"agents":    h.predictor.AgentStatuses(),
		"scheduler": h.refresher.GetRefreshStatus(),
	})
}

// RefreshAgents forces an off-schedule refresh of every agent.
func (h *PredictionHandler) RefreshAgents(c *gin.Context) {
	h.refresher.RefreshNow(c.Request.Context())
	utils.SendSuccess(c, gin.H{
		"message": "All agents refreshed",
		"agents":  h.predictor.AgentStatuses(),
	})
}
