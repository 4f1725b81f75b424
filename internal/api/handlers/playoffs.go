package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nflpredict/prediction-service/internal/models"
	"github.com/nflpredict/prediction-service/internal/services"
	"github.com/nflpredict/prediction-service/internal/simulator"
	"github.com/nflpredict/prediction-service/pkg/utils"
)

type PlayoffHandler struct {
	store      *services.ScheduleStore
	simulation *services.SimulationService
}

func NewPlayoffHandler(store *services.ScheduleStore, simulation *services.SimulationService) *PlayoffHandler {
	return &PlayoffHandler{store: store, simulation: simulation}
}

// simulateRequest distinguishes an omitted count (nil, use the default)
// from an explicit zero, which is invalid.
type simulateRequest struct {
	NumSimulations *int `json:"num_simulations"`
}

// GetBracket returns a season's playoff games grouped by round.
func (h *PlayoffHandler) GetBracket(c *gin.Context) {
	season, ok := parseSeason(c)
	if !ok {
		return
	}

	games, err := h.store.GetPlayoffGamesBySeason(season)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch playoff bracket")
		return
	}
	if len(games) == 0 {
		utils.SendNotFound(c, "No playoff games found for season "+strconv.Itoa(season))
		return
	}

	rounds := make(map[string][]models.PlayoffGame)
	for _, game := range games {
		rounds[game.Round] = append(rounds[game.Round], game)
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"rounds": rounds,
		"count":  len(games),
	})
}

// GetRound returns the games of one playoff round.
func (h *PlayoffHandler) GetRound(c *gin.Context) {
	season, ok := parseSeason(c)
	if !ok {
		return
	}
	round := c.Param("round")

	games, err := h.store.GetPlayoffGamesByRound(season, round)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch playoff round")
		return
	}
	if len(games) == 0 {
		utils.SendNotFound(c, "No games found for round: "+round)
		return
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"round":  round,
		"games":  games,
		"count":  len(games),
	})
}

// Simulate runs the season's bracket through the Monte Carlo simulator.
// The trial count comes from the body; only an omitted field defaults.
func (h *PlayoffHandler) Simulate(c *gin.Context) {
	season, ok := parseSeason(c)
	if !ok {
		return
	}

	var req simulateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendValidationError(c, "Invalid simulation request", err.Error())
			return
		}
	}

	outcome, err := h.simulation.Simulate(c.Request.Context(), season, req.NumSimulations)
	if err != nil {
		switch {
		case errors.Is(err, simulator.ErrInvalidTrials):
			utils.SendValidationError(c, "Invalid simulation count", err.Error())
		case errors.Is(err, simulator.ErrNoGames):
			utils.SendNotFound(c, "No playoff games found for season "+strconv.Itoa(season))
		default:
			utils.SendInternalError(c, "Simulation failed")
		}
		return
	}

	utils.SendSuccess(c, outcome)
}

func parseSeason(c *gin.Context) (int, bool) {
	season, err := strconv.Atoi(c.Param("season"))
	if err != nil || season < 1990 || season > 2100 {
		utils.SendValidationError(c, "Invalid season", "season must be a year")
		return 0, false
	}
	return season, true
}
