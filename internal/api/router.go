package api

import (
	"github.com/gin-gonic/gin"

	"github.com/nflpredict/prediction-service/internal/api/handlers"
	"github.com/nflpredict/prediction-service/internal/services"
)

// SetupRoutes registers every API endpoint on the given group.
func SetupRoutes(
	group *gin.RouterGroup,
	predictor *services.PredictionService,
	refresher *services.AgentRefresherService,
	store *services.ScheduleStore,
	simulation *services.SimulationService,
	cache *services.CacheService,
) {
	predictionHandler := handlers.NewPredictionHandler(predictor, refresher)
	gameHandler := handlers.NewGameHandler(store)
	playoffHandler := handlers.NewPlayoffHandler(store, simulation)
	healthHandler := handlers.NewHealthHandler(predictor, cache)

	group.GET("/health", healthHandler.GetHealth)

	group.POST("/predict", predictionHandler.Predict)

	group.GET("/games/upcoming", gameHandler.GetUpcomingGames)
	group.GET("/games/week/:week", gameHandler.GetGamesByWeek)

	group.GET("/playoffs/:season", playoffHandler.GetBracket)
	group.GET("/playoffs/:season/round/:round", playoffHandler.GetRound)
	group.POST("/playoffs/:season/simulate", playoffHandler.Simulate)

	group.GET("/agents/status", predictionHandler.AgentStatus)
	group.POST("/agents/refresh", predictionHandler.RefreshAgents)
	group.POST("/agents/:agent/predict", predictionHandler.PredictWithAgent)
	group.POST("/agents/compare", predictionHandler.Compare)
}
