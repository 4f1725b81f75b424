package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nflpredict/prediction-service/internal/services"
	"github.com/nflpredict/prediction-service/pkg/utils"
)

type GameHandler struct {
	store *services.ScheduleStore
}

func NewGameHandler(store *services.ScheduleStore) *GameHandler {
	return &GameHandler{store: store}
}

// GetUpcomingGames lists scheduled games from now forward.
func (h *GameHandler) GetUpcomingGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	games, err := h.store.GetUpcomingGames(limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch upcoming games")
		return
	}

	utils.SendSuccess(c, gin.H{
		"games": games,
		"count": len(games),
	})
}

// GetGamesByWeek lists one week of the schedule. Season defaults to the
// current calendar year.
func (h *GameHandler) GetGamesByWeek(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 || week > 22 {
		utils.SendValidationError(c, "Invalid week", "week must be between 1 and 22")
		return
	}

	season, err := strconv.Atoi(c.DefaultQuery("season", strconv.Itoa(time.Now().Year())))
	if err != nil {
		utils.SendValidationError(c, "Invalid season", "season must be a year")
		return
	}

	games, err := h.store.GetGamesByWeek(season, week)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch games")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season": season,
		"week":   week,
		"games":  games,
		"count":  len(games),
	})
}
