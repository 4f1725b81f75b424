package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nflpredict/prediction-service/internal/models"
)

func newTestStore(t *testing.T) *ScheduleStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store := NewScheduleStore(db, testLogger())
	require.NoError(t, store.AutoMigrate())
	return store
}

func seedPtr(n int) *int { return &n }

func TestScheduleStoreGameLookup(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SeedGames([]models.Game{
		{GameID: 1, Season: 2025, Week: 18, HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins",
			Venue: "Highmark Stadium", GameDate: time.Now().Add(48 * time.Hour), GameStatus: "scheduled"},
	}))

	game, err := store.GetGame(1)
	require.NoError(t, err)
	assert.Equal(t, "Buffalo Bills", game.HomeTeam)
	assert.Equal(t, 18, game.Week)

	_, err = store.GetGame(999)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestScheduleStoreUpcomingGamesOrderedAndLimited(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	require.NoError(t, store.SeedGames([]models.Game{
		{GameID: 1, Season: 2025, Week: 17, HomeTeam: "Chicago Bears", AwayTeam: "Detroit Lions", GameDate: now.Add(-72 * time.Hour)},
		{GameID: 2, Season: 2025, Week: 18, HomeTeam: "Green Bay Packers", AwayTeam: "Minnesota Vikings", GameDate: now.Add(24 * time.Hour)},
		{GameID: 3, Season: 2025, Week: 18, HomeTeam: "Kansas City Chiefs", AwayTeam: "Denver Broncos", GameDate: now.Add(6 * time.Hour)},
		{GameID: 4, Season: 2025, Week: 18, HomeTeam: "Dallas Cowboys", AwayTeam: "New York Giants", GameDate: now.Add(48 * time.Hour)},
	}))

	games, err := store.GetUpcomingGames(2)
	require.NoError(t, err)
	require.Len(t, games, 2, "past games excluded and limit applied")
	assert.Equal(t, uint(3), games[0].GameID, "soonest game first")
	assert.Equal(t, uint(2), games[1].GameID)

	all, err := store.GetUpcomingGames(0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "non-positive limit falls back to default")
}

func TestScheduleStoreGamesByWeek(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	require.NoError(t, store.SeedGames([]models.Game{
		{GameID: 1, Season: 2025, Week: 17, HomeTeam: "Chicago Bears", AwayTeam: "Detroit Lions", GameDate: now},
		{GameID: 2, Season: 2025, Week: 18, HomeTeam: "Green Bay Packers", AwayTeam: "Minnesota Vikings", GameDate: now},
		{GameID: 3, Season: 2024, Week: 18, HomeTeam: "Kansas City Chiefs", AwayTeam: "Denver Broncos", GameDate: now},
	}))

	games, err := store.GetGamesByWeek(2025, 18)
	require.NoError(t, err)
	require.Len(t, games, 1, "season and week both filter")
	assert.Equal(t, "Green Bay Packers", games[0].HomeTeam)

	empty, err := store.GetGamesByWeek(2025, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestScheduleStorePlayoffQueries(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	require.NoError(t, store.SeedPlayoffGames([]models.PlayoffGame{
		{GameID: 10, Season: 2025, Round: "Wild Card", HomeTeam: "Buffalo Bills", AwayTeam: "Pittsburgh Steelers",
			HomeSeed: seedPtr(2), AwaySeed: seedPtr(7), Bracket: "AFC", GameDate: now},
		{GameID: 11, Season: 2025, Round: "Wild Card", HomeTeam: "Philadelphia Eagles", AwayTeam: "Seattle Seahawks",
			HomeSeed: seedPtr(2), AwaySeed: seedPtr(7), Bracket: "NFC", GameDate: now.Add(time.Hour)},
		{GameID: 12, Season: 2025, Round: "Divisional", HomeTeam: "Kansas City Chiefs", AwayTeam: "Buffalo Bills",
			HomeSeed: seedPtr(1), AwaySeed: seedPtr(2), Bracket: "AFC", GameDate: now.Add(7 * 24 * time.Hour)},
		{GameID: 13, Season: 2024, Round: "Wild Card", HomeTeam: "Baltimore Ravens", AwayTeam: "Houston Texans",
			HomeSeed: seedPtr(1), AwaySeed: seedPtr(8), Bracket: "AFC", GameDate: now},
	}))

	season, err := store.GetPlayoffGamesBySeason(2025)
	require.NoError(t, err)
	assert.Len(t, season, 3)

	wildcard, err := store.GetPlayoffGamesByRound(2025, "Wild Card")
	require.NoError(t, err)
	require.Len(t, wildcard, 2)
	assert.Equal(t, uint(10), wildcard[0].GameID, "ordered by game date")
	require.NotNil(t, wildcard[0].HomeSeed)
	assert.Equal(t, 2, *wildcard[0].HomeSeed)

	none, err := store.GetPlayoffGamesByRound(2023, "Wild Card")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestScheduleStoreSeedReplacesExistingRows(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	require.NoError(t, store.SeedGames([]models.Game{
		{GameID: 1, Season: 2025, Week: 18, HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins", GameDate: now, GameStatus: "scheduled"},
	}))
	require.NoError(t, store.SeedGames([]models.Game{
		{GameID: 1, Season: 2025, Week: 18, HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins", GameDate: now, GameStatus: "final"},
	}))

	game, err := store.GetGame(1)
	require.NoError(t, err)
	assert.Equal(t, "final", game.GameStatus, "re-seeding the same id overwrites")
}
