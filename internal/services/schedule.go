package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nflpredict/prediction-service/internal/models"
)

// ErrGameNotFound is returned for lookups of games that do not exist.
var ErrGameNotFound = errors.New("game not found")

// ScheduleStore reads the schedule tables. Writes happen out of band via
// the loader, so everything here is query-only except AutoMigrate.
type ScheduleStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewScheduleStore(db *gorm.DB, logger *logrus.Logger) *ScheduleStore {
	return &ScheduleStore{db: db, logger: logger}
}

func (s *ScheduleStore) AutoMigrate() error {
	if err := s.db.AutoMigrate(&models.Game{}, &models.PlayoffGame{}); err != nil {
		return fmt.Errorf("migrating schedule tables: %w", err)
	}
	return nil
}

func (s *ScheduleStore) GetGame(gameID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, "game_id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *ScheduleStore) GetUpcomingGames(limit int) ([]models.Game, error) {
	if limit <= 0 {
		limit = 20
	}
	var games []models.Game
	err := s.db.
		Where("game_date >= ?", time.Now()).
		Order("game_date asc").
		Limit(limit).
		Find(&games).Error
	return games, err
}

func (s *ScheduleStore) GetGamesByWeek(season, week int) ([]models.Game, error) {
	var games []models.Game
	err := s.db.
		Where("season = ? AND week = ?", season, week).
		Order("game_date asc").
		Find(&games).Error
	return games, err
}

func (s *ScheduleStore) GetPlayoffGamesBySeason(season int) ([]models.PlayoffGame, error) {
	var games []models.PlayoffGame
	err := s.db.
		Where("season = ?", season).
		Order("game_date asc").
		Find(&games).Error
	return games, err
}

func (s *ScheduleStore) GetPlayoffGamesByRound(season int, round string) ([]models.PlayoffGame, error) {
	var games []models.PlayoffGame
	err := s.db.
		Where("season = ? AND round = ?", season, round).
		Order("game_date asc").
		Find(&games).Error
	return games, err
}

// SeedGames bulk-inserts schedule rows, replacing rows that share a game
// id. Used by the loader and by tests.
func (s *ScheduleStore) SeedGames(games []models.Game) error {
	if len(games) == 0 {
		return nil
	}
	return s.db.Save(&games).Error
}

func (s *ScheduleStore) SeedPlayoffGames(games []models.PlayoffGame) error {
	if len(games) == 0 {
		return nil
	}
	return s.db.Save(&games).Error
}
