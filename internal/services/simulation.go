package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nflpredict/prediction-service/internal/models"
	"github.com/nflpredict/prediction-service/internal/simulator"
)

// SimulationService loads a season's bracket from storage and runs it
// through the Monte Carlo simulator, caching the outcome per
// (season, trials) pair.
type SimulationService struct {
	store         *ScheduleStore
	sim           *simulator.Simulator
	cache         *CacheService
	defaultTrials int
	maxTrials     int
	cacheTTL      time.Duration
	logger        *logrus.Logger
}

func NewSimulationService(
	store *ScheduleStore,
	sim *simulator.Simulator,
	cache *CacheService,
	defaultTrials, maxTrials int,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *SimulationService {
	return &SimulationService{
		store:         store,
		sim:           sim,
		cache:         cache,
		defaultTrials: defaultTrials,
		maxTrials:     maxTrials,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// Simulate runs the season's bracket. A nil trial count falls back to the
// configured default; an explicit non-positive count is rejected, and
// requests above the configured ceiling are clamped rather than rejected.
func (s *SimulationService) Simulate(ctx context.Context, season int, requested *int) (*models.SimulationOutcome, error) {
	trials := s.defaultTrials
	if requested != nil {
		trials = *requested
	}
	if trials <= 0 {
		return nil, simulator.ErrInvalidTrials
	}
	if s.maxTrials > 0 && trials > s.maxTrials {
		s.logger.WithFields(logrus.Fields{
			"requested": trials,
			"ceiling":   s.maxTrials,
		}).Warn("Simulation count clamped")
		trials = s.maxTrials
	}

	if s.cache != nil {
		var cached models.SimulationOutcome
		if err := s.cache.Get(ctx, SimulationCacheKey(season, trials), &cached); err == nil {
			return &cached, nil
		}
	}

	games, err := s.store.GetPlayoffGamesBySeason(season)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	outcome, err := s.sim.Run(season, games, trials)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"season":   season,
		"trials":   trials,
		"games":    len(games),
		"duration": time.Since(started),
	}).Info("Bracket simulation complete")

	if s.cache != nil {
		if err := s.cache.Set(ctx, SimulationCacheKey(season, trials), outcome, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache simulation outcome")
		}
	}
	return outcome, nil
}
