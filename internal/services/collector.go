package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nflpredict/prediction-service/internal/agents"
	"github.com/nflpredict/prediction-service/internal/models"
)

// ContextCollector gathers everything the agents want to know about one
// game: venue weather, both statlines, both news feeds, plus simulated
// injury and head-to-head context. Lookups fan out concurrently and any
// failure degrades that field to nil; the collector itself never fails a
// prediction.
type ContextCollector struct {
	weather agents.WeatherProvider
	stats   agents.StatsProvider
	news    agents.NewsProvider
	cache   *CacheService
	logger  *logrus.Logger
	timeout time.Duration
	ttl     time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewContextCollector(
	weather agents.WeatherProvider,
	stats agents.StatsProvider,
	news agents.NewsProvider,
	cache *CacheService,
	rng *rand.Rand,
	timeout, ttl time.Duration,
	logger *logrus.Logger,
) *ContextCollector {
	return &ContextCollector{
		weather: weather,
		stats:   stats,
		news:    news,
		cache:   cache,
		logger:  logger,
		timeout: timeout,
		ttl:     ttl,
		rng:     rng,
	}
}

// Collect builds the context bundle for a matchup, reusing a cached bundle
// when one exists for the game.
func (c *ContextCollector) Collect(ctx context.Context, matchup models.Matchup) *models.GameContext {
	if matchup.GameID != 0 && c.cache != nil {
		var cached models.GameContext
		if err := c.cache.Get(ctx, ContextCacheKey(matchup.GameID), &cached); err == nil {
			c.logger.WithField("game_id", matchup.GameID).Debug("Using cached game context")
			return &cached
		}
	}

	gameCtx := &models.GameContext{CollectionTime: time.Now()}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Each branch writes its own field, so no locking beyond the errgroup.
	g, fetchCtx := errgroup.WithContext(fetchCtx)
	if c.weather != nil && matchup.Venue != "" {
		g.Go(func() error {
			if reading, err := c.weather.VenueWeather(fetchCtx, matchup.Venue); err == nil {
				gameCtx.Weather = reading
			}
			return nil
		})
	}
	if c.stats != nil {
		g.Go(func() error {
			if stats, err := c.stats.TeamStats(fetchCtx, matchup.HomeTeam); err == nil {
				gameCtx.HomeStats = stats
			}
			return nil
		})
		g.Go(func() error {
			if stats, err := c.stats.TeamStats(fetchCtx, matchup.AwayTeam); err == nil {
				gameCtx.AwayStats = stats
			}
			return nil
		})
	}
	if c.news != nil {
		g.Go(func() error {
			if headlines, err := c.news.TeamHeadlines(fetchCtx, matchup.HomeTeam); err == nil {
				gameCtx.HomeHeadlines = headlines
			}
			return nil
		})
		g.Go(func() error {
			if headlines, err := c.news.TeamHeadlines(fetchCtx, matchup.AwayTeam); err == nil {
				gameCtx.AwayHeadlines = headlines
			}
			return nil
		})
	}
	g.Wait()

	// No live source exists for these yet.
	gameCtx.HomeInjuries = c.simulateInjuries(matchup.HomeTeam)
	gameCtx.AwayInjuries = c.simulateInjuries(matchup.AwayTeam)
	gameCtx.Historical = c.simulateHistory(matchup.HomeTeam, matchup.AwayTeam)
	gameCtx.DataQuality = assessQuality(gameCtx)

	if matchup.GameID != 0 && c.cache != nil {
		if err := c.cache.Set(ctx, ContextCacheKey(matchup.GameID), gameCtx, c.ttl); err != nil {
			c.logger.WithError(err).Warn("Failed to cache game context")
		}
	}

	c.logger.WithFields(logrus.Fields{
		"game_id":      matchup.GameID,
		"home_team":    matchup.HomeTeam,
		"away_team":    matchup.AwayTeam,
		"data_quality": gameCtx.DataQuality,
	}).Info("Game context collected")

	return gameCtx
}

func (c *ContextCollector) simulateInjuries(team string) *models.InjuryReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.rng.Intn(4)
	questionable := c.rng.Intn(6)
	return &models.InjuryReport{
		Team:           team,
		KeyPlayersOut:  out,
		Questionable:   questionable,
		ImpactEstimate: -float64(out)*0.04 - float64(questionable)*0.01,
		Source:         models.SourceSimulated,
	}
}

func (c *ContextCollector) simulateHistory(homeTeam, awayTeam string) *models.HistoricalMatchup {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 10 + c.rng.Intn(41)
	homeWins := c.rng.Intn(total + 1)
	lastWinner := homeTeam
	if c.rng.Float64() < 0.5 {
		lastWinner = awayTeam
	}
	return &models.HistoricalMatchup{
		HomeWins:   homeWins,
		AwayWins:   total - homeWins,
		AvgMargin:  float64(c.rng.Intn(14)) + 1,
		LastWinner: lastWinner,
		Source:     models.SourceSimulated,
	}
}

// assessQuality labels the bundle by how much of it came from live
// sources: all of weather+stats live, some, or none.
func assessQuality(gameCtx *models.GameContext) string {
	live := 0
	if gameCtx.Weather != nil && gameCtx.Weather.Source != models.SourceSimulated {
		live++
	}
	if gameCtx.HomeStats != nil && gameCtx.HomeStats.Source != models.SourceSimulated {
		live++
	}
	if gameCtx.AwayStats != nil && gameCtx.AwayStats.Source != models.SourceSimulated {
		live++
	}
	switch live {
	case 3:
		return "live"
	case 0:
		return "simulated"
	default:
		return "partial"
	}
}
