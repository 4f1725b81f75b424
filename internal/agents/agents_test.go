package agents

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nflpredict/prediction-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func testMatchup() models.Matchup {
	return models.Matchup{
		GameID:   101,
		HomeTeam: "Buffalo Bills",
		AwayTeam: "Miami Dolphins",
		GameTime: time.Date(2026, time.January, 11, 18, 0, 0, 0, time.UTC),
		Venue:    "Highmark Stadium",
	}
}

// stubStatsProvider returns canned statlines and records call counts.
type stubStatsProvider struct {
	stats map[string]*models.TeamStats
	err   error
	calls int
}

func (p *stubStatsProvider) TeamStats(ctx context.Context, team string) (*models.TeamStats, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if s, ok := p.stats[team]; ok {
		return s, nil
	}
	return nil, errors.New("unknown team")
}

type stubWeatherProvider struct {
	reading *models.WeatherReading
	err     error
	calls   int
}

func (p *stubWeatherProvider) VenueWeather(ctx context.Context, venue string) (*models.WeatherReading, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.reading, nil
}

type stubNewsProvider struct {
	headlines map[string][]models.Headline
	err       error
	calls     int
}

func (p *stubNewsProvider) TeamHeadlines(ctx context.Context, team string) ([]models.Headline, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.headlines[team], nil
}

func flatStats(team string, winRate float64) *models.TeamStats {
	return &models.TeamStats{
		Team:               team,
		WinRate:            winRate,
		PointDifferential:  0,
		RecentForm:         []int{1, 0, 1, 0},
		HomeWinRate:        winRate,
		AwayWinRate:        winRate,
		StrengthOfSchedule: 0.5,
		Source:             models.SourceESPN,
		LastUpdated:        time.Now(),
	}
}
