package services

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync/atomic"
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
		Venue:    "Highmark Stadium",
		GameTime: time.Date(2026, 1, 11, 18, 0, 0, 0, time.UTC),
	}
}

// stubWeatherProvider returns a fixed reading and counts calls.
type stubWeatherProvider struct {
	reading *models.WeatherReading
	err     error
	calls   atomic.Int64
}

func (p *stubWeatherProvider) VenueWeather(_ context.Context, _ string) (*models.WeatherReading, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.reading, nil
}

// stubStatsProvider serves per-team statlines and counts calls.
type stubStatsProvider struct {
	stats map[string]*models.TeamStats
	err   error
	calls atomic.Int64
}

func (p *stubStatsProvider) TeamStats(_ context.Context, team string) (*models.TeamStats, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	if stats, ok := p.stats[team]; ok {
		return stats, nil
	}
	return nil, errors.New("no statline for " + team)
}

// stubNewsProvider serves per-team headlines and counts calls.
type stubNewsProvider struct {
	headlines map[string][]models.Headline
	err       error
	calls     atomic.Int64
}

func (p *stubNewsProvider) TeamHeadlines(_ context.Context, team string) ([]models.Headline, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.headlines[team], nil
}

// stubAgent answers every Predict with a canned verdict.
type stubAgent struct {
	name       string
	winner     string
	confidence float64
	err        error
	calls      atomic.Int64
	refreshes  atomic.Int64
}

func (a *stubAgent) Name() string { return a.name }

func (a *stubAgent) Predict(_ context.Context, _ models.Matchup, _ *models.GameContext) (*models.AgentVerdict, error) {
	a.calls.Add(1)
	if a.err != nil {
		return nil, a.err
	}
	return &models.AgentVerdict{
		AgentName:   a.name,
		Winner:      a.winner,
		Confidence:  a.confidence,
		Reasoning:   "canned verdict",
		DataSource:  models.SourceSimulated,
		PredictedAt: time.Now(),
	}, nil
}

func (a *stubAgent) Status() models.AgentStatus {
	return models.AgentStatus{AgentName: a.name, Status: "active"}
}

func (a *stubAgent) Refresh(_ context.Context) {
	a.refreshes.Add(1)
}
