package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nflpredict/prediction-service/internal/agents"
	"github.com/nflpredict/prediction-service/internal/models"
)

func liveReading() *models.WeatherReading {
	return &models.WeatherReading{
		Venue:       "Highmark Stadium",
		Temperature: 28,
		Conditions:  "light snow",
		WindSpeed:   12,
		Source:      models.SourceOpenMeteo,
	}
}

func liveStats(team string) *models.TeamStats {
	return &models.TeamStats{
		Team:        team,
		WinRate:     0.65,
		RecentForm:  []int{1, 1, 0, 1},
		Source:      models.SourceESPN,
		LastUpdated: time.Now(),
	}
}

func newCollector(weather *stubWeatherProvider, stats *stubStatsProvider, news *stubNewsProvider) *ContextCollector {
	// Convert nil stub pointers to nil interfaces so the collector's
	// provider-presence checks see them as absent.
	var w agents.WeatherProvider
	if weather != nil {
		w = weather
	}
	var s agents.StatsProvider
	if stats != nil {
		s = stats
	}
	var n agents.NewsProvider
	if news != nil {
		n = news
	}
	return NewContextCollector(w, s, n, nil, testRNG(7), 2*time.Second, time.Minute, testLogger())
}

func TestCollectorBundlesAllLiveSources(t *testing.T) {
	matchup := testMatchup()
	weather := &stubWeatherProvider{reading: liveReading()}
	stats := &stubStatsProvider{stats: map[string]*models.TeamStats{
		matchup.HomeTeam: liveStats(matchup.HomeTeam),
		matchup.AwayTeam: liveStats(matchup.AwayTeam),
	}}
	news := &stubNewsProvider{headlines: map[string][]models.Headline{
		matchup.HomeTeam: {{Title: "Bills clinch the division", Category: "momentum", Impact: 0.08, Source: models.SourceESPN}},
	}}

	gameCtx := newCollector(weather, stats, news).Collect(context.Background(), matchup)

	assert.Equal(t, "live", gameCtx.DataQuality)
	require.NotNil(t, gameCtx.Weather)
	assert.Equal(t, models.SourceOpenMeteo, gameCtx.Weather.Source)
	require.NotNil(t, gameCtx.HomeStats)
	assert.Equal(t, matchup.HomeTeam, gameCtx.HomeStats.Team)
	assert.Len(t, gameCtx.HomeHeadlines, 1)
	assert.Empty(t, gameCtx.AwayHeadlines)

	assert.EqualValues(t, 1, weather.calls.Load())
	assert.EqualValues(t, 2, stats.calls.Load(), "one statline per side")
	assert.EqualValues(t, 2, news.calls.Load())
}

func TestCollectorSimulatedFieldsAlwaysPresent(t *testing.T) {
	matchup := testMatchup()
	gameCtx := newCollector(nil, nil, nil).Collect(context.Background(), matchup)

	require.NotNil(t, gameCtx.HomeInjuries)
	assert.Equal(t, matchup.HomeTeam, gameCtx.HomeInjuries.Team)
	assert.Equal(t, models.SourceSimulated, gameCtx.HomeInjuries.Source)
	assert.LessOrEqual(t, gameCtx.HomeInjuries.ImpactEstimate, 0.0)

	require.NotNil(t, gameCtx.Historical)
	assert.Equal(t, models.SourceSimulated, gameCtx.Historical.Source)
	assert.GreaterOrEqual(t, gameCtx.Historical.HomeWins+gameCtx.Historical.AwayWins, 10)

	assert.Equal(t, "simulated", gameCtx.DataQuality)
	assert.False(t, gameCtx.CollectionTime.IsZero())
}

func TestCollectorProviderFailureDegradesQuality(t *testing.T) {
	matchup := testMatchup()
	weather := &stubWeatherProvider{err: errors.New("upstream down")}
	stats := &stubStatsProvider{stats: map[string]*models.TeamStats{
		matchup.HomeTeam: liveStats(matchup.HomeTeam),
		matchup.AwayTeam: liveStats(matchup.AwayTeam),
	}}

	gameCtx := newCollector(weather, stats, nil).Collect(context.Background(), matchup)

	assert.Nil(t, gameCtx.Weather, "failed lookup leaves the field empty")
	require.NotNil(t, gameCtx.HomeStats)
	assert.Equal(t, "partial", gameCtx.DataQuality)
}

func TestCollectorSkipsWeatherWithoutVenue(t *testing.T) {
	matchup := testMatchup()
	matchup.Venue = ""
	weather := &stubWeatherProvider{reading: liveReading()}

	gameCtx := newCollector(weather, nil, nil).Collect(context.Background(), matchup)

	assert.Nil(t, gameCtx.Weather)
	assert.EqualValues(t, 0, weather.calls.Load())
	assert.Equal(t, "simulated", gameCtx.DataQuality)
}
