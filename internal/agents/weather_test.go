package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nflpredict/prediction-service/internal/models"
)

func TestWeatherAgentDomeBypassesProvider(t *testing.T) {
	provider := &stubWeatherProvider{reading: &models.WeatherReading{Temperature: 10}}
	agent := NewWeatherAgent("weather_wizard", provider, testRNG(1), time.Hour, 32, testLogger())

	matchup := models.Matchup{
		GameID:   204,
		HomeTeam: "Detroit Lions",
		AwayTeam: "New Orleans Saints",
		Venue:    "Ford Field",
		IsDome:   true,
	}

	verdict, err := agent.Predict(context.Background(), matchup, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, provider.calls, "dome games never consult the weather provider")
	assert.Equal(t, models.SourceDome, verdict.DataSource)
	// DomeHome 0.08 against OutdoorPenalty -0.12 favors the home side.
	assert.Equal(t, "Detroit Lions", verdict.Winner)
	assert.InDelta(t, 0.65, verdict.Confidence, 0.001)
}

func TestWeatherAgentColdWeatherMismatch(t *testing.T) {
	agent := NewWeatherAgent("weather_wizard", nil, testRNG(1), time.Hour, 32, testLogger())
	matchup := testMatchup() // Bills hosting the Dolphins

	gameCtx := &models.GameContext{
		Weather: &models.WeatherReading{
			Venue:         matchup.Venue,
			Temperature:   20,
			Conditions:    "snow",
			WindSpeed:     10,
			Precipitation: 0.2,
			Source:        models.SourceOpenMeteo,
		},
	}

	verdict, err := agent.Predict(context.Background(), matchup, gameCtx)
	require.NoError(t, err)

	// Bills: cold +0.15, snow +0.12. Dolphins: cold penalty -0.15.
	assert.Equal(t, matchup.HomeTeam, verdict.Winner)
	assert.InDelta(t, 0.8, verdict.Confidence, 0.001, "a 0.42 advantage saturates the weather ceiling")
	assert.Equal(t, models.SourceOpenMeteo, verdict.DataSource)
}

func TestWeatherAgentConfidenceCeiling(t *testing.T) {
	agent := NewWeatherAgent("weather_wizard", nil, testRNG(11), time.Hour, 128, testLogger())

	pairs := [][2]string{
		{"Green Bay Packers", "Miami Dolphins"},
		{"Chicago Bears", "Seattle Seahawks"},
		{"Kansas City Chiefs", "New England Patriots"},
	}
	for i, pair := range pairs {
		matchup := models.Matchup{
			GameID:   uint(300 + i),
			HomeTeam: pair[0],
			AwayTeam: pair[1],
			Venue:    pair[0] + " Stadium",
			GameTime: time.Date(2026, time.January, 18, 18, 0, 0, 0, time.UTC),
		}
		verdict, err := agent.Predict(context.Background(), matchup, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, verdict.Confidence, 0.5)
		assert.LessOrEqual(t, verdict.Confidence, 0.8)
	}
}

func TestWeatherAgentFallsBackOnProviderError(t *testing.T) {
	provider := &stubWeatherProvider{err: errors.New("open-meteo unreachable")}
	agent := NewWeatherAgent("weather_wizard", provider, testRNG(5), time.Hour, 32, testLogger())

	verdict, err := agent.Predict(context.Background(), testMatchup(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls, "one lookup covers the shared venue")
	assert.Equal(t, models.SourceSimulated, verdict.DataSource)
}

func TestWeatherAdvantageThresholds(t *testing.T) {
	freezing := &models.WeatherReading{Temperature: 25, WindSpeed: 20, Conditions: "snow", Precipitation: 0.2}
	// Bills: cold 0.15 + snow 0.12 (wind profile is zero).
	assert.InDelta(t, 0.27, weatherAdvantage("Buffalo Bills", freezing), 0.001)
	// Dolphins only carry the cold penalty here.
	assert.InDelta(t, -0.15, weatherAdvantage("Miami Dolphins", freezing), 0.001)

	mild := &models.WeatherReading{Temperature: 60, WindSpeed: 5}
	assert.InDelta(t, 0, weatherAdvantage("Buffalo Bills", mild), 0.001)
	// Unknown teams score the zero profile in any conditions.
	assert.InDelta(t, 0, weatherAdvantage("Carolina Panthers", freezing), 0.001)
}
