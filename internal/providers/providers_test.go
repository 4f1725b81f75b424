package providers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nflpredict/prediction-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLookupVenue(t *testing.T) {
	info, ok := LookupVenue("Lambeau Field")
	require.True(t, ok)
	assert.Equal(t, "Green Bay Packers", info.Team)
	assert.False(t, info.IsDome)

	info, ok = LookupVenue("Ford Field")
	require.True(t, ok)
	assert.True(t, info.IsDome)

	// Substring matching in both directions.
	_, ok = LookupVenue("Lambeau")
	assert.True(t, ok)
	info, ok = LookupVenue("AT&T Stadium, Arlington")
	require.True(t, ok)
	assert.Equal(t, "Dallas Cowboys", info.Team)

	_, ok = LookupVenue("Wembley Stadium")
	assert.False(t, ok)
	_, ok = LookupVenue("")
	assert.False(t, ok)
}

func TestOpenMeteoClientParsesCurrentConditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))
		assert.NotEmpty(t, r.URL.Query().Get("latitude"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"current":{"temperature_2m":28.5,"apparent_temperature":21.0,"relative_humidity_2m":70,"precipitation":0.15,"weather_code":73,"wind_speed_10m":18.0,"wind_gusts_10m":27.5}}`)
	}))
	defer server.Close()

	client := NewOpenMeteoClient(5*time.Second, 60, testLogger())
	client.baseURL = server.URL

	reading, err := client.VenueWeather(context.Background(), "Lambeau Field")
	require.NoError(t, err)

	assert.Equal(t, "Lambeau Field", reading.Venue)
	assert.InDelta(t, 28.5, reading.Temperature, 0.001)
	assert.InDelta(t, 18.0, reading.WindSpeed, 0.001)
	assert.Equal(t, "snow", reading.Conditions)
	assert.Equal(t, models.SourceOpenMeteo, reading.Source)
}

func TestOpenMeteoClientShortCircuitsDomes(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewOpenMeteoClient(5*time.Second, 60, testLogger())
	client.baseURL = server.URL

	reading, err := client.VenueWeather(context.Background(), "Caesars Superdome")
	require.NoError(t, err)
	assert.True(t, reading.IsDome)
	assert.Equal(t, models.SourceDome, reading.Source)
	assert.Equal(t, 0, requests, "dome venues never hit the API")
}

func TestOpenMeteoClientRejectsUnknownVenue(t *testing.T) {
	client := NewOpenMeteoClient(5*time.Second, 60, testLogger())
	_, err := client.VenueWeather(context.Background(), "Rose Bowl")
	assert.Error(t, err)
}

func TestOpenMeteoClientSurfacesUpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOpenMeteoClient(5*time.Second, 60, testLogger())
	client.baseURL = server.URL

	_, err := client.VenueWeather(context.Background(), "Soldier Field")
	assert.ErrorContains(t, err, "503")
}

func TestDescribeWeatherCode(t *testing.T) {
	assert.Equal(t, "clear", describeWeatherCode(0))
	assert.Equal(t, "partly cloudy", describeWeatherCode(2))
	assert.Equal(t, "rain", describeWeatherCode(63))
	assert.Equal(t, "snow", describeWeatherCode(75))
	assert.Equal(t, "thunderstorm", describeWeatherCode(95))
}

func TestESPNClientBuildsStatline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/teams/buf")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"team":{"displayName":"Buffalo Bills","record":{"items":[
			{"type":"total","stats":[{"name":"winPercent","value":0.75},{"name":"wins","value":12},{"name":"losses","value":4},{"name":"differential","value":96},{"name":"avgPointsFor","value":28.5},{"name":"avgPointsAgainst","value":19.2},{"name":"streak","value":3}]},
			{"type":"home","stats":[{"name":"winPercent","value":0.875}]},
			{"type":"road","stats":[{"name":"winPercent","value":0.625}]}
		]}}}`)
	}))
	defer server.Close()

	client := NewESPNClient(5*time.Second, 60, testLogger())
	client.baseURL = server.URL

	stats, err := client.TeamStats(context.Background(), "Buffalo Bills")
	require.NoError(t, err)

	assert.InDelta(t, 0.75, stats.WinRate, 0.001)
	assert.InDelta(t, 6.0, stats.PointDifferential, 0.001, "96 points over 16 games")
	assert.InDelta(t, 0.875, stats.HomeWinRate, 0.001)
	assert.InDelta(t, 0.625, stats.AwayWinRate, 0.001)
	assert.Equal(t, []int{1, 1, 1, 0}, stats.RecentForm)
	assert.Equal(t, models.SourceESPN, stats.Source)
}

func TestESPNClientCategorizesHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12", r.URL.Query().Get("team"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"articles":[
			{"headline":"Star receiver questionable with ankle injury","description":""},
			{"headline":"Chiefs riding a winning streak into January","description":""},
			{"headline":"Quiet week of practice","description":""}
		]}`)
	}))
	defer server.Close()

	client := NewESPNClient(5*time.Second, 60, testLogger())
	client.baseURL = server.URL

	headlines, err := client.TeamHeadlines(context.Background(), "Kansas City Chiefs")
	require.NoError(t, err)
	require.Len(t, headlines, 3)

	assert.Equal(t, "injuries", headlines[0].Category)
	assert.Negative(t, headlines[0].Impact)
	assert.Equal(t, "momentum", headlines[1].Category)
	assert.Positive(t, headlines[1].Impact)
	// No keyword match falls through to a mild momentum default.
	assert.InDelta(t, 0.02, headlines[2].Impact, 0.001)
	assert.Equal(t, models.SourceESPN, headlines[2].Source)
}

func TestESPNClientRejectsUnknownTeam(t *testing.T) {
	client := NewESPNClient(5*time.Second, 60, testLogger())
	_, err := client.TeamStats(context.Background(), "London Monarchs")
	assert.Error(t, err)
	_, err = client.TeamHeadlines(context.Background(), "London Monarchs")
	assert.Error(t, err)
}

func TestFormFromStreak(t *testing.T) {
	assert.Equal(t, []int{1, 1, 1, 0}, formFromStreak(3))
	assert.Equal(t, []int{1, 1, 1, 1}, formFromStreak(7))
	assert.Equal(t, []int{0, 0, 0, 0}, formFromStreak(0))
	assert.Equal(t, []int{0, 0, 0, 0}, formFromStreak(-2))
}
