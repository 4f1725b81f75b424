package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/nflpredict/prediction-service/internal/models"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoClient fetches current venue conditions from the free
// Open-Meteo forecast endpoint. No API key required.
type OpenMeteoClient struct {
	httpClient  *http.Client
	logger      *logrus.Logger
	rateLimiter *rate.Limiter
	breaker     *gobreaker.CircuitBreaker
	baseURL     string
}

func NewOpenMeteoClient(timeout time.Duration, requestsPerMinute int, logger *logrus.Logger) *OpenMeteoClient {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	return &OpenMeteoClient{
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		breaker:     newProviderBreaker("open-meteo", logger),
		baseURL:     openMeteoBaseURL,
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		RelativeHumidity    int     `json:"relative_humidity_2m"`
		Precipitation       float64 `json:"precipitation"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindGusts           float64 `json:"wind_gusts_10m"`
	} `json:"current"`
}

// VenueWeather implements agents.WeatherProvider. Known domes return a
// controlled-environment reading without an API call; unknown venues are
// an error so the agent falls back to simulation.
func (c *OpenMeteoClient) VenueWeather(ctx context.Context, venue string) (*models.WeatherReading, error) {
	info, ok := LookupVenue(venue)
	if !ok {
		return nil, fmt.Errorf("unknown venue %q", venue)
	}
	if info.IsDome {
		return &models.WeatherReading{
			Venue:       info.Name,
			IsDome:      true,
			Temperature: 72,
			Conditions:  "controlled",
			Humidity:    45,
			Source:      models.SourceDome,
		}, nil
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchCurrent(ctx, info)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.WeatherReading), nil
}

func (c *OpenMeteoClient) fetchCurrent(ctx context.Context, info VenueInfo) (*models.WeatherReading, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", info.Latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", info.Longitude))
	params.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,precipitation,weather_code,wind_speed_10m,wind_gusts_10m")
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")
	params.Set("precipitation_unit", "inch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding open-meteo response: %w", err)
	}

	reading := &models.WeatherReading{
		Venue:         info.Name,
		Temperature:   payload.Current.Temperature,
		FeelsLike:     payload.Current.ApparentTemperature,
		Conditions:    describeWeatherCode(payload.Current.WeatherCode),
		WindSpeed:     payload.Current.WindSpeed,
		WindGust:      payload.Current.WindGusts,
		Precipitation: payload.Current.Precipitation,
		Humidity:      payload.Current.RelativeHumidity,
		Source:        models.SourceOpenMeteo,
	}

	c.logger.WithFields(logrus.Fields{
		"venue":       info.Name,
		"temperature": reading.Temperature,
		"wind_speed":  reading.WindSpeed,
		"conditions":  reading.Conditions,
	}).Debug("Fetched venue weather")

	return reading, nil
}

// describeWeatherCode maps WMO weather codes to the condition strings the
// weather agent matches against.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 57:
		return "drizzle"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain showers"
	case code <= 86:
		return "snow showers"
	default:
		return "thunderstorm"
	}
}
