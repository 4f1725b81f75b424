package agents

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nflpredict/prediction-service/internal/models"
)

// WeatherProvider supplies current conditions for a venue.
type WeatherProvider interface {
	VenueWeather(ctx context.Context, venue string) (*models.WeatherReading, error)
}

const (
	weatherNeutralBand = 0.05
	// Weather advantage converts to confidence 2.5x, capped well below the
	// statistical agent's ceiling: conditions alone rarely decide a game.
	weatherConfidenceScale = 2.5
	weatherMaxConfidence   = 0.8
	domeMaxBoost           = 0.15
)

// WeatherAgent scores a matchup from venue conditions against each team's
// weather affinity profile. Dome games bypass conditions entirely and use
// the dome-specific advantage table.
type WeatherAgent struct {
	name     string
	logger   *logrus.Logger
	provider WeatherProvider

	mu           sync.Mutex
	rng          *rand.Rand
	cache        *ttlCache
	status       string
	lastActivity time.Time
}

func NewWeatherAgent(name string, provider WeatherProvider, rng *rand.Rand, cacheTTL time.Duration, cacheMax int, logger *logrus.Logger) *WeatherAgent {
	return &WeatherAgent{
		name:         name,
		logger:       logger,
		provider:     provider,
		rng:          rng,
		cache:        newTTLCache(cacheTTL, cacheMax),
		status:       statusActive,
		lastActivity: time.Now(),
	}
}

func (a *WeatherAgent) Name() string { return a.name }

func (a *WeatherAgent) Status() models.AgentStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.AgentStatus{
		AgentName:    a.name,
		Status:       a.status,
		LastActivity: a.lastActivity,
		CacheSize:    a.cache.len(),
		Message:      fmt.Sprintf("Weather analysis ready. Cache: %d venues.", a.cache.len()),
	}
}

func (a *WeatherAgent) Refresh(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = time.Now()
	removed := a.cache.sweep(time.Now())
	a.logger.WithFields(logrus.Fields{
		"agent":           a.name,
		"expired_entries": removed,
	}).Info("Weather agent refreshed")
}

func (a *WeatherAgent) Predict(ctx context.Context, matchup models.Matchup, gameCtx *models.GameContext) (*models.AgentVerdict, error) {
	if err := validateMatchup(matchup); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = time.Now()
	a.status = statusPredicting
	defer func() { a.status = statusActive }()

	weather := a.venueWeather(ctx, matchup, gameCtx)

	if weather.IsDome {
		return a.domeVerdict(matchup, weather), nil
	}

	homeAdv := weatherAdvantage(matchup.HomeTeam, weather)
	awayAdv := weatherAdvantage(matchup.AwayTeam, weather)
	differential := homeAdv - awayAdv

	winner, confidence := pickWinner(a.rng, matchup, differential, weatherNeutralBand, weatherConfidenceScale, weatherMaxConfidence)

	verdict := &models.AgentVerdict{
		AgentName:  a.name,
		Winner:     winner,
		Confidence: round3(confidence),
		Reasoning:  weatherReasoning(matchup, weather, homeAdv, awayAdv, confidence),
		DataSource: weather.Source,
		Diagnostics: map[string]float64{
			"home_weather_advantage": round3(homeAdv),
			"away_weather_advantage": round3(awayAdv),
			"temperature":            weather.Temperature,
			"wind_speed":             weather.WindSpeed,
		},
		PredictedAt: time.Now(),
	}

	a.logger.WithFields(logrus.Fields{
		"agent":      a.name,
		"winner":     winner,
		"confidence": verdict.Confidence,
		"venue":      matchup.Venue,
		"source":     weather.Source,
	}).Info("Weather analysis complete")

	return verdict, nil
}

// venueWeather resolves conditions: collector context first, then the
// agent cache, then the live provider, then seasonal simulation. Dome
// matchups skip lookups entirely.
func (a *WeatherAgent) venueWeather(ctx context.Context, matchup models.Matchup, gameCtx *models.GameContext) *models.WeatherReading {
	if matchup.IsDome {
		return domeReading(matchup.Venue)
	}
	if gameCtx != nil && gameCtx.Weather != nil {
		return gameCtx.Weather
	}

	now := time.Now()
	cacheKey := matchup.Venue + "_weather"
	if cached, ok := a.cache.get(cacheKey, now); ok {
		return cached.(*models.WeatherReading)
	}

	var reading *models.WeatherReading
	if a.provider != nil && matchup.Venue != "" {
		fetched, err := a.provider.VenueWeather(ctx, matchup.Venue)
		if err != nil {
			a.logger.WithFields(logrus.Fields{
				"agent": a.name,
				"venue": matchup.Venue,
			}).WithError(err).Warn("Weather provider failed, using simulation")
		} else {
			reading = fetched
		}
	}
	if reading == nil {
		reading = a.simulateWeather(matchup.Venue, matchup.GameTime)
	}
	if reading.IsDome {
		// Provider can know more than the schedule does.
		return reading
	}

	a.cache.put(cacheKey, reading, now)
	return reading
}

func domeReading(venue string) *models.WeatherReading {
	return &models.WeatherReading{
		Venue:       venue,
		IsDome:      true,
		Temperature: 72,
		Conditions:  "controlled",
		Humidity:    45,
		Source:      models.SourceDome,
	}
}

// simulateWeather fabricates seasonally plausible outdoor conditions.
func (a *WeatherAgent) simulateWeather(venue string, gameTime time.Time) *models.WeatherReading {
	if gameTime.IsZero() {
		gameTime = time.Now()
	}
	month := int(gameTime.Month())

	// Rough continental averages; playoff football is January weather.
	temps := []float64{40, 45, 50, 60, 68, 75, 78, 76, 70, 60, 50, 45}
	temp := temps[month-1] + float64(a.rng.Intn(11)-5)
	wind := float64(5 + a.rng.Intn(16))

	precip := 0.0
	conditions := "partly cloudy"
	if month <= 2 || month >= 11 {
		if a.rng.Float64() < 0.3 {
			precip = a.rng.Float64() * 0.3
			conditions = "snow"
			if temp > 34 {
				conditions = "rain"
			}
		}
	}

	return &models.WeatherReading{
		Venue:         venue,
		Temperature:   temp,
		FeelsLike:     temp,
		Conditions:    conditions,
		WindSpeed:     wind,
		Precipitation: round2(precip),
		Humidity:      65,
		Source:        models.SourceSimulated,
	}
}

// weatherAdvantage scores one team's fit for the given conditions.
func weatherAdvantage(team string, w *models.WeatherReading) float64 {
	profile := teamWeatherProfiles[team]
	advantage := 0.0

	if w.Temperature < 32 {
		advantage += profile.ColdAdvantage
	}
	if w.Temperature > 85 {
		advantage += profile.HeatAdvantage + profile.HeatPenalty
	}
	if w.Temperature < 45 {
		advantage += profile.ColdPenalty
	}
	if w.WindSpeed > 15 {
		advantage += profile.WindAdvantage
	}
	if w.Precipitation > 0.1 {
		conditions := strings.ToLower(w.Conditions)
		if strings.Contains(conditions, "rain") {
			advantage += profile.RainAdvantage
		}
		if strings.Contains(conditions, "snow") {
			advantage += profile.SnowAdvantage
		}
	}
	advantage += profile.AllWeather

	return advantage
}

// domeVerdict handles controlled-environment games via the dome-specific
// advantage table.
func (a *WeatherAgent) domeVerdict(matchup models.Matchup, weather *models.WeatherReading) *models.AgentVerdict {
	homeProfile := teamWeatherProfiles[matchup.HomeTeam]
	awayProfile := teamWeatherProfiles[matchup.AwayTeam]

	advantage := homeProfile.DomeHome - awayProfile.OutdoorPenalty

	var winner string
	switch {
	case advantage > weatherNeutralBand:
		winner = matchup.HomeTeam
	case advantage < -weatherNeutralBand:
		winner = matchup.AwayTeam
	default:
		winner = matchup.HomeTeam
		if a.rng.Float64() < 0.5 {
			winner = matchup.AwayTeam
		}
	}

	confidence := clamp(0.5+min(domeMaxBoost, abs(advantage)*2), 0.5, weatherMaxConfidence)

	return &models.AgentVerdict{
		AgentName:  a.name,
		Winner:     winner,
		Confidence: round3(confidence),
		Reasoning:  "Dome environment eliminates weather variables. Controlled conditions favor teams accustomed to indoor play.",
		DataSource: models.SourceDome,
		Diagnostics: map[string]float64{
			"home_weather_advantage": round3(homeProfile.DomeHome),
			"away_weather_advantage": round3(awayProfile.OutdoorPenalty),
		},
		PredictedAt: time.Now(),
	}
}

func weatherReasoning(m models.Matchup, w *models.WeatherReading, homeAdv, awayAdv, confidence float64) string {
	parts := make([]string, 0, 5)

	if w.Source == models.SourceSimulated {
		parts = append(parts, "Using simulated weather (APIs unavailable)")
	} else {
		parts = append(parts, fmt.Sprintf("Using real weather data from %s", w.Source))
	}

	var desc []string
	switch {
	case w.Temperature < 32:
		desc = append(desc, fmt.Sprintf("freezing temps (%.0f°F)", w.Temperature))
	case w.Temperature > 85:
		desc = append(desc, fmt.Sprintf("hot weather (%.0f°F)", w.Temperature))
	default:
		desc = append(desc, fmt.Sprintf("%.0f°F", w.Temperature))
	}
	if w.WindSpeed > 15 {
		desc = append(desc, fmt.Sprintf("%.0f mph winds", w.WindSpeed))
	}
	if w.Precipitation > 0.1 {
		desc = append(desc, "precipitation expected")
	}
	parts = append(parts, "Conditions: "+strings.Join(desc, ", "))

	if abs(homeAdv) > 0.08 {
		parts = append(parts, teamConditionsNote(m.HomeTeam, homeAdv))
	}
	if abs(awayAdv) > 0.08 {
		parts = append(parts, teamConditionsNote(m.AwayTeam, awayAdv))
	}

	switch {
	case w.Temperature < 32 || w.Temperature > 85:
		parts = append(parts, "Extreme weather favors experienced teams")
	case w.WindSpeed > 20:
		parts = append(parts, "Strong winds impact passing and kicking")
	case w.Precipitation > 0.2:
		parts = append(parts, "Heavy precipitation increases turnover risk")
	}

	switch {
	case confidence > 0.70:
		parts = append(parts, "High confidence from clear weather advantage")
	case confidence > 0.60:
		parts = append(parts, "Moderate confidence from weather factors")
	default:
		parts = append(parts, "Low confidence - minimal weather impact")
	}

	return strings.Join(parts, ". ") + "."
}

func teamConditionsNote(team string, advantage float64) string {
	verb := "excels"
	if advantage < 0 {
		verb = "struggles"
	}
	return fmt.Sprintf("%s %s in these conditions", team, verb)
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
