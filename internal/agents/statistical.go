package agents

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nflpredict/prediction-service/internal/models"
)

// StatsProvider supplies a season statline for a team. Implementations
// live in internal/providers; errors and timeouts are absorbed by the
// agent's simulation fallback.
type StatsProvider interface {
	TeamStats(ctx context.Context, team string) (*models.TeamStats, error)
}

// Fixed blend weights, summing to 1.0.
const (
	weightWinRate           = 0.35
	weightPointDifferential = 0.30
	weightRecentForm        = 0.20
	weightHomeAwaySplit     = 0.10
	weightScheduleStrength  = 0.05

	homeFieldBonus = 2.5

	// One point of strength differential is worth 1/20 of confidence.
	statConfidenceScale = 1.0 / 20.0
	statNeutralBand     = 0.5
)

// StatisticalAgent scores a matchup from season statlines: win rate,
// point differential, recent form, home/away splits and strength of
// schedule.
type StatisticalAgent struct {
	name     string
	logger   *logrus.Logger
	provider StatsProvider

	mu           sync.Mutex
	rng          *rand.Rand
	cache        *ttlCache
	status       string
	lastActivity time.Time
}

func NewStatisticalAgent(name string, provider StatsProvider, rng *rand.Rand, cacheTTL time.Duration, cacheMax int, logger *logrus.Logger) *StatisticalAgent {
	return &StatisticalAgent{
		name:         name,
		logger:       logger,
		provider:     provider,
		rng:          rng,
		cache:        newTTLCache(cacheTTL, cacheMax),
		status:       statusActive,
		lastActivity: time.Now(),
	}
}

func (a *StatisticalAgent) Name() string { return a.name }

func (a *StatisticalAgent) Status() models.AgentStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.AgentStatus{
		AgentName:    a.name,
		Status:       a.status,
		LastActivity: a.lastActivity,
		CacheSize:    a.cache.len(),
		Message:      fmt.Sprintf("Ready with statline data. Cache: %d teams.", a.cache.len()),
	}
}

func (a *StatisticalAgent) Refresh(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = time.Now()
	removed := a.cache.sweep(time.Now())
	a.logger.WithFields(logrus.Fields{
		"agent":           a.name,
		"expired_entries": removed,
	}).Info("Agent refreshed")
}

func (a *StatisticalAgent) Predict(ctx context.Context, matchup models.Matchup, gameCtx *models.GameContext) (*models.AgentVerdict, error) {
	if err := validateMatchup(matchup); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = time.Now()
	a.status = statusPredicting
	defer func() { a.status = statusActive }()

	homeStats := a.teamStats(ctx, matchup.HomeTeam, contextStats(gameCtx, true))
	awayStats := a.teamStats(ctx, matchup.AwayTeam, contextStats(gameCtx, false))

	homeScore := teamStrength(homeStats, true) + homeFieldBonus
	awayScore := teamStrength(awayStats, false)
	differential := homeScore - awayScore

	winner, confidence := pickWinner(a.rng, matchup, differential, statNeutralBand, statConfidenceScale, 0.9)

	factors := statKeyFactors(homeStats, awayStats)
	source := models.SourceSimulated
	if homeStats.Source != models.SourceSimulated && awayStats.Source != models.SourceSimulated {
		source = homeStats.Source
	}

	verdict := &models.AgentVerdict{
		AgentName:  a.name,
		Winner:     winner,
		Confidence: round3(confidence),
		Reasoning:  statReasoning(matchup, homeStats, awayStats, winner, confidence, factors),
		DataSource: source,
		Diagnostics: map[string]float64{
			"home_strength_score": round2(homeScore),
			"away_strength_score": round2(awayScore),
			"score_differential":  round2(abs(differential)),
		},
		KeyFactors:  factors,
		PredictedAt: time.Now(),
	}

	a.logger.WithFields(logrus.Fields{
		"agent":      a.name,
		"winner":     winner,
		"confidence": verdict.Confidence,
		"source":     source,
	}).Info("Statistical prediction complete")

	return verdict, nil
}

// contextStats pulls the relevant side's statline out of the collector
// bundle, tolerating a nil context.
func contextStats(gameCtx *models.GameContext, home bool) *models.TeamStats {
	if gameCtx == nil {
		return nil
	}
	if home {
		return gameCtx.HomeStats
	}
	return gameCtx.AwayStats
}

// teamStats resolves one side's statline: collector context first, then
// the agent cache, then the live provider, then simulation.
func (a *StatisticalAgent) teamStats(ctx context.Context, team string, fromContext *models.TeamStats) *models.TeamStats {
	if fromContext != nil {
		return fromContext
	}

	now := time.Now()
	cacheKey := team + "_stats"
	if cached, ok := a.cache.get(cacheKey, now); ok {
		return cached.(*models.TeamStats)
	}

	var stats *models.TeamStats
	if a.provider != nil {
		fetched, err := a.provider.TeamStats(ctx, team)
		if err != nil {
			a.logger.WithFields(logrus.Fields{
				"agent": a.name,
				"team":  team,
			}).WithError(err).Warn("Stats provider failed, using simulation")
		} else {
			stats = fetched
		}
	}
	if stats == nil {
		stats = a.simulateTeamStats(team)
	}

	a.cache.put(cacheKey, stats, now)
	return stats
}

// simulateTeamStats fabricates a plausible statline when no live data is
// available.
func (a *StatisticalAgent) simulateTeamStats(team string) *models.TeamStats {
	winRate := 0.25 + a.rng.Float64()*0.5
	pointDiff := (winRate-0.5)*20 + (a.rng.Float64()*4 - 2)

	recentForm := make([]int, 4)
	for i := range recentForm {
		chance := winRate + (a.rng.Float64()*0.4 - 0.2)
		if a.rng.Float64() < chance {
			recentForm[i] = 1
		}
	}

	homeWinRate := clamp(winRate+0.05+a.rng.Float64()*0.10, 0.1, 0.9)
	awayWinRate := clamp(winRate-0.05-a.rng.Float64()*0.10, 0.1, 0.9)
	pointsPerGame := 20 + winRate*15 + (a.rng.Float64()*4 - 2)
	pointsAllowed := 20 + (1-winRate)*15 + (a.rng.Float64()*4 - 2)

	return &models.TeamStats{
		Team:                 team,
		WinRate:              round3(winRate),
		PointDifferential:    round2(pointDiff),
		RecentForm:           recentForm,
		HomeWinRate:          round3(homeWinRate),
		AwayWinRate:          round3(awayWinRate),
		StrengthOfSchedule:   0.5,
		PointsPerGame:        round1(pointsPerGame),
		PointsAllowedPerGame: round1(pointsAllowed),
		Source:               models.SourceSimulated,
		LastUpdated:          time.Now(),
	}
}

// teamStrength blends the weighted statline components into a single
// score on a roughly 0-100 scale.
func teamStrength(stats *models.TeamStats, home bool) float64 {
	splitRate := stats.AwayWinRate
	if home {
		splitRate = stats.HomeWinRate
	}
	if splitRate == 0 {
		splitRate = stats.WinRate
	}

	score := splitRate * 100 * weightWinRate

	pointDiffScore := clamp((stats.PointDifferential+10)*1.5, 0, 30)
	score += pointDiffScore * weightPointDifferential

	recentWins := 0
	for _, w := range stats.RecentForm {
		recentWins += w
	}
	if len(stats.RecentForm) > 0 {
		score += float64(recentWins) / float64(len(stats.RecentForm)) * 100 * weightRecentForm
	}

	score += splitRate * 100 * weightHomeAwaySplit
	score += stats.StrengthOfSchedule * 100 * weightScheduleStrength

	return score
}

type weightedFactor struct {
	magnitude float64
	text      string
}

func statKeyFactors(home, away *models.TeamStats) []string {
	var factors []weightedFactor

	homeWR, awayWR := home.HomeWinRate, away.AwayWinRate
	if gap := homeWR - awayWR; abs(gap) > 0.15 {
		better, hi, lo := home.Team, homeWR, awayWR
		if gap < 0 {
			better, hi, lo = away.Team, awayWR, homeWR
		}
		factors = append(factors, weightedFactor{abs(gap), fmt.Sprintf("%s has superior win rate (%.1f%% vs %.1f%%)", better, hi*100, lo*100)})
	}

	if gap := home.PointDifferential - away.PointDifferential; abs(gap) > 3 {
		better, hi, lo := home.Team, home.PointDifferential, away.PointDifferential
		if gap < 0 {
			better, hi, lo = away.Team, away.PointDifferential, home.PointDifferential
		}
		factors = append(factors, weightedFactor{abs(gap) / 20, fmt.Sprintf("%s has better point differential (%+.1f vs %+.1f)", better, hi, lo)})
	}

	homeRecent, awayRecent := sumForm(home.RecentForm), sumForm(away.RecentForm)
	if gap := homeRecent - awayRecent; gap >= 2 || gap <= -2 {
		hot, wins := home.Team, homeRecent
		if gap < 0 {
			hot, wins = away.Team, awayRecent
		}
		factors = append(factors, weightedFactor{abs(float64(gap)) / 4, fmt.Sprintf("%s is hot with %d wins in last 4 games", hot, wins)})
	}

	sort.Slice(factors, func(i, j int) bool { return factors[i].magnitude > factors[j].magnitude })
	if len(factors) > 3 {
		factors = factors[:3]
	}
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.text
	}
	return out
}

func statReasoning(m models.Matchup, home, away *models.TeamStats, winner string, confidence float64, factors []string) string {
	parts := make([]string, 0, 4)

	if home.Source != models.SourceSimulated {
		parts = append(parts, fmt.Sprintf("Using real %s data", home.Source))
	}

	if winner == m.HomeTeam {
		if home.HomeWinRate > away.AwayWinRate {
			parts = append(parts, fmt.Sprintf("%s has better home record (%.1f%% vs %s's %.1f%% away)", m.HomeTeam, home.HomeWinRate*100, m.AwayTeam, away.AwayWinRate*100))
		} else {
			parts = append(parts, fmt.Sprintf("%s benefits from home field advantage", m.HomeTeam))
		}
	} else {
		parts = append(parts, fmt.Sprintf("%s's road performance (%.1f%%) overcomes home advantage", m.AwayTeam, away.AwayWinRate*100))
	}

	if len(factors) > 0 {
		parts = append(parts, factors[0])
	}

	switch {
	case confidence > 0.75:
		parts = append(parts, fmt.Sprintf("High confidence - %s has clear advantage", winner))
	case confidence > 0.60:
		parts = append(parts, fmt.Sprintf("Moderate confidence in %s", winner))
	default:
		parts = append(parts, "Low confidence - evenly matched")
	}

	if len(parts) > 4 {
		parts = parts[:4]
	}
	return strings.Join(parts, ". ") + "."
}

func sumForm(form []int) int {
	total := 0
	for _, w := range form {
		total += w
	}
	return total
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
