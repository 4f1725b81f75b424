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

const (
	sharpActionThreshold  = 8.0 // bet% vs money% gap that flags sharp involvement
	steamVarianceCeiling  = 0.5
	marketMaxConfidence   = 0.85
	marketFloorConfidence = 0.5
)

// marketSnapshot is one simulated read of the betting market for a matchup.
type marketSnapshot struct {
	OpeningLine  float64
	CurrentLine  float64
	LineMovement float64
	Splits       bettingSplits
	BookLines    map[string]float64
	CapturedAt   time.Time
}

type bettingSplits struct {
	HomeBetPct   float64
	AwayBetPct   float64
	HomeMoneyPct float64
	AwayMoneyPct float64
	BetMoneyDiff float64
}

type marketSignal struct {
	Kind        string
	Impact      float64
	Description string
}

type marketAnalysis struct {
	SharpDetected    bool
	MovementLevel    string // "high", "moderate", "low"
	SharpConsensus   string // team name or "unclear"
	Signals          []marketSignal
	PublicSentiment  string // "heavy_home", "heavy_away", "moderate_home", "moderate_away", "balanced"
	ContrarianSide   string
	LineVariance     float64
	MarketConfidence float64
}

// MarketAgent reads simulated betting-market structure: line movement from
// open to current, bet-count vs money splits, cross-book spread, and the
// sharp/steam/reverse-line signals those imply. All market data is
// synthesized from team market profiles, there is no live odds feed.
type MarketAgent struct {
	name   string
	logger *logrus.Logger

	mu           sync.Mutex
	rng          *rand.Rand
	cache        *ttlCache
	status       string
	lastActivity time.Time
}

func NewMarketAgent(name string, rng *rand.Rand, cacheTTL time.Duration, cacheMax int, logger *logrus.Logger) *MarketAgent {
	return &MarketAgent{
		name:         name,
		logger:       logger,
		rng:          rng,
		cache:        newTTLCache(cacheTTL, cacheMax),
		status:       statusActive,
		lastActivity: time.Now(),
	}
}

func (a *MarketAgent) Name() string { return a.name }

func (a *MarketAgent) Status() models.AgentStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.AgentStatus{
		AgentName:    a.name,
		Status:       a.status,
		LastActivity: a.lastActivity,
		CacheSize:    a.cache.len(),
		Message:      fmt.Sprintf("Market analysis ready. Monitoring %d sportsbooks and betting patterns.", len(sportsbooks)),
	}
}

func (a *MarketAgent) Refresh(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = time.Now()
	removed := a.cache.sweep(time.Now())
	a.logger.WithFields(logrus.Fields{
		"agent":           a.name,
		"expired_entries": removed,
	}).Info("Market intelligence agent refreshed")
}

func (a *MarketAgent) Predict(ctx context.Context, matchup models.Matchup, gameCtx *models.GameContext) (*models.AgentVerdict, error) {
	if err := validateMatchup(matchup); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = time.Now()
	a.status = statusPredicting
	defer func() { a.status = statusActive }()

	snapshot := a.marketSnapshot(matchup)
	analysis := analyzeMarket(snapshot, matchup.HomeTeam, matchup.AwayTeam)
	winner, confidence := a.marketVerdict(matchup, snapshot, analysis)

	marketEdge := 0.0
	for _, s := range analysis.Signals {
		marketEdge += s.Impact
	}

	verdict := &models.AgentVerdict{
		AgentName:  a.name,
		Winner:     winner,
		Confidence: round3(confidence),
		Reasoning:  marketReasoning(matchup, snapshot, analysis, confidence),
		DataSource: models.SourceSimulated,
		Diagnostics: map[string]float64{
			"opening_line":   snapshot.OpeningLine,
			"current_line":   snapshot.CurrentLine,
			"line_movement":  snapshot.LineMovement,
			"home_bet_pct":   snapshot.Splits.HomeBetPct,
			"home_money_pct": snapshot.Splits.HomeMoneyPct,
			"market_edge":    round3(marketEdge),
		},
		KeyFactors:  marketKeyFactors(analysis),
		PredictedAt: time.Now(),
	}

	a.logger.WithFields(logrus.Fields{
		"agent":           a.name,
		"winner":          winner,
		"confidence":      verdict.Confidence,
		"sharp_consensus": analysis.SharpConsensus,
	}).Info("Market analysis complete")

	return verdict, nil
}

// marketSnapshot builds or reuses one simulated read of the market. Cached
// per matchup so repeated calls inside a TTL window see a stable market.
func (a *MarketAgent) marketSnapshot(matchup models.Matchup) *marketSnapshot {
	now := time.Now()
	key := matchup.AwayTeam + "@" + matchup.HomeTeam + "_market"
	if cached, ok := a.cache.get(key, now); ok {
		return cached.(*marketSnapshot)
	}

	opening := a.openingLine(matchup.HomeTeam, matchup.AwayTeam)
	current := a.moveLine(opening, matchup.HomeTeam, matchup.AwayTeam)
	snapshot := &marketSnapshot{
		OpeningLine:  opening,
		CurrentLine:  current,
		LineMovement: current - opening,
		Splits:       a.bettingSplits(matchup.HomeTeam, matchup.AwayTeam),
		BookLines:    a.bookLines(current),
		CapturedAt:   now,
	}
	a.cache.put(key, snapshot, now)
	return snapshot
}

// openingLine starts from pick'em and tilts toward the side sharps respect
// more. Negative means home favored.
func (a *MarketAgent) openingLine(homeTeam, awayTeam string) float64 {
	home := marketProfileFor(homeTeam)
	away := marketProfileFor(awayTeam)
	line := (home.SharpRespect - away.SharpRespect) * 3
	line += a.rng.Float64()*3 - 1.5
	return roundHalf(line)
}

func (a *MarketAgent) moveLine(opening float64, homeTeam, awayTeam string) float64 {
	home := marketProfileFor(homeTeam)
	away := marketProfileFor(awayTeam)
	publicDiff := home.PublicPopularity - away.PublicPopularity

	var movement float64
	switch draw := a.rng.Float64(); {
	case draw <= 0.3: // sharps fade the public side early
		movement = -publicDiff * 2
	case draw <= 0.7: // public money lands late
		movement = publicDiff * 1.5
	case draw <= 0.9: // steam
		steps := []float64{-2, -1.5, 1.5, 2}
		movement = steps[a.rng.Intn(len(steps))]
	default:
		movement = a.rng.Float64() - 0.5
	}
	return roundHalf(opening + movement)
}

func (a *MarketAgent) bettingSplits(homeTeam, awayTeam string) bettingSplits {
	home := marketProfileFor(homeTeam)
	away := marketProfileFor(awayTeam)

	total := home.PublicPopularity + away.PublicPopularity
	betPct := home.PublicPopularity / total * 100
	betPct += a.rng.Float64()*20 - 10
	betPct = clamp(betPct, 20, 80)

	// When the public piles on one side, the money often leans the other
	// way. That gap is the sharp tell downstream analysis keys on.
	var moneyPct float64
	switch {
	case betPct > 65:
		moneyPct = betPct - (5 + a.rng.Float64()*10)
	case betPct < 35:
		moneyPct = betPct + (5 + a.rng.Float64()*10)
	default:
		moneyPct = betPct + (a.rng.Float64()*10 - 5)
	}
	moneyPct = clamp(moneyPct, 20, 80)

	return bettingSplits{
		HomeBetPct:   round1(betPct),
		AwayBetPct:   round1(100 - betPct),
		HomeMoneyPct: round1(moneyPct),
		AwayMoneyPct: round1(100 - moneyPct),
		BetMoneyDiff: abs(betPct - moneyPct),
	}
}

func (a *MarketAgent) bookLines(current float64) map[string]float64 {
	lines := make(map[string]float64, len(sportsbooks))
	for book, profile := range sportsbooks {
		spread := 0.5
		if profile.Reputation == "sharp" {
			spread = 0.25
		}
		lines[book] = roundHalf(current + (a.rng.Float64()*2-1)*spread)
	}
	return lines
}

func marketProfileFor(team string) marketProfile {
	if p, ok := teamMarketProfiles[team]; ok {
		return p
	}
	return defaultMarketProfile
}

func analyzeMarket(snapshot *marketSnapshot, homeTeam, awayTeam string) *marketAnalysis {
	splits := snapshot.Splits
	analysis := &marketAnalysis{
		SharpDetected:  splits.BetMoneyDiff > sharpActionThreshold,
		SharpConsensus: "unclear",
	}

	switch {
	case abs(snapshot.LineMovement) > 1.5:
		analysis.MovementLevel = "high"
	case abs(snapshot.LineMovement) > 0.5:
		analysis.MovementLevel = "moderate"
	default:
		analysis.MovementLevel = "low"
	}

	if analysis.SharpDetected {
		if splits.HomeMoneyPct > splits.HomeBetPct+5 {
			analysis.SharpConsensus = homeTeam
		} else {
			analysis.SharpConsensus = awayTeam
		}
		analysis.Signals = append(analysis.Signals, marketSignal{
			Kind:        "sharp_money",
			Impact:      0.12,
			Description: fmt.Sprintf("Sharp money differential of %.1f%% detected", splits.BetMoneyDiff),
		})
	}

	if analysis.MovementLevel == "high" {
		analysis.Signals = append(analysis.Signals, marketSignal{
			Kind:        "line_movement",
			Impact:      0.10,
			Description: fmt.Sprintf("Significant line movement of %.1f points", abs(snapshot.LineMovement)),
		})
	}

	// Line drifting toward the away side while the public hammers home.
	if snapshot.LineMovement > 0.5 && splits.HomeBetPct > 60 {
		analysis.Signals = append(analysis.Signals, marketSignal{
			Kind:        "reverse_line",
			Impact:      0.08,
			Description: "Reverse line movement against public sentiment",
		})
	}

	analysis.LineVariance = bookLineVariance(snapshot.BookLines)
	if analysis.LineVariance < steamVarianceCeiling && abs(snapshot.LineMovement) > 1 {
		analysis.Signals = append(analysis.Signals, marketSignal{
			Kind:        "steam_move",
			Impact:      0.15,
			Description: "Steam move detected across multiple sportsbooks",
		})
	}

	switch {
	case splits.HomeBetPct > 70:
		analysis.PublicSentiment, analysis.ContrarianSide = "heavy_home", awayTeam
	case splits.HomeBetPct < 30:
		analysis.PublicSentiment, analysis.ContrarianSide = "heavy_away", homeTeam
	case splits.HomeBetPct > 60:
		analysis.PublicSentiment, analysis.ContrarianSide = "moderate_home", awayTeam
	case splits.HomeBetPct < 40:
		analysis.PublicSentiment, analysis.ContrarianSide = "moderate_away", homeTeam
	default:
		analysis.PublicSentiment = "balanced"
	}

	switch {
	case analysis.LineVariance < 0.5:
		analysis.MarketConfidence = 0.85
	case analysis.LineVariance < 1.0:
		analysis.MarketConfidence = 0.7
	default:
		analysis.MarketConfidence = 0.55
	}

	return analysis
}

func bookLineVariance(lines map[string]float64) float64 {
	first := true
	var lo, hi float64
	for _, line := range lines {
		if first {
			lo, hi = line, line
			first = false
			continue
		}
		if line < lo {
			lo = line
		}
		if line > hi {
			hi = line
		}
	}
	return hi - lo
}

// marketVerdict picks a side from sharp consensus first, heavy public lean
// second, then line direction, and falls back to a coin flip only when the
// market is truly flat.
func (a *MarketAgent) marketVerdict(matchup models.Matchup, snapshot *marketSnapshot, analysis *marketAnalysis) (string, float64) {
	var winner string
	var base float64

	switch {
	case analysis.SharpConsensus == matchup.HomeTeam:
		winner, base = matchup.HomeTeam, 0.6
	case analysis.SharpConsensus == matchup.AwayTeam:
		winner, base = matchup.AwayTeam, 0.6
	case analysis.PublicSentiment == "heavy_away":
		winner, base = matchup.AwayTeam, 0.55
	case analysis.PublicSentiment == "heavy_home":
		winner, base = matchup.HomeTeam, 0.55
	case abs(snapshot.LineMovement) >= 0.5:
		// Positive movement means the away side got stronger.
		if snapshot.LineMovement > 0 {
			winner = matchup.AwayTeam
		} else {
			winner = matchup.HomeTeam
		}
		base = 0.51
	default:
		winner = matchup.HomeTeam
		if a.rng.Float64() < 0.5 {
			winner = matchup.AwayTeam
		}
		base = 0.51
	}

	signalBoost := 0.0
	for _, s := range analysis.Signals {
		signalBoost += s.Impact
	}
	signalBoost *= 0.5

	efficiencyBoost := (analysis.MarketConfidence - 0.7) * 0.2

	return winner, clamp(base+signalBoost+efficiencyBoost, marketFloorConfidence, marketMaxConfidence)
}

func marketKeyFactors(analysis *marketAnalysis) []string {
	signals := make([]marketSignal, len(analysis.Signals))
	copy(signals, analysis.Signals)
	sort.Slice(signals, func(i, j int) bool { return signals[i].Impact > signals[j].Impact })
	if len(signals) > 3 {
		signals = signals[:3]
	}
	factors := make([]string, len(signals))
	for i, s := range signals {
		factors[i] = s.Description
	}
	return factors
}

func marketReasoning(matchup models.Matchup, snapshot *marketSnapshot, analysis *marketAnalysis, confidence float64) string {
	parts := make([]string, 0, 5)

	if abs(snapshot.LineMovement) > 1 {
		toward := matchup.HomeTeam
		if snapshot.LineMovement > 0 {
			toward = matchup.AwayTeam
		}
		parts = append(parts, fmt.Sprintf("Line moved %.1f points toward %s", abs(snapshot.LineMovement), toward))
	}

	if analysis.SharpDetected {
		parts = append(parts, fmt.Sprintf("Sharp money consensus favors %s", analysis.SharpConsensus))
	}

	if len(analysis.Signals) > 0 {
		parts = append(parts, "Key signal: "+analysis.Signals[0].Description)
	}

	if analysis.ContrarianSide != "" {
		parts = append(parts, fmt.Sprintf("Contrarian value detected on %s", analysis.ContrarianSide))
	}

	switch {
	case confidence > 0.75:
		parts = append(parts, "High confidence due to strong market signals")
	case confidence > 0.6:
		parts = append(parts, "Moderate confidence based on market intelligence")
	default:
		parts = append(parts, "Low confidence - market shows mixed signals")
	}

	return strings.Join(parts, ". ") + "."
}

// roundHalf snaps a point spread to the nearest half point.
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
