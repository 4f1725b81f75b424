package agents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nflpredict/prediction-service/internal/models"
)

func TestMarketAgentConfidenceBounds(t *testing.T) {
	agent := NewMarketAgent("sharp_eye", testRNG(3), time.Hour, 128, testLogger())

	pairs := [][2]string{
		{"Dallas Cowboys", "Kansas City Chiefs"},
		{"Buffalo Bills", "Baltimore Ravens"},
		{"Houston Texans", "Jacksonville Jaguars"},
		{"Green Bay Packers", "San Francisco 49ers"},
	}
	for i, pair := range pairs {
		matchup := models.Matchup{GameID: uint(400 + i), HomeTeam: pair[0], AwayTeam: pair[1]}
		verdict, err := agent.Predict(context.Background(), matchup, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, verdict.Confidence, 0.5)
		assert.LessOrEqual(t, verdict.Confidence, 0.85, "market reads never exceed the 0.85 ceiling")
		assert.Contains(t, []string{matchup.HomeTeam, matchup.AwayTeam}, verdict.Winner)
		assert.Equal(t, models.SourceSimulated, verdict.DataSource)
	}
}

func TestMarketAgentSnapshotIsStableWithinTTL(t *testing.T) {
	agent := NewMarketAgent("sharp_eye", testRNG(8), time.Hour, 32, testLogger())
	matchup := testMatchup()

	first, err := agent.Predict(context.Background(), matchup, nil)
	require.NoError(t, err)
	second, err := agent.Predict(context.Background(), matchup, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Diagnostics["opening_line"], second.Diagnostics["opening_line"])
	assert.Equal(t, first.Diagnostics["current_line"], second.Diagnostics["current_line"])
	assert.Equal(t, first.Diagnostics["home_bet_pct"], second.Diagnostics["home_bet_pct"])
	assert.Equal(t, 1, agent.Status().CacheSize)
}

func TestMarketAgentRejectsIncompleteMatchup(t *testing.T) {
	agent := NewMarketAgent("sharp_eye", testRNG(1), time.Hour, 32, testLogger())
	_, err := agent.Predict(context.Background(), models.Matchup{AwayTeam: "Miami Dolphins"}, nil)
	assert.ErrorIs(t, err, ErrInvalidMatchup)
}

func TestAnalyzeMarketSharpConsensus(t *testing.T) {
	snapshot := &marketSnapshot{
		OpeningLine:  -1.5,
		CurrentLine:  -3.5,
		LineMovement: -2,
		Splits: bettingSplits{
			HomeBetPct:   40,
			AwayBetPct:   60,
			HomeMoneyPct: 55,
			AwayMoneyPct: 45,
			BetMoneyDiff: 15,
		},
		BookLines: map[string]float64{"pinnacle": -3.5, "draftkings": -3.5, "fanduel": -3.5},
	}

	analysis := analyzeMarket(snapshot, "Buffalo Bills", "Miami Dolphins")

	assert.True(t, analysis.SharpDetected)
	assert.Equal(t, "Buffalo Bills", analysis.SharpConsensus, "money leading bets flags sharp action on the home side")
	assert.Equal(t, "high", analysis.MovementLevel)

	kinds := make([]string, len(analysis.Signals))
	for i, s := range analysis.Signals {
		kinds[i] = s.Kind
	}
	assert.Contains(t, kinds, "sharp_money")
	assert.Contains(t, kinds, "line_movement")
	assert.Contains(t, kinds, "steam_move", "identical books plus a 2-point move reads as steam")
}

func TestAnalyzeMarketReverseLineMovement(t *testing.T) {
	snapshot := &marketSnapshot{
		OpeningLine:  -2,
		CurrentLine:  -1,
		LineMovement: 1,
		Splits: bettingSplits{
			HomeBetPct:   72,
			AwayBetPct:   28,
			HomeMoneyPct: 70,
			AwayMoneyPct: 30,
			BetMoneyDiff: 2,
		},
		BookLines: map[string]float64{"pinnacle": -1, "draftkings": -0.5, "fanduel": -1.5},
	}

	analysis := analyzeMarket(snapshot, "Dallas Cowboys", "Philadelphia Eagles")

	assert.False(t, analysis.SharpDetected)
	assert.Equal(t, "unclear", analysis.SharpConsensus)
	assert.Equal(t, "heavy_home", analysis.PublicSentiment)
	assert.Equal(t, "Philadelphia Eagles", analysis.ContrarianSide)

	kinds := make([]string, len(analysis.Signals))
	for i, s := range analysis.Signals {
		kinds[i] = s.Kind
	}
	assert.Contains(t, kinds, "reverse_line")
}

func TestMarketVerdictFollowsSharpConsensus(t *testing.T) {
	agent := NewMarketAgent("sharp_eye", testRNG(1), time.Hour, 32, testLogger())
	matchup := testMatchup()

	snapshot := &marketSnapshot{LineMovement: -2}
	analysis := &marketAnalysis{
		SharpDetected:    true,
		SharpConsensus:   matchup.AwayTeam,
		Signals:          []marketSignal{{Kind: "sharp_money", Impact: 0.12}},
		MarketConfidence: 0.85,
	}

	winner, confidence := agent.marketVerdict(matchup, snapshot, analysis)
	assert.Equal(t, matchup.AwayTeam, winner)
	// 0.6 base + 0.06 signal boost + 0.03 efficiency boost.
	assert.InDelta(t, 0.69, confidence, 0.001)
}

func TestRoundHalf(t *testing.T) {
	assert.Equal(t, 2.5, roundHalf(2.6))
	assert.Equal(t, -3.0, roundHalf(-3.1))
	assert.Equal(t, 0.0, roundHalf(0.2))
	assert.Equal(t, 1.5, roundHalf(1.3))
}
