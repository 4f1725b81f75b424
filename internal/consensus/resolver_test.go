package consensus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nflpredict/prediction-service/internal/models"
)

const (
	home = "Buffalo Bills"
	away = "Miami Dolphins"
)

func verdict(agent, winner string, confidence float64) models.AgentVerdict {
	return models.AgentVerdict{
		AgentName:  agent,
		Winner:     winner,
		Confidence: confidence,
		Reasoning:  "Detailed reasoning from " + agent + " covering several factors in depth.",
	}
}

func TestResolveUnanimousAddsBonus(t *testing.T) {
	verdicts := []models.AgentVerdict{
		verdict("stat_machine", home, 0.8),
		verdict("weather_wizard", home, 0.7),
		verdict("news_hound", home, 0.9),
		verdict("sharp_eye", home, 0.6),
	}

	result := Resolve(home, away, verdicts)

	assert.Equal(t, home, result.Winner)
	assert.True(t, result.Unanimous)
	// Mean 0.75 plus the unanimity bonus.
	assert.InDelta(t, 0.80, result.Confidence, 0.0001)
	assert.True(t, strings.HasPrefix(result.Reasoning, "Unanimous decision: All 4 agents favor Buffalo Bills."))
	assert.Equal(t, map[string]int{home: 4, away: 0}, result.VoteTally)
}

func TestResolveUnanimousBonusCanExceedAgentCeiling(t *testing.T) {
	verdicts := []models.AgentVerdict{
		verdict("stat_machine", away, 0.9),
		verdict("weather_wizard", away, 0.9),
		verdict("news_hound", away, 0.88),
		verdict("sharp_eye", away, 0.9),
	}

	result := Resolve(home, away, verdicts)
	assert.InDelta(t, 0.945, result.Confidence, 0.0001)
}

func TestResolveMajorityAveragesAgreeingAgents(t *testing.T) {
	verdicts := []models.AgentVerdict{
		verdict("stat_machine", home, 0.8),
		verdict("weather_wizard", home, 0.6),
		verdict("news_hound", away, 0.9),
		verdict("sharp_eye", home, 0.7),
	}

	result := Resolve(home, away, verdicts)

	assert.Equal(t, home, result.Winner)
	assert.False(t, result.Unanimous)
	// Mean of the three agreeing confidences; the dissenter is excluded.
	assert.InDelta(t, 0.7, result.Confidence, 0.0001)
	assert.True(t, strings.HasPrefix(result.Reasoning, "Strong majority: 3/4 agents favor Buffalo Bills."))
	assert.Equal(t, map[string]int{home: 3, away: 1}, result.VoteTally)
}

func TestResolveSplitDefersToMostConfidentAgent(t *testing.T) {
	verdicts := []models.AgentVerdict{
		verdict("stat_machine", home, 0.70),
		verdict("weather_wizard", away, 0.85),
		verdict("news_hound", home, 0.60),
		verdict("sharp_eye", away, 0.55),
	}

	result := Resolve(home, away, verdicts)

	assert.Equal(t, away, result.Winner, "the 0.85 weather call decides the split")
	assert.InDelta(t, 0.85*0.9, result.Confidence, 0.0001)
	assert.False(t, result.Unanimous)
	assert.True(t, strings.HasPrefix(result.Reasoning, "Split decision (2-2) resolved by highest confidence prediction."))
}

func TestResolveSplitConfidenceTieKeepsFirstListed(t *testing.T) {
	verdicts := []models.AgentVerdict{
		verdict("stat_machine", home, 0.8),
		verdict("weather_wizard", away, 0.8),
		verdict("news_hound", away, 0.6),
		verdict("sharp_eye", home, 0.6),
	}

	result := Resolve(home, away, verdicts)
	assert.Equal(t, home, result.Winner)
}

func TestResolveNarrativePreservesAgentOrder(t *testing.T) {
	verdicts := []models.AgentVerdict{
		verdict("stat_machine", home, 0.8),
		verdict("weather_wizard", home, 0.7),
		verdict("news_hound", home, 0.6),
		verdict("sharp_eye", home, 0.7),
	}

	result := Resolve(home, away, verdicts)

	idxStat := strings.Index(result.Reasoning, "stat_machine:")
	idxWeather := strings.Index(result.Reasoning, "weather_wizard:")
	idxNews := strings.Index(result.Reasoning, "news_hound:")
	idxMarket := strings.Index(result.Reasoning, "sharp_eye:")
	require.True(t, idxStat >= 0 && idxWeather >= 0 && idxNews >= 0 && idxMarket >= 0)
	assert.True(t, idxStat < idxWeather && idxWeather < idxNews && idxNews < idxMarket)

	// Each rationale is clipped to 40 characters before the ellipsis. The
	// first segment also carries the framing sentence, so cut from the
	// agent name rather than the segment start.
	for _, segment := range strings.Split(result.Reasoning, " | ") {
		start := strings.LastIndex(segment, ": ")
		require.True(t, start >= 0)
		rationale := segment[start+2:]
		assert.True(t, strings.HasSuffix(rationale, "..."))
		assert.LessOrEqual(t, len(strings.TrimSuffix(rationale, "...")), 40)
	}

	assert.NotEmpty(t, result.PredictionID)
}

func TestResolveIsDeterministic(t *testing.T) {
	verdicts := []models.AgentVerdict{
		verdict("stat_machine", home, 0.72),
		verdict("weather_wizard", away, 0.66),
		verdict("news_hound", home, 0.58),
		verdict("sharp_eye", home, 0.61),
	}

	first := Resolve(home, away, verdicts)
	second := Resolve(home, away, verdicts)

	assert.Equal(t, first.Winner, second.Winner)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Reasoning, second.Reasoning)
}
