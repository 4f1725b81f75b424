package agents

import (
	"context"
	"errors"
	"math/rand"

	"github.com/nflpredict/prediction-service/internal/models"
)

// ErrInvalidMatchup is returned when a matchup is missing a side. The
// pipeline never guesses team identities.
var ErrInvalidMatchup = errors.New("matchup must include both home and away team names")

// Agent is an independent heuristic scorer. Implementations are the closed
// set {Statistical, Weather, Sentiment, Market}. Predict never fails for
// data-availability reasons; any provider error is absorbed by a
// procedurally generated fallback and reflected in the verdict's
// DataSource field.
type Agent interface {
	Name() string
	Predict(ctx context.Context, matchup models.Matchup, gameCtx *models.GameContext) (*models.AgentVerdict, error)
	Status() models.AgentStatus
	Refresh(ctx context.Context)
}

const (
	statusActive     = "active"
	statusPredicting = "predicting"
)

func validateMatchup(m models.Matchup) error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return ErrInvalidMatchup
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pickWinner maps an advantage differential (positive favors home) to a
// winner and confidence. Inside the neutral band the winner is an unbiased
// coin flip with confidence pinned just above 0.5, which keeps ambiguous
// games free of a systematic home-side lean.
func pickWinner(rng *rand.Rand, m models.Matchup, differential, neutralBand, scale, maxConfidence float64) (string, float64) {
	switch {
	case differential > neutralBand:
		return m.HomeTeam, clamp(0.5+differential*scale, 0.5, maxConfidence)
	case differential < -neutralBand:
		return m.AwayTeam, clamp(0.5-differential*scale, 0.5, maxConfidence)
	default:
		winner := m.HomeTeam
		if rng.Float64() < 0.5 {
			winner = m.AwayTeam
		}
		return winner, 0.51
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
