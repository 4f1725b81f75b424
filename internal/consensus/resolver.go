// Package consensus merges the four agent verdicts into a single call.
// Resolution is fully deterministic: the same verdicts in the same order
// always produce the same winner, confidence and narrative.
package consensus

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nflpredict/prediction-service/internal/models"
)

const (
	unanimityBonus   = 0.05
	splitPenalty     = 0.9
	rationaleClipLen = 40
)

// Resolve folds agent verdicts into a consensus. Verdict order is the
// caller's fixed agent order and is preserved in the narrative. A majority
// takes the mean confidence of the agreeing agents; a unanimous slate adds
// a flat bonus on top of that mean, which may land above 0.9. A 2-2 split
// defers to the single most confident agent at a discount.
func Resolve(homeTeam, awayTeam string, verdicts []models.AgentVerdict) *models.ConsensusVerdict {
	homeVotes, awayVotes := 0, 0
	for _, v := range verdicts {
		switch v.Winner {
		case homeTeam:
			homeVotes++
		case awayTeam:
			awayVotes++
		}
	}

	winner := awayTeam
	if homeVotes > awayVotes {
		winner = homeTeam
	}
	confidence := meanConfidenceFor(winner, verdicts)

	unanimous := homeVotes == len(verdicts) || awayVotes == len(verdicts)

	var framing string
	switch {
	case unanimous:
		framing = fmt.Sprintf("Unanimous decision: All %d agents favor %s. ", len(verdicts), winner)
		confidence += unanimityBonus
	case homeVotes != awayVotes:
		majority := homeVotes
		if awayVotes > majority {
			majority = awayVotes
		}
		framing = fmt.Sprintf("Strong majority: %d/%d agents favor %s. ", majority, len(verdicts), winner)
	default:
		// Dead even. The single most confident agent calls it, discounted
		// for the disagreement. First-listed wins confidence ties, which
		// keeps resolution order-stable.
		top := verdicts[0]
		for _, v := range verdicts[1:] {
			if v.Confidence > top.Confidence {
				top = v
			}
		}
		winner = top.Winner
		confidence = top.Confidence * splitPenalty
		framing = "Split decision (2-2) resolved by highest confidence prediction. "
	}

	summaries := make([]string, len(verdicts))
	for i, v := range verdicts {
		summaries[i] = fmt.Sprintf("%s: %s...", v.AgentName, clipRationale(v.Reasoning))
	}

	return &models.ConsensusVerdict{
		Winner:     winner,
		Confidence: round4(confidence),
		Reasoning:  framing + strings.Join(summaries, " | "),
		VoteTally: map[string]int{
			homeTeam: homeVotes,
			awayTeam: awayVotes,
		},
		Unanimous:     unanimous,
		AgentVerdicts: verdicts,
		PredictionID:  uuid.NewString(),
		PredictedAt:   time.Now(),
	}
}

func meanConfidenceFor(winner string, verdicts []models.AgentVerdict) float64 {
	total, count := 0.0, 0
	for _, v := range verdicts {
		if v.Winner == winner {
			total += v.Confidence
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func clipRationale(reasoning string) string {
	if len(reasoning) > rationaleClipLen {
		return reasoning[:rationaleClipLen]
	}
	return reasoning
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
