// Package simulator runs Monte Carlo playoff brackets. Games are treated
// as independent coin-weighted trials; the only modeled edge is seeding.
package simulator

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/nflpredict/prediction-service/internal/models"
)

var (
	// ErrInvalidTrials rejects non-positive simulation counts.
	ErrInvalidTrials = errors.New("simulation count must be positive")
	// ErrNoGames means the season has no playoff bracket to simulate.
	ErrNoGames = errors.New("no playoff games found for season")
)

// Canonical bracket progression. Rounds outside this list fall back to
// lexical order so unusual seasons still simulate deterministically.
var roundOrder = []string{"Wild Card", "Divisional", "Conference", "Championship"}

const (
	seedEdgePerGap = 0.03
	minHomeWinProb = 0.2
	maxHomeWinProb = 0.8
)

// Simulator runs brackets with a dedicated RNG. Not safe for concurrent
// Run calls without the internal lock, which it takes itself.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// Run plays the season's bracket trials times and aggregates title odds,
// conference-entry odds and per-round advancement rates. Counts are
// normalized by the full trial count, so a team's odds already reflect how
// often it reached each round.
func (s *Simulator) Run(season int, games []models.PlayoffGame, trials int) (*models.SimulationOutcome, error) {
	if trials <= 0 {
		return nil, ErrInvalidTrials
	}
	if len(games) == 0 {
		return nil, ErrNoGames
	}

	byRound := groupByRound(games)
	rounds := orderedRounds(byRound)

	// Conference membership is decided by surviving the earliest bracket
	// round present.
	entryRound := ""
	if _, ok := byRound["Divisional"]; ok {
		entryRound = "Divisional"
	} else if _, ok := byRound["Wild Card"]; ok {
		entryRound = "Wild Card"
	}

	titleCounts := make(map[string]int)
	conferenceCounts := make(map[string]int)
	advanceCounts := make(map[string]map[string]int)
	gameWins := make(map[uint]map[string]int)
	gameTotals := make(map[uint]int)

	s.mu.Lock()
	for trial := 0; trial < trials; trial++ {
		for _, round := range rounds {
			for _, game := range byRound[round] {
				if game.HomeTeam == "" || game.AwayTeam == "" {
					continue
				}

				winner := game.AwayTeam
				if s.rng.Float64() < seededWinProbability(game.HomeSeed, game.AwaySeed) {
					winner = game.HomeTeam
				}

				gameTotals[game.GameID]++
				if gameWins[game.GameID] == nil {
					gameWins[game.GameID] = make(map[string]int)
				}
				gameWins[game.GameID][winner]++

				if advanceCounts[round] == nil {
					advanceCounts[round] = make(map[string]int)
				}
				advanceCounts[round][winner]++

				if entryRound != "" && round == entryRound {
					conferenceCounts[winner]++
				}
				if round == "Championship" {
					titleCounts[winner]++
				}
			}
		}
	}
	s.mu.Unlock()

	outcome := &models.SimulationOutcome{
		Season:             season,
		Simulations:        trials,
		TitleOdds:          normalize(titleCounts, trials),
		ConferenceOdds:     normalize(conferenceCounts, trials),
		AdvanceOddsByRound: make(map[string]map[string]float64, len(advanceCounts)),
		Rounds:             make(map[string][]models.SimulatedGame, len(rounds)),
	}
	for round, counts := range advanceCounts {
		outcome.AdvanceOddsByRound[round] = normalize(counts, trials)
	}

	for _, round := range rounds {
		roundGames := make([]models.SimulatedGame, 0, len(byRound[round]))
		for _, game := range byRound[round] {
			roundGames = append(roundGames, annotate(game, gameWins[game.GameID], gameTotals[game.GameID]))
		}
		outcome.Rounds[round] = roundGames
	}

	return outcome, nil
}

// seededWinProbability gives the home side 3 points of win probability per
// seed of advantage, clamped so no playoff game is a lock. Missing seeds
// mean a pure coin flip.
func seededWinProbability(homeSeed, awaySeed *int) float64 {
	if homeSeed == nil || awaySeed == nil {
		return 0.5
	}
	p := 0.5 + float64(*awaySeed-*homeSeed)*seedEdgePerGap
	if p < minHomeWinProb {
		return minHomeWinProb
	}
	if p > maxHomeWinProb {
		return maxHomeWinProb
	}
	return p
}

func groupByRound(games []models.PlayoffGame) map[string][]models.PlayoffGame {
	byRound := make(map[string][]models.PlayoffGame)
	for _, game := range games {
		round := game.Round
		if round == "" {
			round = "Unknown"
		}
		byRound[round] = append(byRound[round], game)
	}
	return byRound
}

func orderedRounds(byRound map[string][]models.PlayoffGame) []string {
	var rounds []string
	for _, round := range roundOrder {
		if _, ok := byRound[round]; ok {
			rounds = append(rounds, round)
		}
	}
	if len(rounds) > 0 {
		return rounds
	}
	rounds = make([]string, 0, len(byRound))
	for round := range byRound {
		rounds = append(rounds, round)
	}
	sort.Strings(rounds)
	return rounds
}

// annotate converts one bracket game into its response shape with the
// majority winner and its advancement rate.
func annotate(game models.PlayoffGame, wins map[string]int, total int) models.SimulatedGame {
	annotated := models.SimulatedGame{
		GameID:   game.GameID,
		Round:    game.Round,
		HomeTeam: game.HomeTeam,
		AwayTeam: game.AwayTeam,
		HomeSeed: game.HomeSeed,
		AwaySeed: game.AwaySeed,
		Venue:    game.Venue,
		IsDome:   game.IsDome,
	}
	if total == 0 {
		return annotated
	}

	homeRate := float64(wins[game.HomeTeam]) / float64(total)
	awayRate := float64(wins[game.AwayTeam]) / float64(total)
	if homeRate >= awayRate {
		annotated.PredictedWinner = game.HomeTeam
		annotated.AdvanceProbability = ptr(round4(homeRate))
	} else {
		annotated.PredictedWinner = game.AwayTeam
		annotated.AdvanceProbability = ptr(round4(awayRate))
	}
	return annotated
}

func normalize(counts map[string]int, trials int) map[string]float64 {
	odds := make(map[string]float64, len(counts))
	for team, count := range counts {
		odds[team] = round4(float64(count) / float64(trials))
	}
	return odds
}

func ptr(v float64) *float64 { return &v }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
