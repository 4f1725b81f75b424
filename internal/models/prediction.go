package models

import "time"

// AgentVerdict is a single agent's read on a matchup. Confidence is always
// within [0.5, 0.9] at this level; only the consensus stage may leave that
// band. Never mutated after return.
type AgentVerdict struct {
	AgentName   string             `json:"agent_name"`
	Winner      string             `json:"predicted_winner"`
	Confidence  float64            `json:"confidence"`
	Reasoning   string             `json:"reasoning"`
	DataSource  string             `json:"data_source"`
	Diagnostics map[string]float64 `json:"diagnostics,omitempty"`
	KeyFactors  []string           `json:"key_factors,omitempty"`
	PredictedAt time.Time          `json:"prediction_time"`
}

// ConsensusVerdict is the merged result of the four agent verdicts.
type ConsensusVerdict struct {
	GameID        uint           `json:"game_id"`
	Winner        string         `json:"overall_winner"`
	Confidence    float64        `json:"overall_confidence"`
	Reasoning     string         `json:"consensus_reasoning"`
	VoteTally     map[string]int `json:"vote_tally"`
	Unanimous     bool           `json:"unanimous"`
	AgentVerdicts []AgentVerdict `json:"agent_predictions"`
	PredictionID  string         `json:"prediction_id"`
	PredictedAt   time.Time      `json:"prediction_time"`
}

// AgentStatus is the operational snapshot an agent exposes.
type AgentStatus struct {
	AgentName    string    `json:"agent_name"`
	Status       string    `json:"status"`
	LastActivity time.Time `json:"last_activity"`
	CacheSize    int       `json:"cache_size"`
	Message      string    `json:"message"`
}

// SimulatedGame is one bracket game annotated with simulation results.
type SimulatedGame struct {
	GameID             uint     `json:"game_id"`
	Round              string   `json:"round"`
	HomeTeam           string   `json:"home_team"`
	AwayTeam           string   `json:"away_team"`
	HomeSeed           *int     `json:"home_seed,omitempty"`
	AwaySeed           *int     `json:"away_seed,omitempty"`
	Venue              string   `json:"venue,omitempty"`
	IsDome             bool     `json:"is_dome"`
	PredictedWinner    string   `json:"predicted_winner"`
	AdvanceProbability *float64 `json:"advance_probability,omitempty"`
}

// SimulationOutcome aggregates a full bracket Monte Carlo run. All
// probabilities are trial counts normalized by the trial count and lie in
// [0, 1].
type SimulationOutcome struct {
	Season             int                           `json:"season"`
	Simulations        int                           `json:"simulations"`
	TitleOdds          map[string]float64            `json:"title_odds"`
	ConferenceOdds     map[string]float64            `json:"conference_championship_odds"`
	AdvanceOddsByRound map[string]map[string]float64 `json:"advance_odds_by_round"`
	Rounds             map[string][]SimulatedGame    `json:"rounds"`
}
