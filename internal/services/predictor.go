package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nflpredict/prediction-service/internal/agents"
	"github.com/nflpredict/prediction-service/internal/consensus"
	"github.com/nflpredict/prediction-service/internal/models"
)

// Canonical agent keys for single-agent endpoints.
const (
	AgentKeyStatistical = "statistical"
	AgentKeyWeather     = "weather"
	AgentKeySentiment   = "sentiment"
	AgentKeyMarket      = "market"
)

// agentKeyOrder fixes the fan-out and narrative order.
var agentKeyOrder = []string{AgentKeyStatistical, AgentKeyWeather, AgentKeySentiment, AgentKeyMarket}

// ErrUnknownAgent is returned for agent keys outside the closed set.
var ErrUnknownAgent = errors.New("unknown agent")

// PredictionService orchestrates a full prediction: collect context once,
// fan the four agents out concurrently, then fold their verdicts into a
// consensus. Verdict order in the result always follows agentKeyOrder
// regardless of which agent finished first.
type PredictionService struct {
	agents    map[string]agents.Agent
	collector *ContextCollector
	cache     *CacheService
	logger    *logrus.Logger
	cacheTTL  time.Duration
}

func NewPredictionService(
	statistical, weather, sentiment, market agents.Agent,
	collector *ContextCollector,
	cache *CacheService,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		agents: map[string]agents.Agent{
			AgentKeyStatistical: statistical,
			AgentKeyWeather:     weather,
			AgentKeySentiment:   sentiment,
			AgentKeyMarket:      market,
		},
		collector: collector,
		cache:     cache,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Predict runs the full pipeline for one matchup.
func (s *PredictionService) Predict(ctx context.Context, matchup models.Matchup) (*models.ConsensusVerdict, error) {
	if matchup.HomeTeam == "" || matchup.AwayTeam == "" {
		return nil, agents.ErrInvalidMatchup
	}

	if matchup.GameID != 0 && s.cache != nil {
		var cached models.ConsensusVerdict
		if err := s.cache.Get(ctx, PredictionCacheKey(matchup.GameID), &cached); err == nil {
			s.logger.WithField("game_id", matchup.GameID).Debug("Serving cached prediction")
			return &cached, nil
		}
	}

	gameCtx := s.collector.Collect(ctx, matchup)

	verdicts, err := s.fanOut(ctx, matchup, gameCtx)
	if err != nil {
		return nil, err
	}

	result := consensus.Resolve(matchup.HomeTeam, matchup.AwayTeam, verdicts)
	result.GameID = matchup.GameID

	for _, v := range verdicts {
		s.logger.WithFields(logrus.Fields{
			"agent":      v.AgentName,
			"winner":     v.Winner,
			"confidence": v.Confidence,
		}).Info("Agent pick")
	}
	s.logger.WithFields(logrus.Fields{
		"game_id":    matchup.GameID,
		"winner":     result.Winner,
		"confidence": result.Confidence,
		"unanimous":  result.Unanimous,
	}).Info("Consensus prediction complete")

	if matchup.GameID != 0 && s.cache != nil {
		if err := s.cache.Set(ctx, PredictionCacheKey(matchup.GameID), result, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache prediction")
		}
	}

	return result, nil
}

// fanOut asks all four agents concurrently and returns their verdicts in
// agentKeyOrder.
func (s *PredictionService) fanOut(ctx context.Context, matchup models.Matchup, gameCtx *models.GameContext) ([]models.AgentVerdict, error) {
	verdicts := make([]models.AgentVerdict, len(agentKeyOrder))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range agentKeyOrder {
		i, agent := i, s.agents[key]
		g.Go(func() error {
			verdict, err := agent.Predict(gctx, matchup, gameCtx)
			if err != nil {
				return fmt.Errorf("agent %s: %w", agent.Name(), err)
			}
			verdicts[i] = *verdict
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

// PredictWith runs exactly one agent, for the per-agent diagnostic
// endpoints. Context is still collected so the agent sees the same inputs
// it would in a full run.
func (s *PredictionService) PredictWith(ctx context.Context, agentKey string, matchup models.Matchup) (*models.AgentVerdict, error) {
	agent, ok := s.agents[agentKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, agentKey)
	}
	if matchup.HomeTeam == "" || matchup.AwayTeam == "" {
		return nil, agents.ErrInvalidMatchup
	}
	gameCtx := s.collector.Collect(ctx, matchup)
	return agent.Predict(ctx, matchup, gameCtx)
}

// AgentComparison is the side-by-side diagnostic view of one matchup.
type AgentComparison struct {
	Game            string                         `json:"game"`
	AgentComparison map[string]models.AgentVerdict `json:"agent_comparison"`
	AgentAgreement  struct {
		Unanimous      bool           `json:"unanimous"`
		MajorityWinner string         `json:"majority_winner"`
		VoteCount      map[string]int `json:"vote_count"`
	} `json:"agent_agreement"`
}

// Compare runs all agents and reports their verdicts without folding them
// into a consensus.
func (s *PredictionService) Compare(ctx context.Context, matchup models.Matchup) (*AgentComparison, error) {
	if matchup.HomeTeam == "" || matchup.AwayTeam == "" {
		return nil, agents.ErrInvalidMatchup
	}

	gameCtx := s.collector.Collect(ctx, matchup)
	verdicts, err := s.fanOut(ctx, matchup, gameCtx)
	if err != nil {
		return nil, err
	}

	comparison := &AgentComparison{
		Game:            fmt.Sprintf("%s @ %s", matchup.AwayTeam, matchup.HomeTeam),
		AgentComparison: make(map[string]models.AgentVerdict, len(verdicts)),
	}
	homeVotes := 0
	for i, key := range agentKeyOrder {
		comparison.AgentComparison[key] = verdicts[i]
		if verdicts[i].Winner == matchup.HomeTeam {
			homeVotes++
		}
	}

	comparison.AgentAgreement.Unanimous = homeVotes == 0 || homeVotes == len(verdicts)
	comparison.AgentAgreement.MajorityWinner = matchup.AwayTeam
	if homeVotes*2 >= len(verdicts)+1 {
		comparison.AgentAgreement.MajorityWinner = matchup.HomeTeam
	}
	comparison.AgentAgreement.VoteCount = map[string]int{
		matchup.HomeTeam: homeVotes,
		matchup.AwayTeam: len(verdicts) - homeVotes,
	}
	return comparison, nil
}

// AgentStatuses reports each agent's operational snapshot in fixed order.
func (s *PredictionService) AgentStatuses() []models.AgentStatus {
	statuses := make([]models.AgentStatus, 0, len(agentKeyOrder))
	for _, key := range agentKeyOrder {
		statuses = append(statuses, s.agents[key].Status())
	}
	return statuses
}

// RefreshAll refreshes every agent.
func (s *PredictionService) RefreshAll(ctx context.Context) {
	for _, key := range agentKeyOrder {
		s.agents[key].Refresh(ctx)
	}
	s.logger.Info("All agents refreshed")
}
