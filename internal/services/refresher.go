package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// AgentRefresherService keeps the agents' provider connections warm and
// their caches bounded. Refreshes run on the configured interval; a
// nightly job sweeps expired cache entries across all agents.
type AgentRefresherService struct {
	predictor       *PredictionService
	logger          *logrus.Logger
	cron            *cron.Cron
	refreshInterval time.Duration

	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
}

func NewAgentRefresherService(
	predictor *PredictionService,
	refreshInterval time.Duration,
	logger *logrus.Logger,
) *AgentRefresherService {
	return &AgentRefresherService{
		predictor:       predictor,
		logger:          logger,
		cron:            cron.New(),
		refreshInterval: refreshInterval,
	}
}

// Start schedules the periodic refresh and runs one immediately.
func (s *AgentRefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("agent refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.refreshInterval.String())
	if _, err := s.cron.AddFunc(schedule, s.refreshAgents); err != nil {
		return fmt.Errorf("failed to schedule agent refresh: %w", err)
	}

	// Nightly sweep keeps agent caches from carrying stale entries
	// through quiet periods.
	if _, err := s.cron.AddFunc("0 3 * * *", s.refreshAgents); err != nil {
		return fmt.Errorf("failed to schedule nightly sweep: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.refreshAgents()

	s.logger.Info("Agent refresher service started")
	return nil
}

// Stop halts the scheduled refreshes and waits for any in-flight run.
func (s *AgentRefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Agent refresher service stopped")
}

// RefreshNow triggers an off-schedule refresh, used by the API endpoint.
func (s *AgentRefresherService) RefreshNow(ctx context.Context) {
	s.predictor.RefreshAll(ctx)
	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()
}

// GetRefreshStatus reports scheduler health for the status endpoint.
func (s *AgentRefresherService) GetRefreshStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"is_running":       s.isRunning,
		"refresh_interval": s.refreshInterval.String(),
		"cron_jobs":        len(s.cron.Entries()),
	}
	if !s.lastRun.IsZero() {
		status["last_run"] = s.lastRun
	}
	return status
}

func (s *AgentRefresherService) refreshAgents() {
	s.logger.Info("Starting scheduled agent refresh")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.predictor.RefreshAll(ctx)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()
}
