package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/config"
	"github.com/dedik2urniawan/fct-engine/internal/session"
)

// Scheduler runs the periodic session sweep.
type Scheduler struct {
	cron     *cron.Cron
	sessions *session.Manager
	cfg      config.SessionConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SessionConfig, sessions *session.Manager, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the sweep job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("sweep_cron", s.cfg.SweepCron))

	if _, err := s.cron.AddFunc(s.cfg.SweepCron, s.sweepSessions); err != nil {
		s.logger.Error("failed to schedule session sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepSessions() {
	removed := s.sessions.Sweep()
	s.logger.Debug("session sweep completed",
		zap.Int("removed", removed),
		zap.Int("live", s.sessions.Len()))
}
