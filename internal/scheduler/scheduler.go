package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// TokenCleaner removes expired refresh tokens.
type TokenCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the service's periodic maintenance jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *zap.Logger
}

func New(log *zap.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, log: log}, nil
}

// RegisterTokenCleanup runs cleaner every interval. A run still in progress
// when the next one is due causes that tick to be rescheduled.
func (s *Scheduler) RegisterTokenCleanup(ctx context.Context, cleaner TokenCleaner, interval time.Duration) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.cleanupTokens, ctx, cleaner),
		gocron.WithName("refresh-token-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register token cleanup: %w", err)
	}
	return nil
}

func (s *Scheduler) cleanupTokens(ctx context.Context, cleaner TokenCleaner) {
	removed, err := cleaner.CleanupExpired(ctx)
	if err != nil {
		s.log.Error("refresh token cleanup failed", zap.Error(err))
		return
	}
	s.log.Info("refresh token cleanup finished", zap.Int64("removed", removed))
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.scheduler.Jobs())))
}

func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		s.log.Error("failed to shutdown scheduler", zap.Error(err))
	}
	s.log.Info("scheduler stopped")
}
