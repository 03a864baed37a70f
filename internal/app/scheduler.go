/**
 * @description
 * Optional cron scheduling for the billing sweep. The mandatory sweep runs
 * once at startup; long-lived deployments can additionally re-run it on a
 * schedule, which is safe because a sweep with nothing newly due changes
 * nothing.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the recurring billing sweep.
type Scheduler struct {
	cron     *cron.Cron
	subs     *SubscriptionService
	logger   *slog.Logger
	schedule string
}

// NewScheduler creates a scheduler that runs the sweep on the given cron
// schedule. An empty schedule disables it.
func NewScheduler(subs *SubscriptionService, logger *slog.Logger, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:     c,
		subs:     subs,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers the sweep job and starts the cron scheduler.
func (s *Scheduler) Start() {
	if s.schedule == "" {
		s.logger.Info("billing sweep schedule disabled")
		return
	}
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.logger.Info("starting scheduled billing sweep")
		s.subs.RunBillingSweep(context.Background())
		s.logger.Info("scheduled billing sweep finished")
	}); err != nil {
		s.logger.Error("failed to schedule billing sweep", "error", err)
		return
	}
	s.logger.Info("scheduled billing sweep", "schedule", s.schedule)
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
