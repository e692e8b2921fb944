package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/config"
	"github.com/4rnv/safebalance/internal/service"
)

// Scheduler runs the periodic agent sweeps: the nightly buffer
// recalculation and the payment-reminder scan.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
}

func NewScheduler(svc *service.Service, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
	}
}

// Start registers the sweep jobs and launches the cron runner
func (s *Scheduler) Start(cfg *config.Config) error {
	if _, err := s.cron.AddFunc(cfg.BufferSweepCron, func() {
		s.log.Info("Starting buffer sweep")
		if err := s.svc.UpdateAllBuffers(context.Background()); err != nil {
			s.log.Errorf("Buffer sweep failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule buffer sweep: %w", err)
	}

	if _, err := s.cron.AddFunc(cfg.ReminderSweepCron, func() {
		s.log.Info("Starting reminder sweep")
		if err := s.svc.RemindAllUpcomingPayments(context.Background()); err != nil {
			s.log.Errorf("Reminder sweep failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}

	s.cron.Start()
	s.log.Infof("Scheduler started (buffer %q, reminders %q)",
		cfg.BufferSweepCron, cfg.ReminderSweepCron)
	return nil
}

// Stop halts the cron runner and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
