// Package jobs runs the periodic background tasks on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
	ctx  context.Context
}

// NewScheduler builds a scheduler evaluating specs in loc (UTC when nil).
func NewScheduler(log *zap.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		log:  log,
		ctx:  context.Background(),
	}
}

// Add registers job under a standard five-field cron spec.
func (s *Scheduler) Add(spec, name string, job func(ctx context.Context) error) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) run(name string, job func(ctx context.Context) error) {
	start := time.Now()
	s.log.Info("[CRON] job started", zap.String("job", name))
	if err := job(s.ctx); err != nil {
		s.log.Error("[CRON] job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.log.Info("[CRON] job done", zap.String("job", name), zap.Duration("took", time.Since(start)))
}

// Start runs the registered jobs until Stop; ctx is handed to every run.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}
