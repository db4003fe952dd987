package telegraph

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Job is the unit of work a Scheduler runs.
type Job func(ctx context.Context) error

// Scheduler runs a job on a cron schedule until its context is cancelled.
type Scheduler struct {
	expr     string
	schedule cron.Schedule
	job      Job
	log      *zap.Logger
	now      func() time.Time
}

// NewScheduler parses expr and returns a Scheduler for job.
func NewScheduler(expr string, job Job, log *zap.Logger) (*Scheduler, error) {
	if job == nil {
		return nil, fmt.Errorf("telegraph: scheduler job is required")
	}
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("telegraph: parse schedule %q: %w", expr, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{expr: expr, schedule: sched, job: job, log: log, now: time.Now}, nil
}

// Next returns the first fire time strictly after from.
func (s *Scheduler) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}

// nextDuration returns how long to wait for the next fire time.
func (s *Scheduler) nextDuration() time.Duration {
	now := s.now()
	d := s.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Run blocks, firing the job on schedule. Job errors are logged and do not
// stop the loop. Returns nil when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("scheduler started", zap.String("schedule", s.expr))
	for {
		wait := s.nextDuration()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("scheduler stopped")
			return nil
		case <-timer.C:
			start := s.now()
			if err := s.job(ctx); err != nil {
				s.log.Error("scheduled job failed", zap.Error(err))
				continue
			}
			s.log.Info("scheduled job done", zap.Duration("took", s.now().Sub(start)))
		}
	}
}
