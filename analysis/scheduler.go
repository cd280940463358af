package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/rustyeddy/natgasvol/config"
)

// Job is one scheduled batch.
type Job func(ctx context.Context) error

// Scheduler re-runs a job on a cron schedule. A tick that starts while the
// previous run is still going is skipped.
type Scheduler struct {
	Cron *cron.Cron
	Log  *slog.Logger
	ctx  context.Context
	job  Job
}

// NewScheduler creates a Scheduler. schedule uses six fields, seconds first.
func NewScheduler(ctx context.Context, schedule string, job Job, log *slog.Logger) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Scheduler{
		Cron: cron.New(
			cron.WithParser(cron.NewParser(config.CronFields)),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Log: log,
		ctx: ctx,
		job: job,
	}
	if _, err := s.Cron.AddFunc(schedule, s.RunNow); err != nil {
		return nil, fmt.Errorf("register schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunNow executes the job once, logging the outcome.
func (s *Scheduler) RunNow() {
	if err := s.ctx.Err(); err != nil {
		return
	}
	s.Log.Info("run started")
	if err := s.job(s.ctx); err != nil {
		s.Log.Error("run failed", "err", err)
		return
	}
	s.Log.Info("run finished")
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	for _, e := range s.Cron.Entries() {
		s.Log.Info("scheduler started", "next", e.Next)
	}
}

// Stop stops the scheduler and waits for a running job to return.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}
