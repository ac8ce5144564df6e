package job

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of periodic work
type Job interface {
	Name() string
	Run()
}

// Scheduler runs jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a scheduler. A panicking job is recovered and the
// next run is skipped while the previous one is still going.
func NewScheduler(logger *zap.Logger) *Scheduler {
	cronLogger := cronLogAdapter{logger: logger}
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		logger: logger,
	}
}

// Register schedules a job. spec uses the standard five-field cron format.
func (s *Scheduler) Register(spec string, job Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("failed to schedule %s job: %w", job.Name(), err)
	}
	s.logger.Info("Job scheduled", zap.String("job", job.Name()), zap.String("schedule", spec))
	return nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for running jobs")
	}
}

// RunNow executes every job once, in order, on the calling goroutine
func RunNow(jobs ...Job) {
	for _, j := range jobs {
		j.Run()
	}
}

// cronLogAdapter implements cron.Logger on top of zap
type cronLogAdapter struct {
	logger *zap.Logger
}

func (l cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
