package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"fixmate/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runGuard is a non-blocking mutual-exclusion latch. A job whose previous
// run is still in flight is skipped, not queued; the latch is released on
// every exit path including panics.
type runGuard struct {
	running atomic.Bool
}

func (g *runGuard) tryAcquire() bool {
	return g.running.CompareAndSwap(false, true)
}

func (g *runGuard) release() {
	g.running.Store(false)
}

// Scheduler owns the cron runner and the per-job overlap guards. Job
// intervals can be shorter than a full scan pass, so every registered job
// gets its own guard.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: utils.GetLogger(),
	}
}

// Register adds a named job under a cron spec, wrapped in its overlap guard.
func (s *Scheduler) Register(name, spec string, run func(ctx context.Context)) error {
	guard := &runGuard{}
	_, err := s.cron.AddFunc(spec, func() {
		if !guard.tryAcquire() {
			s.logger.Warn("job still running, skipping this tick", zap.String("job", name))
			return
		}
		defer guard.release()

		started := time.Now()
		run(context.Background())
		s.logger.Debug("job finished",
			zap.String("job", name),
			zap.Duration("took", time.Since(started)),
		)
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("background job scheduler started")
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("background job scheduler stopped")
}
