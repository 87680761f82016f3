package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adhocore/gronx"

	"github.com/sevigo/reply-warden/internal/core"
)

// ErrBatchRunning is returned by RunNow while another batch is in progress.
var ErrBatchRunning = errors.New("a batch run is already in progress")

// retryDelay is how long the loop waits after failing to compute the next tick.
const retryDelay = 30 * time.Second

// Scheduler triggers batch runs on a cron expression. At most one batch runs at
// a time; a tick that fires while a run is still going is skipped.
type Scheduler struct {
	batch  core.BatchRunner
	actor  core.Actor
	expr   string
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler creates a Scheduler. An empty expr disables scheduled runs but
// RunNow still works.
func NewScheduler(batch core.BatchRunner, expr string, actor core.Actor, logger *slog.Logger) (*Scheduler, error) {
	if batch == nil {
		panic("batch runner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if expr != "" && !gronx.IsValid(expr) {
		return nil, fmt.Errorf("invalid batch schedule %q", expr)
	}
	return &Scheduler{batch: batch, actor: actor, expr: expr, logger: logger}, nil
}

// Enabled reports whether a cron expression is configured.
func (s *Scheduler) Enabled() bool {
	return s.expr != ""
}

// Start launches the schedule loop. It is a no-op when no expression is set.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.Enabled() {
		s.logger.Info("batch schedule disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(loopCtx)
	s.logger.Info("batch scheduler started", "schedule", s.expr)
}

// Stop cancels the loop and any in-flight run, then waits for both to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		s.logger.Info("stopping batch scheduler and waiting for the current run")
		cancel()
	}
	s.wg.Wait()
}

// RunNow runs a batch synchronously unless one is already in progress.
func (s *Scheduler) RunNow(ctx context.Context) (core.BatchResult, error) {
	if !s.acquire() {
		return core.BatchResult{}, ErrBatchRunning
	}
	defer s.release()
	return s.batch.Run(ctx, s.actor)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	for {
		next, err := gronx.NextTickAfter(s.expr, time.Now(), false)
		if err != nil {
			s.logger.Error("failed to compute next batch tick", "schedule", s.expr, "error", err)
			if !sleep(ctx, retryDelay) {
				return
			}
			continue
		}

		if !sleep(ctx, time.Until(next)) {
			s.logger.Info("batch scheduler stopped")
			return
		}
		s.tick(ctx)
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.acquire() {
		s.logger.Warn("skipping scheduled batch, previous run still in progress")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.release()

		res, err := s.batch.Run(ctx, s.actor)
		if err != nil {
			s.logger.Error("scheduled batch run failed", "error", err)
			return
		}
		s.logger.Info("scheduled batch run completed", "generated", res.GeneratedCount, "processed", len(res.Items))
	}()
}

func (s *Scheduler) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// sleep waits for d or until ctx is done. It reports false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
