package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// Reconciler applies pending ledger resets to every known hunter
type Reconciler interface {
	ReconcileAll(ctx context.Context) (int, error)
}

// ResetWorker drives ledger reconciliation at every local midnight of the configured zone.
// Weekly boundaries are always midnights too, so one daily schedule covers both.
type ResetWorker struct {
	reconciler Reconciler
	location   *time.Location
	now        func() time.Time

	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
	mu      sync.Mutex

	lastRunAt  *time.Time
	lastResets int
	lastErr    string
}

// NewResetWorker creates a new ResetWorker. A nil location means UTC.
func NewResetWorker(reconciler Reconciler, location *time.Location) *ResetWorker {
	if location == nil {
		location = time.UTC
	}
	return &ResetWorker{
		reconciler: reconciler,
		location:   location,
		now:        time.Now,
	}
}

// Start schedules the first reset
func (w *ResetWorker) Start() {
	w.scheduleNext()
}

// scheduleNext arms the timer for the next boundary
func (w *ResetWorker) scheduleNext() {
	duration := w.timeUntilNextReset()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling so an early timer fire never runs the reset ahead of midnight
	if duration > ResetApproachWindow {
		wait := duration - ResetStandbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgResetStandby, "next_check_at", w.now().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration+ResetGrace, func() {
		// Fired early: the remaining time is still short, so just re-arm
		if rem := w.timeUntilNextReset(); rem > ResetJitterTolerance && rem < ResetApproachWindow {
			w.scheduleNext()
			return
		}

		if w.executeReset() {
			w.scheduleNext()
		}
	})
	log.Info(LogMsgResetApproach, "next_reset_at", w.now().Add(duration))
}

// executeReset runs a reconciliation in a tracked goroutine. It reports false once
// Shutdown has started; the stopped check and wg.Add share the lock so Shutdown's
// Wait never races a late Add.
func (w *ResetWorker) executeReset() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return false
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		_, _ = w.RunNow(context.Background())
	}()
	return true
}

// RunNow reconciles every hunter immediately and records the outcome
func (w *ResetWorker) RunNow(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgResetStarting)

	reset, err := w.reconciler.ReconcileAll(ctx)

	ranAt := w.now()
	w.mu.Lock()
	w.lastRunAt = &ranAt
	w.lastResets = reset
	w.lastErr = ""
	if err != nil {
		w.lastErr = err.Error()
	}
	w.mu.Unlock()

	if err != nil {
		log.Error(LogMsgResetFailed, "error", err)
		return reset, err
	}
	log.Info(LogMsgResetCompleted, "hunters_reset", reset)
	return reset, nil
}

// Status reports the next boundaries and the last run
func (w *ResetWorker) Status() domain.ResetStatus {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()
	status := domain.ResetStatus{
		LastResetCount:  w.lastResets,
		LastError:       w.lastErr,
		NextDailyReset:  ledger.NextDailyBoundary(now, w.location),
		NextWeeklyReset: ledger.NextWeeklyBoundary(now, w.location),
		Timezone:        w.location.String(),
	}
	if w.lastRunAt != nil {
		ranAt := *w.lastRunAt
		status.LastRunAt = &ranAt
	}
	return status
}

// Shutdown cancels the pending timer and waits for an in-flight reset to complete
func (w *ResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down reset worker")

	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Reset worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Reset worker shutdown timeout, a reset may still be running")
		return ctx.Err()
	}
}

func (w *ResetWorker) timeUntilNextReset() time.Duration {
	now := w.now()
	return ledger.NextDailyBoundary(now, w.location).Sub(now)
}
