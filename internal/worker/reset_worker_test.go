package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// MockReconciler for testing
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) ReconcileAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// countingReconciler counts calls without expectations, for timer-driven runs
type countingReconciler struct {
	calls atomic.Int32
}

func (c *countingReconciler) ReconcileAll(context.Context) (int, error) {
	c.calls.Add(1)
	return 2, nil
}

// movingClock starts at base and advances with real time
func movingClock(base time.Time) func() time.Time {
	start := time.Now()
	return func() time.Time { return base.Add(time.Since(start)) }
}

func shutdownWorker(t *testing.T, w *ResetWorker) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))
}

func TestResetWorker_TimeUntilNextReset(t *testing.T) {
	location := time.FixedZone("UTC+7", 7*60*60)
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"01:00 local is 23 hours out", time.Date(2026, 2, 2, 1, 0, 0, 0, location), 23 * time.Hour},
		{"23:59 local is one minute out", time.Date(2026, 2, 2, 23, 59, 0, 0, location), time.Minute},
		{"exact midnight waits a full day", time.Date(2026, 2, 3, 0, 0, 0, 0, location), 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewResetWorker(&MockReconciler{}, location)
			w.now = func() time.Time { return tt.now }
			assert.Equal(t, tt.want, w.timeUntilNextReset())
		})
	}
}

func TestResetWorker_RunNowRecordsStatus(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	reconciler := &MockReconciler{}
	reconciler.On("ReconcileAll", mock.Anything).Return(3, nil).Once()
	reconciler.On("ReconcileAll", mock.Anything).Return(0, assert.AnError).Once()

	w := NewResetWorker(reconciler, time.UTC)
	sunday := time.Date(2026, 10, 18, 20, 30, 0, 0, time.UTC)
	w.now = func() time.Time { return sunday }

	status := w.Status()
	assert.Nil(t, status.LastRunAt)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), status.NextDailyReset)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), status.NextWeeklyReset)
	assert.Equal(t, "UTC", status.Timezone)

	reset, err := w.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, reset)

	status = w.Status()
	require.NotNil(t, status.LastRunAt)
	assert.Equal(t, sunday, *status.LastRunAt)
	assert.Equal(t, 3, status.LastResetCount)
	assert.Empty(t, status.LastError)

	_, err = w.RunNow(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, assert.AnError.Error(), w.Status().LastError)

	reconciler.AssertExpectations(t)
}

func TestResetWorker_FiresAtMidnight(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	reconciler := &countingReconciler{}
	w := NewResetWorker(reconciler, time.UTC)
	w.now = movingClock(time.Date(2026, 10, 18, 23, 59, 59, 800_000_000, time.UTC))

	w.Start()

	assert.Eventually(t, func() bool { return reconciler.calls.Load() == 1 }, 5*time.Second, 20*time.Millisecond)
	shutdownWorker(t, w)

	// The next boundary is a day away, so nothing else fires
	assert.Equal(t, int32(1), reconciler.calls.Load())
	assert.Equal(t, 2, w.Status().LastResetCount)
}

func TestResetWorker_ShutdownCancelsStandby(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	reconciler := &MockReconciler{}
	w := NewResetWorker(reconciler, time.UTC)
	w.now = func() time.Time { return time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC) }

	w.Start()
	shutdownWorker(t, w)

	// A second shutdown is harmless
	shutdownWorker(t, w)
	reconciler.AssertNotCalled(t, "ReconcileAll", mock.Anything)
}

func TestResetWorker_NoResetAfterShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	reconciler := &countingReconciler{}
	w := NewResetWorker(reconciler, time.UTC)
	w.now = func() time.Time { return time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC) }

	shutdownWorker(t, w)

	assert.False(t, w.executeReset())
	w.Start()
	w.mu.Lock()
	assert.Nil(t, w.timer, "a stopped worker never re-arms")
	w.mu.Unlock()
	assert.Zero(t, reconciler.calls.Load())
}

func TestResetWorker_ShutdownRacesTimerFire(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	for i := 0; i < 20; i++ {
		reconciler := &countingReconciler{}
		w := NewResetWorker(reconciler, time.UTC)

		started := make(chan bool, 1)
		go func() { started <- w.executeReset() }()
		shutdownWorker(t, w)

		// A run that got in before Shutdown has finished by the time Shutdown returns
		calls := reconciler.calls.Load()
		if <-started {
			assert.Equal(t, int32(1), calls)
		} else {
			assert.Zero(t, calls)
		}
	}
}
