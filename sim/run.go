package sim

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ClosingAnnouncement is broadcast before the store evacuates its customers.
const ClosingAnnouncement = "Dear Customers - The Supermarket is about to close. Please proceed to checkout"

// Pacer blocks for d of wall-clock time, or until ctx is done.
// Pacing never changes the outcome of a run, only how fast it unfolds.
type Pacer func(ctx context.Context, d time.Duration) error

// SleepPacer waits on a timer.
func SleepPacer(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoPacer returns immediately unless ctx is already done.
func NoPacer(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// RunDay drives s from opening to closing: one Tick per TickSize until the
// clock reaches Duration, then the closing announcement and a single Close.
// Batch sizes are drawn uniformly from [cfg.MinBatch, cfg.MaxBatch].
//
// If ctx is cancelled the loop stops early, but the store is still closed so
// that no customer is left active. The context error is returned in that case.
func RunDay(ctx context.Context, s *Store, cfg RunConfig, pace Pacer) (ClosingSummary, error) {
	if pace == nil {
		pace = NoPacer
	}
	logrus.Infof("[tick %07d] %s opening (run %s, duration=%d, tick=%d, key=%s)",
		s.Clock, s.Name, s.RunID, s.Duration, s.TickSize, s.rng.Key())

	batchRNG := s.rng.ForSubsystem(SubsystemBatch)
	var runErr error
	for s.Open() {
		s.Tick(SampleBatchSize(batchRNG, cfg.MinBatch, cfg.MaxBatch))
		if err := pace(ctx, cfg.Pace); err != nil {
			logrus.Warnf("[tick %07d] %s: run interrupted: %v", s.Clock, s.Name, err)
			runErr = err
			break
		}
	}

	s.Announce(ClosingAnnouncement)
	if runErr == nil {
		if err := pace(ctx, cfg.ClosingDelay); err != nil {
			runErr = err
		}
	}
	return s.Close(), runErr
}
