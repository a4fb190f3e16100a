// Package job runs periodic maintenance next to the HTTP server.
package job

import (
	"context"
	"log/slog"
	"time"
)

// Canceller cancels SUBMITTED orders whose delivery date has passed.
type Canceller interface {
	CancelExpired(ctx context.Context) (int64, error)
}

// AutoCancel runs the canceller once a day at Hour:00 local time.
type AutoCancel struct {
	canceller Canceller
	hour      int
	logger    *slog.Logger
	now       func() time.Time
	after     func(time.Duration) <-chan time.Time
}

func NewAutoCancel(c Canceller, hour int, logger *slog.Logger) *AutoCancel {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoCancel{
		canceller: c,
		hour:      hour,
		logger:    logger,
		now:       time.Now,
		after:     time.After,
	}
}

// Run blocks until ctx is cancelled. A failed run is logged and retried the next day.
func (j *AutoCancel) Run(ctx context.Context) error {
	for {
		wait := j.untilNext(j.now())
		j.logger.Info("auto-cancel scheduled", slog.Duration("in", wait))

		select {
		case <-ctx.Done():
			return nil
		case <-j.after(wait):
		}
		j.RunOnce(ctx)
	}
}

func (j *AutoCancel) RunOnce(ctx context.Context) {
	n, err := j.canceller.CancelExpired(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "auto-cancel failed", slog.Any("error", err))
		return
	}
	j.logger.InfoContext(ctx, "auto-cancel done", slog.Int64("cancelled", n))
}

// untilNext is the wait from now to the next Hour:00, today or tomorrow.
func (j *AutoCancel) untilNext(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
