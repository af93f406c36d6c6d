package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// UnverifiedPurger deletes accounts that are still unverified and were
// created before cutoff.
type UnverifiedPurger interface {
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UnverifiedSweeper periodically removes accounts whose owners never
// confirmed their email.
type UnverifiedSweeper struct {
	accounts UnverifiedPurger
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewUnverifiedSweeper(accounts UnverifiedPurger, maxAge, interval time.Duration, logger *zap.Logger) *UnverifiedSweeper {
	return &UnverifiedSweeper{
		accounts: accounts,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// SweepOnce deletes every account unverified for longer than maxAge.
func (s *UnverifiedSweeper) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.maxAge)
	n, err := s.accounts.DeleteUnverifiedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("Unverified accounts removed",
			zap.Int64("count", n),
			zap.Time("cutoff", cutoff))
	}
	return n, nil
}

// Run sweeps immediately and then on every interval until ctx is done.
func (s *UnverifiedSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Unverified sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
