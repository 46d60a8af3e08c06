// internal/interfaces/scheduler/sweeper.go
package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Expirer removes expired carts and reports how many went
type Expirer interface {
	Execute(ctx context.Context) (int, error)
}

// Sweeper runs cart expiry on a fixed interval inside the API process
type Sweeper struct {
	expirer  Expirer
	interval time.Duration
	log      *logrus.Logger
}

// NewSweeper creates a sweeper; Run is a no-op when interval is not positive
func NewSweeper(expirer Expirer, interval time.Duration, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		interval: interval,
		log:      log,
	}
}

// Run sweeps until ctx is cancelled. A failed sweep is logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	s.log.WithField("interval", s.interval.String()).Info("Cart expiry sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Cart expiry sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	removed, err := s.expirer.Execute(ctx)
	entry := s.log.WithField("removed", removed)
	if err != nil {
		entry.WithError(err).Error("Cart expiry sweep failed")
		return
	}
	if removed > 0 {
		entry.Info("Expired carts removed")
	}
}
