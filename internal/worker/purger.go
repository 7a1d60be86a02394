// Package worker holds the background jobs started next to the HTTP server.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// purgeBatchSize bounds how many accounts a single tick removes.
const purgeBatchSize = 100

type ExpiredUserFinder interface {
	FindExpiredUnconfirmed(ctx context.Context, now time.Time, limit int) ([]string, error)
}

type UserDeleter interface {
	DeleteUser(ctx context.Context, userID string) error
}

// Purger deletes unconfirmed accounts whose expiration date has passed. Each
// account goes through the regular deletion cascade.
type Purger struct {
	users    ExpiredUserFinder
	deleter  UserDeleter
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewPurger(users ExpiredUserFinder, deleter UserDeleter, interval time.Duration, logger *zap.Logger) *Purger {
	return &Purger{
		users:    users,
		deleter:  deleter,
		interval: interval,
		logger:   logger.Named("purger"),
		now:      time.Now,
	}
}

// Run purges once, then on every tick until ctx is cancelled.
func (p *Purger) Run(ctx context.Context) {
	p.logger.Info("purger started", zap.Duration("interval", p.interval))
	defer p.logger.Info("purger stopped")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.PurgeOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("purge failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// PurgeOnce deletes every account that is expired right now and returns how
// many were removed. A failing account is logged and skipped.
func (p *Purger) PurgeOnce(ctx context.Context) (int, error) {
	purged := 0
	for {
		ids, err := p.users.FindExpiredUnconfirmed(ctx, p.now(), purgeBatchSize)
		if err != nil {
			return purged, err
		}

		removed := 0
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return purged, err
			}
			if err := p.deleter.DeleteUser(ctx, id); err != nil {
				p.logger.Warn("failed to purge user", zap.String("user_id", id), zap.Error(err))
				continue
			}
			removed++
		}
		purged += removed

		if removed > 0 {
			p.logger.Info("purged expired users", zap.Int("count", removed))
		}
		// A short batch is the last one. A batch with only failures would
		// come back unchanged, so stop there as well.
		if len(ids) < purgeBatchSize || removed == 0 {
			return purged, nil
		}
	}
}
