// Package sweeper prunes stale seat lock set members in the background.
// Individual lock keys expire via TTL; the per-showtime set that indexes
// them does not, so a periodic sweep keeps it from accumulating dead ids.
package sweeper

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

type Pruner interface {
	PruneExpired(ctx context.Context, showtimeID int) ([]int, error)
}

type Sweeper struct {
	redis    redis.UniversalClient
	pruner   Pruner
	interval time.Duration
	logger   *slog.Logger
}

func New(rdb redis.UniversalClient, pruner Pruner, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		redis:    rdb,
		pruner:   pruner,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, sweeping every interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.logger.ErrorContext(ctx, "sweeping seat locks", "error", err)
			}
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) error {
	var cursor uint64

	for {
		keys, next, err := s.redis.Scan(ctx, cursor, "seat_locks:*", scanBatchSize).Result()
		if err != nil {
			return err
		}

		for _, key := range keys {
			showtimeID, err := strconv.Atoi(strings.TrimPrefix(key, "seat_locks:"))
			if err != nil {
				continue
			}

			if _, err := s.pruner.PruneExpired(ctx, showtimeID); err != nil {
				s.logger.ErrorContext(ctx, "pruning seat locks", "showtimeId", showtimeID, "error", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
