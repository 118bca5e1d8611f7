package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jon4hz/whispernet/internal/cache"
	"github.com/jon4hz/whispernet/internal/database"
)

// Job ids.
const (
	StatsJobID     = "board_stats"
	WarmCacheJobID = "warm_cache"
)

// AddStatsJob registers the periodic board statistics job.
func (s *Scheduler) AddStatsJob(db database.DB, bc *cache.BoardCache, interval time.Duration) error {
	return s.AddSingletonJob(
		StatsJobID,
		"Board statistics",
		gocron.DurationJob(interval),
		s.statsJob(db, bc),
		true,
	)
}

// AddWarmCacheJob registers the job that refills the list cache.
func (s *Scheduler) AddWarmCacheJob(db database.DB, bc *cache.BoardCache, interval time.Duration) error {
	if bc == nil {
		return errors.New("board cache is required")
	}
	return s.AddSingletonJob(
		WarmCacheJobID,
		"Warm list cache",
		gocron.DurationJob(interval),
		func(ctx context.Context) error {
			return bc.Warm(ctx, db)
		},
		true,
	)
}

func (s *Scheduler) statsJob(db database.DB, bc *cache.BoardCache) JobFunc {
	return func(ctx context.Context) error {
		stats, err := db.GetStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board stats: %w", err)
		}

		fields := []any{
			"users", stats.Users,
			"active_users", stats.ActiveUsers,
			"admins", stats.Admins,
			"public_messages", stats.PublicMessages,
			"private_messages", stats.PrivateMessages,
			"replies", stats.Replies,
			"deleted_replies", stats.DeletedReplies,
		}
		if stats.LastMessageAt != nil {
			fields = append(fields, "last_message_at", stats.LastMessageAt.Format(time.RFC3339))
		}
		s.logger.Info("board stats", fields...)

		if bc != nil {
			for _, cs := range bc.GetStats() {
				s.logger.Debug("cache stats", "cache", cs.CacheName, "type", cs.CacheType, "hits", cs.Hits, "miss", cs.Miss)
			}
		}
		return nil
	}
}
