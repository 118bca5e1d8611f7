package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eko/gocache/lib/v4/codec"
	"github.com/jon4hz/whispernet/internal/config"
	"github.com/jon4hz/whispernet/internal/database"
)

// Cache key prefixes.
const (
	PublicMessagesCachePrefix = "public-messages-"
	RecipientsCachePrefix     = "recipients-"
)

// listKey is the single key under which a whole list is cached.
const listKey = "all"

// BoardCache caches the board lists that every visitor loads.
type BoardCache struct {
	PublicMessages *PrefixedCache[[]database.Message]
	Recipients     *PrefixedCache[[]string]

	// gen is bumped on every invalidation. A list read from the database is
	// only stored if no invalidation happened since the read started.
	gen atomic.Uint64
}

// NewBoardCache creates the board caches for the configured backend.
func NewBoardCache(cfg *config.CacheConfig, ttl time.Duration) (*BoardCache, error) {
	if cfg == nil {
		return nil, errors.New("cache config is required")
	}
	return &BoardCache{
		PublicMessages: NewPrefixedCache[[]database.Message](
			newCacheInstanceByType(cfg, ttl),
			cfg.Type,
			PublicMessagesCachePrefix,
		),
		Recipients: NewPrefixedCache[[]string](
			newCacheInstanceByType(cfg, ttl),
			cfg.Type,
			RecipientsCachePrefix,
		),
	}, nil
}

// Invalidate drops the cached lists.
func (b *BoardCache) Invalidate(ctx context.Context) {
	b.gen.Add(1)
	errs := []error{
		b.PublicMessages.Delete(ctx, listKey),
		b.Recipients.Delete(ctx, listKey),
	}
	for _, err := range errs {
		if err != nil {
			log.Warn("failed to invalidate cache", "error", err)
		}
	}
}

// generation returns the current invalidation generation.
func (b *BoardCache) generation() uint64 {
	return b.gen.Load()
}

// setIfCurrent stores v under the list key unless the cache was invalidated
// after gen was taken. An invalidation racing with the write removes the entry again.
func setIfCurrent[T any](ctx context.Context, b *BoardCache, c *PrefixedCache[T], gen uint64, v T) error {
	if b.generation() != gen {
		return nil
	}
	if err := c.Set(ctx, listKey, v); err != nil {
		return err
	}
	if b.generation() != gen {
		return c.Delete(ctx, listKey)
	}
	return nil
}

// Warm loads the lists from db into the cache.
func (b *BoardCache) Warm(ctx context.Context, db database.DB) error {
	gen := b.generation()
	messages, err := db.GetPublicMessages(ctx)
	if err != nil {
		return err
	}
	if err := setIfCurrent(ctx, b, b.PublicMessages, gen, messages); err != nil {
		return err
	}

	gen = b.generation()
	recipients, err := db.GetRecipients(ctx)
	if err != nil {
		return err
	}
	return setIfCurrent(ctx, b, b.Recipients, gen, recipients)
}

type Stats struct {
	*codec.Stats
	CacheName string           `json:"cacheName"`
	CacheType config.CacheType `json:"cacheType"`
}

func (b *BoardCache) GetStats() []*Stats {
	return []*Stats{
		{
			Stats:     b.PublicMessages.GetStats(),
			CacheName: "public-messages",
			CacheType: b.PublicMessages.GetType(),
		},
		{
			Stats:     b.Recipients.GetStats(),
			CacheName: "recipients",
			CacheType: b.Recipients.GetType(),
		},
	}
}
