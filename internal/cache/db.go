package cache

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/whispernet/internal/database"
)

// cachedDB serves the public lists from the board cache and
// invalidates them whenever a message is created or changes visibility.
type cachedDB struct {
	database.DB
	cache *BoardCache
}

// WrapDB returns db with list caching. A nil cache returns db unchanged.
func WrapDB(db database.DB, cache *BoardCache) database.DB {
	if cache == nil {
		return db
	}
	return &cachedDB{DB: db, cache: cache}
}

func (d *cachedDB) GetPublicMessages(ctx context.Context) ([]database.Message, error) {
	messages, err := d.cache.PublicMessages.Get(ctx, listKey)
	if err == nil {
		return messages, nil
	}
	log.Debug("public messages cache miss", "reason", err)

	gen := d.cache.generation()
	messages, err = d.DB.GetPublicMessages(ctx)
	if err != nil {
		return nil, err
	}
	if err := setIfCurrent(ctx, d.cache, d.cache.PublicMessages, gen, messages); err != nil {
		log.Warn("failed to cache public messages", "error", err)
	}
	return messages, nil
}

func (d *cachedDB) GetRecipients(ctx context.Context) ([]string, error) {
	recipients, err := d.cache.Recipients.Get(ctx, listKey)
	if err == nil {
		return recipients, nil
	}
	log.Debug("recipients cache miss", "reason", err)

	gen := d.cache.generation()
	recipients, err = d.DB.GetRecipients(ctx)
	if err != nil {
		return nil, err
	}
	if err := setIfCurrent(ctx, d.cache, d.cache.Recipients, gen, recipients); err != nil {
		log.Warn("failed to cache recipients", "error", err)
	}
	return recipients, nil
}

func (d *cachedDB) CreateMessage(ctx context.Context, message *database.Message) error {
	if err := d.DB.CreateMessage(ctx, message); err != nil {
		return err
	}
	d.cache.Invalidate(ctx)
	return nil
}

func (d *cachedDB) UpdateMessageVisibility(ctx context.Context, id uint, isPublic bool) (*database.Message, error) {
	message, err := d.DB.UpdateMessageVisibility(ctx, id, isPublic)
	if err != nil {
		return nil, err
	}
	d.cache.Invalidate(ctx)
	return message, nil
}
