package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Reply is an answer to a message, signed with a free-text nickname.
// Deleted replies are kept as soft-deleted rows.
type Reply struct {
	gorm.Model
	MessageID uint   `gorm:"index;not null"`
	Content   string `gorm:"type:text;not null"`
	Nickname  string `gorm:"not null"`
}

// CreateReply stores a reply. It returns ErrNotFound if the parent message does not exist.
func (c *Client) CreateReply(ctx context.Context, reply *Reply) error {
	// messages are never deleted, so the parent cannot vanish between check and insert.
	err := c.db.WithContext(ctx).Select("id").First(&Message{}, reply.MessageID).Error
	if err == nil {
		err = c.db.WithContext(ctx).Create(reply).Error
	}
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to create reply", "error", err)
		}
		return err
	}
	return nil
}

func (c *Client) DeleteReply(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&Reply{}, id)
	if result.Error != nil {
		log.Error("failed to delete reply", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
