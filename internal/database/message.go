package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Message is an anonymous post on the board.
type Message struct {
	gorm.Model
	Content     string  `gorm:"type:text;not null"`
	Category    string  `gorm:"index;not null"`
	Recipient   *string `gorm:"index"`
	SpotifyLink *string
	IsPublic    bool    `gorm:"index;not null;default:false"`
	Replies     []Reply `gorm:"constraint:OnDelete:CASCADE;"`
}

func (c *Client) CreateMessage(ctx context.Context, message *Message) error {
	if err := c.db.WithContext(ctx).Omit("Replies").Create(message).Error; err != nil {
		log.Error("failed to create message", "error", err)
		return translateError(err)
	}
	return nil
}

func (c *Client) GetMessageByID(ctx context.Context, id uint) (*Message, error) {
	var message Message
	err := c.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&message, id).Error
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to get message by ID", "error", err)
		}
		return nil, err
	}
	if message.Replies == nil {
		message.Replies = []Reply{}
	}
	return &message, nil
}

func (c *Client) GetPublicMessages(ctx context.Context) ([]Message, error) {
	return c.listMessages(ctx, "public messages", "is_public = ?", true)
}

func (c *Client) GetPrivateMessages(ctx context.Context) ([]Message, error) {
	return c.listMessages(ctx, "private messages", "is_public = ?", false)
}

// GetMessagesByCategory returns the public messages of a category.
func (c *Client) GetMessagesByCategory(ctx context.Context, category string) ([]Message, error) {
	return c.listMessages(ctx, "messages by category", "is_public = ? AND category = ?", true, category)
}

// GetMessagesByRecipient returns the public messages addressed to recipient.
func (c *Client) GetMessagesByRecipient(ctx context.Context, recipient string) ([]Message, error) {
	return c.listMessages(ctx, "messages by recipient", "is_public = ? AND recipient = ?", true, recipient)
}

func (c *Client) listMessages(ctx context.Context, what string, query string, args ...any) ([]Message, error) {
	messages := []Message{}
	err := c.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		log.Error("failed to get "+what, "error", err)
		return nil, err
	}
	return messages, nil
}

// GetRecipients returns the distinct recipients of public messages in alphabetical order.
func (c *Client) GetRecipients(ctx context.Context) ([]string, error) {
	recipients := []string{}
	err := c.db.WithContext(ctx).
		Model(&Message{}).
		Where("is_public = ? AND recipient IS NOT NULL AND recipient <> ''", true).
		Distinct("recipient").
		Order("recipient ASC").
		Pluck("recipient", &recipients).Error
	if err != nil {
		log.Error("failed to get recipients", "error", err)
		return nil, err
	}
	return recipients, nil
}

func (c *Client) UpdateMessageVisibility(ctx context.Context, id uint, isPublic bool) (*Message, error) {
	var message Message
	err := c.updateAndReload(ctx, &message, id, "is_public", isPublic)
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to update message visibility", "error", err)
		}
		return nil, err
	}
	return &message, nil
}
