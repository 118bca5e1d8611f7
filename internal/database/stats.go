package database

import (
	"context"
	"fmt"
)

// GetStats counts the rows of every board collection.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	db := c.db.WithContext(ctx)
	var stats Stats

	counts := []struct {
		dest  *int64
		model any
		query string
		args  []any
	}{
		{&stats.Users, &User{}, "", nil},
		{&stats.ActiveUsers, &User{}, "is_active = ?", []any{true}},
		{&stats.Admins, &Admin{}, "", nil},
		{&stats.ActiveAdmins, &Admin{}, "is_active = ?", []any{true}},
		{&stats.PublicMessages, &Message{}, "is_public = ?", []any{true}},
		{&stats.PrivateMessages, &Message{}, "is_public = ?", []any{false}},
		{&stats.Replies, &Reply{}, "", nil},
	}
	for _, cnt := range counts {
		q := db.Model(cnt.model)
		if cnt.query != "" {
			q = q.Where(cnt.query, cnt.args...)
		}
		if err := q.Count(cnt.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", cnt.model, err)
		}
	}

	if err := db.Unscoped().Model(&Reply{}).Where("deleted_at IS NOT NULL").Count(&stats.DeletedReplies).Error; err != nil {
		return nil, fmt.Errorf("failed to count deleted replies: %w", err)
	}

	var last Message
	result := db.Order("created_at DESC").Limit(1).Find(&last)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get last message: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		t := last.CreatedAt
		stats.LastMessageAt = &t
	}

	return &stats, nil
}

// Messages returns the total number of messages.
func (s *Stats) Messages() int64 {
	return s.PublicMessages + s.PrivateMessages
}
