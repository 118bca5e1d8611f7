package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a registered board user.
// Password holds the scrypt hash, never the plaintext.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (c *Client) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	user := User{
		Username: username,
		Password: passwordHash,
		IsActive: true,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrConflict) {
			log.Error("failed to create user", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUserStatus(ctx context.Context, id uint, isActive bool) (*User, error) {
	var user User
	err := c.updateAndReload(ctx, &user, id, "is_active", isActive)
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to update user status", "error", err)
		}
		return nil, err
	}
	return &user, nil
}
