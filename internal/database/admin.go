package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// DefaultAdminRole is assigned to admins created without a role.
const DefaultAdminRole = "admin"

// Admin represents a moderator account.
// Password is nil for admins that were created without credentials; they cannot log in.
type Admin struct {
	gorm.Model
	Username    string  `gorm:"uniqueIndex;not null"`
	Password    *string
	DisplayName string `gorm:"not null"`
	Role        string `gorm:"not null;default:admin"`
	IsActive    bool   `gorm:"not null;default:true"`
}

func (c *Client) CreateAdmin(ctx context.Context, admin *Admin) error {
	if admin.Role == "" {
		admin.Role = DefaultAdminRole
	}
	admin.IsActive = true
	if err := c.db.WithContext(ctx).Create(admin).Error; err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrConflict) {
			log.Error("failed to create admin", "error", err)
		}
		return err
	}
	return nil
}

func (c *Client) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	var admin Admin
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to get admin by username", "error", err)
		}
		return nil, err
	}
	return &admin, nil
}

func (c *Client) GetAllAdmins(ctx context.Context) ([]Admin, error) {
	var admins []Admin
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&admins).Error; err != nil {
		log.Error("failed to get all admins", "error", err)
		return nil, err
	}
	return admins, nil
}

func (c *Client) UpdateAdminStatus(ctx context.Context, id uint, isActive bool) (*Admin, error) {
	var admin Admin
	err := c.updateAndReload(ctx, &admin, id, "is_active", isActive)
	if err != nil {
		err = translateError(err)
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to update admin status", "error", err)
		}
		return nil, err
	}
	return &admin, nil
}
