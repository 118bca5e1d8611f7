package database

import (
	"context"
	"time"
)

// DB defines the storage operations used by the board.
type DB interface {
	// Users
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateUserStatus(ctx context.Context, id uint, isActive bool) (*User, error)

	// Admins
	CreateAdmin(ctx context.Context, admin *Admin) error
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)
	GetAllAdmins(ctx context.Context) ([]Admin, error)
	UpdateAdminStatus(ctx context.Context, id uint, isActive bool) (*Admin, error)

	// Messages
	CreateMessage(ctx context.Context, message *Message) error
	GetMessageByID(ctx context.Context, id uint) (*Message, error)
	GetPublicMessages(ctx context.Context) ([]Message, error)
	GetPrivateMessages(ctx context.Context) ([]Message, error)
	GetMessagesByCategory(ctx context.Context, category string) ([]Message, error)
	GetMessagesByRecipient(ctx context.Context, recipient string) ([]Message, error)
	GetRecipients(ctx context.Context) ([]string, error)
	UpdateMessageVisibility(ctx context.Context, id uint, isPublic bool) (*Message, error)

	// Replies
	CreateReply(ctx context.Context, reply *Reply) error
	DeleteReply(ctx context.Context, id uint) error

	// Statistics
	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}

// Stats summarizes the board contents.
type Stats struct {
	Users           int64
	ActiveUsers     int64
	Admins          int64
	ActiveAdmins    int64
	PublicMessages  int64
	PrivateMessages int64
	Replies         int64
	DeletedReplies  int64
	LastMessageAt   *time.Time
}
