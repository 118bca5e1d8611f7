package models

import (
	"github.com/jon4hz/whispernet/internal/category"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/samber/lo"
)

// ToUser converts a database.User to its public view.
func ToUser(u *database.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToAdmin converts a database.Admin to its public view.
func ToAdmin(a *database.Admin) Admin {
	return Admin{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Role:        a.Role,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAdmins converts a slice of database.Admin to admin views.
func ToAdmins(admins []database.Admin) []Admin {
	return lo.Map(admins, func(a database.Admin, _ int) Admin {
		return ToAdmin(&a)
	})
}

// ToMessage converts a database.Message to a list entry, resolving the category color.
func ToMessage(m *database.Message) Message {
	return Message{
		ID:            m.ID,
		Content:       m.Content,
		Category:      m.Category,
		CategoryColor: category.ColorOf(m.Category),
		Recipient:     m.Recipient,
		SpotifyLink:   m.SpotifyLink,
		IsPublic:      m.IsPublic,
		CreatedAt:     m.CreatedAt,
	}
}

// ToMessages converts a slice of database.Message to list entries.
// The result is never nil so it encodes as an empty JSON array.
func ToMessages(messages []database.Message) []Message {
	return lo.Map(messages, func(m database.Message, _ int) Message {
		return ToMessage(&m)
	})
}

// ToMessageThread converts a message and its loaded replies.
func ToMessageThread(m *database.Message) MessageThread {
	return MessageThread{
		Message: ToMessage(m),
		Replies: lo.Map(m.Replies, func(r database.Reply, _ int) Reply {
			return ToReply(&r)
		}),
	}
}

// ToReply converts a database.Reply to its public view.
func ToReply(r *database.Reply) Reply {
	return Reply{
		ID:        r.ID,
		MessageID: r.MessageID,
		Content:   r.Content,
		Nickname:  r.Nickname,
		CreatedAt: r.CreatedAt,
	}
}

// ToCategories converts the category set to views.
func ToCategories(categories []category.Category) []Category {
	return lo.Map(categories, func(c category.Category, _ int) Category {
		return Category(c)
	})
}
