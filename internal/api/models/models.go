package models

import "time"

// User is the public view of a user account. The password hash never leaves the server.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Admin is the public view of an admin account.
type Admin struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Message is a board message as shown in lists.
type Message struct {
	ID            uint      `json:"id"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	CategoryColor string    `json:"categoryColor"`
	Recipient     *string   `json:"recipient"`
	SpotifyLink   *string   `json:"spotifyLink"`
	IsPublic      bool      `json:"isPublic"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MessageThread is a message together with its replies, oldest reply first.
type MessageThread struct {
	Message
	Replies []Reply `json:"replies"`
}

// Reply is a reply to a message.
type Reply struct {
	ID        uint      `json:"id"`
	MessageID uint      `json:"messageId"`
	Content   string    `json:"content"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category is a selectable message category.
type Category struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// SessionIdentity describes who is logged in on the current session.
type SessionIdentity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}
