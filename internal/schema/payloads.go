package schema

// Registration is the payload of a user sign-up.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

func (p *Registration) normalize() {
	trim(&p.Username)
}

// Login is the payload of a user or admin login.
type Login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (p *Login) normalize() {
	trim(&p.Username)
}

// CreateAdmin is the payload for creating an admin account.
// Admins created without a password cannot log in.
type CreateAdmin struct {
	Username    string  `json:"username" validate:"required,min=3,max=50"`
	Password    *string `json:"password" validate:"omitempty,min=6,max=128"`
	DisplayName string  `json:"displayName" validate:"required,notblank,max=100"`
	Role        string  `json:"role" validate:"omitempty,oneof=admin moderator superadmin"`
}

func (p *CreateAdmin) normalize() {
	trim(&p.Username)
	trim(&p.DisplayName)
	trim(&p.Role)
	if p.Password != nil && *p.Password == "" {
		p.Password = nil
	}
}

// CreateMessage is the payload of a new board message.
type CreateMessage struct {
	Content     string  `json:"content" validate:"required,notblank"`
	Category    string  `json:"category" validate:"required,category"`
	Recipient   *string `json:"recipient" validate:"omitempty,max=100"`
	SpotifyLink *string `json:"spotifyLink" validate:"omitempty,http_url,max=500"`
	IsPublic    *bool   `json:"isPublic"`
}

func (p *CreateMessage) normalize() {
	trim(&p.Content)
	trim(&p.Category)
	trimOptional(&p.Recipient)
	trimOptional(&p.SpotifyLink)
}

// CreateReply is the payload of a reply to a message.
type CreateReply struct {
	MessageID uint   `json:"messageId" validate:"required"`
	Content   string `json:"content" validate:"required,notblank,max=1000"`
	Nickname  string `json:"nickname" validate:"required,notblank,max=50"`
}

func (p *CreateReply) normalize() {
	trim(&p.Content)
	trim(&p.Nickname)
}

// Warning is the payload of a moderation warning about a reply.
type Warning struct {
	ReplyID uint   `json:"replyId" validate:"required"`
	Reason  string `json:"reason" validate:"required,notblank,max=500"`
}

func (p *Warning) normalize() {
	trim(&p.Reason)
}

// VisibilityUpdate changes whether a message is public.
type VisibilityUpdate struct {
	IsPublic *bool `json:"isPublic" validate:"required"`
}

// StatusUpdate enables or disables an account.
type StatusUpdate struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
