package mock

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jon4hz/whispernet/internal/database"
	"github.com/samber/lo"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users      map[uint]*database.User
	nextUserID uint

	admins      map[uint]*database.Admin
	nextAdminID uint

	messages      map[uint]*database.Message
	nextMessageID uint

	replies      map[uint]*database.Reply
	nextReplyID  uint
	deletedReply int64

	// clock hands out strictly increasing timestamps so ordering is deterministic.
	clock time.Time

	// Error simulation
	CreateUserError              error
	GetUserByUsernameError       error
	UpdateUserStatusError        error
	CreateAdminError             error
	GetAdminByUsernameError      error
	GetAllAdminsError            error
	UpdateAdminStatusError       error
	CreateMessageError           error
	GetMessageByIDError          error
	GetPublicMessagesError       error
	GetPrivateMessagesError      error
	GetMessagesByCategoryError   error
	GetMessagesByRecipientError  error
	GetRecipientsError           error
	UpdateMessageVisibilityError error
	CreateReplyError             error
	DeleteReplyError             error
	GetStatsError                error

	// Calls counts invocations per method name.
	Calls map[string]int
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	m := &MockDB{}
	m.Reset()
	return m
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	m.nextUserID = 1
	m.admins = make(map[uint]*database.Admin)
	m.nextAdminID = 1
	m.messages = make(map[uint]*database.Message)
	m.nextMessageID = 1
	m.replies = make(map[uint]*database.Reply)
	m.nextReplyID = 1
	m.deletedReply = 0
	m.clock = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.Calls = make(map[string]int)

	m.CreateUserError = nil
	m.GetUserByUsernameError = nil
	m.UpdateUserStatusError = nil
	m.CreateAdminError = nil
	m.GetAdminByUsernameError = nil
	m.GetAllAdminsError = nil
	m.UpdateAdminStatusError = nil
	m.CreateMessageError = nil
	m.GetMessageByIDError = nil
	m.GetPublicMessagesError = nil
	m.GetPrivateMessagesError = nil
	m.GetMessagesByCategoryError = nil
	m.GetMessagesByRecipientError = nil
	m.GetRecipientsError = nil
	m.UpdateMessageVisibilityError = nil
	m.CreateReplyError = nil
	m.DeleteReplyError = nil
	m.GetStatsError = nil
}

// CallCount returns how often the named method was invoked.
func (m *MockDB) CallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Calls[method]
}

func (m *MockDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MockDB) record(method string) {
	m.mu.Lock()
	m.Calls[method]++
	m.mu.Unlock()
}

// User operations

func (m *MockDB) CreateUser(ctx context.Context, username, passwordHash string) (*database.User, error) {
	m.record("CreateUser")
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, database.ErrConflict
		}
	}

	user := &database.User{
		Username: username,
		Password: passwordHash,
		IsActive: true,
	}
	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = m.tick()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user

	u := *user
	return &u, nil
}

func (m *MockDB) GetUserByUsername(ctx context.Context, username string) (*database.User, error) {
	m.record("GetUserByUsername")
	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			user := *u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) UpdateUserStatus(ctx context.Context, id uint, isActive bool) (*database.User, error) {
	m.record("UpdateUserStatus")
	if m.UpdateUserStatusError != nil {
		return nil, m.UpdateUserStatusError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	user.IsActive = isActive
	user.UpdatedAt = m.tick()

	u := *user
	return &u, nil
}

// Admin operations

func (m *MockDB) CreateAdmin(ctx context.Context, admin *database.Admin) error {
	m.record("CreateAdmin")
	if m.CreateAdminError != nil {
		return m.CreateAdminError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.admins {
		if a.Username == admin.Username {
			return database.ErrConflict
		}
	}

	if admin.Role == "" {
		admin.Role = database.DefaultAdminRole
	}
	admin.IsActive = true
	admin.ID = m.nextAdminID
	m.nextAdminID++
	admin.CreatedAt = m.tick()
	admin.UpdatedAt = admin.CreatedAt

	stored := *admin
	m.admins[admin.ID] = &stored
	return nil
}

func (m *MockDB) GetAdminByUsername(ctx context.Context, username string) (*database.Admin, error) {
	m.record("GetAdminByUsername")
	if m.GetAdminByUsernameError != nil {
		return nil, m.GetAdminByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.admins {
		if a.Username == username {
			admin := *a
			return &admin, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockDB) GetAllAdmins(ctx context.Context) ([]database.Admin, error) {
	m.record("GetAllAdmins")
	if m.GetAllAdminsError != nil {
		return nil, m.GetAllAdminsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	admins := make([]database.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		admins = append(admins, *a)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })
	return admins, nil
}

func (m *MockDB) UpdateAdminStatus(ctx context.Context, id uint, isActive bool) (*database.Admin, error) {
	m.record("UpdateAdminStatus")
	if m.UpdateAdminStatusError != nil {
		return nil, m.UpdateAdminStatusError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	admin, ok := m.admins[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	admin.IsActive = isActive
	admin.UpdatedAt = m.tick()

	a := *admin
	return &a, nil
}

// Message operations

func (m *MockDB) CreateMessage(ctx context.Context, message *database.Message) error {
	m.record("CreateMessage")
	if m.CreateMessageError != nil {
		return m.CreateMessageError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	message.ID = m.nextMessageID
	m.nextMessageID++
	message.CreatedAt = m.tick()
	message.UpdatedAt = message.CreatedAt
	message.Replies = nil

	stored := *message
	m.messages[message.ID] = &stored
	return nil
}

func (m *MockDB) GetMessageByID(ctx context.Context, id uint) (*database.Message, error) {
	m.record("GetMessageByID")
	if m.GetMessageByIDError != nil {
		return nil, m.GetMessageByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.messages[id]
	if !ok {
		return nil, database.ErrNotFound
	}

	message := *stored
	message.Replies = []database.Reply{}
	for _, r := range m.replies {
		if r.MessageID == id {
			message.Replies = append(message.Replies, *r)
		}
	}
	sort.Slice(message.Replies, func(i, j int) bool { return message.Replies[i].ID < message.Replies[j].ID })
	return &message, nil
}

func (m *MockDB) GetPublicMessages(ctx context.Context) ([]database.Message, error) {
	m.record("GetPublicMessages")
	if m.GetPublicMessagesError != nil {
		return nil, m.GetPublicMessagesError
	}
	return m.filterMessages(func(msg *database.Message) bool { return msg.IsPublic }), nil
}

func (m *MockDB) GetPrivateMessages(ctx context.Context) ([]database.Message, error) {
	m.record("GetPrivateMessages")
	if m.GetPrivateMessagesError != nil {
		return nil, m.GetPrivateMessagesError
	}
	return m.filterMessages(func(msg *database.Message) bool { return !msg.IsPublic }), nil
}

func (m *MockDB) GetMessagesByCategory(ctx context.Context, category string) ([]database.Message, error) {
	m.record("GetMessagesByCategory")
	if m.GetMessagesByCategoryError != nil {
		return nil, m.GetMessagesByCategoryError
	}
	return m.filterMessages(func(msg *database.Message) bool {
		return msg.IsPublic && msg.Category == category
	}), nil
}

func (m *MockDB) GetMessagesByRecipient(ctx context.Context, recipient string) ([]database.Message, error) {
	m.record("GetMessagesByRecipient")
	if m.GetMessagesByRecipientError != nil {
		return nil, m.GetMessagesByRecipientError
	}
	return m.filterMessages(func(msg *database.Message) bool {
		return msg.IsPublic && msg.Recipient != nil && *msg.Recipient == recipient
	}), nil
}

// filterMessages returns matching messages, newest first.
func (m *MockDB) filterMessages(keep func(*database.Message) bool) []database.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	messages := []database.Message{}
	for _, msg := range m.messages {
		if keep(msg) {
			messages = append(messages, *msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID > messages[j].ID })
	return messages
}

func (m *MockDB) GetRecipients(ctx context.Context) ([]string, error) {
	m.record("GetRecipients")
	if m.GetRecipientsError != nil {
		return nil, m.GetRecipientsError
	}

	public := m.filterMessages(func(msg *database.Message) bool {
		return msg.IsPublic && msg.Recipient != nil && *msg.Recipient != ""
	})
	recipients := lo.Uniq(lo.Map(public, func(msg database.Message, _ int) string { return *msg.Recipient }))
	slices.Sort(recipients)
	return recipients, nil
}

func (m *MockDB) UpdateMessageVisibility(ctx context.Context, id uint, isPublic bool) (*database.Message, error) {
	m.record("UpdateMessageVisibility")
	if m.UpdateMessageVisibilityError != nil {
		return nil, m.UpdateMessageVisibilityError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	message, ok := m.messages[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	message.IsPublic = isPublic
	message.UpdatedAt = m.tick()

	msg := *message
	return &msg, nil
}

// Reply operations

func (m *MockDB) CreateReply(ctx context.Context, reply *database.Reply) error {
	m.record("CreateReply")
	if m.CreateReplyError != nil {
		return m.CreateReplyError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.messages[reply.MessageID]; !ok {
		return database.ErrNotFound
	}

	reply.ID = m.nextReplyID
	m.nextReplyID++
	reply.CreatedAt = m.tick()
	reply.UpdatedAt = reply.CreatedAt

	stored := *reply
	m.replies[reply.ID] = &stored
	return nil
}

func (m *MockDB) DeleteReply(ctx context.Context, id uint) error {
	m.record("DeleteReply")
	if m.DeleteReplyError != nil {
		return m.DeleteReplyError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.replies[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.replies, id)
	m.deletedReply++
	return nil
}

// Statistics

func (m *MockDB) GetStats(ctx context.Context) (*database.Stats, error) {
	m.record("GetStats")
	if m.GetStatsError != nil {
		return nil, m.GetStatsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &database.Stats{
		Users:          int64(len(m.users)),
		Admins:         int64(len(m.admins)),
		Replies:        int64(len(m.replies)),
		DeletedReplies: m.deletedReply,
	}
	for _, u := range m.users {
		if u.IsActive {
			stats.ActiveUsers++
		}
	}
	for _, a := range m.admins {
		if a.IsActive {
			stats.ActiveAdmins++
		}
	}
	for _, msg := range m.messages {
		if msg.IsPublic {
			stats.PublicMessages++
		} else {
			stats.PrivateMessages++
		}
		if stats.LastMessageAt == nil || msg.CreatedAt.After(*stats.LastMessageAt) {
			t := msg.CreatedAt
			stats.LastMessageAt = &t
		}
	}
	return stats, nil
}

func (m *MockDB) Close() error {
	return nil
}
