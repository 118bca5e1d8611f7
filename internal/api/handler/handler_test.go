package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/whispernet/internal/config"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/database/mock"
	"github.com/jon4hz/whispernet/internal/password"
	"github.com/jon4hz/whispernet/internal/schema"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	db      *mock.MockDB
	router  *gin.Engine
	cookies []*http.Cookie
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.db = mock.NewMockDB()
	s.cookies = nil
	s.router = s.newRouter(&config.Config{Messages: &config.MessagesConfig{}})
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) newRouter(cfg *config.Config) *gin.Engine {
	h := New(s.db, schema.New(0), cfg)

	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("test-secret-0123456789"))))
	r.GET("/healthz", h.Health)
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/admin-login", h.AdminLogin)
	r.GET("/api/auth/me", h.Me)
	r.POST("/api/auth/logout", h.Logout)
	r.POST("/api/admin/create", h.CreateAdmin)
	r.GET("/api/admin/list", h.ListAdmins)
	r.PATCH("/api/admin/:id/status", h.UpdateAdminStatus)
	r.GET("/api/categories", h.GetCategories)
	r.GET("/api/recipients", h.GetRecipients)
	r.GET("/api/messages/public", h.GetPublicMessages)
	r.GET("/api/messages/private", h.GetPrivateMessages)
	r.GET("/api/messages/category/:category", h.GetMessagesByCategory)
	r.GET("/api/messages/recipient/:recipient", h.GetMessagesByRecipient)
	r.GET("/api/messages/:id", h.GetMessage)
	r.POST("/api/messages", h.CreateMessage)
	r.PATCH("/api/messages/:id", h.UpdateMessageVisibility)
	r.POST("/api/replies", h.CreateReply)
	r.DELETE("/api/replies/:id", h.DeleteReply)
	r.POST("/api/warnings", h.SendWarning)
	return r
}

func (s *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (s *HandlerTestSuite) message(w *httptest.ResponseRecorder) string {
	var body struct {
		Message string `json:"message"`
	}
	s.decode(w, &body)
	return body.Message
}

func (s *HandlerTestSuite) seedMessage(content, category string, public bool) *database.Message {
	m := &database.Message{Content: content, Category: category, IsPublic: public}
	s.Require().NoError(s.db.CreateMessage(s.T().Context(), m))
	return m
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestRegister() {
	w := s.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "quiet", "password": "secret1"})
	s.Require().Equal(http.StatusCreated, w.Code)
	s.NotContains(w.Body.String(), "password")

	user, err := s.db.GetUserByUsername(s.T().Context(), "quiet")
	s.Require().NoError(err)
	s.True(password.Verify("secret1", user.Password))
	s.False(password.Verify("secret2", user.Password))
}

func (s *HandlerTestSuite) TestRegister_Duplicate() {
	body := map[string]string{"username": "quiet", "password": "secret1"}
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/auth/register", body).Code)

	w := s.do(http.MethodPost, "/api/auth/register", body)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Username already exists", s.message(w))
}

func (s *HandlerTestSuite) TestRegister_Validation() {
	w := s.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "ab", "password": ""})
	s.Require().Equal(http.StatusBadRequest, w.Code)

	var body struct {
		Errors []schema.FieldError `json:"errors"`
	}
	s.decode(w, &body)
	s.Len(body.Errors, 2)
}

func (s *HandlerTestSuite) TestRegister_MalformedBody() {
	w := s.do(http.MethodPost, "/api/auth/register", "{not json")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestRegister_StorageFailure() {
	s.db.CreateUserError = assertError("disk full")
	w := s.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "quiet", "password": "secret1"})
	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "disk full")
}

func (s *HandlerTestSuite) TestLogin() {
	s.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "quiet", "password": "secret1"})

	tests := []struct {
		name     string
		username string
		password string
		status   int
	}{
		{name: "valid", username: "quiet", password: "secret1", status: http.StatusOK},
		{name: "wrong password", username: "quiet", password: "nope123", status: http.StatusUnauthorized},
		{name: "unknown user", username: "nobody", password: "secret1", status: http.StatusUnauthorized},
		{name: "missing password", username: "quiet", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": tt.username, "password": tt.password})
			s.Equal(tt.status, w.Code)
		})
	}
}

func (s *HandlerTestSuite) TestLogin_Disabled() {
	s.do(http.MethodPost, "/api/auth/register", map[string]string{"username": "quiet", "password": "secret1"})
	user, err := s.db.GetUserByUsername(s.T().Context(), "quiet")
	s.Require().NoError(err)
	_, err = s.db.UpdateUserStatus(s.T().Context(), user.ID, false)
	s.Require().NoError(err)

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "quiet", "password": "secret1"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Account is disabled", s.message(w))

	w = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "quiet", "password": "wrong12"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid credentials", s.message(w))
}

func (s *HandlerTestSuite) TestAdminLoginAndSession() {
	w := s.do(http.MethodGet, "/api/auth/me", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/admin/create", map[string]string{
		"username": "keeper", "password": "hunter22", "displayName": "Keeper",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/auth/admin-login", map[string]string{"username": "keeper", "password": "hunter22"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "password")

	w = s.do(http.MethodGet, "/api/auth/me", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var me struct {
		Username string `json:"username"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	s.decode(w, &me)
	s.Equal("keeper", me.Username)
	s.True(me.IsAdmin)

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/auth/logout", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", nil).Code)
}

func (s *HandlerTestSuite) TestAdminLogin_WithoutPassword() {
	w := s.do(http.MethodPost, "/api/admin/create", map[string]string{"username": "nopass", "displayName": "No Pass"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/auth/admin-login", map[string]string{"username": "nopass", "password": "anything"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestAdminLogin_Disabled() {
	hash, err := password.Hash("hunter22")
	s.Require().NoError(err)
	admin := &database.Admin{Username: "keeper", Password: &hash, DisplayName: "Keeper"}
	s.Require().NoError(s.db.CreateAdmin(s.T().Context(), admin))
	_, err = s.db.UpdateAdminStatus(s.T().Context(), admin.ID, false)
	s.Require().NoError(err)

	w := s.do(http.MethodPost, "/api/auth/admin-login", map[string]string{"username": "keeper", "password": "hunter22"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Account is disabled", s.message(w))
}

func (s *HandlerTestSuite) TestAdminManagement() {
	w := s.do(http.MethodPost, "/api/admin/create", map[string]string{"username": "keeper", "displayName": "Keeper"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	}
	s.decode(w, &created)
	s.Equal(database.DefaultAdminRole, created.Role)

	w = s.do(http.MethodPost, "/api/admin/create", map[string]string{"username": "keeper", "displayName": "Again"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Admin username already exists", s.message(w))

	w = s.do(http.MethodGet, "/api/admin/list", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var admins []map[string]any
	s.decode(w, &admins)
	s.Len(admins, 1)

	w = s.do(http.MethodPatch, "/api/admin/1/status", map[string]bool{"isActive": false})
	s.Require().Equal(http.StatusOK, w.Code)
	var updated struct {
		IsActive bool `json:"isActive"`
	}
	s.decode(w, &updated)
	s.False(updated.IsActive)

	s.Equal(http.StatusNotFound, s.do(http.MethodPatch, "/api/admin/99/status", map[string]bool{"isActive": true}).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPatch, "/api/admin/1/status", map[string]any{}).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPatch, "/api/admin/abc/status", map[string]bool{"isActive": true}).Code)
}

func (s *HandlerTestSuite) TestCategories() {
	w := s.do(http.MethodGet, "/api/categories", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var categories []map[string]string
	s.decode(w, &categories)
	s.Len(categories, 8)
	s.Equal("love", categories[0]["name"])
}

func (s *HandlerTestSuite) TestCreateMessage() {
	w := s.do(http.MethodPost, "/api/messages", map[string]string{"content": "hello", "category": "support"})
	s.Require().Equal(http.StatusCreated, w.Code)

	var body struct {
		ID            uint    `json:"id"`
		IsPublic      bool    `json:"isPublic"`
		CategoryColor string  `json:"categoryColor"`
		Recipient     *string `json:"recipient"`
		CreatedAt     string  `json:"createdAt"`
	}
	s.decode(w, &body)
	s.NotZero(body.ID)
	s.False(body.IsPublic)
	s.NotEmpty(body.CategoryColor)
	s.Nil(body.Recipient)
	s.NotEmpty(body.CreatedAt)
}

func (s *HandlerTestSuite) TestCreateMessage_DefaultPublic() {
	s.router = s.newRouter(&config.Config{Messages: &config.MessagesConfig{DefaultPublic: true}})

	w := s.do(http.MethodPost, "/api/messages", map[string]string{"content": "hello", "category": "love"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var body struct {
		IsPublic bool `json:"isPublic"`
	}
	s.decode(w, &body)
	s.True(body.IsPublic)

	w = s.do(http.MethodPost, "/api/messages", map[string]any{"content": "hidden", "category": "love", "isPublic": false})
	s.Require().Equal(http.StatusCreated, w.Code)
	s.decode(w, &body)
	s.False(body.IsPublic)
}

func (s *HandlerTestSuite) TestCreateMessage_Invalid() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "empty content", body: map[string]any{"content": "", "category": "love"}},
		{name: "blank content", body: map[string]any{"content": "   ", "category": "love"}},
		{name: "unknown category", body: map[string]any{"content": "hi", "category": "weather"}},
		{name: "bad link", body: map[string]any{"content": "hi", "category": "love", "spotifyLink": "not a url"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/messages", tt.body)
			s.Equal(http.StatusBadRequest, w.Code)
			s.Equal("Invalid message data", s.message(w))
		})
	}
	s.Equal(0, s.db.CallCount("CreateMessage"))
}

func (s *HandlerTestSuite) TestListMessages() {
	s.seedMessage("one", "love", true)
	s.seedMessage("two", "family", true)
	s.seedMessage("three", "love", false)

	var list []map[string]any

	w := s.do(http.MethodGet, "/api/messages/public", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &list)
	s.Require().Len(list, 2)
	s.Equal("two", list[0]["content"])

	w = s.do(http.MethodGet, "/api/messages/private", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &list)
	s.Len(list, 1)

	w = s.do(http.MethodGet, "/api/messages/category/love", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &list)
	s.Len(list, 1)

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/messages/category/weather", nil).Code)
}

func (s *HandlerTestSuite) TestListMessages_Empty() {
	w := s.do(http.MethodGet, "/api/messages/public", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/recipients", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlerTestSuite) TestRecipients() {
	for _, name := range []string{"sam", "alex", "sam"} {
		w := s.do(http.MethodPost, "/api/messages", map[string]any{
			"content": "for " + name, "category": "love", "recipient": name, "isPublic": true,
		})
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodGet, "/api/recipients", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`["alex","sam"]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/messages/recipient/sam", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var list []map[string]any
	s.decode(w, &list)
	s.Len(list, 2)
}

func (s *HandlerTestSuite) TestListMessages_StorageFailure() {
	s.db.GetPublicMessagesError = assertError("boom")
	s.Equal(http.StatusInternalServerError, s.do(http.MethodGet, "/api/messages/public", nil).Code)
}

func (s *HandlerTestSuite) TestGetMessage() {
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/messages/42", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/messages/abc", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/messages/0", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/messages/-1", nil).Code)
}

func (s *HandlerTestSuite) TestUpdateMessageVisibility() {
	m := s.seedMessage("quiet", "love", false)

	for range 2 {
		w := s.do(http.MethodPatch, "/api/messages/1", map[string]bool{"isPublic": true})
		s.Require().Equal(http.StatusOK, w.Code)
		var body struct {
			ID       uint `json:"id"`
			IsPublic bool `json:"isPublic"`
		}
		s.decode(w, &body)
		s.Equal(m.ID, body.ID)
		s.True(body.IsPublic)
	}

	s.Equal(http.StatusNotFound, s.do(http.MethodPatch, "/api/messages/99", map[string]bool{"isPublic": true}).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPatch, "/api/messages/1", map[string]any{}).Code)
}

func (s *HandlerTestSuite) TestReplies() {
	s.seedMessage("hello", "support", true)

	w := s.do(http.MethodPost, "/api/replies", map[string]any{"messageId": 1, "content": "hi", "nickname": "anon"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/replies", map[string]any{"messageId": 9, "content": "hi", "nickname": "anon"})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Message not found", s.message(w))

	w = s.do(http.MethodPost, "/api/replies", map[string]any{"messageId": 1, "content": "", "nickname": "anon"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid reply data", s.message(w))

	w = s.do(http.MethodDelete, "/api/replies/1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Reply deleted successfully", s.message(w))

	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/replies/1", nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodDelete, "/api/replies/x", nil).Code)
}

func (s *HandlerTestSuite) TestSendWarning() {
	w := s.do(http.MethodPost, "/api/warnings", map[string]any{"replyId": 3, "reason": "Please follow the guidelines"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Warning sent successfully", s.message(w))

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/warnings", map[string]any{"replyId": 3}).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/warnings", map[string]any{"reason": "x"}).Code)
}

func (s *HandlerTestSuite) TestThreadFlow() {
	w := s.do(http.MethodPost, "/api/messages", map[string]string{"content": "hello", "category": "support"})
	s.Require().Equal(http.StatusCreated, w.Code)

	var thread struct {
		ID      uint             `json:"id"`
		Replies []map[string]any `json:"replies"`
	}

	w = s.do(http.MethodGet, "/api/messages/1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"replies":[]`)

	w = s.do(http.MethodPost, "/api/replies", map[string]any{"messageId": 1, "content": "hang in there", "nickname": "friend"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var reply struct {
		ID uint `json:"id"`
	}
	s.decode(w, &reply)

	w = s.do(http.MethodGet, "/api/messages/1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &thread)
	s.Len(thread.Replies, 1)

	s.Require().Equal(http.StatusOK, s.do(http.MethodDelete, "/api/replies/1", nil).Code)

	thread.Replies = nil
	w = s.do(http.MethodGet, "/api/messages/1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &thread)
	s.Empty(thread.Replies)
}

type assertError string

func (e assertError) Error() string { return string(e) }
