package server

import (
	"bytes"
	"encoding/json"
	"testing"

	"writoria/internal/config"
	"writoria/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	users      *MockUserRepository
	posts      *MockPostRepository
	comments   *MockCommentRepository
	engagement *MockEngagementRepository
	chats      *MockChatRepository
	backend    *MockChatBackend
	relay      *MockContactRelay
}

// newTestServer builds a Server over fresh mocks, bypassing DB and Redis.
func newTestServer() (*Server, *testDeps) {
	deps := &testDeps{
		users:      new(MockUserRepository),
		posts:      new(MockPostRepository),
		comments:   new(MockCommentRepository),
		engagement: new(MockEngagementRepository),
		chats:      new(MockChatRepository),
		backend:    new(MockChatBackend),
		relay:      new(MockContactRelay),
	}

	s := &Server{
		config:         &config.Config{JWTSecret: "test-secret-key-12345678901234567890"},
		userRepo:       deps.users,
		postRepo:       deps.posts,
		commentRepo:    deps.comments,
		engagementRepo: deps.engagement,
		chatRepo:       deps.chats,
	}
	s.userService = service.NewUserService(deps.users)
	s.postService = service.NewPostService(deps.posts, deps.engagement)
	s.commentService = service.NewCommentService(deps.comments, deps.posts)
	s.engagementService = service.NewEngagementService(deps.engagement, deps.posts)
	s.chatService = service.NewChatService(deps.backend, deps.chats)
	s.contactService = service.NewContactService(deps.relay)

	return s, deps
}

// asUser returns middleware that injects an authenticated user.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

// jsonBody marshals body for use as a request payload.
func jsonBody(t *testing.T, body any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}
