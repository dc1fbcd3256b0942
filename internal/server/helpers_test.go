package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"warbler/internal/config"
	"warbler/internal/credentials"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/service"
	"warbler/internal/session"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server over an in-memory sqlite database with
// in-memory sessions and no metrics, plus a fiber app with the real
// session middleware and routes mounted.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	sessions := session.NewMemoryStore(time.Hour)

	s := &Server{
		config:      &config.Config{Port: "0", Env: "test", SessionTTLHours: 1},
		db:          db,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		sessions:    sessions,
		resolver:    session.NewResolver(sessions, userRepo),
	}
	s.userService = service.NewUserService(userRepo)
	s.messageService = service.NewMessageService(messageRepo, userRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)

	app := fiber.New()
	app.Use(s.LoadSession())
	s.SetupRoutes(app)

	return s, app
}

// createTestUser persists a user with a bcrypt-hashed password.
func createTestUser(t *testing.T, s *Server, username, email, password string) *models.User {
	t.Helper()
	hash, err := credentials.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, Email: email, Password: hash}
	if err := s.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// loginAs opens a session for the user and returns the token.
func loginAs(t *testing.T, s *Server, userID uint) string {
	t.Helper()
	token, err := s.sessions.Create(context.Background(), userID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return token
}

// formRequest builds a form-encoded request, optionally authenticated
// with a session cookie.
func formRequest(method, target, token string, form url.Values) *http.Request {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	return req
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mustDo(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}
