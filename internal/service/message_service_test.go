package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"warbler/internal/models"
)

func TestMessageServiceCreateMessage(t *testing.T) {
	var created *models.Message
	repo := noopMessageRepo()
	repo.createFn = func(_ context.Context, m *models.Message) error {
		created = m
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	message, err := svc.CreateMessage(context.Background(), CreateMessageInput{
		UserID: 1,
		Text:   "Hello",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created == nil {
		t.Fatal("message was never persisted")
	}
	if message.Text != "Hello" || message.UserID != 1 {
		t.Fatalf("unexpected message: %#v", message)
	}
	if message.Timestamp.IsZero() {
		t.Fatal("timestamp must default to now")
	}
}

func TestMessageServiceCreateMessageKeepsTimestamp(t *testing.T) {
	repo := noopMessageRepo()
	svc := NewMessageService(repo, noopUserRepo())

	ts := time.Date(2020, 3, 14, 15, 9, 26, 0, time.UTC)
	message, err := svc.CreateMessage(context.Background(), CreateMessageInput{
		UserID:    1,
		Text:      "backdated",
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !message.Timestamp.Equal(ts) {
		t.Fatalf("caller-supplied timestamp was replaced: %v", message.Timestamp)
	}
}

func TestMessageServiceCreateMessageValidation(t *testing.T) {
	repo := noopMessageRepo()
	repo.createFn = func(context.Context, *models.Message) error {
		t.Fatal("invalid text must not reach the repository")
		return nil
	}
	svc := NewMessageService(repo, noopUserRepo())

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"too long", strings.Repeat("a", models.MaxMessageLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMessage(context.Background(), CreateMessageInput{UserID: 1, Text: tt.text})
			if !models.HasCode(err, models.CodeValidation) {
				t.Fatalf("expected validation error, got %#v", err)
			}
		})
	}
}

func TestMessageServiceCreateMessageMaxLength(t *testing.T) {
	repo := noopMessageRepo()
	svc := NewMessageService(repo, noopUserRepo())

	_, err := svc.CreateMessage(context.Background(), CreateMessageInput{
		UserID: 1,
		Text:   strings.Repeat("a", models.MaxMessageLen),
	})
	if err != nil {
		t.Fatalf("a message of exactly the maximum length must be accepted: %v", err)
	}
}

func TestMessageServiceGetMessageNotFound(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Message, error) { return nil, nil }

	svc := NewMessageService(repo, noopUserRepo())
	_, err := svc.GetMessage(context.Background(), 1234)
	if !models.HasCode(err, models.CodeNotFound) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestMessageServiceDeleteMessage(t *testing.T) {
	deleted := false
	repo := noopMessageRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Message, error) {
		return &models.Message{ID: 1234, UserID: 1}, nil
	}
	repo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id == 1234
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	if err := svc.DeleteMessage(context.Background(), 1234); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("repository delete was never called")
	}
}

func TestMessageServiceDeleteMissingMessage(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Message, error) { return nil, nil }
	repo.deleteFn = func(context.Context, uint) error {
		t.Fatal("delete must not run for a missing message")
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	err := svc.DeleteMessage(context.Background(), 99999)
	if !models.HasCode(err, models.CodeNotFound) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestMessageServiceLike(t *testing.T) {
	liked := false
	repo := noopMessageRepo()
	repo.likeFn = func(_ context.Context, userID, messageID uint) error {
		liked = userID == 1 && messageID == 1234
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	if err := svc.Like(context.Background(), 1, 1234); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !liked {
		t.Fatal("repository like was never called")
	}
}

func TestMessageServiceLikeMissingMessage(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Message, error) { return nil, nil }
	repo.likeFn = func(context.Context, uint, uint) error {
		t.Fatal("like must not run for a missing message")
		return nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	err := svc.Like(context.Background(), 1, 99999)
	if !models.HasCode(err, models.CodeNotFound) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestMessageServiceDuplicateLike(t *testing.T) {
	repo := noopMessageRepo()
	repo.likeFn = func(context.Context, uint, uint) error {
		return models.NewIntegrityViolationError(errors.New("duplicate key value violates unique constraint"))
	}

	svc := NewMessageService(repo, noopUserRepo())
	err := svc.Like(context.Background(), 1, 1234)
	if !models.HasCode(err, models.CodeIntegrityViolation) {
		t.Fatalf("expected integrity violation, got %#v", err)
	}
}

func TestMessageServiceTimelineLimit(t *testing.T) {
	var gotLimit int
	repo := noopMessageRepo()
	repo.timelineForFn = func(_ context.Context, _ uint, limit int) ([]models.Message, error) {
		gotLimit = limit
		return nil, nil
	}

	svc := NewMessageService(repo, noopUserRepo())
	if _, err := svc.Timeline(context.Background(), 1, 0); err != nil {
		t.Fatal(err)
	}
	if gotLimit != 100 {
		t.Fatalf("expected default limit 100, got %d", gotLimit)
	}

	if _, err := svc.Timeline(context.Background(), 1, 25); err != nil {
		t.Fatal(err)
	}
	if gotLimit != 25 {
		t.Fatalf("expected limit 25, got %d", gotLimit)
	}
}
