package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// MessageService provides message and like business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

type CreateMessageInput struct {
	UserID    uint
	Text      string
	Timestamp time.Time
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// CreateMessage validates and persists a new message. The timestamp
// defaults to now when the caller leaves it zero.
func (s *MessageService) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Message text cannot be empty")
	}
	if len(text) > models.MaxMessageLen {
		return nil, models.NewValidationError(fmt.Sprintf("Message text too long (max %d characters)", models.MaxMessageLen))
	}

	timestamp := in.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	message := &models.Message{
		Text:      text,
		Timestamp: timestamp,
		UserID:    in.UserID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, models.NewNotFoundError("Message", id)
	}
	return message, nil
}

// DeleteMessage removes the message and its likes. Ownership is the
// caller's concern: HTTP handlers decide who may delete before calling
// in, so direct callers such as moderation jobs can remove any message.
func (s *MessageService) DeleteMessage(ctx context.Context, id uint) error {
	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message", id)
	}
	return s.messageRepo.Delete(ctx, id)
}

func (s *MessageService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID, limit, offset)
}

// ListRecent returns the newest messages across all users.
func (s *MessageService) ListRecent(ctx context.Context, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.messageRepo.ListRecent(ctx, limit)
}

// Timeline returns the newest messages authored by the user or any
// account they follow.
func (s *MessageService) Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.messageRepo.TimelineFor(ctx, userID, limit)
}

// Like records that the user likes the message. Liking your own message
// is permitted; liking the same message twice surfaces as an integrity
// violation.
func (s *MessageService) Like(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return models.NewNotFoundError("Message", messageID)
	}
	return s.messageRepo.Like(ctx, userID, messageID)
}

// Unlike removes the like edge. Removing a like that does not exist is
// a no-op.
func (s *MessageService) Unlike(ctx context.Context, userID, messageID uint) error {
	return s.messageRepo.Unlike(ctx, userID, messageID)
}

func (s *MessageService) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.messageRepo.IsLiked(ctx, userID, messageID)
}

// LikedMessages returns the messages the user has liked, newest first.
func (s *MessageService) LikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.messageRepo.ListLikedBy(ctx, userID)
}
