package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// likesCountSelect annotates message rows with their like count.
const likesCountSelect = "messages.*, (SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id) AS likes_count"

// MessageRepository defines persistence operations for messages and
// their like edges. Handlers never touch like rows directly; they go
// through Like/Unlike here, always via the service layer.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	ListRecent(ctx context.Context, limit int) ([]models.Message, error)
	TimelineFor(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, messageID uint) error
	Unlike(ctx context.Context, userID, messageID uint) error
	IsLiked(ctx context.Context, userID, messageID uint) (bool, error)
	ListLikedBy(ctx context.Context, userID uint) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		if isIntegrityViolation(err) {
			return models.NewIntegrityViolationError(err)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, message.UserID)
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).
		Select(likesCountSelect).
		Preload("User").
		First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Select(likesCountSelect).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) ListRecent(ctx context.Context, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := cache.Aside(ctx, cache.TimelineKey(0), &messages, cache.TimelineTTL, func() error {
		return r.db.WithContext(ctx).
			Select(likesCountSelect).
			Preload("User").
			Order("timestamp DESC").
			Limit(limit).
			Find(&messages).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// TimelineFor returns the latest messages posted by the user or by
// anyone they follow.
func (r *messageRepository) TimelineFor(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := cache.Aside(ctx, cache.TimelineKey(userID), &messages, cache.TimelineTTL, func() error {
		followed := r.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID)
		return r.db.WithContext(ctx).
			Select(likesCountSelect).
			Preload("User").
			Where("user_id = ? OR user_id IN (?)", userID, followed).
			Order("timestamp DESC").
			Limit(limit).
			Find(&messages).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, id)
	return nil
}

func (r *messageRepository) Like(ctx context.Context, userID, messageID uint) error {
	like := models.Like{UserID: userID, MessageID: messageID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		if isIntegrityViolation(err) {
			return models.NewIntegrityViolationError(err)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, messageID)
	return nil
}

func (r *messageRepository) Unlike(ctx context.Context, userID, messageID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, messageID)
	return nil
}

func (r *messageRepository) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *messageRepository) ListLikedBy(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Select(likesCountSelect).
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
