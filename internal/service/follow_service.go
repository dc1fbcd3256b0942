package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from the user to the target. Following
// yourself is permitted. A duplicate edge surfaces as an integrity
// violation from the composite primary key.
func (s *FollowService) Follow(ctx context.Context, userID, targetID uint) error {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("User", targetID)
	}

	return s.followRepo.Create(ctx, &models.Follow{
		FollowerID: userID,
		FollowedID: targetID,
	})
}

// Unfollow removes the follow edge. Removing an edge that does not
// exist is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID, targetID uint) error {
	return s.followRepo.Delete(ctx, userID, targetID)
}

// IsFollowing reports whether userID follows targetID.
func (s *FollowService) IsFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, userID, targetID)
}

// IsFollowedBy reports whether targetID follows userID.
func (s *FollowService) IsFollowedBy(ctx context.Context, userID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, targetID, userID)
}

func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

// Counts returns the number of users userID follows and the number of
// users following them.
func (s *FollowService) Counts(ctx context.Context, userID uint) (following, followers int64, err error) {
	following, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return following, followers, nil
}

func (s *FollowService) requireUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}
