package service

import (
	"context"
	"errors"
	"testing"

	"warbler/internal/models"
)

func TestFollowServiceFollow(t *testing.T) {
	var created *models.Follow
	followRepo := noopFollowRepo()
	followRepo.createFn = func(_ context.Context, f *models.Follow) error {
		created = f
		return nil
	}

	svc := NewFollowService(followRepo, noopUserRepo())
	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if created == nil || created.FollowerID != 1 || created.FollowedID != 2 {
		t.Fatalf("unexpected edge: %#v", created)
	}
}

func TestFollowServiceFollowSelf(t *testing.T) {
	// Following yourself is an ordinary edge, not an error.
	var created *models.Follow
	followRepo := noopFollowRepo()
	followRepo.createFn = func(_ context.Context, f *models.Follow) error {
		created = f
		return nil
	}

	svc := NewFollowService(followRepo, noopUserRepo())
	if err := svc.Follow(context.Background(), 3, 3); err != nil {
		t.Fatalf("self-follow rejected: %v", err)
	}
	if created == nil || created.FollowerID != 3 || created.FollowedID != 3 {
		t.Fatalf("unexpected edge: %#v", created)
	}
}

func TestFollowServiceFollowMissingTarget(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) { return nil, nil }
	followRepo := noopFollowRepo()
	followRepo.createFn = func(context.Context, *models.Follow) error {
		t.Fatal("edge must not be created for a missing target")
		return nil
	}

	svc := NewFollowService(followRepo, userRepo)
	err := svc.Follow(context.Background(), 1, 99999)
	if !models.HasCode(err, models.CodeNotFound) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

func TestFollowServiceDuplicateFollow(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.createFn = func(context.Context, *models.Follow) error {
		return models.NewIntegrityViolationError(errors.New("duplicate key value violates unique constraint"))
	}

	svc := NewFollowService(followRepo, noopUserRepo())
	err := svc.Follow(context.Background(), 1, 2)
	if !models.HasCode(err, models.CodeIntegrityViolation) {
		t.Fatalf("expected integrity violation, got %#v", err)
	}
}

func TestFollowServiceDirectionality(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.existsFn = func(_ context.Context, followerID, followedID uint) (bool, error) {
		return followerID == 1 && followedID == 2, nil
	}

	svc := NewFollowService(followRepo, noopUserRepo())

	following, err := svc.IsFollowing(context.Background(), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !following {
		t.Fatal("expected 1 to follow 2")
	}

	reverse, err := svc.IsFollowing(context.Background(), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if reverse {
		t.Fatal("follow edges must be directional")
	}

	followedBy, err := svc.IsFollowedBy(context.Background(), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !followedBy {
		t.Fatal("expected 2 to be followed by 1")
	}
}

func TestFollowServiceCounts(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.countFollowingFn = func(context.Context, uint) (int64, error) { return 3, nil }
	followRepo.countFollowersFn = func(context.Context, uint) (int64, error) { return 1, nil }

	svc := NewFollowService(followRepo, noopUserRepo())
	following, followers, err := svc.Counts(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if following != 3 || followers != 1 {
		t.Fatalf("unexpected counts: following=%d followers=%d", following, followers)
	}
}
