package service

import (
	"context"

	"warbler/internal/models"
)

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByIDWithMessagesFn func(context.Context, uint, int) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	deleteFn              func(context.Context, uint) error
	listFn                func(context.Context, int, int) ([]models.User, error)
	searchByUsernameFn    func(context.Context, string, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithMessagesFn(ctx, id, limit)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) SearchByUsername(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchByUsernameFn(ctx, query, limit)
}

type followRepoStub struct {
	createFn         func(context.Context, *models.Follow) error
	deleteFn         func(context.Context, uint, uint) error
	existsFn         func(context.Context, uint, uint) (bool, error)
	followingFn      func(context.Context, uint) ([]models.User, error)
	followersFn      func(context.Context, uint) ([]models.User, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	countFollowersFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}

type messageRepoStub struct {
	createFn      func(context.Context, *models.Message) error
	getByIDFn     func(context.Context, uint) (*models.Message, error)
	listByUserFn  func(context.Context, uint, int, int) ([]models.Message, error)
	listRecentFn  func(context.Context, int) ([]models.Message, error)
	timelineForFn func(context.Context, uint, int) ([]models.Message, error)
	deleteFn      func(context.Context, uint) error
	likeFn        func(context.Context, uint, uint) error
	unlikeFn      func(context.Context, uint, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	listLikedByFn func(context.Context, uint) ([]models.Message, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) ListRecent(ctx context.Context, limit int) ([]models.Message, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *messageRepoStub) TimelineFor(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.timelineForFn(ctx, userID, limit)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *messageRepoStub) Like(ctx context.Context, userID, messageID uint) error {
	return s.likeFn(ctx, userID, messageID)
}
func (s *messageRepoStub) Unlike(ctx context.Context, userID, messageID uint) error {
	return s.unlikeFn(ctx, userID, messageID)
}
func (s *messageRepoStub) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, messageID)
}
func (s *messageRepoStub) ListLikedBy(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.listLikedByFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithMessagesFn: func(context.Context, uint, int) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:       func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:          func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:              func(context.Context, *models.User) error { return nil },
		updateFn:              func(context.Context, *models.User) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		listFn:                func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchByUsernameFn:    func(context.Context, string, int) ([]models.User, error) { return nil, nil },
	}
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(context.Context, *models.Follow) error { return nil },
		deleteFn:         func(context.Context, uint, uint) error { return nil },
		existsFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		followingFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followersFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:      func(context.Context, *models.Message) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Message, error) { return &models.Message{}, nil },
		listByUserFn:  func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		listRecentFn:  func(context.Context, int) ([]models.Message, error) { return nil, nil },
		timelineForFn: func(context.Context, uint, int) ([]models.Message, error) { return nil, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		likeFn:        func(context.Context, uint, uint) error { return nil },
		unlikeFn:      func(context.Context, uint, uint) error { return nil },
		isLikedFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
		listLikedByFn: func(context.Context, uint) ([]models.Message, error) { return nil, nil },
	}
}
