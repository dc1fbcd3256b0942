package service

import (
	"context"
	"strings"

	"warbler/internal/credentials"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// UserService provides signup, authentication and account business logic.
type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

type UpdateProfileInput struct {
	UserID         uint
	Username       string
	Email          string
	Bio            string
	Location       string
	ImageURL       string
	HeaderImageURL string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup hashes the password and persists a new user. Username and email
// uniqueness is enforced by the database, not checked up front, so a
// duplicate surfaces as an integrity violation from the repository.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		ImageURL: imageURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate returns the user matching the username and password, or
// (nil, nil) when either the user does not exist or the password does
// not match. The two failure modes are indistinguishable to callers.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if !credentials.CheckPassword(password, user.Password) {
		return nil, nil
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

// GetUserWithMessages returns the user with their most recent messages
// preloaded, newest first.
func (s *UserService) GetUserWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithMessages(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers returns users whose username contains the query string.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.userRepo.List(ctx, limit, 0)
	}
	return s.userRepo.SearchByUsername(ctx, query, limit)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxUsernameLen = 30

	if in.Username != "" {
		if len(in.Username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.ImageURL != "" {
		user.ImageURL = in.ImageURL
	}
	if in.HeaderImageURL != "" {
		user.HeaderImageURL = in.HeaderImageURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account along with its messages, likes and
// follow edges in both directions.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", id)
	}
	return s.userRepo.Delete(ctx, id)
}
