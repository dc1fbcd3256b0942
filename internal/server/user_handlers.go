package server

import (
	"fmt"

	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/users. An optional q query filters by
// username substring.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	if q := c.Query("q"); q != "" {
		users, err := s.userService.SearchUsers(c.Context(), q, p.Limit)
		if err != nil {
			return respondForError(c, err)
		}
		return c.JSON(fiber.Map{"users": users})
	}

	users, err := s.userService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUserProfile handles GET /api/users/:id, returning the user with
// their recent messages and follow counts.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserWithMessages(c.Context(), id, 20)
	if err != nil {
		return respondForError(c, err)
	}

	following, followers, err := s.followService.Counts(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":            user,
		"following_count": following,
		"followers_count": followers,
	})
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Following(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.followService.Followers(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetLikedMessages handles GET /api/users/:id/likes
func (s *Server) GetLikedMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.LikedMessages(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// FollowUser handles POST /api/users/follow/:id
func (s *Server) FollowUser(c *fiber.Ctx) error {
	state := currentState(c)
	if !state.Authenticated() {
		return denyAccess(c)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.Context(), state.User.ID, id); err != nil {
		return respondForError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/api/users/%d/following", state.User.ID), fiber.StatusFound)
}

// StopFollowingUser handles POST /api/users/stop-following/:id
func (s *Server) StopFollowingUser(c *fiber.Ctx) error {
	state := currentState(c)
	if !state.Authenticated() {
		return denyAccess(c)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), state.User.ID, id); err != nil {
		return respondForError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/api/users/%d/following", state.User.ID), fiber.StatusFound)
}

// UpdateProfile handles PATCH /api/users/profile for the session user.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	state := currentState(c)
	if !state.Authenticated() {
		return denyAccess(c)
	}

	var req struct {
		Username       string `json:"username" form:"username"`
		Email          string `json:"email" form:"email"`
		Bio            string `json:"bio" form:"bio"`
		Location       string `json:"location" form:"location"`
		ImageURL       string `json:"image_url" form:"image_url"`
		HeaderImageURL string `json:"header_image_url" form:"header_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         state.User.ID,
		Username:       req.Username,
		Email:          req.Email,
		Bio:            req.Bio,
		Location:       req.Location,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
	})
	if err != nil {
		return respondForError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// DeleteAccount handles POST /api/users/delete. The session user's
// account is removed with everything it owns, then the session itself
// is destroyed.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	state := currentState(c)
	if !state.Authenticated() {
		return denyAccess(c)
	}

	if err := s.userService.DeleteUser(c.Context(), state.User.ID); err != nil {
		return respondForError(c, err)
	}

	if token := sessionToken(c); token != "" {
		_ = s.sessions.Destroy(c.Context(), token)
	}
	clearSessionCookie(c)

	return c.Redirect("/api/auth/signup", fiber.StatusFound)
}

// Timeline handles GET /api/timeline. Authenticated users see the
// newest messages from themselves and the accounts they follow;
// visitors see the newest messages overall.
func (s *Server) Timeline(c *fiber.Ctx) error {
	p := parsePagination(c, 100)
	state := currentState(c)

	var err error
	var messages any
	if state.Authenticated() {
		messages, err = s.messageService.Timeline(c.Context(), state.User.ID, p.Limit)
	} else {
		messages, err = s.messageService.ListRecent(c.Context(), p.Limit)
	}
	if err != nil {
		return respondForError(c, err)
	}

	return c.JSON(fiber.Map{"messages": messages})
}
