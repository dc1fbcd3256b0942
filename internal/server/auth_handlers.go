package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup. A successful signup opens a
// session and answers with a redirect, mirroring a classic form flow.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
		ImageURL string `json:"image_url" form:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Signup(c.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		switch {
		case models.HasCode(err, models.CodeInvalidCredential):
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.HasCode(err, models.CodeIntegrityViolation):
			return models.RespondWithError(c, fiber.StatusConflict, err)
		default:
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	token, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return c.Redirect("/api/timeline", fiber.StatusFound)
}

// Login handles POST /api/auth/login. A credential mismatch is not an
// HTTP error: the response is a 200 whose body says the credentials
// were invalid, and an unknown username looks exactly the same.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Invalid credentials.",
		})
	}

	token, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return c.Redirect("/api/timeline", fiber.StatusFound)
}

// Logout handles POST /api/auth/logout. Destroying the server-side
// session revokes the token immediately; logging out while anonymous is
// a harmless no-op.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := sessionToken(c); token != "" {
		if err := s.sessions.Destroy(c.Context(), token); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	clearSessionCookie(c)

	return c.Redirect("/api/timeline", fiber.StatusFound)
}
