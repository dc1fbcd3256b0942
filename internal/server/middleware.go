package server

import (
	"context"
	"strings"
	"time"

	"warbler/internal/middleware"
	"warbler/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "warbler_session"

const stateKey = "sessionState"

// LoadSession resolves the request's session token into a session.State
// and stores it in locals. Resolution never fails: a missing, unknown or
// stale token simply yields the anonymous state, and handlers decide
// what anonymity means for them.
func (s *Server) LoadSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := s.resolver.Resolve(c.Context(), sessionToken(c))
		c.Locals(stateKey, state)

		if state.Authenticated() {
			c.Locals("userID", state.User.ID)
			ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, state.User.ID)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// sessionToken extracts the opaque session token from the cookie or,
// for non-browser clients, from a bearer Authorization header.
func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// currentState returns the session state resolved by LoadSession.
func currentState(c *fiber.Ctx) session.State {
	if state, ok := c.Locals(stateKey).(session.State); ok {
		return state
	}
	return session.Anonymous
}

// denyAccess answers a denied authorization decision. Denials are not
// HTTP errors: the response is a 200 whose body carries the refusal, and
// it is identical whether the caller is anonymous or the wrong user.
func denyAccess(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Access unauthorized",
	})
}

// setSessionCookie attaches the session token to the response.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		Expires:  time.Now().Add(time.Duration(s.config.SessionTTLHours) * time.Hour),
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})
}
