package server

import (
	"fmt"

	"warbler/internal/models"
	"warbler/internal/service"
	"warbler/internal/session"

	"github.com/gofiber/fiber/v2"
)

// CreateMessage handles POST /api/messages/new. Anonymous callers are
// denied before anything is parsed or persisted.
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	state := currentState(c)
	if session.Authorize(state, session.ActionCreateMessage, nil) == session.Denied {
		return denyAccess(c)
	}

	var req struct {
		Text string `json:"text" form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.CreateMessage(c.Context(), service.CreateMessageInput{
		UserID: state.User.ID,
		Text:   req.Text,
	})
	if err != nil {
		return respondForError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/api/messages/%d", message.ID), fiber.StatusFound)
}

// GetMessage handles GET /api/messages/:id
func (s *Server) GetMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messageService.GetMessage(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}

	return c.JSON(message)
}

// DeleteMessage handles POST /api/messages/:id/delete. A missing
// message is a 404 for everyone; an existing message may only be
// removed by its owner, and every denial looks the same.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messageService.GetMessage(c.Context(), id)
	if err != nil {
		return respondForError(c, err)
	}

	state := currentState(c)
	if session.Authorize(state, session.ActionDeleteMessage, message) == session.Denied {
		return denyAccess(c)
	}

	if err := s.messageService.DeleteMessage(c.Context(), id); err != nil {
		return respondForError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/api/users/%d", message.UserID), fiber.StatusFound)
}

// LikeMessage handles POST /api/messages/:id/like
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	state := currentState(c)
	if !state.Authenticated() {
		return denyAccess(c)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Like(c.Context(), state.User.ID, id); err != nil {
		return respondForError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/api/messages/%d", id), fiber.StatusFound)
}

// UnlikeMessage handles POST /api/messages/:id/unlike
func (s *Server) UnlikeMessage(c *fiber.Ctx) error {
	state := currentState(c)
	if !state.Authenticated() {
		return denyAccess(c)
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Unlike(c.Context(), state.User.ID, id); err != nil {
		return respondForError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/api/messages/%d", id), fiber.StatusFound)
}
