package server

import (
	"errors"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondForError maps an AppError to the right HTTP status and writes it.
func respondForError(c *fiber.Ctx, err error) error {
	switch {
	case models.HasCode(err, models.CodeNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	case models.HasCode(err, models.CodeValidation):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.HasCode(err, models.CodeIntegrityViolation):
		return models.RespondWithError(c, fiber.StatusConflict, err)
	case models.HasCode(err, models.CodeUnauthorized):
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
}
