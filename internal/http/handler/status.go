package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
	"docshare/internal/service"
)

// userIDFromCtx extracts the upstream identity stored by middleware.RequireUser.
func userIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.UserIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeServiceError translates domain errors into the standardized error
// envelope. The gate pipeline's errors stay distinguishable all the way out:
// clients must be able to tell expiration from absence from a bad password.
func writeServiceError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found or access denied")
	case errors.Is(err, service.ErrLinkNotFound):
		return writeError(c, fiber.StatusNotFound, "LINK_NOT_FOUND", "link not found")
	case errors.Is(err, service.ErrLinkExpired):
		return writeError(c, fiber.StatusGone, "LINK_EXPIRED", "link has expired")
	case errors.Is(err, service.ErrInvalidPassword):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_PASSWORD", "invalid password")
	case errors.Is(err, service.ErrAliasConflict):
		return writeError(c, fiber.StatusConflict, "ALIAS_CONFLICT", "alias is already taken for this document")
	case errors.Is(err, service.ErrExpirationInPast):
		return writeError(c, fiber.StatusBadRequest, "EXPIRATION_IN_PAST", "expiration time cannot be in the past")
	case errors.Is(err, service.ErrInvalidEventType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_EVENT_TYPE", "event type must be VIEW or DOWNLOAD")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.As(err, &ve):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", ve.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
