package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDHeader carries the authenticated user's ID, set by the upstream
	// auth layer. Session issuance and verification happen outside this service.
	UserIDHeader = "X-User-ID"
	// UserIDLocalKey is the key used to store the user ID in Fiber's context locals.
	UserIDLocalKey = "user_id"
)

// RequireUser rejects requests that carry no upstream identity.
// Owner-scoped routes mount this; public link routes do not.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(UserIDHeader)
		if id == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals(UserIDLocalKey, id)
		return c.Next()
	}
}
