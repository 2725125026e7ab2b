package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"fleetmetrics/internal/auth"
)

// AuthSubjectLocalKey is the context locals key holding the authenticated
// token subject.
const AuthSubjectLocalKey = "auth_subject"

// BearerAuth validates the Authorization header against the signing secret
// and stores the token subject in context locals. Requests without a valid
// bearer token are rejected with fiber.ErrUnauthorized; the app's global
// error handler renders the error envelope.
func BearerAuth(secret string) fiber.Handler {
	const prefix = "Bearer "

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, prefix) {
			return fiber.ErrUnauthorized
		}

		subject, err := auth.ParseSubject(secret, strings.TrimSpace(header[len(prefix):]))
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(AuthSubjectLocalKey, subject)
		return c.Next()
	}
}
