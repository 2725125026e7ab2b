package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fleetmetrics/internal/service"
)

// tokenResponse is the OAuth2-style password grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// IssueToken handles POST /auth/token. It reads form-encoded username and
// password, verifies them, and returns a bearer access token.
func IssueToken(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.FormValue("username")
		password := c.FormValue("password")
		if username == "" || password == "" {
			return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "username and password are required")
		}

		user, err := authSvc.Authenticate(c.UserContext(), username, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		token, err := authSvc.IssueToken(user)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(tokenResponse{
			AccessToken: token.Token,
			TokenType:   "bearer",
		})
	}
}
