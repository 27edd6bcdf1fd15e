package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	"rewear/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return Unauthorized("Missing authorization header")
		}
		if err := authenticate(c, authService); err != nil {
			return err
		}
		return c.Next()
	}
}

// OptionalAuth resolves the acting user when a token is present.
func OptionalAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		if err := authenticate(c, authService); err != nil {
			return err
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, authService auth.Service) error {
	parts := strings.Split(c.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Unauthorized("Invalid authorization header format")
	}

	claims, err := authService.ValidateAccessToken(parts[1])
	if err != nil {
		return Unauthorized("Invalid or expired token")
	}

	user, err := authService.GetUserByID(c.Context(), claims.UserID)
	if err != nil || user == nil {
		return Unauthorized("User not found")
	}

	c.Locals(UserContextKey, user)
	c.Locals(UserIDContextKey, user.ID)
	return nil
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentUserID returns 0 when the request is anonymous.
func GetCurrentUserID(c *fiber.Ctx) int64 {
	userID, ok := c.Locals(UserIDContextKey).(int64)
	if !ok {
		return 0
	}
	return userID
}
