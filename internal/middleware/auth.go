package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scentfeed/internal/domain"
	"scentfeed/internal/service"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

func AuthRequired(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := userFromHeader(c, authService)
		if err != nil {
			return err
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// AuthOptional resolves the viewer when a valid bearer token is present but
// lets anonymous requests through. Listing endpoints use it so that
// is_liked_by_me and can_edit are filled in for signed-in viewers.
func AuthOptional(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") != "" {
			if user, err := userFromHeader(c, authService); err == nil {
				c.Locals(UserContextKey, user)
				c.Locals(UserIDContextKey, user.ID)
			}
		}
		return c.Next()
	}
}

func userFromHeader(c *fiber.Ctx, authService service.AuthService) (*domain.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, Unauthorized("Missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, Unauthorized("Invalid authorization header format")
	}

	claims, err := authService.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, Unauthorized("Invalid or expired token")
	}

	user, err := authService.GetUserByID(c.Context(), claims.UserID)
	if err != nil || user == nil {
		return nil, Unauthorized("User not found")
	}

	return user, nil
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, Unauthorized("Not authenticated")
	}
	return userID, nil
}

// GetViewerID returns the authenticated user id or nil for anonymous
// requests.
func GetViewerID(c *fiber.Ctx) *uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
