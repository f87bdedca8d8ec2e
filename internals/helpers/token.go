package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads the platform user id placed on locals by the JWT
// middleware. 401 when not logged in, 400 when the value is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}
}

// GetLineUserIDFromToken reads the LINE user id for external-auth sessions.
// Empty string means this session is not LINE-authenticated.
func GetLineUserIDFromToken(c *fiber.Ctx) string {
	s, _ := c.Locals("line_user_id").(string)
	return strings.TrimSpace(s)
}

// GetAuthTypeFromToken returns "line", "email", or "".
func GetAuthTypeFromToken(c *fiber.Ctx) string {
	s, _ := c.Locals("auth_type").(string)
	return strings.TrimSpace(s)
}

// GetRawAccessToken returns the raw bearer/cookie access token, if any.
func GetRawAccessToken(c *fiber.Ctx) string {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// GetRefreshTokenFromCookie returns the refresh token cookie, if any.
func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies("refresh_token"))
}
