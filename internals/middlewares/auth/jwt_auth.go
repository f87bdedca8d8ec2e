package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(rawToken string) (bool, error) // return true if blacklisted
	AllowCookieFallback bool                                // fall back to the access_token cookie when no Bearer header
	Optional            bool                                // continue without locals when no token is present
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		// 1) Token from Authorization: Bearer xxx (or cookie if allowed)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			if o.Optional {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Blacklist check (optional)
		if o.BlacklistChecker != nil {
			if black, err := o.BlacklistChecker(raw); err == nil && black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
			}
		}

		// 3) Parse + verify the algorithm
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		if typ, _ := claims["typ"].(string); typ != "" && typ != "access" {
			return fiber.NewError(fiber.StatusUnauthorized, "Not an access token")
		}

		// 4) Expose claims the handlers care about.
		// Platform sessions carry sub/id; LINE sessions carry line_user_id
		// and auth_type=line (possibly without a platform user at all).
		if sub, _ := claims["sub"].(string); sub != "" {
			if id, perr := uuid.Parse(sub); perr == nil {
				c.Locals("user_id", id.String())
			}
		}
		if v, _ := claims["user_name"].(string); v != "" {
			c.Locals("user_name", v)
		}
		if v, _ := claims["role"].(string); v != "" {
			c.Locals("role", v)
		}
		if v, _ := claims["auth_type"].(string); v != "" {
			c.Locals("auth_type", v)
		}
		if v, _ := claims["line_user_id"].(string); v != "" {
			c.Locals("line_user_id", v)
		}
		c.Locals("jwt_claims", claims)

		return c.Next()
	}
}

// RequireAdmin gates the /api/a group. Must run after AuthJWT.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != "admin" {
			return fiber.NewError(fiber.StatusForbidden, "Admin only")
		}
		return c.Next()
	}
}
