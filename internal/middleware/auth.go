package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/services"
)

const sessionKey = "session"

// Protected parses the bearer token and stores the session claims in the
// request locals. Identity and role come from the token only; the old
// Role/UserId headers are ignored.
func Protected(tokens services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Требуется авторизация")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Требуется авторизация")
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Недействительный токен")
		}

		c.Locals(sessionKey, claims)
		return c.Next()
	}
}

// Claims returns the session stored by Protected, or nil on unguarded
// routes.
func Claims(c *fiber.Ctx) *services.SessionClaims {
	claims, _ := c.Locals(sessionKey).(*services.SessionClaims)
	return claims
}

// Require rejects the request with 403 unless the session has the given
// capability. The client reacts to the 403 by navigating away.
func Require(check func(models.Capabilities) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Требуется авторизация")
		}
		if !check(claims.Capabilities) {
			return fiber.NewError(fiber.StatusForbidden, "Недостаточно прав")
		}
		return c.Next()
	}
}
