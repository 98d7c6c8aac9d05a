package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success sets user id (subject) into c.Locals("userId") and the admin flag
// into c.Locals("isAdmin").
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		tokenStr := bearerToken(authHeader)
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		claims, err := Parse(tokenStr, secretBytes, expectedIssuer)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		c.Locals("userId", claims.Subject)
		c.Locals("isAdmin", claims.IsAdmin)
		return c.Next()
	}
}

// bearerToken supports both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	h := strings.TrimSpace(header)
	const prefix = "bearer"
	if len(h) >= len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) && (len(h) == len(prefix) || h[len(prefix)] == ' ') {
		return strings.TrimSpace(h[len(prefix):])
	}
	return h
}
