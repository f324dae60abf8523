package api

import (
	"strings"

	"github.com/example/task-manager-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
	// TokenContextKey is the key used to store the raw bearer token, which
	// logout and refresh need to revoke it.
	TokenContextKey = "token"
)

// AuthMiddleware creates a middleware that validates bearer tokens.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
				Message: "Unauthenticated.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
				Message: "Unauthenticated.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
				Message: "Unauthenticated.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
				Message: "Unauthenticated.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		// Store claims and raw token for use in handlers.
		c.Locals(UserContextKey, claims)
		c.Locals(TokenContextKey, token)

		return c.Next()
	}
}
