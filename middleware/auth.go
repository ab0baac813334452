// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/ignaciovargasDEV/prode-2026/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer token against the session store and
// attaches the acting user to the request context. Handlers read the
// identity from locals — there is no default/fallback user anywhere.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "access token required"})
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		user, err := auth.ValidateSession(token)
		if err != nil {
			log.Printf("🚫 [AUTH] Rejected token on %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired session"})
		}

		// Attach to ctx for handlers
		c.Locals("user_id", user.ID)
		c.Locals("user", user)

		return c.Next()
	}
}
