package handlers

import (
	"time"

	"github.com/ignaciovargasDEV/prode-2026/middleware"
	"github.com/ignaciovargasDEV/prode-2026/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	auth := app.Group("/api/auth")

	// Brute-force protection on credential endpoints: 5 attempts / 15 min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many authentication attempts, try again in 15 minutes",
			})
		},
	})

	auth.Post("/register", authLimiter, authService.Register)
	auth.Post("/login", authLimiter, authService.Login)
	auth.Post("/refresh", authService.Refresh)
	auth.Get("/validate", authService.Validate)

	// 🔐 Session required
	auth.Post("/logout", middleware.RequireAuth(authService), authService.Logout)
	auth.Get("/me", middleware.RequireAuth(authService), authService.Me)
}
