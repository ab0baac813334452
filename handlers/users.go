package handlers

import (
	"github.com/ignaciovargasDEV/prode-2026/middleware"
	"github.com/ignaciovargasDEV/prode-2026/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, authService *services.AuthService) {
	users := app.Group("/api/users")

	// 🔓 Public reads (leaderboard pages link to profiles and stats)
	users.Get("/", userService.GetUsers)
	users.Get("/:id", userService.GetUserByID)
	users.Get("/:id/stats", userService.GetUserStats)

	// 🔐 Mutations require a session; handlers enforce self-only edits
	secured := users.Group("/", middleware.RequireAuth(authService))
	secured.Post("/", userService.CreateUser)
	secured.Put("/:id", userService.UpdateUser)
	secured.Post("/:id/avatar", userService.UploadAvatar)
}
