package handlers

import (
	"github.com/ignaciovargasDEV/prode-2026/middleware"
	"github.com/ignaciovargasDEV/prode-2026/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService, authService *services.AuthService) {
	matches := app.Group("/api/matches")

	// 🔓 Public: fixture and result reads
	matches.Get("/", matchService.GetAllMatches)
	matches.Get("/upcoming", matchService.GetUpcomingMatches)
	matches.Get("/recent", matchService.GetRecentResults)
	matches.Get("/:id", matchService.GetMatchByID)

	// 🔐 Scheduling and result entry require a session
	secured := matches.Group("/", middleware.RequireAuth(authService))
	secured.Post("/", matchService.CreateMatch)
	secured.Put("/:id", matchService.UpdateMatch)
}
