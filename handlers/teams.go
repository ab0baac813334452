package handlers

import (
	"github.com/ignaciovargasDEV/prode-2026/middleware"
	"github.com/ignaciovargasDEV/prode-2026/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(app *fiber.App, teamService *services.TeamService, authService *services.AuthService) {
	teams := app.Group("/api/teams")

	// 🔓 Public reads
	teams.Get("/", teamService.GetAllTeams)
	teams.Get("/:id", teamService.GetTeamByID)

	// 🔐 Roster loading requires a session
	teams.Post("/", middleware.RequireAuth(authService), teamService.CreateTeam)
}
