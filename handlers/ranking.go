package handlers

import (
	"github.com/ignaciovargasDEV/prode-2026/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankingRoutes(app *fiber.App, rankingService *services.RankingService) {
	// 🔓 Leaderboards are public — anyone in the company can browse them
	ranking := app.Group("/api/ranking")

	ranking.Get("/global", rankingService.GetGlobalRanking)
	ranking.Get("/areas", rankingService.GetAreaRanking)
	ranking.Get("/user/:user_id", rankingService.GetUserRanking)
	ranking.Get("/user/:user_id/history", rankingService.GetUserHistory)
}
