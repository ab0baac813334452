package handlers

import (
	"github.com/ignaciovargasDEV/prode-2026/middleware"
	"github.com/ignaciovargasDEV/prode-2026/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPredictionRoutes(app *fiber.App, predictionService *services.PredictionService, authService *services.AuthService) {
	// 🔐 Everything about predictions is tied to the acting user's session
	predictions := app.Group("/api/predictions", middleware.RequireAuth(authService))

	predictions.Get("/user/:user_id", predictionService.GetUserPredictions)
	predictions.Get("/match/:match_id", predictionService.GetMatchPredictions)
	predictions.Post("/", predictionService.CreatePrediction)
	predictions.Put("/:id", predictionService.UpdatePrediction)
	predictions.Delete("/:id", predictionService.DeletePrediction)
}
