package services

import (
	"context"
	"errors"
	"time"

	"github.com/ignaciovargasDEV/prode-2026/models"
	"github.com/ignaciovargasDEV/prode-2026/scoring"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RankingService is the imperative shell around the scoring package: it loads
// user/prediction snapshots from Postgres, hands them to the pure core and
// serves (optionally cached) leaderboards.
type RankingService struct {
	DB    *gorm.DB
	Cache *RankingCache
}

func NewRankingService(db *gorm.DB, cache *RankingCache) *RankingService {
	return &RankingService{DB: db, Cache: cache}
}

// GetGlobalRanking serves the full leaderboard, cache first.
func (s *RankingService) GetGlobalRanking(c *fiber.Ctx) error {
	if entries, ok := s.Cache.GetGlobal(c.Context()); ok {
		return c.JSON(entries)
	}

	entries, err := s.RefreshGlobal(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get global ranking"})
	}
	return c.JSON(entries)
}

// GetAreaRanking serves the per-area top lists with participant counts.
func (s *RankingService) GetAreaRanking(c *fiber.Ctx) error {
	users, predictions, err := s.loadSnapshots(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get area ranking"})
	}
	return c.JSON(scoring.AreaRankings(users, predictions))
}

// GetUserRanking serves one user's global position and participant count.
func (s *RankingService) GetUserRanking(c *fiber.Ctx) error {
	users, predictions, err := s.loadSnapshots(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user ranking"})
	}

	ranking, err := scoring.UserPosition(c.Params("user_id"), users, predictions)
	if err != nil {
		if errors.Is(err, scoring.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user ranking"})
	}
	return c.JSON(ranking)
}

// GetUserHistory lists a user's scored predictions with match context,
// newest match first.
func (s *RankingService) GetUserHistory(c *fiber.Ctx) error {
	var predictions []models.Prediction
	err := s.DB.
		Joins("JOIN matches ON matches.id = predictions.match_id").
		Where("predictions.user_id = ? AND matches.status = ?", c.Params("user_id"), models.MatchFinalizado).
		Order("matches.fecha DESC").
		Preload("Match.HomeTeam").
		Preload("Match.AwayTeam").
		Find(&predictions).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user history"})
	}

	type historyRow struct {
		ID                  string    `json:"id"`
		Fecha               time.Time `json:"fecha"`
		EquipoLocal         string    `json:"equipoLocal"`
		EquipoVisitante     string    `json:"equipoVisitante"`
		GolesLocal          *int      `json:"golesLocal"`
		GolesVisitante      *int      `json:"golesVisitante"`
		PronosticoLocal     int       `json:"pronosticoLocal"`
		PronosticoVisitante int       `json:"pronosticoVisitante"`
		Puntos              int       `json:"puntos"`
		Comentario          *string   `json:"comentario,omitempty"`
	}

	history := make([]historyRow, 0, len(predictions))
	for _, p := range predictions {
		points := 0
		if p.Points != nil {
			points = *p.Points
		}
		history = append(history, historyRow{
			ID:                  p.ID,
			Fecha:               p.Match.Fecha,
			EquipoLocal:         p.Match.HomeTeam.Name,
			EquipoVisitante:     p.Match.AwayTeam.Name,
			GolesLocal:          p.Match.HomeGoals,
			GolesVisitante:      p.Match.AwayGoals,
			PronosticoLocal:     p.HomeGoalsPredicted,
			PronosticoVisitante: p.AwayGoalsPredicted,
			Puntos:              points,
			Comentario:          p.Comentario,
		})
	}
	return c.JSON(history)
}

// RefreshGlobal recomputes the global ranking from the database and stores it
// in the cache. Also used by the background cache warmer.
func (s *RankingService) RefreshGlobal(ctx context.Context) ([]scoring.Entry, error) {
	users, predictions, err := s.loadSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	entries := scoring.GlobalRanking(users, predictions)
	s.Cache.SetGlobal(ctx, entries)
	return entries, nil
}

// loadSnapshots pulls the immutable inputs the scoring core works on: every
// user, and every prediction whose points are already known.
func (s *RankingService) loadSnapshots(ctx context.Context) ([]scoring.UserSnapshot, []scoring.ScoredPrediction, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Select("id", "nombre", "apellido", "area").Find(&users).Error; err != nil {
		return nil, nil, err
	}

	var predictions []models.Prediction
	if err := s.DB.WithContext(ctx).Select("user_id", "points").Where("points IS NOT NULL").Find(&predictions).Error; err != nil {
		return nil, nil, err
	}

	userSnaps := make([]scoring.UserSnapshot, len(users))
	for i, u := range users {
		userSnaps[i] = scoring.UserSnapshot{ID: u.ID, Nombre: u.Nombre, Apellido: u.Apellido, Area: u.Area}
	}

	predSnaps := make([]scoring.ScoredPrediction, len(predictions))
	for i, p := range predictions {
		predSnaps[i] = scoring.ScoredPrediction{UserID: p.UserID, Points: *p.Points}
	}
	return userSnaps, predSnaps, nil
}
