package services

import (
	"errors"
	"log"
	"time"

	"github.com/ignaciovargasDEV/prode-2026/models"
	"github.com/ignaciovargasDEV/prode-2026/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchService struct {
	DB    *gorm.DB
	Cache *RankingCache
}

func NewMatchService(db *gorm.DB, cache *RankingCache) *MatchService {
	return &MatchService{DB: db, Cache: cache}
}

// GetAllMatches lists matches, optionally filtered by ?fase= and ?status=,
// ordered by kickoff time, with teams and predictions preloaded.
func (s *MatchService) GetAllMatches(c *fiber.Ctx) error {
	q := s.DB.Model(&models.Match{}).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Preload("Predictions.User").
		Order("fecha ASC")

	if fase := c.Query("fase"); fase != "" {
		q = q.Where("fase = ?", fase)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var matches []models.Match
	if err := q.Find(&matches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get matches"})
	}
	return c.JSON(matches)
}

// GetUpcomingMatches returns the next 20 PENDIENTE matches. With ?userId= the
// caller's own prediction (if any) is attached to each match.
func (s *MatchService) GetUpcomingMatches(c *fiber.Ctx) error {
	q := s.DB.Model(&models.Match{}).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Where("status = ? AND fecha >= ?", models.MatchPendiente, time.Now()).
		Order("fecha ASC").
		Limit(20)

	if userID := c.Query("userId"); userID != "" {
		q = q.Preload("Predictions", "user_id = ?", userID)
	}

	var matches []models.Match
	if err := q.Find(&matches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get upcoming matches"})
	}
	return c.JSON(matches)
}

// GetRecentResults returns the last 10 finalized matches, newest first.
func (s *MatchService) GetRecentResults(c *fiber.Ctx) error {
	var matches []models.Match
	err := s.DB.Preload("HomeTeam").Preload("AwayTeam").
		Where("status = ?", models.MatchFinalizado).
		Order("fecha DESC").
		Limit(10).
		Find(&matches).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get recent results"})
	}
	return c.JSON(matches)
}

func (s *MatchService) GetMatchByID(c *fiber.Ctx) error {
	var match models.Match
	err := s.DB.Preload("HomeTeam").Preload("AwayTeam").Preload("Predictions.User").
		First(&match, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get match"})
	}
	return c.JSON(match)
}

// CreateMatch schedules a new fixture (result entry comes later via update).
func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	var req struct {
		Fecha      time.Time `json:"fecha"`
		HomeTeamID string    `json:"homeTeamId"`
		AwayTeamID string    `json:"awayTeamId"`
		Fase       string    `json:"fase"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Fecha.IsZero() || req.HomeTeamID == "" || req.AwayTeamID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fecha, homeTeamId and awayTeamId are required"})
	}
	if req.HomeTeamID == req.AwayTeamID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a team cannot play itself"})
	}
	if req.Fase == "" {
		req.Fase = models.FaseGrupos
	}

	var count int64
	s.DB.Model(&models.Team{}).Where("id IN ?", []string{req.HomeTeamID, req.AwayTeamID}).Count(&count)
	if count != 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "homeTeamId or awayTeamId not found"})
	}

	match := models.Match{
		ID:         uuid.NewString(),
		Fecha:      req.Fecha,
		Fase:       req.Fase,
		Status:     models.MatchPendiente,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
	}
	if err := s.DB.Create(&match).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create match"})
	}

	s.DB.Preload("HomeTeam").Preload("AwayTeam").First(&match, "id = ?", match.ID)
	return c.Status(fiber.StatusCreated).JSON(match)
}

// UpdateMatch records goals and/or a status change. Transitioning to
// FINALIZADO with both goals set runs the scoring pass over every prediction
// of the match, in the same transaction, then drops the ranking cache.
func (s *MatchService) UpdateMatch(c *fiber.Ctx) error {
	var req struct {
		HomeGoals *int    `json:"homeGoals"`
		AwayGoals *int    `json:"awayGoals"`
		Status    *string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if (req.HomeGoals != nil && *req.HomeGoals < 0) || (req.AwayGoals != nil && *req.AwayGoals < 0) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "goals must be non-negative"})
	}

	var match models.Match
	if err := s.DB.First(&match, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update match"})
	}

	if req.HomeGoals != nil {
		match.HomeGoals = req.HomeGoals
	}
	if req.AwayGoals != nil {
		match.AwayGoals = req.AwayGoals
	}
	if req.Status != nil {
		switch *req.Status {
		case models.MatchPendiente, models.MatchFinalizado, models.MatchCancelado:
			match.Status = *req.Status
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
		}
	}
	if match.Status == models.MatchFinalizado && (match.HomeGoals == nil || match.AwayGoals == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot finalize a match without both goal counts"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&match).Error; err != nil {
			return err
		}
		if match.IsFinalizado() {
			return applyPredictionPoints(tx, &match)
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ [MATCH] Failed to update match %s: %v", match.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update match"})
	}

	if match.IsFinalizado() {
		// rankings changed; drop the cached leaderboard
		s.Cache.Invalidate(c.Context())
		log.Printf("✅ [MATCH] Finalized %s (%d-%d), predictions scored", match.ID, *match.HomeGoals, *match.AwayGoals)
	}

	s.DB.Preload("HomeTeam").Preload("AwayTeam").First(&match, "id = ?", match.ID)
	return c.JSON(match)
}

// applyPredictionPoints scores every prediction of a finalized match.
// Idempotent: re-running for the same final score writes the same points,
// and a corrected result simply overwrites them.
func applyPredictionPoints(tx *gorm.DB, match *models.Match) error {
	var predictions []models.Prediction
	if err := tx.Where("match_id = ?", match.ID).Find(&predictions).Error; err != nil {
		return err
	}

	for _, p := range predictions {
		points := scoring.Points(p.HomeGoalsPredicted, p.AwayGoalsPredicted, *match.HomeGoals, *match.AwayGoals)
		if err := tx.Model(&models.Prediction{}).Where("id = ?", p.ID).Update("points", points).Error; err != nil {
			return err
		}
	}

	log.Printf("🏆 [SCORING] Scored %d predictions for match %s", len(predictions), match.ID)
	return nil
}
