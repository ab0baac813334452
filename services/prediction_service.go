package services

import (
	"errors"
	"time"

	"github.com/ignaciovargasDEV/prode-2026/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PredictionService struct {
	DB *gorm.DB
}

func NewPredictionService(db *gorm.DB) *PredictionService {
	return &PredictionService{DB: db}
}

// GetUserPredictions lists a user's predictions, newest first.
func (s *PredictionService) GetUserPredictions(c *fiber.Ctx) error {
	var predictions []models.Prediction
	err := s.DB.Preload("Match.HomeTeam").Preload("Match.AwayTeam").
		Where("user_id = ?", c.Params("user_id")).
		Order("created_at DESC").
		Find(&predictions).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user predictions"})
	}
	return c.JSON(predictions)
}

// GetMatchPredictions lists everyone's predictions for a match.
func (s *PredictionService) GetMatchPredictions(c *fiber.Ctx) error {
	var predictions []models.Prediction
	err := s.DB.Preload("User").
		Where("match_id = ?", c.Params("match_id")).
		Order("created_at DESC").
		Find(&predictions).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get match predictions"})
	}
	return c.JSON(predictions)
}

// CreatePrediction records the acting user's guess for a match. The user
// always comes from the session, never from the request body.
func (s *PredictionService) CreatePrediction(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}

	var req struct {
		MatchID            string  `json:"matchId"`
		HomeGoalsPredicted *int    `json:"homeGoalsPredicted"`
		AwayGoalsPredicted *int    `json:"awayGoalsPredicted"`
		Comentario         *string `json:"comentario"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.MatchID == "" || req.HomeGoalsPredicted == nil || req.AwayGoalsPredicted == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "matchId, homeGoalsPredicted and awayGoalsPredicted are required"})
	}
	if *req.HomeGoalsPredicted < 0 || *req.AwayGoalsPredicted < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "predicted goals must be non-negative"})
	}

	var match models.Match
	if err := s.DB.First(&match, "id = ?", req.MatchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create prediction"})
	}
	if !match.AcceptsPredictions(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot predict on a match that has already started or finished"})
	}

	var existing models.Prediction
	if err := s.DB.Where("user_id = ? AND match_id = ?", userID, req.MatchID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prediction already exists for this match"})
	}

	prediction := models.Prediction{
		ID:                 uuid.NewString(),
		UserID:             userID,
		MatchID:            req.MatchID,
		HomeGoalsPredicted: *req.HomeGoalsPredicted,
		AwayGoalsPredicted: *req.AwayGoalsPredicted,
		Comentario:         req.Comentario,
	}
	if err := s.DB.Create(&prediction).Error; err != nil {
		// unique index (user_id, match_id) may still race with a concurrent create
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prediction already exists for this match"})
	}

	s.DB.Preload("Match.HomeTeam").Preload("Match.AwayTeam").Preload("User").
		First(&prediction, "id = ?", prediction.ID)
	return c.Status(fiber.StatusCreated).JSON(prediction)
}

// UpdatePrediction edits the acting user's own prediction while the match is
// still open.
func (s *PredictionService) UpdatePrediction(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req struct {
		HomeGoalsPredicted *int    `json:"homeGoalsPredicted"`
		AwayGoalsPredicted *int    `json:"awayGoalsPredicted"`
		Comentario         *string `json:"comentario"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if (req.HomeGoalsPredicted != nil && *req.HomeGoalsPredicted < 0) ||
		(req.AwayGoalsPredicted != nil && *req.AwayGoalsPredicted < 0) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "predicted goals must be non-negative"})
	}

	prediction, err := s.loadOwnOpenPrediction(c, userID)
	if prediction == nil {
		return err
	}

	if req.HomeGoalsPredicted != nil {
		prediction.HomeGoalsPredicted = *req.HomeGoalsPredicted
	}
	if req.AwayGoalsPredicted != nil {
		prediction.AwayGoalsPredicted = *req.AwayGoalsPredicted
	}
	if req.Comentario != nil {
		prediction.Comentario = req.Comentario
	}

	if err := s.DB.Save(prediction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update prediction"})
	}

	s.DB.Preload("Match.HomeTeam").Preload("Match.AwayTeam").Preload("User").
		First(prediction, "id = ?", prediction.ID)
	return c.JSON(prediction)
}

// DeletePrediction removes the acting user's own prediction while the match
// is still open.
func (s *PredictionService) DeletePrediction(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	prediction, err := s.loadOwnOpenPrediction(c, userID)
	if prediction == nil {
		return err
	}

	if err := s.DB.Delete(prediction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete prediction"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// loadOwnOpenPrediction fetches the prediction at :id, checks ownership and
// that its match still accepts changes. On failure it writes the error
// response and returns a nil prediction.
func (s *PredictionService) loadOwnOpenPrediction(c *fiber.Ctx, userID string) (*models.Prediction, error) {
	if userID == "" {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}

	var prediction models.Prediction
	if err := s.DB.Preload("Match").First(&prediction, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "prediction not found"})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load prediction"})
	}
	if prediction.UserID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "prediction belongs to another user"})
	}
	if !prediction.Match.AcceptsPredictions(time.Now()) {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot modify a prediction once the match has started or finished"})
	}
	return &prediction, nil
}
