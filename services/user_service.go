package services

import (
	"errors"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ignaciovargasDEV/prode-2026/models"
	"github.com/ignaciovargasDEV/prode-2026/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// GetUsers lists all participants. ?q= filters by nombre/apellido/email,
// accent-insensitive ("perez" matches "Pérez").
func (s *UserService) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Select("id", "email", "nombre", "apellido", "area", "avatar_url", "created_at").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get users"})
	}

	if q := c.Query("q"); q != "" {
		filtered := users[:0]
		for _, u := range users {
			if utils.MatchesSearch(u.Nombre+" "+u.Apellido, q) || utils.MatchesSearch(u.Email, q) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	return c.JSON(users)
}

func (s *UserService) GetUserByID(c *fiber.Ctx) error {
	var user models.User
	err := s.DB.Preload("Predictions.Match.HomeTeam").Preload("Predictions.Match.AwayTeam").
		First(&user, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user"})
	}
	return c.JSON(user)
}

// CreateUser provisions an account without going through /auth/register
// (used to load the company roster).
func (s *UserService) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Nombre   string `json:"nombre"`
		Apellido string `json:"apellido"`
		Area     string `json:"area"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" || req.Nombre == "" || req.Apellido == "" || req.Area == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, password, nombre, apellido and area are required"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create user"})
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Area:     req.Area,
		IsActive: true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser lets the acting user change their own nombre/apellido/area.
func (s *UserService) UpdateUser(c *fiber.Ctx) error {
	actingUserID, _ := c.Locals("user_id").(string)
	targetID := c.Params("id")
	if actingUserID == "" || actingUserID != targetID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "cannot update another user's profile"})
	}

	var req struct {
		Nombre   *string `json:"nombre"`
		Apellido *string `json:"apellido"`
		Area     *string `json:"area"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update user"})
	}

	if req.Nombre != nil && *req.Nombre != "" {
		user.Nombre = *req.Nombre
	}
	if req.Apellido != nil && *req.Apellido != "" {
		user.Apellido = *req.Apellido
	}
	if req.Area != nil && *req.Area != "" {
		user.Area = *req.Area
	}

	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update user"})
	}
	return c.JSON(user)
}

// UploadAvatar stores the acting user's profile picture in R2.
func (s *UserService) UploadAvatar(c *fiber.Ctx) error {
	actingUserID, _ := c.Locals("user_id").(string)
	if actingUserID == "" || actingUserID != c.Params("id") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "cannot update another user's avatar"})
	}
	if !utils.R2Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "uploads are not configured"})
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if avatar.Size > 5*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar too large (max 5MB)"})
	}

	ext := filepath.Ext(avatar.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "avatars/" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(avatar, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload avatar"})
	}

	if err := s.DB.Model(&models.User{}).Where("id = ?", actingUserID).Update("avatar_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save avatar"})
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}

// GetUserStats summarizes a user's prediction performance: totals, exact and
// partial hits, and accuracy over finished matches.
func (s *UserService) GetUserStats(c *fiber.Ctx) error {
	userID := c.Params("id")

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user stats"})
	}

	var predictions []models.Prediction
	if err := s.DB.Preload("Match").Where("user_id = ?", userID).Find(&predictions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user stats"})
	}

	var totalMatches int64
	s.DB.Model(&models.Match{}).Count(&totalMatches)

	exactMatches := 0
	partialMatches := 0
	totalPoints := 0
	completed := 0
	for _, p := range predictions {
		if !p.Match.IsFinalizado() || p.Points == nil {
			continue
		}
		completed++
		totalPoints += *p.Points
		switch {
		case p.HomeGoalsPredicted == *p.Match.HomeGoals && p.AwayGoalsPredicted == *p.Match.AwayGoals:
			exactMatches++
		case *p.Points > 0:
			partialMatches++
		}
	}

	accuracy := 0
	if completed > 0 {
		accuracy = int(math.Round(float64(exactMatches+partialMatches) / float64(completed) * 100))
	}

	return c.JSON(fiber.Map{
		"totalPredictions": len(predictions),
		"totalMatches":     totalMatches,
		"accuracy":         accuracy,
		"exactMatches":     exactMatches,
		"partialMatches":   partialMatches,
		"totalPoints":      totalPoints,
		"currentStreak":    currentStreak(predictions),
	})
}

// currentStreak counts how many of the user's most recent scored predictions
// in a row earned points, walking finished matches newest first.
func currentStreak(predictions []models.Prediction) int {
	scored := make([]models.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if p.Match.IsFinalizado() && p.Points != nil {
			scored = append(scored, p)
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Match.Fecha.After(scored[j].Match.Fecha)
	})

	streak := 0
	for _, p := range scored {
		if *p.Points == 0 {
			break
		}
		streak++
	}
	return streak
}
