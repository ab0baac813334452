package services

import (
	"errors"
	"path/filepath"

	"github.com/ignaciovargasDEV/prode-2026/models"
	"github.com/ignaciovargasDEV/prode-2026/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TeamService struct {
	DB *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{DB: db}
}

// GetAllTeams lists teams alphabetically. ?q= searches accent-insensitively
// against the slug, so "tunez" finds "Túnez".
func (s *TeamService) GetAllTeams(c *fiber.Ctx) error {
	q := s.DB.Model(&models.Team{}).Order("name ASC")

	if query := c.Query("q"); query != "" {
		q = q.Where("slug LIKE ?", "%"+slug.Make(query)+"%")
	}

	var teams []models.Team
	if err := q.Find(&teams).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get teams"})
	}
	return c.JSON(teams)
}

func (s *TeamService) GetTeamByID(c *fiber.Ctx) error {
	var team models.Team
	if err := s.DB.First(&team, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get team"})
	}
	return c.JSON(team)
}

// CreateTeam registers a team. Accepts multipart form with optional crest
// image (stored in R2) so the whole roster can be loaded in one pass.
func (s *TeamService) CreateTeam(c *fiber.Ctx) error {
	name := c.FormValue("name")
	country := c.FormValue("country")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if country == "" {
		country = name
	}

	team := models.Team{
		ID:      uuid.NewString(),
		Name:    name,
		Country: country,
		Slug:    slug.Make(name),
	}

	if crest, err := c.FormFile("crest"); err == nil && crest.Size > 0 {
		if !utils.R2Enabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "uploads are not configured"})
		}
		ext := filepath.Ext(crest.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := "crests/" + team.Slug + "-" + uuid.NewString() + ext
		url, err := utils.UploadFileToR2(crest, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload crest"})
		}
		team.CrestURL = &url
	}

	if err := s.DB.Create(&team).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "team already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}
